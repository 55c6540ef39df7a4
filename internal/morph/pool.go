// Copyright (C) 2020 Markus L. Noga
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.


package morph

// Runs fn once per block with the given concurrency limit, and joins
// before returning. Blocks write disjoint output regions, so workers
// need no locks; the join establishes happens-before with the caller.
func forEachBlock(blocks []Block, maxThreads int, fn func(b Block)) {
	maxThreads=clampThreads(maxThreads, len(blocks))
	if maxThreads==1 {
		for _, b:=range blocks {
			fn(b)
		}
		return
	}

	limiter:=make(chan bool, maxThreads)
	for _, b:=range blocks {
		limiter <- true
		go func(b Block) {
			defer func() { <-limiter }()
			fn(b)
		}(b)
	}
	for i:=0; i<cap(limiter); i++ { // wait for goroutines to finish
		limiter <- true
	}
}

// Never more workers than blocks, and at least one
func clampThreads(threads, blocks int) int {
	if threads>blocks { threads=blocks }
	if threads<1 { threads=1 }
	return threads
}
