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


package qsort

import (
	"testing"
	"github.com/valyala/fastrand"
)


func TestQSortLabels(t *testing.T) {
	rng:=fastrand.RNG{}
	for i:=1; i<500; i++ {
		// prepare array of given length with a random permutation of 1..n
		arr:=make([]uint32, i)
		for j:=0; j<len(arr); j++ {
			arr[j]=uint32(j+1)
		}
		for j:=0; j<len(arr); j++ {
			k:=rng.Uint32n(uint32(len(arr)))
			arr[j], arr[k] = arr[k], arr[j]
		}

		QSortLabels(arr)

		for j:=0; j<len(arr); j++ {
			if arr[j]!=uint32(j+1) {
				t.Fatalf("sort(perm(1..%d)) index %d got %d expect %d", i, j, arr[j], j+1)
			}
		}
	}
}

func TestQSortLabelsDuplicates(t *testing.T) {
	rng:=fastrand.RNG{}
	for i:=1; i<200; i++ {
		arr:=make([]uint64, i)
		for j:=0; j<len(arr); j++ {
			arr[j]=uint64(rng.Uint32n(5))
		}

		QSortLabels(arr)

		for j:=1; j<len(arr); j++ {
			if arr[j]<arr[j-1] {
				t.Fatalf("length %d index %d: %d after %d not ascending", i, j, arr[j], arr[j-1])
			}
		}
	}
}
