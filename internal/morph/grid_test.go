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

import (
	"testing"
)

// Axis extents around the block size and its absorption threshold
var gridExtents=[]int{1, 2, 31, 32, 33, 63, 64, 65, 95, 96, 97, 128, 129, 160, 192}

func TestGridSize(t *testing.T) {
	cases:=[]struct{ s, want int }{
		{1, 1}, {31, 1}, {32, 1}, {63, 1}, {64, 1}, {95, 1},
		{96, 2}, {128, 2}, {159, 2}, {160, 3}, {192, 3},
	}
	for _, c:=range cases {
		if got:=gridSize(c.s); got!=c.want {
			t.Fatalf("gridSize(%d) got %d want %d", c.s, got, c.want)
		}
	}
}

// Blocks must cover every voxel exactly once
func TestGridPartition(t *testing.T) {
	for _, sx:=range gridExtents {
		for _, sy:=range []int{1, 64, 97} {
			for _, sz:=range []int{1, 96} {
				blocks:=makeGrid(sx, sy, sz)
				counts:=make([]int, sx*sy*sz)
				for _, b:=range blocks {
					if b.X0<0 || b.X1>sx || b.Y0<0 || b.Y1>sy || b.Z0<0 || b.Z1>sz {
						t.Fatalf("%dx%dx%d: block %+v out of bounds", sx, sy, sz, b)
					}
					if b.X0>=b.X1 || b.Y0>=b.Y1 || b.Z0>=b.Z1 {
						t.Fatalf("%dx%dx%d: empty block %+v", sx, sy, sz, b)
					}
					for z:=b.Z0; z<b.Z1; z++ {
						for y:=b.Y0; y<b.Y1; y++ {
							for x:=b.X0; x<b.X1; x++ {
								counts[x + sx*(y + sy*z)]++
							}
						}
					}
				}
				for loc, ct:=range counts {
					if ct!=1 {
						t.Fatalf("%dx%dx%d: voxel %d covered %d times", sx, sy, sz, loc, ct)
					}
				}
			}
		}
	}
}

// The trailing slab absorbs into the last block instead of becoming
// an undersized tile of its own
func TestGridAbsorbsTrailingSlab(t *testing.T) {
	blocks:=makeGrid(95, 1, 1)
	if len(blocks)!=1 {
		t.Fatalf("95x1x1 got %d blocks want 1", len(blocks))
	}
	if blocks[0].X0!=0 || blocks[0].X1!=95 {
		t.Fatalf("95x1x1 block spans [%d,%d) want [0,95)", blocks[0].X0, blocks[0].X1)
	}

	blocks=makeGrid(129, 1, 1)
	if len(blocks)!=2 {
		t.Fatalf("129x1x1 got %d blocks want 2", len(blocks))
	}
	if blocks[1].X0!=64 || blocks[1].X1!=129 {
		t.Fatalf("129x1x1 last block spans [%d,%d) want [64,129)", blocks[1].X0, blocks[1].X1)
	}
}

func TestClampThreads(t *testing.T) {
	cases:=[]struct{ threads, blocks, want int }{
		{0, 10, 1}, {-2, 10, 1}, {1, 10, 1}, {4, 10, 4}, {16, 10, 10}, {3, 3, 3},
	}
	for _, c:=range cases {
		if got:=clampThreads(c.threads, c.blocks); got!=c.want {
			t.Fatalf("clampThreads(%d,%d) got %d want %d", c.threads, c.blocks, got, c.want)
		}
	}
}
