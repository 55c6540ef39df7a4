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

// Edge length of the cubic processing blocks the volume is tiled into
const BlockSize=64

// A half-open block of the output domain, [X0,X1) x [Y0,Y1) x [Z0,Z1)
type Block struct {
	X0, X1 int
	Y0, Y1 int
	Z0, Z1 int
}

// Number of blocks along one axis of extent s. A trailing slab thinner
// than half a block is absorbed into the preceding block instead of
// becoming its own undersized tile
func gridSize(s int) int {
	g:=(s + BlockSize/2)/BlockSize
	if g<1 { g=1 }
	return g
}

// Extent of block g of n along one axis of extent s.
// The last block runs to the end of the axis
func blockExtent(g, n, s int) (lo, hi int) {
	lo=g*BlockSize
	hi=lo+BlockSize
	if g==n-1 { hi=s }
	return lo, hi
}

// Partitions the volume into blocks of edge length BlockSize.
// Blocks are disjoint and cover the full volume exactly once
func makeGrid(sx, sy, sz int) []Block {
	nx, ny, nz:=gridSize(sx), gridSize(sy), gridSize(sz)
	blocks:=make([]Block, 0, nx*ny*nz)
	for gz:=0; gz<nz; gz++ {
		z0, z1:=blockExtent(gz, nz, sz)
		for gy:=0; gy<ny; gy++ {
			y0, y1:=blockExtent(gy, ny, sy)
			for gx:=0; gx<nx; gx++ {
				x0, x1:=blockExtent(gx, nx, sx)
				blocks=append(blocks, Block{x0,x1, y0,y1, z0,z1})
			}
		}
	}
	return blocks
}
