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

// Erodes all blocks of the volume in parallel with the given concurrency limit
func erodeVol[T Label](labels, output []T, sx, sy, sz int, threads int) {
	blocks:=makeGrid(sx, sy, sz)
	forEachBlock(blocks, threads, func(b Block) {
		erodeBlock(labels, output, sx, sy, sz, b)
	})
}

// Keeps a voxel only if its entire 3x3x3 window is the voxel's own label.
// Column purity is a necessary condition, and an impure column disqualifies
// every voxel whose window contains it: an impure leading column skips two
// further voxels, an impure middle column skips one.
func erodeBlock[T Label](labels, output []T, sx, sy, sz int, b Block) {
	sxy:=sx*sy

	left  :=make([]T, 0, 9)
	middle:=make([]T, 0, 9)
	right :=make([]T, 0, 9)
	pureLeft, pureMiddle, pureRight:=false, false, false

	for z:=b.Z0; z<b.Z1; z++ {
		for y:=b.Y0; y<b.Y1; y++ {
			staleStencil:=3
			for x:=b.X0; x<b.X1; x++ {
				loc:=x + sx*(y + sy*z)

				if labels[loc]==0 {
					staleStencil++
					continue
				}

				if staleStencil==1 {
					left, middle, right = middle, right, left
					pureLeft, pureMiddle = pureMiddle, pureRight
					right=fillColumn(labels, sx, sy, sz, sxy, x+1, y, z, right)
					pureRight=isPure(right)
					staleStencil=0
				} else if staleStencil==2 {
					left, right = right, left
					pureLeft=pureRight
					right=fillColumn(labels, sx, sy, sz, sxy, x+1, y, z, right)
					pureRight=isPure(right)
					if !pureRight {
						x+=2
						staleStencil=3
						continue
					}
					middle=fillColumn(labels, sx, sy, sz, sxy, x, y, z, middle)
					pureMiddle=isPure(middle)
					staleStencil=0
				} else if staleStencil>=3 {
					right=fillColumn(labels, sx, sy, sz, sxy, x+1, y, z, right)
					pureRight=isPure(right)
					if !pureRight {
						x+=2
						staleStencil=3
						continue
					}
					middle=fillColumn(labels, sx, sy, sz, sxy, x, y, z, middle)
					pureMiddle=isPure(middle)
					if !pureMiddle {
						x++
						staleStencil=2
						continue
					}
					left=fillColumn(labels, sx, sy, sz, sxy, x-1, y, z, left)
					pureLeft=isPure(left)
					staleStencil=0
				}

				if !pureRight {
					x+=2
					staleStencil=3
					continue
				} else if !pureMiddle {
					x++
					staleStencil=2
					continue
				} else if pureLeft {
					if labels[loc]==left[0] && labels[loc]==middle[0] && labels[loc]==right[0] {
						output[loc]=labels[loc]
					}
				}

				staleStencil=1
			}
		}
	}
}
