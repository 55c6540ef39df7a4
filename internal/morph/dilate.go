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
	"github.com/mlnoga/labelmorph/internal/qsort"
)

// Dilates all blocks of the volume in parallel with the given concurrency limit
func dilateVol[T Label](labels, output []T, sx, sy, sz int, backgroundOnly bool, threads int) {
	blocks:=makeGrid(sx, sy, sz)
	forEachBlock(blocks, threads, func(b Block) {
		dilateBlock(labels, output, sx, sy, sz, backgroundOnly, b)
	})
}

// Grows labels into the background under a 3x3x3 stencil, one block at a time.
// Each output voxel receives the most frequent non-zero label of its 27-voxel
// window; ties go to the smallest label. The stencil decomposes into three
// 9-voxel columns at x-1, x and x+1 which are shifted incrementally as x
// advances, tracked by a staleness counter.
func dilateBlock[T Label](labels, output []T, sx, sy, sz int, backgroundOnly bool, b Block) {
	sxy:=sx*sy

	// scratch columns and neighbor list are reused across the whole block
	left  :=make([]T, 0, 9)
	middle:=make([]T, 0, 9)
	right :=make([]T, 0, 9)
	neighbors:=make([]T, 0, 27)

	for z:=b.Z0; z<b.Z1; z++ {
		for y:=b.Y0; y<b.Y1; y++ {
			staleStencil:=3
			for x:=b.X0; x<b.X1; x++ {
				loc:=x + sx*(y + sy*z)

				if backgroundOnly && labels[loc]!=0 {
					output[loc]=labels[loc]
					staleStencil++
					continue
				}

				if staleStencil==1 {
					// shift one voxel: the old left storage takes the fresh leading edge
					left, middle, right = middle, right, left
					right=fillColumn(labels, sx, sy, sz, sxy, x+1, y, z, right)
					staleStencil=0
				} else if staleStencil==2 {
					left, right = right, left
					middle=fillColumn(labels, sx, sy, sz, sxy, x,   y, z, middle)
					right =fillColumn(labels, sx, sy, sz, sxy, x+1, y, z, right)
					staleStencil=0
				} else if staleStencil>=3 {
					left  =fillColumn(labels, sx, sy, sz, sxy, x-1, y, z, left)
					middle=fillColumn(labels, sx, sy, sz, sxy, x,   y, z, middle)
					right =fillColumn(labels, sx, sy, sz, sxy, x+1, y, z, right)
					staleStencil=0
				}

				if len(left)+len(middle)+len(right)==0 {
					// all background; output stays zero, stencil shifts along
					left, middle, right = middle, right, left
					right=fillColumn(labels, sx, sy, sz, sxy, x+2, y, z, right)
					continue
				}

				neighbors=neighbors[:0]
				neighbors=append(neighbors, left...)
				neighbors=append(neighbors, middle...)
				neighbors=append(neighbors, right...)
				qsort.QSortLabels(neighbors)

				size:=len(neighbors)

				// A window this full and uniform dominates the next voxel too:
				// middle and right carry at least ten copies over as its new
				// left and middle, more than a fresh column can outvote.
				if size>=19 && neighbors[0]==neighbors[size-1] {
					output[loc]=neighbors[0]
					if x+1<b.X1 {
						output[loc+1]=neighbors[0]
					}
					staleStencil=2
					x++
					continue
				}

				// plurality vote over sorted runs; only a strictly longer run
				// displaces the current winner, so ties keep the smallest label
				modeLabel:=neighbors[0]
				ct:=1
				maxCt:=1
				for i:=1; i<size; i++ {
					if neighbors[i]!=neighbors[i-1] {
						if ct>maxCt {
							modeLabel=neighbors[i-1]
							maxCt=ct
						}
						ct=1
						if size-i<maxCt {
							break
						}
					} else {
						ct++
					}
				}
				if ct>maxCt {
					modeLabel=neighbors[size-1]
				}

				output[loc]=modeLabel

				// A long winning run decides the next voxel too, provided its copies
				// in middle and right, which become the next voxel's left and middle,
				// outnumber all other labels there plus a whole fresh column
				carried:=0
				if ct>=19 {
					for _, l:=range middle { if l==modeLabel { carried++ } }
					for _, l:=range right  { if l==modeLabel { carried++ } }
				}
				if ct>=19 && carried>len(middle)+len(right)-carried+9 && x+1<b.X1 {
					// the skipped voxel still owes pass-through if it is occupied
					if backgroundOnly && labels[loc+1]!=0 {
						output[loc+1]=labels[loc+1]
					} else {
						output[loc+1]=modeLabel
					}
					staleStencil=2
					x++
					continue
				}

				staleStencil=1
			}
		}
	}
}
