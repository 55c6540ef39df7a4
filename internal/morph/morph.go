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


// Package morph implements morphological dilation and erosion of dense
// 3D multi-label volumes with a 3x3x3 structuring element. Unlike binary
// morphology every voxel carries a label identifier: dilation grows labels
// by plurality vote over the stencil window, erosion keeps only voxels
// whose entire window is uniformly their own label. Volumes are processed
// as 64^3 blocks in parallel; results are independent of the thread count.
package morph

import (
	"github.com/mlnoga/labelmorph/internal/volume"
)

// Dilates a label volume with a 3x3x3 structuring element and returns a
// newly allocated volume of identical shape and width. Each output voxel
// becomes the plurality label of its 27-voxel window, ties broken towards
// the smaller label; windows holding only background stay background.
// With backgroundOnly set, non-zero input voxels pass through unchanged
// and only background voxels can gain a label.
// threads caps worker concurrency; values below 2 run serially, larger
// values are clamped to the number of 64^3 processing blocks.
func Dilate(in *volume.Volume, backgroundOnly bool, threads int) (*volume.Volume, error) {
	if err:=in.Validate(); err!=nil { return nil, err }
	out, err:=volume.NewLike(in)
	if err!=nil { return nil, err }

	switch in.Width {
	case volume.Width8:
		dilateVol(in.U8,  out.U8,  in.Sx, in.Sy, in.Sz, backgroundOnly, threads)
	case volume.Width16:
		dilateVol(in.U16, out.U16, in.Sx, in.Sy, in.Sz, backgroundOnly, threads)
	case volume.Width32:
		dilateVol(in.U32, out.U32, in.Sx, in.Sy, in.Sz, backgroundOnly, threads)
	default:
		dilateVol(in.U64, out.U64, in.Sx, in.Sy, in.Sz, backgroundOnly, threads)
	}
	return out, nil
}

// Erodes a label volume with a 3x3x3 structuring element and returns a
// newly allocated volume of identical shape and width. A voxel keeps its
// label only if all 27 voxels of its window share it; voxels on the volume
// boundary always erode since their windows are truncated.
// threads behaves as in Dilate.
func Erode(in *volume.Volume, threads int) (*volume.Volume, error) {
	if err:=in.Validate(); err!=nil { return nil, err }
	out, err:=volume.NewLike(in)
	if err!=nil { return nil, err }

	switch in.Width {
	case volume.Width8:
		erodeVol(in.U8,  out.U8,  in.Sx, in.Sy, in.Sz, threads)
	case volume.Width16:
		erodeVol(in.U16, out.U16, in.Sx, in.Sy, in.Sz, threads)
	case volume.Width32:
		erodeVol(in.U32, out.U32, in.Sx, in.Sy, in.Sz, threads)
	default:
		erodeVol(in.U64, out.U64, in.Sx, in.Sy, in.Sz, threads)
	}
	return out, nil
}
