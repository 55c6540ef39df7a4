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


package volume

import (
	"errors"
	"fmt"
	"github.com/pbnjay/memory"
)

// A dense 3D volume of unsigned integer labels in column major order,
// i.e. the linear index of voxel (x,y,z) is x + Sx*(y + Sy*z).
// Label zero is reserved for background. The voxel buffer is a tagged
// variant over the four supported element widths: exactly one of
// U8/U16/U32/U64 is non-nil, selected by Width.
type Volume struct {
	Sx, Sy, Sz int      // axis extents, x varies fastest
	Width      int      // bytes per voxel, one of 1, 2, 4, 8

	U8  []uint8
	U16 []uint16
	U32 []uint32
	U64 []uint64
}

// Supported voxel widths in bytes
const (
	Width8  = 1
	Width16 = 2
	Width32 = 4
	Width64 = 8
)

var errNilVolume = errors.New("nil volume")

// Returns true if w is a supported voxel width in bytes
func ValidWidth(w int) bool {
	return w==Width8 || w==Width16 || w==Width32 || w==Width64
}

// Creates a zero-initialized volume of the given extents and voxel width.
// Fails without allocating on unsupported widths or non-positive extents,
// and refuses allocations larger than physical memory.
func New(sx, sy, sz, width int) (v *Volume, err error) {
	if !ValidWidth(width) {
		return nil, fmt.Errorf("unsupported voxel width %d bytes, must be 1, 2, 4 or 8", width)
	}
	if sx<1 || sy<1 || sz<1 {
		return nil, fmt.Errorf("invalid volume extents %dx%dx%d, must be a 3D volume with positive extents", sx, sy, sz)
	}
	voxels:=uint64(sx)*uint64(sy)*uint64(sz)
	bytes:=voxels*uint64(width)
	if bytes/uint64(width)!=voxels || bytes>memory.TotalMemory() {
		return nil, fmt.Errorf("cannot allocate %dx%dx%d volume of width %d: %d bytes exceeds physical memory", sx, sy, sz, width, bytes)
	}

	v=&Volume{Sx:sx, Sy:sy, Sz:sz, Width:width}
	defer func() {
		if r:=recover(); r!=nil {
			v, err=nil, fmt.Errorf("cannot allocate %d bytes for %dx%dx%d volume: %v", bytes, sx, sy, sz, r)
		}
	}()
	switch width {
	case Width8:
		v.U8=make([]uint8, voxels)
	case Width16:
		v.U16=make([]uint16, voxels)
	case Width32:
		v.U32=make([]uint32, voxels)
	case Width64:
		v.U64=make([]uint64, voxels)
	}
	return v, nil
}

// Creates a zero-initialized volume with the same extents and voxel width as the given one
func NewLike(v *Volume) (*Volume, error) {
	if v==nil { return nil, errNilVolume }
	return New(v.Sx, v.Sy, v.Sz, v.Width)
}

// Checks that the volume has a supported width, positive extents,
// and a voxel buffer of matching length for its tagged width
func (v *Volume) Validate() error {
	if v==nil { return errNilVolume }
	if !ValidWidth(v.Width) {
		return fmt.Errorf("unsupported voxel width %d bytes, must be 1, 2, 4 or 8", v.Width)
	}
	if v.Sx<1 || v.Sy<1 || v.Sz<1 {
		return fmt.Errorf("invalid volume extents %dx%dx%d, must be a 3D volume with positive extents", v.Sx, v.Sy, v.Sz)
	}
	voxels:=v.Voxels()
	have:=-1
	switch v.Width {
	case Width8:
		if v.U8!=nil  { have=len(v.U8)  }
	case Width16:
		if v.U16!=nil { have=len(v.U16) }
	case Width32:
		if v.U32!=nil { have=len(v.U32) }
	case Width64:
		if v.U64!=nil { have=len(v.U64) }
	}
	if have!=voxels {
		return fmt.Errorf("voxel buffer of length %d does not match extents %dx%dx%d", have, v.Sx, v.Sy, v.Sz)
	}
	return nil
}

// Returns the total number of voxels
func (v *Volume) Voxels() int {
	return v.Sx*v.Sy*v.Sz
}

// Returns the linear index of voxel (x,y,z)
func (v *Volume) Index(x, y, z int) int {
	return x + v.Sx*(y + v.Sy*z)
}

// Returns the label of voxel (x,y,z), widened to uint64.
// Convenience accessor for tooling and tests; the kernels
// operate on the typed buffers directly.
func (v *Volume) At(x, y, z int) uint64 {
	loc:=v.Index(x,y,z)
	switch v.Width {
	case Width8:
		return uint64(v.U8[loc])
	case Width16:
		return uint64(v.U16[loc])
	case Width32:
		return uint64(v.U32[loc])
	default:
		return v.U64[loc]
	}
}

// Sets the label of voxel (x,y,z), truncating to the volume width
func (v *Volume) Set(x, y, z int, label uint64) {
	loc:=v.Index(x,y,z)
	switch v.Width {
	case Width8:
		v.U8[loc]=uint8(label)
	case Width16:
		v.U16[loc]=uint16(label)
	case Width32:
		v.U32[loc]=uint32(label)
	default:
		v.U64[loc]=label
	}
}

// Returns a human-readable dimension string like "128x128x64x2"
func (v *Volume) DimensionsToString() string {
	return fmt.Sprintf("%dx%dx%dx%d", v.Sx, v.Sy, v.Sz, v.Width)
}
