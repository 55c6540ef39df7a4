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
	"bytes"
	"path/filepath"
	"testing"
	"github.com/valyala/fastrand"
)

func TestNewValidation(t *testing.T) {
	if _, err:=New(4, 4, 4, 3); err==nil {
		t.Fatalf("width 3 accepted")
	}
	if _, err:=New(4, 4, 4, 0); err==nil {
		t.Fatalf("width 0 accepted")
	}
	if _, err:=New(0, 4, 4, 1); err==nil {
		t.Fatalf("extent 0 accepted")
	}
	if _, err:=New(4, -1, 4, 1); err==nil {
		t.Fatalf("negative extent accepted")
	}
	v, err:=New(4, 5, 6, 2)
	if err!=nil { t.Fatalf("valid volume rejected: %s", err.Error()) }
	if err:=v.Validate(); err!=nil {
		t.Fatalf("fresh volume fails validation: %s", err.Error())
	}
	if len(v.U16)!=4*5*6 || v.U8!=nil || v.U32!=nil || v.U64!=nil {
		t.Fatalf("width 2 volume has wrong tagged buffers")
	}
}

func TestAtSetRoundTrip(t *testing.T) {
	rng:=fastrand.RNG{}
	rng.Seed(19)
	for _, width:=range []int{1, 2, 4, 8} {
		v, err:=New(5, 4, 3, width)
		if err!=nil { t.Fatalf("width %d: %s", width, err.Error()) }
		maxLabel:=uint64(1)<<uint(8*width) - 1
		for z:=0; z<v.Sz; z++ {
			for y:=0; y<v.Sy; y++ {
				for x:=0; x<v.Sx; x++ {
					l:=(uint64(rng.Uint32())<<32 | uint64(rng.Uint32())) & maxLabel
					v.Set(x, y, z, l)
					if got:=v.At(x, y, z); got!=l {
						t.Fatalf("width %d voxel (%d,%d,%d) got %d want %d", width, x, y, z, got, l)
					}
				}
			}
		}
	}
}

// The linear index must be column major with x fastest
func TestIndexColumnMajor(t *testing.T) {
	v, _:=New(3, 4, 5, 1)
	if v.Index(1, 0, 0)!=1 {
		t.Fatalf("x stride not 1")
	}
	if v.Index(0, 1, 0)!=3 {
		t.Fatalf("y stride not sx")
	}
	if v.Index(0, 0, 1)!=12 {
		t.Fatalf("z stride not sx*sy")
	}
	v.U8[v.Index(2, 3, 4)]=9
	if v.At(2, 3, 4)!=9 {
		t.Fatalf("accessor disagrees with linear index")
	}
}

func TestReadWriteRoundTrip(t *testing.T) {
	rng:=fastrand.RNG{}
	rng.Seed(37)
	for _, width:=range []int{1, 2, 4, 8} {
		v, err:=New(7, 5, 3, width)
		if err!=nil { t.Fatalf("width %d: %s", width, err.Error()) }
		maxLabel:=uint64(1)<<uint(8*width) - 1
		for i:=0; i<v.Voxels(); i++ {
			v.Set(i%v.Sx, (i/v.Sx)%v.Sy, i/(v.Sx*v.Sy), uint64(rng.Uint32())&maxLabel)
		}

		buf:=bytes.Buffer{}
		if err:=v.Write(&buf); err!=nil {
			t.Fatalf("width %d write: %s", width, err.Error())
		}
		w, err:=Read(&buf)
		if err!=nil {
			t.Fatalf("width %d read: %s", width, err.Error())
		}
		if w.Sx!=v.Sx || w.Sy!=v.Sy || w.Sz!=v.Sz || w.Width!=v.Width {
			t.Fatalf("width %d round trip got %s want %s", width, w.DimensionsToString(), v.DimensionsToString())
		}
		for z:=0; z<v.Sz; z++ {
			for y:=0; y<v.Sy; y++ {
				for x:=0; x<v.Sx; x++ {
					if w.At(x,y,z)!=v.At(x,y,z) {
						t.Fatalf("width %d voxel (%d,%d,%d) got %d want %d", width, x, y, z, w.At(x,y,z), v.At(x,y,z))
					}
				}
			}
		}
	}
}

func TestReadRejectsGarbage(t *testing.T) {
	if _, err:=Read(bytes.NewReader([]byte("not a volume file at all"))); err==nil {
		t.Fatalf("garbage accepted")
	}
	// valid magic, invalid width
	hdr:=make([]byte, lmvHeaderBytes)
	copy(hdr, lmvMagic[:])
	hdr[8]=3
	hdr[12], hdr[20], hdr[28]=1, 1, 1
	if _, err:=Read(bytes.NewReader(hdr)); err==nil {
		t.Fatalf("width 3 file accepted")
	}
}

func TestFileRoundTrip(t *testing.T) {
	v, _:=New(4, 4, 4, 2)
	v.Set(1, 2, 3, 777)
	fileName:=filepath.Join(t.TempDir(), "test.lmv")
	if err:=v.WriteToFile(fileName); err!=nil {
		t.Fatalf("write: %s", err.Error())
	}
	w, err:=ReadFromFile(fileName)
	if err!=nil {
		t.Fatalf("read: %s", err.Error())
	}
	if w.At(1, 2, 3)!=777 {
		t.Fatalf("voxel lost in file round trip")
	}
}
