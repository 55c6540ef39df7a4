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
	"path/filepath"
	"testing"
)

func TestLabelColors(t *testing.T) {
	if c:=LabelColor(0); c.R!=0 || c.G!=0 || c.B!=0 {
		t.Fatalf("background not black: %+v", c)
	}
	// colors are deterministic per label
	for _, l:=range []uint64{1, 2, 255, 1<<40} {
		if LabelColor(l)!=LabelColor(l) {
			t.Fatalf("label %d color not stable", l)
		}
	}
	if LabelColor(1)==LabelColor(2) {
		t.Fatalf("adjacent labels share a color")
	}
}

func TestRenderSlice(t *testing.T) {
	v, _:=New(6, 5, 4, 1)
	v.Set(2, 3, 1, 7)

	img, err:=v.RenderSlice(1)
	if err!=nil { t.Fatalf("render: %s", err.Error()) }
	if b:=img.Bounds(); b.Dx()!=6 || b.Dy()!=5 {
		t.Fatalf("preview bounds %v want 6x5", b)
	}
	if img.RGBAAt(2, 3)!=LabelColor(7) {
		t.Fatalf("labeled voxel not colored")
	}
	if img.RGBAAt(0, 0)!=LabelColor(0) {
		t.Fatalf("background voxel not black")
	}

	if _, err:=v.RenderSlice(4); err==nil {
		t.Fatalf("out of range slice accepted")
	}
}

func TestWriteSliceToFile(t *testing.T) {
	v, _:=New(8, 8, 2, 1)
	for x:=0; x<8; x++ {
		v.Set(x, 4, 0, uint64(x%3))
	}
	dir:=t.TempDir()
	for _, name:=range []string{"p.jpg", "p.tif"} {
		if err:=v.WriteSliceToFile(filepath.Join(dir, name), 0, 4); err!=nil {
			t.Fatalf("%s: %s", name, err.Error())
		}
	}
	if err:=v.WriteSliceToFile(filepath.Join(dir, "p.bmp"), 0, 0); err==nil {
		t.Fatalf("unknown suffix accepted")
	}
}

func TestScaleTo(t *testing.T) {
	v, _:=New(10, 6, 1, 1)
	img, _:=v.RenderSlice(0)
	scaled:=ScaleTo(img, 5)
	if b:=scaled.Bounds(); b.Dx()!=5 || b.Dy()!=3 {
		t.Fatalf("scaled bounds %v want 5x3", b)
	}
	if ScaleTo(img, 0)!=img {
		t.Fatalf("width 0 should keep the image")
	}
}
