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


package stats

import (
	"math"
	"testing"
	"github.com/mlnoga/labelmorph/internal/volume"
)

func TestCensusCounts(t *testing.T) {
	v, err:=volume.New(4, 4, 2, 2)
	if err!=nil { t.Fatalf("alloc: %s", err.Error()) }
	// 8 voxels of label 5, 4 of label 9, rest background
	for i:=0; i<8; i++ {
		v.Set(i%4, (i/4)%4, 0, 5)
	}
	for i:=0; i<4; i++ {
		v.Set(i, 3, 1, 9)
	}

	c, err:=NewCensus(v)
	if err!=nil { t.Fatalf("census: %s", err.Error()) }
	if c.Voxels!=32 { t.Fatalf("voxels got %d want 32", c.Voxels) }
	if c.Support!=12 { t.Fatalf("support got %d want 12", c.Support) }
	if c.Labels!=2 { t.Fatalf("labels got %d want 2", c.Labels) }
	if c.Counts[5]!=8 || c.Counts[9]!=4 {
		t.Fatalf("counts got %v want 5:8 9:4", c.Counts)
	}

	// two labels at 2/3 and 1/3 frequency
	want:=-(2.0/3)*math.Log2(2.0/3) - (1.0/3)*math.Log2(1.0/3)
	if math.Abs(c.Entropy-want)>1e-12 {
		t.Fatalf("entropy got %v want %v", c.Entropy, want)
	}

	top:=c.Top(1)
	if len(top)!=1 || top[0].Label!=5 || top[0].Count!=8 {
		t.Fatalf("top got %v want label 5 count 8", top)
	}
}

func TestCensusEmpty(t *testing.T) {
	v, _:=volume.New(3, 3, 3, 1)
	c, err:=NewCensus(v)
	if err!=nil { t.Fatalf("census: %s", err.Error()) }
	if c.Support!=0 || c.Labels!=0 || c.Entropy!=0 {
		t.Fatalf("empty volume census %+v", c)
	}
}

func TestCensusSingleLabel(t *testing.T) {
	v, _:=volume.New(3, 3, 1, 8)
	for y:=0; y<3; y++ {
		for x:=0; x<3; x++ {
			v.Set(x, y, 0, 1<<40)
		}
	}
	c, err:=NewCensus(v)
	if err!=nil { t.Fatalf("census: %s", err.Error()) }
	if c.Support!=9 || c.Labels!=1 || c.Entropy!=0 {
		t.Fatalf("single label census %+v", c)
	}
	if c.Counts[1<<40]!=9 {
		t.Fatalf("counts got %v", c.Counts)
	}
}
