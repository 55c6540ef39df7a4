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


package main

import (
	"time"

	"github.com/valyala/fastrand"

	"github.com/mlnoga/labelmorph/internal/logw"
	"github.com/mlnoga/labelmorph/internal/volume"
)

// Generates a synthetic label volume per the synth flags and stores it.
// Uniform mode draws every voxel independently: background with probability
// 1-density, else one of the given number of labels. Cell mode assigns one
// label per cubic cell of the given edge length, which produces the large
// homogeneous regions the stencil fast paths thrive on.
func runSynth() {
	v, err:=volume.New(int(*synthSx), int(*synthSy), int(*synthSz), int(*synthWidth))
	if err!=nil {
		logw.Fatalf("Error allocating synthetic volume: %s\n", err.Error())
	}

	labels:=uint32(*synthLabels)
	if labels<1 { labels=1 }
	maxLabel:=uint64(1)<<uint(8* *synthWidth) - 1
	if uint64(labels)>maxLabel { labels=uint32(maxLabel) }

	rng:=fastrand.RNG{}
	if *synthSeed!=0 {
		rng.Seed(uint32(*synthSeed))
	} else {
		rng.Seed(uint32(time.Now().UnixNano()))
	}

	if *synthCell>0 {
		cell:=int(*synthCell)
		for z:=0; z<v.Sz; z++ {
			for y:=0; y<v.Sy; y++ {
				for x:=0; x<v.Sx; x++ {
					// hash the cell coordinates into a stable label
					cx, cy, cz:=uint64(x/cell), uint64(y/cell), uint64(z/cell)
					h:=(cx*0x9e3779b1 + cy*0x85ebca6b + cz*0xc2b2ae35)
					h^=h>>13
					v.Set(x, y, z, uint64(h%uint64(labels))+1)
				}
			}
		}
	} else {
		threshold:=uint64(*synthDensity*42949672.96)  // percent of 2^32
		for z:=0; z<v.Sz; z++ {
			for y:=0; y<v.Sy; y++ {
				for x:=0; x<v.Sx; x++ {
					if uint64(rng.Uint32())<threshold {
						v.Set(x, y, z, uint64(rng.Uint32n(labels))+1)
					}
				}
			}
		}
	}

	if err:=v.WriteToFile(*out); err!=nil {
		logw.Fatalf("Error writing '%s': %s\n", *out, err.Error())
	}
	logw.Printf("Wrote synthetic %s volume to %s\n", v.DimensionsToString(), *out)
	writePreview(v)
}
