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
	"fmt"
	"math"
	"sort"
	"strings"

	"gonum.org/v1/gonum/stat"

	"github.com/mlnoga/labelmorph/internal/volume"
)

// Basic statistics of a label volume: voxel counts per label,
// non-zero support, and the entropy of the label distribution
type Census struct {
	Voxels  int               `json:"voxels"`            // total voxels
	Support int               `json:"support"`           // non-zero voxels
	Labels  int               `json:"labels"`            // distinct non-zero labels
	Counts  map[uint64]int    `json:"counts,omitempty"`  // voxels per non-zero label
	Entropy float64           `json:"entropy"`           // Shannon entropy of the label distribution, in bits
}

// A label with its voxel count, for sorted reporting
type LabelCount struct {
	Label uint64 `json:"label"`
	Count int    `json:"count"`
}

// Walks the volume once and tallies voxels per label
func NewCensus(v *volume.Volume) (*Census, error) {
	if err:=v.Validate(); err!=nil { return nil, err }

	counts:=make(map[uint64]int)
	switch v.Width {
	case volume.Width8:
		for _, l:=range v.U8 {
			if l!=0 { counts[uint64(l)]++ }
		}
	case volume.Width16:
		for _, l:=range v.U16 {
			if l!=0 { counts[uint64(l)]++ }
		}
	case volume.Width32:
		for _, l:=range v.U32 {
			if l!=0 { counts[uint64(l)]++ }
		}
	default:
		for _, l:=range v.U64 {
			if l!=0 { counts[l]++ }
		}
	}

	c:=&Census{
		Voxels: v.Voxels(),
		Labels: len(counts),
		Counts: counts,
	}
	for _, ct:=range counts {
		c.Support+=ct
	}
	c.Entropy=labelEntropy(counts, c.Support)
	return c, nil
}

// Shannon entropy of the label frequency distribution over the non-zero
// support, in bits. Zero for empty or single-label volumes
func labelEntropy(counts map[uint64]int, support int) float64 {
	if support==0 { return 0 }
	p:=make([]float64, 0, len(counts))
	for _, ct:=range counts {
		p=append(p, float64(ct)/float64(support))
	}
	return stat.Entropy(p)/math.Ln2
}

// Returns the k most frequent labels, largest count first.
// Equal counts order by ascending label for stable output
func (c *Census) Top(k int) []LabelCount {
	lcs:=make([]LabelCount, 0, len(c.Counts))
	for l, ct:=range c.Counts {
		lcs=append(lcs, LabelCount{l, ct})
	}
	sort.Slice(lcs, func(i, j int) bool {
		if lcs[i].Count!=lcs[j].Count { return lcs[i].Count>lcs[j].Count }
		return lcs[i].Label<lcs[j].Label
	})
	if k>0 && k<len(lcs) { lcs=lcs[:k] }
	return lcs
}

// Formats the census for log output
func (c *Census) String() string {
	sb:=strings.Builder{}
	fmt.Fprintf(&sb, "%d voxels, %d non-zero (%.1f%%), %d labels, %.2f bits entropy",
		c.Voxels, c.Support, 100*float64(c.Support)/float64(c.Voxels), c.Labels, c.Entropy)
	for i, lc:=range c.Top(10) {
		if i==0 { sb.WriteString("\ntop labels:") }
		fmt.Fprintf(&sb, " %d:%d", lc.Label, lc.Count)
	}
	return sb.String()
}
