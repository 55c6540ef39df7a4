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


package qsort

import (
	"golang.org/x/exp/constraints"
)

// Sort an array of unsigned integer labels in ascending order
func QSortLabels[T constraints.Unsigned](a []T) {
	if len(a)>1 {
		index:=QPartitionLabels(a)
		QSortLabels(a[:index+1])
		QSortLabels(a[index+1:])
	}
}

// Partitions an array of labels around its middle element as pivot, and returns the split index.
// Afterwards a[:index+1] holds values <= pivot and a[index+1:] values >= pivot
func QPartitionLabels[T constraints.Unsigned](a []T) int {
	left, right:=0, len(a)-1
	mid  :=(left+right)>>1
	pivot:=a[mid]
	l:=left -1
	r:=right+1
	for {
		for {
			l++
			if a[l]>=pivot { break }
		}
		for {
			r--
			if a[r]<=pivot { break }
		}
		if l>=r { return r }
		a[l], a[r] = a[r], a[l]
	}
}
