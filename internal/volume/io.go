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
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"os"
)

// LMV is a minimal container for dense label volumes: an 8-byte magic,
// a fixed little-endian header with voxel width and the three extents,
// followed by the raw voxels in column major order, little-endian.

var lmvMagic=[8]byte{'L','M','V','O','L','1','0','0'}

const lmvHeaderBytes=8+4+3*8  // magic, uint32 width, three uint64 extents

// Reads a label volume from an LMV file
func ReadFromFile(fileName string) (*Volume, error) {
	file, err:=os.Open(fileName)
	if err!=nil { return nil, err }
	defer file.Close()
	return Read(bufio.NewReader(file))
}

// Reads a label volume from an LMV stream
func Read(r io.Reader) (*Volume, error) {
	header:=make([]byte, lmvHeaderBytes)
	if _, err:=io.ReadFull(r, header); err!=nil {
		return nil, fmt.Errorf("reading LMV header: %w", err)
	}
	for i, m:=range lmvMagic {
		if header[i]!=m {
			return nil, fmt.Errorf("not an LMV file: bad magic %q", header[:8])
		}
	}
	width:=int(binary.LittleEndian.Uint32(header[8:12]))
	sx:=binary.LittleEndian.Uint64(header[12:20])
	sy:=binary.LittleEndian.Uint64(header[20:28])
	sz:=binary.LittleEndian.Uint64(header[28:36])
	const maxExtent=uint64(1)<<40
	if sx==0 || sy==0 || sz==0 || sx>maxExtent || sy>maxExtent || sz>maxExtent {
		return nil, fmt.Errorf("invalid LMV extents %dx%dx%d", sx, sy, sz)
	}

	v, err:=New(int(sx), int(sy), int(sz), width)
	if err!=nil { return nil, err }

	buf:=make([]byte, v.Voxels()*v.Width)
	if _, err:=io.ReadFull(r, buf); err!=nil {
		return nil, fmt.Errorf("reading %s LMV voxels: %w", v.DimensionsToString(), err)
	}
	switch v.Width {
	case Width8:
		copy(v.U8, buf)
	case Width16:
		for i:=range v.U16 {
			v.U16[i]=binary.LittleEndian.Uint16(buf[2*i:])
		}
	case Width32:
		for i:=range v.U32 {
			v.U32[i]=binary.LittleEndian.Uint32(buf[4*i:])
		}
	case Width64:
		for i:=range v.U64 {
			v.U64[i]=binary.LittleEndian.Uint64(buf[8*i:])
		}
	}
	return v, nil
}

// Writes the volume to an LMV file
func (v *Volume) WriteToFile(fileName string) error {
	if err:=v.Validate(); err!=nil { return err }
	file, err:=os.Create(fileName)
	if err!=nil { return err }
	defer file.Close()

	w:=bufio.NewWriter(file)
	if err:=v.Write(w); err!=nil { return err }
	return w.Flush()
}

// Writes the volume to an LMV stream
func (v *Volume) Write(w io.Writer) error {
	header:=make([]byte, lmvHeaderBytes)
	copy(header, lmvMagic[:])
	binary.LittleEndian.PutUint32(header[8:12], uint32(v.Width))
	binary.LittleEndian.PutUint64(header[12:20], uint64(v.Sx))
	binary.LittleEndian.PutUint64(header[20:28], uint64(v.Sy))
	binary.LittleEndian.PutUint64(header[28:36], uint64(v.Sz))
	if _, err:=w.Write(header); err!=nil { return err }

	switch v.Width {
	case Width8:
		_, err:=w.Write(v.U8)
		return err
	case Width16:
		buf:=make([]byte, 2*len(v.U16))
		for i, l:=range v.U16 {
			binary.LittleEndian.PutUint16(buf[2*i:], l)
		}
		_, err:=w.Write(buf)
		return err
	case Width32:
		buf:=make([]byte, 4*len(v.U32))
		for i, l:=range v.U32 {
			binary.LittleEndian.PutUint32(buf[4*i:], l)
		}
		_, err:=w.Write(buf)
		return err
	default:
		buf:=make([]byte, 8*len(v.U64))
		for i, l:=range v.U64 {
			binary.LittleEndian.PutUint64(buf[8*i:], l)
		}
		_, err:=w.Write(buf)
		return err
	}
}
