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
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"io"
	"os"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/draw"
	"golang.org/x/image/tiff"
)

// Returns a stable preview color for the given label. Background is black.
// Hues follow a golden angle progression over a scrambled label value, so
// neighboring label IDs map to visually distant colors.
func LabelColor(label uint64) color.RGBA {
	if label==0 { return color.RGBA{0,0,0,255} }
	h:=label*0x9e3779b97f4a7c15
	h^=h>>29
	hue:=float64(h%3600)*0.1
	chroma:=0.4 + 0.2*float64((h>>32)%3)
	lum:=0.4 + 0.15*float64((h>>40)%3)
	r, g, b:=colorful.Hcl(hue, chroma, lum).Clamped().RGB255()
	return color.RGBA{r, g, b, 255}
}

// Renders the z-slice of a label volume as an RGBA image,
// coloring each label with its stable preview color
func (v *Volume) RenderSlice(z int) (*image.RGBA, error) {
	if err:=v.Validate(); err!=nil { return nil, err }
	if z<0 || z>=v.Sz {
		return nil, fmt.Errorf("preview slice z=%d outside volume %s", z, v.DimensionsToString())
	}
	img:=image.NewRGBA(image.Rect(0,0, v.Sx, v.Sy))
	for y:=0; y<v.Sy; y++ {
		for x:=0; x<v.Sx; x++ {
			img.SetRGBA(x, y, LabelColor(v.At(x,y,z)))
		}
	}
	return img, nil
}

// Scales an image to the given width with nearest neighbor sampling,
// keeping the aspect ratio. Nearest neighbor keeps label boundaries
// hard instead of blending adjacent label colors.
func ScaleTo(img *image.RGBA, width int) *image.RGBA {
	b:=img.Bounds()
	if width<=0 || width==b.Dx() { return img }
	height:=(b.Dy()*width + b.Dx()/2)/b.Dx()
	if height<1 { height=1 }
	out:=image.NewRGBA(image.Rect(0,0, width, height))
	draw.NearestNeighbor.Scale(out, out.Bounds(), img, b, draw.Src, nil)
	return out
}

// Writes a colored preview of the z-slice to a JPEG or TIFF file,
// chosen by filename suffix. A width of 0 keeps the native size.
func (v *Volume) WriteSliceToFile(fileName string, z, width int) error {
	img, err:=v.RenderSlice(z)
	if err!=nil { return err }
	img=ScaleTo(img, width)

	file, err:=os.Create(fileName)
	if err!=nil { return err }
	defer file.Close()
	writer:=bufio.NewWriter(file)
	defer writer.Flush()

	fnLower:=strings.ToLower(fileName)
	if strings.HasSuffix(fnLower, ".jpg") || strings.HasSuffix(fnLower, ".jpeg") {
		return writeSliceJPG(writer, img)
	} else if strings.HasSuffix(fnLower, ".tif") || strings.HasSuffix(fnLower, ".tiff") {
		return writeSliceTIFF(writer, img)
	}
	return fmt.Errorf("unknown preview suffix in %s, expected .jpg or .tif", fileName)
}

func writeSliceJPG(writer io.Writer, img *image.RGBA) error {
	return jpeg.Encode(writer, img, &jpeg.Options{Quality: 95})
}

func writeSliceTIFF(writer io.Writer, img *image.RGBA) error {
	return tiff.Encode(writer, img, &tiff.Options{Compression: tiff.Deflate, Predictor: true})
}
