// bmp package implements a bitmap reader for uncompressed 1/4/8/16/24/32 bpp
// BMP files. No alpha channel support: every decoded pixel is opaque.
package bmp

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"
	"os"

	"github.com/anas-shakeel/bmp2html/internal/utils"
)

// Bitmap owns a decoded, top-down, left-to-right pixel buffer.
//
// The zero value is an empty bitmap. A Bitmap holds pixels only while its
// last load succeeded; a failed load leaves it empty with the error
// recorded. A Bitmap is not safe for concurrent use.
type Bitmap struct {
	width  int
	height int
	pixels []Color
	err    error
}

// Creates an opaque black bitmap of the given size
func New(width, height int) (*Bitmap, error) {
	if width < 0 {
		return nil, errors.New("width must not be negative")
	} else if height < 0 {
		return nil, errors.New("height must not be negative")
	}

	pixels := make([]Color, width*height)
	for i := range pixels {
		pixels[i] = MakeColor(Opaque, 0, 0, 0)
	}

	return &Bitmap{width: width, height: height, pixels: pixels}, nil
}

// Reads and decodes a bitmap file
func Load(filename string) (*Bitmap, error) {
	b := new(Bitmap)
	if err := b.Load(filename); err != nil {
		return nil, err
	}
	return b, nil
}

// Decodes a bitmap held in memory
func LoadFromBytes(data []byte) (*Bitmap, error) {
	b := new(Bitmap)
	if err := b.LoadFromBytes(data); err != nil {
		return nil, err
	}
	return b, nil
}

// FromImage copies any image into a new bitmap. Alpha is dropped.
func FromImage(img image.Image) *Bitmap {
	bounds := img.Bounds()
	b := &Bitmap{
		width:  bounds.Dx(),
		height: bounds.Dy(),
		pixels: make([]Color, bounds.Dx()*bounds.Dy()),
	}

	for y := 0; y < b.height; y++ {
		for x := 0; x < b.width; x++ {
			c := color.NRGBAModel.Convert(img.At(bounds.Min.X+x, bounds.Min.Y+y)).(color.NRGBA)
			b.pixels[x+y*b.width] = MakeColor(Opaque, c.R, c.G, c.B)
		}
	}

	return b
}

// Load reads the whole file into memory and decodes it. Any pixels held
// before the call are released first.
func (b *Bitmap) Load(filename string) error {
	b.Free()

	data, err := os.ReadFile(filename)
	if err != nil {
		b.err = &IOError{Path: filename, Err: err}
		return b.err
	}

	return b.LoadFromBytes(data)
}

// LoadFromBytes validates and decodes data. Any pixels held before the
// call are released first; on failure the bitmap stays empty.
func (b *Bitmap) LoadFromBytes(data []byte) error {
	b.Free()

	h, err := parseHeader(data)
	if err != nil {
		b.err = err
		return err
	}

	pixels, err := decode(h, data)
	if err != nil {
		b.err = err
		return err
	}

	b.width, b.height, b.pixels = h.width, h.height, pixels
	return nil
}

// Releases the pixels and clears the recorded error
func (b *Bitmap) Free() {
	b.width = 0
	b.height = 0
	b.pixels = nil
	b.err = nil
}

// Width in pixels (never negative)
func (b *Bitmap) Width() int { return b.width }

// Height in pixels (never negative)
func (b *Bitmap) Height() int { return b.height }

// Loaded reports whether the bitmap holds pixels.
func (b *Bitmap) Loaded() bool { return b.pixels != nil }

// Err returns the error recorded by the last failed load, if any.
func (b *Bitmap) Err() error { return b.err }

// ColorAt returns the pixel at column x, row y (0,0 is the top-left).
// x and y must lie inside the bitmap.
func (b *Bitmap) ColorAt(x, y int) Color {
	return b.pixels[x+y*b.width]
}

// Set replaces the pixel at column x, row y.
func (b *Bitmap) Set(x, y int, c Color) {
	b.pixels[x+y*b.width] = c
}

// Returns a deep copy of the bitmap
func (b *Bitmap) Clone() *Bitmap {
	dup := Bitmap{
		width:  b.width,
		height: b.height,
		err:    b.err,
	}
	if b.pixels != nil {
		dup.pixels = make([]Color, len(b.pixels))
		copy(dup.pixels, b.pixels)
	}
	return &dup
}

// Move transfers the pixels to a new bitmap and leaves b empty.
func (b *Bitmap) Move() *Bitmap {
	moved := &Bitmap{
		width:  b.width,
		height: b.height,
		pixels: b.pixels,
		err:    b.err,
	}
	b.Free()
	return moved
}

// ColorModel implements image.Image.
func (b *Bitmap) ColorModel() color.Model { return ColorModel }

// Bounds implements image.Image.
func (b *Bitmap) Bounds() image.Rectangle { return image.Rect(0, 0, b.width, b.height) }

// At implements image.Image. Points outside the bitmap are transparent black.
func (b *Bitmap) At(x, y int) color.Color {
	if !(image.Point{X: x, Y: y}.In(b.Bounds())) {
		return Color(0)
	}
	return b.ColorAt(x, y)
}

// Print the bitmap in terminal. Use for small images only
func (b *Bitmap) Print(w io.Writer) {
	for y := 0; y < b.height; y++ {
		for x := 0; x < b.width; x++ {
			c := b.ColorAt(x, y)
			fmt.Fprint(w, utils.ColoredBlock("  ", c.R(), c.G(), c.B()))
		}
		fmt.Fprint(w, "\n")
	}
}
