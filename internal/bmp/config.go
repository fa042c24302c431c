package bmp

import (
	"fmt"
	"io"
)

// Config describes a bitmap's headers without decoding its pixels.
type Config struct {
	Signature   string
	FileSize    int
	PixelOffset int
	HeaderSize  int
	Width       int // absolute
	Height      int // absolute
	FlipX       bool
	FlipY       bool
	Planes      int
	BitCount    int
	Compression int
	Colors      int // palette entries declared by the header (0 if none)
	Core        bool
}

// DecodeConfig validates data as a bitmap and reports its metadata. A
// bitmap that DecodeConfig accepts may still fail to decode (e.g. RLE
// compression or a legacy core header).
func DecodeConfig(data []byte) (Config, error) {
	h, err := parseHeader(data)
	if err != nil {
		return Config{}, err
	}

	colors := int(h.info.ColorsUsed)
	if colors == 0 && h.info.BitCount >= 1 && h.info.BitCount <= 8 {
		colors = 1 << h.info.BitCount
	}

	return Config{
		Signature:   string(h.file.Type[:]),
		FileSize:    int(h.file.Size),
		PixelOffset: int(h.file.OffBits),
		HeaderSize:  int(h.info.Size),
		Width:       h.width,
		Height:      h.height,
		FlipX:       h.flipX,
		FlipY:       h.flipY,
		Planes:      int(h.info.Planes),
		BitCount:    int(h.info.BitCount),
		Compression: int(h.info.Compression),
		Colors:      colors,
		Core:        h.core,
	}, nil
}

// Row size in bytes (incl. padding)
func (c Config) Stride() int {
	return (c.BitCount*c.Width + 31) / 32 * 4
}

// Print the metadata in human-readable format
func (c Config) Print(w io.Writer) {
	fmt.Fprintf(w, "Signature: \t%v\n", c.Signature)
	fmt.Fprintf(w, "Filesize: \t%v bytes\n", c.FileSize)
	fmt.Fprintf(w, "HeaderSize: \t%v bytes\n", c.HeaderSize)
	fmt.Fprintf(w, "Width: \t\t%v px\n", c.Width)
	fmt.Fprintf(w, "Height: \t%v px\n", c.Height)
	fmt.Fprintf(w, "TopDown: \t%v\n", c.FlipY)
	fmt.Fprintf(w, "Mirrored: \t%v\n", c.FlipX)
	fmt.Fprintf(w, "BitCount: \t%vbits\n", c.BitCount)
	fmt.Fprintf(w, "Compression: \t%v\n", c.Compression)
	fmt.Fprintf(w, "Colors: \t%v\n", c.Colors)
	fmt.Fprintf(w, "PixelOffset: \t%v bytes\n", c.PixelOffset)
	fmt.Fprintf(w, "PixelCount: \t%v pixels\n", c.Width*c.Height)
	fmt.Fprintf(w, "Stride: \t%v bytes\n", c.Stride())
}
