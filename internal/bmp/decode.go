package bmp

import "fmt"

/*
 * BI_RGB pixel formats (R.G.B.A.X)
 *
 *        before V3  after V3
 * 16bpp  5.5.5.0.0  5.5.5.[0-1].[0-1]
 * 24bpp  8.8.8.0.0  8.8.8.0.0
 * 32bpp  8.8.8.0.0  8.8.8.[0-8].[0-8]
 *
 * Any alpha bits are ignored.
 */

type decoder struct {
	h       *header
	palette []byte // raw BGR0 entries
}

type decodeRowFunc func(d *decoder, src []byte, dst []Color) error

// Maps a source column onto its output column
func (d *decoder) column(x int) int {
	if d.h.flipX {
		return d.h.width - 1 - x
	}
	return x
}

// Maps a source row (file order) onto its output row
func (d *decoder) row(y int) int {
	if d.h.flipY {
		return y
	}
	return d.h.height - 1 - y
}

func (d *decoder) lookup(index int) (Color, error) {
	if index*4+4 > len(d.palette) {
		return 0, FormatError(fmt.Sprintf("palette index %d out of range", index))
	}
	entry := d.palette[index*4 : index*4+4]
	return MakeColor(Opaque, entry[2], entry[1], entry[0]), nil
}

// 1, 4 and 8 bits per pixel, most significant pixel first
func decodeRowPaletted(d *decoder, src []byte, dst []Color) error {
	bitCount := int(d.h.info.BitCount)
	ppb := 8 / bitCount // pixels per byte
	mask := byte(1<<bitCount - 1)

	for x := 0; x < d.h.width; x++ {
		shift := uint((ppb - 1 - x%ppb) * bitCount)
		index := src[x/ppb] >> shift & mask

		c, err := d.lookup(int(index))
		if err != nil {
			return err
		}
		dst[d.column(x)] = c
	}
	return nil
}

// X1R5G5B5, little-endian
func decodeRow16(d *decoder, src []byte, dst []Color) error {
	for x := 0; x < d.h.width; x++ {
		p := src[x*2 : x*2+2]

		b := p[0] & 0x1F
		g := (p[1]&0x03)<<3 | (p[0]>>5)&0x07
		r := (p[1] >> 2) & 0x1F

		dst[d.column(x)] = MakeColor(Opaque, scale5(r), scale5(g), scale5(b))
	}
	return nil
}

// Scales a 5-bit channel to [0, 255]
func scale5(v byte) uint8 {
	return uint8(int(v) * 255 / 31)
}

// B.G.R for 24 bpp, B.G.R.X for 32 bpp
func decodeRowBGR(d *decoder, src []byte, dst []Color) error {
	bytesPerPixel := int(d.h.info.BitCount) / 8
	for x := 0; x < d.h.width; x++ {
		p := src[x*bytesPerPixel:]
		dst[d.column(x)] = MakeColor(Opaque, p[2], p[1], p[0])
	}
	return nil
}

// decode turns the pixel data of a validated buffer into a top-down,
// left-to-right pixel array of exactly width*height colors.
func decode(h *header, data []byte) ([]Color, error) {
	// mainly means no BITMAPCOREHEADER support
	if h.info.Size < infoHeaderLen {
		return nil, UnsupportedError(fmt.Sprintf("DIB header type (header size %d)", h.info.Size))
	}
	if h.info.Compression != biRGB {
		return nil, UnsupportedError(fmt.Sprintf("compression method %d", h.info.Compression))
	}

	var decodeRow decodeRowFunc
	switch h.info.BitCount {
	case 1, 4, 8:
		decodeRow = decodeRowPaletted
	case 16:
		decodeRow = decodeRow16
	case 24, 32:
		decodeRow = decodeRowBGR
	default:
		return nil, UnsupportedError(fmt.Sprintf("bit depth %d", h.info.BitCount))
	}

	stride := h.stride()
	start := int64(h.file.OffBits)
	avail := int64(len(data)) - start
	if avail < 0 || (h.height > 0 && stride > avail/int64(h.height)) {
		return nil, FormatError("pixel data truncated")
	}

	// a zero dimension has no pixels to decode
	if h.width == 0 || h.height == 0 {
		h.width, h.height = 0, 0
		return []Color{}, nil
	}

	d := &decoder{h: h}
	if h.info.BitCount <= 8 {
		// the color table sits between the DIB header and the pixel data
		palStart, palEnd := h.paletteOffset(), min(start, int64(len(data)))
		if palStart < palEnd {
			d.palette = data[palStart:palEnd]
		}
	}

	pixels := make([]Color, h.width*h.height)
	for y := 0; y < h.height; y++ {
		offset := start + int64(y)*stride
		src := data[offset : offset+stride]

		dstRow := d.row(y) * h.width
		if err := decodeRow(d, src, pixels[dstRow:dstRow+h.width]); err != nil {
			return nil, err
		}
	}

	return pixels, nil
}
