// Package bmptest hand-encodes small BMP buffers for tests.
package bmptest

import "encoding/binary"

// Options describes a bitmap with a 40-byte info header.
type Options struct {
	Signature   string // "BM" if empty
	Width       int32
	Height      int32
	Planes      uint16 // 1 if zero
	BitCount    uint16
	Compression uint32
	Palette     []uint32 // 0xRRGGBB entries, written as B,G,R,0
	Rows        [][]byte // raw rows in file order, padded here to 4 bytes
	Pad         byte     // value of the padding bytes
}

// Build returns the encoded bitmap. The file size and pixel offset fields
// match the produced buffer.
func Build(o Options) []byte {
	sig := o.Signature
	if sig == "" {
		sig = "BM"
	}
	planes := o.Planes
	if planes == 0 {
		planes = 1
	}

	var pixels []byte
	for _, row := range o.Rows {
		pixels = append(pixels, row...)
		for n := len(row); n%4 != 0; n++ {
			pixels = append(pixels, o.Pad)
		}
	}

	offset := 14 + 40 + 4*len(o.Palette)
	size := offset + len(pixels)
	b := make([]byte, offset, size)

	// BITMAPFILEHEADER
	copy(b[0:2], sig)
	binary.LittleEndian.PutUint32(b[2:6], uint32(size))
	binary.LittleEndian.PutUint32(b[10:14], uint32(offset))

	// BITMAPINFOHEADER
	binary.LittleEndian.PutUint32(b[14:18], 40)
	binary.LittleEndian.PutUint32(b[18:22], uint32(o.Width))
	binary.LittleEndian.PutUint32(b[22:26], uint32(o.Height))
	binary.LittleEndian.PutUint16(b[26:28], planes)
	binary.LittleEndian.PutUint16(b[28:30], o.BitCount)
	binary.LittleEndian.PutUint32(b[30:34], o.Compression)
	binary.LittleEndian.PutUint32(b[34:38], uint32(len(pixels)))
	binary.LittleEndian.PutUint32(b[38:42], 2835)
	binary.LittleEndian.PutUint32(b[42:46], 2835)
	binary.LittleEndian.PutUint32(b[46:50], uint32(len(o.Palette)))

	// Color table
	for i, c := range o.Palette {
		p := b[54+4*i:]
		p[0] = byte(c)
		p[1] = byte(c >> 8)
		p[2] = byte(c >> 16)
	}

	return append(b, pixels...)
}

// BuildCore returns a bitmap using the legacy 12-byte core header.
func BuildCore(width, height, planes, bitCount uint16, pixels []byte) []byte {
	offset := 14 + 12
	size := offset + len(pixels)
	b := make([]byte, offset, size)

	copy(b[0:2], "BM")
	binary.LittleEndian.PutUint32(b[2:6], uint32(size))
	binary.LittleEndian.PutUint32(b[10:14], uint32(offset))

	binary.LittleEndian.PutUint32(b[14:18], 12)
	binary.LittleEndian.PutUint16(b[18:20], width)
	binary.LittleEndian.PutUint16(b[20:22], height)
	binary.LittleEndian.PutUint16(b[22:24], planes)
	binary.LittleEndian.PutUint16(b[24:26], bitCount)

	return append(b, pixels...)
}

// BGR encodes 0xRRGGBB colors as 24 bpp pixel bytes.
func BGR(colors ...uint32) []byte {
	var b []byte
	for _, c := range colors {
		b = append(b, byte(c), byte(c>>8), byte(c>>16))
	}
	return b
}
