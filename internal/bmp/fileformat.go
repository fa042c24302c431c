// BMP-specific structs and header parsing
package bmp

import (
	"encoding/binary"
	"fmt"
)

const (
	fileHeaderLen = 14 // BITMAPFILEHEADER
	coreHeaderLen = 12 // BITMAPCOREHEADER (OS/2 1.x)
	infoHeaderLen = 40 // BITMAPINFOHEADER
)

// Compression methods (biCompression)
const (
	biRGB  = 0 // uncompressed
	biRLE8 = 1 // RLE 8-bit/pixel
	biRLE4 = 2 // RLE 4-bit/pixel
)

// Recognized header field signatures.
// https://en.wikipedia.org/wiki/BMP_file_format#Bitmap_file_header
var signatures = [...]string{
	"BM", // Windows 3.1x, 95, NT, ... etc.
	"BA", // OS/2 struct bitmap array
	"CI", // OS/2 struct color icon
	"CP", // OS/2 const color pointer
	"IC", // OS/2 struct icon
	"PT", // OS/2 pointer
}

// The fileHeader structure contains information about the type, size,
// and layout of a file that contains a DIB [device-independent bitmap].
// https://learn.microsoft.com/en-us/windows/win32/api/wingdi/ns-wingdi-bitmapfileheader
type fileHeader struct {
	Type      [2]byte // The file type (one of the signatures above).
	Size      uint32  // The size, in bytes, of the bitmap file.
	Reserved1 uint16  // Reserved; must be zero.
	Reserved2 uint16  // Reserved; must be zero.
	OffBits   uint32  // Bitmap File Offset (In bytes) to Pixel Arrays
}

// The infoHeader structure contains information about the
// dimensions and color format of DIB [device-independent bitmap].
type infoHeader struct {
	Size            uint32 // The number of bytes required by the structure.
	Width           int32  // The width of the bitmap, in pixels. Negative means mirrored.
	Height          int32  // The height of the bitmap, in pixels. Negative means top-down.
	Planes          uint16 // The number of planes for the target device.
	BitCount        uint16 // The number of bits-per-pixel.
	Compression     uint32 // The type of compression
	SizeImage       uint32 // The size of the image (in bytes).
	XPixelsPerM     int32  // The horizontal resolution, in pixels-per-meter.
	YPixelsPerM     int32  // The vertical resolution, in pixels-per-meter.
	ColorsUsed      uint32 // Number of color indexes that are actually used by bitmap.
	ColorsImportant uint32 // Number of color indexes required for displaying the bitmap.
}

// The coreHeader is the legacy OS/2 1.x DIB header.
type coreHeader struct {
	Size     uint32 // The size of this header (12 bytes).
	Width    uint16 // The bitmap width in pixels.
	Height   uint16 // The bitmap height in pixels.
	Planes   uint16 // The number of color planes (1).
	BitCount uint16 // The number of bits per pixel.
}

// header is the validated metadata of a bitmap buffer.
type header struct {
	file fileHeader
	info infoHeader // core headers are widened into an info header
	core bool

	width, height int // absolute values
	flipX         bool
	flipY         bool // rows are stored top-down
}

func parseFileHeader(b []byte) fileHeader {
	return fileHeader{
		Type:      [2]byte{b[0], b[1]},
		Size:      binary.LittleEndian.Uint32(b[2:6]),
		Reserved1: binary.LittleEndian.Uint16(b[6:8]),
		Reserved2: binary.LittleEndian.Uint16(b[8:10]),
		OffBits:   binary.LittleEndian.Uint32(b[10:14]),
	}
}

func parseInfoHeader(b []byte) infoHeader {
	return infoHeader{
		Size:            binary.LittleEndian.Uint32(b[0:4]),
		Width:           int32(binary.LittleEndian.Uint32(b[4:8])),
		Height:          int32(binary.LittleEndian.Uint32(b[8:12])),
		Planes:          binary.LittleEndian.Uint16(b[12:14]),
		BitCount:        binary.LittleEndian.Uint16(b[14:16]),
		Compression:     binary.LittleEndian.Uint32(b[16:20]),
		SizeImage:       binary.LittleEndian.Uint32(b[20:24]),
		XPixelsPerM:     int32(binary.LittleEndian.Uint32(b[24:28])),
		YPixelsPerM:     int32(binary.LittleEndian.Uint32(b[28:32])),
		ColorsUsed:      binary.LittleEndian.Uint32(b[32:36]),
		ColorsImportant: binary.LittleEndian.Uint32(b[36:40]),
	}
}

func parseCoreHeader(b []byte) coreHeader {
	return coreHeader{
		Size:     binary.LittleEndian.Uint32(b[0:4]),
		Width:    binary.LittleEndian.Uint16(b[4:6]),
		Height:   binary.LittleEndian.Uint16(b[6:8]),
		Planes:   binary.LittleEndian.Uint16(b[8:10]),
		BitCount: binary.LittleEndian.Uint16(b[10:12]),
	}
}

// Reports whether data starts with a bitmap signature
func hasSignature(data []byte) bool {
	if len(data) < 2 {
		return false
	}
	for _, sig := range signatures {
		if string(data[:2]) == sig {
			return true
		}
	}
	return false
}

// parseHeader validates data as a bitmap and extracts its metadata.
// Every check runs before any pixel is looked at.
func parseHeader(data []byte) (*header, error) {
	if !hasSignature(data) {
		return nil, FormatError("not a BMP file")
	}
	if len(data) < fileHeaderLen {
		return nil, FormatError("truncated file header")
	}

	h := &header{file: parseFileHeader(data)}
	if int64(h.file.Size) != int64(len(data)) {
		return nil, FormatError(fmt.Sprintf("file size mismatch: header says %d, got %d", h.file.Size, len(data)))
	}

	dib := data[fileHeaderLen:]
	if len(dib) < 4 {
		return nil, FormatError("truncated DIB header")
	}

	if binary.LittleEndian.Uint32(dib) == coreHeaderLen {
		if len(dib) < coreHeaderLen {
			return nil, FormatError("truncated DIB header")
		}
		bc := parseCoreHeader(dib)
		if bc.Planes != 1 {
			return nil, FormatError(fmt.Sprintf("bad planes %d", bc.Planes))
		}
		h.core = true
		h.info = infoHeader{
			Size:     bc.Size,
			Width:    int32(bc.Width),
			Height:   int32(bc.Height),
			Planes:   bc.Planes,
			BitCount: bc.BitCount,
		}
	} else {
		if len(dib) < infoHeaderLen {
			return nil, FormatError("truncated DIB header")
		}
		h.info = parseInfoHeader(dib)
		if h.info.Planes != 1 {
			return nil, FormatError(fmt.Sprintf("bad planes %d", h.info.Planes))
		}

		// some compression methods require a specific bit count
		switch {
		case h.info.Compression == biRLE8 && h.info.BitCount != 8:
			return nil, FormatError(fmt.Sprintf("bad RLE8 bit count %d", h.info.BitCount))
		case h.info.Compression == biRLE4 && h.info.BitCount != 4:
			return nil, FormatError(fmt.Sprintf("bad RLE4 bit count %d", h.info.BitCount))
		}
	}

	// Pixels are stored bottom-up unless the height is negative
	h.width, h.flipX = abs(h.info.Width)
	h.height, h.flipY = abs(h.info.Height)

	return h, nil
}

// Returns the absolute value of n and whether n was negative
func abs(n int32) (int, bool) {
	if n < 0 {
		return -int(n), true
	}
	return int(n), false
}

// Byte offset of the color table: immediately after the DIB header
func (h *header) paletteOffset() int64 {
	return fileHeaderLen + int64(h.info.Size)
}

// Total bytes in a row (incl. padding to a 4-byte boundary)
func (h *header) stride() int64 {
	return (int64(h.info.BitCount)*int64(h.width) + 31) / 32 * 4
}
