package bmp_test

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anas-shakeel/bmp2html/internal/bmp"
	"github.com/anas-shakeel/bmp2html/internal/bmptest"
)

const (
	red   = 0xFF0000
	green = 0x00FF00
	blue  = 0x0000FF
	white = 0xFFFFFF
	black = 0x000000
)

func opaque(rgb ...uint32) []bmp.Color {
	colors := make([]bmp.Color, len(rgb))
	for i, c := range rgb {
		colors[i] = bmp.Color(0xFF000000 | c)
	}
	return colors
}

// Returns all pixels of b in row-major order
func pixelsOf(b *bmp.Bitmap) []bmp.Color {
	var colors []bmp.Color
	for y := 0; y < b.Height(); y++ {
		for x := 0; x < b.Width(); x++ {
			colors = append(colors, b.ColorAt(x, y))
		}
	}
	return colors
}

func TestDecodeBitDepths(t *testing.T) {
	gray16 := make([]uint32, 16)
	for i := range gray16 {
		gray16[i] = uint32(i) * 0x111111
	}

	tests := []struct {
		name   string
		opts   bmptest.Options
		width  int
		height int
		want   []bmp.Color
	}{
		{
			name: "1bpp",
			opts: bmptest.Options{
				Width: 10, Height: 1, BitCount: 1,
				Palette: []uint32{black, white},
				Rows:    [][]byte{{0xB0, 0x40}},
			},
			width: 10, height: 1,
			want: opaque(white, black, white, white, black, black, black, black, black, white),
		},
		{
			name: "4bpp",
			opts: bmptest.Options{
				Width: 4, Height: 1, BitCount: 4,
				Palette: gray16,
				Rows:    [][]byte{{0xF0, 0x7A}},
			},
			width: 4, height: 1,
			want: opaque(0xFFFFFF, 0x000000, 0x777777, 0xAAAAAA),
		},
		{
			name: "8bpp",
			opts: bmptest.Options{
				Width: 3, Height: 1, BitCount: 8,
				Palette: []uint32{black, 0xFF8000, 0x123456},
				Rows:    [][]byte{{1, 2, 0}},
			},
			width: 3, height: 1,
			want: opaque(0xFF8000, 0x123456, black),
		},
		{
			name: "16bpp",
			opts: bmptest.Options{
				Width: 4, Height: 1, BitCount: 16,
				// 0x7C00, 0x03E0, 0x001F and 0xC101 (top bit set, R=16 G=8 B=1)
				Rows: [][]byte{{0x00, 0x7C, 0xE0, 0x03, 0x1F, 0x00, 0x01, 0xC1}},
			},
			width: 4, height: 1,
			want: opaque(red, green, blue, 0x834108),
		},
		{
			name: "24bpp",
			opts: bmptest.Options{
				Width: 2, Height: 2, BitCount: 24,
				Rows: [][]byte{bmptest.BGR(blue, green), bmptest.BGR(red, white)},
			},
			width: 2, height: 2,
			want: opaque(red, white, blue, green),
		},
		{
			name: "32bpp ignores alpha byte",
			opts: bmptest.Options{
				Width: 2, Height: 1, BitCount: 32,
				Rows: [][]byte{{0x10, 0x20, 0x30, 0x00, 0xAA, 0xBB, 0xCC, 0x7F}},
			},
			width: 2, height: 1,
			want: opaque(0x302010, 0xCCBBAA),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := bmp.LoadFromBytes(bmptest.Build(tt.opts))
			require.NoError(t, err)
			assert.Equal(t, tt.width, b.Width())
			assert.Equal(t, tt.height, b.Height())
			assert.Equal(t, tt.want, pixelsOf(b))
		})
	}
}

func TestDecodeOrientation(t *testing.T) {
	tests := []struct {
		name          string
		width, height int32
		rows          [][]byte
		want          []bmp.Color
	}{
		{"2x1", 2, 1, [][]byte{bmptest.BGR(red, green)}, opaque(red, green)},
		{"2x1 negative width", -2, 1, [][]byte{bmptest.BGR(red, green)}, opaque(green, red)},
		{"1x2 bottom-up", 1, 2, [][]byte{bmptest.BGR(red), bmptest.BGR(green)}, opaque(green, red)},
		{"1x2 negative height", 1, -2, [][]byte{bmptest.BGR(red), bmptest.BGR(green)}, opaque(red, green)},
		{
			"2x2 both negative", -2, -2,
			[][]byte{bmptest.BGR(red, green), bmptest.BGR(blue, white)},
			opaque(green, red, white, blue),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := bmptest.Build(bmptest.Options{
				Width: tt.width, Height: tt.height, BitCount: 24, Rows: tt.rows,
			})

			b, err := bmp.LoadFromBytes(data)
			require.NoError(t, err)
			assert.Equal(t, int(abs(tt.width)), b.Width())
			assert.Equal(t, int(abs(tt.height)), b.Height())
			assert.Equal(t, tt.want, pixelsOf(b))
		})
	}
}

func TestDecodeMirroredDepths(t *testing.T) {
	gray16 := make([]uint32, 16)
	for i := range gray16 {
		gray16[i] = uint32(i) * 0x111111
	}

	tests := []struct {
		name string
		opts bmptest.Options
		want []bmp.Color
	}{
		{
			name: "4bpp negative width",
			opts: bmptest.Options{
				Width: -3, Height: 1, BitCount: 4,
				Palette: gray16,
				Rows:    [][]byte{{0xF0, 0x70}},
			},
			want: opaque(0x777777, black, white),
		},
		{
			name: "8bpp both negative",
			opts: bmptest.Options{
				Width: -3, Height: -2, BitCount: 8,
				Palette: []uint32{black, 0xFF8000, 0x123456},
				Rows:    [][]byte{{1, 2, 0}, {2, 0, 1}},
			},
			want: opaque(black, 0x123456, 0xFF8000, 0xFF8000, black, 0x123456),
		},
		{
			name: "16bpp negative width",
			opts: bmptest.Options{
				Width: -2, Height: 1, BitCount: 16,
				Rows: [][]byte{{0x00, 0x7C, 0xE0, 0x03}},
			},
			want: opaque(green, red),
		},
		{
			name: "32bpp negative width",
			opts: bmptest.Options{
				Width: -2, Height: 1, BitCount: 32,
				Rows: [][]byte{{0x10, 0x20, 0x30, 0x00, 0xAA, 0xBB, 0xCC, 0x00}},
			},
			want: opaque(0xCCBBAA, 0x302010),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := bmp.LoadFromBytes(bmptest.Build(tt.opts))
			require.NoError(t, err)
			assert.Equal(t, tt.want, pixelsOf(b))
		})
	}
}

func TestDecodeZeroDimension(t *testing.T) {
	tests := []struct {
		name          string
		width, height int32
	}{
		{"0x0", 0, 0},
		{"zero width, max height", 0, 0x7FFFFFFF},
		{"zero width, min height", 0, -0x80000000},
		{"zero height", 5, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := bmptest.Build(bmptest.Options{Width: tt.width, Height: tt.height, BitCount: 24})

			b, err := bmp.LoadFromBytes(data)
			require.NoError(t, err)
			assert.True(t, b.Loaded())
			assert.Zero(t, b.Width())
			assert.Zero(t, b.Height())
			assert.Empty(t, pixelsOf(b))
		})
	}
}

func abs(n int32) int32 {
	if n < 0 {
		return -n
	}
	return n
}

func TestDecodeRowPadding(t *testing.T) {
	// 3 pixels at 8bpp fill 3 bytes of a 4-byte row
	data := bmptest.Build(bmptest.Options{
		Width: 3, Height: 2, BitCount: 8,
		Palette: []uint32{black, 0xFF8000, 0x123456},
		Rows:    [][]byte{{1, 2, 0}, {2, 0, 1}},
		Pad:     1,
	})

	b, err := bmp.LoadFromBytes(data)
	require.NoError(t, err)

	assert.Equal(t, opaque(0x123456, black, 0xFF8000), pixelsOf(b)[:3])
	assert.Equal(t, opaque(0xFF8000)[0], b.ColorAt(0, 1))
	assert.Equal(t, opaque(0xFF8000, 0x123456, black), pixelsOf(b)[3:])
}

func TestDecodeRejects(t *testing.T) {
	valid := func() bmptest.Options {
		return bmptest.Options{
			Width: 2, Height: 2, BitCount: 24,
			Rows: [][]byte{bmptest.BGR(blue, green), bmptest.BGR(red, white)},
		}
	}

	tests := []struct {
		name        string
		data        func() []byte
		unsupported bool
	}{
		{"empty", func() []byte { return nil }, false},
		{"one byte", func() []byte { return []byte("B") }, false},
		{"signature only", func() []byte { return []byte("BM") }, false},
		{"bad signature", func() []byte {
			data := bmptest.Build(valid())
			copy(data, "XX")
			return data
		}, false},
		{"size one too large", func() []byte {
			data := bmptest.Build(valid())
			binary.LittleEndian.PutUint32(data[2:6], uint32(len(data)+1))
			return data
		}, false},
		{"trailing byte", func() []byte {
			return append(bmptest.Build(valid()), 0)
		}, false},
		{"truncated DIB header", func() []byte {
			data := bmptest.Build(valid())[:30]
			binary.LittleEndian.PutUint32(data[2:6], 30)
			return data
		}, false},
		{"planes", func() []byte {
			o := valid()
			o.Planes = 2
			return bmptest.Build(o)
		}, false},
		{"RLE8 with 4bpp", func() []byte {
			return bmptest.Build(bmptest.Options{
				Width: 2, Height: 1, BitCount: 4, Compression: 1,
				Palette: []uint32{black, white}, Rows: [][]byte{{0x01}},
			})
		}, false},
		{"RLE4 with 8bpp", func() []byte {
			return bmptest.Build(bmptest.Options{
				Width: 2, Height: 1, BitCount: 8, Compression: 2,
				Palette: []uint32{black, white}, Rows: [][]byte{{0, 1}},
			})
		}, false},
		{"pixel data truncated", func() []byte {
			data := bmptest.Build(valid())
			binary.LittleEndian.PutUint32(data[22:26], 3)
			return data
		}, false},
		{"huge width", func() []byte {
			data := bmptest.Build(valid())
			binary.LittleEndian.PutUint32(data[18:22], 0x7FFFFFFF)
			return data
		}, false},
		{"min int32 width and height at 24bpp", func() []byte {
			data := bmptest.Build(bmptest.Options{Width: 1, Height: 1, BitCount: 24, Rows: [][]byte{bmptest.BGR(red)}})
			binary.LittleEndian.PutUint32(data[18:22], 0x80000000)
			binary.LittleEndian.PutUint32(data[22:26], 0x80000000)
			return data
		}, false},
		{"min int32 width and height at 32bpp", func() []byte {
			data := bmptest.Build(bmptest.Options{Width: 1, Height: 1, BitCount: 32, Rows: [][]byte{{0, 0, 0, 0}}})
			binary.LittleEndian.PutUint32(data[18:22], 0x80000000)
			binary.LittleEndian.PutUint32(data[22:26], 0x80000000)
			return data
		}, false},
		{"huge height", func() []byte {
			data := bmptest.Build(valid())
			binary.LittleEndian.PutUint32(data[22:26], 0x7FFFFFFF)
			return data
		}, false},
		{"pixel offset past end", func() []byte {
			data := bmptest.Build(valid())
			binary.LittleEndian.PutUint32(data[10:14], uint32(len(data)))
			return data
		}, false},
		{"palette index out of range", func() []byte {
			return bmptest.Build(bmptest.Options{
				Width: 1, Height: 1, BitCount: 8,
				Palette: []uint32{black, white}, Rows: [][]byte{{5}},
			})
		}, false},
		{"RLE8 with 8bpp", func() []byte {
			return bmptest.Build(bmptest.Options{
				Width: 2, Height: 1, BitCount: 8, Compression: 1,
				Palette: []uint32{black, white}, Rows: [][]byte{{0, 1}},
			})
		}, true},
		{"RLE4 with 4bpp", func() []byte {
			return bmptest.Build(bmptest.Options{
				Width: 2, Height: 1, BitCount: 4, Compression: 2,
				Palette: []uint32{black, white}, Rows: [][]byte{{0x01}},
			})
		}, true},
		{"bitfields", func() []byte {
			return bmptest.Build(bmptest.Options{
				Width: 1, Height: 1, BitCount: 32, Compression: 3,
				Rows: [][]byte{{0, 0, 0, 0}},
			})
		}, true},
		{"2bpp", func() []byte {
			return bmptest.Build(bmptest.Options{
				Width: 1, Height: 1, BitCount: 2,
				Palette: []uint32{black, white, red, blue}, Rows: [][]byte{{0}},
			})
		}, true},
		{"0bpp", func() []byte {
			return bmptest.Build(bmptest.Options{Width: 1, Height: 1, BitCount: 0})
		}, true},
		{"core header", func() []byte {
			return bmptest.BuildCore(1, 1, 1, 24, bmptest.BGR(red))
		}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var b bmp.Bitmap
			err := b.LoadFromBytes(tt.data())
			require.Error(t, err)

			if tt.unsupported {
				assert.IsType(t, bmp.UnsupportedError(""), err)
			} else {
				assert.IsType(t, bmp.FormatError(""), err)
			}

			assert.False(t, b.Loaded())
			assert.Zero(t, b.Width())
			assert.Zero(t, b.Height())
			assert.Equal(t, err, b.Err())
		})
	}
}

func TestSignatures(t *testing.T) {
	for _, sig := range []string{"BM", "BA", "CI", "CP", "IC", "PT"} {
		t.Run(sig, func(t *testing.T) {
			data := bmptest.Build(bmptest.Options{
				Signature: sig, Width: 1, Height: 1, BitCount: 24,
				Rows: [][]byte{bmptest.BGR(red)},
			})

			b, err := bmp.LoadFromBytes(data)
			require.NoError(t, err)
			assert.Equal(t, opaque(red), pixelsOf(b))
		})
	}
}

func TestCorePlanes(t *testing.T) {
	_, err := bmp.LoadFromBytes(bmptest.BuildCore(1, 1, 2, 24, bmptest.BGR(red)))
	assert.IsType(t, bmp.FormatError(""), err)
}

func TestDecodeConfig(t *testing.T) {
	data := bmptest.Build(bmptest.Options{
		Width: -3, Height: -2, BitCount: 8,
		Palette: []uint32{black, 0xFF8000, 0x123456},
		Rows:    [][]byte{{1, 2, 0}, {2, 0, 1}},
	})

	cfg, err := bmp.DecodeConfig(data)
	require.NoError(t, err)
	assert.Equal(t, bmp.Config{
		Signature:   "BM",
		FileSize:    len(data),
		PixelOffset: 66,
		HeaderSize:  40,
		Width:       3,
		Height:      2,
		FlipX:       true,
		FlipY:       true,
		Planes:      1,
		BitCount:    8,
		Colors:      3,
	}, cfg)
	assert.Equal(t, 4, cfg.Stride())

	cfg, err = bmp.DecodeConfig(bmptest.BuildCore(1, 1, 1, 8, []byte{0, 0, 0, 0}))
	require.NoError(t, err)
	assert.True(t, cfg.Core)
	assert.Equal(t, 256, cfg.Colors)

	_, err = bmp.DecodeConfig([]byte("BM"))
	assert.IsType(t, bmp.FormatError(""), err)
}
