package bmp

import "image/color"

// Color is a packed 0xAARRGGBB value.
type Color uint32

// Opaque is the alpha value of every decoded pixel (alpha is not supported).
const Opaque = 0xFF

// Builds a Color from its four channels
func MakeColor(a, r, g, b uint8) Color {
	return Color(a)<<24 | Color(r)<<16 | Color(g)<<8 | Color(b)
}

func (c Color) A() uint8 { return uint8(c >> 24) }
func (c Color) R() uint8 { return uint8(c >> 16) }
func (c Color) G() uint8 { return uint8(c >> 8) }
func (c Color) B() uint8 { return uint8(c) }

// RGB returns the color without its alpha channel (0xRRGGBB)
func (c Color) RGB() uint32 {
	return uint32(c) & 0xFFFFFF
}

// RGBA implements color.Color. Channels are treated as non-premultiplied,
// which is exact for the opaque colors the decoder produces.
func (c Color) RGBA() (r, g, b, a uint32) {
	return color.NRGBA{R: c.R(), G: c.G(), B: c.B(), A: c.A()}.RGBA()
}

// ColorModel converts any color into a Color.
var ColorModel = color.ModelFunc(toColor)

func toColor(c color.Color) color.Color {
	if c, ok := c.(Color); ok {
		return c
	}
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return MakeColor(n.A, n.R, n.G, n.B)
}
