package htmlwriter

import (
	"fmt"
	"io"

	"github.com/anas-shakeel/bmp2html/internal/bmp"
	"github.com/anas-shakeel/bmp2html/internal/utils"
)

// DefaultRamp lists ASCII-art characters from darkest to lightest.
const DefaultRamp = "@O1ir:. "

// A PixelEmitter decides how an ImageWriter draws each pixel. The set is
// closed: Mosaic and ASCIIArt.
type PixelEmitter interface {
	titlePrefix() string
	style() string
	writePixel(w io.Writer, c bmp.Color) error
}

// Mosaic draws every pixel as a 5x5 colored box.
type Mosaic struct{}

func (Mosaic) titlePrefix() string { return "Image to HTML: " }

func (Mosaic) style() string {
	return "*{margin:0;padding:0;line-height:5px;}\n" +
		".pixel{width:5px;height:5px;float:left;}\n"
}

func (Mosaic) writePixel(w io.Writer, c bmp.Color) error {
	_, err := fmt.Fprintf(w, `<div class="pixel" style="background-color:#%06x"></div>`, c.RGB())
	return err
}

// ASCIIArt draws every pixel as one character of Ramp picked by luminance.
type ASCIIArt struct {
	Ramp string // darkest first; nothing is drawn if empty
}

func (ASCIIArt) titlePrefix() string { return "Image to Ascii Art: " }

func (ASCIIArt) style() string {
	return "body{margin:0;padding:0;font-size:6px;line-height:6px;letter-spacing:0px;font-family:monospace;}\n"
}

func (a ASCIIArt) writePixel(w io.Writer, c bmp.Color) error {
	ramp := []rune(a.Ramp)
	if len(ramp) == 0 {
		return nil
	}

	ch := ramp[RampIndex(Luminance(c), len(ramp))]
	_, err := io.WriteString(w, Escape(string(ch)))
	return err
}

// Luminance is the plain average of the red, green and blue channels.
func Luminance(c bmp.Color) int {
	return utils.Average(c.R(), c.G(), c.B())
}

// RampIndex maps a luminance in [0, 255] onto one of n equal-width
// buckets. Values past the last full bucket land in the last one.
func RampIndex(lum, n int) int {
	span := max(255/n, 1)
	return min(lum/span, n-1)
}
