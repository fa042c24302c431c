// Filters perform color manipulation and per-pixel operations
package filters

import (
	"errors"

	"github.com/anas-shakeel/bmp2html/internal/bmp"
	"github.com/anas-shakeel/bmp2html/internal/utils"
)

// Applies fn to every pixel of the bitmap in-place. Alpha stays opaque.
func apply(b *bmp.Bitmap, fn func(r, g, b uint8) (uint8, uint8, uint8)) {
	for y := 0; y < b.Height(); y++ {
		for x := 0; x < b.Width(); x++ {
			c := b.ColorAt(x, y)
			r, g, bl := fn(c.R(), c.G(), c.B())
			b.Set(x, y, bmp.MakeColor(bmp.Opaque, r, g, bl))
		}
	}
}

// Inverts (negates) the bitmap image
func Invert(b *bmp.Bitmap) {
	apply(b, func(r, g, bl uint8) (uint8, uint8, uint8) {
		return 255 - r, 255 - g, 255 - bl
	})
}

// Converts a bitmap to Black-and-White
func Grayscale(b *bmp.Bitmap) {
	apply(b, func(r, g, bl uint8) (uint8, uint8, uint8) {
		avg := uint8(utils.Average(r, g, bl))
		return avg, avg, avg
	})
}

// Converts a bitmap to Black-and-White (with ITU-R 601-2 Luma Transform)
func GrayscaleLuma(b *bmp.Bitmap) {
	apply(b, func(r, g, bl uint8) (uint8, uint8, uint8) {
		L := uint8(int(r)*299/1000 + int(g)*587/1000 + int(bl)*114/1000)
		return L, L, L
	})
}

// Adjusts the Brightness of a Bitmap in-place.
//
// method can be "add" (adds value to each channel) or "multiply" (multiplies each channel by value).
// Pixel values are clipped to [0, 255].
func Brightness(b *bmp.Bitmap, factor float64, method string) error {
	type Operation func(x, y float64) float64
	var operation Operation

	// Select an operation of brightness (additive or multiplicative)
	switch method {
	case "add":
		operation = func(x, y float64) float64 {
			return x + y
		}
	case "multiply":
		operation = func(x, y float64) float64 {
			return x * y
		}
	default:
		return errors.New("invalid method: method must be add or multiply")
	}

	// Apply brightness (or darkness)
	apply(b, func(r, g, bl uint8) (uint8, uint8, uint8) {
		return utils.Clamp(operation(float64(r), factor)),
			utils.Clamp(operation(float64(g), factor)),
			utils.Clamp(operation(float64(bl), factor))
	})

	return nil
}

// Adjusts the Contrast of a Bitmap in-place.
// factor > 1.0 increases Contrast, factor < 1.0 decreases it.
func Contrast(b *bmp.Bitmap, factor float64) {
	totalPixels := b.Width() * b.Height()
	if totalPixels == 0 {
		return
	}

	// Compute mean for each channel
	var sumR, sumG, sumB int
	for y := 0; y < b.Height(); y++ {
		for x := 0; x < b.Width(); x++ {
			c := b.ColorAt(x, y)
			sumR += int(c.R())
			sumG += int(c.G())
			sumB += int(c.B())
		}
	}
	meanR := float64(sumR / totalPixels) // Average of all R pixels
	meanG := float64(sumG / totalPixels) // Average of all G pixels
	meanB := float64(sumB / totalPixels) // Average of all B pixels

	// Apply contrast
	apply(b, func(r, g, bl uint8) (uint8, uint8, uint8) {
		return utils.Clamp(float64(r)*factor + (1-factor)*meanR),
			utils.Clamp(float64(g)*factor + (1-factor)*meanG),
			utils.Clamp(float64(bl)*factor + (1-factor)*meanB)
	})
}
