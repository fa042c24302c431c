// Adjusts image dimensions, orientation, or structure.
package adjustments

import (
	"errors"

	"github.com/nfnt/resize"

	"github.com/anas-shakeel/bmp2html/internal/bmp"
)

// Crops a region in the bitmap image (0,0  is at the top-left of the image)
func Crop(b *bmp.Bitmap, x, y, width, height int) (*bmp.Bitmap, error) {
	// Validate bounds
	if x < 0 || y < 0 {
		return nil, errors.New("invalid bounds: negative origin")
	} else if width < 0 || height < 0 {
		return nil, errors.New("invalid bounds: negative size")
	} else if width+x > b.Width() {
		return nil, errors.New("invalid bounds: width out of bounds")
	} else if height+y > b.Height() {
		return nil, errors.New("invalid bounds: height out of bounds")
	}

	cropped, err := bmp.New(width, height)
	if err != nil {
		return nil, err
	}

	// Crop the bitmap
	for row := 0; row < height; row++ { // Height | Rows
		for col := 0; col < width; col++ { // Width | Columns
			cropped.Set(col, row, b.ColorAt(col+x, row+y))
		}
	}

	return cropped, nil
}

// Scales the bitmap to the given width, keeping its aspect ratio
// (nearest-neighbor sampling).
func Resize(b *bmp.Bitmap, width int) (*bmp.Bitmap, error) {
	if width <= 0 {
		return nil, errors.New("invalid width: width must be greater than 0")
	}
	if b.Width() == 0 || b.Height() == 0 {
		return b.Clone(), nil
	}

	return bmp.FromImage(resize.Resize(uint(width), 0, b, resize.NearestNeighbor)), nil
}
