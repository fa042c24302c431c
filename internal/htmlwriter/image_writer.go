package htmlwriter

import (
	"fmt"
	"html"
	"io"
	"os"

	"github.com/anas-shakeel/bmp2html/internal/bmp"
)

// ImageWriter renders a bitmap file as an HTML page.
type ImageWriter struct {
	Filename string
	Emitter  PixelEmitter

	// Transform, if set, runs on the decoded bitmap before rendering.
	Transform func(*bmp.Bitmap) (*bmp.Bitmap, error)
}

// Creates a writer for the mosaic version of an image
func NewImageWriter(filename string) *ImageWriter {
	return &ImageWriter{Filename: filename, Emitter: Mosaic{}}
}

// Creates a writer for the ascii art version of an image
func NewAsciiArtWriter(filename, ramp string) *ImageWriter {
	return &ImageWriter{Filename: filename, Emitter: ASCIIArt{Ramp: ramp}}
}

// Title of the generated page
func (iw *ImageWriter) Title() string {
	return iw.emitter().titlePrefix() + iw.Filename
}

func (iw *ImageWriter) emitter() PixelEmitter {
	if iw.Emitter == nil {
		return Mosaic{}
	}
	return iw.Emitter
}

// WriteFile renders the page into the file at path. A bitmap that fails to
// load is reported inside the page; only output errors are returned.
func (iw *ImageWriter) WriteFile(path string) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}

	if err := iw.Write(file); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

// Write renders the page to w.
func (iw *ImageWriter) Write(w io.Writer) error {
	doc := Document{
		Title:   iw.Title(),
		Style:   iw.emitter().style(),
		Content: iw.writeContent,
	}
	return doc.Write(w)
}

func (iw *ImageWriter) load() (*bmp.Bitmap, error) {
	bitmap, err := bmp.Load(iw.Filename)
	if err != nil {
		return nil, err
	}
	if iw.Transform != nil {
		return iw.Transform(bitmap)
	}
	return bitmap, nil
}

func (iw *ImageWriter) writeContent(w io.Writer) error {
	if _, err := fmt.Fprintln(w, `<div class="image">`); err != nil {
		return err
	}

	bitmap, err := iw.load()
	if err != nil {
		if _, err := fmt.Fprintf(w, "<p>Failed open %s: %s</p>\n", html.EscapeString(iw.Filename), html.EscapeString(err.Error())); err != nil {
			return err
		}
	} else {
		emitter := iw.emitter()
		for y := 0; y < bitmap.Height(); y++ {
			for x := 0; x < bitmap.Width(); x++ {
				if err := emitter.writePixel(w, bitmap.ColorAt(x, y)); err != nil {
					return err
				}
			}
			if _, err := fmt.Fprintln(w, "<br />"); err != nil {
				return err
			}
		}
	}

	_, err = fmt.Fprintln(w, "</div>")
	return err
}
