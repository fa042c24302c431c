// bmp2html renders a bitmap as an HTML mosaic and as HTML ascii art.
package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/anas-shakeel/bmp2html/internal/adjustments"
	"github.com/anas-shakeel/bmp2html/internal/bmp"
	"github.com/anas-shakeel/bmp2html/internal/filters"
	"github.com/anas-shakeel/bmp2html/internal/htmlwriter"
)

const defaultImage = "test-image.bmp"

type options struct {
	mosaicPath string
	asciiPath  string
	ramp       string
	width      int
	crop       string
	filters    string
	brightness float64
	contrast   float64
	info       bool
	print      bool
}

func main() {
	log.SetFlags(0)
	log.SetPrefix("bmp2html: ")

	var opts options
	flag.StringVar(&opts.mosaicPath, "mosaic", "mosaic.html", "mosaic output `path`")
	flag.StringVar(&opts.asciiPath, "ascii", "ascii.html", "ascii art output `path`")
	flag.StringVar(&opts.ramp, "ramp", htmlwriter.DefaultRamp, "ascii art characters, darkest first")
	flag.IntVar(&opts.width, "width", 0, "resize to this width before rendering (0 keeps the size)")
	flag.StringVar(&opts.crop, "crop", "", "crop to the `x,y,w,h` region before rendering")
	flag.StringVar(&opts.filters, "filter", "", "comma separated filters: invert, grayscale, luma")
	flag.Float64Var(&opts.brightness, "brightness", 0, "value added to every channel")
	flag.Float64Var(&opts.contrast, "contrast", 1, "contrast factor")
	flag.BoolVar(&opts.info, "info", false, "print the bitmap headers")
	flag.BoolVar(&opts.print, "print", false, "print the bitmap in the terminal")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [flags] [bitmap]\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	filename := defaultImage
	if flag.NArg() > 0 {
		filename = flag.Arg(0)
	}

	transform, err := opts.transform()
	if err != nil {
		log.Fatal(err)
	}

	if opts.info || opts.print {
		if err := inspect(filename, opts, transform); err != nil {
			log.Printf("%s: %v", filename, err)
		}
	}

	outputs := []struct {
		path string
		iw   *htmlwriter.ImageWriter
	}{
		{opts.mosaicPath, htmlwriter.NewImageWriter(filename)},
		{opts.asciiPath, htmlwriter.NewAsciiArtWriter(filename, opts.ramp)},
	}

	// a failed output is reported, the other one is still written
	failed := false
	for _, out := range outputs {
		out.iw.Transform = transform
		if err := out.iw.WriteFile(out.path); err != nil {
			log.Printf("write %s: %v", out.path, err)
			failed = true
		}
	}

	if failed {
		os.Exit(1)
	}
}

// Prints the headers and/or the pixels of the bitmap to stdout
func inspect(filename string, opts options, transform func(*bmp.Bitmap) (*bmp.Bitmap, error)) error {
	data, err := os.ReadFile(filename)
	if err != nil {
		return err
	}

	if opts.info {
		cfg, err := bmp.DecodeConfig(data)
		if err != nil {
			return err
		}
		fmt.Printf("Filename: \t%v\n", filename)
		cfg.Print(os.Stdout)
	}

	if opts.print {
		bitmap, err := bmp.LoadFromBytes(data)
		if err != nil {
			return err
		}
		if bitmap, err = transform(bitmap); err != nil {
			return err
		}
		bitmap.Print(os.Stdout)
	}

	return nil
}

// Builds the crop -> resize -> filters pipeline selected by the flags
// The filters modify the bitmap in place, so without a crop or resize the
// returned bitmap is the one passed in; callers must not reuse their input.
func (opts options) transform() (func(*bmp.Bitmap) (*bmp.Bitmap, error), error) {
	var region []int
	if opts.crop != "" {
		for _, field := range strings.Split(opts.crop, ",") {
			n, err := strconv.Atoi(strings.TrimSpace(field))
			if err != nil {
				return nil, fmt.Errorf("invalid -crop %q: %w", opts.crop, err)
			}
			region = append(region, n)
		}
		if len(region) != 4 {
			return nil, fmt.Errorf("invalid -crop %q: want x,y,w,h", opts.crop)
		}
	}

	if opts.width < 0 {
		return nil, errors.New("invalid -width: must not be negative")
	}

	var apply []func(*bmp.Bitmap)
	if opts.filters != "" {
		for _, name := range strings.Split(opts.filters, ",") {
			switch strings.TrimSpace(name) {
			case "invert":
				apply = append(apply, filters.Invert)
			case "grayscale":
				apply = append(apply, filters.Grayscale)
			case "luma":
				apply = append(apply, filters.GrayscaleLuma)
			default:
				return nil, fmt.Errorf("invalid -filter %q: must be invert, grayscale or luma", name)
			}
		}
	}

	return func(b *bmp.Bitmap) (*bmp.Bitmap, error) {
		var err error
		if region != nil {
			if b, err = adjustments.Crop(b, region[0], region[1], region[2], region[3]); err != nil {
				return nil, err
			}
		}
		if opts.width > 0 {
			if b, err = adjustments.Resize(b, opts.width); err != nil {
				return nil, err
			}
		}
		for _, fn := range apply {
			fn(b)
		}
		if opts.brightness != 0 {
			if err := filters.Brightness(b, opts.brightness, "add"); err != nil {
				return nil, err
			}
		}
		if opts.contrast != 1 {
			filters.Contrast(b, opts.contrast)
		}
		return b, nil
	}, nil
}
