package bmp

// A FormatError reports that the input is not a valid BMP file.
type FormatError string

func (e FormatError) Error() string { return "bmp: invalid format: " + string(e) }

// An UnsupportedError reports that the input uses a valid but unimplemented
// BMP feature.
type UnsupportedError string

func (e UnsupportedError) Error() string { return "bmp: unsupported feature: " + string(e) }

// An IOError reports that a bitmap file could not be opened or fully read.
type IOError struct {
	Path string
	Err  error
}

func (e *IOError) Error() string { return "bmp: " + e.Err.Error() }

func (e *IOError) Unwrap() error { return e.Err }
