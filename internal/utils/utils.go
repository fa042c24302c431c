package utils

import (
	"fmt"
	"math"
)

// Channel is any integer type holding a color channel or a sum of them.
type Channel interface {
	~uint8 | ~int
}

// Returns the integer mean of the given channel values (0 if none are given)
func Average[T Channel](values ...T) int {
	if len(values) == 0 {
		return 0
	}

	var sum int
	for _, v := range values {
		sum += int(v)
	}
	return sum / len(values)
}

// Rounds toward zero and clips v to a channel value [0, 255]
func Clamp(v float64) uint8 {
	return uint8(math.Min(math.Max(v, 0), 255))
}

// Wraps text in a 24-bit ANSI background color, resetting it afterwards
func ColoredBlock(text string, r, g, b uint8) string {
	return fmt.Sprintf("\x1b[48;2;%d;%d;%dm%s\x1b[0m", r, g, b, text)
}
