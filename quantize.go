package logosvg

import (
	"fmt"
	"image/color"

	"github.com/esimov/logosvg/utils"
	"github.com/lucasb-eyer/go-colorful"
)

// Key is a quantized RGB color. It is used as the identity of a color layer
// and its canonical textual form is the lowercase "#rrggbb" hex string.
type Key struct {
	R, G, B uint8
}

// ParseKey parses a "#rrggbb" (or "#rgb") hex string into a Key.
func ParseKey(s string) (Key, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		return Key{}, fmt.Errorf("%w: invalid hex color %q", ErrInvalidOption, s)
	}
	r, g, b := c.RGB255()
	return Key{R: r, G: g, B: b}, nil
}

// KeyOf converts a colorful.Color into a Key, clamping it into the RGB gamut.
func KeyOf(c colorful.Color) Key {
	r, g, b := c.Clamped().RGB255()
	return Key{R: r, G: g, B: b}
}

// Hex returns the "#rrggbb" representation of the key.
func (k Key) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", k.R, k.G, k.B)
}

func (k Key) String() string {
	return k.Hex()
}

// Sum returns R+G+B. It is used as a cheap luminance proxy for layer ordering.
func (k Key) Sum() int {
	return int(k.R) + int(k.G) + int(k.B)
}

// Distance returns the sum of the absolute per-channel differences between two keys.
func (k Key) Distance(o Key) int {
	return utils.Abs(int(k.R)-int(o.R)) +
		utils.Abs(int(k.G)-int(o.G)) +
		utils.Abs(int(k.B)-int(o.B))
}

// Quantize snaps every channel of c to the center of its bin of the given width.
// The alpha channel is ignored.
func Quantize(c color.NRGBA, bin int) Key {
	return Key{
		R: quantizeChannel(c.R, bin),
		G: quantizeChannel(c.G, bin),
		B: quantizeChannel(c.B, bin),
	}
}

// quantizeChannel floors v to a multiple of bin and adds half a bin.
// The result saturates at 255 for bin widths which do not divide the channel range.
func quantizeChannel(v uint8, bin int) uint8 {
	q := int(v)/bin*bin + bin/2
	return uint8(utils.Clamp(q, 0, 255))
}
