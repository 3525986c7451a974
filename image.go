package logosvg

import (
	"fmt"
	"image"
	"io"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp"
)

// LoadImage decodes the source image and converts it to non-premultiplied RGBA.
// If size is positive the image is resized to size x size pixels using the
// Lanczos resampling filter, otherwise the original dimensions are kept.
// The returned image bounds always start at (0, 0).
func LoadImage(r io.Reader, size int) (*image.NRGBA, error) {
	src, err := imaging.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("could not decode the source image: %w", err)
	}
	if size <= 0 {
		return imaging.Clone(src), nil
	}
	return imaging.Resize(src, size, size, imaging.Lanczos), nil
}
