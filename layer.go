package logosvg

import (
	"image"
)

// Mask is a boolean grid marking the pixels which belong to a single color layer.
type Mask struct {
	Width  int
	Height int
	bits   []bool
}

// NewMask returns an empty mask of the given dimensions.
func NewMask(width, height int) *Mask {
	return &Mask{
		Width:  width,
		Height: height,
		bits:   make([]bool, width*height),
	}
}

// Set marks the pixel at (x, y) as part of the mask.
func (m *Mask) Set(x, y int) {
	m.bits[y*m.Width+x] = true
}

// At reports whether the pixel at (x, y) belongs to the mask.
// Coordinates outside of the mask are never set.
func (m *Mask) At(x, y int) bool {
	if x < 0 || y < 0 || x >= m.Width || y >= m.Height {
		return false
	}
	return m.bits[y*m.Width+x]
}

// Count returns the number of pixels set in the mask.
func (m *Mask) Count() int {
	var n int
	for _, b := range m.bits {
		if b {
			n++
		}
	}
	return n
}

// Layer is a quantized color together with the pixels it covers.
type Layer struct {
	Key  Key
	Mask *Mask
}

// BuildLayers quantizes every pixel of img with the layer bin width and groups
// them into one mask per resulting color. Pixels below the alpha threshold and
// pixels whose quantized color is too close to the background are skipped,
// so every remaining pixel belongs to exactly one layer.
//
// Layers are returned in the order their color was first met in a row-major scan.
func (p *Processor) BuildLayers(img *image.NRGBA) []Layer {
	var (
		bounds = img.Bounds()
		dx, dy = bounds.Dx(), bounds.Dy()
		index  = make(map[Key]int)
		layers []Layer
	)

	for y := 0; y < dy; y++ {
		for x := 0; x < dx; x++ {
			c := img.NRGBAAt(bounds.Min.X+x, bounds.Min.Y+y)
			if int(c.A) < p.AlphaThreshold {
				continue
			}
			key := Quantize(c, p.LayerBin)
			if key.Distance(p.Background) < p.LayerMinDiff {
				continue
			}
			idx, ok := index[key]
			if !ok {
				idx = len(layers)
				index[key] = idx
				layers = append(layers, Layer{Key: key, Mask: NewMask(dx, dy)})
			}
			layers[idx].Mask.Set(x, y)
		}
	}
	return layers
}
