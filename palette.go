package logosvg

import (
	"fmt"
	"image"
	"io"
	"math"

	"github.com/cenkalti/dominantcolor"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/muesli/clusters"
	"github.com/muesli/kmeans"
	"golang.org/x/exp/slices"
)

// PaletteMethod selects how the diagnostic palette report is computed.
// It never influences the generated SVG.
type PaletteMethod int

const (
	// PaletteBins counts coarse color bins, the default.
	PaletteBins PaletteMethod = iota
	// PaletteDominant uses dominant color extraction.
	PaletteDominant
	// PaletteKMeans clusters the opaque pixels with k-means. The initial
	// centers are picked at random, so the report may differ between runs
	// of the same image. The SVG output is not affected.
	PaletteKMeans
)

func (m PaletteMethod) String() string {
	switch m {
	case PaletteDominant:
		return "dominant"
	case PaletteKMeans:
		return "kmeans"
	default:
		return "bins"
	}
}

// ParsePaletteMethod converts a method name into a PaletteMethod.
func ParsePaletteMethod(s string) (PaletteMethod, error) {
	for _, m := range []PaletteMethod{PaletteBins, PaletteDominant, PaletteKMeans} {
		if m.String() == s {
			return m, nil
		}
	}
	return PaletteBins, fmt.Errorf("%w: unknown palette method %q", ErrInvalidOption, s)
}

// Swatch is a palette entry: a representative color and the number of pixels it stands for.
type Swatch struct {
	Key   Key
	Count int
}

// AnalyzePalette reports the significant colors of the image, most frequent first.
// Colors covering fewer than PaletteMinCount pixels and colors too close to
// the background are left out.
func (p *Processor) AnalyzePalette(img *image.NRGBA) ([]Swatch, error) {
	var (
		swatches []Swatch
		err      error
	)

	switch p.PaletteMethod {
	case PaletteDominant:
		swatches = p.dominantSwatches(img)
	case PaletteKMeans:
		swatches, err = p.kmeansSwatches(img, kmeans.New())
		if err != nil {
			return nil, err
		}
	default:
		swatches = p.binSwatches(img)
	}

	res := make([]Swatch, 0, len(swatches))
	for _, s := range swatches {
		if s.Count < p.PaletteMinCount {
			continue
		}
		if s.Key.Distance(p.Background) < p.PaletteMinDiff {
			continue
		}
		res = append(res, s)
	}
	return res, nil
}

// binSwatches counts the opaque pixels per coarse bin and keeps the
// PaletteCandidates most frequent bins. Equal counts keep the order in which
// the colors were first met.
func (p *Processor) binSwatches(img *image.NRGBA) []Swatch {
	var (
		bounds = img.Bounds()
		index  = make(map[Key]int)
		res    []Swatch
	)

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			c := img.NRGBAAt(x, y)
			if int(c.A) <= p.AlphaThreshold {
				continue
			}
			key := Quantize(c, p.PaletteBin)
			idx, ok := index[key]
			if !ok {
				idx = len(res)
				index[key] = idx
				res = append(res, Swatch{Key: key})
			}
			res[idx].Count++
		}
	}

	slices.SortStableFunc(res, func(a, b Swatch) bool {
		return a.Count > b.Count
	})
	if len(res) > p.PaletteCandidates {
		res = res[:p.PaletteCandidates]
	}
	return res
}

// dominantSwatches extracts the dominant colors of the image.
// The weights are converted to pixel counts relative to the image area.
func (p *Processor) dominantSwatches(img *image.NRGBA) []Swatch {
	area := float64(img.Bounds().Dx() * img.Bounds().Dy())

	colors := dominantcolor.FindWeight(img, p.PaletteCandidates)
	res := make([]Swatch, 0, len(colors))
	for _, c := range colors {
		col, _ := colorful.MakeColor(c.RGBA)
		res = append(res, Swatch{
			Key:   KeyOf(col),
			Count: int(math.Round(c.Weight * area)),
		})
	}
	slices.SortStableFunc(res, func(a, b Swatch) bool {
		return a.Count > b.Count
	})
	return res
}

// kmeansSwatches partitions the opaque pixels into PaletteTop clusters.
// Every cluster center becomes a swatch counting the pixels of the cluster.
func (p *Processor) kmeansSwatches(img *image.NRGBA, km kmeans.Kmeans) ([]Swatch, error) {
	bounds := img.Bounds()
	dataset := make(clusters.Observations, 0, bounds.Dx()*bounds.Dy())

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			c := img.NRGBAAt(x, y)
			if int(c.A) <= p.AlphaThreshold {
				continue
			}
			dataset = append(dataset, clusters.Coordinates{
				float64(c.R) / 255.0,
				float64(c.G) / 255.0,
				float64(c.B) / 255.0,
			})
		}
	}

	k := p.PaletteTop
	if k > len(dataset) {
		k = len(dataset)
	}
	if k <= 0 {
		return nil, nil
	}

	cc, err := km.Partition(dataset, k)
	if err != nil {
		return nil, fmt.Errorf("k-means palette partitioning failed: %w", err)
	}

	res := make([]Swatch, 0, len(cc))
	for _, c := range cc {
		if len(c.Center) < 3 || len(c.Observations) == 0 {
			continue
		}
		col := colorful.Color{R: c.Center[0], G: c.Center[1], B: c.Center[2]}
		res = append(res, Swatch{
			Key:   KeyOf(col),
			Count: len(c.Observations),
		})
	}
	slices.SortStableFunc(res, func(a, b Swatch) bool {
		return a.Count > b.Count
	})
	return res, nil
}

// WritePalette prints the palette report: the number of significant colors
// followed by at most top entries.
func WritePalette(w io.Writer, swatches []Swatch, top int) {
	fmt.Fprintf(w, "Found %d significant colors\n", len(swatches))
	for i, s := range swatches {
		if i >= top {
			break
		}
		fmt.Fprintf(w, "  %s: %d pixels\n", s.Key.Hex(), s.Count)
	}
}
