package logosvg

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/disintegration/imaging"
)

var (
	// ErrInvalidOption is returned when a Processor option is out of its valid range.
	ErrInvalidOption = errors.New("invalid option")
	// ErrNotImage is returned when the source does not look like an image.
	ErrNotImage = errors.New("the source is not an image file")
)

// DefaultBackground is the background color of the generated logo, #1f222a.
var DefaultBackground = Key{R: 0x1f, G: 0x22, B: 0x2a}

// Processor options
type Processor struct {
	// Background is painted behind all layers. Colors close to it are treated as background.
	Background Key
	// PaletteMethod selects the diagnostic palette report.
	PaletteMethod PaletteMethod
	// TargetSize is the side of the square the source is resized to. Zero keeps the source size.
	TargetSize int
	// DisplaySize is the width and height attribute of the SVG root.
	DisplaySize int
	// AlphaThreshold is the opacity a pixel needs to be considered.
	AlphaThreshold int
	// Blur is the sigma of a Gaussian blur applied before quantization. Zero disables it.
	Blur float64

	PaletteBin        int // bin width of the palette report
	PaletteMinCount   int // pixels a palette color needs to be reported
	PaletteMinDiff    int // distance from the background a palette color needs
	PaletteCandidates int // most frequent bins considered by the report
	PaletteTop        int // entries printed by the report

	LayerBin       int // bin width of the color layers
	LayerMinDiff   int // distance from the background a layer color needs
	MinLayerPixels int // layers with fewer pixels are not emitted

	// Log receives the diagnostic report. A nil Log discards it.
	Log io.Writer
}

// NewProcessor returns a Processor initialized with the default options.
func NewProcessor() *Processor {
	return &Processor{
		Background:        DefaultBackground,
		PaletteMethod:     PaletteBins,
		TargetSize:        128,
		DisplaySize:       224,
		AlphaThreshold:    128,
		PaletteBin:        32,
		PaletteMinCount:   20,
		PaletteMinDiff:    60,
		PaletteCandidates: 30,
		PaletteTop:        15,
		LayerBin:          24,
		LayerMinDiff:      40,
		MinLayerPixels:    10,
		Log:               os.Stderr,
	}
}

// Validate checks the options before any image is processed.
func (p *Processor) Validate() error {
	for _, o := range []struct {
		name     string
		val      int
		min, max int
	}{
		{"palette bin", p.PaletteBin, 1, 255},
		{"layer bin", p.LayerBin, 1, 255},
		{"alpha threshold", p.AlphaThreshold, 0, 255},
	} {
		if o.val < o.min || o.val > o.max {
			return fmt.Errorf("%w: %s must be in [%d, %d], got %d", ErrInvalidOption, o.name, o.min, o.max, o.val)
		}
	}

	switch {
	case p.Blur < 0:
		return fmt.Errorf("%w: blur sigma cannot be negative", ErrInvalidOption)
	case p.TargetSize < 0:
		return fmt.Errorf("%w: target size cannot be negative", ErrInvalidOption)
	case p.DisplaySize <= 0:
		return fmt.Errorf("%w: display size must be positive", ErrInvalidOption)
	case p.PaletteCandidates <= 0:
		return fmt.Errorf("%w: palette candidates must be positive", ErrInvalidOption)
	case p.PaletteTop < 0, p.PaletteMinCount < 0, p.PaletteMinDiff < 0,
		p.LayerMinDiff < 0, p.MinLayerPixels < 0:
		return fmt.Errorf("%w: thresholds cannot be negative", ErrInvalidOption)
	}
	return nil
}

// Process converts the source image into an SVG document written to w.
// The diagnostic report goes to p.Log. It returns the size of the document in bytes.
func (p *Processor) Process(r io.Reader, w io.Writer) (int, error) {
	return p.process(r, w, p.Log)
}

func (p *Processor) process(r io.Reader, w io.Writer, log io.Writer) (int, error) {
	if log == nil {
		log = io.Discard
	}
	if err := p.Validate(); err != nil {
		return 0, err
	}

	img, err := LoadImage(r, p.TargetSize)
	if err != nil {
		return 0, err
	}
	if p.Blur > 0 {
		img = imaging.Blur(img, p.Blur)
	}

	// The palette is diagnostic only, a failed analysis does not stop the conversion.
	swatches, err := p.AnalyzePalette(img)
	if err != nil {
		fmt.Fprintf(log, "Palette analysis failed: %v\n", err)
	} else {
		WritePalette(log, swatches, p.PaletteTop)
	}

	layers := p.BuildLayers(img)
	fmt.Fprintf(log, "Building %d color layers...\n", len(layers))

	return WriteSVG(w, &Document{
		Width:       img.Bounds().Dx(),
		Height:      img.Bounds().Dy(),
		DisplaySize: p.DisplaySize,
		Background:  p.Background,
		Layers:      layers,
		MinPixels:   p.MinLayerPixels,
	})
}
