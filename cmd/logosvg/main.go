package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/esimov/logosvg"
	"github.com/esimov/logosvg/utils"
)

const HelpBanner = `
┬  ┌─┐┌─┐┌─┐┌─┐┬  ┬┌─┐
│  │ ││ ┬│ │└─┐└┐┌┘│ ┬
┴─┘└─┘└─┘└─┘└─┘ └┘ └─┘

Raster logo to SVG converter.
    Version: %s

`

// pipeName is the file name that indicates stdin/stdout is being used.
const pipeName = "-"

// Version indicates the current build version.
var Version string

var (
	// Flags
	source         = flag.String("in", "logo.png", "Source image path, URL or - for stdin")
	destination    = flag.String("out", "logo-clean.svg", "Destination SVG path or - for stdout")
	targetSize     = flag.Int("size", 128, "Side of the square the image is resized to (0 keeps the source size)")
	displaySize    = flag.Int("display", 224, "Width and height of the rendered SVG")
	background     = flag.String("bg", logosvg.DefaultBackground.Hex(), "Background color")
	alphaThreshold = flag.Int("alpha", 128, "Minimum pixel opacity")
	blurSigma      = flag.Float64("blur", 0, "Gaussian blur sigma applied before quantization")
	paletteBin     = flag.Int("pbin", 32, "Color bin width of the palette report")
	paletteMin     = flag.Int("pmin", 20, "Minimum pixel count of a reported palette color")
	paletteDiff    = flag.Int("pdiff", 60, "Minimum background distance of a reported palette color")
	paletteTop     = flag.Int("ptop", 15, "Number of palette colors to report")
	paletteMethod  = flag.String("palette", logosvg.PaletteBins.String(), "Palette report method: bins, dominant or kmeans")
	layerBin       = flag.Int("lbin", 24, "Color bin width of the layers")
	layerDiff      = flag.Int("ldiff", 40, "Minimum background distance of a layer color")
	layerMin       = flag.Int("lmin", 10, "Minimum pixel count of an emitted layer")
)

func main() {
	log.SetFlags(0)

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, HelpBanner, Version)
		flag.PrintDefaults()
	}
	flag.Parse()

	bg, err := logosvg.ParseKey(*background)
	if err != nil {
		log.Fatalf(utils.DecorateText("%v", utils.ErrorMessage), err)
	}
	method, err := logosvg.ParsePaletteMethod(*paletteMethod)
	if err != nil {
		log.Fatalf(utils.DecorateText("%v", utils.ErrorMessage), err)
	}

	proc := logosvg.NewProcessor()
	proc.Background = bg
	proc.PaletteMethod = method
	proc.TargetSize = *targetSize
	proc.DisplaySize = *displaySize
	proc.AlphaThreshold = *alphaThreshold
	proc.Blur = *blurSigma
	proc.PaletteBin = *paletteBin
	proc.PaletteMinCount = *paletteMin
	proc.PaletteMinDiff = *paletteDiff
	proc.PaletteTop = *paletteTop
	proc.LayerBin = *layerBin
	proc.LayerMinDiff = *layerDiff
	proc.MinLayerPixels = *layerMin

	if err := proc.Validate(); err != nil {
		flag.Usage()
		log.Fatalf(utils.DecorateText("\n%v", utils.ErrorMessage), err)
	}

	op := &logosvg.Ops{
		Src:      *source,
		Dst:      *destination,
		PipeName: pipeName,
	}
	if err := proc.Execute(op); err != nil {
		log.Fatalf(
			utils.DecorateText("\nError vectorizing the image: %s", utils.ErrorMessage),
			utils.DecorateText(fmt.Sprintf("\n\tReason: %v\n", err), utils.DefaultMessage),
		)
	}
}
