/*
Package logosvg converts a raster logo into a compact SVG document.

The source image is resized to a small square, its colors are snapped to a
coarse grid and every resulting color becomes one filled path. A path is made
of unit height rectangles, one for every horizontal run of pixels, so the
union of the rectangles covers the pixels of the color exactly. Layers are
painted from the darkest to the lightest one on top of a background rectangle.

The package provides a command line interface. To check the supported flags type:

	$ logosvg --help

In case you wish to integrate the API in a self constructed environment here is a simple example:

	package main

	import (
		"fmt"
		"os"

		"github.com/esimov/logosvg"
	)

	func main() {
		p := logosvg.NewProcessor()
		// Adjust the options if needed.

		if _, err := p.Process(os.Stdin, os.Stdout); err != nil {
			fmt.Printf("Error converting image: %s", err.Error())
		}
	}
*/
package logosvg
