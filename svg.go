package logosvg

import (
	"bytes"
	"fmt"
	"io"

	svg "github.com/ajstarks/svgo"
	"golang.org/x/exp/slices"
)

// Document describes the generated SVG: a background rectangle covering the
// view box followed by one filled path per color layer.
type Document struct {
	Width       int // view box width in pixels
	Height      int // view box height in pixels
	DisplaySize int // rendered width and height
	Background  Key
	Layers      []Layer
	// MinPixels is the smallest layer which is still emitted; smaller layers are noise.
	MinPixels int
}

// SortLayers orders the layers by ascending luminance proxy, so darker layers
// are painted first and lighter layers on top. Equal sums keep their order.
func SortLayers(layers []Layer) {
	slices.SortStableFunc(layers, func(a, b Layer) bool {
		return a.Key.Sum() < b.Key.Sum()
	})
}

// WriteSVG renders the document and writes it to w in a single write.
// It returns the number of bytes written.
func WriteSVG(w io.Writer, doc *Document) (int, error) {
	layers := make([]Layer, len(doc.Layers))
	copy(layers, doc.Layers)
	SortLayers(layers)

	var buf bytes.Buffer
	canvas := svg.New(&buf)
	canvas.Startview(doc.DisplaySize, doc.DisplaySize, 0, 0, doc.Width, doc.Height)
	canvas.Rect(0, 0, doc.Width, doc.Height, fill(doc.Background))

	for _, l := range layers {
		if l.Mask.Count() < doc.MinPixels {
			continue
		}
		d := PathData(l.Mask)
		if d == "" {
			continue
		}
		canvas.Path(d, fill(l.Key))
	}
	canvas.End()

	n, err := w.Write(buf.Bytes())
	if err != nil {
		return n, fmt.Errorf("unable to write the SVG document: %w", err)
	}
	return n, nil
}

func fill(k Key) string {
	return fmt.Sprintf(`fill="%s"`, k.Hex())
}
