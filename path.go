package logosvg

import (
	"strconv"
	"strings"
)

// Run is a maximal horizontal sequence of set pixels within one row of a mask.
type Run struct {
	Y   int
	X   int
	Len int
}

// Runs scans the mask row by row, from left to right, and returns every run.
func Runs(m *Mask) []Run {
	var runs []Run
	for y := 0; y < m.Height; y++ {
		x := 0
		for x < m.Width {
			if !m.At(x, y) {
				x++
				continue
			}
			start := x
			for x < m.Width && m.At(x, y) {
				x++
			}
			runs = append(runs, Run{Y: y, X: start, Len: x - start})
		}
	}
	return runs
}

// PathData converts the mask into SVG path data where every run becomes a
// closed, unit height rectangle: "M{x} {y}h{len}v1h-{len}z".
// The fragments are space separated. An empty mask yields an empty string.
func PathData(m *Mask) string {
	var sb strings.Builder
	for i, r := range Runs(m) {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteByte('M')
		sb.WriteString(strconv.Itoa(r.X))
		sb.WriteByte(' ')
		sb.WriteString(strconv.Itoa(r.Y))
		sb.WriteByte('h')
		sb.WriteString(strconv.Itoa(r.Len))
		sb.WriteString("v1h")
		sb.WriteString(strconv.Itoa(-r.Len))
		sb.WriteByte('z')
	}
	return sb.String()
}
