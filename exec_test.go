package logosvg

import (
	"bytes"
	"errors"
	"image/color"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/tiff"
)

func writeSample(t *testing.T, dir string) string {
	t.Helper()

	src := makeImage(24, 24, func(x, y int) color.NRGBA {
		if x > 4 && x < 20 && y > 4 && y < 20 {
			return color.NRGBA{R: 240, G: 200, B: 60, A: 255}
		}
		return color.NRGBA{A: 0}
	})
	path := filepath.Join(dir, "logo.png")
	require.NoError(t, os.WriteFile(path, encodePNG(t, src), 0644))
	return path
}

func TestExec_ConvertsFile(t *testing.T) {
	dir := t.TempDir()
	var log bytes.Buffer
	p := newTestProcessor(&log)

	dst := filepath.Join(dir, "logo-clean.svg")
	err := p.Execute(&Ops{Src: writeSample(t, dir), Dst: dst, PipeName: "-"})
	require.NoError(t, err)

	data, err := os.ReadFile(dst)
	require.NoError(t, err)
	doc := parseDocument(t, data)
	assert.Equal(t, "0 0 128 128", doc.ViewBox)
	require.Len(t, doc.Paths, 1)

	assert.Contains(t, log.String(), "Building 1 color layers...")
	assert.Contains(t, log.String(), "Written to "+dst)
	assert.Contains(t, log.String(), "Execution time:")
	assert.NotContains(t, log.String(), "\x1b[", "a non terminal log should not be colored")
}

func TestExec_TruncatesExistingDestination(t *testing.T) {
	dir := t.TempDir()
	dst := filepath.Join(dir, "logo-clean.svg")
	require.NoError(t, os.WriteFile(dst, bytes.Repeat([]byte("x"), 1<<20), 0644))

	p := newTestProcessor(new(bytes.Buffer))
	require.NoError(t, p.Execute(&Ops{Src: writeSample(t, dir), Dst: dst, PipeName: "-"}))

	data, err := os.ReadFile(dst)
	require.NoError(t, err)
	parseDocument(t, data)
}

func TestExec_ConvertsURL(t *testing.T) {
	dir := t.TempDir()
	data, err := os.ReadFile(writeSample(t, dir))
	require.NoError(t, err)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(data)
	}))
	defer srv.Close()

	dst := filepath.Join(dir, "remote.svg")
	p := newTestProcessor(new(bytes.Buffer))
	require.NoError(t, p.Execute(&Ops{Src: srv.URL + "/logo.png", Dst: dst, PipeName: "-"}))

	out, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Len(t, parseDocument(t, out).Paths, 1)
}

func TestExec_MissingSource(t *testing.T) {
	dir := t.TempDir()
	dst := filepath.Join(dir, "out.svg")

	p := newTestProcessor(new(bytes.Buffer))
	err := p.Execute(&Ops{Src: filepath.Join(dir, "missing.png"), Dst: dst, PipeName: "-"})
	assert.Error(t, err)

	_, statErr := os.Stat(dst)
	assert.True(t, os.IsNotExist(statErr), "no destination should be created")
}

func TestExec_SourceIsNotImage(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(src, []byte("just some notes"), 0644))

	p := newTestProcessor(new(bytes.Buffer))
	err := p.Execute(&Ops{Src: src, Dst: filepath.Join(dir, "out.svg"), PipeName: "-"})
	assert.True(t, errors.Is(err, ErrNotImage))
}

func TestExec_SourceIsDirectory(t *testing.T) {
	dir := t.TempDir()

	p := newTestProcessor(new(bytes.Buffer))
	err := p.Execute(&Ops{Src: dir, Dst: filepath.Join(dir, "out.svg"), PipeName: "-"})
	assert.Error(t, err)
}

func TestExec_CorruptImageLeavesNoDestination(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "broken.png")
	// A valid PNG signature followed by garbage is sniffed as an image but cannot be decoded.
	require.NoError(t, os.WriteFile(src, append([]byte("\x89PNG\x0d\x0a\x1a\x0a"), bytes.Repeat([]byte{0xAB}, 64)...), 0644))

	dst := filepath.Join(dir, "out.svg")
	p := newTestProcessor(new(bytes.Buffer))
	err := p.Execute(&Ops{Src: src, Dst: dst, PipeName: "-"})
	assert.Error(t, err)

	_, statErr := os.Stat(dst)
	assert.True(t, os.IsNotExist(statErr), "no destination should be left behind")
}

func TestExec_UnwritableDestination(t *testing.T) {
	dir := t.TempDir()

	p := newTestProcessor(new(bytes.Buffer))
	err := p.Execute(&Ops{
		Src:      writeSample(t, dir),
		Dst:      filepath.Join(dir, "missing", "dir", "out.svg"),
		PipeName: "-",
	})
	assert.Error(t, err)
}

func TestExec_RefusesToOverwriteSource(t *testing.T) {
	dir := t.TempDir()
	src := writeSample(t, dir)
	orig, err := os.ReadFile(src)
	require.NoError(t, err)

	p := newTestProcessor(new(bytes.Buffer))
	err = p.Execute(&Ops{Src: src, Dst: src, PipeName: "-"})
	assert.True(t, errors.Is(err, ErrInvalidOption), "unexpected error: %v", err)

	data, err := os.ReadFile(src)
	require.NoError(t, err, "the source image should still exist")
	assert.Equal(t, orig, data)
}

func TestExec_DestinationCreatedAfterDecoding(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "broken.png")
	require.NoError(t, os.WriteFile(src, append([]byte("\x89PNG\x0d\x0a\x1a\x0a"), bytes.Repeat([]byte{0xAB}, 64)...), 0644))

	p := newTestProcessor(new(bytes.Buffer))
	err := p.Execute(&Ops{
		Src:      src,
		Dst:      filepath.Join(dir, "missing", "dir", "out.svg"),
		PipeName: "-",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "could not decode the source image")
	assert.NotContains(t, err.Error(), "destination")

	err = p.Execute(&Ops{
		Src:      writeSample(t, dir),
		Dst:      filepath.Join(dir, "missing", "dir", "out.svg"),
		PipeName: "-",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unable to create the destination file")
}

func TestExec_ConvertsTIFF(t *testing.T) {
	dir := t.TempDir()
	img := makeImage(24, 24, func(x, y int) color.NRGBA {
		if x > 4 && x < 20 && y > 4 && y < 20 {
			return color.NRGBA{R: 240, G: 200, B: 60, A: 255}
		}
		return color.NRGBA{A: 0}
	})

	var buf bytes.Buffer
	require.NoError(t, tiff.Encode(&buf, img, nil))
	src := filepath.Join(dir, "logo.tiff")
	require.NoError(t, os.WriteFile(src, buf.Bytes(), 0644))

	dst := filepath.Join(dir, "logo.svg")
	p := newTestProcessor(new(bytes.Buffer))
	require.NoError(t, p.Execute(&Ops{Src: src, Dst: dst, PipeName: "-"}))

	data, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Len(t, parseDocument(t, data).Paths, 1)
}

func TestExec_Pipes(t *testing.T) {
	input, err := os.ReadFile(writeSample(t, t.TempDir()))
	require.NoError(t, err)

	stdinR, stdinW, err := os.Pipe()
	require.NoError(t, err)
	stdoutR, stdoutW, err := os.Pipe()
	require.NoError(t, err)

	stdin, stdout := os.Stdin, os.Stdout
	os.Stdin, os.Stdout = stdinR, stdoutW
	defer func() {
		os.Stdin, os.Stdout = stdin, stdout
	}()

	go func() {
		stdinW.Write(input)
		stdinW.Close()
	}()
	output := make(chan []byte, 1)
	go func() {
		data, _ := io.ReadAll(stdoutR)
		output <- data
	}()

	var log bytes.Buffer
	p := newTestProcessor(&log)
	err = p.Execute(&Ops{Src: "-", Dst: "-", PipeName: "-"})
	require.NoError(t, err)

	// Execute must leave stdout open; closing the writer ends the reader.
	require.NoError(t, stdoutW.Close(), "stdout should not be closed")
	data := <-output
	stdinR.Close()
	stdoutR.Close()

	doc := parseDocument(t, data)
	assert.Len(t, doc.Paths, 1)
	assert.NotContains(t, string(data), "Found")
	assert.NotContains(t, string(data), "Building")
	assert.Contains(t, log.String(), "Written to stdout")
	assert.Contains(t, log.String(), "Building 1 color layers...")
}
