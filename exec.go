package logosvg

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/esimov/logosvg/utils"
	"golang.org/x/term"
)

// Ops holds the source and destination of a conversion.
// A path equal to PipeName stands for stdin or stdout.
type Ops struct {
	Src, Dst, PipeName string
}

// Execute resolves the source and destination, converts the image and prints
// the conversion status. The source can be a local file, an http(s) URL or a pipe.
// The destination is created after the document has been rendered; on a failed
// write the partially written destination file is removed.
func (p *Processor) Execute(op *Ops) error {
	now := time.Now()

	stderr := p.Log
	if stderr == nil {
		stderr = io.Discard
	}

	spinner := utils.NewSpinner(stderr, fmt.Sprintf("%s %s",
		p.decorate("⚡ LOGOSVG", utils.StatusMessage),
		p.decorate("⇢ vectorizing the image...", utils.DefaultMessage),
	), time.Millisecond*80)

	if err := op.checkOverwrite(); err != nil {
		return err
	}
	src, closeSrc, err := op.openSource()
	if err != nil {
		return err
	}
	defer closeSrc()

	// dstFile is the created destination file, shared with the signal handler.
	// It is reset to nil once the file has been removed or closed for good.
	var (
		mu      sync.Mutex
		dstFile *os.File
	)
	removeDst := func() {
		mu.Lock()
		defer mu.Unlock()
		if dstFile != nil {
			dstFile.Close()
			os.Remove(dstFile.Name())
			dstFile = nil
		}
	}

	// Capture CTRL-C signal and restores back the cursor visibility.
	signalChan := make(chan os.Signal, 1)
	signal.Notify(signalChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(signalChan)

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-signalChan:
			spinner.RestoreCursor()
			removeDst()
			os.Exit(1)
		case <-done:
		}
	}()

	// The document and the report are buffered while the spinner owns the terminal line.
	// The destination is created only once the source has been fully consumed,
	// so a destination pointing to the source cannot destroy it.
	var svg, report bytes.Buffer
	spinner.Start()
	n, err := p.process(src, &svg, &report)
	if err == nil {
		var dst io.Writer
		dst, err = op.createDestination()
		if err == nil {
			if f, ok := dst.(*os.File); ok && f != os.Stdout {
				mu.Lock()
				dstFile = f
				mu.Unlock()
			}
			if _, err = svg.WriteTo(dst); err != nil {
				removeDst()
				err = fmt.Errorf("unable to write the destination file: %w", err)
			}
		}
	}
	if err != nil {
		spinner.StopMsg = fmt.Sprintf("%s %s\n",
			p.decorate("⚡ LOGOSVG", utils.StatusMessage),
			p.decorate("vectorizing the image failed ✘", utils.ErrorMessage),
		)
		spinner.Stop()
		return err
	}
	spinner.StopMsg = fmt.Sprintf("%s %s\n",
		p.decorate("⚡ LOGOSVG", utils.StatusMessage),
		p.decorate("the image has been vectorized successfully ✔", utils.SuccessMessage),
	)
	spinner.Stop()

	mu.Lock()
	f := dstFile
	dstFile = nil
	mu.Unlock()
	if f != nil {
		if err := f.Close(); err != nil {
			os.Remove(f.Name())
			return fmt.Errorf("unable to close the destination file: %w", err)
		}
	}

	report.WriteTo(stderr)

	out := op.Dst
	if out == op.PipeName {
		out = "stdout"
	}
	fmt.Fprintf(stderr, "Written to %s\n", p.decorate(out, utils.SuccessMessage))
	fmt.Fprintf(stderr, "File size: %d bytes (%s)\n", n, utils.FormatSize(n))
	fmt.Fprintf(stderr, "\nExecution time: %s\n", p.decorate(utils.FormatTime(time.Since(now)), utils.SuccessMessage))

	return nil
}

// openSource returns a reader over the source image and a function releasing it.
func (op *Ops) openSource() (io.Reader, func(), error) {
	// Check if source path is a local image or URL.
	if utils.IsValidUrl(op.Src) {
		f, err := utils.DownloadImage(op.Src)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to load the source image: %w", err)
		}
		return f, func() {
			closeFile(f)
			os.Remove(f.Name())
		}, nil
	}

	// Check if the source is a pipe name or a regular file.
	if op.Src == op.PipeName {
		if term.IsTerminal(int(os.Stdin.Fd())) {
			return nil, nil, errors.New("`-` should be used with a pipe for stdin")
		}
		return os.Stdin, func() {}, nil
	}

	fs, err := os.Stat(op.Src)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load the source image: %w", err)
	}
	if !fs.Mode().IsRegular() {
		return nil, nil, fmt.Errorf("the source %s is not a regular file", op.Src)
	}

	ctype, err := utils.DetectContentType(op.Src)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load the source image: %w", err)
	}
	if !strings.Contains(ctype, "image") {
		return nil, nil, fmt.Errorf("%w: %s has content type %s", ErrNotImage, op.Src, ctype)
	}

	f, err := os.Open(op.Src)
	if err != nil {
		return nil, nil, fmt.Errorf("unable to open the source file: %w", err)
	}
	return f, func() { closeFile(f) }, nil
}

// checkOverwrite refuses a destination file which is the source file itself.
func (op *Ops) checkOverwrite() error {
	if op.Src == op.PipeName || op.Dst == op.PipeName || utils.IsValidUrl(op.Src) {
		return nil
	}
	srcInfo, err := os.Stat(op.Src)
	if err != nil {
		return nil
	}
	dstInfo, err := os.Stat(op.Dst)
	if err != nil {
		return nil
	}
	if os.SameFile(srcInfo, dstInfo) {
		return fmt.Errorf("%w: the destination %s would overwrite the source image", ErrInvalidOption, op.Dst)
	}
	return nil
}

// createDestination returns the writer the SVG document is written to.
func (op *Ops) createDestination() (io.Writer, error) {
	// Check if the destination is a pipe name or a regular file.
	if op.Dst == op.PipeName {
		if term.IsTerminal(int(os.Stdout.Fd())) {
			return nil, errors.New("`-` should be used with a pipe for stdout")
		}
		return os.Stdout, nil
	}

	dst, err := os.OpenFile(op.Dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return nil, fmt.Errorf("unable to create the destination file: %w", err)
	}
	return dst, nil
}

// decorate colors the message only when the report goes to a terminal.
func (p *Processor) decorate(s string, msgType utils.MessageType) string {
	if !utils.IsTerminal(p.Log) {
		return s
	}
	return utils.DecorateText(s, msgType)
}

func closeFile(f *os.File) {
	if err := f.Close(); err != nil {
		log.Printf("could not close the opened file: %v", err)
	}
}
