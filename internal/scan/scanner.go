package scan

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
)

// Scanner captures and decodes one code from a camera-class device.
// It returns ErrCancelled when the user backs out.
type Scanner interface {
	Scan(ctx context.Context) (string, error)
}

// LineScanner reads codes typed by a keyboard-wedge scanner: each payload
// arrives as one line. An empty line or end of input counts as a cancel.
type LineScanner struct {
	r     io.Reader
	once  sync.Once
	lines chan lineResult
}

type lineResult struct {
	text string
	err  error
}

// NewLineScanner reads payloads from r.
func NewLineScanner(r io.Reader) *LineScanner {
	return &LineScanner{r: r, lines: make(chan lineResult)}
}

func (s *LineScanner) start() {
	go func() {
		defer close(s.lines)
		sc := bufio.NewScanner(s.r)
		for sc.Scan() {
			s.lines <- lineResult{text: sc.Text()}
		}
		if err := sc.Err(); err != nil {
			s.lines <- lineResult{err: err}
		}
	}()
}

// Scan waits for the next line.
func (s *LineScanner) Scan(ctx context.Context) (string, error) {
	s.once.Do(s.start)
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%w: %w", ErrCancelled, ctx.Err())
	case res, ok := <-s.lines:
		if !ok {
			return "", fmt.Errorf("%w: %w", ErrCancelled, io.EOF)
		}
		if res.err != nil {
			return "", fmt.Errorf("read scanner input: %w", res.err)
		}
		if strings.TrimSpace(res.text) == "" {
			return "", ErrCancelled
		}
		return res.text, nil
	}
}
