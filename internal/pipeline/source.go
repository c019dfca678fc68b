package pipeline

import (
	"bufio"
	"io"
)

// LineSource yields input lines one at a time. Next returns false once no
// line is available; Err then distinguishes a clean end of input (nil) from
// a read failure.
type LineSource interface {
	Next() (string, bool)
	Err() error
}

// maxLineBytes bounds a single input line.
const maxLineBytes = 1 << 20

// ScannerSource reads newline-terminated lines from an io.Reader.
type ScannerSource struct {
	scanner *bufio.Scanner
}

// NewScannerSource wraps r. Line terminators, including a trailing "\r", are
// stripped by the controller, not here.
func NewScannerSource(r io.Reader) *ScannerSource {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	return &ScannerSource{scanner: sc}
}

func (s *ScannerSource) Next() (string, bool) {
	if !s.scanner.Scan() {
		return "", false
	}
	return s.scanner.Text(), true
}

func (s *ScannerSource) Err() error {
	return s.scanner.Err()
}
