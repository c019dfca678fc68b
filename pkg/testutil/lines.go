package testutil

import (
	"errors"

	"pixcheck/internal/domain"
)

// Sentinel is the default separator between registration and transactions.
const Sentinel = domain.DefaultSentinel

// ErrSourceBroken is returned by a Lines source built with FailAfter.
var ErrSourceBroken = errors.New("source broken")

// Lines is an in-memory line source. It records how many lines were read so
// tests can assert that a run stopped early.
type Lines struct {
	lines     []string
	pos       int
	failAfter int
	err       error
}

// NewLines returns a source yielding lines in order, then reporting
// exhaustion.
func NewLines(lines ...string) *Lines {
	return &Lines{lines: lines, failAfter: -1}
}

// Scenario joins registration lines, the sentinel and transaction lines.
func Scenario(clients []string, transactions []string) *Lines {
	all := make([]string, 0, len(clients)+1+len(transactions))
	all = append(all, clients...)
	all = append(all, Sentinel)
	all = append(all, transactions...)
	return NewLines(all...)
}

// FailAfter makes the source report ErrSourceBroken after n lines instead of
// a clean end of input.
func (l *Lines) FailAfter(n int) *Lines {
	l.failAfter = n
	return l
}

// Next returns the next line, or false once the source is exhausted or broken.
func (l *Lines) Next() (string, bool) {
	if l.failAfter >= 0 && l.pos >= l.failAfter {
		l.err = ErrSourceBroken
		return "", false
	}
	if l.pos >= len(l.lines) {
		return "", false
	}
	line := l.lines[l.pos]
	l.pos++
	return line, true
}

// Err reports a read failure, nil for a clean end of input.
func (l *Lines) Err() error {
	return l.err
}

// Consumed returns how many lines were handed out.
func (l *Lines) Consumed() int {
	return l.pos
}
