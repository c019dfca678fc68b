// Package rejection defines the failure taxonomy for a validation run.
//
// Validators themselves are boolean predicates. The pipeline turns the first
// failing predicate into a single *Error so the cause can be logged and
// counted, while the user-visible result stays a plain boolean.
package rejection

import (
	"errors"
	"fmt"

	"pixcheck/pkg/platform/sentinel"
)

// Category names the normalized reason a stream was rejected.
type Category string

const (
	// CategoryFormat indicates a token failed its grammar
	CategoryFormat Category = "format"

	// CategoryChecksum indicates identifier check digits did not match
	CategoryChecksum Category = "checksum"

	// CategoryUnknownKey indicates a transaction referenced an unregistered key
	CategoryUnknownKey Category = "unknown_key"

	// CategoryOrdering indicates the destiny key broke the ordering policy
	CategoryOrdering Category = "ordering"

	// CategoryConflict indicates a key was registered twice
	CategoryConflict Category = "conflict"

	// CategoryTruncated indicates input ended during registration
	CategoryTruncated Category = "truncated"

	// CategorySource indicates the line source returned an I/O error
	CategorySource Category = "source"
)

var categorySentinels = map[Category]error{
	CategoryFormat:     sentinel.ErrFormat,
	CategoryChecksum:   sentinel.ErrChecksum,
	CategoryUnknownKey: sentinel.ErrUnknownKey,
	CategoryOrdering:   sentinel.ErrOrdering,
	CategoryConflict:   sentinel.ErrConflict,
	CategoryTruncated:  sentinel.ErrTruncated,
	CategorySource:     sentinel.ErrSource,
}

// Categories lists every category in a stable order.
func Categories() []Category {
	return []Category{
		CategoryFormat,
		CategoryChecksum,
		CategoryUnknownKey,
		CategoryOrdering,
		CategoryConflict,
		CategoryTruncated,
		CategorySource,
	}
}

// Error describes why a record was rejected.
type Error struct {
	Category   Category
	Field      string // e.g. "identifier", "key", "amount"
	Value      string // offending token, already masked by the caller if sensitive
	Message    string
	Line       int // 1-based input line, 0 when unknown
	Underlying error
}

// Error implements the error interface
func (e *Error) Error() string {
	prefix := fmt.Sprintf("[%s] %s", e.Category, e.Field)
	if e.Line > 0 {
		prefix = fmt.Sprintf("line %d: %s", e.Line, prefix)
	}
	if e.Underlying != nil {
		return fmt.Sprintf("%s: %s: %v", prefix, e.Message, e.Underlying)
	}
	return fmt.Sprintf("%s: %s", prefix, e.Message)
}

// Unwrap exposes both the category sentinel and any underlying cause so that
// errors.Is works for either.
func (e *Error) Unwrap() []error {
	errs := make([]error, 0, 2)
	if s, ok := categorySentinels[e.Category]; ok {
		errs = append(errs, s)
	}
	if e.Underlying != nil {
		errs = append(errs, e.Underlying)
	}
	return errs
}

// New creates a rejection of the given category.
func New(category Category, field, value, message string) *Error {
	return &Error{
		Category: category,
		Field:    field,
		Value:    value,
		Message:  message,
	}
}

// AtLine returns a copy of e annotated with the input line number.
func (e *Error) AtLine(line int) *Error {
	cp := *e
	cp.Line = line
	return &cp
}

// GetCategory extracts the category from an error. Errors that did not come
// from this package are classified by their sentinel, falling back to source.
func GetCategory(err error) Category {
	var re *Error
	if errors.As(err, &re) {
		return re.Category
	}
	for _, c := range Categories() {
		if errors.Is(err, categorySentinels[c]) {
			return c
		}
	}
	return CategorySource
}
