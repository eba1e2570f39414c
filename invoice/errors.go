package invoice

import (
	"errors"
	"fmt"
)

// ErrNoExtractor is returned by ExtractText when a PDF is given but no text
// extractor is installed.
var ErrNoExtractor = errors.New("pdftotext not found in PATH")

// Position is a location in the invoice text.
type Position struct {
	Filename string
	Line     int // 1-indexed
	Column   int // 1-indexed, in runes
}

func (p Position) String() string {
	if p.Filename != "" {
		return fmt.Sprintf("%s:%d:%d", p.Filename, p.Line, p.Column)
	}
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// ParseError is returned when a line is recognized as a fare line but one of
// its fields cannot be normalized. Scanning stops at the first ParseError.
type ParseError struct {
	Pos   Position
	Field string // "date" or "price"
	Value string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: invalid %s %q", e.Pos, e.Field, e.Value)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// GetPosition returns where in the source the invalid field starts.
func (e *ParseError) GetPosition() Position {
	return e.Pos
}
