package parser

import (
	"encoding/json"
	"errors"
	"fmt"
)

var (
	// ErrGrammarMismatch means the line matches none of the entry shapes.
	ErrGrammarMismatch = errors.New("line matches no entry pattern")

	// ErrUnresolvedSubtoken means a list item accepted by the line pattern
	// could not be split into reading and translation.
	ErrUnresolvedSubtoken = errors.New("list item does not resolve to a reading")
)

// LineError ties a per-entry failure to its source line.
type LineError struct {
	Line   int
	Source string
	Err    error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *LineError) Unwrap() error { return e.Err }

func (e *LineError) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Line   int    `json:"line"`
		Source string `json:"source"`
		Error  string `json:"error"`
	}{e.Line, e.Source, e.Err.Error()})
}
