package parser

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Record is one successfully parsed entry.
type Record[E any] struct {
	// Seq is the 0-based position among parsed entries, in input order.
	Seq int `json:"seq"`
	// Line is the 1-based line number in the source.
	Line int `json:"line"`
	// Source is the raw line.
	Source string `json:"source"`
	Entry  E      `json:"entry"`
}

// Document holds the parse output for a whole notes file.
type Document[E any] struct {
	Records  []Record[E]  `json:"records"`
	Failures []*LineError `json:"failures"`
}

// ParseDocument parses every line of r with parse. Blank lines and lines
// starting with '#' are skipped. A line that fails to parse is recorded in
// Failures and does not stop the scan; only read errors are returned.
func ParseDocument[E any](r io.Reader, parse func(line string) (E, error)) (*Document[E], error) {
	doc := &Document[E]{
		Records:  []Record[E]{},
		Failures: []*LineError{},
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 1024*1024), 1024*1024)

	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Text()

		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}

		entry, err := parse(line)
		if err != nil {
			doc.Failures = append(doc.Failures, &LineError{Line: lineNum, Source: line, Err: err})
			continue
		}

		doc.Records = append(doc.Records, Record[E]{
			Seq:    len(doc.Records),
			Line:   lineNum,
			Source: line,
			Entry:  entry,
		})
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan notes: %w", err)
	}

	return doc, nil
}
