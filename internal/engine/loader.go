package engine

import (
	"bytes"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// --- 1. VALUE CONVERSION ---

// toInt parses "123" -> 123. Anything else, including "3.0", yields 0.
func toInt(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return n
}

// toFloat parses "1.5e-3" -> 0.0015. Unparsable input yields 0.
func toFloat(s string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return f
}

// --- 2. MAIN LOADER ---

// Parse reads the CSV file at path into a Table.
// A file that cannot be read produces an empty table: no headers, no columns.
func Parse(path string) *Table {
	t, _ := ParseFile(path)
	return t
}

// ParseFile is Parse but also reports why the file could not be read.
// The returned table is never nil.
func ParseFile(path string) (*Table, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return ParseBytes(nil), fmt.Errorf("read %s: %w", path, err)
	}
	return ParseBytes(content), nil
}

// ParseBytes builds a Table from raw CSV content.
//
// The first non-blank line is the header row. Fields are separated by a bare
// comma: quoting and escaped commas are not supported. A data line is kept only
// when it splits into exactly as many fields as the header; every other line
// (blank, single-field, short or long) is dropped whole, so all columns always
// have the same length.
func ParseBytes(content []byte) *Table {
	t := &Table{columns: make(map[string][]string)}

	sep := []byte{','}
	var matrix [][]string
	headerSeen := false
	pos := 0

	for pos < len(content) {
		// A. Find line end
		nextPos := len(content)
		if i := bytes.IndexByte(content[pos:], '\n'); i != -1 {
			nextPos = pos + i
		}
		line := bytes.TrimSuffix(content[pos:nextPos], []byte{'\r'})
		pos = nextPos + 1

		// B. Header row
		if !headerSeen {
			if len(bytes.TrimSpace(line)) == 0 {
				continue
			}
			for _, h := range bytes.Split(line, sep) {
				t.headers = append(t.headers, string(h))
			}
			headerSeen = true
			continue
		}

		// C. Data rows
		fields := bytes.Split(line, sep)
		if len(fields) <= 1 {
			if len(line) > 0 {
				t.dropped++
			}
			continue
		}
		if len(fields) != len(t.headers) {
			t.dropped++
			continue
		}
		row := make([]string, len(fields))
		for i, f := range fields {
			row[i] = string(f)
		}
		matrix = append(matrix, row)
	}

	// D. Transpose into columns
	for col, h := range t.headers {
		values := make([]string, len(matrix))
		for r, row := range matrix {
			values[r] = row[col]
		}
		t.columns[h] = values
	}
	t.rows = len(matrix)

	return t
}
