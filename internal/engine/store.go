package engine

// Table holds one parsed log file in column-major form.
// It is built once by Parse and never mutated afterwards.
type Table struct {
	// Header names in file order
	headers []string

	// Header name -> cell values, one per accepted data row
	columns map[string][]string

	rows    int
	dropped int
}

// Headers returns the header names in file order.
func (t *Table) Headers() []string {
	if t == nil {
		return nil
	}
	out := make([]string, len(t.headers))
	copy(out, t.headers)
	return out
}

// Column returns every value of the named column in file order.
// Unknown headers (and nil tables) yield an empty slice.
func (t *Table) Column(header string) []string {
	if t == nil {
		return []string{}
	}
	col, ok := t.columns[header]
	if !ok {
		return []string{}
	}
	out := make([]string, len(col))
	copy(out, col)
	return out
}

// Rows is the number of accepted data rows.
func (t *Table) Rows() int {
	if t == nil {
		return 0
	}
	return t.rows
}

// Dropped is the number of data lines rejected as malformed.
func (t *Table) Dropped() int {
	if t == nil {
		return 0
	}
	return t.dropped
}

// first returns element 0 of a column, or "" when the column is empty.
func (t *Table) first(header string) string {
	if t == nil {
		return ""
	}
	col := t.columns[header]
	if len(col) == 0 {
		return ""
	}
	return col[0]
}

// last returns the final element of a column, or "" when the column is empty.
func (t *Table) last(header string) string {
	if t == nil {
		return ""
	}
	col := t.columns[header]
	if len(col) == 0 {
		return ""
	}
	return col[len(col)-1]
}

// values exposes the backing slice for read-only use inside the package.
func (t *Table) values(header string) []string {
	if t == nil {
		return nil
	}
	return t.columns[header]
}
