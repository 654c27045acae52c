// Package gwas reads summary statistics files into in-memory tables.
package gwas

import (
	"math"
	"strconv"
	"strings"
)

// Table is a parsed summary statistics file. Cells are kept as text; numeric
// columns are parsed on demand so that unused columns cost nothing.
type Table struct {
	// Name is the source the table was read from, used to pair split outputs
	// with their inputs.
	Name   string
	Header []string
	Rows   [][]string

	index map[string]int
}

// NewTable builds a table. If a column name repeats, the first one wins.
func NewTable(name string, header []string, rows [][]string) *Table {
	t := &Table{
		Name:   name,
		Header: header,
		Rows:   rows,
		index:  make(map[string]int, len(header)),
	}
	for i, col := range header {
		if _, exists := t.index[col]; !exists {
			t.index[col] = i
		}
	}

	return t
}

// Len is the number of data rows.
func (t *Table) Len() int {
	return len(t.Rows)
}

// HasColumn reports whether the header contains name.
func (t *Table) HasColumn(name string) bool {
	_, exists := t.index[name]
	return exists
}

// Strings returns the named column. Short (jagged) rows yield "".
func (t *Table) Strings(name string) ([]string, bool) {
	col, exists := t.index[name]
	if !exists {
		return nil, false
	}

	out := make([]string, len(t.Rows))
	for i, row := range t.Rows {
		if col < len(row) {
			out[i] = row[col]
		}
	}

	return out, true
}

// Floats returns the named column parsed as float64. Missing or unparseable
// cells become NaN.
func (t *Table) Floats(name string) ([]float64, bool) {
	raw, exists := t.Strings(name)
	if !exists {
		return nil, false
	}

	out := make([]float64, len(raw))
	for i, v := range raw {
		out[i] = ParseFloat(v)
	}

	return out, true
}

// Signs returns the named column interpreted as a direction of effect: +1, -1,
// 0, or NaN when the cell cannot be read. "+" and "-" are accepted as well as
// any number.
func (t *Table) Signs(name string) ([]float64, bool) {
	raw, exists := t.Strings(name)
	if !exists {
		return nil, false
	}

	out := make([]float64, len(raw))
	for i, v := range raw {
		switch strings.TrimSpace(v) {
		case "+":
			out[i] = 1
		case "-":
			out[i] = -1
		default:
			out[i] = Sign(ParseFloat(v))
		}
	}

	return out, true
}

var missingTokens = map[string]struct{}{
	"":     {},
	"NA":   {},
	"na":   {},
	"NaN":  {},
	"nan":  {},
	".":    {},
	"null": {},
	"NULL": {},
}

// IsMissing reports whether a cell holds one of the missing-value tokens.
func IsMissing(v string) bool {
	_, missing := missingTokens[strings.TrimSpace(v)]
	return missing
}

// ParseFloat parses a cell, returning NaN for missing or malformed values.
func ParseFloat(v string) float64 {
	if IsMissing(v) {
		return math.NaN()
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil {
		return math.NaN()
	}
	return f
}

// Sign returns -1, 0 or +1 according to the sign of x, and NaN for NaN.
func Sign(x float64) float64 {
	switch {
	case math.IsNaN(x):
		return math.NaN()
	case x > 0:
		return 1
	case x < 0:
		return -1
	}
	return 0
}
