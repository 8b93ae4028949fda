package constraint

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ReadCSV reads a constraint table from CSV data.
//
// The CSV is arranged with each row describing a particular key being
// constrained and each column describing an allowed combination of values.
// Blank rows and comment rows whose first cell starts with '#' are skipped.
// The first cell of a row is the key; the remaining cells are parsed as
// follows:
//
//   - integers and the booleans TRUE/FALSE (case-insensitive)
//   - "lo-hi" denotes an inclusive integer range
//   - comma-separated instances of the above combine into one ValueSet
//   - "any" (case-insensitive) becomes the any-value set
//   - an empty cell becomes an empty ValueSet
//   - a cell containing only a quote character takes the same value as the
//     cell to its left (ditto)
//
// The result is one AllowedCombination per column.
func ReadCSV(r io.Reader) (Table, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	var out Table
	rowNum := 0
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedCSV, err)
		}
		rowNum++

		if rowIsBlank(row) || rowIsComment(row) {
			continue
		}

		// Grow the table to fit the widest row seen so far
		for len(out) < len(row)-1 {
			out = append(out, AllowedCombination{})
		}

		key := strings.TrimSpace(row[0])
		lastValue := NewValueSet()
		for i, cell := range row[1:] {
			value, err := parseCell(cell, lastValue)
			if err != nil {
				return nil, fmt.Errorf(
					"%w: row %d, key %q, column %d: %v",
					ErrMalformedCSV, rowNum, key, i+1, err,
				)
			}
			out[i][key] = value
			lastValue = value
		}
	}

	return out, nil
}

func rowIsBlank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// rowIsComment inspects only the first cell: comment text may itself contain
// commas, which the CSV reader splits into further cells.
func rowIsComment(row []string) bool {
	return len(row) > 0 && strings.HasPrefix(strings.TrimSpace(row[0]), "#")
}

func isDitto(cell string) bool {
	return strings.TrimSpace(cell) == `"`
}

func parseCell(cell string, lastValue *ValueSet) (*ValueSet, error) {
	if isDitto(cell) {
		return lastValue.Copy(), nil
	}
	if strings.EqualFold(strings.TrimSpace(cell), "any") {
		return AnyValue(), nil
	}

	value := NewValueSet()
	for _, part := range strings.Split(cell, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		lo, hi, isRange := cutRange(part)
		if isRange {
			low, err := strconv.Atoi(lo)
			if err != nil {
				return nil, fmt.Errorf("bad range bound %q", lo)
			}
			high, err := strconv.Atoi(hi)
			if err != nil {
				return nil, fmt.Errorf("bad range bound %q", hi)
			}
			value.AddRange(low, high)
			continue
		}
		v, err := parseScalar(part)
		if err != nil {
			return nil, err
		}
		value.AddValue(v)
	}
	return value, nil
}

// cutRange splits "lo-hi" into its bounds. A leading '-' is treated as a
// sign, not a separator, so negative scalars parse as scalars.
func cutRange(s string) (lo, hi string, ok bool) {
	i := strings.Index(s[1:], "-")
	if i < 0 {
		return "", "", false
	}
	return s[:i+1], s[i+2:], true
}

func parseScalar(s string) (Value, error) {
	switch strings.ToLower(s) {
	case "true":
		return true, nil
	case "false":
		return false, nil
	}
	i, err := strconv.Atoi(s)
	if err != nil {
		return nil, fmt.Errorf("bad value %q", s)
	}
	return i, nil
}
