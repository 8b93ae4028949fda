package vc2

import (
	"bytes"
	_ "embed"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/vc2tools/go-vc2-conformance/constraint"
)

//go:embed level_constraints.csv
var levelConstraintsCSV []byte

//go:embed level_sequence_restrictions.csv
var levelSequenceRestrictionsCSV []byte

// SequenceRestriction is a level's restriction on data unit ordering: a
// symbol pattern over parse code names plus a human readable explanation for
// conformance reports.
type SequenceRestriction struct {
	Explanation string
	Pattern     string
}

// Constraints bundles the level constraint data consulted by the encoder's
// sequence header solver and the decoder's conformance checks.
//
// AnyValues maps constraint table keys whose "any" entries stand for a known
// finite set onto that set, letting the solver enumerate options for keys the
// table leaves unbounded.
type Constraints struct {
	Table                constraint.Table
	AnyValues            map[string]*constraint.ValueSet
	SequenceRestrictions map[Level]SequenceRestriction
}

// SequenceRestriction returns the data unit ordering restriction for a
// level, if the level defines one.
func (c *Constraints) SequenceRestriction(level Level) (SequenceRestriction, bool) {
	r, ok := c.SequenceRestrictions[level]
	return r, ok
}

// Override replaces any non-nil fields of c with those of alt and returns a
// function restoring the previous values. Intended for tests which exercise
// behaviour under a reduced or altered constraint table:
//
//	restore := constraints.Override(&vc2.Constraints{Table: tinyTable})
//	defer restore()
func (c *Constraints) Override(alt *Constraints) (restore func()) {
	saved := *c
	if alt.Table != nil {
		c.Table = alt.Table
	}
	if alt.AnyValues != nil {
		c.AnyValues = alt.AnyValues
	}
	if alt.SequenceRestrictions != nil {
		c.SequenceRestrictions = alt.SequenceRestrictions
	}
	return func() { *c = saved }
}

// StandardConstraints returns a fresh copy of the level constraints shipped
// with this toolkit. Each call parses the embedded tables anew, so callers
// may mutate or Override the result freely.
func StandardConstraints() *Constraints {
	table, err := constraint.ReadCSV(bytes.NewReader(levelConstraintsCSV))
	if err != nil {
		// The embedded table is validated by the package tests.
		panic(fmt.Sprintf("vc2: embedded level constraints: %v", err))
	}
	restrictions, err := readSequenceRestrictions(bytes.NewReader(levelSequenceRestrictionsCSV))
	if err != nil {
		panic(fmt.Sprintf("vc2: embedded sequence restrictions: %v", err))
	}
	return &Constraints{
		Table:                table,
		AnyValues:            standardAnyValues(),
		SequenceRestrictions: restrictions,
	}
}

// standardAnyValues enumerates the finite sets behind the constraint table's
// "any" entries: preset index ranges, enumerations and boolean flags. Keys
// which are genuinely unbounded (dimensions, offsets, excursions) have no
// entry.
func standardAnyValues() map[string]*constraint.ValueSet {
	flags := []string{
		"custom_dimensions_flag",
		"custom_color_diff_format_flag",
		"custom_scan_format_flag",
		"custom_frame_rate_flag",
		"custom_pixel_aspect_ratio_flag",
		"custom_clean_area_flag",
		"custom_signal_range_flag",
		"custom_color_spec_flag",
		"custom_color_primaries_flag",
		"custom_color_matrix_flag",
		"custom_transfer_function_flag",
		"custom_quant_matrix",
		"slices_have_same_dimensions",
	}
	out := map[string]*constraint.ValueSet{
		"base_video_format":         constraint.NewValueSet(constraint.ValueRange{Low: 0, High: 14}),
		"color_diff_format_index":   constraint.NewValueSet(constraint.ValueRange{Low: 0, High: 2}),
		"source_sampling":           constraint.NewValueSet(constraint.ValueRange{Low: 0, High: 1}),
		"frame_rate_index":          constraint.NewValueSet(constraint.ValueRange{Low: 0, High: 11}),
		"pixel_aspect_ratio_index":  constraint.NewValueSet(constraint.ValueRange{Low: 0, High: 6}),
		"custom_signal_range_index": constraint.NewValueSet(constraint.ValueRange{Low: 0, High: 4}),
		"color_spec_index":          constraint.NewValueSet(constraint.ValueRange{Low: 0, High: 4}),
		"color_primaries_index":     constraint.NewValueSet(constraint.ValueRange{Low: 0, High: 3}),
		"color_matrix_index":        constraint.NewValueSet(constraint.ValueRange{Low: 0, High: 3}),
		"transfer_function_index":   constraint.NewValueSet(constraint.ValueRange{Low: 0, High: 3}),
		"picture_coding_mode":       constraint.NewValueSet(constraint.ValueRange{Low: 0, High: 1}),
	}
	for _, flag := range flags {
		out[flag] = constraint.NewValueSet(false, true)
	}
	return out
}

func readSequenceRestrictions(r io.Reader) (map[Level]SequenceRestriction, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	out := make(map[Level]SequenceRestriction)
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if len(row) == 0 || strings.HasPrefix(strings.TrimSpace(row[0]), "#") {
			continue
		}
		if len(row) != 3 {
			return nil, fmt.Errorf("expected 3 columns, got %d", len(row))
		}
		level, err := strconv.Atoi(strings.TrimSpace(row[0]))
		if err != nil {
			return nil, fmt.Errorf("bad level %q", row[0])
		}
		out[Level(level)] = SequenceRestriction{
			Explanation: strings.TrimSpace(row[1]),
			Pattern:     strings.TrimSpace(row[2]),
		}
	}
	return out, nil
}
