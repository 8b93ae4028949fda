// Package vc2 holds the VC-2 data tables and configuration types shared by
// the encoder, decoder and test-case generators: enumerations from the
// standard, base video format and preset parameter tables, codec feature
// records, and the level constraint tables.
package vc2

// ParseCode identifies the type of a data unit within a sequence (10.5.2).
type ParseCode int

const (
	ParseCodeSequenceHeader     ParseCode = 0x00
	ParseCodeEndOfSequence      ParseCode = 0x10
	ParseCodeAuxiliaryData      ParseCode = 0x20
	ParseCodePaddingData        ParseCode = 0x30
	ParseCodeLowDelayPicture    ParseCode = 0xC8
	ParseCodeHighQualityPicture ParseCode = 0xE8
)

var parseCodeNames = map[ParseCode]string{
	ParseCodeSequenceHeader:     "sequence_header",
	ParseCodeEndOfSequence:      "end_of_sequence",
	ParseCodeAuxiliaryData:      "auxiliary_data",
	ParseCodePaddingData:        "padding_data",
	ParseCodeLowDelayPicture:    "low_delay_picture",
	ParseCodeHighQualityPicture: "high_quality_picture",
}

// Name returns the snake_case name of the parse code, as used for symbols in
// sequence-restriction patterns.
func (pc ParseCode) Name() string {
	if name, ok := parseCodeNames[pc]; ok {
		return name
	}
	return "unknown_parse_code"
}

// IsValid reports whether this is a parse code known to this toolkit.
func (pc ParseCode) IsValid() bool {
	_, ok := parseCodeNames[pc]
	return ok
}

// IsPicture reports whether the data unit carries a coded picture.
func (pc ParseCode) IsPicture() bool {
	return pc == ParseCodeLowDelayPicture || pc == ParseCodeHighQualityPicture
}

// ParseCodeByName looks up a parse code from its snake_case name.
func ParseCodeByName(name string) (ParseCode, bool) {
	for pc, n := range parseCodeNames {
		if n == name {
			return pc, true
		}
	}
	return 0, false
}
