// Package decoder parses coded sequences, checks them against the level
// constraints as it goes, and reconstructs the pictures they carry. It is the
// verifying counterpart of the encoder package: any stream the encoder
// produces decodes back to the original pictures, and any stream violating
// its declared level fails with a ConformanceError naming the offending data
// unit.
package decoder

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"reflect"
	"sort"
	"strings"

	"github.com/vc2tools/go-vc2-conformance/bitstream"
	"github.com/vc2tools/go-vc2-conformance/constraint"
	"github.com/vc2tools/go-vc2-conformance/symbolre"
	"github.com/vc2tools/go-vc2-conformance/vc2"
	"github.com/vc2tools/go-vc2-conformance/wavelet"
)

// genericSequencePattern is the data unit ordering every stream must follow
// regardless of level (10.4).
const genericSequencePattern = "sequence_header .* end_of_sequence $"

const genericSequenceExplanation = "a sequence begins with a sequence header and ends with an end of sequence data unit"

// orderingRule is one data unit ordering restriction being checked against
// the stream: the generic sequence structure, plus the declared level's
// restriction once a sequence header has named the level.
type orderingRule struct {
	matcher     *symbolre.Matcher
	explanation string
}

// Decoder decodes and conformance-checks coded sequences.
type Decoder struct {
	constraints *vc2.Constraints
}

// New returns a decoder checking against the given level constraints. A nil
// constraints decodes against the standard tables.
func New(constraints *vc2.Constraints) *Decoder {
	if constraints == nil {
		constraints = vc2.StandardConstraints()
	}
	return &Decoder{constraints: constraints}
}

// Result is a fully decoded sequence.
type Result struct {
	// Header is the sequence header in force, identical for every
	// sequence header data unit in the stream.
	Header *bitstream.SequenceHeader

	// Pictures holds the reconstructed pictures in stream order.
	Pictures []*vc2.RawPicture

	// UnitCount is the total number of data units read, the end of
	// sequence included.
	UnitCount int
}

// DecodeSequence reads one whole coded sequence and checks its conformance.
//
// Streams violating their declared level, the generic sequence structure or
// the parse_info framing fail with an error wrapping ErrNotConformant.
// Streams using coding tools this toolkit does not implement fail with an
// error wrapping ErrUnsupportedStream. Errors from the underlying reader are
// returned as-is.
func (d *Decoder) DecodeSequence(r io.Reader) (*Result, error) {
	generic, err := symbolre.NewMatcher(genericSequencePattern)
	if err != nil {
		return nil, err
	}
	rules := []*orderingRule{{matcher: generic, explanation: genericSequenceExplanation}}

	reader := bitstream.NewReader(r)
	result := &Result{}
	var (
		headerAssignment  constraint.Assignment
		params            vc2.VideoParameters
		seen              []string
		previousSize      uint32
		lastPictureNumber uint32
	)

	for {
		offset := reader.Offset()
		unit, err := reader.Next()
		if err == io.EOF {
			return nil, &ConformanceError{offset, "stream ends without an end of sequence data unit"}
		}
		if err != nil {
			if conformance := framingError(offset, err); conformance != nil {
				return nil, conformance
			}
			return nil, err
		}
		result.UnitCount++

		if unit.ParseInfo.PreviousParseOffset != previousSize {
			return nil, &ConformanceError{unit.Offset, fmt.Sprintf(
				"previous parse offset is %d, expected %d",
				unit.ParseInfo.PreviousParseOffset, previousSize)}
		}
		previousSize = uint32(bitstream.ParseInfoSize + len(unit.Body))

		symbol := unit.ParseInfo.ParseCode.Name()
		for _, rule := range rules {
			if !rule.matcher.MatchSymbol(symbol) {
				return nil, &ConformanceError{unit.Offset, fmt.Sprintf(
					"%s data unit not permitted here (%s); expected %s",
					symbol, rule.explanation, expectedSymbols(rule.matcher))}
			}
		}
		seen = append(seen, symbol)

		switch unit.ParseInfo.ParseCode {
		case vc2.ParseCodeSequenceHeader:
			h, conformance := d.checkSequenceHeader(unit, result.Header)
			if conformance != nil {
				return nil, conformance
			}
			if result.Header != nil {
				break
			}
			result.Header = h
			headerAssignment = h.ConstraintAssignment()
			params, err = expandVideoParameters(h)
			if err != nil {
				return nil, &ConformanceError{unit.Offset, err.Error()}
			}
			if restriction, ok := d.constraints.SequenceRestriction(h.ParseParameters.Level); ok {
				rule, err := replayedRule(restriction, seen)
				if err != nil {
					return nil, err
				}
				if rule == nil {
					return nil, &ConformanceError{unit.Offset, fmt.Sprintf(
						"data unit ordering violates the level restriction: %s",
						restriction.Explanation)}
				}
				rules = append(rules, rule)
			}

		case vc2.ParseCodeHighQualityPicture:
			pic, err := d.decodePictureUnit(unit, result.Header, params, headerAssignment)
			if err != nil {
				return nil, err
			}
			if len(result.Pictures) > 0 && pic.PictureNumber != lastPictureNumber+1 {
				return nil, &ConformanceError{unit.Offset, fmt.Sprintf(
					"picture number %d does not follow %d",
					pic.PictureNumber, lastPictureNumber)}
			}
			lastPictureNumber = pic.PictureNumber
			result.Pictures = append(result.Pictures, pic)

		case vc2.ParseCodeLowDelayPicture:
			return nil, fmt.Errorf("%w: low delay pictures", ErrUnsupportedStream)

		case vc2.ParseCodeEndOfSequence:
			if unit.ParseInfo.NextParseOffset != 0 {
				return nil, &ConformanceError{unit.Offset, fmt.Sprintf(
					"end of sequence next parse offset is %d, expected 0",
					unit.ParseInfo.NextParseOffset)}
			}
			for _, rule := range rules {
				if !rule.matcher.IsComplete() {
					return nil, &ConformanceError{unit.Offset, fmt.Sprintf(
						"sequence must not end here (%s)", rule.explanation)}
				}
			}
			trailing := reader.Offset()
			if _, err := reader.Next(); err != io.EOF {
				return nil, &ConformanceError{trailing, "data after the end of sequence"}
			}
			return result, nil
		}
	}
}

// checkSequenceHeader parses a sequence header body and, when a header is
// already in force, checks the new one is identical to it (11.1).
func (d *Decoder) checkSequenceHeader(unit *bitstream.Unit, current *bitstream.SequenceHeader) (*bitstream.SequenceHeader, *ConformanceError) {
	br := bitstream.NewBitReader(bytes.NewReader(unit.Body))
	h := bitstream.ReadSequenceHeader(br)
	if err := br.Err(); err != nil {
		return nil, &ConformanceError{unit.Offset, fmt.Sprintf("malformed sequence header: %v", err)}
	}
	if current != nil {
		if !reflect.DeepEqual(h, current) {
			return nil, &ConformanceError{unit.Offset,
				"sequence headers within a sequence must be identical"}
		}
		return h, nil
	}
	if !constraint.IsAllowedCombination(d.constraints.Table, h.ConstraintAssignment()) {
		return nil, &ConformanceError{unit.Offset, fmt.Sprintf(
			"sequence header values are not permitted by level %s",
			h.ParseParameters.Level)}
	}
	return h, nil
}

// decodePictureUnit parses, conformance-checks and reconstructs one high
// quality picture data unit.
func (d *Decoder) decodePictureUnit(unit *bitstream.Unit, header *bitstream.SequenceHeader, params vc2.VideoParameters, headerAssignment constraint.Assignment) (*vc2.RawPicture, error) {
	features := vc2.CodecFeatures{
		PictureCodingMode: header.PictureCodingMode,
		VideoParameters:   params,
	}
	lw, lh, cw, ch := vc2.PictureDimensions(features)
	geometry := bitstream.PictureGeometry{
		LumaWidth:       lw,
		LumaHeight:      lh,
		ColorDiffWidth:  cw,
		ColorDiffHeight: ch,
	}

	br := bitstream.NewBitReader(bytes.NewReader(unit.Body))
	p := bitstream.ReadPictureParse(br, geometry)
	if err := br.Err(); err != nil {
		return nil, &ConformanceError{unit.Offset, fmt.Sprintf("malformed picture: %v", err)}
	}

	t := &p.TransformParameters
	features.WaveletIndex = t.WaveletIndex
	features.DwtDepth = t.DwtDepth
	features.SlicesX = t.SlicesX
	features.SlicesY = t.SlicesY

	merged := constraint.Assignment{}
	for key, value := range headerAssignment {
		merged[key] = value
	}
	for key, value := range t.ConstraintAssignment() {
		merged[key] = value
	}
	merged["slices_have_same_dimensions"] = vc2.SlicesHaveSameDimensions(features)
	if !constraint.IsAllowedCombination(d.constraints.Table, merged) {
		return nil, &ConformanceError{unit.Offset, fmt.Sprintf(
			"transform parameters are not permitted by level %s",
			header.ParseParameters.Level)}
	}
	for i := range p.Slices {
		merged["qindex"] = p.Slices[i].Qindex
		if !constraint.IsAllowedCombination(d.constraints.Table, merged) {
			return nil, &ConformanceError{unit.Offset, fmt.Sprintf(
				"quantization index %d in slice %d is not permitted by level %s",
				p.Slices[i].Qindex, i, header.ParseParameters.Level)}
		}
	}

	pic, err := reconstructPicture(features, p)
	if errors.Is(err, wavelet.ErrUnsupportedFilter) {
		return nil, fmt.Errorf("%w: wavelet filter %s", ErrUnsupportedStream, t.WaveletIndex)
	}
	if err != nil {
		return nil, err
	}
	return pic, nil
}

// replayedRule compiles a level's ordering restriction and advances it over
// the data units already consumed. It returns a nil rule if the units seen so
// far already violate the restriction.
func replayedRule(restriction vc2.SequenceRestriction, seen []string) (*orderingRule, error) {
	m, err := symbolre.NewMatcher(restriction.Pattern)
	if err != nil {
		return nil, err
	}
	for _, symbol := range seen {
		if !m.MatchSymbol(symbol) {
			return nil, nil
		}
	}
	return &orderingRule{matcher: m, explanation: restriction.Explanation}, nil
}

// expectedSymbols renders a matcher's acceptable next symbols for a
// conformance report.
func expectedSymbols(m *symbolre.Matcher) string {
	var names []string
	for symbol := range m.ValidNextSymbols() {
		switch symbol {
		case symbolre.Wildcard:
			names = append(names, "any data unit")
		case symbolre.EndOfSequence:
			names = append(names, "the end of the sequence")
		default:
			names = append(names, symbol)
		}
	}
	sort.Strings(names)
	return strings.Join(names, " or ")
}

// framingError maps parse_info framing failures onto conformance errors.
// Errors not caused by the stream's contents pass through untouched.
func framingError(offset int64, err error) *ConformanceError {
	switch {
	case errors.Is(err, bitstream.ErrBadParseInfoPrefix),
		errors.Is(err, bitstream.ErrUnknownParseCode),
		errors.Is(err, bitstream.ErrBadNextParseOffset),
		errors.Is(err, io.ErrUnexpectedEOF):
		return &ConformanceError{Offset: offset, Explanation: err.Error()}
	}
	return nil
}
