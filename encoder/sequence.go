package encoder

import (
	"errors"
	"fmt"

	"github.com/vc2tools/go-vc2-conformance/bitstream"
	"github.com/vc2tools/go-vc2-conformance/symbolre"
	"github.com/vc2tools/go-vc2-conformance/vc2"
)

// genericSequencePattern is the data unit ordering every stream must follow
// regardless of level (10.4): a sequence header first, an end of sequence
// last.
const genericSequencePattern = "sequence_header .* end_of_sequence $"

// fillerPriority orders the data units used to satisfy ordering
// restrictions: padding is cheapest, a repeated sequence header next.
var fillerPriority = []string{"padding_data", "sequence_header"}

// MakeDataUnitOrder finds the shortest data unit ordering which contains
// pictureCount picture data units and satisfies both the generic sequence
// structure and the level's ordering restriction. extraPatterns may impose
// additional structure (test case generators use this to force particular
// shapes).
//
// Orderings the level cannot accommodate fail with an
// *IncompatibleLevelError.
func MakeDataUnitOrder(constraints *vc2.Constraints, features vc2.CodecFeatures, pictureCount int, extraPatterns []string) ([]vc2.ParseCode, error) {
	pictureSymbol := vc2.ParseCodeHighQualityPicture.Name()
	required := make([]string, 0, pictureCount+1)
	for i := 0; i < pictureCount; i++ {
		required = append(required, pictureSymbol)
	}
	// Every sequence ends with an end of sequence data unit. Requiring it
	// explicitly also lets the search terminate when every pattern is in
	// a wildcard state, where filler candidates alone would never propose
	// it.
	required = append(required, vc2.ParseCodeEndOfSequence.Name())

	patterns := []string{genericSequencePattern}
	if restriction, ok := constraints.SequenceRestriction(features.Level); ok {
		patterns = append(patterns, restriction.Pattern)
	}
	patterns = append(patterns, extraPatterns...)

	symbols, err := symbolre.MakeMatchingSequence(required, patterns, symbolre.SequenceOptions{
		SymbolPriority: fillerPriority,
	})
	if errors.Is(err, symbolre.ErrImpossibleSequence) {
		return nil, &IncompatibleLevelError{
			FeatureName: features.Name,
			Reason:      fmt.Sprintf("no data unit ordering with %d pictures satisfies the level's restrictions", pictureCount),
		}
	}
	if err != nil {
		return nil, err
	}

	out := make([]vc2.ParseCode, len(symbols))
	for i, symbol := range symbols {
		if symbol == symbolre.Wildcard {
			// Unconstrained filler positions become padding.
			out[i] = vc2.ParseCodePaddingData
			continue
		}
		code, ok := vc2.ParseCodeByName(symbol)
		if !ok {
			return nil, fmt.Errorf("sequence restriction names unknown data unit %q", symbol)
		}
		out[i] = code
	}
	return out, nil
}

// MakeSequence builds a complete coded sequence carrying the given pictures
// under the codec features: a solved sequence header, a data unit ordering
// satisfying the level, and losslessly coded pictures. extraPatterns are
// passed through to MakeDataUnitOrder.
func MakeSequence(constraints *vc2.Constraints, features vc2.CodecFeatures, pictures []*vc2.RawPicture, extraPatterns []string) (*bitstream.Sequence, error) {
	header, err := MakeSequenceHeader(constraints, features)
	if err != nil {
		return nil, err
	}
	order, err := MakeDataUnitOrder(constraints, features, len(pictures), extraPatterns)
	if err != nil {
		return nil, err
	}

	seq := &bitstream.Sequence{}
	next := 0
	for _, code := range order {
		unit := bitstream.DataUnit{ParseCode: code}
		switch code {
		case vc2.ParseCodeSequenceHeader:
			unit.SequenceHeader = header
		case vc2.ParseCodeHighQualityPicture:
			picture, err := EncodePicture(features, pictures[next])
			if err != nil {
				return nil, err
			}
			unit.Picture = picture
			next++
		case vc2.ParseCodePaddingData, vc2.ParseCodeAuxiliaryData:
			// Empty payload.
		}
		seq.DataUnits = append(seq.DataUnits, unit)
	}
	return seq, nil
}
