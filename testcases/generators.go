package testcases

import (
	"errors"

	"github.com/vc2tools/go-vc2-conformance/bitstream"
	"github.com/vc2tools/go-vc2-conformance/encoder"
	"github.com/vc2tools/go-vc2-conformance/vc2"
)

// generatorFunc adapts a plain function into a Generator.
type generatorFunc struct {
	name        string
	description string
	generate    func(*vc2.Constraints, vc2.CodecFeatures) (*bitstream.Sequence, error)
}

func (g *generatorFunc) Name() string        { return g.name }
func (g *generatorFunc) Description() string { return g.description }

func (g *generatorFunc) Generate(constraints *vc2.Constraints, features vc2.CodecFeatures) (*bitstream.Sequence, error) {
	return g.generate(constraints, features)
}

func init() {
	Register(&generatorFunc{
		name:        "minimal_sequence",
		description: "The shortest sequence the level permits, carrying no pictures",
		generate: func(c *vc2.Constraints, f vc2.CodecFeatures) (*bitstream.Sequence, error) {
			return encoder.MakeSequence(c, f, nil, nil)
		},
	})
	Register(&generatorFunc{
		name:        "static_gray",
		description: "A single picture of mid-gray samples",
		generate: func(c *vc2.Constraints, f vc2.CodecFeatures) (*bitstream.Sequence, error) {
			return encoder.MakeSequence(c, f, []*vc2.RawPicture{grayPicture(f, 0)}, nil)
		},
	})
	Register(&generatorFunc{
		name:        "moving_ramp",
		description: "Three pictures of a slowly moving shallow luma ramp",
		generate: func(c *vc2.Constraints, f vc2.CodecFeatures) (*bitstream.Sequence, error) {
			pictures := make([]*vc2.RawPicture, 3)
			for i := range pictures {
				pictures[i] = rampPicture(f, uint32(i))
			}
			return encoder.MakeSequence(c, f, pictures, nil)
		},
	})
	Register(&generatorFunc{
		name:        "interleaved_padding",
		description: "Padding data directly after the first sequence header",
		generate: func(c *vc2.Constraints, f vc2.CodecFeatures) (*bitstream.Sequence, error) {
			return encoder.MakeSequence(c, f, []*vc2.RawPicture{grayPicture(f, 0)}, []string{
				"sequence_header padding_data .* end_of_sequence $",
			})
		},
	})
	Register(&generatorFunc{
		name:        "repeated_sequence_headers",
		description: "A sequence header repeated directly before the end of sequence",
		generate: func(c *vc2.Constraints, f vc2.CodecFeatures) (*bitstream.Sequence, error) {
			return encoder.MakeSequence(c, f, []*vc2.RawPicture{grayPicture(f, 0)}, []string{
				".* sequence_header end_of_sequence $",
			})
		},
	})
}

// GenerateAll runs every registered generator against the codec features.
// Generators whose structure cannot be expressed under the features' level
// are skipped; any other failure aborts.
func GenerateAll(constraints *vc2.Constraints, features vc2.CodecFeatures) ([]TestCase, error) {
	var out []TestCase
	for _, g := range List() {
		seq, err := g.Generate(constraints, features)
		if errors.Is(err, encoder.ErrIncompatibleLevel) {
			continue
		}
		if err != nil {
			return nil, err
		}
		out = append(out, TestCase{
			Name:        g.Name(),
			Description: g.Description(),
			Sequence:    seq,
		})
	}
	return out, nil
}

// grayPicture fills every component plane with the mid point of its signal
// range.
func grayPicture(features vc2.CodecFeatures, number uint32) *vc2.RawPicture {
	lw, lh, cw, ch := vc2.PictureDimensions(features)
	p := &features.VideoParameters
	luma := int32(p.LumaOffset + p.LumaExcursion/2)
	chroma := int32(p.ColorDiffOffset)
	return &vc2.RawPicture{
		PictureNumber: number,
		Y:             constantPlane(lw, lh, luma),
		C1:            constantPlane(cw, ch, chroma),
		C2:            constantPlane(cw, ch, chroma),
	}
}

// rampPicture is mid-gray plus a diagonal ramp of amplitude eight, shifted
// along by one sample per picture. The shallow amplitude keeps coded slices
// small whatever the slice layout.
func rampPicture(features vc2.CodecFeatures, number uint32) *vc2.RawPicture {
	lw, lh, cw, ch := vc2.PictureDimensions(features)
	p := &features.VideoParameters
	luma := int32(p.LumaOffset + p.LumaExcursion/2)
	chroma := int32(p.ColorDiffOffset)
	plane := func(w, h int, base int32) []int32 {
		out := make([]int32, w*h)
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				out[y*w+x] = base + int32((x+y+int(number))&7)
			}
		}
		return out
	}
	return &vc2.RawPicture{
		PictureNumber: number,
		Y:             plane(lw, lh, luma),
		C1:            plane(cw, ch, chroma),
		C2:            plane(cw, ch, chroma),
	}
}

func constantPlane(w, h int, value int32) []int32 {
	out := make([]int32, w*h)
	for i := range out {
		out[i] = value
	}
	return out
}
