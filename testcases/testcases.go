// Package testcases produces conformance test streams: coded sequences
// exercising particular aspects of a decoder under test, one family per
// registered generator.
package testcases

import (
	"sort"
	"sync"

	"github.com/vc2tools/go-vc2-conformance/bitstream"
	"github.com/vc2tools/go-vc2-conformance/vc2"
)

// Generator produces one family of conformance test sequences for a set of
// codec features.
type Generator interface {
	// Name identifies the generator, used to name its output streams.
	Name() string

	// Description says what aspect of a decoder the streams exercise.
	Description() string

	// Generate builds the test sequence. Codec features the generator's
	// structure cannot be expressed under fail with an error wrapping
	// encoder.ErrIncompatibleLevel.
	Generate(constraints *vc2.Constraints, features vc2.CodecFeatures) (*bitstream.Sequence, error)
}

// TestCase is one generated conformance test stream.
type TestCase struct {
	Name        string
	Description string
	Sequence    *bitstream.Sequence
}

// Registry manages the available test case generators.
type Registry struct {
	mu         sync.RWMutex
	generators map[string]Generator
}

var defaultRegistry = &Registry{
	generators: make(map[string]Generator),
}

// Register adds a generator to the default registry.
func Register(g Generator) {
	defaultRegistry.Register(g)
}

// Get retrieves a generator from the default registry by name.
func Get(name string) (Generator, error) {
	return defaultRegistry.Get(name)
}

// List returns the generators in the default registry.
func List() []Generator {
	return defaultRegistry.List()
}

// Register adds a generator, replacing any generator of the same name.
func (r *Registry) Register(g Generator) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.generators[g.Name()] = g
}

// Get retrieves a generator by name.
func (r *Registry) Get(name string) (Generator, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	g, ok := r.generators[name]
	if !ok {
		return nil, ErrUnknownGenerator
	}
	return g, nil
}

// List returns all registered generators sorted by name.
func (r *Registry) List() []Generator {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Generator, 0, len(r.generators))
	for _, g := range r.generators {
		out = append(out, g)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name() < out[j].Name() })
	return out
}
