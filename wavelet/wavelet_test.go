package wavelet

import (
	"errors"
	"math/rand/v2"
	"testing"

	"github.com/vc2tools/go-vc2-conformance/vc2"
)

var supportedFilters = []vc2.WaveletFilter{
	vc2.WaveletLeGall53,
	vc2.WaveletHaar0,
	vc2.WaveletHaar1,
}

func TestForFilter(t *testing.T) {
	for _, index := range supportedFilters {
		f, err := ForFilter(index)
		if err != nil {
			t.Fatalf("ForFilter(%d): %v", index, err)
		}
		if f.Index() != index {
			t.Errorf("ForFilter(%d) reports index %d", index, f.Index())
		}
	}

	_, err := ForFilter(vc2.WaveletFidelity)
	if !errors.Is(err, ErrUnsupportedFilter) {
		t.Errorf("expected ErrUnsupportedFilter, got %v", err)
	}
	var unsupported *UnsupportedFilterError
	if !errors.As(err, &unsupported) || unsupported.Index != vc2.WaveletFidelity {
		t.Errorf("expected UnsupportedFilterError for fidelity filter, got %v", err)
	}
}

// TestAnalyzeSynthesizeRoundTrip checks perfect reconstruction across
// filters, depths and awkward (but legal) dimensions.
func TestAnalyzeSynthesizeRoundTrip(t *testing.T) {
	tests := []struct {
		name   string
		width  int
		height int
		depth  int
	}{
		{"8x8 depth 1", 8, 8, 1},
		{"8x8 depth 2", 8, 8, 2},
		{"8x8 depth 3", 8, 8, 3},
		{"32x16 depth 2", 32, 16, 2},
		{"64x64 depth 4", 64, 64, 4},
		{"12x20 depth 2", 12, 20, 2},
		{"4x4 depth 0", 4, 4, 0},
	}

	for _, index := range supportedFilters {
		f, err := ForFilter(index)
		if err != nil {
			t.Fatal(err)
		}
		for _, tt := range tests {
			t.Run(index.String()+"/"+tt.name, func(t *testing.T) {
				size := tt.width * tt.height
				original := make([]int32, size)
				rng := rand.New(rand.NewPCG(42, 0))
				for i := range original {
					original[i] = int32(rng.IntN(1024) - 512)
				}

				data := make([]int32, size)
				copy(data, original)

				f.Analyze(data, tt.width, tt.height, tt.depth)
				f.Synthesize(data, tt.width, tt.height, tt.depth)

				for i := range data {
					if data[i] != original[i] {
						t.Fatalf("reconstruction failed at index %d: got %d, want %d",
							i, data[i], original[i])
					}
				}
			})
		}
	}
}

// TestAnalyzeConstantSignal checks that a flat signal concentrates into the
// DC band: every detail coefficient must be zero.
func TestAnalyzeConstantSignal(t *testing.T) {
	width, height, depth := 16, 16, 2
	for _, index := range supportedFilters {
		f, _ := ForFilter(index)
		data := make([]int32, width*height)
		for i := range data {
			data[i] = 100
		}

		f.Analyze(data, width, height, depth)

		for _, band := range Bands(depth) {
			if band.Level == 0 {
				continue
			}
			g := BandGeometry(band, width, height, depth)
			for v := 0; v < g.Height; v++ {
				for u := 0; u < g.Width; u++ {
					if c := data[g.At(width, u, v)]; c != 0 {
						t.Errorf("%s: band %s coefficient (%d,%d) = %d, want 0",
							index, band, u, v, c)
					}
				}
			}
		}
	}
}

func TestBands(t *testing.T) {
	bands := Bands(2)
	want := []Band{
		{0, OrientLL},
		{1, OrientHL}, {1, OrientLH}, {1, OrientHH},
		{2, OrientHL}, {2, OrientLH}, {2, OrientHH},
	}
	if len(bands) != len(want) {
		t.Fatalf("Bands(2) returned %d bands, want %d", len(bands), len(want))
	}
	for i := range want {
		if bands[i] != want[i] {
			t.Errorf("Bands(2)[%d] = %v, want %v", i, bands[i], want[i])
		}
	}

	if got := len(Bands(0)); got != 1 {
		t.Errorf("Bands(0) returned %d bands, want 1", got)
	}
}

// TestBandGeometryPartition checks the subband views tile the coefficient
// array exactly: every index is covered by exactly one band.
func TestBandGeometryPartition(t *testing.T) {
	width, height, depth := 16, 8, 3
	seen := make([]int, width*height)

	for _, band := range Bands(depth) {
		g := BandGeometry(band, width, height, depth)
		for v := 0; v < g.Height; v++ {
			for u := 0; u < g.Width; u++ {
				seen[g.At(width, u, v)]++
			}
		}
	}

	for i, count := range seen {
		if count != 1 {
			t.Fatalf("index %d covered %d times", i, count)
		}
	}
}

func BenchmarkAnalyzeLeGall(b *testing.B) {
	f, _ := ForFilter(vc2.WaveletLeGall53)
	width, height := 256, 256
	data := make([]int32, width*height)
	for i := range data {
		data[i] = int32(i % 256)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		f.Analyze(data, width, height, 3)
	}
}
