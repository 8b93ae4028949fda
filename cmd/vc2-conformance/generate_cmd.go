package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/vc2tools/go-vc2-conformance/bitstream"
	"github.com/vc2tools/go-vc2-conformance/testcases"
	"github.com/vc2tools/go-vc2-conformance/vc2"
)

var generateOut string

var generateCmd = &cobra.Command{
	Use:   "generate <codec-features.csv>",
	Short: "Generate conformance test streams",
	Long: `Reads a codec features CSV and runs every registered test case
generator against each feature set, writing one stream per generator to
<out>/<features-name>/<generator-name>.vc2. Generators whose structure a
feature set's level cannot express are skipped.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer f.Close()

		featureSets, err := vc2.ReadCodecFeaturesCSV(f)
		if err != nil {
			return fmt.Errorf("reading codec features: %w", err)
		}
		if len(featureSets) == 0 {
			return fmt.Errorf("%s names no codec feature sets", args[0])
		}

		var g errgroup.Group
		for _, features := range featureSets {
			features := features
			g.Go(func() error {
				return generateFeatureSet(features)
			})
		}
		return g.Wait()
	},
}

func init() {
	generateCmd.Flags().StringVarP(&generateOut, "out", "o", "streams", "output directory")
}

func generateFeatureSet(features vc2.CodecFeatures) error {
	cases, err := testcases.GenerateAll(vc2.StandardConstraints(), features)
	if err != nil {
		return fmt.Errorf("%s: %w", features.Name, err)
	}

	dir := filepath.Join(generateOut, features.Name)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	for _, tc := range cases {
		path := filepath.Join(dir, tc.Name+".vc2")
		if err := writeStream(path, tc.Sequence); err != nil {
			return fmt.Errorf("%s: %w", features.Name, err)
		}
		logger.Info().
			Str("features", features.Name).
			Str("case", tc.Name).
			Str("path", path).
			Msg("generated test stream")
		logger.Debug().Str("case", tc.Name).Msg(tc.Description)
	}
	return nil
}

func writeStream(path string, seq *bitstream.Sequence) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := bitstream.WriteSequence(f, seq); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
