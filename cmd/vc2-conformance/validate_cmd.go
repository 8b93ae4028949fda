package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vc2tools/go-vc2-conformance/decoder"
)

var validateCmd = &cobra.Command{
	Use:   "validate <stream>...",
	Short: "Check coded streams for conformance",
	Long: `Decodes each stream and checks it against the generic sequence
structure, the parse_info framing rules and its declared level's constraint
table and data unit ordering restriction. Exits non-zero if any stream fails.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		failures := 0
		for _, path := range args {
			if err := validateStream(path); err != nil {
				failures++
				var conformance *decoder.ConformanceError
				switch {
				case errors.As(err, &conformance):
					logger.Error().
						Str("stream", path).
						Int64("offset", conformance.Offset).
						Msg(conformance.Explanation)
				default:
					logger.Error().Str("stream", path).Err(err).Msg("validation failed")
				}
			}
		}
		if failures > 0 {
			return fmt.Errorf("%d of %d streams failed validation", failures, len(args))
		}
		return nil
	},
}

func validateStream(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	result, err := decoder.New(nil).DecodeSequence(f)
	if err != nil {
		return err
	}
	logger.Info().
		Str("stream", path).
		Stringer("level", result.Header.ParseParameters.Level).
		Stringer("profile", result.Header.ParseParameters.Profile).
		Int("data_units", result.UnitCount).
		Int("pictures", len(result.Pictures)).
		Msg("stream is conformant")
	return nil
}
