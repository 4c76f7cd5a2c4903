package cli

import (
	"fmt"
	"time"

	"github.com/mgpai22/subwatch/internal/subtitle"
	"github.com/mgpai22/subwatch/internal/timeline"
	"github.com/spf13/cobra"
)

// flagOr returns the flag value, or fallback when the flag was not given on
// the command line and fallback is set.
func flagOr(cmd *cobra.Command, name, fallback string) string {
	value, _ := cmd.Flags().GetString(name)
	if !cmd.Flags().Changed(name) && fallback != "" {
		return fallback
	}
	return value
}

func offsetFromFlags(cmd *cobra.Command) (time.Duration, error) {
	raw := flagOr(cmd, "offset", env.Offset)
	if raw == "" {
		return 0, nil
	}
	offset, err := timeline.ParseClock(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid offset: %w", err)
	}
	return offset, nil
}

func clockFlag(cmd *cobra.Command, name string) (time.Duration, bool, error) {
	raw, _ := cmd.Flags().GetString(name)
	if raw == "" {
		return 0, false, nil
	}
	d, err := timeline.ParseClock(raw)
	if err != nil {
		return 0, false, fmt.Errorf("invalid --%s: %w", name, err)
	}
	return d, true, nil
}

// loadSubtitles parses path and logs every skipped block.
func loadSubtitles(path, formatName string) (*subtitle.Result, subtitle.Format, error) {
	format, err := subtitle.ParseFormat(formatName)
	if err != nil {
		return nil, subtitle.FormatUnknown, err
	}

	result, err := subtitle.LoadFileFormat(path, format)
	if err != nil {
		return nil, format, fmt.Errorf("failed to load %s: %w", path, err)
	}

	for _, w := range result.Warnings {
		logger.Warnw("Skipped subtitle block",
			"path", path,
			"line", w.Line,
			"reason", w.Reason,
		)
	}
	logger.Infow("Loaded subtitles",
		"path", path,
		"format", string(result.Format),
		"cues", result.Cues.Len(),
		"skipped", len(result.Warnings),
	)

	return result, format, nil
}
