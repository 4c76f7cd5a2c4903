package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/mgpai22/subwatch/internal/subtitle"
	"github.com/mgpai22/subwatch/internal/timeline"
	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export [subtitle_file]",
	Short: "Write a subtitle file in another format with an offset applied",
	Long: `Parse a subtitle file and write the cues back out, optionally in another
format and with an offset baked into every timestamp.

The offset has the same meaning as in the player: playing the exported file
with no offset looks the same as playing the original with --offset. Cues that
would end before zero are dropped. Styling tags are not preserved.

Examples:
  subwatch export movie.ass -f srt
  subwatch export movie.srt --offset 1.5s -o movie.synced.srt
  subwatch export talk.vtt -f ass -o talk.ass`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().
		StringP("output", "o", "", "Output file path (default: <input>.export.<ext>)")
	exportCmd.Flags().
		StringP("format", "f", "", "Output subtitle format (srt, vtt, ass); defaults to the input format")
	exportCmd.Flags().
		String("input-format", "auto", "Input subtitle format (srt, vtt, ass, ssa, auto)")
	exportCmd.Flags().
		String("offset", "", "Offset to bake in (or set SUBWATCH_OFFSET env var)")
}

func runExport(cmd *cobra.Command, args []string) error {
	inputPath := args[0]

	outputPath, _ := cmd.Flags().GetString("output")
	formatStr, _ := cmd.Flags().GetString("format")
	inputFormat, _ := cmd.Flags().GetString("input-format")

	offset, err := offsetFromFlags(cmd)
	if err != nil {
		return err
	}

	result, _, err := loadSubtitles(inputPath, inputFormat)
	if err != nil {
		return err
	}

	format := result.Format
	if formatStr != "" {
		format, err = subtitle.ParseFormat(strings.ToLower(formatStr))
		if err != nil {
			return err
		}
		if format == subtitle.FormatUnknown {
			format = result.Format
		}
	}

	if outputPath == "" {
		baseName := strings.TrimSuffix(inputPath, filepath.Ext(inputPath))
		outputPath = baseName + ".export" + subtitle.ExtensionForFormat(format)
	}

	// position = elapsed + offset, so the file moves the other way
	shifted := subtitle.Shift(result.Cues, -offset)
	dropped := result.Cues.Len() - shifted.Len()
	if dropped > 0 {
		logger.Warnw("Dropped cues that end before zero after offset",
			"offset", timeline.FormatClock(offset),
			"dropped", dropped,
		)
	}

	logger.Infow("Exporting subtitles",
		"input", inputPath,
		"output", outputPath,
		"format", string(format),
		"offset", timeline.FormatClock(offset),
	)

	if err := subtitle.WriteFile(outputPath, format, shifted); err != nil {
		return fmt.Errorf("failed to write subtitles: %w", err)
	}

	out := cmd.OutOrStdout()
	absOutput, _ := filepath.Abs(outputPath)
	fmt.Fprintf(out, "Subtitles exported successfully: %s\n", absOutput)
	fmt.Fprintf(out, "  Entries: %d\n", shifted.Len())
	fmt.Fprintf(out, "  Format: %s\n", format)
	return nil
}
