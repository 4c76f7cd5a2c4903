package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/mgpai22/subwatch/internal/subtitle"
	"github.com/mgpai22/subwatch/internal/timeline"
	"github.com/spf13/cobra"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect [subtitle_file]",
	Short: "Summarize a subtitle file and show the cues active at a time",
	Long: `Parse a subtitle file and print a summary: detected format, cue count,
length and every block that was skipped.

With --at, also print the cues that would be on screen at that position,
after applying --offset.

Examples:
  subwatch inspect movie.srt
  subwatch inspect movie.srt --at 00:01:02:500
  subwatch inspect episode.ass --at 90s --offset -1s
  subwatch inspect talk.vtt --list`,
	Args: cobra.ExactArgs(1),
	RunE: runInspect,
}

func init() {
	rootCmd.AddCommand(inspectCmd)

	inspectCmd.Flags().
		StringP("format", "f", "auto", "Subtitle format (srt, vtt, ass, ssa, auto)")
	inspectCmd.Flags().
		String("at", "", "Show the cues active at this position")
	inspectCmd.Flags().
		String("offset", "", "Offset applied with --at (or set SUBWATCH_OFFSET env var)")
	inspectCmd.Flags().
		Bool("list", false, "List every cue")
}

func runInspect(cmd *cobra.Command, args []string) error {
	path := args[0]
	out := cmd.OutOrStdout()

	formatName, _ := cmd.Flags().GetString("format")
	list, _ := cmd.Flags().GetBool("list")

	offset, err := offsetFromFlags(cmd)
	if err != nil {
		return err
	}
	at, hasAt, err := clockFlag(cmd, "at")
	if err != nil {
		return err
	}

	result, _, err := loadSubtitles(path, formatName)
	if err != nil {
		return err
	}
	seq := result.Cues

	fmt.Fprintf(out, "File: %s\n", path)
	fmt.Fprintf(out, "  Format: %s\n", result.Format)
	fmt.Fprintf(out, "  Cues: %d\n", seq.Len())
	fmt.Fprintf(out, "  Duration: %s\n", timeline.FormatClock(seq.End()))
	fmt.Fprintf(out, "  Skipped: %d\n", len(result.Warnings))
	for _, w := range result.Warnings {
		fmt.Fprintf(out, "    %s\n", w)
	}

	if list {
		fmt.Fprintln(out, "Cues:")
		for _, cue := range seq.Cues() {
			printCue(out, cue)
		}
	}

	if hasAt {
		engine := timeline.NewEngine()
		engine.Load(seq)
		engine.SetOffset(offset)
		engine.SeekAbsolute(at)

		fmt.Fprintf(out, "Active at %s (position %s):\n",
			timeline.FormatClock(at),
			timeline.FormatClock(engine.Position()),
		)
		active := engine.Current()
		if len(active) == 0 {
			fmt.Fprintln(out, "  (none)")
		}
		for _, cue := range active {
			printCue(out, cue)
		}
	}

	return nil
}

func printCue(out io.Writer, cue subtitle.Cue) {
	fmt.Fprintf(out, "  #%d %s --> %s  %s\n",
		cue.Index,
		timeline.FormatClock(cue.Start),
		timeline.FormatClock(cue.End),
		strings.ReplaceAll(cue.Text, "\n", " / "),
	)
}
