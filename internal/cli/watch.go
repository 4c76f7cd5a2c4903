package cli

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mgpai22/subwatch/internal/logging"
	"github.com/mgpai22/subwatch/internal/media"
	"github.com/mgpai22/subwatch/internal/player"
	"github.com/mgpai22/subwatch/internal/subtitle"
	"github.com/mgpai22/subwatch/internal/timeline"
	"github.com/spf13/cobra"
)

var watchCmd = &cobra.Command{
	Use:   "watch [subtitle_file]",
	Short: "Play a subtitle file in the terminal",
	Long: `Play a subtitle file on a clock in the terminal.

The file format is taken from --format, then the file extension, then the
content. Playback starts paused at the beginning unless --play or --start is
given. Offsets shift the subtitles against the clock: a positive offset shows
them earlier.

Times accept HH:MM:SS:mmm, HH:MM:SS.mmm, HH:MM:SS or Go durations (1.5s, -250ms).

Controls:
  space        play/pause
  left/right   seek -5s/+5s
  [ ]          offset -100ms/+100ms
  { }          offset -1s/+1s
  g            type a time to jump to
  o            type an offset
  r            reset to the beginning
  t            cycle color theme
  ctrl+r       reload the file from disk
  q            quit

Examples:
  subwatch watch movie.srt
  subwatch watch episode.ass --offset -00:00:01:200 --play
  subwatch watch talk.vtt --start 00:12:30 --media talk.mp4`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)

	watchCmd.Flags().
		StringP("format", "f", "auto", "Subtitle format (srt, vtt, ass, ssa, auto)")
	watchCmd.Flags().
		String("offset", "", "Initial offset (or set SUBWATCH_OFFSET env var)")
	watchCmd.Flags().
		String("start", "", "Initial playback position")
	watchCmd.Flags().
		String("tick", "", "Clock tick interval, e.g. 10ms (or set SUBWATCH_TICK env var)")
	watchCmd.Flags().
		Bool("play", false, "Start playing immediately")
	watchCmd.Flags().
		String("media", "", "Media file whose duration is shown as the total (needs ffprobe)")
	watchCmd.Flags().
		String("log-file", "", "Write logs to this file while the player is open (or set SUBWATCH_LOG_FILE env var)")
}

func runWatch(cmd *cobra.Command, args []string) error {
	path := args[0]

	formatName, _ := cmd.Flags().GetString("format")
	play, _ := cmd.Flags().GetBool("play")
	mediaPath, _ := cmd.Flags().GetString("media")
	logFile := flagOr(cmd, "log-file", env.LogFile)

	offset, err := offsetFromFlags(cmd)
	if err != nil {
		return err
	}
	start, hasStart, err := clockFlag(cmd, "start")
	if err != nil {
		return err
	}
	interval, err := tickFromFlags(cmd)
	if err != nil {
		return err
	}

	result, format, err := loadSubtitles(path, formatName)
	if err != nil {
		return err
	}

	var total time.Duration
	if mediaPath != "" {
		total, err = media.Duration(mediaPath)
		if err != nil {
			logger.Warnw("Could not read media duration, using subtitle length",
				"media", mediaPath,
				"error", err,
			)
		}
	}

	// the terminal belongs to the player from here on
	uiLogger := logging.NewNop()
	if logFile != "" {
		uiLogger, err = logging.NewFileLogger(logFile, verbose)
		if err != nil {
			return err
		}
		defer func() { _ = uiLogger.Sync() }()
	}

	engine := timeline.NewEngine()
	engine.Load(result.Cues)
	engine.SetOffset(offset)
	if hasStart {
		engine.SeekAbsolute(start)
	}
	if play {
		if err := engine.Play(); err != nil {
			return err
		}
	}

	uiLogger.Infow("Starting player",
		"path", path,
		"format", string(result.Format),
		"cues", result.Cues.Len(),
		"offset", timeline.FormatClock(offset),
		"tick", interval.String(),
	)

	model := player.New(engine, player.Options{
		Path:     path,
		Interval: interval,
		Total:    total,
		Logger:   uiLogger,
		Loader: func() (*subtitle.Result, error) {
			return subtitle.LoadFileFormat(path, format)
		},
	})

	if _, err := tea.NewProgram(model, tea.WithAltScreen()).Run(); err != nil {
		return fmt.Errorf("player failed: %w", err)
	}
	return nil
}

func tickFromFlags(cmd *cobra.Command) (time.Duration, error) {
	raw := flagOr(cmd, "tick", env.Tick)
	if raw == "" {
		return player.DefaultInterval, nil
	}
	interval, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid tick interval %q: %w", raw, err)
	}
	if interval <= 0 {
		return 0, fmt.Errorf("invalid tick interval %q: must be positive", raw)
	}
	return interval, nil
}
