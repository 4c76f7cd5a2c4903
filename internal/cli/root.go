package cli

import (
	"github.com/mgpai22/subwatch/internal/logging"
	"github.com/spf13/cobra"
)

var (
	verbose bool
	logger  *logging.Logger
)

var rootCmd = &cobra.Command{
	Use:   "subwatch",
	Short: "Terminal subtitle player",
	Long: `Subwatch plays SRT, WebVTT and ASS/SSA subtitle files on a clock in the
terminal, so they can be read alongside a video playing elsewhere.

The clock can be paused, sought and offset to line the subtitles up with the
video. Files can also be inspected and re-exported with an offset applied.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logger = logging.NewLogger(verbose)

		cfg, err := loadEnv()
		if err != nil {
			return err
		}
		env = cfg
		return nil
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().
		BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
}
