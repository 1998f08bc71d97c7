package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/wrenlowe/storyreel/internal/config"
	"github.com/wrenlowe/storyreel/internal/gui"
	"github.com/wrenlowe/storyreel/internal/logging"
	"github.com/wrenlowe/storyreel/internal/media"
	"github.com/wrenlowe/storyreel/internal/script"
	"github.com/wrenlowe/storyreel/pkg/util"
)

var (
	cfgFile string
	verbose bool
)

func main() {
	ctx := context.Background()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "storyreel",
	Short: "storyreel - storyboard timeline previewer",
	Long:  "An interactive previewer that places AI-generated images and narration on a shared timeline and plays them back in sync.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		_ = godotenv.Load()

		logging.Init(verbose)

		cfg, err := config.Load(cfgFile)
		if err != nil {
			return err
		}

		ctx := config.WithConfig(cmd.Context(), cfg)
		cmd.SetContext(ctx)

		return nil
	},
}

var (
	sectionsFile string
	startAt      string
)

var editCmd = &cobra.Command{
	Use:   "edit",
	Short: "Open the timeline editor",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.FromContext(cmd.Context())

		var sections []script.Section
		if sectionsFile != "" {
			var err error
			sections, err = script.LoadSections(sectionsFile)
			if err != nil {
				return err
			}
			log.Info().Int("sections", len(sections)).Str("file", sectionsFile).Msg("sections loaded")
		}

		start := 0.0
		if startAt != "" {
			var err error
			start, err = util.ParseTimestamp(startAt)
			if err != nil {
				return err
			}
		}

		return gui.RunEditor(cfg, sections, start)
	},
}

var probeCmd = &cobra.Command{
	Use:   "probe [media file]",
	Short: "Print the playable duration of a media file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.FromContext(cmd.Context())

		if !util.FileExists(args[0]) {
			return fmt.Errorf("no such file: %s", args[0])
		}

		prober, err := media.NewProber(log.Logger, cfg.Media.FFprobePath)
		if err != nil {
			return err
		}

		dur, err := prober.Duration(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		log.Info().
			Str("file", args[0]).
			Float64("seconds", dur).
			Str("duration", util.FormatDuration(dur)).
			Msg("probe complete")

		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	editCmd.Flags().StringVar(&sectionsFile, "sections", "", "JSON file of script sections to bulk-import")
	editCmd.Flags().StringVar(&startAt, "start", "", "initial playhead position (MM:SS or seconds)")

	rootCmd.AddCommand(editCmd)
	rootCmd.AddCommand(probeCmd)
}
