package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"roboreplay/internal/config"
	"roboreplay/internal/logging"
	"roboreplay/internal/media"
	"roboreplay/internal/playback"
	"roboreplay/internal/record"
	"roboreplay/internal/tui"
	"roboreplay/internal/world"
)

var (
	repConfigPath string
	repSchemaPath string
	repInput      string
	repRate       time.Duration
	repExportBase string
)

var replayCmd = &cobra.Command{
	Use:   "replay",
	Short: "Scrub through a recorded session interactively",
	Long:  "replay loads a JSONL recording and opens an interactive timeline: step, seek, auto-play, and export from the keyboard.",
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := logging.New()
		cfg, err := config.Load(repConfigPath, repSchemaPath)
		if err != nil {
			return err
		}

		log := record.NewStateLog(cfg.Record.Step)
		names, err := record.ReadLogFile(repInput, log)
		if err != nil {
			return err
		}
		if len(names) != len(cfg.Robots) {
			logger.Warn("recording robot count differs from config", "recorded", len(names), "configured", len(cfg.Robots))
		}

		rate := repRate
		if rate <= 0 {
			rate = time.Duration(cfg.Playback.RateS * float64(time.Second))
		}

		mirror := world.New(cfg)
		scrubber := playback.NewScrubber(log, mirror, nil)
		controller := playback.NewController(scrubber, rate)
		exporter := playback.NewExporter(controller, media.FFmpegEncoder{})

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		ctx = logging.NewContext(ctx, logger)
		controller.Start(ctx)
		controller.Begin()

		if !term.IsTerminal(int(os.Stdout.Fd())) {
			logger.Info("stdout is not a terminal; loaded recording, nothing to show",
				"steps", log.Len(), "duration", log.Duration())
			return nil
		}
		return tui.Run(ctx, controller, exporter, repExportBase)
	},
}

func init() {
	replayCmd.Flags().StringVar(&repConfigPath, "config", "config/world.yaml", "Path to world configuration YAML")
	replayCmd.Flags().StringVar(&repSchemaPath, "schema", "schemas/world.cue", "Path to CUE schema file")
	replayCmd.Flags().StringVar(&repInput, "input", "recording.jsonl", "Path to the JSONL recording")
	replayCmd.Flags().DurationVar(&repRate, "rate", 0, "Auto-play frame interval (e.g. 250ms; defaults to config)")
	replayCmd.Flags().StringVar(&repExportBase, "export-base", "roboreplay_movie", "Base name for exported artifacts")
}
