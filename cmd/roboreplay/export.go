package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"roboreplay/internal/config"
	"roboreplay/internal/logging"
	"roboreplay/internal/media"
	"roboreplay/internal/playback"
	"roboreplay/internal/record"
	"roboreplay/internal/world"
)

var (
	expConfigPath string
	expSchemaPath string
	expInput      string
	expBase       string
	expStart      float64
	expStop       float64
	expStep       float64
	expLoop       int
	expDelayMS    int
	expVideo      bool
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export a recorded time range as animated gif (and optionally mp4)",
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := logging.New()
		cfg, err := config.Load(expConfigPath, expSchemaPath)
		if err != nil {
			return err
		}

		log := record.NewStateLog(cfg.Record.Step)
		if _, err := record.ReadLogFile(expInput, log); err != nil {
			return err
		}

		mirror := world.New(cfg)
		scrubber := playback.NewScrubber(log, mirror, nil)
		controller := playback.NewController(scrubber, time.Second)
		exporter := playback.NewExporter(controller, media.FFmpegEncoder{})

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		ctx = logging.NewContext(ctx, logger)

		stopAt := expStop
		if stopAt <= 0 {
			stopAt = log.Duration()
		}
		delayMS := expDelayMS
		if delayMS <= 0 {
			delayMS = cfg.Export.FrameMS
		}

		res, err := exporter.Export(ctx, playback.ExportOptions{
			Start:    expStart,
			Stop:     stopAt,
			Step:     expStep,
			Loop:     expLoop,
			DelayMS:  delayMS,
			BaseName: expBase,
			Video:    expVideo,
			Progress: func(done, total int) {
				if done%25 == 0 || done == total {
					logger.Info("rendering frames", "done", done, "total", total)
				}
			},
		})
		if err != nil {
			return err
		}
		if res.VideoErr != nil {
			logger.Warn("video transcode failed; gif artifact is still valid",
				"gif", res.GIFPath, "err", res.VideoErr)
		}
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVar(&expConfigPath, "config", "config/world.yaml", "Path to world configuration YAML")
	exportCmd.Flags().StringVar(&expSchemaPath, "schema", "schemas/world.cue", "Path to CUE schema file")
	exportCmd.Flags().StringVar(&expInput, "input", "recording.jsonl", "Path to the JSONL recording")
	exportCmd.Flags().StringVar(&expBase, "base", "roboreplay_movie", "Base name for the .gif/.mp4 artifacts")
	exportCmd.Flags().Float64Var(&expStart, "start", 0, "Start time in simulated seconds")
	exportCmd.Flags().Float64Var(&expStop, "stop", 0, "Stop time in simulated seconds (defaults to full recording)")
	exportCmd.Flags().Float64Var(&expStep, "step", 0, "Time step between frames (defaults to the recording step)")
	exportCmd.Flags().IntVar(&expLoop, "loop", 0, "GIF repeat count (0 loops forever)")
	exportCmd.Flags().IntVar(&expDelayMS, "delay", 0, "Per-frame duration in milliseconds")
	exportCmd.Flags().BoolVar(&expVideo, "video", false, "Also transcode to mp4 with ffmpeg")
}
