package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"roboreplay/internal/admin"
	"roboreplay/internal/config"
	"roboreplay/internal/logging"
	"roboreplay/internal/playback"
	"roboreplay/internal/record"
	"roboreplay/internal/world"
)

var (
	srvConfigPath string
	srvSchemaPath string
	srvInput      string
	srvAddr       string
	srvRate       time.Duration
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve playback control over HTTP",
	Long:  "serve loads a recording and exposes frame seeks and navigation over HTTP, for embedding the scrubber in another surface.",
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := logging.New()
		cfg, err := config.Load(srvConfigPath, srvSchemaPath)
		if err != nil {
			return err
		}

		log := record.NewStateLog(cfg.Record.Step)
		if _, err := record.ReadLogFile(srvInput, log); err != nil {
			return err
		}

		rate := srvRate
		if rate <= 0 {
			rate = time.Duration(cfg.Playback.RateS * float64(time.Second))
		}

		mirror := world.New(cfg)
		scrubber := playback.NewScrubber(log, mirror, nil)
		controller := playback.NewController(scrubber, rate)

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		ctx = logging.NewContext(ctx, logger)
		controller.Start(ctx)

		logger.Info("playback server listening", "addr", srvAddr, "steps", log.Len())
		if err := admin.NewServer(controller).Start(ctx, srvAddr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	},
}

func init() {
	serveCmd.Flags().StringVar(&srvConfigPath, "config", "config/world.yaml", "Path to world configuration YAML")
	serveCmd.Flags().StringVar(&srvSchemaPath, "schema", "schemas/world.cue", "Path to CUE schema file")
	serveCmd.Flags().StringVar(&srvInput, "input", "recording.jsonl", "Path to the JSONL recording")
	serveCmd.Flags().StringVar(&srvAddr, "addr", ":8080", "Listen address")
	serveCmd.Flags().DurationVar(&srvRate, "rate", 0, "Auto-play frame interval (defaults to config)")
}
