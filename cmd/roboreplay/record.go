package main

import (
	"context"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/spf13/cobra"

	"roboreplay/internal/config"
	"roboreplay/internal/logging"
	"roboreplay/internal/record"
	"roboreplay/internal/world"
)

var (
	recConfigPath string
	recSchemaPath string
	recOutput     string
	recDuration   float64
	recPrintOnly  bool
)

var recordCmd = &cobra.Command{
	Use:   "record",
	Short: "Run the simulation and record per-tick robot state",
	Long:  "record steps the configured world for a fixed simulated duration, capturing one snapshot per robot per tick into a JSONL recording.",
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := logging.New()
		cfg, err := config.Load(recConfigPath, recSchemaPath)
		if err != nil {
			return err
		}

		duration := recDuration
		if duration <= 0 {
			duration = cfg.Record.Duration
		}
		if env := os.Getenv("RECORD_DURATION"); env != "" {
			d, err := strconv.ParseFloat(env, 64)
			if err != nil {
				return err
			}
			duration = d
		}

		output := recOutput
		if recPrintOnly {
			output = ""
		}
		writer, cleanup, err := newWriters(recPrintOnly, output, logger)
		if err != nil {
			return err
		}
		defer cleanup()

		w := world.New(cfg)
		log := record.NewStateLog(cfg.Record.Step)
		session := record.NewSession(w, record.NewRecorder(w, log), writer)

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		ctx = logging.NewContext(ctx, logger)

		return session.Run(ctx, duration)
	},
}

func init() {
	recordCmd.Flags().StringVar(&recConfigPath, "config", "config/world.yaml", "Path to world configuration YAML")
	recordCmd.Flags().StringVar(&recSchemaPath, "schema", "schemas/world.cue", "Path to CUE schema file")
	recordCmd.Flags().StringVar(&recOutput, "output", "recording.jsonl", "Path for the JSONL recording")
	recordCmd.Flags().Float64Var(&recDuration, "duration", 0, "Simulated seconds to record (defaults to config)")
	recordCmd.Flags().BoolVar(&recPrintOnly, "print-only", false, "Print snapshots to STDOUT instead of writing files/DB")
}
