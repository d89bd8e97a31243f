package main

import (
	"log/slog"
	"os"

	"roboreplay/internal/record"
)

// newWriters assembles the snapshot sink chain: an optional JSONL file,
// stdout when printing, and GreptimeDB when GREPTIMEDB_ENDPOINT is set.
func newWriters(printOnly bool, logFile string, logger *slog.Logger) (record.SnapshotWriter, func(), error) {
	var sinks []record.SnapshotWriter
	cleanup := func() {}

	if logFile != "" {
		fw, err := record.NewFileWriter(logFile)
		if err != nil {
			return nil, nil, err
		}
		sinks = append(sinks, fw)
		cleanup = func() { _ = fw.Close() }
	}

	if printOnly || len(sinks) == 0 {
		sinks = append(sinks, record.NewStdoutWriter())
	}

	if endpoint := os.Getenv("GREPTIMEDB_ENDPOINT"); endpoint != "" && !printOnly {
		table := os.Getenv("GREPTIMEDB_TABLE")
		gw, err := record.NewGreptimeDBWriter(endpoint, "public", table, logger)
		if err != nil {
			cleanup()
			return nil, nil, err
		}
		sinks = append(sinks, gw)
	}

	return record.NewMultiWriter(sinks...), cleanup, nil
}
