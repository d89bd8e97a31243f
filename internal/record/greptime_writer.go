package record

import (
	"context"
	"log/slog"
	"net"
	"strconv"

	greptime "github.com/GreptimeTeam/greptimedb-ingester-go"
	ingesterContext "github.com/GreptimeTeam/greptimedb-ingester-go/context"
	"github.com/GreptimeTeam/greptimedb-ingester-go/table"
	"github.com/GreptimeTeam/greptimedb-ingester-go/table/types"
)

// GreptimeDBWriter persists snapshot rows to GreptimeDB via the ingester
// client, so recordings can be queried as a timeseries.
type GreptimeDBWriter struct {
	client *greptime.Client
	db     string
	table  string
	logger *slog.Logger
}

// NewGreptimeDBWriter creates the writer; GreptimeDB auto-creates the table
// on first write.
func NewGreptimeDBWriter(endpoint, database, tableName string, logger *slog.Logger) (*GreptimeDBWriter, error) {
	if tableName == "" {
		tableName = "robot_snapshots"
	}
	host, portStr, err := net.SplitHostPort(endpoint)
	if err != nil {
		host = endpoint
		portStr = ""
	}
	cfg := greptime.NewConfig(host).WithDatabase(database)
	if portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return nil, err
		}
		cfg = cfg.WithPort(port)
	}
	client, err := greptime.NewClient(cfg)
	if err != nil {
		return nil, err
	}

	return &GreptimeDBWriter{client: client, db: database, table: tableName, logger: logger}, nil
}

// Write inserts a single snapshot row.
func (w *GreptimeDBWriter) Write(row SnapshotRow) error {
	return w.WriteBatch([]SnapshotRow{row})
}

// WriteBatch inserts multiple snapshot rows.
func (w *GreptimeDBWriter) WriteBatch(rows []SnapshotRow) error {
	if len(rows) == 0 {
		return nil
	}

	ctx := ingesterContext.New(context.Background())

	tbl, err := table.New(w.table)
	if err != nil {
		return err
	}
	if err := tbl.AddTagColumn("session_id", types.STRING); err != nil {
		return err
	}
	if err := tbl.AddTagColumn("robot", types.STRING); err != nil {
		return err
	}
	if err := tbl.AddFieldColumn("tick", types.FLOAT64); err != nil {
		return err
	}
	if err := tbl.AddFieldColumn("sim_time", types.FLOAT64); err != nil {
		return err
	}
	if err := tbl.AddFieldColumn("x", types.FLOAT64); err != nil {
		return err
	}
	if err := tbl.AddFieldColumn("y", types.FLOAT64); err != nil {
		return err
	}
	if err := tbl.AddFieldColumn("a", types.FLOAT64); err != nil {
		return err
	}
	if err := tbl.AddFieldColumn("vx", types.FLOAT64); err != nil {
		return err
	}
	if err := tbl.AddFieldColumn("vy", types.FLOAT64); err != nil {
		return err
	}
	if err := tbl.AddFieldColumn("va", types.FLOAT64); err != nil {
		return err
	}
	if err := tbl.AddFieldColumn("stalled", types.STRING); err != nil {
		return err
	}
	if err := tbl.AddTimestampColumn("ts", types.TIMESTAMP_MILLISECOND); err != nil {
		return err
	}

	for _, r := range rows {
		if err := tbl.AddRow(
			r.SessionID,
			r.RobotName,
			float64(r.Tick),
			r.SimTime,
			r.X,
			r.Y,
			r.A,
			r.VX,
			r.VY,
			r.VA,
			strconv.FormatBool(r.Stalled),
			r.Timestamp,
		); err != nil {
			return err
		}
	}

	if _, err := w.client.Write(ctx, tbl); err != nil {
		if w.logger != nil {
			w.logger.Error("greptime write failed", "rows", len(rows), "err", err)
		}
		return err
	}
	if w.logger != nil {
		w.logger.Debug("greptime write ok", "rows", len(rows))
	}
	return nil
}
