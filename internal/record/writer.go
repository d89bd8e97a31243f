package record

import (
	"encoding/json"
	"os"
)

// SnapshotWriter is an interface to support different output sinks.
type SnapshotWriter interface {
	Write(SnapshotRow) error
}

// Optional: writers can also support batch mode.
type batchWriter interface {
	WriteBatch([]SnapshotRow) error
}

// WriteRows sends rows to w, using batch mode when the writer supports it.
func WriteRows(w SnapshotWriter, rows []SnapshotRow) error {
	if w == nil || len(rows) == 0 {
		return nil
	}
	if bw, ok := w.(batchWriter); ok {
		return bw.WriteBatch(rows)
	}
	for _, r := range rows {
		if err := w.Write(r); err != nil {
			return err
		}
	}
	return nil
}

// StdoutWriter prints snapshot rows as JSON lines to STDOUT.
type StdoutWriter struct {
	enc *json.Encoder
}

// NewStdoutWriter creates a stdout sink.
func NewStdoutWriter() *StdoutWriter {
	return &StdoutWriter{enc: json.NewEncoder(os.Stdout)}
}

// Write implements SnapshotWriter.
func (w *StdoutWriter) Write(row SnapshotRow) error {
	return w.enc.Encode(row)
}

// MultiWriter fans rows out to several sinks.
type MultiWriter struct {
	writers []SnapshotWriter
}

// NewMultiWriter combines sinks; nil entries are skipped.
func NewMultiWriter(writers ...SnapshotWriter) *MultiWriter {
	mw := &MultiWriter{}
	for _, w := range writers {
		if w != nil {
			mw.writers = append(mw.writers, w)
		}
	}
	return mw
}

// Write implements SnapshotWriter.
func (m *MultiWriter) Write(row SnapshotRow) error {
	for _, w := range m.writers {
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

// WriteBatch forwards batches, upgrading per-sink when supported.
func (m *MultiWriter) WriteBatch(rows []SnapshotRow) error {
	for _, w := range m.writers {
		if err := WriteRows(w, rows); err != nil {
			return err
		}
	}
	return nil
}
