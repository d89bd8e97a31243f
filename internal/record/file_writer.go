package record

import (
	"encoding/json"
	"os"
)

// FileWriter writes snapshot rows to a JSONL file.
type FileWriter struct {
	file *os.File
	enc  *json.Encoder
}

// NewFileWriter creates (truncating) the output file.
func NewFileWriter(path string) (*FileWriter, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	return &FileWriter{file: f, enc: json.NewEncoder(f)}, nil
}

// Write logs a single snapshot row.
func (w *FileWriter) Write(row SnapshotRow) error {
	return w.enc.Encode(row)
}

// WriteBatch logs multiple snapshot rows.
func (w *FileWriter) WriteBatch(rows []SnapshotRow) error {
	for _, r := range rows {
		if err := w.Write(r); err != nil {
			return err
		}
	}
	return nil
}

// Close closes the underlying file.
func (w *FileWriter) Close() error {
	return w.file.Close()
}
