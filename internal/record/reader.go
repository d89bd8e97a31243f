package record

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// ReadLog decodes JSONL snapshot rows from r into log, grouping rows into
// one StepRecord per tick. Rows must be ordered by tick, as the file and
// stdout writers emit them. Returns the robot names in positional order.
func ReadLog(r io.Reader, log *StateLog) ([]string, error) {
	dec := json.NewDecoder(r)

	var names []string
	var current StepRecord
	currentTick := -1

	flush := func() error {
		if currentTick < 0 {
			return nil
		}
		if log.Len() > 0 && len(current) != len(names) {
			return fmt.Errorf("record: tick %d has %d robots, expected %d", currentTick, len(current), len(names))
		}
		log.Append(current)
		return nil
	}

	for {
		var row SnapshotRow
		if err := dec.Decode(&row); err != nil {
			if err == io.EOF {
				break
			}
			return nil, err
		}
		if row.Tick != currentTick {
			if err := flush(); err != nil {
				return nil, err
			}
			current = nil
			currentTick = row.Tick
		}
		if log.Len() == 0 {
			// first tick group defines the positional robot order
			names = append(names, row.RobotName)
		}
		current = append(current, row.Snapshot())
	}
	if err := flush(); err != nil {
		return nil, err
	}
	return names, nil
}

// ReadLogFile opens a JSONL recording and loads it into log.
func ReadLogFile(path string, log *StateLog) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadLog(f, log)
}
