package capture

import (
	"encoding/csv"
	"fmt"
	"os"
	"time"
)

// SessionEntry is one row of the session log: which device was
// measured, when, and under what label.
type SessionEntry struct {
	Time         time.Time
	SerialNumber string
	Title        string
	Comment      string
}

// SessionLog appends capture-session metadata to a CSV file, creating
// it with a header row on first use.
type SessionLog struct {
	path string
}

// NewSessionLog refers to (but does not yet create) the log at path.
func NewSessionLog(path string) *SessionLog {
	return &SessionLog{path: path}
}

// Append writes one entry, creating the file and header if needed.
func (l *SessionLog) Append(entry SessionEntry) error {
	_, statErr := os.Stat(l.path)
	fresh := os.IsNotExist(statErr)

	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open session log: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if fresh {
		if err := w.Write([]string{"Time", "SNID", "Title", "Comment"}); err != nil {
			return fmt.Errorf("write session header: %w", err)
		}
	}

	record := []string{
		entry.Time.Format("2006-01-02 15:04:05"),
		entry.SerialNumber,
		entry.Title,
		entry.Comment,
	}
	if err := w.Write(record); err != nil {
		return fmt.Errorf("write session entry: %w", err)
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush session log: %w", err)
	}

	return f.Close()
}
