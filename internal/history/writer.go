// Package history appends one line per completed download to a plain-text log.
package history

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/ytget/yt-autofix/internal/model"
	"github.com/ytget/yt-autofix/internal/platform"
)

// DefaultFileName is the history log name inside the logs folder
const DefaultFileName = "history.log"

const filePermissions = 0644

// Writer appends HistoryRecords to a single shared file. Each append opens,
// writes and closes the file while holding the lock, so concurrent callers
// never interleave partial lines. The file is never truncated or rotated.
type Writer struct {
	mu   sync.Mutex
	path string
}

// NewWriter creates a writer for path; the file is created on first append
func NewWriter(path string) *Writer {
	return &Writer{path: path}
}

// Path returns the log file location
func (w *Writer) Path() string {
	return w.path
}

// Append writes one record as a single UTF-8 line
func (w *Writer) Append(record model.HistoryRecord) error {
	line := record.Line() + "\n"

	w.mu.Lock()
	defer w.mu.Unlock()

	if err := platform.CreateDirectoryIfNotExists(filepath.Dir(w.path)); err != nil {
		return fmt.Errorf("failed to create history directory: %w", err)
	}

	f, err := os.OpenFile(w.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, filePermissions)
	if err != nil {
		return fmt.Errorf("failed to open history log: %w", err)
	}

	if _, err := f.WriteString(line); err != nil {
		f.Close()
		return fmt.Errorf("failed to write history log: %w", err)
	}
	return f.Close()
}
