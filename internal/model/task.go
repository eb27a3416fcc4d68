package model

import (
	"fmt"
	"strings"
	"time"
)

// Mode selects what gets saved from a URL
type Mode int

const (
	// ModeVideo saves the best combined video+audio stream as mp4
	ModeVideo Mode = iota
	// ModeAudio saves the best audio stream converted to mp3
	ModeAudio
)

// String returns the kind label used in the history log
func (m Mode) String() string {
	switch m {
	case ModeVideo:
		return "Video"
	case ModeAudio:
		return "Audio"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// DownloadRequest describes one user-initiated download
type DownloadRequest struct {
	URL                string
	Mode               Mode
	DestinationDir     string // resolved directory; empty until resolved
	CustomDir          string // user supplied folder, overrides the per-mode default
	CustomFilenameStem string // optional output name without extension
}

// ExtractionResult is what the extraction library produced for a request
type ExtractionResult struct {
	Title        string
	ProducedPath string
}

// DisplayTitle returns the title, or the produced filename without extension
func (r *ExtractionResult) DisplayTitle() string {
	if r.Title != "" {
		return r.Title
	}

	if r.ProducedPath != "" {
		// support both / and \ separators
		parts := strings.FieldsFunc(r.ProducedPath, func(c rune) bool {
			return c == '/' || c == '\\'
		})
		if len(parts) > 0 {
			filename := parts[len(parts)-1]
			if idx := strings.LastIndex(filename, "."); idx > 0 {
				filename = filename[:idx]
			}
			return filename
		}
	}

	return ""
}

// DownloadTask tracks one request while it runs in the GUI worker
type DownloadTask struct {
	ID         string
	Request    DownloadRequest
	State      State
	Title      string
	OutputPath string // file produced by the extraction library
	FixedPath  string // container-fixed copy, if any
	LastError  string
	Warnings   []string
	StartedAt  time.Time
	FinishedAt time.Time
}

// Outcome is the final report of a pipeline run
type Outcome struct {
	Request   DownloadRequest
	State     State
	Result    *ExtractionResult
	FixedPath string
	Warnings  error // aggregated non-fatal warnings, nil when clean
}
