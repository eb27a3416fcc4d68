package download

import (
	"context"

	"github.com/ytget/yt-autofix/internal/model"
	"github.com/ytget/yt-autofix/internal/progress"
)

// Extractor is the extraction library boundary: one blocking download per call.
type Extractor interface {
	Fetch(ctx context.Context, url string, opts Options, relay progress.Relay) (*model.ExtractionResult, error)
}

// URLResolver rewrites a URL before extraction (e.g. playlist to first video).
type URLResolver interface {
	ResolveURL(ctx context.Context, url string) (string, error)
}

// HistoryAppender persists one record per completed download.
type HistoryAppender interface {
	Append(record model.HistoryRecord) error
}

// Downloader defines the interface for the desktop download service.
type Downloader interface {
	SetUpdateCallback(func(*model.DownloadTask))
	Start(req model.DownloadRequest, relay progress.Relay) (*model.DownloadTask, error)
	Busy() bool
	Current() (*model.DownloadTask, bool)
}
