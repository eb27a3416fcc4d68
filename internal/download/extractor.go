package download

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/lrstanley/go-ytdlp"
	"go.uber.org/zap"

	"github.com/ytget/yt-autofix/internal/model"
	"github.com/ytget/yt-autofix/internal/progress"
)

// ProgressInterval is how often yt-dlp progress updates are delivered
const ProgressInterval = 500 * time.Millisecond

// YTDLPExtractor runs the yt-dlp executable through go-ytdlp
type YTDLPExtractor struct {
	logger *zap.Logger
}

// NewYTDLPExtractor creates the default extraction backend
func NewYTDLPExtractor(logger *zap.Logger) *YTDLPExtractor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &YTDLPExtractor{logger: logger}
}

// Fetch downloads url with opts, forwarding progress to relay. It blocks until
// yt-dlp exits.
func (e *YTDLPExtractor) Fetch(ctx context.Context, url string, opts Options, relay progress.Relay) (*model.ExtractionResult, error) {
	if relay == nil {
		relay = progress.Discard
	}

	dl := buildCommand(opts)

	// Title and filename as last reported by progress, used when the JSON
	// info is unavailable
	var (
		mu        sync.Mutex
		lastTitle string
		lastFile  string
	)
	dl.ProgressFunc(ProgressInterval, func(update ytdlp.ProgressUpdate) {
		mu.Lock()
		if update.Filename != "" {
			lastFile = update.Filename
		}
		if update.Info != nil && update.Info.Title != nil && *update.Info.Title != "" {
			lastTitle = *update.Info.Title
		}
		mu.Unlock()

		if ev, ok := EventFromUpdate(update); ok {
			relay.OnEvent(ev)
		}
	})

	e.logger.Debug("running yt-dlp",
		zap.String("url", url),
		zap.String("format", opts.Format),
		zap.String("output", opts.OutputTemplate))

	res, err := dl.Run(ctx, url)
	if err != nil {
		return nil, err
	}

	result := &model.ExtractionResult{}
	if info, err := res.GetExtractedInfo(); err == nil && len(info) > 0 {
		if info[0].Title != nil {
			result.Title = *info[0].Title
		}
		if info[0].Filename != nil {
			result.ProducedPath = *info[0].Filename
		}
	}

	mu.Lock()
	if result.Title == "" {
		result.Title = lastTitle
	}
	if result.ProducedPath == "" {
		result.ProducedPath = lastFile
	}
	mu.Unlock()

	if result.ProducedPath == "" {
		return nil, fmt.Errorf("yt-dlp reported no output file")
	}
	result.ProducedPath = FinalPath(result.ProducedPath, opts)

	return result, nil
}

// buildCommand maps typed options onto yt-dlp flags
func buildCommand(opts Options) *ytdlp.Command {
	dl := ytdlp.New().
		Format(opts.Format).
		Output(opts.OutputTemplate).
		PrintJSON()

	if opts.Quiet {
		// keep progress lines flowing while quiet
		dl.Quiet().Progress()
	}
	if opts.NoPlaylist {
		dl.NoPlaylist()
	}
	if opts.MergeOutputFormat != "" {
		dl.MergeOutputFormat(opts.MergeOutputFormat)
	}
	if step, ok := opts.ExtractsAudio(); ok {
		dl.ExtractAudio().
			AudioFormat(step.PreferredCodec).
			AudioQuality(step.PreferredQuality)
	}

	return dl
}

// EventFromUpdate converts a yt-dlp progress update into a ProgressEvent
func EventFromUpdate(update ytdlp.ProgressUpdate) (model.ProgressEvent, bool) {
	switch update.Status {
	case ytdlp.ProgressStatusDownloading:
		var percent float64
		if update.TotalBytes > 0 {
			percent = float64(update.DownloadedBytes) / float64(update.TotalBytes) * 100
		}

		var speed string
		if !update.Started.IsZero() {
			elapsed := time.Since(update.Started)
			if elapsed.Seconds() > 0 {
				bytesPerSecond := float64(update.DownloadedBytes) / elapsed.Seconds()
				speed = fmt.Sprintf("%.1fMB/s", bytesPerSecond/1024/1024)
			}
		}

		return model.Downloading(percent, speed, update.ETA()), true
	case ytdlp.ProgressStatusFinished:
		return model.Finished(), true
	case ytdlp.ProgressStatusPostProcessing:
		return model.PostProcessing(), true
	}
	return model.ProgressEvent{}, false
}

// FinalPath returns the file left on disk after yt-dlp post-processing. The
// reported filename carries the pre-conversion extension, so the converted
// sibling is preferred when it exists.
func FinalPath(reported string, opts Options) string {
	var ext string
	if step, ok := opts.ExtractsAudio(); ok {
		ext = step.PreferredCodec
	} else if opts.MergeOutputFormat != "" {
		ext = opts.MergeOutputFormat
	}
	if ext == "" {
		return reported
	}

	candidate := strings.TrimSuffix(reported, filepath.Ext(reported)) + "." + ext
	if _, err := os.Stat(candidate); err == nil {
		return candidate
	}
	return reported
}
