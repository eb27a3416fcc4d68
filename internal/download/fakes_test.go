package download

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/ytget/yt-autofix/internal/model"
	"github.com/ytget/yt-autofix/internal/progress"
)

// fakeExtractor writes a small file next to the output template and replays
// the configured events.
type fakeExtractor struct {
	mu     sync.Mutex
	title  string
	ext    string
	events []model.ProgressEvent
	err    error
	block  chan struct{}
	calls  []Options
	urls   []string
}

func (f *fakeExtractor) Fetch(ctx context.Context, url string, opts Options, relay progress.Relay) (*model.ExtractionResult, error) {
	f.mu.Lock()
	f.calls = append(f.calls, opts)
	f.urls = append(f.urls, url)
	f.mu.Unlock()

	if f.block != nil {
		<-f.block
	}
	for _, ev := range f.events {
		relay.OnEvent(ev)
	}
	if f.err != nil {
		return nil, f.err
	}

	ext := f.ext
	if ext == "" {
		ext = "mp4"
	}
	name := strings.Replace(filepath.Base(opts.OutputTemplate), "%(title)s", f.title, 1)
	name = strings.Replace(name, "%(id)s", "abc123", 1)
	name = strings.Replace(name, "%(ext)s", ext, 1)
	path := filepath.Join(filepath.Dir(opts.OutputTemplate), name)
	if err := os.WriteFile(path, []byte("media"), 0o644); err != nil {
		return nil, err
	}
	return &model.ExtractionResult{Title: f.title, ProducedPath: path}, nil
}

func (f *fakeExtractor) lastOptions() Options {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.calls) == 0 {
		return Options{}
	}
	return f.calls[len(f.calls)-1]
}

type fakeFixer struct {
	err   error
	calls []string
}

func (f *fakeFixer) FixContainer(ctx context.Context, inputPath string) (string, error) {
	f.calls = append(f.calls, inputPath)
	if f.err != nil {
		return "", f.err
	}
	return strings.TrimSuffix(inputPath, filepath.Ext(inputPath)) + "_corrigido.mp4", nil
}

type fakeHistory struct {
	mu      sync.Mutex
	records []model.HistoryRecord
	err     error
}

func (h *fakeHistory) Append(record model.HistoryRecord) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.err != nil {
		return h.err
	}
	h.records = append(h.records, record)
	return nil
}

type fakeURLResolver struct {
	to  string
	err error
}

func (r fakeURLResolver) ResolveURL(ctx context.Context, url string) (string, error) {
	if r.err != nil {
		return "", r.err
	}
	if r.to == "" {
		return url, nil
	}
	return r.to, nil
}

// recorder collects relay events and state changes
type recorder struct {
	mu     sync.Mutex
	events []model.ProgressEvent
	states []model.State
}

func (r *recorder) observer() Observer {
	return Observer{
		Relay: progress.RelayFunc(func(ev model.ProgressEvent) {
			r.mu.Lock()
			r.events = append(r.events, ev)
			r.mu.Unlock()
		}),
		OnState: func(s model.State) {
			r.mu.Lock()
			r.states = append(r.states, s)
			r.mu.Unlock()
		},
	}
}

var errFake = errors.New("fake failure")
