package download

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ytget/yt-autofix/internal/model"
	"github.com/ytget/yt-autofix/internal/progress"
)

func waitService(t *testing.T, s *Service) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, s.Wait(ctx))
}

func TestService_StartRunsToDone(t *testing.T) {
	ext := &fakeExtractor{title: "Clip", events: []model.ProgressEvent{model.Downloading(50, "", 0)}}
	p, _ := newTestPipeline(t, ext, &fakeFixer{}, true, nil)
	s := NewService(p, nil)

	var (
		mu      sync.Mutex
		updates []*model.DownloadTask
	)
	s.SetUpdateCallback(func(task *model.DownloadTask) {
		mu.Lock()
		updates = append(updates, task)
		mu.Unlock()
	})

	mailbox := progress.NewMailbox()
	task, err := s.Start(model.DownloadRequest{URL: testURL, Mode: model.ModeVideo}, mailbox)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(task.ID, TaskIDPrefix))
	assert.Equal(t, model.StateIdle, task.State)

	waitService(t, s)
	assert.False(t, s.Busy())

	current, ok := s.Current()
	require.True(t, ok)
	assert.Equal(t, task.ID, current.ID)
	assert.Equal(t, model.StateDone, current.State)
	assert.Equal(t, "Clip", current.Title)
	assert.NotEmpty(t, current.OutputPath)
	assert.NotEmpty(t, current.FixedPath)
	assert.Empty(t, current.LastError)
	assert.False(t, current.FinishedAt.IsZero())

	mu.Lock()
	defer mu.Unlock()
	require.NotEmpty(t, updates)
	assert.Equal(t, model.StateDone, updates[len(updates)-1].State)

	// latest event left in the mailbox is the post-processing notice
	ev, ok := mailbox.Take()
	require.True(t, ok)
	assert.Equal(t, model.EventPostProcessing, ev.Kind)
}

func TestService_BusyRejectsSecondStart(t *testing.T) {
	ext := &fakeExtractor{title: "Clip", block: make(chan struct{})}
	p, _ := newTestPipeline(t, ext, &fakeFixer{}, true, nil)
	s := NewService(p, nil)

	_, err := s.Start(model.DownloadRequest{URL: testURL, Mode: model.ModeVideo}, nil)
	require.NoError(t, err)
	assert.True(t, s.Busy())

	_, err = s.Start(model.DownloadRequest{URL: testURL, Mode: model.ModeAudio}, nil)
	assert.True(t, errors.Is(err, ErrBusy))

	close(ext.block)
	waitService(t, s)
	assert.False(t, s.Busy())

	// accepts new work once idle
	_, err = s.Start(model.DownloadRequest{URL: testURL, Mode: model.ModeVideo}, nil)
	require.NoError(t, err)
	waitService(t, s)
}

func TestService_FailureRecorded(t *testing.T) {
	p, _ := newTestPipeline(t, &fakeExtractor{}, nil, true, nil)
	s := NewService(p, nil)

	_, err := s.Start(model.DownloadRequest{URL: "not-a-url"}, nil)
	require.NoError(t, err)
	waitService(t, s)

	current, ok := s.Current()
	require.True(t, ok)
	assert.Equal(t, model.StateFailed, current.State)
	assert.Contains(t, current.LastError, "not-a-url")
}

type panickingExtractor struct{}

func (panickingExtractor) Fetch(ctx context.Context, url string, opts Options, relay progress.Relay) (*model.ExtractionResult, error) {
	panic("boom")
}

func TestService_RecoversPanic(t *testing.T) {
	p, _ := newTestPipeline(t, panickingExtractor{}, nil, true, nil)
	s := NewService(p, nil)

	_, err := s.Start(model.DownloadRequest{URL: testURL}, nil)
	require.NoError(t, err)
	waitService(t, s)

	current, _ := s.Current()
	assert.Equal(t, model.StateFailed, current.State)
	assert.Contains(t, current.LastError, "boom")
	assert.False(t, s.Busy())
}

func TestService_WarningsFlattened(t *testing.T) {
	p, _ := newTestPipeline(t, &fakeExtractor{title: "Song"}, nil, false, nil)
	s := NewService(p, nil)

	_, err := s.Start(model.DownloadRequest{URL: testURL, Mode: model.ModeAudio}, nil)
	require.NoError(t, err)
	waitService(t, s)

	current, _ := s.Current()
	assert.Equal(t, model.StateDone, current.State)
	require.Len(t, current.Warnings, 1)
	assert.Contains(t, current.Warnings[0], model.ErrFFmpegMissing.Error())
}

func TestGenerateTaskIDUnique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := generateTaskID()
		assert.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}
}
