package download

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/go-multierror"
	"go.uber.org/zap"

	"github.com/ytget/yt-autofix/internal/model"
	"github.com/ytget/yt-autofix/internal/progress"
)

// TaskIDPrefix prefixes every task ID
const TaskIDPrefix = "task-"

// ErrBusy is returned by Start while another download is in flight
var ErrBusy = errors.New("a download is already in progress")

var _ Downloader = (*Service)(nil)

// Service runs at most one download at a time on its own goroutine so the
// UI event loop stays responsive. There is no cancellation: a started task
// runs to completion, error or process exit.
type Service struct {
	pipeline *Pipeline
	logger   *zap.Logger

	mu       sync.Mutex
	current  *model.DownloadTask
	running  bool
	onUpdate func(*model.DownloadTask) // callback for UI updates
	done     chan struct{}
}

// NewService creates a new download service
func NewService(pipeline *Pipeline, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{pipeline: pipeline, logger: logger}
}

// SetUpdateCallback sets the callback function for task updates. The
// callback runs on the worker goroutine and receives a snapshot.
func (s *Service) SetUpdateCallback(callback func(*model.DownloadTask)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onUpdate = callback
}

// Start launches req on a worker goroutine, or returns ErrBusy
func (s *Service) Start(req model.DownloadRequest, relay progress.Relay) (*model.DownloadTask, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return nil, ErrBusy
	}

	task := &model.DownloadTask{
		ID:        generateTaskID(),
		Request:   req,
		State:     model.StateIdle,
		StartedAt: time.Now(),
	}
	s.current = task
	s.running = true
	s.done = make(chan struct{})

	go s.run(task, relay, s.done)

	return snapshot(task), nil
}

// Busy reports whether a download is in flight
func (s *Service) Busy() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// Current returns a snapshot of the latest task
func (s *Service) Current() (*model.DownloadTask, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return nil, false
	}
	return snapshot(s.current), true
}

// Wait blocks until the latest task finishes or ctx is done
func (s *Service) Wait(ctx context.Context) error {
	s.mu.Lock()
	done := s.done
	s.mu.Unlock()
	if done == nil {
		return nil
	}
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// run drives one task; panics are converted into a failed task
func (s *Service) run(task *model.DownloadTask, relay progress.Relay, done chan struct{}) {
	defer close(done)
	s.logger.Info("task started", zap.String("id", task.ID), zap.String("url", task.Request.URL))

	var (
		outcome *model.Outcome
		err     error
	)
	func() {
		defer func() {
			if r := recover(); r != nil {
				s.logger.Error("download worker panicked", zap.Any("panic", r))
				err = &model.ExtractionError{URL: task.Request.URL, Err: fmt.Errorf("internal error: %v", r)}
			}
		}()
		outcome, err = s.pipeline.Run(context.Background(), task.Request, Observer{
			Relay: relay,
			OnState: func(state model.State) {
				s.setState(task, state)
			},
		})
	}()

	s.mu.Lock()
	if outcome != nil {
		task.Request = outcome.Request
		if outcome.Result != nil {
			task.Title = outcome.Result.DisplayTitle()
			task.OutputPath = outcome.Result.ProducedPath
		}
		task.FixedPath = outcome.FixedPath
		task.Warnings = warningMessages(outcome.Warnings)
	}
	if err != nil {
		task.State = model.StateFailed
		task.LastError = err.Error()
	}
	task.FinishedAt = time.Now()
	s.running = false
	s.mu.Unlock()

	s.notifyUpdate(task)
}

// setState records a state change and notifies the UI
func (s *Service) setState(task *model.DownloadTask, state model.State) {
	s.mu.Lock()
	task.State = state
	s.mu.Unlock()

	// final update is sent by run once the outcome fields are filled in
	if !state.IsFinished() {
		s.notifyUpdate(task)
	}
}

// notifyUpdate calls the update callback with a snapshot if set
func (s *Service) notifyUpdate(task *model.DownloadTask) {
	s.mu.Lock()
	callback := s.onUpdate
	snap := snapshot(task)
	s.mu.Unlock()

	if callback != nil {
		callback(snap)
	}
}

func snapshot(task *model.DownloadTask) *model.DownloadTask {
	cp := *task
	cp.Warnings = append([]string(nil), task.Warnings...)
	return &cp
}

// warningMessages flattens aggregated warnings
func warningMessages(err error) []string {
	if err == nil {
		return nil
	}
	var merr *multierror.Error
	if errors.As(err, &merr) {
		msgs := make([]string, 0, len(merr.Errors))
		for _, w := range merr.Errors {
			msgs = append(msgs, w.Error())
		}
		return msgs
	}
	return []string{err.Error()}
}

// generateTaskID generates a unique task ID using UUID v7 for time ordering
func generateTaskID() string {
	id, err := uuid.NewV7()
	if err != nil {
		// Fallback to timestamp if UUID generation fails
		return fmt.Sprintf(TaskIDPrefix+"%d", time.Now().UnixNano())
	}
	return TaskIDPrefix + id.String()
}
