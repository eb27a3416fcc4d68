package download

import (
	"context"
	"fmt"
	"time"

	"github.com/hashicorp/go-multierror"
	"go.uber.org/zap"

	"github.com/ytget/yt-autofix/internal/model"
	"github.com/ytget/yt-autofix/internal/output"
	"github.com/ytget/yt-autofix/internal/platform"
	"github.com/ytget/yt-autofix/internal/progress"
	"github.com/ytget/yt-autofix/internal/remux"
)

// PipelineConfig wires the pipeline collaborators. Fixer, URLs and History
// are optional.
type PipelineConfig struct {
	Resolver  *output.Resolver
	Extractor Extractor
	Fixer     remux.ContainerFixer
	FFmpeg    platform.ProbeResult
	URLs      URLResolver
	History   HistoryAppender
	Logger    *zap.Logger
}

// Observer receives progress events and state changes of one run
type Observer struct {
	Relay   progress.Relay
	OnState func(model.State)
}

// Pipeline runs one request through
// Idle -> Resolving -> Fetching -> {Succeeded, Failed} -> (video) PostProcessing -> Done.
type Pipeline struct {
	resolver  *output.Resolver
	extractor Extractor
	fixer     remux.ContainerFixer
	ffmpeg    platform.ProbeResult
	urls      URLResolver
	history   HistoryAppender
	logger    *zap.Logger
	now       func() time.Time
}

// NewPipeline creates a pipeline
func NewPipeline(cfg PipelineConfig) *Pipeline {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Pipeline{
		resolver:  cfg.Resolver,
		extractor: cfg.Extractor,
		fixer:     cfg.Fixer,
		ffmpeg:    cfg.FFmpeg,
		urls:      cfg.URLs,
		history:   cfg.History,
		logger:    logger,
		now:       time.Now,
	}
}

// FFmpeg returns the probe result the pipeline was built with
func (p *Pipeline) FFmpeg() platform.ProbeResult {
	return p.ffmpeg
}

// Run executes req synchronously. The returned error is one of
// *model.InputError, *model.PathError or *model.ExtractionError; warnings
// never fail the run and are reported in Outcome.Warnings.
func (p *Pipeline) Run(ctx context.Context, req model.DownloadRequest, obs Observer) (*model.Outcome, error) {
	relay := obs.Relay
	if relay == nil {
		relay = progress.Discard
	}

	outcome := &model.Outcome{Request: req, State: model.StateIdle}
	setState := func(next model.State) {
		if !outcome.State.CanTransition(next) {
			p.logger.Error("invalid state transition",
				zap.Stringer("from", outcome.State),
				zap.Stringer("to", next))
		}
		outcome.State = next
		if obs.OnState != nil {
			obs.OnState(next)
		}
	}
	fail := func(err error) (*model.Outcome, error) {
		setState(model.StateFailed)
		p.logger.Warn("download failed",
			zap.String("url", req.URL),
			zap.Stringer("mode", req.Mode),
			zap.Error(err))
		return outcome, err
	}

	var warnings *multierror.Error
	warn := func(err error) {
		p.logger.Warn("download warning",
			zap.String("url", req.URL),
			zap.Error(err))
		warnings = multierror.Append(warnings, err)
	}

	url, err := platform.ValidateURL(req.URL)
	if err != nil {
		return fail(err)
	}
	req.URL = url

	setState(model.StateResolving)
	dir, err := p.resolver.Resolve(req.Mode, req.CustomDir)
	if err != nil {
		return fail(err)
	}
	req.DestinationDir = dir

	if p.urls != nil {
		resolved, err := p.urls.ResolveURL(ctx, req.URL)
		if err != nil {
			return fail(&model.ExtractionError{URL: req.URL, Err: err})
		}
		req.URL = resolved
	}
	outcome.Request = req

	opts, err := BuildOptions(req, p.ffmpeg)
	if err != nil {
		warn(err)
	}

	setState(model.StateFetching)
	p.logger.Info("download started",
		zap.String("url", req.URL),
		zap.Stringer("mode", req.Mode),
		zap.String("dir", req.DestinationDir))

	result, err := p.extractor.Fetch(ctx, req.URL, opts, relay)
	if err != nil {
		return fail(&model.ExtractionError{URL: req.URL, Err: err})
	}
	outcome.Result = result
	setState(model.StateSucceeded)

	if req.Mode == model.ModeVideo {
		setState(model.StatePostProcessing)
		relay.OnEvent(model.PostProcessing())
		fixed, err := p.fixContainer(ctx, result.ProducedPath)
		if err != nil {
			warn(err)
		}
		outcome.FixedPath = fixed
	}

	if p.history != nil {
		record := model.HistoryRecord{
			Timestamp: p.now(),
			Kind:      req.Mode,
			Title:     result.DisplayTitle(),
			URL:       req.URL,
		}
		if err := p.history.Append(record); err != nil {
			warn(fmt.Errorf("history: %w", err))
		}
	}

	outcome.Warnings = warnings.ErrorOrNil()
	setState(model.StateDone)
	p.logger.Info("download completed",
		zap.String("path", result.ProducedPath),
		zap.String("fixed", outcome.FixedPath))

	return outcome, nil
}

// fixContainer runs the container fix when ffmpeg is available. Every
// failure comes back as *model.PostProcessWarning.
func (p *Pipeline) fixContainer(ctx context.Context, path string) (string, error) {
	if !p.ffmpeg.Available || p.fixer == nil {
		return "", &model.PostProcessWarning{Path: path, Err: model.ErrFFmpegMissing}
	}

	fixed, err := p.fixer.FixContainer(ctx, path)
	if err != nil {
		return "", &model.PostProcessWarning{Path: path, Err: err}
	}
	return fixed, nil
}
