// Package menu implements the interactive terminal front end. One request
// runs to completion before the next prompt is shown.
package menu

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/hashicorp/go-multierror"
	"go.uber.org/zap"

	"github.com/ytget/yt-autofix/internal/download"
	"github.com/ytget/yt-autofix/internal/i18n"
	"github.com/ytget/yt-autofix/internal/model"
	"github.com/ytget/yt-autofix/internal/output"
	"github.com/ytget/yt-autofix/internal/platform"
	"github.com/ytget/yt-autofix/internal/progress"
)

// Menu options
const (
	OptionVideo  = "1"
	OptionAudio  = "2"
	OptionCustom = "3"
	OptionExit   = "0"

	KindVideo = "v"
)

const ruleWidth = 65

// Updater refreshes the extraction binary before the first prompt
type Updater interface {
	Update(ctx context.Context) (string, error)
}

// Config wires the menu. Updater is optional.
type Config struct {
	In       io.Reader
	Out      io.Writer
	Texts    *i18n.Localization
	Pipeline *download.Pipeline
	Resolver *output.Resolver
	Updater  Updater
	Logger   *zap.Logger
}

// Menu is the terminal shell over the download pipeline
type Menu struct {
	in       *bufio.Scanner
	lines    chan string
	readOnce sync.Once
	out      io.Writer
	texts    *i18n.Localization
	pipeline *download.Pipeline
	resolver *output.Resolver
	updater  Updater
	logger   *zap.Logger
	goos     string
}

// New creates a menu
func New(cfg Config) *Menu {
	texts := cfg.Texts
	if texts == nil {
		texts = i18n.NewLocalization()
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Menu{
		in:       bufio.NewScanner(cfg.In),
		lines:    make(chan string),
		out:      cfg.Out,
		texts:    texts,
		pipeline: cfg.Pipeline,
		resolver: cfg.Resolver,
		updater:  cfg.Updater,
		logger:   logger,
		goos:     runtime.GOOS,
	}
}

// Run prints the header, performs the startup checks and serves requests
// until the exit option, end of input or ctx cancellation.
func (m *Menu) Run(ctx context.Context) error {
	m.printHeader()
	m.startupChecks(ctx)

	for {
		if ctx.Err() != nil {
			return nil
		}

		m.printOptions()
		option, ok := m.prompt(ctx, i18n.KeyChooseOption)
		if !ok {
			return nil
		}
		if option == OptionExit {
			m.println(m.texts.GetText(i18n.KeyGoodbye))
			return nil
		}

		m.println("")
		rawURL, ok := m.prompt(ctx, i18n.KeyPasteURL)
		if !ok {
			return nil
		}
		url, err := platform.ValidateURL(rawURL)
		if err != nil {
			m.logger.Debug("rejected url", zap.Error(err))
			m.println(m.texts.GetText(i18n.KeyInvalidURL))
			continue
		}

		switch option {
		case OptionVideo:
			m.download(ctx, model.DownloadRequest{URL: url, Mode: model.ModeVideo})
		case OptionAudio:
			m.download(ctx, model.DownloadRequest{URL: url, Mode: model.ModeAudio})
		case OptionCustom:
			if !m.customDownload(ctx, url) {
				return nil
			}
		default:
			m.println(m.texts.GetText(i18n.KeyInvalidOption))
		}
	}
}

// customDownload handles option 3; false means input ended
func (m *Menu) customDownload(ctx context.Context, url string) bool {
	path, ok := m.prompt(ctx, i18n.KeyAskFolder)
	if !ok {
		return false
	}
	dir, err := m.resolver.ResolveCustom(path)
	if err != nil {
		m.println(m.texts.Format(i18n.KeyPathError, err))
		return true
	}

	kind, ok := m.prompt(ctx, i18n.KeyAskKind)
	if !ok {
		return false
	}
	mode := model.ModeAudio
	if strings.EqualFold(kind, KindVideo) {
		mode = model.ModeVideo
	}

	m.download(ctx, model.DownloadRequest{URL: url, Mode: mode, CustomDir: dir})
	return true
}

// download runs one request synchronously and reports its outcome
func (m *Menu) download(ctx context.Context, req model.DownloadRequest) {
	startKey := i18n.KeyStartVideo
	if req.Mode == model.ModeAudio {
		startKey = i18n.KeyStartAudio
	}
	m.println("")
	m.println(m.texts.Format(startKey, req.URL))

	relay := progress.NewTerminal(m.out, progress.TerminalMessages{
		Downloading:    m.texts.GetText(i18n.KeyDownloading),
		Finished:       m.texts.GetText(i18n.KeyDownloadDone),
		PostProcessing: m.texts.GetText(i18n.KeyFixing),
	})

	outcome, err := m.pipeline.Run(ctx, req, download.Observer{Relay: relay})
	if err != nil {
		m.reportError(req.Mode, err)
		return
	}

	if outcome.Result != nil {
		m.println(m.texts.Format(i18n.KeySavedTo, outcome.Result.ProducedPath))
	}
	if outcome.FixedPath != "" {
		m.println(m.texts.Format(i18n.KeyFixedSaved, filepath.Base(outcome.FixedPath)))
	}
	for _, warning := range flattenWarnings(outcome.Warnings) {
		m.println(m.texts.Format(i18n.KeyWarning, warning))
	}
	m.println("")
}

func (m *Menu) reportError(mode model.Mode, err error) {
	var pathErr *model.PathError
	var inputErr *model.InputError
	switch {
	case errors.As(err, &pathErr):
		m.println(m.texts.Format(i18n.KeyPathError, pathErr))
	case errors.As(err, &inputErr):
		m.println(m.texts.GetText(i18n.KeyInvalidURL))
	case mode == model.ModeAudio:
		m.println("\n" + m.texts.Format(i18n.KeyAudioError, err))
	default:
		m.println("\n" + m.texts.Format(i18n.KeyVideoError, err))
	}
}

// startupChecks updates the extraction binary and reports the ffmpeg probe
func (m *Menu) startupChecks(ctx context.Context) {
	if m.updater != nil {
		if version, err := m.updater.Update(ctx); err != nil {
			m.println(m.texts.GetText(i18n.KeyUpdateFailed))
		} else {
			m.println(m.texts.Format(i18n.KeyUpdateOK, version))
		}
	}

	probe := m.pipeline.FFmpeg()
	if probe.Available {
		m.println(m.texts.Format(i18n.KeyFFmpegFound, probe.Path))
		return
	}
	m.println(m.texts.GetText(i18n.KeyFFmpegMissing))
	m.println(m.texts.Format(i18n.KeyFFmpegHint, platform.FFmpegInstallCommand(m.goos)))
}

func (m *Menu) printHeader() {
	rule := strings.Repeat("=", ruleWidth)
	m.println(rule)
	m.println(m.texts.GetText(i18n.KeyHeader))
	m.println(rule)
}

func (m *Menu) printOptions() {
	m.println(m.texts.GetText(i18n.KeyMenuVideo))
	m.println(m.texts.GetText(i18n.KeyMenuAudio))
	m.println(m.texts.GetText(i18n.KeyMenuCustom))
	m.println(m.texts.GetText(i18n.KeyMenuExit))
	m.println(strings.Repeat("=", ruleWidth))
}

// prompt prints the text for key and reads one trimmed line. It gives up
// when input ends or ctx is cancelled while waiting.
func (m *Menu) prompt(ctx context.Context, key string) (string, bool) {
	if ctx.Err() != nil {
		return "", false
	}
	m.readOnce.Do(func() { go m.readLines() })

	fmt.Fprint(m.out, m.texts.GetText(key))
	select {
	case line, ok := <-m.lines:
		if !ok {
			fmt.Fprintln(m.out)
			return "", false
		}
		return strings.TrimSpace(line), true
	case <-ctx.Done():
		fmt.Fprintln(m.out)
		return "", false
	}
}

// readLines feeds input lines to prompt. The goroutine stays blocked on the
// reader after cancellation until the reader is closed or the process exits.
func (m *Menu) readLines() {
	defer close(m.lines)
	for m.in.Scan() {
		m.lines <- m.in.Text()
	}
}

func (m *Menu) println(line string) {
	fmt.Fprintln(m.out, line)
}

func flattenWarnings(err error) []string {
	if err == nil {
		return nil
	}
	var merr *multierror.Error
	if errors.As(err, &merr) {
		lines := make([]string, 0, len(merr.Errors))
		for _, e := range merr.Errors {
			lines = append(lines, e.Error())
		}
		return lines
	}
	return []string{err.Error()}
}
