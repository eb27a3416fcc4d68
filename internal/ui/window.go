package ui

import (
	"context"
	"errors"
	"net/url"
	"path/filepath"
	"strings"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"go.uber.org/zap"

	"github.com/ytget/yt-autofix/internal/config"
	"github.com/ytget/yt-autofix/internal/download"
	"github.com/ytget/yt-autofix/internal/i18n"
	"github.com/ytget/yt-autofix/internal/model"
	"github.com/ytget/yt-autofix/internal/output"
	"github.com/ytget/yt-autofix/internal/platform"
	"github.com/ytget/yt-autofix/internal/progress"
)

// Updater refreshes the extraction binary; Download stays disabled until it returns
type Updater interface {
	Update(ctx context.Context) (string, error)
}

// Deps wires the window to the rest of the application
type Deps struct {
	App      fyne.App
	Window   fyne.Window
	Service  download.Downloader
	Settings *config.Settings
	Texts    *i18n.Localization
	Resolver *output.Resolver
	FFmpeg   platform.ProbeResult
	Logger   *zap.Logger
	Updater  Updater // optional

	// OpenFolder defaults to platform.OpenFolder
	OpenFolder func(dir string) error
}

// MainWindow is the single download window
type MainWindow struct {
	app        fyne.App
	window     fyne.Window
	service    download.Downloader
	settings   *config.Settings
	texts      *i18n.Localization
	resolver   *output.Resolver
	ffmpeg     platform.ProbeResult
	logger     *zap.Logger
	openFolder func(dir string) error

	urlEntry      *widget.Entry
	filenameEntry *widget.Entry
	modeRadio     *widget.RadioGroup
	downloadBtn   *widget.Button
	openFolderBtn *widget.Button
	themeBtn      *widget.Button
	githubBtn     *widget.Button
	progressBar   *widget.ProgressBar
	statusLabel   *widget.Label

	mailbox  *progress.Mailbox
	stop     chan struct{}
	stopOnce sync.Once
	running  bool // UI thread only; late progress events are dropped once false
	updating bool // UI thread only

	mu        sync.Mutex
	lastDir   string // folder of the last produced file
	modeLabel map[string]model.Mode
}

// NewMainWindow builds the window content and starts the progress drain
func NewMainWindow(deps Deps) *MainWindow {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	openFolder := deps.OpenFolder
	if openFolder == nil {
		openFolder = platform.OpenFolder
	}

	w := &MainWindow{
		app:        deps.App,
		window:     deps.Window,
		service:    deps.Service,
		settings:   deps.Settings,
		texts:      deps.Texts,
		resolver:   deps.Resolver,
		ffmpeg:     deps.FFmpeg,
		logger:     logger,
		openFolder: openFolder,
		mailbox:    progress.NewMailbox(),
		stop:       make(chan struct{}),
	}

	w.service.SetUpdateCallback(w.onTaskUpdate)
	w.setupUI()
	w.window.SetOnClosed(w.Close)

	go w.drainProgress()

	if deps.Updater != nil {
		w.beginUpdate(deps.Updater)
	}

	return w
}

// beginUpdate blocks downloads while the extraction binary is refreshed
func (w *MainWindow) beginUpdate(updater Updater) {
	w.updating = true
	w.downloadBtn.Disable()
	w.setStatus(w.texts.GetText(i18n.KeyStatusUpdating))

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		<-w.stop
		cancel()
	}()

	go func() {
		// UpdateWarning is logged by the updater; the current binary keeps working
		version, err := updater.Update(ctx)
		select {
		case <-w.stop:
			return
		default:
		}
		fyne.Do(func() {
			w.finishUpdate(version, err)
		})
	}()
}

// finishUpdate re-enables downloads; UI thread only
func (w *MainWindow) finishUpdate(version string, err error) {
	w.updating = false
	w.downloadBtn.Enable()
	switch {
	case !w.ffmpeg.Available:
		w.setStatus(w.texts.GetText(i18n.KeyFFmpegMissing))
	case err != nil:
		w.setStatus(w.texts.GetText(i18n.KeyUpdateFailed))
	default:
		w.setStatus(w.texts.Format(i18n.KeyUpdateOK, version))
	}
}

// Close stops the progress drain; safe to call more than once
func (w *MainWindow) Close() {
	w.stopOnce.Do(func() { close(w.stop) })
}

func (w *MainWindow) setupUI() {
	w.urlEntry = widget.NewEntry()
	w.urlEntry.SetPlaceHolder(w.texts.GetText(i18n.KeyURLPlaceholder))
	w.urlEntry.OnSubmitted = func(string) { w.onDownloadClick() }

	w.filenameEntry = widget.NewEntry()
	w.filenameEntry.SetPlaceHolder(w.texts.GetText(i18n.KeyFilenamePlaceholder))

	videoLabel := w.texts.GetText(i18n.KeyModeVideo)
	audioLabel := w.texts.GetText(i18n.KeyModeAudio)
	w.modeLabel = map[string]model.Mode{
		videoLabel: model.ModeVideo,
		audioLabel: model.ModeAudio,
	}
	w.modeRadio = widget.NewRadioGroup([]string{videoLabel, audioLabel}, nil)
	w.modeRadio.Horizontal = true
	w.modeRadio.Required = true
	if w.settings.GetLastMode() == model.ModeAudio {
		w.modeRadio.SetSelected(audioLabel)
	} else {
		w.modeRadio.SetSelected(videoLabel)
	}

	w.downloadBtn = widget.NewButtonWithIcon(w.texts.GetText(i18n.KeyDownload), theme.DownloadIcon(), w.onDownloadClick)
	w.downloadBtn.Importance = widget.HighImportance
	w.openFolderBtn = widget.NewButtonWithIcon(w.texts.GetText(i18n.KeyOpenFolder), theme.FolderOpenIcon(), w.onOpenFolderClick)
	w.themeBtn = widget.NewButtonWithIcon(w.texts.GetText(i18n.KeyToggleTheme), theme.ColorPaletteIcon(), w.onToggleThemeClick)
	w.githubBtn = widget.NewButtonWithIcon(w.texts.GetText(i18n.KeyGitHub), theme.HomeIcon(), w.onGitHubClick)

	settingsBtn := widget.NewButton(IconSettings, func() {
		NewSettingsDialog(w.settings, w.texts, w.window).Show()
	})
	settingsBtn.Importance = widget.LowImportance

	w.progressBar = widget.NewProgressBar()
	w.progressBar.Min = GaugeMin
	w.progressBar.Max = GaugeMax

	w.statusLabel = widget.NewLabel(w.texts.GetText(i18n.KeyStatusReady))
	w.statusLabel.Wrapping = fyne.TextWrapWord

	header := widget.NewLabelWithStyle(w.texts.GetText(i18n.KeyHeader), fyne.TextAlignCenter, fyne.TextStyle{Bold: true})

	buttons := container.NewHBox(w.downloadBtn, w.openFolderBtn, w.themeBtn, w.githubBtn)

	content := container.NewVBox(
		container.NewBorder(nil, nil, nil, settingsBtn, header),
		w.urlEntry,
		w.filenameEntry,
		w.modeRadio,
		buttons,
		w.progressBar,
		w.statusLabel,
	)

	w.window.SetContent(container.NewPadded(content))

	if !w.ffmpeg.Available {
		w.setStatus(w.texts.GetText(i18n.KeyFFmpegMissing))
	}
}

// selectedMode maps the radio choice to a mode
func (w *MainWindow) selectedMode() model.Mode {
	if mode, ok := w.modeLabel[w.modeRadio.Selected]; ok {
		return mode
	}
	return model.ModeVideo
}

// onDownloadClick validates the form and hands the request to the service.
// Runs on the UI thread.
func (w *MainWindow) onDownloadClick() {
	if w.updating {
		w.setStatus(w.texts.GetText(i18n.KeyStatusUpdating))
		return
	}
	raw := strings.TrimSpace(w.urlEntry.Text)
	if raw == "" {
		dialog.ShowInformation(w.texts.GetText(i18n.KeyWarningTitle), w.texts.GetText(i18n.KeyPleaseEnterURL), w.window)
		return
	}
	cleaned, err := platform.ValidateURL(raw)
	if err != nil {
		w.logger.Debug("rejected url", zap.Error(err))
		dialog.ShowError(errors.New(w.texts.GetText(i18n.KeyInvalidURL)), w.window)
		return
	}

	mode := w.selectedMode()
	w.settings.SetLastMode(mode)

	req := model.DownloadRequest{
		URL:                cleaned,
		Mode:               mode,
		CustomFilenameStem: strings.TrimSpace(w.filenameEntry.Text),
	}

	task, err := w.service.Start(req, w.mailbox)
	if errors.Is(err, download.ErrBusy) {
		w.setStatus(w.texts.GetText(i18n.KeyBusy))
		return
	}
	if err != nil {
		dialog.ShowError(err, w.window)
		return
	}

	w.logger.Info("download requested",
		zap.String("task", task.ID),
		zap.String("url", req.URL),
		zap.Stringer("mode", req.Mode))

	w.running = true
	w.downloadBtn.Disable()
	w.progressBar.SetValue(GaugeMin)
	w.setStatus(w.texts.GetText(i18n.KeyStatusPreparing))
}

// onTaskUpdate receives task snapshots on the worker goroutine
func (w *MainWindow) onTaskUpdate(task *model.DownloadTask) {
	if task.OutputPath != "" {
		w.mu.Lock()
		w.lastDir = filepath.Dir(task.OutputPath)
		w.mu.Unlock()
	}

	fyne.Do(func() {
		w.applyTask(task)
	})
}

// applyTask renders a task snapshot; UI thread only
func (w *MainWindow) applyTask(task *model.DownloadTask) {
	switch task.State {
	case model.StateResolving:
		w.setStatus(w.texts.GetText(i18n.KeyStatusPreparing))
	case model.StatePostProcessing:
		w.setStatus(w.texts.GetText(i18n.KeyFixing))
	case model.StateDone:
		w.progressBar.SetValue(GaugeMax)
		name := filepath.Base(task.OutputPath)
		if task.FixedPath != "" {
			name = filepath.Base(task.FixedPath)
		}
		if len(task.Warnings) > 0 {
			w.setStatus(w.texts.Format(i18n.KeyStatusDoneWarnings, name))
			dialog.ShowInformation(w.texts.GetText(i18n.KeyWarningTitle), strings.Join(task.Warnings, "\n"), w.window)
		} else {
			w.setStatus(w.texts.Format(i18n.KeyStatusDone, name))
		}
		w.running = false
		w.downloadBtn.Enable()
	case model.StateFailed:
		w.setStatus(w.texts.Format(i18n.KeyStatusFailed, task.LastError))
		dialog.ShowError(errors.New(task.LastError), w.window)
		w.running = false
		w.downloadBtn.Enable()
	}
}

// drainProgress applies the latest progress event on the UI thread until Close
func (w *MainWindow) drainProgress() {
	for {
		select {
		case <-w.stop:
			return
		case <-w.mailbox.Ready():
			ev, ok := w.mailbox.Take()
			if !ok {
				continue
			}
			fyne.Do(func() {
				w.applyEvent(ev)
			})
		}
	}
}

// applyEvent renders one progress event; UI thread only
func (w *MainWindow) applyEvent(ev model.ProgressEvent) {
	if !w.running {
		return
	}
	switch ev.Kind {
	case model.EventDownloading:
		w.progressBar.SetValue(ev.Gauge())
		w.setStatus(progress.FormatDownloading(w.texts.GetText(i18n.KeyDownloading), ev))
	case model.EventFinished:
		w.progressBar.SetValue(GaugeMax)
		w.setStatus(w.texts.GetText(i18n.KeyDownloadDone))
	case model.EventPostProcessing:
		w.setStatus(w.texts.GetText(i18n.KeyFixing))
	}
}

// folderToOpen returns the folder of the last download, or the folder the
// selected mode saves into
func (w *MainWindow) folderToOpen() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.lastDir != "" {
		return w.lastDir
	}
	return w.resolver.DirFor(w.selectedMode())
}

func (w *MainWindow) onOpenFolderClick() {
	dir := w.folderToOpen()
	if err := output.Ensure(dir); err != nil {
		dialog.ShowError(err, w.window)
		return
	}
	if err := w.openFolder(dir); err != nil {
		w.logger.Warn("open folder failed", zap.String("dir", dir), zap.Error(err))
		dialog.ShowError(errors.New(w.texts.GetText(i18n.KeyErrorOpeningFolder)), w.window)
	}
}

func (w *MainWindow) onToggleThemeClick() {
	variant := w.settings.ToggleTheme()
	w.app.Settings().SetTheme(NewAppTheme(variant))
}

func (w *MainWindow) onGitHubClick() {
	u, err := url.Parse(GitHubURL)
	if err != nil {
		return
	}
	if err := w.app.OpenURL(u); err != nil {
		w.logger.Warn("open url failed", zap.Error(err))
	}
}

// setStatus sets the status line, truncated to StatusMaxRunes
func (w *MainWindow) setStatus(text string) {
	text = strings.ReplaceAll(text, "\n", " ")
	if runes := []rune(text); len(runes) > StatusMaxRunes {
		text = string(runes[:StatusMaxRunes-1]) + Ellipsis
	}
	w.statusLabel.SetText(text)
}
