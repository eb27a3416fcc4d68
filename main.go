package main

import (
	"fmt"
	"path/filepath"
	"runtime"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"go.uber.org/zap"

	"github.com/ytget/yt-autofix/internal/config"
	"github.com/ytget/yt-autofix/internal/download"
	"github.com/ytget/yt-autofix/internal/history"
	"github.com/ytget/yt-autofix/internal/i18n"
	"github.com/ytget/yt-autofix/internal/logging"
	"github.com/ytget/yt-autofix/internal/output"
	"github.com/ytget/yt-autofix/internal/platform"
	"github.com/ytget/yt-autofix/internal/remux"
	"github.com/ytget/yt-autofix/internal/ui"
)

// Version is set during build via -ldflags "-X main.version=X.Y.Z"
var version = "dev"

const (
	AppID   = "com.ytget.yt-autofix"
	AppName = "YouTube Downloader"
)

func main() {
	logger := logging.NewDefault()
	defer logger.Sync()
	undo := zap.RedirectStdLog(logger)
	defer undo()

	logger.Info("starting", zap.String("app", AppName), zap.String("version", version))

	myApp := app.NewWithID(AppID)

	settings := config.NewSettings(myApp)
	myApp.Settings().SetTheme(ui.NewAppTheme(settings.GetTheme()))

	texts := i18n.NewLocalization()
	texts.SetLanguage(settings.GetLanguage())

	resolver := output.NewResolver(settings.GetOutputRoot())
	historyLog := history.NewWriter(filepath.Join(resolver.LogsDir(), history.DefaultFileName))

	ffmpeg := platform.ProbeBinary(settings.GetFFmpegBinary())
	if ffmpeg.Available {
		logger.Info("ffmpeg found", zap.String("path", ffmpeg.Path))
	} else {
		logger.Warn("ffmpeg not found; container fix and mp3 conversion are disabled",
			zap.String("binary", settings.GetFFmpegBinary()),
			zap.String("install", platform.FFmpegInstallCommand(runtime.GOOS)))
	}

	var updater ui.Updater
	if settings.GetAutoUpdate() {
		updater = download.NewUpdater(logger)
	}

	pipeline := download.NewPipeline(download.PipelineConfig{
		Resolver:  resolver,
		Extractor: download.NewYTDLPExtractor(logger),
		Fixer:     remux.NewService(ffmpeg.Path, logger),
		FFmpeg:    ffmpeg,
		URLs:      platform.NewPlaylistResolver(),
		History:   historyLog,
		Logger:    logger,
	})
	downloadSvc := download.NewService(pipeline, logger)

	windowTitle := fmt.Sprintf("%s v%s", texts.GetText(i18n.KeyAppTitle), version)
	myWindow := myApp.NewWindow(windowTitle)
	myWindow.Resize(fyne.NewSize(ui.WindowWidth, ui.WindowHeight))

	ui.NewMainWindow(ui.Deps{
		App:      myApp,
		Window:   myWindow,
		Service:  downloadSvc,
		Settings: settings,
		Texts:    texts,
		Resolver: resolver,
		FFmpeg:   ffmpeg,
		Logger:   logger,
		Updater:  updater,
	})

	myWindow.ShowAndRun()
}
