// Command yt-menu is the interactive terminal downloader.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/ytget/yt-autofix/internal/config"
	"github.com/ytget/yt-autofix/internal/download"
	"github.com/ytget/yt-autofix/internal/i18n"
	"github.com/ytget/yt-autofix/internal/logging"
	"github.com/ytget/yt-autofix/internal/menu"
	"github.com/ytget/yt-autofix/internal/output"
	"github.com/ytget/yt-autofix/internal/platform"
	"github.com/ytget/yt-autofix/internal/remux"
)

// Version is set during build via -ldflags "-X main.version=X.Y.Z"
var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app := &cli.App{
		Name:        "yt-menu",
		Usage:       "download YouTube videos or MP3 audio from an interactive menu",
		Version:     version,
		HideHelp:    true,
		HideVersion: true,
		Action: func(c *cli.Context) error {
			return run(c.Context)
		},
	}

	if err := app.RunContext(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg, err := config.LoadCLI("")
	if err != nil {
		return err
	}

	logger, err := logging.New(cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer logger.Sync()
	undo := zap.RedirectStdLog(logger)
	defer undo()

	texts := i18n.NewLocalization()
	texts.SetLanguage(cfg.Language)

	resolver := output.NewResolver(cfg.DownloadDir)
	ffmpeg := platform.ProbeBinary(cfg.FFmpegBinary)

	pipeline := download.NewPipeline(download.PipelineConfig{
		Resolver:  resolver,
		Extractor: download.NewYTDLPExtractor(logger),
		Fixer:     remux.NewService(ffmpeg.Path, logger),
		FFmpeg:    ffmpeg,
		URLs:      platform.NewPlaylistResolver(),
		Logger:    logger,
	})

	menuCfg := menu.Config{
		In:       os.Stdin,
		Out:      os.Stdout,
		Texts:    texts,
		Pipeline: pipeline,
		Resolver: resolver,
		Logger:   logger,
	}
	if cfg.AutoUpdate {
		menuCfg.Updater = download.NewUpdater(logger)
	}

	return menu.New(menuCfg).Run(ctx)
}
