package main

import (
	"context"
	"io"
	"os"

	"github.com/spf13/pflag"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/ZebulonRouseFrantzich/relfetch/internal/config"
	"github.com/ZebulonRouseFrantzich/relfetch/internal/download"
	"github.com/ZebulonRouseFrantzich/relfetch/internal/github"
	"github.com/ZebulonRouseFrantzich/relfetch/internal/platform"
	"github.com/ZebulonRouseFrantzich/relfetch/internal/release"
)

// releaseSource is where releases and their assets come from.
type releaseSource interface {
	FetchRelease(ctx context.Context, repo release.Repository, tag *release.Tag) (*release.Release, error)
	DownloadAsset(ctx context.Context, repo release.Repository, asset release.Asset) (download.Stream, io.Closer, error)
}

// app holds what commands share. Tests replace the I/O, the release
// source and the platform detector.
type app struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer

	settings *config.Settings
	logger   *zap.Logger

	detector  platform.Detector
	newSource func(token string, logger *zap.Logger) (releaseSource, error)
	progress  func() download.Progress
}

func newApp() *app {
	a := &app{
		stdin:    os.Stdin,
		stdout:   os.Stdout,
		stderr:   os.Stderr,
		detector: platform.NewDetector(),
		newSource: func(token string, logger *zap.Logger) (releaseSource, error) {
			return github.NewClient(token, github.WithLogger(logger))
		},
	}
	a.progress = func() download.Progress {
		return download.NewLineProgress(a.stderr)
	}
	return a
}

// setup loads settings and builds the logger. Commands call it before
// running.
func (a *app) setup(flags *pflag.FlagSet, configFile string) error {
	settings, err := config.Load(flags, configFile)
	if err != nil {
		return err
	}
	a.settings = settings

	if a.logger == nil {
		a.logger = newLogger(settings.Debug, a.stderr)
	}
	for _, warning := range settings.Warnings {
		a.logger.Warn(warning)
	}
	a.logger.Debug("settings loaded",
		zap.String("config_file", settings.ConfigFile),
		zap.Bool("token", settings.GitHubToken != ""),
		zap.String("install_dir", settings.InstallDir),
	)
	return nil
}

func (a *app) close() {
	if a.logger != nil {
		_ = a.logger.Sync()
	}
}

// newLogger writes human readable logs to w: everything with debug on,
// warnings and errors otherwise.
func newLogger(debug bool, w io.Writer) *zap.Logger {
	level := zapcore.WarnLevel
	if debug {
		level = zapcore.DebugLevel
	}

	encoderConfig := zap.NewDevelopmentEncoderConfig()
	encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	if !debug {
		encoderConfig.TimeKey = ""
		encoderConfig.CallerKey = ""
	}

	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encoderConfig), zapcore.AddSync(w), level)
	if debug {
		return zap.New(core, zap.AddCaller())
	}
	return zap.New(core)
}
