// whisper-dictation is a push-to-talk dictation utility: hold a global
// hotkey to record, release to transcribe, and the result is typed into
// the focused window.
//
// Usage:
//
//	whisper-dictation [model]
//
// The optional positional argument picks the transcription model and
// defaults to whisper-1. Credentials and tuning come from the
// environment; DICTATION_API_KEY and DICTATION_BASE_URL are required.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/Hegghammer/whisper-dictation/internal/hotkey"
)

// Version is set at build time.
var Version = "dev"

func main() {
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println("whisper-dictation " + Version)
		return
	}

	logger := newLogger(os.Getenv("DICTATE_LOG_LEVEL"))
	defer logger.Sync()

	// The hotkey event loop must own the process main thread on macOS.
	hotkey.RunOnMainThread(func() {
		if err := run(logger, flag.Arg(0)); err != nil {
			logger.Fatal("dictation failed", zap.Error(err))
		}
	})
}

func run(logger *zap.Logger, model string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app := NewApp(logger)
	if err := app.startup(model); err != nil {
		return err
	}
	return app.Run(ctx)
}

func newLogger(level string) *zap.Logger {
	parsed, err := zapcore.ParseLevel(level)
	if err != nil {
		parsed = zapcore.InfoLevel
	}

	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(parsed)
	cfg.DisableStacktrace = true

	logger, err := cfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}
