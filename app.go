package main

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/Hegghammer/whisper-dictation/internal/bootstrap"
	"github.com/Hegghammer/whisper-dictation/internal/config"
	"github.com/Hegghammer/whisper-dictation/internal/domain"
	"github.com/Hegghammer/whisper-dictation/internal/hotkey"
	"github.com/Hegghammer/whisper-dictation/internal/notify"
	"github.com/Hegghammer/whisper-dictation/internal/usecase"
)

// App is the application root: it owns the wired services and implements
// ports.EventSink over structured logging and desktop notifications.
type App struct {
	ctx context.Context

	log        *zap.Logger
	notifier   *notify.Notifier
	controller *usecase.DictationController
	services   bootstrap.Services
	cfg        config.Config
	bootErr    error
}

func NewApp(log *zap.Logger) *App {
	return &App{log: log}
}

// startup wires the service graph. A failure here is a startup error; the
// caller must not proceed to hotkey monitoring.
func (a *App) startup(model string) error {
	services, err := bootstrap.Build(model, a)
	if err != nil {
		a.bootErr = err
		a.CycleError("", domain.ErrorCodeStartup, err.Error())
		return err
	}

	a.services = services
	a.cfg = services.Config
	a.controller = services.Controller
	a.notifier = notify.New(a.cfg.UI.Notifications)
	a.StateChanged(domain.SessionStateIdle, domain.SessionReasonReady)
	return nil
}

// Run registers the push-to-talk hotkey and blocks until ctx is done.
func (a *App) Run(ctx context.Context) error {
	if err := a.requireReady(); err != nil {
		return err
	}
	a.ctx = ctx

	binding, err := hotkey.Parse(a.cfg.UI.Hotkey)
	if err != nil {
		a.CycleError("", domain.ErrorCodeStartup, err.Error())
		return err
	}

	monitor := hotkey.NewMonitor(a.hotkeyPressed, a.hotkeyReleased)
	if err := monitor.Register(binding); err != nil {
		a.CycleError("", domain.ErrorCodeStartup, err.Error())
		return err
	}
	defer func() {
		if err := monitor.Unregister(); err != nil {
			a.log.Warn("failed to unregister hotkey", zap.Error(err))
		}
		if err := a.services.Capture.Close(); err != nil {
			a.log.Warn("failed to release audio device", zap.Error(err))
		}
	}()

	a.log.Info("listening for push-to-talk",
		zap.String("hotkey", binding.String()),
		zap.String("model", a.cfg.API.Model),
	)

	<-ctx.Done()
	return nil
}

func (a *App) hotkeyPressed() {
	a.controller.Pressed()
}

func (a *App) hotkeyReleased() {
	a.controller.Released(a.ctx)
}

// GetStatus returns the current session status.
func (a *App) GetStatus() domain.Status {
	if a.controller == nil {
		return domain.Status{State: domain.SessionStateIdle, Active: false}
	}
	return a.controller.Status()
}

func (a *App) requireReady() error {
	if a.bootErr != nil {
		return a.bootErr
	}
	if a.controller == nil {
		return fmt.Errorf("application is not initialized")
	}
	return nil
}

// StateChanged logs session lifecycle updates and mirrors the ones the
// operator cares about to desktop notifications.
func (a *App) StateChanged(state domain.SessionState, reason domain.SessionStateReason) {
	a.log.Info("session state",
		zap.String("state", string(state)),
		zap.String("reason", string(reason)),
		zap.String("message", reasonMessage(reason)),
	)

	if a.notifier == nil {
		return
	}
	switch reason {
	case domain.SessionReasonRecordingStarted:
		a.notifier.Recording()
	case domain.SessionReasonNothingHeard, domain.SessionReasonClipDiscarded:
		a.notifier.Empty()
	}
}

// CycleFinished logs the completed cycle and shows the typed text.
func (a *App) CycleFinished(result domain.CycleResult) {
	a.log.Info("cycle finished",
		zap.String("cycle_id", result.CycleID),
		zap.String("raw", result.RawTranscript),
		zap.String("final", result.FinalText),
		zap.Bool("injected", result.Injected),
	)

	if a.notifier != nil && result.Injected {
		a.notifier.Done(result.FinalText)
	}
}

// CycleError logs backend errors and surfaces them as notifications.
func (a *App) CycleError(cycleID string, code domain.ErrorCode, detail string) {
	a.log.Error("cycle error",
		zap.String("cycle_id", cycleID),
		zap.String("code", string(code)),
		zap.String("message", errorMessage(code, detail)),
		zap.String("detail", detail),
	)

	if a.notifier != nil {
		a.notifier.Error(errorMessage(code, detail))
	}
}

func reasonMessage(reason domain.SessionStateReason) string {
	switch reason {
	case domain.SessionReasonReady:
		return "Ready"
	case domain.SessionReasonRecordingStarted:
		return "Recording started"
	case domain.SessionReasonTranscribing:
		return "Recording stopped. Transcribing..."
	case domain.SessionReasonClipDiscarded:
		return "Clip too short, discarded"
	case domain.SessionReasonNothingHeard:
		return "Nothing heard, nothing typed"
	case domain.SessionReasonTextTyped:
		return "Text typed"
	case domain.SessionReasonTextReadyInjectFailed:
		return "Text ready (typing failed)"
	case domain.SessionReasonTranscriptionFailed:
		return "Transcription failed"
	case domain.SessionReasonRewriteFailed:
		return "Rewrite failed"
	case domain.SessionReasonDeviceFailed:
		return "Audio device failed"
	default:
		return ""
	}
}

func errorMessage(code domain.ErrorCode, detail string) string {
	switch code {
	case domain.ErrorCodeStartup:
		return "Startup failed"
	case domain.ErrorCodeDevice:
		return "Audio device error"
	case domain.ErrorCodeTranscription:
		return "Transcription error"
	case domain.ErrorCodeRewrite:
		return "Rewrite failed"
	case domain.ErrorCodeInject:
		return "Text ready but typing failed"
	case domain.ErrorCodeBusy:
		return "Still finishing the previous dictation"
	default:
		if detail == "" {
			return "Unknown error"
		}
		return detail
	}
}
