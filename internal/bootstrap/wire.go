package bootstrap

import (
	"github.com/Hegghammer/whisper-dictation/internal/audio"
	"github.com/Hegghammer/whisper-dictation/internal/config"
	"github.com/Hegghammer/whisper-dictation/internal/input"
	"github.com/Hegghammer/whisper-dictation/internal/ports"
	"github.com/Hegghammer/whisper-dictation/internal/providers/openai"
	"github.com/Hegghammer/whisper-dictation/internal/rules"
	"github.com/Hegghammer/whisper-dictation/internal/usecase"
)

// Services is the assembled runtime graph.
type Services struct {
	Controller *usecase.DictationController
	Capture    *audio.Capture
	Config     config.Config
}

// Build wires all backend dependencies. Nothing here touches the
// microphone or registers hotkeys; the capture opens the device on first
// use and the caller owns the hotkey.
func Build(model string, events ports.EventSink) (Services, error) {
	cfg := config.Load(model)
	if err := cfg.Validate(); err != nil {
		return Services{}, err
	}

	engine, err := rules.NewEngine(rules.DefaultRules())
	if err != nil {
		return Services{}, err
	}
	subs, err := rules.LoadSubs(cfg.Rules.Path)
	if err != nil {
		return Services{}, err
	}

	capture := audio.NewCapture(cfg.Audio.SampleRate, cfg.Audio.MinClip)

	injector, err := input.New()
	if err != nil {
		return Services{}, err
	}

	controller := usecase.NewDictationController(
		capture,
		openai.NewClient(openai.Config{
			APIKey:   cfg.API.Key,
			BaseURL:  cfg.API.BaseURL,
			Model:    cfg.API.Model,
			Prompt:   cfg.API.Prompt,
			Language: cfg.API.Language,
			Timeout:  cfg.API.Timeout,
		}),
		rules.NewPipeline(engine, subs),
		injector,
		events,
	)

	return Services{Controller: controller, Capture: capture, Config: cfg}, nil
}
