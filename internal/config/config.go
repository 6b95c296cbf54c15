package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"
)

// DefaultSpellingPrompt is sent verbatim with every transcription request
// to bias spelling, capitalisation and date style. Edit to taste; Whisper
// caps prompts at roughly 224 tokens.
const DefaultSpellingPrompt = `Names: Gloucestershire, Kyrkjsæterøra
Here in London we honour high-calibre travellers, never take offence, and never apologise. It's 4 June 2023.`

// Config stores runtime configuration, resolved once at startup and
// immutable afterwards.
type Config struct {
	API   APIConfig
	Audio AudioConfig
	Rules RulesConfig
	UI    UIConfig
}

type APIConfig struct {
	Key      string
	BaseURL  string
	Model    string
	Language string
	Prompt   string
	Timeout  time.Duration
}

type AudioConfig struct {
	SampleRate int
	MinClip    time.Duration
}

type RulesConfig struct {
	Path string
}

type UIConfig struct {
	Hotkey        string
	Notifications bool
	LogLevel      string
}

// Load resolves configuration from environment variables and sensible
// defaults. The transcription model comes from the command line, not the
// environment; an empty model falls back to whisper-1.
func Load(model string) Config {
	if strings.TrimSpace(model) == "" {
		model = "whisper-1"
	}

	cfg := Config{
		API: APIConfig{
			Key:      strings.TrimSpace(os.Getenv("DICTATION_API_KEY")),
			BaseURL:  strings.TrimSpace(os.Getenv("DICTATION_BASE_URL")),
			Model:    model,
			Language: strings.TrimSpace(os.Getenv("DICTATE_LANGUAGE")),
			Prompt:   envOrDefault("DICTATE_SPELLING_PROMPT", DefaultSpellingPrompt),
			Timeout:  time.Duration(envOrDefaultInt("DICTATE_REQUEST_TIMEOUT_SECS", 30)) * time.Second,
		},
		Audio: AudioConfig{
			SampleRate: envOrDefaultInt("DICTATE_SAMPLE_RATE", 16000),
			MinClip:    time.Duration(envOrDefaultInt("DICTATE_MIN_CLIP_MS", 200)) * time.Millisecond,
		},
		Rules: RulesConfig{
			Path: strings.TrimSpace(os.Getenv("DICTATE_RULES_FILE")),
		},
		UI: UIConfig{
			Hotkey:        envOrDefault("DICTATE_HOTKEY", "ctrl+shift+space"),
			Notifications: envOrDefaultBool("DICTATE_NOTIFICATIONS", true),
			LogLevel:      envOrDefault("DICTATE_LOG_LEVEL", "info"),
		},
	}

	if cfg.Audio.SampleRate <= 0 {
		cfg.Audio.SampleRate = 16000
	}
	if cfg.Audio.MinClip < 0 {
		cfg.Audio.MinClip = 200 * time.Millisecond
	}
	if cfg.API.Timeout <= 0 {
		cfg.API.Timeout = 30 * time.Second
	}

	return cfg
}

// Validate checks that credentials are present. Missing credentials are a
// startup error: the process must not proceed to hotkey monitoring.
func (c Config) Validate() error {
	if c.API.Key == "" {
		return errors.New("DICTATION_API_KEY is not set")
	}
	if c.API.BaseURL == "" {
		return errors.New("DICTATION_BASE_URL is not set")
	}
	return nil
}

func envOrDefault(key string, fallback string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	return value
}

func envOrDefaultInt(key string, fallback int) int {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrDefaultBool(key string, fallback bool) bool {
	value := strings.TrimSpace(strings.ToLower(os.Getenv(key)))
	switch value {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	default:
		return fallback
	}
}
