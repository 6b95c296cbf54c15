package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DICTATION_API_KEY", "")
	t.Setenv("DICTATION_BASE_URL", "")
	t.Setenv("DICTATE_SAMPLE_RATE", "")
	t.Setenv("DICTATE_MIN_CLIP_MS", "")
	t.Setenv("DICTATE_HOTKEY", "")
	t.Setenv("DICTATE_SPELLING_PROMPT", "")

	cfg := Load("")

	if cfg.API.Model != "whisper-1" {
		t.Fatalf("expected default model, got %q", cfg.API.Model)
	}
	if cfg.API.Prompt != DefaultSpellingPrompt {
		t.Fatalf("expected built-in spelling prompt")
	}
	if cfg.API.Timeout != 30*time.Second {
		t.Fatalf("unexpected timeout: %s", cfg.API.Timeout)
	}
	if cfg.Audio.SampleRate != 16000 {
		t.Fatalf("unexpected sample rate: %d", cfg.Audio.SampleRate)
	}
	if cfg.Audio.MinClip != 200*time.Millisecond {
		t.Fatalf("unexpected min clip: %s", cfg.Audio.MinClip)
	}
	if cfg.UI.Hotkey != "ctrl+shift+space" {
		t.Fatalf("unexpected hotkey: %q", cfg.UI.Hotkey)
	}
	if !cfg.UI.Notifications {
		t.Fatalf("expected notifications enabled by default")
	}
}

func TestLoadRespectsOverrides(t *testing.T) {
	t.Setenv("DICTATION_API_KEY", "test-key")
	t.Setenv("DICTATION_BASE_URL", "https://example.com/v1")
	t.Setenv("DICTATE_LANGUAGE", "en")
	t.Setenv("DICTATE_SPELLING_PROMPT", "Names: Ndrangheta")
	t.Setenv("DICTATE_REQUEST_TIMEOUT_SECS", "5")
	t.Setenv("DICTATE_SAMPLE_RATE", "22050")
	t.Setenv("DICTATE_MIN_CLIP_MS", "500")
	t.Setenv("DICTATE_RULES_FILE", "/tmp/my.rules")
	t.Setenv("DICTATE_HOTKEY", "ctrl+alt+d")
	t.Setenv("DICTATE_NOTIFICATIONS", "off")

	cfg := Load("large-v3")

	if cfg.API.Key != "test-key" || cfg.API.BaseURL != "https://example.com/v1" {
		t.Fatalf("unexpected api config: %+v", cfg.API)
	}
	if cfg.API.Model != "large-v3" || cfg.API.Language != "en" {
		t.Fatalf("unexpected model/language: %+v", cfg.API)
	}
	if cfg.API.Prompt != "Names: Ndrangheta" {
		t.Fatalf("unexpected prompt: %q", cfg.API.Prompt)
	}
	if cfg.API.Timeout != 5*time.Second {
		t.Fatalf("unexpected timeout: %s", cfg.API.Timeout)
	}
	if cfg.Audio.SampleRate != 22050 || cfg.Audio.MinClip != 500*time.Millisecond {
		t.Fatalf("unexpected audio config: %+v", cfg.Audio)
	}
	if cfg.Rules.Path != "/tmp/my.rules" {
		t.Fatalf("unexpected rules path: %q", cfg.Rules.Path)
	}
	if cfg.UI.Hotkey != "ctrl+alt+d" || cfg.UI.Notifications {
		t.Fatalf("unexpected ui config: %+v", cfg.UI)
	}
}

func TestLoadInvalidNumericValuesFallback(t *testing.T) {
	t.Setenv("DICTATE_SAMPLE_RATE", "bad")
	t.Setenv("DICTATE_MIN_CLIP_MS", "-10")
	t.Setenv("DICTATE_REQUEST_TIMEOUT_SECS", "0")
	t.Setenv("DICTATE_NOTIFICATIONS", "not-bool")

	cfg := Load("whisper-1")

	if cfg.Audio.SampleRate != 16000 {
		t.Fatalf("expected default sample rate, got %d", cfg.Audio.SampleRate)
	}
	if cfg.Audio.MinClip != 200*time.Millisecond {
		t.Fatalf("expected default min clip, got %s", cfg.Audio.MinClip)
	}
	if cfg.API.Timeout != 30*time.Second {
		t.Fatalf("expected default timeout, got %s", cfg.API.Timeout)
	}
	if !cfg.UI.Notifications {
		t.Fatalf("expected default notifications true")
	}
}

func TestValidateRequiresCredentials(t *testing.T) {
	t.Setenv("DICTATION_API_KEY", "")
	t.Setenv("DICTATION_BASE_URL", "")

	cfg := Load("whisper-1")
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected missing key error")
	}

	t.Setenv("DICTATION_API_KEY", "k")
	cfg = Load("whisper-1")
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected missing base url error")
	}

	t.Setenv("DICTATION_BASE_URL", "https://example.com/v1")
	cfg = Load("whisper-1")
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
