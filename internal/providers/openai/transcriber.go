// Package openai submits finished clips to an OpenAI-compatible
// transcription endpoint.
package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/Hegghammer/whisper-dictation/internal/domain"
)

const (
	defaultModel   = "whisper-1"
	defaultTimeout = 30 * time.Second
)

// Config carries the endpoint settings.
type Config struct {
	APIKey   string
	BaseURL  string
	Model    string
	Prompt   string
	Language string
	Timeout  time.Duration
}

// Client implements ports.Transcriber over the POST /audio/transcriptions
// wire format. One clip maps to one multipart request; there is no retry.
type Client struct {
	cfg  Config
	http *http.Client
}

// NewClient builds a client. Model and timeout fall back to defaults when
// unset.
func NewClient(cfg Config) *Client {
	if cfg.Model == "" {
		cfg.Model = defaultModel
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	return &Client{
		cfg:  cfg,
		http: &http.Client{Timeout: cfg.Timeout},
	}
}

type transcriptionResponse struct {
	Text string `json:"text"`
}

// Transcribe uploads the clip and returns the raw transcript. A response
// whose text is empty or whitespace surfaces as domain.ErrEmptyTranscript.
func (c *Client) Transcribe(ctx context.Context, clip domain.Clip) (string, error) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	part, err := writer.CreateFormFile("file", "audio.wav")
	if err != nil {
		return "", fmt.Errorf("failed to build upload: %w", err)
	}
	if _, err := part.Write(encodeWAV(clip.PCM, clip.SampleRate)); err != nil {
		return "", fmt.Errorf("failed to build upload: %w", err)
	}

	fields := map[string]string{
		"model":           c.cfg.Model,
		"response_format": "json",
	}
	if c.cfg.Prompt != "" {
		fields["prompt"] = c.cfg.Prompt
	}
	if c.cfg.Language != "" {
		fields["language"] = c.cfg.Language
	}
	for name, value := range fields {
		if err := writer.WriteField(name, value); err != nil {
			return "", fmt.Errorf("failed to build upload: %w", err)
		}
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("failed to build upload: %w", err)
	}

	url := strings.TrimRight(c.cfg.BaseURL, "/") + "/audio/transcriptions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, body)
	if err != nil {
		return "", fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("transcription request failed: %w", err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("failed to read transcription response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("transcription endpoint returned %d: %s",
			resp.StatusCode, strings.TrimSpace(string(payload)))
	}

	var parsed transcriptionResponse
	if err := json.Unmarshal(payload, &parsed); err != nil {
		return "", fmt.Errorf("failed to decode transcription response: %w", err)
	}

	text := strings.TrimSpace(parsed.Text)
	if text == "" {
		return "", domain.ErrEmptyTranscript
	}
	return text, nil
}
