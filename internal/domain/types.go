package domain

import (
	"errors"
	"time"
)

// SessionState models the push-to-talk lifecycle. Exactly one dictation
// cycle is in flight at a time; a cycle passes Idle -> Recording ->
// Flushing and always ends back in Idle.
type SessionState string

const (
	SessionStateIdle      SessionState = "idle"
	SessionStateRecording SessionState = "recording"
	SessionStateFlushing  SessionState = "flushing"
)

// SessionStateReason provides a structured reason for state transitions.
type SessionStateReason string

const (
	SessionReasonReady                 SessionStateReason = "ready"
	SessionReasonRecordingStarted      SessionStateReason = "recording_started"
	SessionReasonTranscribing          SessionStateReason = "transcribing"
	SessionReasonClipDiscarded         SessionStateReason = "clip_discarded"
	SessionReasonNothingHeard          SessionStateReason = "nothing_heard"
	SessionReasonTextTyped             SessionStateReason = "text_typed"
	SessionReasonTextReadyInjectFailed SessionStateReason = "text_ready_inject_failed"
	SessionReasonTranscriptionFailed   SessionStateReason = "transcription_failed"
	SessionReasonRewriteFailed         SessionStateReason = "rewrite_failed"
	SessionReasonDeviceFailed          SessionStateReason = "device_failed"
)

// ErrorCode identifies startup and per-cycle errors.
type ErrorCode string

const (
	ErrorCodeStartup       ErrorCode = "startup"
	ErrorCodeDevice        ErrorCode = "device"
	ErrorCodeTranscription ErrorCode = "transcription"
	ErrorCodeRewrite       ErrorCode = "rewrite"
	ErrorCodeInject        ErrorCode = "inject"
	ErrorCodeBusy          ErrorCode = "busy"
)

// ErrEmptyTranscript marks a cycle whose clip produced no usable text.
// It is not a failure: the cycle is discarded and nothing is typed.
var ErrEmptyTranscript = errors.New("transcript is empty")

// Clip is one recorded utterance: mono 16-bit PCM at a fixed sample rate.
type Clip struct {
	PCM        []int16
	SampleRate int
}

// Empty reports whether the clip carries no usable audio. Captures below
// the minimum duration threshold come back as the empty clip.
func (c Clip) Empty() bool {
	return len(c.PCM) == 0
}

// Duration returns the clip length.
func (c Clip) Duration() time.Duration {
	if c.SampleRate <= 0 {
		return 0
	}
	return time.Duration(len(c.PCM)) * time.Second / time.Duration(c.SampleRate)
}

// CycleResult summarizes one completed dictation cycle.
type CycleResult struct {
	CycleID       string
	RawTranscript string
	FinalText     string
	Injected      bool
}

// Status summarizes the current runtime status.
type Status struct {
	State  SessionState
	Active bool
}
