package ports

import (
	"context"

	"github.com/Hegghammer/whisper-dictation/internal/domain"
)

// Recorder owns the microphone for the duration of one recording session.
// Start opens the input stream and begins accumulating frames; Stop closes
// the stream and returns the finished clip. Starting twice without an
// intervening Stop is a contract violation and fails.
type Recorder interface {
	Start() error
	Stop() (domain.Clip, error)
}

// Transcriber submits a finished clip to a speech-to-text backend and
// returns the raw transcript. The clip is sent exactly once per call;
// retries are the caller's concern. An unusable (empty/whitespace) result
// surfaces as domain.ErrEmptyTranscript.
type Transcriber interface {
	Transcribe(ctx context.Context, clip domain.Clip) (string, error)
}

// Rewriter transforms raw transcripts deterministically.
type Rewriter interface {
	Rewrite(text string) (string, error)
}

// Injector types text into the focused window.
type Injector interface {
	Inject(text string) error
}

// EventSink receives backend state changes and cycle outcomes. The app
// shell implements it over structured logging and desktop notifications.
type EventSink interface {
	StateChanged(state domain.SessionState, reason domain.SessionStateReason)
	CycleFinished(result domain.CycleResult)
	CycleError(cycleID string, code domain.ErrorCode, detail string)
}
