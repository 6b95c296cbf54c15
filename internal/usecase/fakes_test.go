package usecase

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/Hegghammer/whisper-dictation/internal/domain"
)

type fakeRecorder struct {
	mu        sync.Mutex
	startErr  error
	stopErr   error
	clip      domain.Clip
	starts    int
	stops     int
	recording bool
}

func (f *fakeRecorder) Start() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.starts++
	if f.startErr != nil {
		return f.startErr
	}
	f.recording = true
	return nil
}

func (f *fakeRecorder) Stop() (domain.Clip, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stops++
	f.recording = false
	if f.stopErr != nil {
		return domain.Clip{}, f.stopErr
	}
	return f.clip, nil
}

func (f *fakeRecorder) startCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.starts
}

type fakeTranscriber struct {
	mu    sync.Mutex
	text  string
	err   error
	calls int
	gate  chan struct{}
}

func (f *fakeTranscriber) Transcribe(ctx context.Context, clip domain.Clip) (string, error) {
	f.mu.Lock()
	f.calls++
	gate := f.gate
	f.mu.Unlock()
	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	if f.err != nil {
		return "", f.err
	}
	return f.text, nil
}

func (f *fakeTranscriber) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

type fakeRewriter struct {
	transform string
	err       error
}

func (f *fakeRewriter) Rewrite(text string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	if f.transform != "" {
		return f.transform, nil
	}
	return text, nil
}

type fakeInjector struct {
	mu       sync.Mutex
	err      error
	lastText string
	calls    int
}

func (f *fakeInjector) Inject(text string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return f.err
	}
	f.lastText = text
	return nil
}

func (f *fakeInjector) last() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lastText
}

type stateChange struct {
	state  domain.SessionState
	reason domain.SessionStateReason
}

type cycleError struct {
	cycleID string
	code    domain.ErrorCode
	detail  string
}

type fakeEventSink struct {
	mu       sync.Mutex
	states   []stateChange
	finished []domain.CycleResult
	errors   []cycleError
}

func (f *fakeEventSink) StateChanged(state domain.SessionState, reason domain.SessionStateReason) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.states = append(f.states, stateChange{state: state, reason: reason})
}

func (f *fakeEventSink) CycleFinished(result domain.CycleResult) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.finished = append(f.finished, result)
}

func (f *fakeEventSink) CycleError(cycleID string, code domain.ErrorCode, detail string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.errors = append(f.errors, cycleError{cycleID: cycleID, code: code, detail: detail})
}

func (f *fakeEventSink) snapshotStates() []stateChange {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]stateChange, len(f.states))
	copy(out, f.states)
	return out
}

func (f *fakeEventSink) snapshotErrors() []cycleError {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]cycleError, len(f.errors))
	copy(out, f.errors)
	return out
}

func (f *fakeEventSink) snapshotFinished() []domain.CycleResult {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]domain.CycleResult, len(f.finished))
	copy(out, f.finished)
	return out
}

func testClip() domain.Clip {
	return domain.Clip{PCM: make([]int16, 4800), SampleRate: 16000}
}

// waitFor polls until the condition holds; the flush runs on its own
// goroutine, so outcomes land asynchronously.
func waitFor(t *testing.T, condition func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if condition() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("condition not met before deadline")
}
