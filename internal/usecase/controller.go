// Package usecase orchestrates the push-to-talk dictation cycle.
package usecase

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/Hegghammer/whisper-dictation/internal/domain"
	"github.com/Hegghammer/whisper-dictation/internal/ports"
)

// DictationController drives one dictation cycle at a time through the
// Idle -> Recording -> Flushing lifecycle. Pressed and Released map to the
// hotkey edges; the flush (transcribe, rewrite, inject) runs on its own
// goroutine so the hotkey listener never blocks on the network.
type DictationController struct {
	recorder    ports.Recorder
	transcriber ports.Transcriber
	events      ports.EventSink
	finalizer   cycleFinalizer

	mu      sync.Mutex
	state   domain.SessionState
	cycleID string
}

func NewDictationController(
	recorder ports.Recorder,
	transcriber ports.Transcriber,
	rewriter ports.Rewriter,
	injector ports.Injector,
	events ports.EventSink,
) *DictationController {
	return &DictationController{
		recorder:    recorder,
		transcriber: transcriber,
		events:      events,
		finalizer:   newCycleFinalizer(rewriter, injector, events),
		state:       domain.SessionStateIdle,
	}
}

// Pressed starts a new cycle. A press while recording is ignored (the OS
// repeats keydown events while the key is held); a press while a previous
// cycle is still flushing is rejected so clips never interleave.
func (c *DictationController) Pressed() {
	c.mu.Lock()
	switch c.state {
	case domain.SessionStateRecording:
		c.mu.Unlock()
		return
	case domain.SessionStateFlushing:
		cycleID := c.cycleID
		c.mu.Unlock()
		c.events.CycleError(cycleID, domain.ErrorCodeBusy,
			"previous cycle still flushing, press ignored")
		return
	}

	cycleID := uuid.NewString()
	c.cycleID = cycleID
	c.mu.Unlock()

	if err := c.recorder.Start(); err != nil {
		c.events.CycleError(cycleID, domain.ErrorCodeDevice, err.Error())
		c.setState(domain.SessionStateIdle, domain.SessionReasonDeviceFailed)
		return
	}

	c.setState(domain.SessionStateRecording, domain.SessionReasonRecordingStarted)
}

// Released ends the capture and flushes the clip. Sub-threshold clips are
// discarded without a network round trip. A release with no recording in
// flight is a stray keyup and is ignored.
func (c *DictationController) Released(ctx context.Context) {
	c.mu.Lock()
	if c.state != domain.SessionStateRecording {
		c.mu.Unlock()
		return
	}
	c.state = domain.SessionStateFlushing
	cycleID := c.cycleID
	c.mu.Unlock()

	clip, err := c.recorder.Stop()
	if err != nil {
		c.events.CycleError(cycleID, domain.ErrorCodeDevice, err.Error())
		c.setState(domain.SessionStateIdle, domain.SessionReasonDeviceFailed)
		return
	}

	if clip.Empty() {
		c.setState(domain.SessionStateIdle, domain.SessionReasonClipDiscarded)
		return
	}

	c.events.StateChanged(domain.SessionStateFlushing, domain.SessionReasonTranscribing)
	go c.flush(ctx, cycleID, clip)
}

func (c *DictationController) flush(ctx context.Context, cycleID string, clip domain.Clip) {
	raw, err := c.transcriber.Transcribe(ctx, clip)
	if err != nil {
		if errors.Is(err, domain.ErrEmptyTranscript) {
			c.setState(domain.SessionStateIdle, domain.SessionReasonNothingHeard)
			return
		}
		c.events.CycleError(cycleID, domain.ErrorCodeTranscription, err.Error())
		c.setState(domain.SessionStateIdle, domain.SessionReasonTranscriptionFailed)
		return
	}

	result, reason, err := c.finalizer.Finalize(cycleID, raw)
	if err != nil {
		c.setState(domain.SessionStateIdle, reason)
		return
	}

	c.events.CycleFinished(result)
	c.setState(domain.SessionStateIdle, reason)
}

// Status returns the current backend status.
func (c *DictationController) Status() domain.Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	return domain.Status{
		State:  c.state,
		Active: c.state != domain.SessionStateIdle,
	}
}

func (c *DictationController) setState(state domain.SessionState, reason domain.SessionStateReason) {
	c.mu.Lock()
	c.state = state
	c.mu.Unlock()
	c.events.StateChanged(state, reason)
}
