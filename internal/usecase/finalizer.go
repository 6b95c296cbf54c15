package usecase

import (
	"github.com/Hegghammer/whisper-dictation/internal/domain"
	"github.com/Hegghammer/whisper-dictation/internal/ports"
)

type cycleFinalizer struct {
	rewriter ports.Rewriter
	injector ports.Injector
	events   ports.EventSink
}

func newCycleFinalizer(rewriter ports.Rewriter, injector ports.Injector, events ports.EventSink) cycleFinalizer {
	return cycleFinalizer{rewriter: rewriter, injector: injector, events: events}
}

// Finalize rewrites the raw transcript and types the result. The typed
// text carries a trailing space so consecutive dictations join cleanly;
// FinalText in the result does not.
func (f cycleFinalizer) Finalize(cycleID, raw string) (domain.CycleResult, domain.SessionStateReason, error) {
	final, err := f.rewriter.Rewrite(raw)
	if err != nil {
		f.events.CycleError(cycleID, domain.ErrorCodeRewrite, err.Error())
		return domain.CycleResult{}, domain.SessionReasonRewriteFailed, err
	}

	result := domain.CycleResult{
		CycleID:       cycleID,
		RawTranscript: raw,
		FinalText:     final,
		Injected:      true,
	}
	reason := domain.SessionReasonTextTyped

	if err := f.injector.Inject(final + " "); err != nil {
		result.Injected = false
		reason = domain.SessionReasonTextReadyInjectFailed
		f.events.CycleError(cycleID, domain.ErrorCodeInject, "text ready but injection failed")
	}

	return result, reason, nil
}
