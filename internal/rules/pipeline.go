package rules

import "strings"

// Pipeline is the full transcript post-processing chain: command rewrite,
// tidy pass, then operator substitutions. It implements ports.Rewriter.
type Pipeline struct {
	engine *Engine
	subs   *Subs
}

// NewPipeline composes the chain. subs may be nil when no rules file is
// configured; a file that contributed no substitutions drops the stage.
func NewPipeline(engine *Engine, subs *Subs) *Pipeline {
	if subs != nil && subs.Empty() {
		subs = nil
	}
	return &Pipeline{engine: engine, subs: subs}
}

// Rewrite transforms a raw transcript into the text to type. Trailing
// spaces are dropped; the injector adds its own separator.
func (p *Pipeline) Rewrite(text string) (string, error) {
	text = p.engine.Rewrite(text)
	text = Tidy(text)
	if p.subs != nil {
		text = p.subs.Apply(text)
	}
	return strings.TrimRight(text, " "), nil
}
