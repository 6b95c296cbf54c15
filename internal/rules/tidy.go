package rules

import (
	"regexp"
	"strings"
)

// The tidy pass smooths over artifacts of the rewrite: transcription
// backends emit their own punctuation next to spoken commands ("comma,"),
// and symbol substitution can leave stray spaces. It deliberately does not
// try to re-flow prose.
var (
	duplicatePunct = []*regexp.Regexp{
		// RE2 has no backreferences, so one collapser per mark.
		regexp.MustCompile(`,(?:\s*,)+`),
		regexp.MustCompile(`\.(?:\s*\.)+`),
		regexp.MustCompile(`!(?:\s*!)+`),
		regexp.MustCompile(`\?(?:\s*\?)+`),
	}
	duplicateRepl = []string{",", ".", "!", "?"}

	commaBeforeStop  = regexp.MustCompile(`,\s*\.`)
	spaceBeforePunct = regexp.MustCompile(`\s+([,.!?])`)
	quoteThenSpace   = regexp.MustCompile(`"\s+`)
	spaceThenQuote   = regexp.MustCompile(`\s+"`)
)

// Tidy collapses duplicated punctuation, removes whitespace before
// punctuation and tightens spacing around double quotes.
func Tidy(text string) string {
	for i, re := range duplicatePunct {
		text = re.ReplaceAllString(text, duplicateRepl[i])
	}
	text = commaBeforeStop.ReplaceAllString(text, ".")
	text = spaceBeforePunct.ReplaceAllString(text, "$1")
	text = quoteThenSpace.ReplaceAllString(text, `"`)
	text = spaceThenQuote.ReplaceAllString(text, `"`)
	text = strings.ReplaceAll(text, `",`, `"`)
	text = strings.ReplaceAll(text, `,"`, ` "`)
	return text
}
