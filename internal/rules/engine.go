// Package rules turns spoken punctuation commands into literal symbols and
// applies deterministic cleanup to raw transcripts.
package rules

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// Rule maps spoken command phrases to a literal symbol. Triggers are the
// bare phrases that become the symbol; Escapes are the phrases that mean
// "say the literal words, not the symbol" — each escape must contain one of
// the rule's triggers as a substring. Literal is the text an escape
// resolves to. SwallowSpace controls whether a trigger match also consumes
// one trailing space, for symbols that carry their own spacing.
type Rule struct {
	Name         string
	Triggers     []string
	Escapes      []string
	Literal      string
	Symbol       string
	SwallowSpace bool
}

// DefaultRules is the built-in command table. The symbols keep the spacing
// of the original table: comma and full stop carry a trailing space, the
// quotation mark binds tight and relies on the tidy pass for spacing.
func DefaultRules() []Rule {
	return []Rule{
		{
			Name:         "newline",
			Triggers:     []string{"new line", "newline"},
			Escapes:      []string{"actual new line", "actual newline"},
			Literal:      "new line",
			Symbol:       "\n",
			SwallowSpace: true,
		},
		{
			Name:         "inverted-comma",
			Triggers:     []string{"inverted comma"},
			Escapes:      []string{"actual inverted comma"},
			Literal:      "inverted comma",
			Symbol:       `"`,
			SwallowSpace: false,
		},
		{
			Name:         "comma",
			Triggers:     []string{"comma"},
			Escapes:      []string{"actual comma"},
			Literal:      "comma",
			Symbol:       ", ",
			SwallowSpace: true,
		},
		{
			Name:         "full-stop",
			Triggers:     []string{"full stop"},
			Escapes:      []string{"actual full stop"},
			Literal:      "full stop",
			Symbol:       ". ",
			SwallowSpace: true,
		},
	}
}

type compiledCommand struct {
	rule     Rule
	escapeRe *regexp.Regexp
	bareRe   *regexp.Regexp
	sentinel string
}

// Engine rewrites command phrases in transcript text. The rule table is
// fixed at construction and rules are applied independently of each other:
// per rule, escape phrases are parked behind sentinels first, then bare
// triggers become symbols, then sentinels resolve to the literal words.
type Engine struct {
	commands []compiledCommand
}

// NewEngine validates and compiles a rule table.
func NewEngine(rules []Rule) (*Engine, error) {
	seen := make(map[string]string, len(rules))
	commands := make([]compiledCommand, 0, len(rules))

	for i, rule := range rules {
		if len(rule.Triggers) == 0 || rule.Symbol == "" || rule.Literal == "" {
			return nil, fmt.Errorf("rule %q: triggers, literal and symbol are required", rule.Name)
		}
		for _, trigger := range rule.Triggers {
			key := strings.ToLower(trigger)
			if owner, dup := seen[key]; dup {
				return nil, fmt.Errorf("rule %q: trigger %q already claimed by rule %q", rule.Name, trigger, owner)
			}
			seen[key] = rule.Name
		}
		for _, escape := range rule.Escapes {
			if !containsAnyFold(escape, rule.Triggers) {
				return nil, fmt.Errorf("rule %q: escape %q does not contain a trigger phrase", rule.Name, escape)
			}
		}

		cmd := compiledCommand{
			rule: rule,
			// digits only between the delimiters, so no trigger can
			// ever match inside a sentinel
			sentinel: "\x00" + strconv.Itoa(i) + "\x00",
		}

		if len(rule.Escapes) > 0 {
			cmd.escapeRe = regexp.MustCompile(`(?i)\b(?:` + alternation(rule.Escapes) + `)\b`)
		}

		bare := `(?i)\b(?:` + alternation(rule.Triggers) + `)\b[,.?]?`
		if rule.SwallowSpace {
			bare += ` ?`
		}
		cmd.bareRe = regexp.MustCompile(bare)

		commands = append(commands, cmd)
	}

	return &Engine{commands: commands}, nil
}

// Rewrite applies the command table to text. Matching is case-insensitive
// and left-to-right; escape phrases are neutralized before bare triggers so
// "actual comma" never yields the symbol. Text containing no command
// phrase passes through unchanged.
func (e *Engine) Rewrite(text string) string {
	for _, cmd := range e.commands {
		if cmd.escapeRe != nil {
			text = cmd.escapeRe.ReplaceAllString(text, cmd.sentinel)
		}
	}
	for _, cmd := range e.commands {
		text = cmd.bareRe.ReplaceAllString(text, cmd.rule.Symbol)
	}
	for _, cmd := range e.commands {
		text = strings.ReplaceAll(text, cmd.sentinel, cmd.rule.Literal)
	}
	return text
}

// alternation joins phrases into a regexp alternation, longest first so a
// shorter variant never shadows a longer one at the same position.
func alternation(phrases []string) string {
	sorted := make([]string, len(phrases))
	copy(sorted, phrases)
	sort.Slice(sorted, func(i, j int) bool { return len(sorted[i]) > len(sorted[j]) })

	quoted := make([]string, len(sorted))
	for i, phrase := range sorted {
		quoted[i] = regexp.QuoteMeta(phrase)
	}
	return strings.Join(quoted, "|")
}

func containsAnyFold(s string, subs []string) bool {
	lower := strings.ToLower(s)
	for _, sub := range subs {
		if strings.Contains(lower, strings.ToLower(sub)) {
			return true
		}
	}
	return false
}
