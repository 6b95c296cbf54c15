package rules

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"
)

// A substitution is one operator-defined replacement, compiled from a line
// of the rules file. Two line formats are supported:
//
//	pull request => PR            literal, case-insensitive, replaces all
//	s/\bwhis?per\b/Whisper/g      sed-style regex; flags i, g, m, s
//
// Blank lines and lines starting with # are ignored. Substitutions run as
// a single pass in file order after the command rewrite, so a personal
// dictionary survives alongside the built-in punctuation table.
type substitution struct {
	re          *regexp.Regexp
	replacement string
	firstOnly   bool
}

func (s substitution) apply(input string) string {
	if !s.firstOnly {
		return s.re.ReplaceAllString(input, s.replacement)
	}
	loc := s.re.FindStringIndex(input)
	if loc == nil {
		return input
	}
	return input[:loc[0]] + s.re.ReplaceAllString(input[loc[0]:loc[1]], s.replacement) + input[loc[1]:]
}

// Subs applies operator-defined substitutions loaded from a file.
type Subs struct {
	subs []substitution
}

// LoadSubs reads and compiles a substitutions file. An empty path or a
// missing file yields an empty, usable Subs.
func LoadSubs(path string) (*Subs, error) {
	if strings.TrimSpace(path) == "" {
		return &Subs{}, nil
	}

	contents, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Subs{}, nil
		}
		return nil, fmt.Errorf("failed to read rules file %q: %w", path, err)
	}

	var subs []substitution
	for index, raw := range strings.Split(string(contents), "\n") {
		line := strings.TrimSpace(raw)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		sub, err := parseLine(line)
		if err != nil {
			return nil, fmt.Errorf("rules file %q line %d: %w", path, index+1, err)
		}
		subs = append(subs, sub)
	}

	return &Subs{subs: subs}, nil
}

// Apply runs every substitution once, in file order.
func (s *Subs) Apply(text string) string {
	for _, sub := range s.subs {
		text = sub.apply(text)
	}
	return text
}

// Empty reports whether the file contributed no substitutions.
func (s *Subs) Empty() bool {
	return len(s.subs) == 0
}

func parseLine(line string) (substitution, error) {
	if looksLikeSedRule(line) {
		return parseSedLine(line)
	}
	if strings.Contains(line, "=>") {
		return parseLiteralLine(line)
	}
	return substitution{}, errors.New("unsupported rule format")
}

func parseLiteralLine(line string) (substitution, error) {
	parts := strings.SplitN(line, "=>", 2)
	from := strings.TrimSpace(parts[0])
	to := strings.TrimSpace(parts[1])
	if from == "" {
		return substitution{}, errors.New("literal rule source cannot be empty")
	}
	return substitution{
		re:          regexp.MustCompile(`(?i)` + regexp.QuoteMeta(from)),
		replacement: to,
	}, nil
}

func parseSedLine(line string) (substitution, error) {
	delim := line[1]
	pattern, pos, err := scanDelimited(line, 2, delim)
	if err != nil {
		return substitution{}, fmt.Errorf("invalid pattern: %w", err)
	}
	replacement, pos, err := scanDelimited(line, pos, delim)
	if err != nil {
		return substitution{}, fmt.Errorf("invalid replacement: %w", err)
	}

	// case-insensitive by default, like the literal form
	prefix := "i"
	global := false
	for _, flag := range strings.TrimSpace(line[pos:]) {
		switch flag {
		case 'i':
		case 'g':
			global = true
		case 'm':
			prefix += "m"
		case 's':
			prefix += "s"
		default:
			return substitution{}, fmt.Errorf("unsupported flag %q", flag)
		}
	}

	re, err := regexp.Compile("(?" + prefix + ")" + pattern)
	if err != nil {
		return substitution{}, fmt.Errorf("invalid regex: %w", err)
	}
	return substitution{re: re, replacement: replacement, firstOnly: !global}, nil
}

func scanDelimited(line string, start int, delim byte) (string, int, error) {
	if start >= len(line) {
		return "", 0, errors.New("unexpected end of expression")
	}
	var builder strings.Builder
	escaped := false
	for index := start; index < len(line); index++ {
		char := line[index]
		switch {
		case escaped:
			builder.WriteByte(char)
			escaped = false
		case char == '\\':
			builder.WriteByte(char)
			escaped = true
		case char == delim:
			return builder.String(), index + 1, nil
		default:
			builder.WriteByte(char)
		}
	}
	return "", 0, errors.New("unterminated expression")
}

func looksLikeSedRule(line string) bool {
	if len(line) < 2 || line[0] != 's' {
		return false
	}
	delim := line[1]
	switch {
	case delim >= 'a' && delim <= 'z', delim >= 'A' && delim <= 'Z':
		return false
	case delim >= '0' && delim <= '9', delim == ' ', delim == '\t':
		return false
	}
	return true
}
