package core

import (
	"regexp"
	"strings"
)

// Args is a tokenized chat command.
type Args struct {
	// Command is the lowercased first token.
	Command string
	// Tokens are the remaining tokens, with quotes and escapes resolved.
	Tokens []string
	// Remainder is the raw text following the command name.
	Remainder string
}

// Len returns the number of argument tokens.
func (a *Args) Len() int {
	return len(a.Tokens)
}

// Get returns the i-th argument token, or "" if there is none.
func (a *Args) Get(i int) string {
	if i < 0 || i >= len(a.Tokens) {
		return ""
	}
	return a.Tokens[i]
}

// Join returns the argument tokens from index i on, joined by spaces.
func (a *Args) Join(i int) string {
	if i >= len(a.Tokens) {
		return ""
	}
	return strings.Join(a.Tokens[i:], " ")
}

// Tokenize splits raw into a command name and argument tokens.
//
// Tokens are separated by unquoted spaces; empty tokens are dropped. A double
// quote toggles quoting unless escaped, and a backslash makes the next
// character literal. An unterminated quote runs to the end of the input.
// Returns nil if raw holds no tokens.
func Tokenize(raw string) *Args {
	if strings.TrimSpace(raw) == "" {
		return nil
	}

	var (
		tokens  []string
		current strings.Builder
		inQuote bool
		escaped bool
		// byte offset where the first token ended
		firstEnd = -1
	)

	flush := func(end int) {
		if current.Len() == 0 {
			return
		}
		tokens = append(tokens, current.String())
		current.Reset()
		if firstEnd < 0 {
			firstEnd = end
		}
	}

	for i, ch := range raw {
		switch {
		case escaped:
			current.WriteRune(ch)
			escaped = false
		case ch == '\\':
			escaped = true
		case ch == '"':
			inQuote = !inQuote
		case ch == ' ' && !inQuote:
			flush(i)
		default:
			current.WriteRune(ch)
		}
	}
	flush(len(raw))

	if len(tokens) == 0 {
		return nil
	}

	return &Args{
		Command:   strings.ToLower(tokens[0]),
		Tokens:    tokens[1:],
		Remainder: strings.TrimLeft(raw[firstEnd:], " "),
	}
}

// Processor strips a command prefix before tokenizing.
type Processor struct {
	prefix  string
	pattern *regexp.Regexp
}

// NewProcessor returns a Processor that requires messages to start with prefix.
func NewProcessor(prefix string) *Processor {
	return &Processor{prefix: prefix}
}

// NewPatternProcessor returns a Processor that requires messages to start
// with a match of pattern.
func NewPatternProcessor(pattern *regexp.Regexp) *Processor {
	return &Processor{pattern: pattern}
}

// Prefix returns the literal prefix, or the pattern source for pattern
// processors.
func (p *Processor) Prefix() string {
	if p.pattern != nil {
		return p.pattern.String()
	}
	return p.prefix
}

// Process strips the prefix from raw and tokenizes the rest. Returns nil if
// raw does not start with the prefix or holds no command.
func (p *Processor) Process(raw string) *Args {
	if strings.TrimSpace(raw) == "" {
		return nil
	}

	if p.pattern != nil {
		loc := p.pattern.FindStringIndex(raw)
		if loc == nil || loc[0] != 0 {
			return nil
		}
		return Tokenize(raw[loc[1]:])
	}

	if !strings.HasPrefix(raw, p.prefix) {
		return nil
	}
	return Tokenize(raw[len(p.prefix):])
}
