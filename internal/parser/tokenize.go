package parser

import (
	"regexp"
	"strings"
)

var tokenPattern = regexp.MustCompile(`"([^"]+)"|'([^']+)'|(\S+)`)

// Tokenize splits text on whitespace. A run enclosed in double or single
// quotes is kept as one token with the quotes removed; there is no escape
// processing inside quotes.
func Tokenize(text string) []string {
	matches := tokenPattern.FindAllStringSubmatch(text, -1)
	tokens := make([]string, 0, len(matches))
	for _, m := range matches {
		switch {
		case m[1] != "":
			tokens = append(tokens, m[1])
		case m[2] != "":
			tokens = append(tokens, m[2])
		default:
			tokens = append(tokens, m[3])
		}
	}
	return tokens
}

// stripComment cuts text at the first '#' that is not inside quotes.
func stripComment(text string) string {
	var quote rune
	for i, r := range text {
		switch {
		case quote != 0:
			if r == quote {
				quote = 0
			}
		case r == '"' || r == '\'':
			quote = r
		case r == '#':
			return text[:i]
		}
	}
	return text
}

// SplitCommands splits one input line into command segments on every ';'
// outside quotes. Segments are trimmed and empty ones dropped.
func SplitCommands(input string) []string {
	var (
		segments []string
		current  strings.Builder
		quote    byte
	)

	flush := func() {
		if s := strings.TrimSpace(current.String()); s != "" {
			segments = append(segments, s)
		}
		current.Reset()
	}

	for i := 0; i < len(input); i++ {
		c := input[i]
		switch {
		case c == '"' || c == '\'':
			if quote == 0 {
				quote = c
			} else if c == quote {
				quote = 0
			}
			current.WriteByte(c)
		case c == ';' && quote == 0:
			flush()
		default:
			current.WriteByte(c)
		}
	}
	flush()

	return segments
}
