// Package parser turns a line of console input into a structured Command.
//
// Grammar:
//
//	<command-name> [positional...] [-flag [value]]... [--longflag]... [--help]
//
// A single-dash flag takes the next token as its value unless that token
// itself starts with '-'. As a consequence a flag value can never start with
// '-'. Negative numbers and times given as positional arguments are kept
// positional.
package parser

import (
	"strings"
)

// HelpFlag is the flag name set by --help.
const HelpFlag = "help"

// Flag is either a boolean switch or a typed value.
type Flag struct {
	Value    Value
	HasValue bool
}

// String returns the flag value text, or "true" for a switch.
func (f Flag) String() string {
	if !f.HasValue {
		return "true"
	}
	return f.Value.Raw
}

// Command is one parsed command line segment.
type Command struct {
	// Name is the lowercased first token.
	Name string
	// Head is the first token as typed.
	Head       string
	Positional []Value
	Flags      map[string]Flag
	Raw        string
}

// Parse parses a single command. It returns false for blank input and
// comment-only lines.
func Parse(line string) (Command, bool) {
	line = strings.TrimSpace(stripComment(line))
	if line == "" {
		return Command{}, false
	}

	tokens := Tokenize(line)
	if len(tokens) == 0 {
		return Command{}, false
	}

	cmd := Command{
		Name:  strings.ToLower(tokens[0]),
		Head:  tokens[0],
		Flags: make(map[string]Flag),
		Raw:   line,
	}

	for i := 1; i < len(tokens); i++ {
		token := tokens[i]

		switch {
		case token == "--help":
			cmd.Flags[HelpFlag] = Flag{}
		case strings.HasPrefix(token, "--") && len(token) > 2:
			cmd.Flags[token[2:]] = Flag{}
		case strings.HasPrefix(token, "-") && len(token) > 1 && !Classify(token).IsNumeric():
			name := token[1:]
			if i+1 < len(tokens) && !strings.HasPrefix(tokens[i+1], "-") {
				cmd.Flags[name] = Flag{Value: Classify(tokens[i+1]), HasValue: true}
				i++
			} else {
				cmd.Flags[name] = Flag{}
			}
		default:
			cmd.Positional = append(cmd.Positional, Classify(token))
		}
	}

	return cmd, true
}

// Arg returns the positional value at index i.
func (c Command) Arg(i int) (Value, bool) {
	if i < 0 || i >= len(c.Positional) {
		return Value{}, false
	}
	return c.Positional[i], true
}

// HasFlag reports whether the flag was given, with or without a value.
func (c Command) HasFlag(name string) bool {
	_, ok := c.Flags[name]
	return ok
}

// Flag returns the named flag.
func (c Command) Flag(name string) (Flag, bool) {
	f, ok := c.Flags[name]
	return f, ok
}

// FlagValue returns the value of a flag that was given one.
func (c Command) FlagValue(name string) (Value, bool) {
	f, ok := c.Flags[name]
	if !ok || !f.HasValue {
		return Value{}, false
	}
	return f.Value, true
}

// WantsHelp reports whether --help was given.
func (c Command) WantsHelp() bool {
	return c.HasFlag(HelpFlag)
}
