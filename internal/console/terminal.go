package console

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
)

// Level is the kind of a console message.
type Level int

const (
	LevelInfo Level = iota
	LevelSuccess
	LevelWarning
	LevelError
	LevelHelp
)

func (l Level) String() string {
	switch l {
	case LevelSuccess:
		return "success"
	case LevelWarning:
		return "warning"
	case LevelError:
		return "error"
	case LevelHelp:
		return "help"
	default:
		return "info"
	}
}

// maxMessages bounds the messages a Terminal remembers.
const maxMessages = 100

const (
	ansiReset  = "\033[0m"
	ansiGreen  = "\033[32m"
	ansiYellow = "\033[33m"
	ansiRed    = "\033[31m"
	ansiCyan   = "\033[36m"
	ansiClear  = "\033[H\033[2J"
)

// Message is one line (or block) shown to the user.
type Message struct {
	Level Level
	Text  string
}

// Terminal writes user messages to a stream, colouring them when the stream
// is a terminal.
type Terminal struct {
	out    io.Writer
	color  bool
	recent []Message
}

// NewTerminal creates a Terminal on out. Colour is enabled when out is a TTY
// and NO_COLOR is unset.
func NewTerminal(out io.Writer) *Terminal {
	return &Terminal{out: out, color: isTerminal(out) && os.Getenv("NO_COLOR") == ""}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// SetColor overrides colour detection.
func (t *Terminal) SetColor(enabled bool) {
	t.color = enabled
}

func (t *Terminal) Info(text string)    { t.write(LevelInfo, text) }
func (t *Terminal) Success(text string) { t.write(LevelSuccess, text) }
func (t *Terminal) Warning(text string) { t.write(LevelWarning, text) }
func (t *Terminal) Error(text string)   { t.write(LevelError, text) }
func (t *Terminal) Help(text string)    { t.write(LevelHelp, text) }

// Clear forgets remembered messages and clears the screen on a terminal.
func (t *Terminal) Clear() {
	t.recent = nil
	if t.color {
		fmt.Fprint(t.out, ansiClear)
	}
}

// Messages returns the remembered messages, oldest first.
func (t *Terminal) Messages() []Message {
	return append([]Message(nil), t.recent...)
}

func (t *Terminal) write(level Level, text string) {
	t.recent = append(t.recent, Message{Level: level, Text: text})
	if len(t.recent) > maxMessages {
		t.recent = t.recent[len(t.recent)-maxMessages:]
	}

	prefix := ""
	switch level {
	case LevelSuccess:
		prefix = "ok: "
	case LevelWarning:
		prefix = "warning: "
	case LevelError:
		prefix = "error: "
	}

	line := prefix + text
	if t.color {
		if code := colorOf(level); code != "" {
			line = code + line + ansiReset
		}
	}
	if !strings.HasSuffix(line, "\n") {
		line += "\n"
	}
	fmt.Fprint(t.out, line)
}

func colorOf(level Level) string {
	switch level {
	case LevelSuccess:
		return ansiGreen
	case LevelWarning:
		return ansiYellow
	case LevelError:
		return ansiRed
	case LevelHelp:
		return ansiCyan
	}
	return ""
}
