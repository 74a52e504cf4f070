package console

import "strings"

// DefaultHistorySize is used when a History is created with a non-positive size.
const DefaultHistorySize = 100

// History keeps previously entered lines for up/down recall.
type History struct {
	entries []string
	maxSize int

	// index is the navigation cursor; -1 when not navigating.
	index int
	saved string
}

// NewHistory creates a History holding at most maxSize entries.
func NewHistory(maxSize int) *History {
	if maxSize <= 0 {
		maxSize = DefaultHistorySize
	}
	return &History{maxSize: maxSize, index: -1}
}

// Add records line. Blank lines and repeats of the newest entry are ignored.
func (h *History) Add(line string) {
	line = strings.TrimSpace(line)
	if line == "" {
		return
	}
	if n := len(h.entries); n > 0 && h.entries[n-1] == line {
		return
	}

	h.entries = append(h.entries, line)
	if len(h.entries) > h.maxSize {
		h.entries = h.entries[len(h.entries)-h.maxSize:]
	}
	h.ResetNavigation()
}

// Up moves to the next older entry. The first call saves current so Down can
// return to it. It reports false when the history is empty.
func (h *History) Up(current string) (string, bool) {
	if len(h.entries) == 0 {
		return "", false
	}
	if h.index == -1 {
		h.saved = current
		h.index = len(h.entries)
	}
	if h.index > 0 {
		h.index--
	}
	return h.entries[h.index], true
}

// Down moves to the next newer entry, ending at the saved input. It reports
// false when not navigating.
func (h *History) Down() (string, bool) {
	if h.index == -1 {
		return "", false
	}
	h.index++
	if h.index >= len(h.entries) {
		saved := h.saved
		h.ResetNavigation()
		return saved, true
	}
	return h.entries[h.index], true
}

// ResetNavigation leaves navigation mode.
func (h *History) ResetNavigation() {
	h.index = -1
	h.saved = ""
}

// All returns a copy of the entries, oldest first.
func (h *History) All() []string {
	return append([]string(nil), h.entries...)
}

// Len returns the number of stored entries.
func (h *History) Len() int { return len(h.entries) }

// Clear forgets every entry.
func (h *History) Clear() {
	h.entries = nil
	h.ResetNavigation()
}
