package ui

// history is a bounded list of submitted lines with a browse cursor.
type history struct {
	lines []string
	limit int
	pos   int // len(lines) means "not browsing"
}

func newHistory(limit int) *history {
	return &history{limit: limit}
}

// push records a line and resets browsing. Consecutive duplicates are kept
// once.
func (h *history) push(line string) {
	if n := len(h.lines); n == 0 || h.lines[n-1] != line {
		h.lines = append(h.lines, line)
	}
	if h.limit > 0 && len(h.lines) > h.limit {
		h.lines = h.lines[len(h.lines)-h.limit:]
	}
	h.pos = len(h.lines)
}

// prev moves to the previous line. ok is false at the oldest entry.
func (h *history) prev() (string, bool) {
	if h.pos == 0 {
		return "", false
	}
	h.pos--
	return h.lines[h.pos], true
}

// next moves towards the newest line; past it, the input is empty.
func (h *history) next() string {
	if h.pos >= len(h.lines) {
		return ""
	}
	h.pos++
	if h.pos == len(h.lines) {
		return ""
	}
	return h.lines[h.pos]
}
