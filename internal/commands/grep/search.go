package grep

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/Cyclone1070/vsh/internal/vfs"
)

const groupSeparator = "--"

// searcher accumulates output across targets.
type searcher struct {
	args          GrepArgs
	re            *regexp.Regexp
	withFilename  bool
	maxMatches    int
	maxLineLength int

	out       []string
	matched   int
	grouped   bool
	truncated bool
}

func (s *searcher) capped() bool {
	return s.maxMatches > 0 && s.matched >= s.maxMatches
}

func (s *searcher) search(t target) {
	lines := vfs.SplitLines(t.text)
	var hits []int
	for i, line := range lines {
		if s.re.MatchString(line) != s.args.Invert {
			hits = append(hits, i)
		}
	}
	if s.maxMatches > 0 {
		if remaining := s.maxMatches - s.matched; len(hits) > remaining {
			hits = hits[:remaining]
			s.truncated = true
		}
	}
	s.matched += len(hits)

	switch {
	case s.args.FilesWithMatches:
		if len(hits) > 0 {
			s.out = append(s.out, t.name)
		}
	case s.args.Count:
		if s.withFilename {
			s.out = append(s.out, t.name+":"+strconv.Itoa(len(hits)))
		} else {
			s.out = append(s.out, strconv.Itoa(len(hits)))
		}
	case s.args.Before == 0 && s.args.After == 0:
		for _, idx := range hits {
			s.out = append(s.out, s.format(t.name, idx, lines[idx], ':'))
		}
	default:
		s.emitContext(t.name, lines, hits)
	}
}

// emitContext prints the union of the context windows around hits,
// separating non-contiguous groups, including groups of different files.
func (s *searcher) emitContext(name string, lines []string, hits []int) {
	isHit := make(map[int]bool, len(hits))
	for _, h := range hits {
		isHit[h] = true
	}
	prev := -1
	for _, idx := range window(hits, len(lines), s.args.Before, s.args.After) {
		if (prev >= 0 && idx > prev+1) || (prev < 0 && s.grouped) {
			s.out = append(s.out, groupSeparator)
		}
		sep := byte('-')
		if isHit[idx] {
			sep = ':'
		}
		s.out = append(s.out, s.format(name, idx, lines[idx], sep))
		prev = idx
	}
	if prev >= 0 {
		s.grouped = true
	}
}

// window expands each hit into [hit-before, hit+after] clipped to [0, n)
// and returns the sorted union. hits must be ascending.
func window(hits []int, n, before, after int) []int {
	var out []int
	next := 0
	for _, h := range hits {
		lo := max(h-before, next)
		hi := min(h+after, n-1)
		for i := lo; i <= hi; i++ {
			out = append(out, i)
		}
		next = max(next, hi+1)
	}
	return out
}

func (s *searcher) format(name string, idx int, line string, sep byte) string {
	var b strings.Builder
	if s.withFilename {
		b.WriteString(name)
		b.WriteByte(sep)
	}
	if s.args.LineNumber {
		b.WriteString(strconv.Itoa(idx + 1))
		b.WriteByte(sep)
	}
	if s.maxLineLength > 0 && len(line) > s.maxLineLength {
		line = line[:s.maxLineLength] + "...[truncated]"
	}
	b.WriteString(line)
	return b.String()
}
