package text

import (
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/pflag"

	"github.com/Cyclone1070/vsh/internal/shell/command"
	"github.com/Cyclone1070/vsh/internal/vfs"
)

// Sort sorts lines.
func Sort() command.Command {
	return filter{
		name:        "sort",
		description: "Sort lines",
		flags: func(fs *pflag.FlagSet) func([]string) (string, error) {
			reverse := fs.BoolP("reverse", "r", false, "")
			numeric := fs.BoolP("numeric-sort", "n", false, "")
			unique := fs.BoolP("unique", "u", false, "")
			return func(lines []string) (string, error) {
				less := func(a, b string) bool { return a < b }
				if *numeric {
					less = func(a, b string) bool {
						x, y := leadingNumber(a), leadingNumber(b)
						if x != y {
							return x < y
						}
						return a < b
					}
				}
				sorted := append([]string(nil), lines...)
				sort.SliceStable(sorted, func(i, j int) bool {
					if *reverse {
						return less(sorted[j], sorted[i])
					}
					return less(sorted[i], sorted[j])
				})
				if *unique {
					sorted = dedupe(sorted, func(a, b string) bool { return a == b })
				}
				return vfs.JoinLines(sorted), nil
			}
		},
	}.command()
}

// leadingNumber parses the numeric prefix of s; lines without one sort as 0.
func leadingNumber(s string) float64 {
	s = strings.TrimSpace(s)
	end := 0
	for end < len(s) && (s[end] >= '0' && s[end] <= '9' || s[end] == '.' || (end == 0 && s[end] == '-')) {
		end++
	}
	f, err := strconv.ParseFloat(s[:end], 64)
	if err != nil {
		return 0
	}
	return f
}

func dedupe(lines []string, equal func(a, b string) bool) []string {
	var out []string
	for i, line := range lines {
		if i > 0 && equal(line, lines[i-1]) {
			continue
		}
		out = append(out, line)
	}
	return out
}
