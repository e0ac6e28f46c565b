package vfs

import "strings"

// binarySampleSize is the number of bytes scanned for null bytes, matching
// git's heuristic.
const binarySampleSize = 8000

// IsBinaryContent checks if content bytes contain binary data by looking for null bytes.
// It handles UTF-16 and UTF-32 BOMs specially to avoid false positives.
func IsBinaryContent(content []byte) bool {
	if len(content) >= 2 {
		if (content[0] == 0xFF && content[1] == 0xFE) ||
			(content[0] == 0xFE && content[1] == 0xFF) {
			return false // UTF-16 BOM
		}
	}
	if len(content) >= 4 {
		if (content[0] == 0xFF && content[1] == 0xFE && content[2] == 0x00 && content[3] == 0x00) ||
			(content[0] == 0x00 && content[1] == 0x00 && content[2] == 0xFE && content[3] == 0xFF) {
			return false // UTF-32 BOM
		}
	}

	sampleSize := min(len(content), binarySampleSize)
	for i := range sampleSize {
		if content[i] == 0 {
			return true
		}
	}
	return false
}

// SplitLines splits content into lines, handling both \n and \r\n line endings.
// If the content ends with a newline sequence, it does NOT return a trailing empty string.
func SplitLines(content string) []string {
	var lines []string
	start := 0
	for i := 0; i < len(content); i++ {
		if content[i] == '\n' {
			lines = append(lines, content[start:i])
			start = i + 1
		} else if content[i] == '\r' && i+1 < len(content) && content[i+1] == '\n' {
			lines = append(lines, content[start:i])
			start = i + 2
			i++
		}
	}
	if start < len(content) {
		lines = append(lines, content[start:])
	}
	return lines
}

// JoinLines is the inverse of SplitLines for command output: lines joined
// by "\n" with no trailing newline.
func JoinLines(lines []string) string {
	return strings.Join(lines, "\n")
}
