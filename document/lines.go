package document

import "strings"

// SplitLines splits text after every '\n'. Each line keeps its terminator
// ("\n" or "\r\n"); a trailing unterminated piece is kept as the last line.
// Concatenating the result reproduces text exactly. Empty text yields nil.
func SplitLines(text string) []string {
	if text == "" {
		return nil
	}
	lines := make([]string, 0, strings.Count(text, "\n")+1)
	for len(text) > 0 {
		i := strings.IndexByte(text, '\n')
		if i < 0 {
			lines = append(lines, text)
			break
		}
		lines = append(lines, text[:i+1])
		text = text[i+1:]
	}
	return lines
}
