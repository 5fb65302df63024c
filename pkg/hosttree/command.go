package hosttree

import "strings"

// Command returns the connection command of a leaf line: everything before the
// first '#', trimmed.
func Command(text string) string {
	if i := strings.IndexByte(text, '#'); i >= 0 {
		text = text[:i]
	}
	return strings.TrimSpace(text)
}

// Comment returns the end-of-line comment of a leaf line without the '#', or "".
func Comment(text string) string {
	i := strings.IndexByte(text, '#')
	if i < 0 {
		return ""
	}
	return strings.TrimSpace(text[i+1:])
}

// Args splits a leaf's command into client arguments.
func Args(text string) []string {
	return strings.Fields(Command(text))
}
