package hosttree

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"
)

var (
	// ErrConfigNotFound is returned by ParseFile when the hosts file does not exist.
	ErrConfigNotFound = errors.New("hosts file not found")

	// ErrMalformedIndent matches every *MalformedIndentError via errors.Is.
	ErrMalformedIndent = errors.New("invalid indent")
)

// MalformedIndentError reports the first line whose indentation breaks the level rules.
type MalformedIndentError struct {
	Line     int
	Level    int
	Previous int // level of the previous accepted entry, -1 for the first entry
	Reason   string
}

func (e *MalformedIndentError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("invalid indent, line: %d (%s)", e.Line, e.Reason)
	}
	return fmt.Sprintf("invalid indent, line: %d", e.Line)
}

func (e *MalformedIndentError) Is(target error) bool { return target == ErrMalformedIndent }

// ParseOptions tunes how indentation is turned into levels.
type ParseOptions struct {
	// IndentWidth is the number of spaces per level. 0 detects it: 2 when the first
	// space-indented entry uses exactly two spaces, otherwise 4.
	IndentWidth int

	// Strict rejects lines that mix tabs and spaces or whose space run is not a
	// multiple of the indent width. By default both are tolerated and levels from
	// tabs and space runs are summed.
	Strict bool
}

const defaultIndentWidth = 4

// ParseFile reads and parses the hosts file at path.
func ParseFile(path string, opts ParseOptions) (*Tree, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", path, ErrConfigNotFound)
		}
		return nil, fmt.Errorf("open hosts file: %w", err)
	}
	defer f.Close()

	t, err := Parse(f, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

// Parse builds a tree from indentation-encoded lines.
//
// Blank lines and lines starting with '#' produce no node but still count toward
// line numbers. The first entry must be at level 0 and each later entry may go
// at most one level deeper than the previous one. A violation fails the whole
// parse with a *MalformedIndentError.
func Parse(r io.Reader, opts ParseOptions) (*Tree, error) {
	lines, err := readLines(r)
	if err != nil {
		return nil, fmt.Errorf("read hosts: %w", err)
	}

	width := opts.IndentWidth
	if width <= 0 {
		width = detectIndentWidth(lines)
	}
	unit := strings.Repeat(" ", width)

	t := &Tree{}
	// open[L] is the most recent entry at level L on the current right edge.
	var open []NodeID
	prev := -1

	for i, raw := range lines {
		lineNo := i + 1
		text := strings.TrimSpace(raw)
		if text == "" || text[0] == '#' {
			continue
		}

		indent := leadingIndent(raw)
		tabs := strings.Count(indent, "\t")
		spaces := len(indent) - tabs
		if opts.Strict {
			if tabs > 0 && spaces > 0 {
				return nil, &MalformedIndentError{Line: lineNo, Previous: prev, Reason: "mixed tabs and spaces"}
			}
			if spaces%width != 0 {
				return nil, &MalformedIndentError{Line: lineNo, Previous: prev, Reason: fmt.Sprintf("indent is not a multiple of %d spaces", width)}
			}
		}
		level := strings.Count(indent, unit) + tabs

		if prev < 0 && level != 0 {
			return nil, &MalformedIndentError{Line: lineNo, Level: level, Previous: prev, Reason: "first entry must not be indented"}
		}
		if prev >= 0 && level > prev+1 {
			return nil, &MalformedIndentError{Line: lineNo, Level: level, Previous: prev, Reason: fmt.Sprintf("level %d follows level %d", level, prev)}
		}

		expanded := true
		if strings.HasPrefix(text, "- ") {
			text = strings.TrimSpace(text[2:])
			expanded = false
		}

		parent := Root
		if level > 0 {
			parent = open[level-1]
		}
		id := t.add(Node{
			Level:    level,
			Line:     lineNo,
			Text:     text,
			Expanded: expanded,
			Parent:   parent,
		})
		open = append(open[:level], id)
		prev = level
	}
	return t, nil
}

func readLines(r io.Reader) ([]string, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	var out []string
	for sc.Scan() {
		out = append(out, strings.TrimRight(sc.Text(), "\r"))
	}
	return out, sc.Err()
}

func leadingIndent(s string) string {
	i := 0
	for i < len(s) && (s[i] == ' ' || s[i] == '\t') {
		i++
	}
	return s[:i]
}

// detectIndentWidth looks at the first entry indented purely with spaces.
func detectIndentWidth(lines []string) int {
	for _, raw := range lines {
		text := strings.TrimSpace(raw)
		if text == "" || text[0] == '#' {
			continue
		}
		indent := leadingIndent(raw)
		if indent == "" {
			continue
		}
		if strings.ContainsRune(indent, '\t') {
			continue
		}
		if len(indent) == 2 {
			return 2
		}
		return defaultIndentWidth
	}
	return defaultIndentWidth
}
