package manager

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"sshgo/pkg/browser"
	"sshgo/pkg/hosttree"
)

// renderOptions controls how rows are painted.
type renderOptions struct {
	Width        int
	Height       int // rows available for the list
	ShowComments bool
	Theme        Theme
}

// rowParts is a display row split into the pieces that get different styles.
type rowParts struct {
	Prefix  string // indentation + marker + space
	Text    string
	Count   string // "(N)" for groups
	Comment string
}

// rowFor builds the plain pieces of one row. Indentation is dropped in search mode.
func rowFor(tree *hosttree.Tree, id hosttree.NodeID, searching, showComments bool) rowParts {
	n := tree.Node(id)
	var prefix strings.Builder
	if !searching {
		prefix.WriteString(strings.Repeat("  ", n.Level))
	}
	switch {
	case n.IsLeaf():
		prefix.WriteString("o")
	case n.Expanded:
		prefix.WriteString("-")
	default:
		prefix.WriteString("+")
	}
	prefix.WriteString(" ")

	r := rowParts{Prefix: prefix.String()}
	if n.IsLeaf() {
		r.Text = hosttree.Command(n.Text)
		if showComments {
			if c := hosttree.Comment(n.Text); c != "" {
				r.Comment = " # " + c
			}
		}
		return r
	}
	r.Text = n.Text
	r.Count = fmt.Sprintf("(%d)", len(n.Children))
	return r
}

// renderFrame paints the list area: one line per viewport row, each followed by
// the scrollbar column. An empty display list paints an empty frame.
func renderFrame(tree *hosttree.Tree, f browser.Frame, o renderOptions) string {
	if o.Height <= 0 || len(f.Lines) == 0 {
		return strings.Repeat("\n", max(o.Height, 0))
	}

	barCol := o.Width >= 3 && f.HasBar
	contentWidth := o.Width
	if barCol {
		contentWidth = o.Width - 2
	}

	var b strings.Builder
	for row := 0; row < o.Height; row++ {
		idx := f.Start + row
		line := ""
		if idx < f.End {
			highlighted := row == f.Viewport.Highlight
			line = renderRow(rowFor(tree, f.Lines[idx], f.Searching, o.ShowComments), highlighted, contentWidth, o.Theme)
		}
		if barCol {
			pad := contentWidth - lipgloss.Width(line)
			if pad > 0 {
				line += strings.Repeat(" ", pad)
			}
			line += o.Theme.ScrollBar.Render(scrollGlyph(row, f.ScrollBar))
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}

func scrollGlyph(row int, sb browser.ScrollBar) string {
	switch row {
	case sb.Highlight:
		return "+"
	case sb.Bottom:
		return "v"
	case sb.Top:
		return "^"
	}
	return "|"
}

// renderRow truncates the row to width and applies the theme.
func renderRow(r rowParts, highlighted bool, width int, th Theme) string {
	if width <= 0 {
		return ""
	}
	prefix := runewidth.Truncate(r.Prefix, width, "")
	rest := width - runewidth.StringWidth(prefix)

	text := fit(r.Text, rest, "…")
	rest -= runewidth.StringWidth(text)
	count := fit(r.Count, rest, "")
	rest -= runewidth.StringWidth(count)
	comment := fit(r.Comment, rest, "…")

	markerStyle, textStyle := th.Marker, th.Text
	if highlighted {
		markerStyle, textStyle = th.MarkerHighlight, th.Highlight
	}
	var b strings.Builder
	b.WriteString(markerStyle.Render(prefix))
	b.WriteString(textStyle.Render(text))
	if count != "" {
		if highlighted {
			b.WriteString(textStyle.Render(count))
		} else {
			b.WriteString(th.Count.Render(count))
		}
	}
	if comment != "" {
		b.WriteString(th.Comment.Render(comment))
	}
	return b.String()
}

// fit truncates s to w cells. The tail is dropped when it would not fit itself.
func fit(s string, w int, tail string) string {
	if w <= 0 {
		return ""
	}
	if runewidth.StringWidth(tail) >= w {
		tail = ""
	}
	return runewidth.Truncate(s, w, tail)
}
