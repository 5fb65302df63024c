package manager

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sshgo/pkg/browser"
	"sshgo/pkg/hosttree"
)

const testHosts = `prod
  web01.example.com  # frontend
  web02.example.com
- staging
  stage01
misc -p 2222
`

func parseTestHosts(t *testing.T) *hosttree.Tree {
	t.Helper()
	tree, err := hosttree.Parse(strings.NewReader(testHosts), hosttree.ParseOptions{})
	require.NoError(t, err)
	return tree
}

func TestRowFor(t *testing.T) {
	tree := parseTestHosts(t)

	prod := rowFor(tree, 0, false, false)
	assert.Equal(t, rowParts{Prefix: "- ", Text: "prod", Count: "(2)"}, prod)

	web01 := rowFor(tree, 1, false, false)
	assert.Equal(t, rowParts{Prefix: "  o ", Text: "web01.example.com"}, web01)

	withComment := rowFor(tree, 1, false, true)
	assert.Equal(t, " # frontend", withComment.Comment)

	staging := rowFor(tree, 3, false, false)
	assert.Equal(t, "+ ", staging.Prefix)
	assert.Equal(t, "(1)", staging.Count)

	searching := rowFor(tree, 1, true, false)
	assert.Equal(t, "o ", searching.Prefix, "search mode drops indentation")
}

// splitColumns separates painted rows into content (trailing padding removed)
// and scrollbar glyphs.
func splitColumns(t *testing.T, out string, width int) (content, bar []string) {
	t.Helper()
	for _, l := range strings.Split(strings.TrimSuffix(out, "\n"), "\n") {
		r := []rune(l)
		require.Len(t, r, width-1, "row %q", l)
		content = append(content, strings.TrimRight(string(r[:width-2]), " "))
		bar = append(bar, string(r[width-2:]))
	}
	return content, bar
}

func TestRenderFrame_PlainTheme(t *testing.T) {
	tree := parseTestHosts(t)
	s := browser.NewSession(tree)

	out := renderFrame(tree, s.Frame(10), renderOptions{Width: 40, Height: 10})
	content, bar := splitColumns(t, out, 40)
	require.Len(t, content, 10)

	assert.Equal(t, "- prod(2)", content[0])
	assert.Equal(t, "  o web01.example.com", content[1])
	assert.Equal(t, "  o web02.example.com", content[2])
	assert.Equal(t, "+ staging(1)", content[3])
	assert.Equal(t, "o misc -p 2222", content[4])
	for _, l := range content[5:] {
		assert.Empty(t, l)
	}
	// Everything fits: the bar spans the page, the cursor mark sits near the top.
	assert.Equal(t, "^", bar[0])
	assert.Equal(t, "+", bar[1])
	assert.Equal(t, "|", bar[5])
	assert.Equal(t, "v", bar[9])
}

func TestRenderFrame_ShowComments(t *testing.T) {
	tree := parseTestHosts(t)
	s := browser.NewSession(tree)

	out := renderFrame(tree, s.Frame(10), renderOptions{Width: 40, Height: 10, ShowComments: true})
	content, _ := splitColumns(t, out, 40)
	assert.Equal(t, "  o web01.example.com # frontend", content[1])
}

func TestRenderFrame_NarrowWidthDropsBar(t *testing.T) {
	tree := parseTestHosts(t)
	s := browser.NewSession(tree)

	out := renderFrame(tree, s.Frame(2), renderOptions{Width: 2, Height: 2})
	assert.Equal(t, "- \n  \n", out)
}

func TestRenderFrame_ScrollBarColumn(t *testing.T) {
	tree := parseTestHosts(t)
	s := browser.NewSession(tree)

	// 5 visible rows in a 3-row viewport need a scrollbar.
	f := s.Frame(3)
	require.True(t, f.HasBar)
	out := renderFrame(tree, f, renderOptions{Width: 20, Height: 3})
	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	require.Len(t, lines, 3)
	for _, l := range lines {
		assert.Equal(t, 19, len([]rune(l)), "content padded to width-2 plus the bar glyph: %q", l)
	}
	assert.True(t, strings.HasSuffix(lines[0], "+"), "highlight mark on the first row: %q", lines[0])
}

func TestRenderFrame_TruncatesLongRows(t *testing.T) {
	tree := parseTestHosts(t)
	s := browser.NewSession(tree)

	out := renderFrame(tree, s.Frame(10), renderOptions{Width: 8, Height: 10})
	for _, l := range strings.Split(strings.TrimSuffix(out, "\n"), "\n") {
		assert.LessOrEqual(t, len([]rune(l)), 8, "row %q exceeds width", l)
	}
}

func TestRenderFrame_TinyAndEmptyViewports(t *testing.T) {
	tree := parseTestHosts(t)
	s := browser.NewSession(tree)

	assert.NotPanics(t, func() {
		for w := 0; w <= 4; w++ {
			for h := 0; h <= 3; h++ {
				_ = renderFrame(tree, s.Frame(h), renderOptions{Width: w, Height: h})
			}
		}
	})

	empty := browser.NewSession(nil)
	out := renderFrame(empty.Tree(), empty.Frame(4), renderOptions{Width: 20, Height: 4})
	assert.Equal(t, "\n\n\n\n", out)
}

func TestScrollGlyphPrecedence(t *testing.T) {
	sb := browser.ScrollBar{Top: 0, Bottom: 0, Highlight: 0}
	assert.Equal(t, "+", scrollGlyph(0, sb))

	sb = browser.ScrollBar{Top: 1, Bottom: 1, Highlight: 3}
	assert.Equal(t, "v", scrollGlyph(1, sb))
	assert.Equal(t, "|", scrollGlyph(2, sb))
	assert.Equal(t, "+", scrollGlyph(3, sb))
}

func TestFit(t *testing.T) {
	assert.Equal(t, "", fit("prod", 0, "…"))
	assert.Equal(t, "p", fit("prod", 1, "…"))
	assert.Equal(t, "pr…", fit("prod", 3, "…"))
	assert.Equal(t, "prod", fit("prod", 4, "…"))
}
