package hosttree

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func mustParse(t *testing.T, src string) *Tree {
	t.Helper()
	tr, err := Parse(strings.NewReader(src), ParseOptions{})
	require.NoError(t, err)
	return tr
}

func texts(tr *Tree, ids []NodeID) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, tr.Node(id).Text)
	}
	return out
}

func TestParse_TwoSpaceScenario(t *testing.T) {
	tr := mustParse(t, "a\n  b\n  - c\n    d\n")

	require.Len(t, tr.Roots(), 1)
	a := tr.Node(tr.Roots()[0])
	assert.Equal(t, "a", a.Text)
	assert.Equal(t, 0, a.Level)
	assert.True(t, a.Expanded)

	require.Len(t, a.Children, 2)
	b := tr.Node(a.Children[0])
	c := tr.Node(a.Children[1])
	assert.Equal(t, "b", b.Text)
	assert.Equal(t, 1, b.Level)
	assert.True(t, b.Expanded)
	assert.Equal(t, "c", c.Text)
	assert.Equal(t, 1, c.Level)
	assert.False(t, c.Expanded)

	require.Len(t, c.Children, 1)
	d := tr.Node(c.Children[0])
	assert.Equal(t, "d", d.Text)
	assert.Equal(t, 2, d.Level)
	assert.True(t, d.IsLeaf())
}

func TestParse_FourSpacesTabsAndComments(t *testing.T) {
	src := strings.Join([]string{
		"# hosts",
		"prod",
		"",
		"    web",
		"\t\tdeploy@web1   # primary",
		"        deploy@web2",
		"    # nested comment",
		"    - db",
		"\t    dba@db1",
		"lab",
	}, "\n")
	tr := mustParse(t, src)

	pool := tr.Pool()
	assert.Equal(t, []string{"prod", "web", "deploy@web1   # primary", "deploy@web2", "db", "dba@db1", "lab"}, texts(tr, pool))

	var lines, levels []int
	for _, id := range pool {
		lines = append(lines, tr.Node(id).Line)
		levels = append(levels, tr.Node(id).Level)
	}
	assert.Equal(t, []int{2, 4, 5, 6, 8, 9, 10}, lines)
	assert.Equal(t, []int{0, 1, 2, 2, 1, 2, 0}, levels)
	assert.Equal(t, 3, tr.Depth())
	assert.Equal(t, []string{"prod", "db"}, tr.Path(pool[5]))
}

func TestParse_MixedIndentIsSummed(t *testing.T) {
	// One tab plus one four-space run is level 2.
	tr := mustParse(t, "a\n\tb\n\t    c\n")
	c := tr.Node(2)
	assert.Equal(t, 2, c.Level)
	assert.Equal(t, NodeID(1), c.Parent)
}

func TestParse_StrictRejectsMixedIndent(t *testing.T) {
	_, err := Parse(strings.NewReader("a\n\tb\n\t    c\n"), ParseOptions{Strict: true})
	var mie *MalformedIndentError
	require.ErrorAs(t, err, &mie)
	assert.Equal(t, 3, mie.Line)
}

func TestParse_StrictRejectsRaggedSpaces(t *testing.T) {
	_, err := Parse(strings.NewReader("a\n    b\n      c\n"), ParseOptions{Strict: true})
	var mie *MalformedIndentError
	require.ErrorAs(t, err, &mie)
	assert.Equal(t, 3, mie.Line)
}

func TestParse_ExplicitIndentWidth(t *testing.T) {
	tr, err := Parse(strings.NewReader("a\n  b\n    c\n"), ParseOptions{IndentWidth: 4})
	require.NoError(t, err)
	// With a four-space unit "  b" is a sibling of a and "    c" its child.
	assert.Equal(t, []string{"a", "b"}, texts(tr, tr.Roots()))
	assert.Equal(t, []string{"c"}, texts(tr, tr.Node(1).Children))
}

func TestParse_LevelJumpRejected(t *testing.T) {
	_, err := Parse(strings.NewReader("a\n    b\n\n            c\n"), ParseOptions{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMalformedIndent))

	var mie *MalformedIndentError
	require.ErrorAs(t, err, &mie)
	assert.Equal(t, 4, mie.Line)
	assert.Equal(t, 3, mie.Level)
	assert.Equal(t, 1, mie.Previous)
}

func TestParse_FirstEntryIndentedRejected(t *testing.T) {
	tr, err := Parse(strings.NewReader("# c\n    a\n"), ParseOptions{})
	assert.Nil(t, tr)
	var mie *MalformedIndentError
	require.ErrorAs(t, err, &mie)
	assert.Equal(t, 2, mie.Line)
	assert.Contains(t, mie.Error(), "line: 2")
}

func TestParse_CollapsedMarker(t *testing.T) {
	tr := mustParse(t, "- group\n    leaf\n-notmarker\n")
	g := tr.Node(0)
	assert.Equal(t, "group", g.Text)
	assert.False(t, g.Expanded)
	assert.Equal(t, "-notmarker", tr.Node(2).Text)
	assert.True(t, tr.Node(2).Expanded)
}

func TestParse_EmptyInput(t *testing.T) {
	tr := mustParse(t, "\n# only comments\n\n")
	assert.Equal(t, 0, tr.Len())
	assert.Empty(t, tr.Visible())
	assert.Empty(t, tr.Search(""))
	assert.Equal(t, 0, tr.Depth())
}

func TestParse_CRLF(t *testing.T) {
	tr := mustParse(t, "a\r\n    b\r\n")
	assert.Equal(t, []string{"a", "b"}, texts(tr, tr.Pool()))
	assert.Equal(t, 1, tr.Node(1).Level)
}

func TestParseFile_NotFound(t *testing.T) {
	_, err := ParseFile(filepath.Join(t.TempDir(), "missing"), ParseOptions{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrConfigNotFound))
}

func TestParseFile_WrapsMalformedIndent(t *testing.T) {
	p := filepath.Join(t.TempDir(), "hosts")
	require.NoError(t, os.WriteFile(p, []byte("a\n\t\tb\n"), 0o600))

	_, err := ParseFile(p, ParseOptions{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMalformedIndent))
	assert.Contains(t, err.Error(), p)
}

// genHosts draws a valid hosts file and returns it with the level of every entry.
func genHosts(t *rapid.T) (string, []int) {
	n := rapid.IntRange(0, 40).Draw(t, "n")
	var b strings.Builder
	var levels []int
	prev := -1
	for i := 0; i < n; i++ {
		if rapid.IntRange(0, 5).Draw(t, "noise") == 0 {
			if rapid.Bool().Draw(t, "blank") {
				b.WriteString("\n")
			} else {
				b.WriteString("  # comment\n")
			}
		}
		level := 0
		if prev >= 0 {
			level = rapid.IntRange(0, prev+1).Draw(t, "level")
		}
		indent := ""
		for l := 0; l < level; l++ {
			if rapid.Bool().Draw(t, "tab") {
				indent += "\t"
			} else {
				indent += "    "
			}
		}
		marker := ""
		if rapid.IntRange(0, 3).Draw(t, "marker") == 0 {
			marker = "- "
		}
		fmt.Fprintf(&b, "%s%shost%d\n", indent, marker, i)
		levels = append(levels, level)
		prev = level
	}
	return b.String(), levels
}

func TestParse_Properties(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		src, levels := genHosts(t)
		tr, err := Parse(strings.NewReader(src), ParseOptions{IndentWidth: 4})
		if err != nil {
			t.Fatalf("parse: %v", err)
		}
		if tr.Len() != len(levels) {
			t.Fatalf("expected %d nodes, got %d", len(levels), tr.Len())
		}

		again, err := Parse(strings.NewReader(src), ParseOptions{IndentWidth: 4})
		if err != nil {
			t.Fatalf("reparse: %v", err)
		}

		lastLine := 0
		for _, id := range tr.Pool() {
			n := tr.Node(id)
			if n.Level != levels[id] {
				t.Fatalf("node %d: level %d, want %d", id, n.Level, levels[id])
			}
			if n.Line <= lastLine {
				t.Fatalf("line numbers not increasing at node %d", id)
			}
			lastLine = n.Line

			m := again.Node(id)
			if m.Line != n.Line || m.Parent != n.Parent || m.Expanded != n.Expanded || len(m.Children) != len(n.Children) {
				t.Fatalf("reparse differs at node %d", id)
			}

			if n.Parent == Root {
				if n.Level != 0 {
					t.Fatalf("root child %d has level %d", id, n.Level)
				}
				continue
			}
			p := tr.Node(n.Parent)
			if p.Level != n.Level-1 || p.Line >= n.Line {
				t.Fatalf("bad parent for node %d", id)
			}
		}

		tr.ExpandAll()
		vis := tr.Visible()
		if len(vis) != tr.Len() {
			t.Fatalf("expanded tree shows %d of %d nodes", len(vis), tr.Len())
		}
		for i, id := range vis {
			if id != NodeID(i) {
				t.Fatalf("visible order differs from source order at %d", i)
			}
		}
	})
}

func TestParse_LevelJumpProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		src, levels := genHosts(t)
		prev := 0
		if len(levels) > 0 {
			prev = levels[len(levels)-1]
		}
		jump := prev + rapid.IntRange(2, 4).Draw(t, "jump")
		if len(levels) == 0 {
			jump = rapid.IntRange(1, 3).Draw(t, "first")
		}
		src += strings.Repeat("\t", jump) + "bad\n"
		wantLine := strings.Count(src, "\n")

		tr, err := Parse(strings.NewReader(src), ParseOptions{IndentWidth: 4})
		if tr != nil {
			t.Fatalf("expected no tree on malformed input")
		}
		var mie *MalformedIndentError
		if !errors.As(err, &mie) {
			t.Fatalf("expected MalformedIndentError, got %v", err)
		}
		if mie.Line != wantLine {
			t.Fatalf("expected line %d, got %d", wantLine, mie.Line)
		}
	})
}
