package manager

import (
	"fmt"
	"io"
	"strings"

	"github.com/goccy/go-json"

	"sshgo/pkg/hosttree"
)

// WriteTree prints every node of the tree, regardless of expansion state, one per
// line with two spaces of indentation per level. Leaves show their command and
// source line; groups show their child count.
func WriteTree(w io.Writer, t *hosttree.Tree) error {
	if t == nil {
		return nil
	}
	for _, id := range t.Pool() {
		n := t.Node(id)
		indent := strings.Repeat("  ", n.Level)
		var err error
		if n.IsLeaf() {
			_, err = fmt.Fprintf(w, "%s%s\t(line %d)\n", indent, hosttree.Command(n.Text), n.Line)
		} else {
			_, err = fmt.Fprintf(w, "%s%s (%d)\n", indent, n.Text, len(n.Children))
		}
		if err != nil {
			return err
		}
	}
	return nil
}

type jsonNode struct {
	Text     string      `json:"text"`
	Line     int         `json:"line"`
	Level    int         `json:"level"`
	Expanded bool        `json:"expanded"`
	Command  string      `json:"command,omitempty"`
	Comment  string      `json:"comment,omitempty"`
	Children []*jsonNode `json:"children,omitempty"`
}

type jsonTree struct {
	Path   string      `json:"path,omitempty"`
	Nodes  int         `json:"nodes"`
	Leaves int         `json:"leaves"`
	Depth  int         `json:"depth"`
	Roots  []*jsonNode `json:"roots"`
}

// WriteTreeJSON prints the tree as nested JSON objects.
func WriteTreeJSON(w io.Writer, t *hosttree.Tree, path string) error {
	out := jsonTree{Path: path, Roots: []*jsonNode{}}
	if t != nil {
		out.Nodes = t.Len()
		out.Leaves = len(t.Leaves())
		out.Depth = t.Depth()
		for _, id := range t.Roots() {
			out.Roots = append(out.Roots, toJSONNode(t, id))
		}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func toJSONNode(t *hosttree.Tree, id hosttree.NodeID) *jsonNode {
	n := t.Node(id)
	jn := &jsonNode{
		Text:     n.Text,
		Line:     n.Line,
		Level:    n.Level,
		Expanded: n.Expanded,
	}
	if n.IsLeaf() {
		jn.Command = hosttree.Command(n.Text)
		jn.Comment = hosttree.Comment(n.Text)
		return jn
	}
	for _, c := range n.Children {
		jn.Children = append(jn.Children, toJSONNode(t, c))
	}
	return jn
}
