// Package hosttree parses the indentation-encoded hosts file into an ordered tree
// and derives the flattened display lists the browser navigates.
//
// Example hosts file:
//
//	# comments and blank lines are ignored
//	production
//	    web
//	        deploy@web1.example.com
//	        deploy@web2.example.com -p 2222   # behind the LB
//	    - databases
//	        dba@db1.example.com
//	lab
//	    root@10.0.0.7
//
// Groups prefixed with "- " start collapsed. Leaves are connection targets.
package hosttree

// NodeID addresses a node in the tree's arena. IDs are dense, start at 0 and follow
// source order.
type NodeID int

// Root addresses the synthetic root that owns every level-0 node. It is never displayed.
const Root NodeID = -1

// Node is one accepted line of the hosts file.
type Node struct {
	// Level is the indentation depth (0 for top-level entries).
	Level int
	// Line is the 1-based raw source line the node was read from.
	Line int
	// Text is the trimmed content with any leading "- " marker removed.
	Text string
	// Expanded controls whether children are shown in the non-search display list.
	Expanded bool

	Parent   NodeID
	Children []NodeID
}

// IsLeaf reports whether the node has no children. Leaves are connection targets.
func (n *Node) IsLeaf() bool { return len(n.Children) == 0 }

// Tree is an arena of nodes in source order plus the synthetic root's children.
//
// The arena doubles as the node pool: whole-tree operations (expand-all, search)
// scan it directly instead of walking the tree.
type Tree struct {
	nodes []Node
	roots []NodeID
}

// Len returns the number of nodes in the tree.
func (t *Tree) Len() int { return len(t.nodes) }

// Node returns the node for id, or nil when id is Root or out of range.
func (t *Tree) Node(id NodeID) *Node {
	if id < 0 || int(id) >= len(t.nodes) {
		return nil
	}
	return &t.nodes[id]
}

// Roots returns the top-level nodes in source order.
func (t *Tree) Roots() []NodeID { return t.roots }

// Children returns the children of id. Children(Root) returns the top-level nodes.
func (t *Tree) Children(id NodeID) []NodeID {
	if id == Root {
		return t.roots
	}
	if n := t.Node(id); n != nil {
		return n.Children
	}
	return nil
}

// Pool returns every node id in source order.
func (t *Tree) Pool() []NodeID {
	out := make([]NodeID, len(t.nodes))
	for i := range t.nodes {
		out[i] = NodeID(i)
	}
	return out
}

// Leaves returns every leaf in source order.
func (t *Tree) Leaves() []NodeID {
	var out []NodeID
	for i := range t.nodes {
		if t.nodes[i].IsLeaf() {
			out = append(out, NodeID(i))
		}
	}
	return out
}

// Depth returns the deepest level present plus one (0 for an empty tree).
func (t *Tree) Depth() int {
	d := 0
	for i := range t.nodes {
		if t.nodes[i].Level+1 > d {
			d = t.nodes[i].Level + 1
		}
	}
	return d
}

// Path returns the texts of id's ancestors, outermost first. The node itself is not included.
func (t *Tree) Path(id NodeID) []string {
	var rev []string
	n := t.Node(id)
	for n != nil && n.Parent != Root {
		p := t.Node(n.Parent)
		if p == nil {
			break
		}
		rev = append(rev, p.Text)
		n = p
	}
	out := make([]string, len(rev))
	for i := range rev {
		out[i] = rev[len(rev)-1-i]
	}
	return out
}

func (t *Tree) add(n Node) NodeID {
	id := NodeID(len(t.nodes))
	t.nodes = append(t.nodes, n)
	if n.Parent == Root {
		t.roots = append(t.roots, id)
	} else {
		p := &t.nodes[n.Parent]
		p.Children = append(p.Children, id)
	}
	return id
}
