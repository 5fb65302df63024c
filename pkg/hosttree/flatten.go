package hosttree

import "strings"

// Visible returns the non-search display list: a pre-order walk of the tree that
// descends into a node only when it is expanded. The result is in ascending line order.
func (t *Tree) Visible() []NodeID {
	out := make([]NodeID, 0, len(t.nodes))
	var walk func(ids []NodeID)
	walk = func(ids []NodeID) {
		for _, id := range ids {
			out = append(out, id)
			n := &t.nodes[id]
			if n.Expanded && !n.IsLeaf() {
				walk(n.Children)
			}
		}
	}
	walk(t.roots)
	return out
}

// Search returns, in source order, every leaf whose text contains keyword
// (case-insensitive). Groups never match. Expand state is ignored.
func (t *Tree) Search(keyword string) []NodeID {
	k := strings.ToLower(keyword)
	var out []NodeID
	for i := range t.nodes {
		n := &t.nodes[i]
		if !n.IsLeaf() {
			continue
		}
		if strings.Contains(strings.ToLower(n.Text), k) {
			out = append(out, NodeID(i))
		}
	}
	return out
}

// Lines returns the search results when searching, otherwise the visible tree.
func (t *Tree) Lines(keyword string, searching bool) []NodeID {
	if searching {
		return t.Search(keyword)
	}
	return t.Visible()
}

// Toggle flips a group between expanded and collapsed. Leaves are left alone.
func (t *Tree) Toggle(id NodeID) {
	n := t.Node(id)
	if n == nil || n.IsLeaf() {
		return
	}
	n.Expanded = !n.Expanded
}

// ExpandSubtree expands id and all of its descendants.
func (t *Tree) ExpandSubtree(id NodeID) { t.setSubtree(id, true) }

// CollapseSubtree collapses id and all of its descendants, so that re-expanding
// one level at a time reveals them collapsed as well.
func (t *Tree) CollapseSubtree(id NodeID) { t.setSubtree(id, false) }

func (t *Tree) setSubtree(id NodeID, expanded bool) {
	n := t.Node(id)
	if n == nil || n.IsLeaf() {
		return
	}
	stack := []NodeID{id}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		c := &t.nodes[cur]
		c.Expanded = expanded
		for i := len(c.Children) - 1; i >= 0; i-- {
			stack = append(stack, c.Children[i])
		}
	}
}

// ExpandAll expands every group.
func (t *Tree) ExpandAll() { t.setAll(true) }

// CollapseAll collapses every group.
func (t *Tree) CollapseAll() { t.setAll(false) }

func (t *Tree) setAll(expanded bool) {
	for i := range t.nodes {
		if !t.nodes[i].IsLeaf() {
			t.nodes[i].Expanded = expanded
		}
	}
}
