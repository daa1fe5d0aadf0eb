// Package vfs builds a one-shot, immutable snapshot of a directory tree
// with cheap parent/sibling/descendant traversal, so the scanner never
// has to re-stat the filesystem while it reasons about peer files.
package vfs

// NodeID indexes into a Tree's node slice. The first node inserted gets
// id 0, so the root that Walk returns always has id 0.
type NodeID int

type node[T any] struct {
	data        T
	parent      NodeID
	hasParent   bool
	firstChild  NodeID
	lastChild   NodeID
	hasChild    bool
	nextSibling NodeID
	hasNext     bool
}

// Tree is an append-only arena: once built it is never mutated, so handles
// into it (tree pointer + NodeID) are safe to copy and share freely.
type Tree[T any] struct {
	nodes []node[T]
}

func NewTree[T any]() *Tree[T] {
	return &Tree[T]{}
}

func (t *Tree[T]) Data(id NodeID) T {
	return t.nodes[id].data
}

func (t *Tree[T]) InsertRoot(data T) NodeID {
	id := NodeID(len(t.nodes))
	t.nodes = append(t.nodes, node[T]{data: data})
	return id
}

func (t *Tree[T]) InsertBelow(parent NodeID, data T) NodeID {
	id := NodeID(len(t.nodes))
	t.nodes = append(t.nodes, node[T]{data: data, parent: parent, hasParent: true})

	p := &t.nodes[parent]
	if p.hasChild {
		t.nodes[p.lastChild].nextSibling = id
		t.nodes[p.lastChild].hasNext = true
	} else {
		p.firstChild = id
		p.hasChild = true
	}
	p.lastChild = id
	return id
}

func (t *Tree[T]) Parent(id NodeID) (NodeID, bool) {
	n := t.nodes[id]
	return n.parent, n.hasParent
}

// Children returns the direct children of id, in insertion order.
func (t *Tree[T]) Children(id NodeID) []NodeID {
	var out []NodeID
	n := t.nodes[id]
	if !n.hasChild {
		return out
	}
	cur := n.firstChild
	for {
		out = append(out, cur)
		c := t.nodes[cur]
		if !c.hasNext {
			break
		}
		cur = c.nextSibling
	}
	return out
}

// Siblings returns every other child of id's parent, excluding id itself.
// A root node (no parent) has no siblings.
func (t *Tree[T]) Siblings(id NodeID) []NodeID {
	parent, ok := t.Parent(id)
	if !ok {
		return nil
	}
	var out []NodeID
	for _, c := range t.Children(parent) {
		if c != id {
			out = append(out, c)
		}
	}
	return out
}

// Descendants returns every node below id in breadth-first order.
func (t *Tree[T]) Descendants(id NodeID) []NodeID {
	queue := append([]NodeID(nil), t.Children(id)...)
	var out []NodeID
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		out = append(out, cur)
		queue = append(queue, t.Children(cur)...)
	}
	return out
}
