package wm

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTreeClient(w, h int) *Client {
	return &Client{Box: Rect{W: w, H: h}, node: nilNode}
}

// validateTree checks the leaf-xor-internal invariant and that every
// back-pointer is consistent with its owner.
func validateTree(t *testing.T, tr *Tree) {
	t.Helper()
	if tr.root == nilNode {
		return
	}
	require.Equal(t, nilNode, tr.nodes[tr.root].parent)

	var walk func(id nodeID)
	walk = func(id nodeID) {
		n := tr.nodes[id]
		if n.leaf() {
			require.Equal(t, nilNode, n.left)
			require.Equal(t, nilNode, n.right)
			require.Equal(t, id, n.client.node)
			return
		}
		require.Nil(t, n.client)
		require.NotEqual(t, nilNode, n.left)
		require.NotEqual(t, nilNode, n.right)
		require.Equal(t, id, tr.nodes[n.left].parent)
		require.Equal(t, id, tr.nodes[n.right].parent)
		walk(n.left)
		walk(n.right)
	}
	walk(tr.root)
}

func treeShape(tr *Tree, id nodeID) string {
	n := tr.nodes[id]
	if n.leaf() {
		return fmt.Sprintf("leaf(%p)", n.client)
	}
	return fmt.Sprintf("(%s %d %s %s)", n.axis, n.ratio, treeShape(tr, n.left), treeShape(tr, n.right))
}

func TestTreeInsertRemove(t *testing.T) {
	tr := NewTree()
	var clients []*Client

	for i := 0; i < 6; i++ {
		c := newTreeClient(100+i, 50)
		at := nilNode
		if !tr.Empty() {
			at = tr.FirstLeaf(tr.root)
		}
		tr.Insert(at, c)
		clients = append(clients, c)

		assert.Len(t, tr.Clients(), i+1)
		validateTree(t, tr)
	}

	for i, c := range clients {
		tr.Remove(c.node)
		assert.Equal(t, nilNode, c.node)
		assert.Len(t, tr.Clients(), len(clients)-i-1)
		validateTree(t, tr)
	}
	assert.True(t, tr.Empty())
}

func TestTreeInsertAxisFollowsDemotedShape(t *testing.T) {
	tr := NewTree()
	wide := newTreeClient(200, 100)
	tr.Insert(nilNode, wide)
	tr.Insert(wide.node, newTreeClient(0, 0))
	assert.Equal(t, AxisVertical, tr.nodes[tr.root].axis)

	tr = NewTree()
	tall := newTreeClient(100, 200)
	tr.Insert(nilNode, tall)
	tr.Insert(tall.node, newTreeClient(0, 0))
	assert.Equal(t, AxisHorizontal, tr.nodes[tr.root].axis)
}

func TestTreeInsertThenRemoveRestoresShape(t *testing.T) {
	tr := NewTree()
	a := newTreeClient(100, 50)
	b := newTreeClient(100, 50)
	c := newTreeClient(100, 50)
	tr.Insert(nilNode, a)
	tr.Insert(a.node, b)
	tr.Insert(b.node, c)
	before := treeShape(tr, tr.root)

	d := newTreeClient(100, 50)
	tr.Insert(a.node, d)
	require.NotEqual(t, before, treeShape(tr, tr.root))
	tr.Remove(d.node)

	assert.Equal(t, before, treeShape(tr, tr.root))
	validateTree(t, tr)
}

func TestTreeFindSiblingRoundTrip(t *testing.T) {
	tr := NewTree()
	var clients []*Client
	for i := 0; i < 5; i++ {
		c := newTreeClient(100, 50)
		at := nilNode
		if !tr.Empty() {
			at = clients[i-1].node
		}
		tr.Insert(at, c)
		clients = append(clients, c)
	}

	for _, c := range clients {
		next := tr.FindSibling(c.node, CycleNext)
		if next == nilNode {
			continue
		}
		assert.Equal(t, c.node, tr.FindSibling(next, CyclePrev))
	}

	// The leftmost leaf has no previous sibling, the rightmost no next.
	first := tr.FirstLeaf(tr.root)
	assert.Equal(t, nilNode, tr.FindSibling(first, CyclePrev))
}

func TestTreeLeafOrder(t *testing.T) {
	tr := NewTree()
	a := newTreeClient(100, 50)
	b := newTreeClient(100, 50)
	c := newTreeClient(100, 50)
	tr.Insert(nilNode, a)
	tr.Insert(a.node, b)
	tr.Insert(b.node, c)

	assert.Equal(t, []*Client{a, b, c}, tr.Clients())
}

func TestTreeRecalculateConservesArea(t *testing.T) {
	tr := NewTree()
	var clients []*Client
	for i := 0; i < 7; i++ {
		c := newTreeClient(100+13*i, 90+7*i)
		at := nilNode
		if !tr.Empty() {
			at = tr.FirstLeaf(tr.root)
			if i%2 == 0 {
				at = clients[i-1].node
			}
		}
		tr.Insert(at, c)
		clients = append(clients, c)
	}
	// Uneven ratios force rounding.
	tr.nodes[tr.root].ratio = 33

	root := Rect{X: 5, Y: 7, W: 1013, H: 771}
	sum := 0
	for _, p := range tr.Recalculate(root, 0) {
		sum += p.Box.Area()
	}
	assert.Equal(t, root.Area(), sum)
}

func TestTreeSwapKeepsTopology(t *testing.T) {
	tr := NewTree()
	a := newTreeClient(100, 50)
	b := newTreeClient(100, 50)
	tr.Insert(nilNode, a)
	tr.Insert(a.node, b)

	left, right := tr.nodes[tr.root].left, tr.nodes[tr.root].right
	tr.Swap(a.node, b.node)

	assert.Equal(t, left, tr.nodes[tr.root].left)
	assert.Equal(t, right, tr.nodes[tr.root].right)
	assert.Same(t, b, tr.nodes[left].client)
	assert.Same(t, a, tr.nodes[right].client)
	validateTree(t, tr)
}

func TestTreeRotate(t *testing.T) {
	tr := NewTree()
	a := newTreeClient(200, 100)
	b := newTreeClient(100, 50)
	tr.Insert(nilNode, a)
	tr.Insert(a.node, b)
	require.Equal(t, AxisVertical, tr.nodes[tr.root].axis)
	left := tr.nodes[tr.root].left

	tr.Rotate(tr.root)
	assert.Equal(t, AxisHorizontal, tr.nodes[tr.root].axis)
	assert.Equal(t, left, tr.nodes[tr.root].left)

	// Rotating a horizontal split swaps the children too.
	tr.Rotate(tr.root)
	assert.Equal(t, AxisVertical, tr.nodes[tr.root].axis)
	assert.NotEqual(t, left, tr.nodes[tr.root].left)
	validateTree(t, tr)
}
