package wm

// Tree is the binary space partition of one desktop's clients. Nodes live in
// an arena addressed by stable indices so parent back-references stay cheap
// and safe; a node is either a leaf holding exactly one client or an
// internal split holding exactly two children.
type Tree struct {
	nodes []node
	free  []nodeID
	root  nodeID
}

type nodeID int

const nilNode nodeID = -1

type node struct {
	parent nodeID
	left   nodeID
	right  nodeID
	client *Client
	axis   Axis
	ratio  int
}

func (n *node) leaf() bool { return n.client != nil }

func NewTree() *Tree {
	return &Tree{root: nilNode}
}

func (t *Tree) Empty() bool { return t.root == nilNode }

func (t *Tree) alloc() nodeID {
	if n := len(t.free); n > 0 {
		id := t.free[n-1]
		t.free = t.free[:n-1]
		t.nodes[id] = node{parent: nilNode, left: nilNode, right: nilNode}
		return id
	}
	t.nodes = append(t.nodes, node{parent: nilNode, left: nilNode, right: nilNode})
	return nodeID(len(t.nodes) - 1)
}

func (t *Tree) release(id nodeID) {
	t.nodes[id] = node{parent: nilNode, left: nilNode, right: nilNode}
	t.free = append(t.free, id)
}

// Insert places c into the tree at the leaf id. An empty tree ignores id and
// makes c the sole leaf. Otherwise the leaf's occupant is demoted to a new
// left child and c becomes the new right child of a fresh split with ratio
// 50, vertical unless the demoted client is taller than wide.
func (t *Tree) Insert(id nodeID, c *Client) nodeID {
	if t.root == nilNode {
		root := t.alloc()
		t.nodes[root].client = c
		c.node = root
		t.root = root
		return root
	}

	if !t.nodes[id].leaf() {
		panic("wm: insert target is not a leaf")
	}

	demoted := t.nodes[id].client
	left := t.alloc()
	right := t.alloc()
	t.nodes[left] = node{parent: id, left: nilNode, right: nilNode, client: demoted}
	demoted.node = left
	t.nodes[right] = node{parent: id, left: nilNode, right: nilNode, client: c}
	c.node = right

	n := &t.nodes[id]
	n.client = nil
	n.left = left
	n.right = right
	n.ratio = 50
	n.axis = AxisVertical
	if demoted.Box.W < demoted.Box.H {
		n.axis = AxisHorizontal
	}
	return right
}

// Remove deletes the leaf id. Removing the root empties the tree; otherwise
// the sibling's content is promoted into the parent slot and both the
// sibling shell and the removed node are released.
func (t *Tree) Remove(id nodeID) {
	if c := t.nodes[id].client; c != nil {
		c.node = nilNode
	}
	if id == t.root {
		t.root = nilNode
		t.release(id)
		return
	}

	p := t.nodes[id].parent
	sib := t.nodes[p].left
	if sib == id {
		sib = t.nodes[p].right
	}

	s := t.nodes[sib]
	pn := &t.nodes[p]
	pn.client = s.client
	pn.left = s.left
	pn.right = s.right
	pn.axis = s.axis
	pn.ratio = s.ratio
	if s.client != nil {
		s.client.node = p
	}
	if s.left != nilNode {
		t.nodes[s.left].parent = p
		t.nodes[s.right].parent = p
	}

	t.release(sib)
	t.release(id)
}

// FindSibling returns the leaf next to id in the cycle direction: walk up
// while id sits on the direction side of its parent, then descend into the
// first ancestor's direction-side subtree hugging the opposite edge.
// Returns nilNode when the walk runs off the root or comes back to id.
func (t *Tree) FindSibling(id nodeID, cycle Cycle) nodeID {
	n := id
	for {
		p := t.nodes[n].parent
		if p == nilNode {
			return nilNode
		}
		if cycle == CycleNext && t.nodes[p].right != n {
			n = t.nodes[p].right
			break
		}
		if cycle == CyclePrev && t.nodes[p].left != n {
			n = t.nodes[p].left
			break
		}
		n = p
	}
	for !t.nodes[n].leaf() {
		if cycle == CycleNext {
			n = t.nodes[n].left
		} else {
			n = t.nodes[n].right
		}
	}
	if n == id {
		return nilNode
	}
	return n
}

// Swap exchanges the content of a and b, clients or whole subtrees, fixing
// back-pointers but leaving a's and b's own parent links alone.
func (t *Tree) Swap(a, b nodeID) {
	an, bn := &t.nodes[a], &t.nodes[b]
	an.client, bn.client = bn.client, an.client
	an.left, bn.left = bn.left, an.left
	an.right, bn.right = bn.right, an.right
	an.axis, bn.axis = bn.axis, an.axis
	an.ratio, bn.ratio = bn.ratio, an.ratio
	for _, id := range [2]nodeID{a, b} {
		n := &t.nodes[id]
		if n.client != nil {
			n.client.node = id
		}
		if n.left != nilNode {
			t.nodes[n.left].parent = id
			t.nodes[n.right].parent = id
		}
	}
}

// Rotate flips the node's split axis. A horizontal split also swaps its
// children so the visual rotation comes out the same for both axes.
func (t *Tree) Rotate(id nodeID) {
	n := &t.nodes[id]
	if n.axis == AxisHorizontal {
		n.left, n.right = n.right, n.left
		n.axis = AxisVertical
		return
	}
	n.axis = AxisHorizontal
}

// Placement is one leaf's computed box.
type Placement struct {
	Client *Client
	Box    Rect
}

// Recalculate computes every leaf's box over rect: internal nodes split by
// ratio percent along their axis with the remainder going to the second
// child, leaves get their slice shrunk by border.
func (t *Tree) Recalculate(rect Rect, border int) []Placement {
	if t.root == nilNode {
		return nil
	}
	var out []Placement
	t.recalculate(t.root, rect, border, &out)
	return out
}

func (t *Tree) recalculate(id nodeID, rect Rect, border int, out *[]Placement) {
	n := &t.nodes[id]
	if n.leaf() {
		*out = append(*out, Placement{Client: n.client, Box: rect.Shrink(border)})
		return
	}
	var first, second Rect
	if n.axis == AxisVertical {
		w := rect.W * n.ratio / 100
		first = Rect{X: rect.X, Y: rect.Y, W: w, H: rect.H}
		second = Rect{X: rect.X + w, Y: rect.Y, W: rect.W - w, H: rect.H}
	} else {
		h := rect.H * n.ratio / 100
		first = Rect{X: rect.X, Y: rect.Y, W: rect.W, H: h}
		second = Rect{X: rect.X, Y: rect.Y + h, W: rect.W, H: rect.H - h}
	}
	t.recalculate(n.left, first, border, out)
	t.recalculate(n.right, second, border, out)
}

// FirstLeaf returns the leftmost leaf under id.
func (t *Tree) FirstLeaf(id nodeID) nodeID {
	for !t.nodes[id].leaf() {
		id = t.nodes[id].left
	}
	return id
}

// Clients walks the leaves left to right by repeated FindSibling and returns
// their clients.
func (t *Tree) Clients() []*Client {
	if t.root == nilNode {
		return nil
	}
	var out []*Client
	for id := t.FirstLeaf(t.root); id != nilNode; id = t.FindSibling(id, CycleNext) {
		out = append(out, t.nodes[id].client)
	}
	return out
}

// parentOf returns id's parent, nilNode at the root.
func (t *Tree) parentOf(id nodeID) nodeID {
	return t.nodes[id].parent
}

// side reports which slot of p the child occupies.
func (t *Tree) side(p, child nodeID) Cycle {
	if t.nodes[p].left == child {
		return CyclePrev
	}
	return CycleNext
}

// resizeMatch finds the nearest ancestor split of the leaf whose axis and
// entered-from side both match dir, or nilNode.
func (t *Tree) resizeMatch(id nodeID, dir Direction) nodeID {
	axis, side := dir.Axis(), dir.Side()
	for n := id; ; {
		p := t.nodes[n].parent
		if p == nilNode {
			return nilNode
		}
		if t.nodes[p].axis == axis && t.side(p, n) == side {
			return p
		}
		n = p
	}
}
