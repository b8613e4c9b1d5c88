package textscale

// HitShape is used for custom hit testing regions.
type HitShape interface {
	Contains(x, y float64) bool
}

// PointerContext carries pointer event data.
type PointerContext struct {
	Node      *Node
	Event     EventType
	GlobalX   float64
	GlobalY   float64
	LocalX    float64
	LocalY    float64
	Button    MouseButton
	PointerID int
}

// IsTouch reports whether the event came from a touch slot rather than the mouse.
func (c PointerContext) IsTouch() bool {
	return c.PointerID > 0
}

// nodeIDCounter is only touched from the update goroutine.
var nodeIDCounter uint32

func nextNodeID() uint32 {
	nodeIDCounter++
	return nodeIDCounter
}

// --- Node ---

// Node is an element of the page: a container, a solid rectangle or a run of
// text. All kinds share one struct; Type selects how it is laid out and drawn.
type Node struct {
	// Identity
	ID    uint32
	Name  string
	Class string
	Type  NodeType

	// Hierarchy
	Parent   *Node
	children []*Node

	// Geometry (local). Width/Height size rect nodes and hit areas; text nodes
	// get theirs from layout.
	X, Y          float64
	Width, Height float64

	// Computed (unexported, updated during traversal)
	worldX, worldY float64
	worldAlpha     float64
	transformDirty bool

	// Visibility & interaction
	Alpha        float64
	Visible      bool
	Interactable bool

	// Layout (containers)
	Layout  LayoutKind
	Gap     float64
	Padding float64

	// Style and text
	Style        Style
	Content      string
	Color        Color // tint for rect nodes
	fontOverride int   // inline font size in px; 0 = none

	// Hit testing
	HitShape HitShape

	// OnUpdate runs once per Scene.Update with the tick length in seconds.
	OnUpdate func(dt float64)

	// Internal
	disposed        bool
	measuredSize    float64
	measuredContent string
}

// nodeDefaults sets the common default field values shared by all constructors.
func nodeDefaults(n *Node) {
	n.ID = nextNodeID()
	n.Alpha = 1
	n.Color = ColorWhite
	n.Visible = true
	n.transformDirty = true
}

// NewContainer creates a container node with no visual representation.
func NewContainer(name string) *Node {
	n := &Node{Name: name, Type: NodeTypeContainer}
	nodeDefaults(n)
	return n
}

// NewRect creates a solid rectangle node.
func NewRect(name string, w, h float64, c Color) *Node {
	n := &Node{Name: name, Type: NodeTypeRect, Width: w, Height: h}
	nodeDefaults(n)
	n.Color = c
	return n
}

// NewText creates a text node. fontSize is a style length such as "16px",
// "1.5em" or "" to inherit from the parent.
func NewText(name, content, fontSize string) *Node {
	n := &Node{Name: name, Type: NodeTypeText, Content: content}
	nodeDefaults(n)
	n.Style.FontSize = fontSize
	return n
}

// --- Tree manipulation ---

// AddChild appends child to this node's children.
// If child already has a parent, it is removed from that parent first.
// Panics if child is nil or child is an ancestor of this node (cycle).
func (n *Node) AddChild(child *Node) {
	if child == nil {
		panic("textscale: cannot add nil child")
	}
	if globalDebug {
		debugCheckDisposed(n, "AddChild (parent)")
		debugCheckDisposed(child, "AddChild (child)")
	}
	if isAncestor(child, n) {
		panic("textscale: adding child would create a cycle")
	}
	if child.Parent != nil {
		child.Parent.removeChildByPtr(child)
	}
	child.Parent = n
	n.children = append(n.children, child)
	markSubtreeDirty(child)
	if globalDebug {
		debugCheckTreeDepth(child)
		debugCheckChildCount(n)
	}
}

// RemoveChild detaches child from this node.
// Panics if child.Parent != n.
func (n *Node) RemoveChild(child *Node) {
	if child.Parent != n {
		panic("textscale: child's parent is not this node")
	}
	n.removeChildByPtr(child)
	child.Parent = nil
	markSubtreeDirty(child)
}

// RemoveFromParent detaches this node from its parent.
// No-op if this node has no parent.
func (n *Node) RemoveFromParent() {
	if n.Parent == nil {
		return
	}
	n.Parent.RemoveChild(n)
}

// Children returns the children in document order. Do not modify the slice.
func (n *Node) Children() []*Node {
	return n.children
}

// NumChildren returns the number of children.
func (n *Node) NumChildren() int {
	return len(n.children)
}

// ChildAt returns the child at the given index.
func (n *Node) ChildAt(index int) *Node {
	return n.children[index]
}

// Contains reports whether other is n or one of its descendants.
func (n *Node) Contains(other *Node) bool {
	return other != nil && isAncestor(n, other)
}

// TreeRoot returns the topmost ancestor of n (n itself when detached).
func (n *Node) TreeRoot() *Node {
	r := n
	for r.Parent != nil {
		r = r.Parent
	}
	return r
}

// Walk calls fn for every descendant of n in depth-first document order.
// Returning false from fn skips that node's subtree.
func (n *Node) Walk(fn func(*Node) bool) {
	for _, child := range n.children {
		if fn(child) {
			child.Walk(fn)
		}
	}
}

// --- Disposal ---

// Dispose detaches the node and marks its whole subtree disposed. Disposed
// nodes are skipped by application passes.
func (n *Node) Dispose() {
	if n.disposed {
		return
	}
	n.RemoveFromParent()
	n.dispose()
}

func (n *Node) dispose() {
	n.disposed = true
	n.ID = 0
	for _, child := range n.children {
		child.Parent = nil
		child.dispose()
	}
	n.children = nil
	n.Parent = nil
	n.HitShape = nil
	n.OnUpdate = nil
}

// IsDisposed reports whether Dispose was called on the node or an ancestor.
func (n *Node) IsDisposed() bool {
	return n.disposed
}

// --- Helpers ---

// isAncestor reports whether candidate is node or an ancestor of node.
func isAncestor(candidate, node *Node) bool {
	for p := node; p != nil; p = p.Parent {
		if p == candidate {
			return true
		}
	}
	return false
}

// removeChildByPtr drops child from n.children, leaving child.Parent alone.
func (n *Node) removeChildByPtr(child *Node) {
	for i, c := range n.children {
		if c == child {
			copy(n.children[i:], n.children[i+1:])
			n.children[len(n.children)-1] = nil
			n.children = n.children[:len(n.children)-1]
			return
		}
	}
}

// markSubtreeDirty sets transformDirty on node and all its descendants.
func markSubtreeDirty(node *Node) {
	node.transformDirty = true
	for _, child := range node.children {
		markSubtreeDirty(child)
	}
}
