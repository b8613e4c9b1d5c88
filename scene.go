package textscale

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2"
)

// Scene is the top-level object that owns the node tree, input state, cursor
// and font cache.
type Scene struct {
	root  *Node
	debug bool

	// ClearColor fills the screen before the tree is drawn. Zero alpha skips
	// the fill.
	ClearColor Color

	fonts  *FontCache
	logger *log.Logger
	cursor CursorSetter

	// Input state
	input        InputSource
	handlers     handlerRegistry
	dispatchBuf  []pointerHandler
	pointers     [maxPointers]pointerState
	hitBuf       []*Node
	touchMap     [maxPointers]ebiten.TouchID
	touchUsed    [maxPointers]bool
	prevTouchIDs []ebiten.TouchID
	injectQueue  []syntheticPointerEvent
	testRunner   *TestRunner
}

// NewScene creates a new scene with a pre-created, interactable root
// container reading input from Ebitengine.
func NewScene() *Scene {
	root := NewContainer("root")
	root.Interactable = true
	return &Scene{
		root:   root,
		fonts:  NewFontCache(nil),
		logger: newLogger(),
		cursor: ebitenCursor{},
		input:  ebitenInput{},
	}
}

// Root returns the scene's root container node.
func (s *Scene) Root() *Node {
	return s.root
}

// Fonts returns the face cache used for layout and drawing.
func (s *Scene) Fonts() *FontCache {
	return s.fonts
}

// SetInputSource replaces the device input. nil disables device input;
// injected events still work.
func (s *Scene) SetInputSource(src InputSource) {
	s.input = src
}

// SetCursor replaces the cursor backend.
func (s *Scene) SetCursor(c CursorSetter) {
	s.cursor = c
}

// SetLogger replaces the logger used for warnings and debug output.
func (s *Scene) SetLogger(l *log.Logger) {
	s.logger = l
}

// SetDebugMode enables or disables debug mode. When enabled, disposed-node
// access panics, tree depth and child count warnings are printed, and gesture
// transitions are logged.
func (s *Scene) SetDebugMode(enabled bool) {
	s.debug = enabled
	globalDebug = enabled
}

// globalDebug mirrors the most recently set Scene debug flag so that node
// operations (which lack a Scene pointer) can check it cheaply. Only valid
// with a single Scene.
var globalDebug bool

// Update lays out the tree, refreshes world positions, runs per-node update
// callbacks and processes input. Call it once per tick.
func (s *Scene) Update() {
	dt := 1.0 / float64(ebiten.TPS())

	if s.testRunner != nil {
		s.testRunner.step(s)
	}

	layoutTree(s.root, s.fonts)
	runUpdates(s.root, dt)

	// OnUpdate may move nodes, so world positions are refreshed after it and
	// before hit testing.
	updateWorldTransform(s.root, 0, 0, 1, false)
	s.processInput()
}

// runUpdates calls OnUpdate for every node in the tree.
func runUpdates(n *Node, dt float64) {
	if n.OnUpdate != nil {
		n.OnUpdate(dt)
	}
	for _, child := range n.children {
		runUpdates(child, dt)
	}
}
