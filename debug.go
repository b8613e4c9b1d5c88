package textscale

import (
	"fmt"
	"log"
	"os"
)

// debugLogger receives tree warnings from node operations, which have no
// Scene to log through.
var debugLogger = newLogger()

func newLogger() *log.Logger {
	return log.New(os.Stderr, "[textscale] ", 0)
}

// warnf writes a warning regardless of debug mode.
func (s *Scene) warnf(format string, args ...any) {
	if s.logger == nil {
		return
	}
	s.logger.Printf(format, args...)
}

// debugf writes only when debug mode is on.
func (s *Scene) debugf(format string, args ...any) {
	if !s.debug || s.logger == nil {
		return
	}
	s.logger.Printf(format, args...)
}

// debugCheckDisposed panics with a descriptive message when a disposed node is
// used in a tree operation. Only called in debug mode.
func debugCheckDisposed(n *Node, op string) {
	if n.disposed {
		panic(fmt.Sprintf("textscale debug: %s on disposed node %q (ID was %d)", op, n.Name, n.ID))
	}
}

// debugCheckTreeDepth warns if tree depth exceeds the threshold.
const debugMaxTreeDepth = 32

func debugCheckTreeDepth(n *Node) {
	depth := 0
	for p := n; p != nil; p = p.Parent {
		depth++
	}
	if depth > debugMaxTreeDepth {
		debugLogger.Printf("warning: tree depth %d exceeds %d (node %q)", depth, debugMaxTreeDepth, n.Name)
	}
}

// debugCheckChildCount warns if a node has more than 1000 children.
const debugMaxChildCount = 1000

func debugCheckChildCount(n *Node) {
	if len(n.children) > debugMaxChildCount {
		debugLogger.Printf("warning: node %q has %d children (threshold %d)", n.Name, len(n.children), debugMaxChildCount)
	}
}
