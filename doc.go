// Package textscale is a drag-to-resize text control for [Ebitengine] scenes.
//
// A user presses the control and drags horizontally (mouse or touch). Every
// text node under a content root is rescaled live from the size it had when
// the control was mounted, and the effective root size is reported as a
// readout such as "40px". A tap without movement resets to the original
// sizes.
//
// # Quick start
//
//	scene := textscale.NewScene()
//	page := textscale.NewContainer("main")
//	page.Layout = textscale.LayoutColumn
//	page.AddChild(textscale.NewText("h1", "Title", "2em"))
//	page.AddChild(textscale.NewText("p", "Body copy", ""))
//	scene.Root().AddChild(page)
//
//	cfg := textscale.DefaultConfig()
//	widget := textscale.NewWidget(cfg)
//	scene.Root().AddChild(widget.Root)
//
//	ctrl, err := textscale.Mount(scene, widget.Anchors(page), cfg)
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer ctrl.Close()
//	widget.Bind(ctrl)
//
//	textscale.Run(scene, textscale.RunConfig{Title: "Demo", Width: 640, Height: 480})
//
// # Scene graph
//
// Every element is a [Node]: containers, solid rectangles and text. A node's
// font size is declared with [Style] ("16px", "1.5em", "120%", "1rem" or
// empty to inherit) and resolved by [Node.ComputedFontSize]. The controller
// writes its results as inline overrides with [Node.SetFontSizeOverride].
//
// # Scaling
//
// [Mount] captures a [Baseline] of every node under the content root, except
// the control's own subtree. A [GestureTracker] turns horizontal displacement
// into a bounded accumulator, and [ComputeSizes] maps the accumulator to
// per-node sizes using the [Metrics] derived from the root font size and
// [Config.ScaleRange]:
//
//	scale  = 1 + entry/10
//	size_i = round(clamp(baseline_i*scale, 10, ScaleRange+root))
//
// # Input
//
// Pointer 0 is the mouse and pointers 1-9 are touches. Events can be injected
// with [Scene.InjectDrag], [Scene.InjectTouch] and friends, or scripted with
// [LoadTestScript], which is how the package's own tests drive gestures.
//
// [Ebitengine]: https://ebitengine.org
package textscale
