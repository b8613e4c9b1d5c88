package textscale

import "math"

const (
	// MinFontSize is the smallest size a scaled node is rendered at.
	MinFontSize = 10.0

	// MoveSensitivity multiplies raw horizontal displacement before it is
	// fed into the accumulator, for mouse and touch alike.
	MoveSensitivity = 8.0
)

// Metrics holds the constants derived from the observed root font size and
// the configured scale range. They are recomputed whenever either changes.
type Metrics struct {
	RootFontSize float64
	ScaleRange   float64

	Offset          float64 // RootFontSize - 10
	OffsetFactor    float64 // 1 / RootFontSize
	ScaleFactor     float64 // 100 / ScaleRange
	Sensitivity     float64 // accumulator units per pixel of delta
	MinValue        float64 // lower bound of the accumulator
	MaxValue        float64 // upper bound of the accumulator
	MaxAbsoluteSize float64 // ceiling for any rendered size and the readout
}

// NewMetrics derives the scale constants.
func NewMetrics(rootFontSize, scaleRange float64) Metrics {
	m := Metrics{RootFontSize: rootFontSize, ScaleRange: scaleRange}
	m.Offset = rootFontSize - MinFontSize
	m.OffsetFactor = 1 / rootFontSize
	m.ScaleFactor = 100 / scaleRange
	m.Sensitivity = (1 / m.ScaleFactor) * m.OffsetFactor
	m.MinValue = -m.Offset
	if scaleRange >= 14 {
		m.MaxValue = scaleRange - m.Offset
	} else {
		m.MaxValue = scaleRange
	}
	m.MaxAbsoluteSize = scaleRange + rootFontSize
	return m
}

// Valid reports whether the metrics were derived from a usable root size.
// Metrics observed before the first application (root size 0) are not.
func (m Metrics) Valid() bool {
	return m.RootFontSize > 0 && !math.IsNaN(m.RootFontSize) && !math.IsInf(m.RootFontSize, 0)
}

// Accumulate returns the accumulator after feeding delta into entry. A soft
// floor at -RootFontSize/5 bounds a single step before the hard clamp to
// [MinValue, MaxValue].
func (m Metrics) Accumulate(entry, delta float64) float64 {
	stage := math.Max(entry+delta*m.Sensitivity, -m.RootFontSize/5)
	return math.Min(math.Max(stage, m.MinValue), m.MaxValue)
}

// Scale converts an accumulator value into a multiplicative scale factor.
func Scale(entry float64) float64 {
	return 1 + entry/10
}

// ComputeSizes is the pure part of an application pass: the rounded size of
// every baseline entry and the readout for the root, both for accumulator
// value entry.
func ComputeSizes(entry float64, baseline []float64, m Metrics) (sizes []int, readout int) {
	scale := Scale(entry)
	sizes = make([]int, len(baseline))
	for i, b := range baseline {
		target := b * scale
		target = math.Max(target, MinFontSize)
		target = math.Min(target, m.MaxAbsoluteSize)
		sizes[i] = int(math.Round(target))
	}
	readout = int(math.Round(math.Min(m.RootFontSize*scale, m.MaxAbsoluteSize)))
	return sizes, readout
}

// ScaleState is the controller's persistent scale state. EntryCount is the
// only accumulator; the root fields are observations refreshed by every
// application pass.
type ScaleState struct {
	EntryCount    float64
	RootFontSize  float64
	RootTextColor string
}

// applyPass writes sizes to the baseline nodes and observes root. It returns
// the readout. Disposed nodes are skipped.
func applyPass(entry float64, baseline Baseline, m Metrics, state *ScaleState, root *Node, logf func(string, ...any)) int {
	sizes, _ := ComputeSizes(entry, baseline.Sizes, m)
	for i, n := range baseline.Nodes {
		if n.IsDisposed() {
			continue
		}
		n.SetFontSizeOverride(sizes[i])
	}

	rootSize := root.ComputedFontSize()
	if math.IsNaN(rootSize) || rootSize <= 0 {
		if logf != nil {
			logf("warning: root %q font size unresolvable, keeping %v", root.Name, state.RootFontSize)
		}
	} else {
		state.RootFontSize = rootSize
	}
	state.RootTextColor = root.ComputedColor()

	// The readout uses the fresh root observation against the ceiling the
	// pass started with.
	return int(math.Round(math.Min(state.RootFontSize*Scale(entry), m.MaxAbsoluteSize)))
}
