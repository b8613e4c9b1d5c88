package textscale

import "strconv"

// Display is what the presentational shell may show: the readout, whether
// the control is being dragged, and the root text color for tinting.
type Display struct {
	Readout int
	Visible bool
	Color   string
}

// Label formats the readout with its unit, e.g. "40px".
func (d Display) Label() string {
	return strconv.Itoa(d.Readout) + "px"
}
