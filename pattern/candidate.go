package pattern

import "fmt"

// Candidate is one detected pattern instance, consumed at most once: the
// orchestrator keys a visited set on Key() when a signal is emitted against
// it.
type Candidate struct {
	Profile *Profile

	// Inclusive bar indexes into the full series. For pivot-based
	// archetypes this is the span of the pivots that defined the pattern,
	// so the same structure keeps the same key while the detection window
	// slides; for HTF and flat bases it is the window itself.
	StartIndex int
	EndIndex   int

	// Boundary pair. Resistance > Support for every archetype.
	Support    float64
	Resistance float64

	// Quality is in [0, 1], higher is better. It ranks simultaneously
	// detected profiles on the same bar and never gates acceptance.
	Quality float64

	// Hint is the direction the geometry argues for: ascending triangles
	// hint Long, descending hint Short, the rest are direction-agnostic.
	Hint Direction

	// Shape is the resolved sub-classification, e.g. "ascending" for a
	// triangle profile.
	Shape string
}

// Key identifies this pattern instance for at-most-one-trade-per-pattern
// bookkeeping.
func (c *Candidate) Key() string {
	return fmt.Sprintf("%s:%d:%d", c.Profile.Name, c.StartIndex, c.EndIndex)
}
