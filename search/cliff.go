// Package search - CliffFinder: geometric midpoint probing between a known
// good value and a known bad one.
//
// The model: efficacy rises steadily as the parameter approaches some
// threshold, then falls off a cliff. Given one point on the edge (high
// efficacy) and one on the ground (low efficacy), repeatedly probing the
// midpoint and folding the worse half localizes the cliff to within
// epsilon in log2(span/epsilon) probes.
package search

import "math"

// CliffFinder bisects between Edge (higher-scoring side) and Ground.
// The zero value is idle; call Init or InitFromPairs to start.
type CliffFinder struct {
	State          CliffState
	Edge           float64
	EdgeEfficacy   float64
	Ground         float64
	GroundEfficacy float64
	Epsilon        float64
}

// Init starts a search between two scored endpoints. The pair is
// canonicalized so that Edge is always the higher-efficacy side, whichever
// order the caller passed them in. A span already below epsilon finishes
// immediately.
func (c *CliffFinder) Init(edge, edgeEfficacy, ground, groundEfficacy, epsilon float64) {
	if epsilon <= 0 {
		epsilon = DefaultEpsilon
	}
	if groundEfficacy > edgeEfficacy {
		edge, ground = ground, edge
		edgeEfficacy, groundEfficacy = groundEfficacy, edgeEfficacy
	}
	c.Edge, c.EdgeEfficacy = edge, edgeEfficacy
	c.Ground, c.GroundEfficacy = ground, groundEfficacy
	c.Epsilon = epsilon
	c.State = CliffInProgress
	if math.Abs(c.Edge-c.Ground) <= c.Epsilon {
		c.State = CliffFinished
	}
}

// InitFromPairs seeds the search from a mapping table: the first
// best-scoring pair becomes the edge and its right-hand neighbor (the left
// one when the best is last) becomes the ground, whatever its efficacy.
// With fewer than two pairs the search finishes immediately (there is no
// bracket to refine).
func (c *CliffFinder) InitFromPairs(pairs []ValueEfficacyPair, epsilon float64) {
	if len(pairs) < 2 {
		c.Reset()
		c.State = CliffFinished

		return
	}

	best := 0
	for i := 1; i < len(pairs); i++ {
		if pairs[i].Efficacy > pairs[best].Efficacy {
			best = i
		}
	}

	// Bracket against the right-hand neighbor (ties included): mapping
	// probes ascend in value, so the drop-off is expected past the peak.
	// Only a best sitting on the table's right edge brackets leftward.
	ground := best + 1
	if ground >= len(pairs) {
		ground = best - 1
	}
	if ground < 0 {
		c.Reset()
		c.State = CliffFinished

		return
	}

	c.Init(pairs[best].Value, pairs[best].Efficacy, pairs[ground].Value, pairs[ground].Efficacy, epsilon)
}

// GetValue returns the next probe: the midpoint of the current bracket.
func (c *CliffFinder) GetValue() float64 {
	return (c.Edge + c.Ground) / 2
}

// Report folds the bracket around the probed midpoint: an efficacy beyond
// the edge's (by more than epsilon) promotes the midpoint to the new edge,
// anything else grounds it. The search finishes once the span is within
// epsilon.
func (c *CliffFinder) Report(result float64) {
	if c.State != CliffInProgress {
		return
	}
	mid := c.GetValue()
	if result > c.EdgeEfficacy+c.Epsilon {
		c.Edge, c.EdgeEfficacy = mid, result
	} else {
		c.Ground, c.GroundEfficacy = mid, result
	}
	if math.Abs(c.Edge-c.Ground) <= c.Epsilon {
		c.State = CliffFinished
	}
}

// Reset returns the finder to the idle state.
func (c *CliffFinder) Reset() {
	*c = CliffFinder{}
}
