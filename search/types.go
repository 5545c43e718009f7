// Package search - shared types, states, and defaults.
package search

// DefaultEpsilon is the termination tolerance used when a caller does not
// supply one: searches finish once the bracketed span shrinks below it.
const DefaultEpsilon = 1e-5

// ValueEfficacyPair couples a probed value with the efficacy it scored.
type ValueEfficacyPair struct {
	Value    float64
	Efficacy float64
}

// CliffState is the CliffFinder lifecycle.
type CliffState int

const (
	// NotCliffing - no search in progress.
	NotCliffing CliffState = iota
	// CliffInProgress - endpoints set, midpoint probes being issued.
	CliffInProgress
	// CliffFinished - the span shrank below epsilon.
	CliffFinished
)

// BinarySearchState is the BinSearcher lifecycle.
type BinarySearchState int

const (
	// NoSearch - not initialized.
	NoSearch BinarySearchState = iota
	// MappingSpace - probing linearly spaced values through the range.
	MappingSpace
	// BinarySearch - refining the best mapped bracket via CliffFinder.
	BinarySearch
	// Finished - no further proposals.
	Finished
)
