// Package search - BinSearcher: three-phase one-dimensional optimizer.
package search

// MappingIterations is how many linearly spaced probes the mapping phase
// issues before handing over to cliff refinement.
const MappingIterations = 5

// BinSearcher optimizes a single value over [original, max]:
//
//  1. MappingSpace - probe MappingIterations values spaced linearly from
//     just past original up to max, recording (value, efficacy) pairs.
//  2. BinarySearch - seed a CliffFinder from the mapping table and refine
//     until its epsilon is met.
//  3. Finished - no further proposals.
//
// The caller drives it with the GetValue/Report protocol; Report advances
// the phase machine.
type BinSearcher struct {
	Cliffer CliffFinder

	RangeMax      float64
	OriginalValue float64
	Eps           float64
	Mapping       []ValueEfficacyPair
	State         BinarySearchState

	mappingIteration uint32
	initialized      bool
}

// Init starts a fresh search from the original value (whose efficacy is
// already known - typically the current best) toward max.
func (b *BinSearcher) Init(orig, origEfficacy, max, eps float64) {
	if eps <= 0 {
		eps = DefaultEpsilon
	}
	b.OriginalValue = orig
	b.RangeMax = max
	b.Eps = eps
	b.Mapping = append(b.Mapping[:0], ValueEfficacyPair{Value: orig, Efficacy: origEfficacy})
	b.mappingIteration = 0
	b.State = MappingSpace
	b.Cliffer.Reset()
	b.initialized = true
}

// Initialized reports whether Init has run since the last Reset.
func (b *BinSearcher) Initialized() bool { return b.initialized }

// GetValue returns the next value to try. During mapping the proposals
// step linearly through the range, reaching max on the final mapping
// probe; during binary search they come from the cliff finder. Once
// finished (or before Init) the original value is returned.
func (b *BinSearcher) GetValue() float64 {
	switch b.State {
	case MappingSpace:
		step := (b.RangeMax - b.OriginalValue) / MappingIterations

		return b.OriginalValue + step*float64(b.mappingIteration+1)
	case BinarySearch:
		return b.Cliffer.GetValue()
	default:
		return b.OriginalValue
	}
}

// Report feeds back the efficacy of the last proposal and advances the
// phase machine: the mapping table grows until it is full, then the cliff
// finder takes over; once the cliff finder converges the search finishes.
func (b *BinSearcher) Report(result float64) {
	switch b.State {
	case MappingSpace:
		b.Mapping = append(b.Mapping, ValueEfficacyPair{Value: b.GetValue(), Efficacy: result})
		b.mappingIteration++
		if b.mappingIteration >= MappingIterations {
			b.Cliffer.InitFromPairs(b.Mapping, b.Eps)
			b.State = BinarySearch
			if b.Cliffer.State == CliffFinished {
				b.State = Finished
			}
		}
	case BinarySearch:
		b.Cliffer.Report(result)
		if b.Cliffer.State == CliffFinished {
			b.State = Finished
		}
	}
}

// BestValue returns the highest-scoring value seen so far: the better of
// the mapping table's best entry and the cliff finder's edge.
func (b *BinSearcher) BestValue() float64 {
	bestValue := b.OriginalValue
	bestEfficacy := 0.0
	if len(b.Mapping) > 0 {
		bestValue, bestEfficacy = b.Mapping[0].Value, b.Mapping[0].Efficacy
		for _, p := range b.Mapping[1:] {
			if p.Efficacy > bestEfficacy {
				bestValue, bestEfficacy = p.Value, p.Efficacy
			}
		}
	}
	if b.Cliffer.State != NotCliffing && b.Cliffer.EdgeEfficacy > bestEfficacy {
		bestValue = b.Cliffer.Edge
	}

	return bestValue
}

// Reset clears the search back to NoSearch.
func (b *BinSearcher) Reset() {
	b.Mapping = b.Mapping[:0]
	b.mappingIteration = 0
	b.State = NoSearch
	b.Cliffer.Reset()
	b.initialized = false
}
