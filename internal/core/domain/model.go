package domain

import "time"

// Entry holds one normalized titular and the number of raw titles that
// mapped to it.
type Entry struct {
	Title string
	Count int
}

// Report holds the outcome of one frequency-analysis run.
type Report struct {
	// Entries sorted by count descending, ties broken by title ascending.
	Entries []Entry
	// TotalTitles is the number of raw titles consumed, including the
	// ones skipped for normalizing to the empty string.
	TotalTitles int
	// DistinctTitles is the number of distinct normalized values counted.
	DistinctTitles int
	// SkippedEmpty is the number of raw titles that normalized to "".
	SkippedEmpty int
	// ProcessingTime of the run.
	ProcessingTime time.Duration
	// Details holds additional diagnostic information.
	Details map[string]interface{}
}

// Class is the verdict of a pairwise lexical comparison.
type Class int

const (
	// ClassDifferent marks two titles as distinct holders.
	ClassDifferent Class = iota
	// ClassSame marks two titles as the same holder written differently.
	ClassSame
	// ClassIndeterminate marks a pair the metrics cannot decide; it is
	// left to the human reviewer.
	ClassIndeterminate
)

func (c Class) String() string {
	switch c {
	case ClassSame:
		return "same"
	case ClassDifferent:
		return "different"
	default:
		return "indeterminate"
	}
}

// ConflictPair records one character substitution observed between two
// titles judged to be the same holder. The empty-set marker "∅" stands
// for the missing side of an insertion or deletion.
type ConflictPair struct {
	From string
	To   string
}

// Comparison holds the outcome of a pairwise lexical comparison.
type Comparison struct {
	Name string
	// Score is the aggregate similarity in [0,100].
	Score float64
	Class Class
	// Metrics in [0,100].
	JaroWinkler   float64
	TokenSetRatio float64
	CosineQGrams  float64
	Jaccard       float64
	// Prefiltered is true when the length prefilter rejected the pair
	// before any metric was computed.
	Prefiltered bool
	// Conflicts lists character substitutions, only for ClassSame pairs.
	Conflicts []ConflictPair
	// Details holds additional diagnostic information.
	Details map[string]interface{}
}
