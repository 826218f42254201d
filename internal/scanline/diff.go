package scanline

import "errors"

// Algorithm selects the record-matching strategy used by Diff.
type Algorithm int

const (
	// Myers is the default: Myers' O(ND) algorithm with heuristic pruning
	// on pathologically large inputs.
	Myers Algorithm = iota
	// Minimal is Myers' algorithm with the heuristic pruning disabled,
	// always producing a minimal edit script regardless of cost.
	Minimal
	// Patience finds lines unique in both sequences, takes their longest
	// increasing subsequence as anchors, and recurses on the gaps.
	Patience
	// Histogram is a JGit-style variant of Patience that picks, for each
	// candidate record, the least-frequent matching chain first.
	Histogram
	// None pairs records index-for-index: any mismatch is a Replace, and
	// the length difference becomes a trailing Insert or Delete run.
	None
)

func (a Algorithm) String() string {
	switch a {
	case Myers:
		return "myers"
	case Minimal:
		return "minimal"
	case Patience:
		return "patience"
	case Histogram:
		return "histogram"
	case None:
		return "none"
	default:
		return "unknown"
	}
}

// ErrOutOfMemory reports an internal allocation failure.
var ErrOutOfMemory = errors.New("scanline: out of memory")

// Heuristic constants ported from LibXDiff's xdiffi.h / xdiffi.c, applied
// only when Algorithm == Myers (not Minimal).
const (
	heuristicSnakeCount = 20  // a run of this many equal records is a "good snake"
	heuristicMinimum    = 256 // D must exceed this before the heuristic can trigger
	heuristicKFactor    = 4   // LibXDiff's k-factor; mxcost below does not apply it
)

// mxcost returns the cost ceiling past which Myers gives up on an exact
// solution and accepts a heuristic split, mirroring xdiffi's mxcost.
func mxcost(n1, n2 int) int {
	c := isqrt(n1+n2+3) + 1
	if c < heuristicMinimum {
		c = heuristicMinimum
	}
	return c
}

func isqrt(n int) int {
	if n <= 0 {
		return 0
	}
	x := n
	y := (x + 1) / 2
	for y < x {
		x = y
		y = (x + n/x) / 2
	}
	return x
}

// Diff computes an edit script turning sequence a into sequence b using the
// given algorithm. The result satisfies: len(script) >= max(len(a),len(b))
// and <= len(a)+len(b); CountA() == len(a); CountB() == len(b).
func Diff(a, b []Record, algo Algorithm) EditScript {
	switch algo {
	case None:
		return diffNone(a, b)
	case Patience:
		return diffPatience(a, b)
	case Histogram:
		return diffHistogram(a, b)
	case Minimal:
		return diffMyers(a, b, true)
	default:
		return diffMyers(a, b, false)
	}
}
