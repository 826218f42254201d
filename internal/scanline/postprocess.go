package scanline

// Run is a maximal contiguous group of non-Equal edits, i.e. a single
// mismatched region of the edit script. Adjacent Delete/Insert edits are
// always coalesced into one Run (never split), satisfying the semantic
// requirement that touching (-,+) pairs present as a single run downstream.
type Run struct {
	// ABegin/AEnd is the half-open range of indices into the first sequence
	// covered by this run (AEnd == ABegin when nothing from A participates).
	ABegin, AEnd int
	// BBegin/BEnd is the symmetric half-open range into the second sequence.
	BBegin, BEnd int
}

// Runs groups an edit script into maximal non-Equal runs. Equal edits are
// dropped; everything else (Insert, Delete, Replace) is coalesced whenever
// consecutive, regardless of which operations make up the run.
func Runs(script EditScript) []Run {
	var runs []Run
	i := 0
	n := len(script)
	for i < n {
		if script[i].Op == Equal {
			i++
			continue
		}
		start := i
		aBegin, bBegin := -1, -1
		aEnd, bEnd := -1, -1
		for i < n && script[i].Op != Equal {
			e := script[i]
			switch e.Op {
			case Delete, Replace:
				if aBegin == -1 {
					aBegin = e.A
				}
				aEnd = e.A + 1
			}
			switch e.Op {
			case Insert, Replace:
				if bBegin == -1 {
					bBegin = e.B
				}
				bEnd = e.B + 1
			}
			i++
		}
		r := Run{}
		if aBegin != -1 {
			r.ABegin, r.AEnd = aBegin, aEnd
		} else {
			// Empty on the A side: anchor at the position immediately
			// following the previous run's A-extent.
			r.ABegin = script[start].A
			r.AEnd = r.ABegin
		}
		if bBegin != -1 {
			r.BBegin, r.BEnd = bBegin, bEnd
		} else {
			r.BBegin = script[start].B
			r.BEnd = r.BBegin
		}
		runs = append(runs, r)
		_ = start
	}
	return runs
}
