package scanline

// match pairs up index ai of the first sequence with index bi of the
// second, asserting a[ai] and b[bi] are considered equal.
type match struct {
	ai, bi int
}

// scriptFromMatches turns a strictly-increasing (in both ai and bi)
// sequence of matches into a full edit script covering a[0:lenA] and
// b[0:lenB]. Gaps between (and around) matches become Replace when both
// sides have leftover records, or pure Delete/Insert otherwise.
func scriptFromMatches(lenA, lenB int, matches []match) EditScript {
	script := make(EditScript, 0, lenA+lenB)
	ai, bi := 0, 0
	emitGap := func(aEnd, bEnd int) {
		for ai < aEnd && bi < bEnd {
			script = append(script, Edit{Op: Replace, A: ai, B: bi})
			ai++
			bi++
		}
		for ai < aEnd {
			script = append(script, Edit{Op: Delete, A: ai, B: bi})
			ai++
		}
		for bi < bEnd {
			script = append(script, Edit{Op: Insert, A: ai, B: bi})
			bi++
		}
	}
	for _, m := range matches {
		emitGap(m.ai, m.bi)
		script = append(script, Edit{Op: Equal, A: ai, B: bi})
		ai++
		bi++
	}
	emitGap(lenA, lenB)
	return script
}
