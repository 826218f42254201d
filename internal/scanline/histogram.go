package scanline

// maxChainLength bounds how many occurrences of a single record value are
// considered before the histogram algorithm gives up on that value as a
// useful anchor, mirroring JGit's HistogramDiff low-occurrence heuristic.
const maxChainLength = 64

// diffHistogram implements a histogram diff: a variant of patience diff
// that, instead of requiring an anchor record to be globally unique, picks
// the record value with the lowest (but possibly >1) product of its
// occurrence counts in a and b, pairs that value's first occurrence on each
// side, extends the pair into a maximal matching run, and recurses on the
// surrounding gaps. Values occurring more than
// maxChainLength times are ignored as candidates (too common to be a
// useful anchor). Falls back to Myers when no usable candidate remains.
func diffHistogram(a, b []Record) EditScript {
	matches := histogramMatches(a, b, 0, len(a), 0, len(b))
	return scriptFromMatches(len(a), len(b), matches)
}

type occList struct {
	indices []int
}

func buildOccurrences(recs []Record, lo, hi int) map[uint64][]occList {
	out := make(map[uint64][]occList)
	for i := lo; i < hi; i++ {
		h := recs[i].Hash()
		bucket := out[h]
		placed := false
		for j := range bucket {
			if recs[bucket[j].indices[0]].Equals(recs[i]) {
				bucket[j].indices = append(bucket[j].indices, i)
				placed = true
				break
			}
		}
		if !placed {
			out[h] = append(bucket, occList{indices: []int{i}})
		} else {
			out[h] = bucket
		}
	}
	return out
}

func histogramMatches(a, b []Record, aLo, aHi, bLo, bHi int) []match {
	n, m := aHi-aLo, bHi-bLo
	if n == 0 || m == 0 {
		return nil
	}

	aOcc := buildOccurrences(a, aLo, aHi)
	bOcc := buildOccurrences(b, bLo, bHi)

	bestA, bestB := -1, -1
	bestScore := maxChainLength + 1
	bestLen := 0

	for h, aBuckets := range aOcc {
		bBuckets, ok := bOcc[h]
		if !ok {
			continue
		}
		for _, ab := range aBuckets {
			if len(ab.indices) > maxChainLength {
				continue
			}
			for _, bb := range bBuckets {
				if len(bb.indices) > maxChainLength {
					continue
				}
				if !a[ab.indices[0]].Equals(b[bb.indices[0]]) {
					continue
				}
				score := len(ab.indices) * len(bb.indices)
				if score < bestScore || (score == bestScore && len(ab.indices)+len(bb.indices) > bestLen) {
					bestScore = score
					bestLen = len(ab.indices) + len(bb.indices)
					bestA = ab.indices[0]
					bestB = bb.indices[0]
				}
			}
		}
	}

	if bestA == -1 {
		return myersMatches(a, b, aLo, aHi, bLo, bHi, false, false)
	}

	// Extend the chosen pair into a maximal matching run in both
	// directions before recursing on the surrounding gaps.
	start, end := bestA, bestA
	bStart, bEnd := bestB, bestB
	for start > aLo && bStart > bLo && a[start-1].Equals(b[bStart-1]) {
		start--
		bStart--
	}
	for end+1 < aHi && bEnd+1 < bHi && a[end+1].Equals(b[bEnd+1]) {
		end++
		bEnd++
	}

	var out []match
	out = append(out, histogramMatches(a, b, aLo, start, bLo, bStart)...)
	for i := 0; start+i <= end; i++ {
		out = append(out, match{start + i, bStart + i})
	}
	out = append(out, histogramMatches(a, b, end+1, aHi, bEnd+1, bHi)...)
	return out
}
