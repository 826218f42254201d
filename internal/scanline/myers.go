package scanline

// diffMyers implements Myers' O(ND) shortest-edit-script algorithm. When
// minimal is false, a cost ceiling (mxcost) is enforced: if the search
// exceeds it after having already observed a "good" snake (a run of at
// least heuristicSnakeCount consecutive equal records), the search is cut
// short and the best split point found so far is accepted, with the two
// halves diffed independently. This mirrors LibXDiff's xdl_recs_cmp
// heuristic, trading optimality for bounded running time on pathological
// inputs.
func diffMyers(a, b []Record, minimal bool) EditScript {
	matches := myersMatches(a, b, 0, len(a), 0, len(b), minimal, false)
	return scriptFromMatches(len(a), len(b), matches)
}

// myersMatches returns the sorted list of index pairs matched as equal
// within a[aLo:aHi] and b[bLo:bHi], offset into the full sequences.
func myersMatches(a, b []Record, aLo, aHi, bLo, bHi int, minimal, sawGoodSnake bool) []match {
	n, m := aHi-aLo, bHi-bLo
	if n == 0 || m == 0 {
		return nil
	}

	if minimal {
		return backtrackMyers(a, b, aLo, aHi, bLo, bHi)
	}

	ceiling := mxcost(n, m)
	best, _, snakeSeen, cut := myersTrace(a, b, aLo, aHi, bLo, bHi, ceiling)
	if !cut {
		return backtrackMyers(a, b, aLo, aHi, bLo, bHi)
	}
	if !sawGoodSnake && !snakeSeen {
		// No good snake observed anywhere yet: keep searching past the
		// ceiling rather than accept a poor split.
		return backtrackMyers(a, b, aLo, aHi, bLo, bHi)
	}

	// Cost ceiling reached with a good snake in hand: accept the
	// furthest-reaching split point and recurse on both halves
	// independently instead of paying for an exact solution.
	left := myersMatches(a, b, aLo, best.ai, bLo, best.bi, minimal, true)
	right := myersMatches(a, b, best.ai, aHi, best.bi, bHi, minimal, true)
	out := make([]match, 0, len(left)+len(right))
	out = append(out, left...)
	out = append(out, right...)
	return out
}

type tracePoint struct {
	ai, bi int
}

// myersTrace runs the forward Myers search over a[aLo:aHi] vs b[bLo:bHi].
// If ceiling >= 0 and the edit distance D exceeds it, the search stops
// early (cut=true), returning the furthest-reaching point observed and
// whether a run of >= heuristicSnakeCount equal records was seen along the
// way.
func myersTrace(a, b []Record, aLo, aHi, bLo, bHi, ceiling int) (best tracePoint, cost int, sawSnake bool, cut bool) {
	n, m := aHi-aLo, bHi-bLo
	max := n + m
	if max == 0 {
		return tracePoint{aLo, bLo}, 0, false, false
	}
	offset := max
	v := make([]int, 2*max+1)
	bestProgress := -1

	for d := 0; d <= max; d++ {
		if ceiling >= 0 && d > ceiling {
			return best, d, sawSnake, true
		}
		for k := -d; k <= d; k += 2 {
			var x int
			if k == -d || (k != d && v[offset+k-1] < v[offset+k+1]) {
				x = v[offset+k+1]
			} else {
				x = v[offset+k-1] + 1
			}
			y := x - k
			snakeStart := x
			for x < n && y < m && a[aLo+x].Equals(b[bLo+y]) {
				x++
				y++
			}
			if x-snakeStart >= heuristicSnakeCount {
				sawSnake = true
			}
			v[offset+k] = x
			if x <= n && y <= m && x+y > bestProgress {
				bestProgress = x + y
				best = tracePoint{aLo + x, bLo + y}
			}
			if x >= n && y >= m {
				return tracePoint{aLo + n, bLo + m}, d, sawSnake, false
			}
		}
	}
	return best, max, sawSnake, false
}

// backtrackMyers recomputes the full trace (exact, no ceiling) and walks it
// backward to recover the sequence of matches.
func backtrackMyers(a, b []Record, aLo, aHi, bLo, bHi int) []match {
	n, m := aHi-aLo, bHi-bLo
	if n == 0 || m == 0 {
		return nil
	}
	max := n + m
	offset := max
	trace := make([][]int, 0, max+1)

	v := make([]int, 2*max+1)
	for d := 0; d <= max; d++ {
		snapshot := make([]int, len(v))
		copy(snapshot, v)
		trace = append(trace, snapshot)
		for k := -d; k <= d; k += 2 {
			var x int
			if k == -d || (k != d && v[offset+k-1] < v[offset+k+1]) {
				x = v[offset+k+1]
			} else {
				x = v[offset+k-1] + 1
			}
			y := x - k
			for x < n && y < m && a[aLo+x].Equals(b[bLo+y]) {
				x++
				y++
			}
			v[offset+k] = x
			if x >= n && y >= m {
				return walkBack(trace, offset, n, m, aLo, bLo)
			}
		}
	}
	return walkBack(trace, offset, n, m, aLo, bLo)
}

func walkBack(trace [][]int, offset, n, m, aLo, bLo int) []match {
	var matches []match
	x, y := n, m
	for d := len(trace) - 1; d >= 0 && (x > 0 || y > 0); d-- {
		v := trace[d]
		k := x - y
		var prevK int
		if k == -d || (k != d && v[offset+k-1] < v[offset+k+1]) {
			prevK = k + 1
		} else {
			prevK = k - 1
		}
		prevX := v[offset+prevK]
		prevY := prevX - prevK
		for x > prevX && y > prevY {
			x--
			y--
			matches = append(matches, match{aLo + x, bLo + y})
		}
		x, y = prevX, prevY
	}
	// matches were appended back-to-front; reverse in place.
	for i, j := 0, len(matches)-1; i < j; i, j = i+1, j-1 {
		matches[i], matches[j] = matches[j], matches[i]
	}
	return matches
}
