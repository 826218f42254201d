package winimerge

// LineDiffInfo is one scanline-level mismatched run, in both real
// (per-pane) row indices and the aligned "preprocessed" space produced by
// ghost-row priming.
//
// Begin[p]/End[p] are an inclusive row range in pane p's real image. A
// pane that contributes no rows to the run (a pure insertion on the other
// side) is represented as an empty range with End[p] == Begin[p]-1,
// matching the classic diff convention so length is uniformly
// max(0, End-Begin+1).
type LineDiffInfo struct {
	Begin, End [3]int

	// DBegin/DEnd/DEndMax locate the same run in the aligned space shared
	// by every pane after ghost-row splicing: DEnd[p]-DBegin == End[p]-
	// Begin[p], and DEndMax == max_p DEnd[p].
	DBegin  int
	DEnd    [3]int
	DEndMax int

	Op Op
}

func regionLen(begin, end int) int {
	l := end - begin + 1
	if l < 0 {
		return 0
	}
	return l
}

// primeLineDiffInfos computes DBegin/DEnd/DEndMax for every region in
// place, given the number of active panes (2 or 3). The length of the run
// of equal rows before each region is taken from pane 0: the rows between
// the previous region's End[0] and this region's Begin[0].
func primeLineDiffInfos(infos []LineDiffInfo, nPanes int) {
	runningOffset := 0
	var lastEnd [3]int
	for p := 0; p < nPanes; p++ {
		lastEnd[p] = -1
	}

	for i := range infos {
		info := &infos[i]
		equalSpan := info.Begin[0] - lastEnd[0] - 1
		runningOffset += equalSpan

		info.DBegin = runningOffset
		maxDEnd := info.DBegin - 1
		for p := 0; p < nPanes; p++ {
			info.DEnd[p] = info.DBegin + (info.End[p] - info.Begin[p])
			if info.DEnd[p] > maxDEnd {
				maxDEnd = info.DEnd[p]
			}
		}
		info.DEndMax = maxDEnd
		runningOffset = maxDEnd + 1

		for p := 0; p < nPanes; p++ {
			lastEnd[p] = info.End[p]
		}
	}
}

// spliceGhostRows builds the preprocessed images implied by a primed
// LineDiffInfo list: equal spans between regions are copied verbatim, and
// each region occupies DEndMax-DBegin+1 aligned rows in every pane, with
// rows beyond a pane's own contribution left as the zero value (alpha 0),
// i.e. a ghost row.
func spliceGhostRows(images []*Image, infos []LineDiffInfo) []*Image {
	n := len(images)
	outHeight := 0
	srcPos := make([]int, n)
	if len(infos) > 0 {
		last := infos[len(infos)-1]
		outHeight = last.DEndMax + 1
		for p := 0; p < n; p++ {
			srcPos[p] = last.End[p] + 1
		}
		trailing := images[0].Height() - srcPos[0]
		outHeight += trailing
	} else {
		outHeight = images[0].Height()
	}

	outs := make([]*Image, n)
	for p := 0; p < n; p++ {
		outs[p] = NewImage(images[p].Width(), outHeight)
	}

	readPos := make([]int, n)
	writePos := 0
	for _, info := range infos {
		equalLen := info.Begin[0] - readPos[0]
		for p := 0; p < n; p++ {
			copyRows(images[p], readPos[p], outs[p], writePos, equalLen)
			readPos[p] += equalLen
		}
		writePos += equalLen

		for p := 0; p < n; p++ {
			l := regionLen(info.Begin[p], info.End[p])
			copyRows(images[p], readPos[p], outs[p], writePos, l)
			readPos[p] += l
		}
		writePos = info.DEndMax + 1
	}

	trailing := images[0].Height() - readPos[0]
	for p := 0; p < n; p++ {
		copyRows(images[p], readPos[p], outs[p], writePos, trailing)
	}

	return outs
}

// copyRows copies n consecutive rows from src starting at srcY into dst
// starting at dstY. A no-op for n<=0.
func copyRows(src *Image, srcY int, dst *Image, dstY int, n int) {
	for i := 0; i < n; i++ {
		srow, err := src.Row(srcY + i)
		if err != nil {
			continue
		}
		drow, err := dst.Row(dstY + i)
		if err != nil {
			continue
		}
		copy(drow, srow)
	}
}
