package winimerge

// convertToReal maps a y-coordinate in the aligned/preprocessed space
// (with ghost rows) back to a real row index in pane's own image, walking
// the primed line-diff list per spec.md §4.6. inside is false when y
// lands on a ghost row that pane contributes no real content to.
func convertToReal(infos []LineDiffInfo, pane, y int) (ry int, inside bool) {
	delta := 0
	for _, info := range infos {
		if y < info.DBegin {
			return y - delta, true
		}
		if y <= info.DEnd[pane] {
			return y - info.DBegin + info.Begin[pane], true
		}
		if y <= info.DEndMax {
			return info.End[pane], false
		}
		delta = info.DEndMax - info.End[pane]
	}
	return y - delta, true
}

// convertToDisplay is the inverse of convertToReal: a real row index in
// pane's own image to a y-coordinate in the aligned/preprocessed space.
func convertToDisplay(infos []LineDiffInfo, pane, ry int) (y int, inside bool) {
	delta := 0
	for _, info := range infos {
		if ry < info.Begin[pane] {
			return ry + delta, true
		}
		if ry <= info.End[pane] {
			return ry - info.Begin[pane] + info.DBegin, true
		}
		delta = info.DEndMax - info.End[pane]
	}
	return ry + delta, true
}

// convertToRealPos converts a point (px,py) in display space (offset +
// ghost-row space) for the given pane into real image coordinates,
// subtracting the pane offset and, if a line-diff is active, inverting the
// ghost-row splice along the insertion/deletion axis. clamp controls
// whether an out-of-image result is clamped into bounds (true) or
// returned as-is with inside=false (false), per spec.md §4.4.
func convertToRealPos(infos []LineDiffInfo, mode InsertionDeletionMode, pane int, px, py, ox, oy, w, h int, clamp bool) (rx, ry int, inside bool) {
	x, y := px-ox, py-oy
	inside = true

	switch mode {
	case InsertionDeletionVertical:
		if len(infos) > 0 {
			y, inside = convertToReal(infos, pane, y)
		}
	case InsertionDeletionHorizontal:
		if len(infos) > 0 {
			x, inside = convertToReal(infos, pane, x)
		}
	}

	if x < 0 || x >= w || y < 0 || y >= h {
		inside = false
		if clamp {
			x = clampInt(x, 0, w-1)
			y = clampInt(y, 0, h-1)
		}
	}
	return x, y, inside
}
