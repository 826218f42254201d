package scanline

// diffNone pairs records index-for-index without searching for a better
// alignment: a mismatch at a given index is a Replace, and once the shorter
// sequence is exhausted the remainder of the longer one is a pure
// Insert/Delete run.
func diffNone(a, b []Record) EditScript {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	script := make(EditScript, 0, len(a)+len(b)-n)
	for i := 0; i < n; i++ {
		if a[i].Equals(b[i]) {
			script = append(script, Edit{Op: Equal, A: i, B: i})
		} else {
			script = append(script, Edit{Op: Replace, A: i, B: i})
		}
	}
	for i := n; i < len(a); i++ {
		script = append(script, Edit{Op: Delete, A: i, B: n})
	}
	for i := n; i < len(b); i++ {
		script = append(script, Edit{Op: Insert, A: n, B: i})
	}
	return script
}
