package winimerge

// classifyTwoWay assigns Op to every region of a 2-pane compare: with only
// one pairwise grid there is nothing to disambiguate, so every region is a
// genuine difference.
func classifyTwoWay(infos []DiffInfo) {
	for i := range infos {
		infos[i].Op = OpDiff
	}
}

// classifyThreeWay assigns Op to every labeled region of the union grid,
// by tallying, over every cell carrying that region's label, which of the
// three pairwise grids (d01: pane0 vs pane1, d12: pane1 vs pane2, d02:
// pane0 vs pane2) agree anywhere in the region. A single pane having
// changed alone leaves exactly one pairwise comparison agreeing (the one
// between the two panes that did NOT change) per spec.md §4.4 step 7:
//   - only d12 agrees -> 1stOnly (pane 0 alone changed)
//   - only d02 agrees -> 2ndOnly (pane 1 alone changed)
//   - only d01 agrees -> 3rdOnly (pane 2 alone changed)
//   - otherwise        -> Diff
func classifyThreeWay(union *BlockGrid, d01, d12, d02 *BlockGrid, infos []DiffInfo) {
	for k := range infos {
		label := int32(k + 1)
		var agree01, agree12, agree02 bool
		hasCell := false
		for by := 0; by < union.Rows(); by++ {
			for bx := 0; bx < union.Cols(); bx++ {
				if union.At(bx, by) != label {
					continue
				}
				hasCell = true
				if d01.At(bx, by) != -1 {
					agree01 = true
				}
				if d12.At(bx, by) != -1 {
					agree12 = true
				}
				if d02.At(bx, by) != -1 {
					agree02 = true
				}
			}
		}
		if !hasCell {
			infos[k].Op = OpDiff
			continue
		}
		switch {
		case agree12 && !agree01 && !agree02:
			infos[k].Op = Op1stOnly
		case agree02 && !agree01 && !agree12:
			infos[k].Op = Op2ndOnly
		case agree01 && !agree02 && !agree12:
			infos[k].Op = Op3rdOnly
		default:
			infos[k].Op = OpDiff
		}
	}
}
