package winimerge

import "testing"

func TestCoordRoundTripVerticalInsertDelete(t *testing.T) {
	// One region: pane0 contributes rows [2,3], pane1 contributes none
	// (pure deletion from pane0's perspective), spanning aligned rows 5-6.
	infos := []LineDiffInfo{
		{
			Begin: [3]int{2, 4, 0}, End: [3]int{3, 3, 0},
			DBegin: 5, DEnd: [3]int{6, 4, 0}, DEndMax: 6,
		},
	}

	for _, ry := range []int{0, 1, 4, 5, 10, 20} {
		y, inside := convertToDisplay(infos, 0, ry)
		if !inside {
			t.Fatalf("convertToDisplay(pane0, %d): inside=false, want true", ry)
		}
		back, inside2 := convertToReal(infos, 0, y)
		if !inside2 {
			t.Fatalf("convertToReal(pane0, %d) [from ry=%d]: inside=false, want true", y, ry)
		}
		if back != ry {
			t.Errorf("round trip pane0: ry=%d -> y=%d -> ry=%d, want %d", ry, y, back, ry)
		}
	}
}

func TestConvertToRealPosOffsetAndClamp(t *testing.T) {
	rx, ry, inside := convertToRealPos(nil, InsertionDeletionNone, 0, 5, 5, 2, 2, 10, 10, true)
	if rx != 3 || ry != 3 || !inside {
		t.Fatalf("convertToRealPos with offset = (%d,%d,%v), want (3,3,true)", rx, ry, inside)
	}

	rx, ry, inside = convertToRealPos(nil, InsertionDeletionNone, 0, -5, -5, 0, 0, 10, 10, true)
	if inside {
		t.Fatalf("out-of-bounds point reported inside=true")
	}
	if rx != 0 || ry != 0 {
		t.Fatalf("clamp=true should clamp into [0,w) x [0,h): got (%d,%d)", rx, ry)
	}

	rx, ry, inside = convertToRealPos(nil, InsertionDeletionNone, 0, -5, -5, 0, 0, 10, 10, false)
	if inside {
		t.Fatalf("out-of-bounds point reported inside=true")
	}
	if rx != -5 || ry != -5 {
		t.Fatalf("clamp=false should pass through unclamped: got (%d,%d)", rx, ry)
	}
}

func TestGhostRowInsideFalse(t *testing.T) {
	infos := []LineDiffInfo{
		{
			Begin: [3]int{2, 2, 0}, End: [3]int{1, 3, 0}, // pane0 empty at this run
			DBegin: 2, DEnd: [3]int{1, 3, 0}, DEndMax: 3,
		},
	}
	// Real row 2 on pane 0 doesn't exist (End[0] < Begin[0]): any display
	// row inside the ghost extension [DEnd[0]+1, DEndMax] should report
	// inside=false for pane 0.
	_, inside := convertToReal(infos, 0, 3)
	if inside {
		t.Fatalf("ghost row should report inside=false")
	}
}
