package linemerge

import "testing"

func alwaysEqual(Region) bool { return true }
func alwaysDiffer(Region) bool { return false }

func TestThreeWayLineMerge_NoDiffs(t *testing.T) {
	regions := ThreeWayLineMerge(nil, nil, alwaysEqual)
	if len(regions) != 0 {
		t.Fatalf("expected no regions, got %+v", regions)
	}
}

func TestThreeWayLineMerge_LeftOnly(t *testing.T) {
	diffLeft := []PairDiff{
		{Center: Span{5, 5}, Other: Span{5, 6}},
	}
	regions := ThreeWayLineMerge(diffLeft, nil, alwaysEqual)
	if len(regions) != 1 {
		t.Fatalf("expected 1 region, got %d: %+v", len(regions), regions)
	}
	r := regions[0]
	if r.Op != Op1stOnly {
		t.Errorf("Op = %v, want Op1stOnly", r.Op)
	}
	if r.Begin[1] != 5 || r.End[1] != 5 {
		t.Errorf("center range = [%d,%d], want [5,5]", r.Begin[1], r.End[1])
	}
}

func TestThreeWayLineMerge_RightOnly(t *testing.T) {
	diffRight := []PairDiff{
		{Center: Span{3, 3}, Other: Span{3, 4}},
	}
	regions := ThreeWayLineMerge(nil, diffRight, alwaysEqual)
	if len(regions) != 1 {
		t.Fatalf("expected 1 region, got %d: %+v", len(regions), regions)
	}
	if regions[0].Op != Op3rdOnly {
		t.Errorf("Op = %v, want Op3rdOnly", regions[0].Op)
	}
}

func TestThreeWayLineMerge_OverlappingBlockClassifiesByContent(t *testing.T) {
	diffLeft := []PairDiff{
		{Center: Span{10, 10}, Other: Span{10, 10}},
	}
	diffRight := []PairDiff{
		{Center: Span{10, 10}, Other: Span{10, 10}},
	}

	regions := ThreeWayLineMerge(diffLeft, diffRight, alwaysEqual)
	if len(regions) != 1 {
		t.Fatalf("expected 1 merged region, got %d: %+v", len(regions), regions)
	}
	if regions[0].Op != Op2ndOnly {
		t.Errorf("Op = %v, want Op2ndOnly when left and right agree", regions[0].Op)
	}

	regions = ThreeWayLineMerge(diffLeft, diffRight, alwaysDiffer)
	if regions[0].Op != OpDiff {
		t.Errorf("Op = %v, want OpDiff when left and right disagree", regions[0].Op)
	}
}

func TestThreeWayLineMerge_NonOverlappingBlocksStayIndependent(t *testing.T) {
	diffLeft := []PairDiff{
		{Center: Span{2, 2}, Other: Span{2, 2}},
	}
	diffRight := []PairDiff{
		{Center: Span{20, 20}, Other: Span{20, 20}},
	}
	regions := ThreeWayLineMerge(diffLeft, diffRight, alwaysEqual)
	if len(regions) != 2 {
		t.Fatalf("expected 2 independent regions, got %d: %+v", len(regions), regions)
	}
	if regions[0].Op != Op1stOnly || regions[1].Op != Op3rdOnly {
		t.Errorf("ops = %v, %v; want Op1stOnly, Op3rdOnly", regions[0].Op, regions[1].Op)
	}
}

func TestOp_String(t *testing.T) {
	want := map[Op]string{
		OpNone:    "none",
		Op1stOnly: "1st-only",
		Op2ndOnly: "2nd-only",
		Op3rdOnly: "3rd-only",
		OpDiff:    "diff",
	}
	for op, s := range want {
		if got := op.String(); got != s {
			t.Errorf("Op(%d).String() = %q, want %q", int(op), got, s)
		}
	}
}
