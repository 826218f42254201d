package scanline

import (
	"fmt"
	"math/rand"
	"testing"
)

// intRecord is a tiny Record implementation used only by these tests.
type intRecord int

func (r intRecord) Equals(other Record) bool {
	o, ok := other.(intRecord)
	return ok && r == o
}

func (r intRecord) Hash() uint64 {
	return uint64(r)
}

func recs(values ...int) []Record {
	out := make([]Record, len(values))
	for i, v := range values {
		out[i] = intRecord(v)
	}
	return out
}

func allAlgorithms() []Algorithm {
	return []Algorithm{Myers, Minimal, Patience, Histogram, None}
}

func applyScript(a, b []Record, script EditScript) []Record {
	var out []Record
	for _, e := range script {
		switch e.Op {
		case Equal, Replace, Insert:
			out = append(out, b[e.B])
		case Delete:
			// contributes nothing to b
		}
	}
	return out
}

func TestDiff_AppliedScriptReproducesB(t *testing.T) {
	cases := [][2][]int{
		{{1, 2, 3}, {1, 2, 3}},
		{{1, 2, 3}, {1, 9, 3}},
		{{1, 2, 3}, {1, 2, 9, 3}},
		{{1, 2, 3, 4}, {1, 4}},
		{{}, {1, 2, 3}},
		{{1, 2, 3}, {}},
		{{}, {}},
		{{5, 5, 5, 5}, {5, 5, 5, 5, 5}},
	}
	for _, algo := range allAlgorithms() {
		for _, c := range cases {
			a, b := recs(c[0]...), recs(c[1]...)
			script := Diff(a, b, algo)
			got := applyScript(a, b, script)
			if !sameRecords(got, b) {
				t.Errorf("%s: Diff(%v, %v) does not reconstruct b: got %v", algo, c[0], c[1], got)
			}
			if script.CountA() != len(a) {
				t.Errorf("%s: CountA() = %d, want %d for %v/%v", algo, script.CountA(), len(a), c[0], c[1])
			}
			if script.CountB() != len(b) {
				t.Errorf("%s: CountB() = %d, want %d for %v/%v", algo, script.CountB(), len(b), c[0], c[1])
			}
		}
	}
}

func sameRecords(a, b []Record) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Equals(b[i]) {
			return false
		}
	}
	return true
}

func TestDiff_IdenticalSequencesAreAllEqual(t *testing.T) {
	a := recs(1, 2, 3, 4, 5)
	for _, algo := range allAlgorithms() {
		script := Diff(a, a, algo)
		for _, e := range script {
			if e.Op != Equal {
				t.Fatalf("%s: identical sequences produced a non-Equal edit: %+v", algo, e)
			}
		}
		if len(script) != len(a) {
			t.Errorf("%s: len(script) = %d, want %d", algo, len(script), len(a))
		}
	}
}

func TestDiff_LengthBounds(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for trial := 0; trial < 20; trial++ {
		n := rng.Intn(30)
		m := rng.Intn(30)
		av := make([]int, n)
		bv := make([]int, m)
		for i := range av {
			av[i] = rng.Intn(6)
		}
		for i := range bv {
			bv[i] = rng.Intn(6)
		}
		a, b := recs(av...), recs(bv...)
		for _, algo := range allAlgorithms() {
			script := Diff(a, b, algo)
			maxLen := n
			if m > maxLen {
				maxLen = m
			}
			if len(script) < maxLen || len(script) > n+m {
				t.Fatalf("%s: len(script)=%d out of bounds [%d,%d] for a=%v b=%v", algo, len(script), maxLen, n+m, av, bv)
			}
		}
	}
}

func TestRuns_CoalescesTouchingDeleteInsert(t *testing.T) {
	script := EditScript{
		{Op: Equal, A: 0, B: 0},
		{Op: Delete, A: 1, B: 1},
		{Op: Insert, A: 2, B: 1},
		{Op: Insert, A: 2, B: 2},
		{Op: Equal, A: 2, B: 3},
	}
	runs := Runs(script)
	if len(runs) != 1 {
		t.Fatalf("Runs() = %d runs, want 1: %+v", len(runs), runs)
	}
	r := runs[0]
	if r.ABegin != 1 || r.AEnd != 2 {
		t.Errorf("run A-range = [%d,%d), want [1,2)", r.ABegin, r.AEnd)
	}
	if r.BBegin != 1 || r.BEnd != 3 {
		t.Errorf("run B-range = [%d,%d), want [1,3)", r.BBegin, r.BEnd)
	}
}

func TestRuns_SkipsEqualEdits(t *testing.T) {
	script := EditScript{
		{Op: Equal, A: 0, B: 0},
		{Op: Equal, A: 1, B: 1},
	}
	if runs := Runs(script); len(runs) != 0 {
		t.Errorf("Runs() on all-Equal script = %+v, want none", runs)
	}
}

func TestMxcost_MonotonicInInputSize(t *testing.T) {
	prev := mxcost(0, 0)
	for n := 1; n <= 5000; n += 137 {
		cur := mxcost(n, n)
		if cur < prev {
			t.Fatalf("mxcost(%d,%d)=%d decreased from previous %d", n, n, cur, prev)
		}
		prev = cur
	}
	if got := mxcost(0, 0); got < 256 {
		t.Errorf("mxcost(0,0) = %d, want >= %d (heuristicMinimum floor)", got, 256)
	}
}

func TestAlgorithm_String(t *testing.T) {
	want := map[Algorithm]string{
		Myers:     "myers",
		Minimal:   "minimal",
		Patience:  "patience",
		Histogram: "histogram",
		None:      "none",
	}
	for algo, s := range want {
		if got := algo.String(); got != s {
			t.Errorf("Algorithm(%d).String() = %q, want %q", int(algo), got, s)
		}
	}
	if got := Algorithm(99).String(); got != "unknown" {
		t.Errorf("Algorithm(99).String() = %q, want %q", got, "unknown")
	}
}

func TestPatience_FindsUniqueAnchorsAcrossGap(t *testing.T) {
	// 2 and 3 are unique anchors on both sides; the noisy run of 1s in
	// between should still land on a usable alignment.
	a := recs(1, 1, 1, 2, 1, 1, 1, 3, 1, 1, 1)
	b := recs(1, 1, 2, 1, 1, 1, 1, 3, 1, 1)
	script := Diff(a, b, Patience)
	if got := applyScript(a, b, script); !sameRecords(got, b) {
		t.Fatalf("patience diff failed to reconstruct b: got %v", got)
	}
	found2, found3 := false, false
	for _, e := range script {
		if e.Op == Equal && e.A < len(a) {
			if v := a[e.A].(intRecord); v == 2 {
				found2 = true
			}
			if v := a[e.A].(intRecord); v == 3 {
				found3 = true
			}
		}
	}
	if !found2 || !found3 {
		t.Errorf("expected unique records 2 and 3 to align as Equal, found2=%v found3=%v", found2, found3)
	}
}

func TestHistogram_FallsBackWhenAllRecordsRepeat(t *testing.T) {
	a := recs(1, 1, 1, 1)
	b := recs(1, 1, 1, 1, 1)
	script := Diff(a, b, Histogram)
	if got := applyScript(a, b, script); !sameRecords(got, b) {
		t.Fatalf("histogram diff failed to reconstruct b: got %v", got)
	}
}

func TestNone_ReplacesIndexForIndex(t *testing.T) {
	a := recs(1, 2, 3)
	b := recs(9, 9, 9)
	script := Diff(a, b, None)
	for i, e := range script {
		if e.Op != Replace {
			t.Fatalf("edit %d = %v, want Replace", i, e.Op)
		}
	}
}

func ExampleDiff() {
	a := recs(1, 2, 3)
	b := recs(1, 9, 3)
	script := Diff(a, b, Myers)
	for _, e := range script {
		fmt.Printf("%s a=%d b=%d\n", e.Op, e.A, e.B)
	}
	// Output:
	// = a=0 b=0
	// ! a=1 b=1
	// = a=2 b=2
}
