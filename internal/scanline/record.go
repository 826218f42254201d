// Package scanline implements a generic record-level diff engine, a port of
// LibXDiff specialized to operate over any equal-sized sequence of opaque
// records rather than lines of text. It is used to detect row- or
// column-level insertions and deletions between image panes.
package scanline

// Record is a single comparable element of a sequence being diffed (in this
// module, one scanline of pixels). Equals must be consistent with Hash: if
// Equals(other) is true, Hash() must be equal too.
type Record interface {
	Equals(other Record) bool
	Hash() uint64
}

// EdOp tags one entry of an edit script.
type EdOp byte

const (
	// Equal marks a record present, unchanged, in both sequences.
	Equal EdOp = '='
	// Insert marks a record present only in the second (B) sequence.
	Insert EdOp = '+'
	// Delete marks a record present only in the first (A) sequence.
	Delete EdOp = '-'
	// Replace marks a record replaced: present in both, but unequal.
	Replace EdOp = '!'
)

func (op EdOp) String() string {
	return string(rune(op))
}

// Edit is one entry of an edit script, pointing back at the record indices
// it came from. For Insert, A is the index before which the insertion
// happens (exclusive of A). For Delete, B plays the symmetric role.
type Edit struct {
	Op EdOp
	A  int // index into the first sequence (valid for Equal, Delete, Replace)
	B  int // index into the second sequence (valid for Equal, Insert, Replace)
}

// EditScript is the ordered output of a diff: one Edit per aligned position,
// covering every record of the longer input sequence.
type EditScript []Edit

// CountA returns the number of records of the first sequence accounted for
// (Equal + Replace + Delete).
func (s EditScript) CountA() int {
	n := 0
	for _, e := range s {
		if e.Op == Equal || e.Op == Replace || e.Op == Delete {
			n++
		}
	}
	return n
}

// CountB returns the number of records of the second sequence accounted for
// (Equal + Replace + Insert).
func (s EditScript) CountB() int {
	n := 0
	for _, e := range s {
		if e.Op == Equal || e.Op == Replace || e.Op == Insert {
			n++
		}
	}
	return n
}
