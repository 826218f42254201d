package bufpool

import "testing"

func TestGetLength(t *testing.T) {
	for _, n := range []int{0, 1, 256, 257, 4096, 70000} {
		b := Get(n)
		if len(b) != n {
			t.Fatalf("Get(%d) len = %d, want %d", n, len(b), n)
		}
		Put(b)
	}
}

func TestGetPutReuse(t *testing.T) {
	b := Get(1024)
	for i := range b {
		b[i] = 0xAB
	}
	Put(b)

	b2 := Get(1024)
	if len(b2) != 1024 {
		t.Fatalf("len = %d, want 1024", len(b2))
	}
}

func TestPutOversizeIgnored(t *testing.T) {
	b := make([]byte, Size64K+1)
	Put(b) // must not panic; oversize buffers are simply dropped
}

func TestPutUndersizeIgnored(t *testing.T) {
	b := make([]byte, 4)
	Put(b) // must not panic; undersize buffers are simply dropped
}
