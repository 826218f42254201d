package winimerge

import (
	"bytes"
	"math"

	"github.com/WinMerge/winimerge/internal/scanline"
)

// rowRecord adapts one BGRA8 scanline of pixels to scanline.Record, so the
// generic record-level diff engine can operate over rows of pixels
// exactly as it would over lines of text.
type rowRecord struct {
	data      []byte
	threshold float64
}

// rowRecords builds the full sequence of rowRecord for every scanline of
// img, honoring the given color-distance threshold.
func rowRecords(img *Image, threshold float64) []scanline.Record {
	out := make([]scanline.Record, img.Height())
	for y := 0; y < img.Height(); y++ {
		row, _ := img.Row(y)
		out[y] = rowRecord{data: row, threshold: threshold}
	}
	return out
}

// quantBucketWidth returns the quantization bucket width applied to each
// byte before hashing, per spec.md §4.2: w = max(1, floor(2*sqrt(T^2/3))).
func quantBucketWidth(threshold float64) int {
	if threshold <= 0 {
		return 1
	}
	w := int(math.Floor(2 * math.Sqrt(threshold*threshold/3)))
	if w < 1 {
		w = 1
	}
	return w
}

func (r rowRecord) Equals(other scanline.Record) bool {
	o, ok := other.(rowRecord)
	if !ok || len(r.data) != len(o.data) {
		return false
	}
	if r.threshold <= 0 {
		return bytes.Equal(r.data, o.data)
	}
	for i := 0; i+4 <= len(r.data); i += 4 {
		c1 := Color{B: r.data[i], G: r.data[i+1], R: r.data[i+2], A: r.data[i+3]}
		c2 := Color{B: o.data[i], G: o.data[i+1], R: o.data[i+2], A: o.data[i+3]}
		if !colorsEqual(c1, c2, r.threshold) {
			return false
		}
	}
	return true
}

// Hash folds the quantized bytes of the row into a 64-bit value with the
// FNV-1a offset/prime. With threshold 0 it is consistent with Equals. With a
// non-zero threshold, two bytes within the threshold of each other can fall
// into adjacent buckets, so rows that Equals accepts can hash differently.
func (r rowRecord) Hash() uint64 {
	const (
		offset64 = 14695981039346656037
		prime64  = 1099511628211
	)
	w := quantBucketWidth(r.threshold)
	h := uint64(offset64)
	for _, b := range r.data {
		q := byte(int(b) / w)
		h ^= uint64(q)
		h *= prime64
	}
	return h
}
