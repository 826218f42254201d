package winimerge

import "testing"

func newMergeBufferFromImages(settings *Settings, imgs ...*Image) *MergeBuffer {
	m := NewMergeBuffer(nil, settings)
	panes := make([]*pane, len(imgs))
	for i, img := range imgs {
		p := newPane()
		p.original = img.Clone()
		p.original32 = img.Clone()
		panes[i] = p
	}
	m.panes = panes
	m.currentDiffIndex = -1
	if err := m.CompareImages(); err != nil {
		panic(err)
	}
	return m
}

func TestUndoRedoCopyDiffExact(t *testing.T) {
	settings := NewSettings()
	settings.SetBlockSize(8)
	settings.SetColorDistanceThreshold(0)

	pane0 := white16()
	pane1 := white16()
	if err := pane1.Set(3, 5, RGBA(0, 0, 0, 255)); err != nil {
		t.Fatal(err)
	}

	initialPane1 := pane1.Clone()
	m := newMergeBufferFromImages(settings, pane0, pane1)

	if m.DiffCount() != 1 {
		t.Fatalf("DiffCount() = %d, want 1", m.DiffCount())
	}
	if m.AnyModified() {
		t.Fatalf("AnyModified() = true before any edit")
	}

	if err := m.CopyDiff(0, 0, 1); err != nil {
		t.Fatalf("CopyDiff: %v", err)
	}
	postCopyPane1 := m.panes[1].original32.Clone()
	if !imagesEqual(postCopyPane1, pane0) {
		t.Fatalf("after CopyDiff, pane1 != pane0")
	}
	if !m.panes[1].modified() {
		t.Fatalf("pane1 not marked modified after CopyDiff")
	}

	if err := m.Undo(); err != nil {
		t.Fatalf("Undo: %v", err)
	}
	if !imagesEqual(m.panes[1].original32, initialPane1) {
		t.Fatalf("after Undo, pane1 != initial pane1")
	}
	if m.panes[1].modified() {
		t.Fatalf("pane1 should report modified=false after Undo (spec.md §8)")
	}

	if err := m.Redo(); err != nil {
		t.Fatalf("Redo: %v", err)
	}
	if !imagesEqual(m.panes[1].original32, postCopyPane1) {
		t.Fatalf("after Redo, pane1 != post-copy pane1")
	}
	if !m.panes[1].modified() {
		t.Fatalf("pane1 not marked modified after Redo")
	}
}

func TestReadOnlyPaneRejectsMutation(t *testing.T) {
	settings := NewSettings()
	m := newMergeBufferFromImages(settings, white16(), white16())
	m.panes[1].readOnly = true

	err := m.DeleteRectangle(1, 0, 0, 3, 3)
	var roErr *ReadOnly
	if err == nil {
		t.Fatalf("DeleteRectangle on read-only pane: want error, got nil")
	}
	if !asReadOnly(err, &roErr) {
		t.Fatalf("DeleteRectangle error = %v, want *ReadOnly", err)
	}
}

func asReadOnly(err error, target **ReadOnly) bool {
	if e, ok := err.(*ReadOnly); ok {
		*target = e
		return true
	}
	return false
}

func TestDeleteRectangleClearsToTransparent(t *testing.T) {
	settings := NewSettings()
	m := newMergeBufferFromImages(settings, white16(), white16())

	if err := m.DeleteRectangle(0, 2, 2, 5, 5); err != nil {
		t.Fatalf("DeleteRectangle: %v", err)
	}
	for y := 2; y <= 5; y++ {
		for x := 2; x <= 5; x++ {
			c, err := m.panes[0].original32.At(x, y)
			if err != nil {
				t.Fatal(err)
			}
			if c != (Color{}) {
				t.Fatalf("(%d,%d) = %+v, want transparent zero", x, y, c)
			}
		}
	}
}

func TestResizePreservesTopLeft(t *testing.T) {
	settings := NewSettings()
	m := newMergeBufferFromImages(settings, white16(), white16())

	if err := m.Resize(0, 24, 24); err != nil {
		t.Fatalf("Resize: %v", err)
	}
	img := m.panes[0].original32
	if img.Width() != 24 || img.Height() != 24 {
		t.Fatalf("size = %dx%d, want 24x24", img.Width(), img.Height())
	}
	c, err := img.At(0, 0)
	if err != nil || c != RGBA(255, 255, 255, 255) {
		t.Fatalf("(0,0) = %v, %v, want white", c, err)
	}
	c, err = img.At(20, 20)
	if err != nil || c != (Color{}) {
		t.Fatalf("(20,20) = %v, %v, want transparent (newly exposed)", c, err)
	}
}

// TestCopyDiffAlignsRowCounts exercises spec.md §4.5's insertion/deletion
// follow-up: copying a diff region under InsertionDeletionVertical mode
// (with zero pane offsets) must bring dst's row count in line with src's
// at the matching line-diff run, not just patch the copied rectangle.
func TestCopyDiffAlignsRowCounts(t *testing.T) {
	rowColor := func(v uint8) Color { return RGBA(v, v, v, 255) }
	imgFromRows := func(rows []uint8) *Image {
		img := NewImage(4, len(rows))
		for y, v := range rows {
			for x := 0; x < 4; x++ {
				img.Set(x, y, rowColor(v))
			}
		}
		return img
	}

	// pane0 has one extra row (value 99) that pane1 lacks.
	pane0 := imgFromRows([]uint8{10, 20, 30, 40, 50, 99, 60, 70, 80, 90})
	pane1 := imgFromRows([]uint8{10, 20, 30, 40, 50, 60, 70, 80, 90})

	settings := NewSettings()
	settings.SetBlockSize(1)
	settings.SetColorDistanceThreshold(0)
	settings.SetInsertionDeletionMode(InsertionDeletionVertical)

	m := newMergeBufferFromImages(settings, pane0, pane1)

	if m.panes[0].original32.Height() != 10 || m.panes[1].original32.Height() != 9 {
		t.Fatalf("initial heights = %d,%d, want 10,9", m.panes[0].original32.Height(), m.panes[1].original32.Height())
	}
	if got := m.DiffCount(); got != 1 {
		t.Fatalf("DiffCount() = %d, want 1", got)
	}

	if err := m.CopyDiff(0, 0, 1); err != nil {
		t.Fatalf("CopyDiff: %v", err)
	}

	if got := m.panes[1].original32.Height(); got != m.panes[0].original32.Height() {
		t.Fatalf("pane1 height = %d after CopyDiff, want %d (aligned to pane0)", got, m.panes[0].original32.Height())
	}
}

func imagesEqual(a, b *Image) bool {
	if a.Width() != b.Width() || a.Height() != b.Height() {
		return false
	}
	for y := 0; y < a.Height(); y++ {
		ra, _ := a.Row(y)
		rb, _ := b.Row(y)
		for i := range ra {
			if ra[i] != rb[i] {
				return false
			}
		}
	}
	return true
}
