package winimerge

import "os"

// UndoRecord captures one pane mutation for undo/redo: the full pane
// image before and after the edit. Storing both whole-pane copies is
// simpler and safer than diffing pixel patches; each record costs memory
// proportional to the pane size.
type UndoRecord struct {
	pane       int
	oldImage   *Image
	newImage   *Image
	oldOx, oldOy int
	newOx, newOy int
}

// MergeBuffer extends DiffBuffer with operations that mutate pane
// content: copying a diff region between panes, pasting, resizing,
// deleting, and an undo/redo stack over those mutations.
type MergeBuffer struct {
	*DiffBuffer

	undoStack []UndoRecord
	undoPos   int // index of the next redo slot; undoStack[:undoPos] are applied
}

// NewMergeBuffer constructs an empty merge buffer.
func NewMergeBuffer(codec ImageCodec, settings *Settings) *MergeBuffer {
	return &MergeBuffer{DiffBuffer: NewDiffBuffer(codec, settings)}
}

func (m *MergeBuffer) checkWritable(pane int) (*pane, error) {
	p, err := m.pane(pane)
	if err != nil {
		return nil, err
	}
	if p.readOnly {
		return nil, &ReadOnly{Pane: pane}
	}
	return p, nil
}

// pushUndo records p's current state before a mutation, discarding any
// redo history beyond the current position.
func (m *MergeBuffer) pushUndo(paneIdx int, p *pane) {
	m.undoStack = append(m.undoStack[:m.undoPos], UndoRecord{
		pane:     paneIdx,
		oldImage: p.original32.Clone(),
		oldOx:    p.ox,
		oldOy:    p.oy,
	})
}

// commitUndo finalizes the most recently pushed record with the pane's
// post-mutation state.
func (m *MergeBuffer) commitUndo(p *pane) {
	rec := &m.undoStack[len(m.undoStack)-1]
	rec.newImage = p.original32.Clone()
	rec.newOx, rec.newOy = p.ox, p.oy
	m.undoPos = len(m.undoStack)
}

func (m *MergeBuffer) applyMutation(paneIdx int, p *pane, mutate func()) error {
	m.pushUndo(paneIdx, p)
	mutate()
	p.original = p.original32
	p.modCount++
	m.commitUndo(p)
	return m.CompareImages()
}

// CopyDiff copies the content of diff region i from src to dst.
func (m *MergeBuffer) CopyDiff(i int, src, dst int) error {
	if i < 0 || i >= len(m.diffInfos) {
		return &BadPaneIndex{Index: i}
	}
	dp, err := m.checkWritable(dst)
	if err != nil {
		return err
	}
	sp, err := m.pane(src)
	if err != nil {
		return err
	}

	info := m.diffInfos[i]
	blockSize := m.settings.BlockSize()
	x1, y1 := info.Rect.Left*blockSize, info.Rect.Top*blockSize
	x2, y2 := info.Rect.Right*blockSize-1, info.Rect.Bottom*blockSize-1

	mode := m.settings.InsertionDeletionMode()

	return m.applyMutation(dst, dp, func() {
		srcReal1X, srcReal1Y, _ := convertToRealPos(m.lineDiffInfos, mode, src, x1, y1, sp.ox, sp.oy, sp.preprocessed.Width(), sp.preprocessed.Height(), true)
		srcReal2X, srcReal2Y, _ := convertToRealPos(m.lineDiffInfos, mode, src, x2, y2, sp.ox, sp.oy, sp.preprocessed.Width(), sp.preprocessed.Height(), true)
		dstRealX, dstRealY, _ := convertToRealPos(m.lineDiffInfos, mode, dst, x1, y1, dp.ox, dp.oy, dp.preprocessed.Width(), dp.preprocessed.Height(), true)

		patch := sp.original32.CopySub(srcReal1X, srcReal1Y, srcReal2X, srcReal2Y)
		dp.original32.PasteSub(patch, dstRealX, dstRealY)

		if mode != InsertionDeletionNone && sp.ox == 0 && sp.oy == 0 && dp.ox == 0 && dp.oy == 0 {
			m.alignLineCounts(src, dst, sp, dp, mode, x1, y1, x2, y2)
		}
	})
}

// alignLineCounts is CopyDiff's insertion/deletion-aware follow-up (spec.md
// §4.5): when the copied region spans a primed line-diff run, dst's row
// (or, in horizontal mode, column) count is brought in line with src's by
// inserting or deleting whole rows/columns at that run's position, so the
// two panes stay aligned under the active insertion/deletion mode. Only
// the first overlapping run is adjusted; any further runs covered by the
// same diff region are left unchanged.
func (m *MergeBuffer) alignLineCounts(src, dst int, sp, dp *pane, mode InsertionDeletionMode, x1, y1, x2, y2 int) {
	if len(m.lineDiffInfos) == 0 {
		return
	}
	lo, hi := y1, y2
	if mode == InsertionDeletionHorizontal {
		lo, hi = x1, x2
	}
	for _, region := range m.lineDiffInfos {
		if hi < region.DBegin || lo > region.DEndMax {
			continue
		}
		srcLen := regionLen(region.Begin[src], region.End[src])
		dstLen := regionLen(region.Begin[dst], region.End[dst])
		delta := srcLen - dstLen
		if delta == 0 {
			return
		}
		at := region.Begin[dst]
		if mode == InsertionDeletionVertical {
			if delta > 0 {
				dp.original32 = insertRows(dp.original32, at, delta)
			} else {
				dp.original32 = deleteRows(dp.original32, at, -delta)
			}
		} else {
			if delta > 0 {
				dp.original32 = insertCols(dp.original32, at, delta)
			} else {
				dp.original32 = deleteCols(dp.original32, at, -delta)
			}
		}
		return
	}
}

// CopyDiffAll copies every diff region from src to dst.
func (m *MergeBuffer) CopyDiffAll(src, dst int) error {
	for i := range m.diffInfos {
		if err := m.CopyDiff(i, src, dst); err != nil {
			return err
		}
	}
	return nil
}

// CopyDiff3Way copies diff region i into dst, inferring the source pane
// from the region's classification: Op1stOnly copies from pane 0,
// Op2ndOnly from pane 1, Op3rdOnly from pane 2, and OpDiff from pane 0
// (pane 1 when dst is 0). When the chosen source is dst itself, the next
// pane is used instead.
func (m *MergeBuffer) CopyDiff3Way(i int, dst int) error {
	if i < 0 || i >= len(m.diffInfos) {
		return &BadPaneIndex{Index: i}
	}
	src := 0
	switch m.diffInfos[i].Op {
	case Op1stOnly:
		src = 0
	case Op2ndOnly:
		src = 1
	case Op3rdOnly:
		src = 2
	default:
		if dst == 0 {
			src = 1
		}
	}
	if src == dst {
		src = (src + 1) % len(m.panes)
	}
	return m.CopyDiff(i, src, dst)
}

// DeleteRectangle clears the inclusive real-image rectangle [l,t]-[r,b]
// on pane to transparent black.
func (m *MergeBuffer) DeleteRectangle(pane, l, t, r, b int) error {
	p, err := m.checkWritable(pane)
	if err != nil {
		return err
	}
	return m.applyMutation(pane, p, func() {
		blank := NewImage(r-l+1, b-t+1)
		p.original32.PasteSub(blank, l, t)
	})
}

// PasteImage pastes src onto pane at real-image coordinates (x,y).
func (m *MergeBuffer) PasteImage(pane int, x, y int, src *Image) error {
	p, err := m.checkWritable(pane)
	if err != nil {
		return err
	}
	return m.applyMutation(pane, p, func() {
		p.original32.PasteSub(src, x, y)
	})
}

// Resize changes pane's canvas size, preserving existing content in the
// top-left and filling any newly exposed area with transparent black.
func (m *MergeBuffer) Resize(pane, w, h int) error {
	p, err := m.checkWritable(pane)
	if err != nil {
		return err
	}
	return m.applyMutation(pane, p, func() {
		resized := NewImage(w, h)
		resized.PasteSub(p.original32, 0, 0)
		p.original32 = resized
	})
}

// NewImages replaces every pane with a fresh blank w x h image, for
// starting a merge from scratch rather than from files.
func (m *MergeBuffer) NewImages(n int, pages int, w, h int) error {
	if n != 2 && n != 3 {
		return &NotSupported{Op: "NewImages requires 2 or 3 panes"}
	}
	panes := make([]*pane, n)
	for i := range panes {
		p := newPane()
		p.pageCount = maxInt(pages, 1)
		p.original = NewImage(w, h)
		p.original32 = NewImage(w, h)
		panes[i] = p
	}
	m.panes = panes
	m.undoStack = nil
	m.undoPos = 0
	m.currentDiffIndex = -1
	return m.CompareImages()
}

// CloseImages discards all pane state, returning the buffer to its
// just-constructed condition.
func (m *MergeBuffer) CloseImages() {
	m.panes = nil
	m.diffInfos = nil
	m.lineDiffInfos = nil
	m.undoStack = nil
	m.undoPos = 0
	m.currentDiffIndex = -1
}

// Undo reverts the most recent mutation, if any.
func (m *MergeBuffer) Undo() error {
	if m.undoPos == 0 {
		return nil
	}
	m.undoPos--
	rec := m.undoStack[m.undoPos]
	p, err := m.pane(rec.pane)
	if err != nil {
		return err
	}
	p.original32 = rec.oldImage.Clone()
	p.original = p.original32
	p.ox, p.oy = rec.oldOx, rec.oldOy
	p.modCount--
	return m.CompareImages()
}

// Redo reapplies the most recently undone mutation, if any.
func (m *MergeBuffer) Redo() error {
	if m.undoPos >= len(m.undoStack) {
		return nil
	}
	rec := m.undoStack[m.undoPos]
	m.undoPos++
	p, err := m.pane(rec.pane)
	if err != nil {
		return err
	}
	p.original32 = rec.newImage.Clone()
	p.original = p.original32
	p.ox, p.oy = rec.newOx, rec.newOy
	p.modCount++
	return m.CompareImages()
}

// SaveImage persists pane through the codec to its own fileName.
func (m *MergeBuffer) SaveImage(pane int) error {
	p, err := m.pane(pane)
	if err != nil {
		return err
	}
	return m.saveTo(p, p.fileName)
}

// SaveImages saves every pane to its own fileName.
func (m *MergeBuffer) SaveImages() error {
	for i := range m.panes {
		if err := m.SaveImage(i); err != nil {
			return err
		}
	}
	return nil
}

// SaveAs persists pane to a new path and updates its fileName.
func (m *MergeBuffer) SaveAs(pane int, path string) error {
	p, err := m.pane(pane)
	if err != nil {
		return err
	}
	if err := m.saveTo(p, path); err != nil {
		return err
	}
	p.fileName = path
	return nil
}

// SaveDiffImageAs renders the current DiffMap (see GetDiffMap) and
// persists it as a standalone image, without touching any pane's
// modification state.
func (m *MergeBuffer) SaveDiffImageAs(path string) error {
	if len(m.panes) == 0 {
		return &NotSupported{Op: "no images open"}
	}
	w, h := m.panes[0].preprocessed.Width(), m.panes[0].preprocessed.Height()
	img := m.GetDiffMap(w, h)

	f, err := os.Create(path)
	if err != nil {
		return &SaveError{Path: path, Cause: err}
	}
	defer f.Close()
	if err := m.codec.Encode(f, path, img); err != nil {
		return &SaveError{Path: path, Cause: err}
	}
	return nil
}

func (m *MergeBuffer) saveTo(p *pane, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return &SaveError{Path: path, Cause: err}
	}
	defer f.Close()
	if err := m.codec.Encode(f, path, p.original32); err != nil {
		return &SaveError{Path: path, Cause: err}
	}
	p.markSaved()
	return nil
}

// IsModified reports whether pane has unsaved changes.
func (m *MergeBuffer) IsModified(pane int) (bool, error) {
	p, err := m.pane(pane)
	if err != nil {
		return false, err
	}
	return p.modified(), nil
}

// AnyModified reports whether any pane has unsaved changes.
func (m *MergeBuffer) AnyModified() bool {
	for _, p := range m.panes {
		if p.modified() {
			return true
		}
	}
	return false
}
