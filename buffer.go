package winimerge

import (
	"io"
	"math"
	"os"

	"github.com/WinMerge/winimerge/internal/bufpool"
	"github.com/WinMerge/winimerge/internal/linemerge"
	"github.com/WinMerge/winimerge/internal/scanline"
)

// DiffBuffer holds 2 or 3 image panes and runs the comparison pipeline:
// preprocessing, block comparison, flood-fill labeling, and (for 3 panes)
// three-way classification.
type DiffBuffer struct {
	settings *Settings
	codec    ImageCodec

	panes []*pane

	grid01, grid12, grid02 *BlockGrid // pairwise block grids
	union                  *BlockGrid // labeled grid (== grid01 for 2-pane)

	diffInfos     []DiffInfo
	lineDiffInfos []LineDiffInfo

	currentDiffIndex int
}

// NewDiffBuffer constructs an empty buffer bound to the given codec and
// settings. Open must be called before comparison.
func NewDiffBuffer(codec ImageCodec, settings *Settings) *DiffBuffer {
	if settings == nil {
		settings = NewSettings()
	}
	return &DiffBuffer{settings: settings, codec: codec, currentDiffIndex: -1}
}

func (b *DiffBuffer) Settings() *Settings { return b.settings }

// NPanes returns the number of open panes (0, 2, or 3).
func (b *DiffBuffer) NPanes() int { return len(b.panes) }

func (b *DiffBuffer) pane(i int) (*pane, error) {
	if i < 0 || i >= len(b.panes) {
		return nil, &BadPaneIndex{Index: i}
	}
	return b.panes[i], nil
}

// Open loads one file per pane (2 or 3 names), decodes it through the
// codec, applies any EXIF orientation found in its metadata, and runs the
// first comparison.
func (b *DiffBuffer) Open(names []string) error {
	if len(names) != 2 && len(names) != 3 {
		return &LoadError{Path: "", Cause: errBadPaneCount}
	}
	panes := make([]*pane, len(names))
	for i, name := range names {
		p := newPane()
		p.fileName = name
		if err := b.loadPane(p, name, 0); err != nil {
			return err
		}
		panes[i] = p
	}
	b.panes = panes
	b.currentDiffIndex = -1
	return b.CompareImages()
}

var errBadPaneCount = &NotSupported{Op: "open requires 2 or 3 panes"}

// loadPane decodes page into p, applying EXIF orientation.
func (b *DiffBuffer) loadPane(p *pane, name string, page int) error {
	r, err := os.Open(name)
	if err != nil {
		return &LoadError{Path: name, Cause: err}
	}
	defer r.Close()

	mp, ok, err := b.codec.DecodeMultipage(r, name)
	if err != nil {
		return &LoadError{Path: name, Cause: err}
	}

	var img *Image
	var metadata map[string]string
	if ok && mp != nil && len(mp.Pages) > 0 {
		if page < 0 || page >= len(mp.Pages) {
			return &PageOutOfRange{Page: page}
		}
		img = mp.Pages[page]
		if page < len(mp.Metadata) {
			metadata = mp.Metadata[page]
		}
		p.pageCount = len(mp.Pages)
	} else {
		if _, err := r.Seek(0, io.SeekStart); err != nil {
			return &LoadError{Path: name, Cause: err}
		}
		img, metadata, err = b.codec.Decode(r)
		if err != nil {
			return &LoadError{Path: name, Cause: err}
		}
		p.pageCount = 1
	}

	p.original = img
	p.page = page

	hflip, vflip, angle, ok := orientationTransform(exifOrientationFromMetadata(metadata))
	if !ok {
		hflip, vflip, angle = false, false, 0
	}
	p.hflip, p.vflip, p.angle = hflip, vflip, angle

	promoted := img.Clone()
	promoted.ConvertTo32()
	p.original32 = promoted
	return nil
}

// SetCurrentPage re-decodes pane's image at the given page and recompares.
// Out-of-range pages are a silent no-op, per spec.md §4.4's lenient
// contract.
func (b *DiffBuffer) SetCurrentPage(pane int, page int) error {
	p, err := b.pane(pane)
	if err != nil {
		return err
	}
	if page < 0 || page >= maxInt(p.pageCount, 1) {
		return nil
	}
	if err := b.loadPane(p, p.fileName, page); err != nil {
		return nil
	}
	return b.CompareImages()
}

// SetCurrentPageAll applies SetCurrentPage to every pane.
func (b *DiffBuffer) SetCurrentPageAll(page int) error {
	for i := range b.panes {
		if err := b.SetCurrentPage(i, page); err != nil {
			return err
		}
	}
	return nil
}

func (b *DiffBuffer) SetColorDistanceThreshold(v float64) error {
	b.settings.SetColorDistanceThreshold(v)
	return b.CompareImages()
}

func (b *DiffBuffer) SetDiffBlockSize(v int) error {
	b.settings.SetBlockSize(v)
	return b.CompareImages()
}

func (b *DiffBuffer) SetInsertionDeletionMode(m InsertionDeletionMode) error {
	b.settings.SetInsertionDeletionMode(m)
	return b.CompareImages()
}

func (b *DiffBuffer) SetRotation(pane int, angle int) error {
	p, err := b.pane(pane)
	if err != nil {
		return err
	}
	p.angle = ((angle % 360) + 360) % 360
	return b.CompareImages()
}

func (b *DiffBuffer) SetHFlip(pane int, v bool) error {
	p, err := b.pane(pane)
	if err != nil {
		return err
	}
	p.hflip = v
	return b.CompareImages()
}

func (b *DiffBuffer) SetVFlip(pane int, v bool) error {
	p, err := b.pane(pane)
	if err != nil {
		return err
	}
	p.vflip = v
	return b.CompareImages()
}

func (b *DiffBuffer) SetVectorZoom(v float32) error {
	b.settings.SetVectorImageZoomRatio(v)
	return b.CompareImages()
}

// transformed returns p.original32 with its flip/rotate transforms
// applied, as a fresh clone. Per spec.md §5's note that an implementation
// may equivalently work on a transformed clone rather than a
// scope-guarded in-place mutation, that is exactly what this does: the
// stored original32 is never mutated by comparison.
func transformed(p *pane) (*Image, error) {
	img := p.original32.Clone()
	if p.hflip {
		img.FlipHorizontal()
	}
	if p.vflip {
		img.FlipVertical()
	}
	if p.angle != 0 {
		rotated, err := img.Rotate(p.angle)
		if err != nil {
			return nil, err
		}
		img = rotated
	}
	return img, nil
}

// CompareImages runs the full pipeline: preprocess, block-compare,
// flood-fill label, classify, and refresh.
func (b *DiffBuffer) CompareImages() error {
	n := len(b.panes)
	if n <= 1 {
		return nil
	}

	imgs := make([]*Image, n)
	for i, p := range b.panes {
		t, err := transformed(p)
		if err != nil {
			return err
		}
		imgs[i] = t
	}

	preprocessed, lineDiffInfos, err := b.preprocess(imgs)
	if err != nil {
		return err
	}
	for i, p := range b.panes {
		p.preprocessed = preprocessed[i]
	}
	b.lineDiffInfos = lineDiffInfos

	b.blockCompareAndLabel(preprocessed)

	if b.currentDiffIndex >= len(b.diffInfos) {
		b.currentDiffIndex = len(b.diffInfos) - 1
	}
	if b.currentDiffIndex < -1 {
		b.currentDiffIndex = -1
	}

	return b.RefreshImages()
}

func (b *DiffBuffer) preprocess(imgs []*Image) ([]*Image, []LineDiffInfo, error) {
	mode := b.settings.InsertionDeletionMode()
	if mode == InsertionDeletionNone {
		out := make([]*Image, len(imgs))
		for i, img := range imgs {
			out[i] = img.Clone()
		}
		return out, nil, nil
	}

	horizontal := mode == InsertionDeletionHorizontal
	work := imgs
	if horizontal {
		work = make([]*Image, len(imgs))
		for i, img := range imgs {
			r, err := img.Rotate(90)
			if err != nil {
				return nil, nil, err
			}
			work[i] = r
		}
	}

	infos, err := b.lineDiff(work)
	if err != nil {
		return nil, nil, err
	}
	out := spliceGhostRows(work, infos)

	if horizontal {
		for i, img := range out {
			r, err := img.Rotate(-90)
			if err != nil {
				return nil, nil, err
			}
			out[i] = r
		}
	}

	return out, infos, nil
}

func (b *DiffBuffer) lineDiff(imgs []*Image) ([]LineDiffInfo, error) {
	threshold := b.settings.ColorDistanceThreshold()
	algo := b.settings.DiffAlgorithm()

	if len(imgs) == 2 {
		a := rowRecords(imgs[0], threshold)
		bb := rowRecords(imgs[1], threshold)
		script := scanline.Diff(a, bb, algo)
		infos := lineDiffsFromRuns(scanline.Runs(script))
		primeLineDiffInfos(infos, 2)
		return infos, nil
	}

	c := rowRecords(imgs[1], threshold) // center pane
	left := rowRecords(imgs[0], threshold)
	right := rowRecords(imgs[2], threshold)

	d10 := pairDiffsFromRuns(scanline.Runs(scanline.Diff(c, left, algo)))
	d12 := pairDiffsFromRuns(scanline.Runs(scanline.Diff(c, right, algo)))

	classify := func(r linemerge.Region) bool {
		return alinesEqual(imgs[0], imgs[2], r.Begin[0], r.End[0], r.Begin[2], r.End[2], threshold)
	}
	regions := linemerge.ThreeWayLineMerge(d10, d12, classify)

	infos := make([]LineDiffInfo, len(regions))
	for i, r := range regions {
		infos[i] = LineDiffInfo{Begin: r.Begin, End: r.End, Op: opFromLinemerge(r.Op)}
	}
	primeLineDiffInfos(infos, 3)
	return infos, nil
}

func opFromLinemerge(op linemerge.Op) Op {
	switch op {
	case linemerge.Op1stOnly:
		return Op1stOnly
	case linemerge.Op2ndOnly:
		return Op2ndOnly
	case linemerge.Op3rdOnly:
		return Op3rdOnly
	default:
		return OpDiff
	}
}

// lineDiffsFromRuns converts scanline.Runs (half-open, index-for-index
// against two sequences A,B) into the 2-pane LineDiffInfo shape (inclusive
// ranges, pane 0 = A, pane 1 = B).
func lineDiffsFromRuns(runs []scanline.Run) []LineDiffInfo {
	out := make([]LineDiffInfo, len(runs))
	for i, r := range runs {
		var info LineDiffInfo
		info.Begin[0], info.End[0] = r.ABegin, r.AEnd-1
		info.Begin[1], info.End[1] = r.BBegin, r.BEnd-1
		out[i] = info
	}
	return out
}

// pairDiffsFromRuns converts scanline.Runs (center=A, other=B) into
// linemerge.PairDiff.
func pairDiffsFromRuns(runs []scanline.Run) []linemerge.PairDiff {
	out := make([]linemerge.PairDiff, len(runs))
	for i, r := range runs {
		out[i] = linemerge.PairDiff{
			Center: linemerge.Span{Begin: r.ABegin, End: r.AEnd - 1},
			Other:  linemerge.Span{Begin: r.BBegin, End: r.BEnd - 1},
		}
	}
	return out
}

// alinesEqual reports whether the row spans [b1,e1] of img1 and [b2,e2] of
// img2 are pairwise equal under threshold (used as diff3's eq02
// predicate). Two empty spans are vacuously equal; mismatched lengths are
// not.
func alinesEqual(img1, img2 *Image, b1, e1, b2, e2 int, threshold float64) bool {
	l1, l2 := regionLen(b1, e1), regionLen(b2, e2)
	if l1 != l2 {
		return false
	}
	for i := 0; i < l1; i++ {
		row1, err1 := img1.Row(b1 + i)
		row2, err2 := img2.Row(b2 + i)
		if err1 != nil || err2 != nil || len(row1) != len(row2) {
			return false
		}
		for x := 0; x+4 <= len(row1); x += 4 {
			c1 := Color{B: row1[x], G: row1[x+1], R: row1[x+2], A: row1[x+3]}
			c2 := Color{B: row2[x], G: row2[x+1], R: row2[x+2], A: row2[x+3]}
			if !colorsEqual(c1, c2, threshold) {
				return false
			}
		}
	}
	return true
}

// blockCompareAndLabel builds the pairwise grids, the union labeled grid,
// diffInfos, and classification.
func (b *DiffBuffer) blockCompareAndLabel(preprocessed []*Image) {
	n := len(preprocessed)
	blockSize := b.settings.BlockSize()
	threshold := b.settings.ColorDistanceThreshold()

	maxW, maxH := 0, 0
	for i, img := range preprocessed {
		ox, oy := b.panes[i].ox, b.panes[i].oy
		if w := img.Width() + ox; w > maxW {
			maxW = w
		}
		if h := img.Height() + oy; h > maxH {
			maxH = h
		}
	}

	b.grid01 = blockCompare(preprocessed[0], b.panes[0].ox, b.panes[0].oy, preprocessed[1], b.panes[1].ox, b.panes[1].oy, maxW, maxH, blockSize, threshold)

	if n == 2 {
		b.union = b.grid01
		b.grid12, b.grid02 = nil, nil
		labeled := b.union.floodFillLabel()
		b.diffInfos = labeled
		classifyTwoWay(b.diffInfos)
		return
	}

	b.grid12 = blockCompare(preprocessed[2], b.panes[2].ox, b.panes[2].oy, preprocessed[1], b.panes[1].ox, b.panes[1].oy, maxW, maxH, blockSize, threshold)
	b.grid02 = blockCompare(preprocessed[0], b.panes[0].ox, b.panes[0].oy, preprocessed[2], b.panes[2].ox, b.panes[2].oy, maxW, maxH, blockSize, threshold)

	union := NewBlockGrid(maxW, maxH, blockSize)
	for by := 0; by < union.Rows(); by++ {
		for bx := 0; bx < union.Cols(); bx++ {
			if b.grid01.At(bx, by) == -1 || b.grid12.At(bx, by) == -1 || b.grid02.At(bx, by) == -1 {
				union.Set(bx, by, -1)
			}
		}
	}
	b.union = union
	b.diffInfos = b.union.floodFillLabel()
	classifyThreeWay(b.union, b.grid01, b.grid12, b.grid02, b.diffInfos)
}

// blockCompare compares imgA and imgB cell-by-cell at blockSize
// granularity, honoring per-pane offsets. A cell is marked -1 if any pixel
// within it fails the equality test, or if it falls outside either
// image's (offset) extent.
//
// Each block-row is scanned one source row at a time: rather than calling
// Image.At per pixel (a bounds check plus a Color allocation on every
// call), one shifted scanline per side is assembled into a pooled scratch
// buffer (a small bucketed sync.Pool, internal/bufpool) and compared in
// place.
func blockCompare(imgA *Image, ax, ay int, imgB *Image, bx, by int, gridW, gridH, blockSize int, threshold float64) *BlockGrid {
	grid := NewBlockGrid(gridW, gridH, blockSize)
	cols, rows := grid.Cols(), grid.Rows()
	totalW := cols * blockSize

	rowA := bufpool.Get(totalW * 4)
	rowB := bufpool.Get(totalW * 4)
	validA := bufpool.Get(totalW)
	validB := bufpool.Get(totalW)
	defer bufpool.Put(rowA)
	defer bufpool.Put(rowB)
	defer bufpool.Put(validA)
	defer bufpool.Put(validB)

	done := make([]bool, cols)

	for cellY := 0; cellY < rows; cellY++ {
		for i := range done {
			done[i] = false
		}
		y0 := cellY * blockSize
		remaining := cols
		for y := y0; y < y0+blockSize && y < gridH && remaining > 0; y++ {
			fillShiftedRow(imgA, ax, ay, y, totalW, rowA, validA)
			fillShiftedRow(imgB, bx, by, y, totalW, rowB, validB)

			for cellX := 0; cellX < cols; cellX++ {
				if done[cellX] {
					continue
				}
				x0 := cellX * blockSize
				differs := false
				for x := x0; x < x0+blockSize && x < gridW; x++ {
					if validA[x] == 0 || validB[x] == 0 {
						differs = true
						break
					}
					i := x * 4
					ca := Color{B: rowA[i], G: rowA[i+1], R: rowA[i+2], A: rowA[i+3]}
					cb := Color{B: rowB[i], G: rowB[i+1], R: rowB[i+2], A: rowB[i+3]}
					if !colorsEqual(ca, cb, threshold) {
						differs = true
						break
					}
				}
				if differs {
					grid.Set(cellX, cellY, -1)
					done[cellX] = true
					remaining--
				}
			}
		}
	}
	return grid
}

// fillShiftedRow copies img's scanline y-oy, shifted horizontally by ox,
// into rowBuf (4*width bytes) and marks validBuf[x]=1 for every column
// that landed inside img's bounds, 0 otherwise.
func fillShiftedRow(img *Image, ox, oy, y, width int, rowBuf, validBuf []byte) {
	for i := range validBuf[:width] {
		validBuf[i] = 0
	}
	srcRow, err := img.Row(y - oy)
	if err != nil {
		return
	}
	w := img.Width()
	for x := 0; x < width; x++ {
		sx := x - ox
		if sx < 0 || sx >= w {
			continue
		}
		copy(rowBuf[x*4:x*4+4], srcRow[sx*4:sx*4+4])
		validBuf[x] = 1
	}
}

// RefreshImages recomposes every pane's output image (overlay, wipe,
// highlight) from the current preprocessed images and DiffInfos, without
// rerunning the comparison.
func (b *DiffBuffer) RefreshImages() error {
	blink := b.settings.BlinkDifferences() && b.blinkHidden()
	for i := range b.panes {
		b.refreshPane(i, blink)
	}
	return nil
}

func (b *DiffBuffer) blinkHidden() bool {
	now := b.settings.clock.Now().UnixMilli()
	period := int64(b.settings.BlinkIntervalMs())
	if period <= 0 {
		return false
	}
	return (now%period)*2 >= period
}

func (b *DiffBuffer) refreshPane(i int, blinkHidden bool) {
	p := b.panes[i]
	out := p.preprocessed.Clone()

	if n := len(b.panes); n >= 2 && b.settings.OverlayMode() != OverlayNone {
		neighbor := neighborPane(i, n)
		b.overlay(out, p, b.panes[neighbor])
	}

	if b.settings.WipeMode() != WipeNone {
		b.wipe(out, i)
	}

	if b.settings.ShowDifferences() && !blinkHidden {
		b.highlight(out, i)
	}

	p.composed = out
}

func neighborPane(i, n int) int {
	if n == 2 {
		return 1 - i
	}
	return 1 // every pane's highlighted neighbor for overlay purposes is the center
}

func (b *DiffBuffer) overlay(out *Image, p, neighbor *pane) {
	mode := b.settings.OverlayMode()
	alpha := b.settings.OverlayAlpha()
	if mode == OverlayAlphaBlendAnim {
		alpha = animRamp(b.settings.clock.Now().UnixMilli(), int64(b.settings.OverlayAnimIntervalMs()))
	}
	h := out.Height()
	if neighbor.preprocessed.Height() < h {
		h = neighbor.preprocessed.Height()
	}
	w := out.Width()
	if neighbor.preprocessed.Width() < w {
		w = neighbor.preprocessed.Width()
	}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c1, err1 := out.At(x, y)
			c2, err2 := neighbor.preprocessed.At(x, y)
			if err1 != nil || err2 != nil {
				continue
			}
			var result Color
			switch mode {
			case OverlayXOR:
				result = Color{B: c1.B ^ c2.B, G: c1.G ^ c2.G, R: c1.R ^ c2.R, A: c1.A ^ c2.A}
			case OverlayAlphaBlend, OverlayAlphaBlendAnim:
				result = blendColor(c1, c2, alpha)
			default:
				continue
			}
			out.Set(x, y, result)
		}
	}
}

// animRamp computes the time-varying alpha ramp spec.md §4.4 describes:
// t/(T*0.2) rising for the first fifth of the interval, full for the next
// portion, then a decaying tail, then zero, repeating every intervalMs.
func animRamp(nowMs, intervalMs int64) float64 {
	if intervalMs <= 0 {
		return 0
	}
	t := nowMs % intervalMs
	rise := intervalMs / 5
	switch {
	case t < rise:
		return float64(t) / float64(rise)
	case t < intervalMs*2/5:
		return 1.0
	case t < intervalMs*3/5:
		span := intervalMs/5 + 1
		into := t - intervalMs*2/5
		return 1.0 - float64(into)/float64(span)
	default:
		return 0
	}
}

func blendColor(c1, c2 Color, alpha float64) Color {
	blend := func(a, bv uint8) uint8 {
		return uint8(clampFloat(float64(a)*(1-alpha)+float64(bv)*alpha, 0, 255))
	}
	return Color{B: blend(c1.B, c2.B), G: blend(c1.G, c2.G), R: blend(c1.R, c2.R), A: blend(c1.A, c2.A)}
}

func (b *DiffBuffer) wipe(out *Image, pane int) {
	mode := b.settings.WipeMode()
	pos := b.settings.WipePosition()
	neighbor := b.panes[neighborPane(pane, len(b.panes))]
	if mode == WipeVertical {
		for y := 0; y < out.Height(); y++ {
			for x := pos; x < out.Width(); x++ {
				c, err := neighbor.preprocessed.At(x, y)
				if err == nil {
					out.Set(x, y, c)
				}
			}
		}
	} else if mode == WipeHorizontal {
		for y := pos; y < out.Height(); y++ {
			row, err := neighbor.preprocessed.Row(y)
			if err != nil {
				continue
			}
			drow, _ := out.Row(y)
			copy(drow, row)
		}
	}
}

func (b *DiffBuffer) highlight(out *Image, pane int) {
	blockSize := b.settings.BlockSize()
	diffColor := b.settings.DiffColor()
	deletedColor := b.settings.DiffDeletedColor()
	selColor := b.settings.SelDiffColor()
	selDeletedColor := b.settings.SelDiffDeletedColor()

	for k, info := range b.diffInfos {
		if !paintsPane(info.Op, pane, len(b.panes)) {
			continue
		}
		selected := k == b.currentDiffIndex
		for by := info.Rect.Top; by < info.Rect.Bottom; by++ {
			for bx := info.Rect.Left; bx < info.Rect.Right; bx++ {
				if b.union.At(bx, by) != int32(k+1) {
					continue
				}
				ghost := b.cellIsGhost(pane, bx, by, blockSize)
				var color Color
				switch {
				case ghost && selected:
					color = selDeletedColor
				case ghost:
					color = deletedColor
				case selected:
					color = selColor
				default:
					color = diffColor
				}
				tintCell(out, bx, by, blockSize, color, b.settings.DiffColorAlpha())
			}
		}
	}
}

// paintsPane reports whether a region of the given op should be painted
// on pane, per spec.md §4.4's table.
func paintsPane(op Op, pane, n int) bool {
	if n == 2 {
		return true
	}
	switch pane {
	case 0:
		return op != Op3rdOnly
	case 1:
		return true
	case 2:
		return op != Op1stOnly
	default:
		return false
	}
}

// cellIsGhost reports whether, in this pane's preprocessed image, cell
// (bx,by) lies within a ghost run for that pane: a row (vertical mode) or
// column (horizontal mode, since the preprocessed image is un-rotated
// after splicing) that pane contributed no real content to.
func (b *DiffBuffer) cellIsGhost(pane, bx, by, blockSize int) bool {
	if len(b.lineDiffInfos) == 0 {
		return false
	}
	var pos int
	switch b.settings.InsertionDeletionMode() {
	case InsertionDeletionHorizontal:
		pos = bx * blockSize
	default:
		pos = by * blockSize
	}
	for _, info := range b.lineDiffInfos {
		if pos < info.DBegin || pos > info.DEndMax {
			continue
		}
		return pos > info.DEnd[pane]
	}
	return false
}

func tintCell(img *Image, bx, by, blockSize int, tint Color, alpha float64) {
	x0, y0 := bx*blockSize, by*blockSize
	for y := y0; y < y0+blockSize; y++ {
		for x := x0; x < x0+blockSize; x++ {
			c, err := img.At(x, y)
			if err != nil {
				continue
			}
			img.Set(x, y, blendColor(c, tint, alpha))
		}
	}
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// DiffStat tallies the panes a region's classification points at, across
// every diff region in the buffer: D1/D2/D3 count regions attributed
// respectively to pane 0/1/2 alone (Op1stOnly/Op2ndOnly/Op3rdOnly), and
// DetC counts the remainder (OpDiff, a genuine conflict).
type DiffStat struct {
	D1, D2, D3, DetC int
}

// Stat tallies DiffInfos by classification.
func (b *DiffBuffer) Stat() DiffStat {
	var s DiffStat
	for _, info := range b.diffInfos {
		switch info.Op {
		case Op1stOnly:
			s.D1++
		case Op2ndOnly:
			s.D2++
		case Op3rdOnly:
			s.D3++
		default:
			s.DetC++
		}
	}
	return s
}

// DiffCount returns the number of labeled diff regions.
func (b *DiffBuffer) DiffCount() int { return len(b.diffInfos) }

// ConflictCount returns the number of OpDiff regions.
func (b *DiffBuffer) ConflictCount() int {
	n := 0
	for _, info := range b.diffInfos {
		if info.Op == OpDiff {
			n++
		}
	}
	return n
}

// DiffInfoAt returns the i'th labeled diff region.
func (b *DiffBuffer) DiffInfoAt(i int) (DiffInfo, error) {
	if i < 0 || i >= len(b.diffInfos) {
		return DiffInfo{}, &BadPaneIndex{Index: i}
	}
	return b.diffInfos[i], nil
}

// CurrentDiff returns the index of the currently selected diff, or -1 if
// none is selected.
func (b *DiffBuffer) CurrentDiff() int { return b.currentDiffIndex }

// SelectDiff selects diff region i (or -1 to clear selection) and
// refreshes highlighting.
func (b *DiffBuffer) SelectDiff(i int) error {
	if i != -1 && (i < 0 || i >= len(b.diffInfos)) {
		return &BadPaneIndex{Index: i}
	}
	b.currentDiffIndex = i
	return b.RefreshImages()
}

// FirstDiff selects the first diff region, if any.
func (b *DiffBuffer) FirstDiff() error {
	if len(b.diffInfos) == 0 {
		return b.SelectDiff(-1)
	}
	return b.SelectDiff(0)
}

// LastDiff selects the last diff region, if any.
func (b *DiffBuffer) LastDiff() error {
	if len(b.diffInfos) == 0 {
		return b.SelectDiff(-1)
	}
	return b.SelectDiff(len(b.diffInfos) - 1)
}

// NextDiff advances the selection to the next diff region, wrapping to
// the first after the last.
func (b *DiffBuffer) NextDiff() error {
	if len(b.diffInfos) == 0 {
		return nil
	}
	return b.SelectDiff((b.currentDiffIndex + 1) % len(b.diffInfos))
}

// PrevDiff moves the selection to the previous diff region, wrapping to
// the last before the first.
func (b *DiffBuffer) PrevDiff() error {
	if len(b.diffInfos) == 0 {
		return nil
	}
	i := b.currentDiffIndex - 1
	if i < 0 {
		i = len(b.diffInfos) - 1
	}
	return b.SelectDiff(i)
}

// FirstConflict selects the first OpDiff region.
func (b *DiffBuffer) FirstConflict() error {
	for i, info := range b.diffInfos {
		if info.Op == OpDiff {
			return b.SelectDiff(i)
		}
	}
	return nil
}

// LastConflict selects the last OpDiff region.
func (b *DiffBuffer) LastConflict() error {
	for i := len(b.diffInfos) - 1; i >= 0; i-- {
		if b.diffInfos[i].Op == OpDiff {
			return b.SelectDiff(i)
		}
	}
	return nil
}

// GetImage returns pane's composed (refreshed, display-ready) image.
func (b *DiffBuffer) GetImage(pane int) (*Image, error) {
	p, err := b.pane(pane)
	if err != nil {
		return nil, err
	}
	return p.composed, nil
}

// GetPreprocessedImage returns pane's preprocessed (ghost-spliced, no
// overlay/wipe/highlight) image.
func (b *DiffBuffer) GetPreprocessedImage(pane int) (*Image, error) {
	p, err := b.pane(pane)
	if err != nil {
		return nil, err
	}
	return p.preprocessed, nil
}

// GetOriginalImage returns pane's image as decoded (before depth
// promotion and EXIF transform).
func (b *DiffBuffer) GetOriginalImage(pane int) (*Image, error) {
	p, err := b.pane(pane)
	if err != nil {
		return nil, err
	}
	return p.original, nil
}

// PixelColor returns the pixel at (x,y) in pane's preprocessed image.
func (b *DiffBuffer) PixelColor(pane, x, y int) (Color, error) {
	p, err := b.pane(pane)
	if err != nil {
		return Color{}, err
	}
	return p.preprocessed.At(x, y)
}

// ColorDistance returns the distance (not squared) between the pixels at
// (x,y) in panes p1 and p2's preprocessed images.
func (b *DiffBuffer) ColorDistance(p1, p2, x, y int) (float64, error) {
	c1, err := b.PixelColor(p1, x, y)
	if err != nil {
		return 0, err
	}
	c2, err := b.PixelColor(p2, x, y)
	if err != nil {
		return 0, err
	}
	return math.Sqrt(float64(colorDistance2(c1, c2))), nil
}

// ConvertToRealPos converts a point in preprocessed/display space for
// pane into that pane's own real-image coordinates.
func (b *DiffBuffer) ConvertToRealPos(pane, px, py int, clamp bool) (rx, ry int, inside bool, err error) {
	p, perr := b.pane(pane)
	if perr != nil {
		return 0, 0, false, perr
	}
	rx, ry, inside = convertToRealPos(b.lineDiffInfos, b.settings.InsertionDeletionMode(), pane, px, py, p.ox, p.oy, p.original32.Width(), p.original32.Height(), clamp)
	return rx, ry, inside, nil
}

// GetDiffMap renders a w x h image where every pixel belonging to a
// labeled diff region is painted DiffColor and everything else is
// transparent black, independent of any pane's own content.
func (b *DiffBuffer) GetDiffMap(w, h int) *Image {
	img := NewImage(w, h)
	if b.union == nil {
		return img
	}
	blockSize := b.settings.BlockSize()
	diffColor := b.settings.DiffColor()
	for by := 0; by < b.union.Rows(); by++ {
		for bx := 0; bx < b.union.Cols(); bx++ {
			if b.union.At(bx, by) <= 0 {
				continue
			}
			x0, y0 := bx*blockSize, by*blockSize
			for y := y0; y < y0+blockSize && y < h; y++ {
				for x := x0; x < x0+blockSize && x < w; x++ {
					img.Set(x, y, diffColor)
				}
			}
		}
	}
	return img
}
