package winimerge

// pane holds everything owned exclusively by one side of the comparison:
// its source file, its decoded buffers at every processing stage, and the
// manual alignment/transform state applied before comparison.
type pane struct {
	fileName string
	page     int
	pageCount int

	original     *Image // as decoded, before depth promotion
	original32   *Image // after depth promotion; EXIF orientation lives in angle/hflip/vflip
	preprocessed *Image // after ghost-row/column splicing
	composed     *Image // refresh_images output

	ox, oy int // manual alignment offset

	angle  int // one of 0, 90, 180, 270
	hflip  bool
	vflip  bool
	readOnly bool

	modCount       int
	modCountOnSave int
}

func newPane() *pane {
	return &pane{
		original:     NewImage(0, 0),
		original32:   NewImage(0, 0),
		preprocessed: NewImage(0, 0),
		composed:     NewImage(0, 0),
	}
}

// modified reports whether this pane has been edited since its last save.
func (p *pane) modified() bool { return p.modCount != p.modCountOnSave }

// markSaved records the current modification count as saved.
func (p *pane) markSaved() { p.modCountOnSave = p.modCount }
