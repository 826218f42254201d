package winimerge

// Op classifies a DiffInfo region.
type Op int

const (
	OpNone Op = iota
	Op1stOnly
	Op2ndOnly
	Op3rdOnly
	OpDiff
	OpTrivial
)

func (op Op) String() string {
	switch op {
	case OpNone:
		return "none"
	case Op1stOnly:
		return "1st-only"
	case Op2ndOnly:
		return "2nd-only"
	case Op3rdOnly:
		return "3rd-only"
	case OpDiff:
		return "diff"
	case OpTrivial:
		return "trivial"
	default:
		return "unknown"
	}
}

// Rect is a block-coordinate rectangle: inclusive left/top, exclusive
// right/bottom.
type Rect struct {
	Left, Top, Right, Bottom int
}

// Empty reports whether the rectangle covers no cells.
func (r Rect) Empty() bool { return r.Right <= r.Left || r.Bottom <= r.Top }

// Union returns the smallest rectangle covering both r and o. An empty
// operand does not affect the result.
func (r Rect) Union(o Rect) Rect {
	if r.Empty() {
		return o
	}
	if o.Empty() {
		return r
	}
	out := Rect{Left: r.Left, Top: r.Top, Right: r.Right, Bottom: r.Bottom}
	if o.Left < out.Left {
		out.Left = o.Left
	}
	if o.Top < out.Top {
		out.Top = o.Top
	}
	if o.Right > out.Right {
		out.Right = o.Right
	}
	if o.Bottom > out.Bottom {
		out.Bottom = o.Bottom
	}
	return out
}

// DiffInfo is one labeled diff region, in block coordinates.
type DiffInfo struct {
	Op   Op
	Rect Rect
}

// BlockGrid is the 2-D array of block labels produced by block-compare and
// flood-fill: 0 = equal, -1 = differs (pre-labeling), k>=1 = member of
// DiffInfos[k-1].
type BlockGrid struct {
	cols, rows int
	labels     []int32
}

// NewBlockGrid allocates a zero-filled (all-equal) grid sized to cover a
// w x h image at the given block size.
func NewBlockGrid(w, h, blockSize int) *BlockGrid {
	if blockSize < 1 {
		blockSize = 1
	}
	cols := (w + blockSize - 1) / blockSize
	rows := (h + blockSize - 1) / blockSize
	if cols < 0 {
		cols = 0
	}
	if rows < 0 {
		rows = 0
	}
	return &BlockGrid{cols: cols, rows: rows, labels: make([]int32, cols*rows)}
}

func (g *BlockGrid) Cols() int { return g.cols }
func (g *BlockGrid) Rows() int { return g.rows }

func (g *BlockGrid) At(bx, by int) int32 {
	if bx < 0 || bx >= g.cols || by < 0 || by >= g.rows {
		return 0
	}
	return g.labels[by*g.cols+bx]
}

func (g *BlockGrid) Set(bx, by int, v int32) {
	if bx < 0 || bx >= g.cols || by < 0 || by >= g.rows {
		return
	}
	g.labels[by*g.cols+bx] = v
}

// floodFillLabel numbers every -1 cell into 8-connected regions, in
// row-major scan order of each region's first cell, returning one DiffInfo
// (with op left as OpNone; callers fill it in) per region.
func (g *BlockGrid) floodFillLabel() []DiffInfo {
	var infos []DiffInfo
	visited := make([]bool, len(g.labels))
	var stack [][2]int

	for by := 0; by < g.rows; by++ {
		for bx := 0; bx < g.cols; bx++ {
			idx := by*g.cols + bx
			if visited[idx] || g.labels[idx] != -1 {
				continue
			}
			label := int32(len(infos) + 1)
			rect := Rect{Left: bx, Top: by, Right: bx + 1, Bottom: by + 1}

			stack = stack[:0]
			stack = append(stack, [2]int{bx, by})
			visited[idx] = true

			for len(stack) > 0 {
				p := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				px, py := p[0], p[1]
				g.Set(px, py, label)
				if px < rect.Left {
					rect.Left = px
				}
				if px+1 > rect.Right {
					rect.Right = px + 1
				}
				if py < rect.Top {
					rect.Top = py
				}
				if py+1 > rect.Bottom {
					rect.Bottom = py + 1
				}
				for dy := -1; dy <= 1; dy++ {
					for dx := -1; dx <= 1; dx++ {
						if dx == 0 && dy == 0 {
							continue
						}
						nx, ny := px+dx, py+dy
						if nx < 0 || nx >= g.cols || ny < 0 || ny >= g.rows {
							continue
						}
						nidx := ny*g.cols + nx
						if visited[nidx] || g.labels[nidx] != -1 {
							continue
						}
						visited[nidx] = true
						stack = append(stack, [2]int{nx, ny})
					}
				}
			}

			infos = append(infos, DiffInfo{Rect: rect})
		}
	}
	return infos
}
