package winimerge

// Image is an owning 32-bit BGRA8 pixel buffer: the PixelBuffer of the
// comparison engine. Rows are stored contiguously, 4 bytes per pixel in
// B,G,R,A order.
type Image struct {
	width, height int
	pix           []byte
}

// NewImage allocates a zero-filled (transparent black) w x h image.
func NewImage(w, h int) *Image {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	return &Image{width: w, height: h, pix: make([]byte, w*h*4)}
}

func (img *Image) Width() int  { return img.width }
func (img *Image) Height() int { return img.height }

// SetSize reallocates the buffer to w x h. Contents are undefined (the
// buffer is zero-filled, but callers must not rely on prior contents
// surviving).
func (img *Image) SetSize(w, h int) {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	img.width, img.height = w, h
	img.pix = make([]byte, w*h*4)
}

// Clone returns a deep copy.
func (img *Image) Clone() *Image {
	out := &Image{width: img.width, height: img.height, pix: make([]byte, len(img.pix))}
	copy(out.pix, img.pix)
	return out
}

// Row returns the raw BGRA8 bytes of scanline y, exactly 4*Width() bytes.
// The returned slice aliases the image's storage and may be written
// through to mutate the image.
func (img *Image) Row(y int) ([]byte, error) {
	if y < 0 || y >= img.height {
		return nil, &OutOfBounds{X: 0, Y: y}
	}
	stride := img.width * 4
	start := y * stride
	return img.pix[start : start+stride], nil
}

// At returns the pixel at (x,y).
func (img *Image) At(x, y int) (Color, error) {
	if x < 0 || x >= img.width || y < 0 || y >= img.height {
		return Color{}, &OutOfBounds{X: x, Y: y}
	}
	i := (y*img.width + x) * 4
	return Color{B: img.pix[i], G: img.pix[i+1], R: img.pix[i+2], A: img.pix[i+3]}, nil
}

// Set writes the pixel at (x,y).
func (img *Image) Set(x, y int, c Color) error {
	if x < 0 || x >= img.width || y < 0 || y >= img.height {
		return &OutOfBounds{X: x, Y: y}
	}
	i := (y*img.width + x) * 4
	img.pix[i], img.pix[i+1], img.pix[i+2], img.pix[i+3] = c.B, c.G, c.R, c.A
	return nil
}

// CopySub extracts the inclusive rectangle [x1,y1]-[x2,y2], clamped to the
// source bounds, as a new Image.
func (img *Image) CopySub(x1, y1, x2, y2 int) *Image {
	x1, y1 = clampInt(x1, 0, img.width-1), clampInt(y1, 0, img.height-1)
	x2, y2 = clampInt(x2, 0, img.width-1), clampInt(y2, 0, img.height-1)
	if x2 < x1 || y2 < y1 {
		return NewImage(0, 0)
	}
	w, h := x2-x1+1, y2-y1+1
	out := NewImage(w, h)
	for y := 0; y < h; y++ {
		srow, _ := img.Row(y1 + y)
		drow, _ := out.Row(y)
		copy(drow, srow[x1*4:(x2+1)*4])
	}
	return out
}

// PasteSub writes src onto img at (x,y), clipped to img's bounds.
func (img *Image) PasteSub(src *Image, x, y int) {
	for sy := 0; sy < src.height; sy++ {
		dy := y + sy
		if dy < 0 || dy >= img.height {
			continue
		}
		srow, _ := src.Row(sy)
		drow, _ := img.Row(dy)
		for sx := 0; sx < src.width; sx++ {
			dx := x + sx
			if dx < 0 || dx >= img.width {
				continue
			}
			copy(drow[dx*4:dx*4+4], srow[sx*4:sx*4+4])
		}
	}
}

// FlipHorizontal reverses each row in place.
func (img *Image) FlipHorizontal() {
	for y := 0; y < img.height; y++ {
		row, _ := img.Row(y)
		for l, r := 0, img.width-1; l < r; l, r = l+1, r-1 {
			lp, rp := row[l*4:l*4+4], row[r*4:r*4+4]
			lp[0], rp[0] = rp[0], lp[0]
			lp[1], rp[1] = rp[1], lp[1]
			lp[2], rp[2] = rp[2], lp[2]
			lp[3], rp[3] = rp[3], lp[3]
		}
	}
}

// FlipVertical reverses the row order in place.
func (img *Image) FlipVertical() {
	stride := img.width * 4
	tmp := make([]byte, stride)
	for top, bottom := 0, img.height-1; top < bottom; top, bottom = top+1, bottom-1 {
		trow, _ := img.Row(top)
		brow, _ := img.Row(bottom)
		copy(tmp, trow)
		copy(trow, brow)
		copy(brow, tmp)
	}
}

// Rotate returns a new image rotated clockwise by deg degrees. Only
// 90/180/270 (and 0) are supported; any other angle would require a
// resampling backend this core does not have, and fails with NotSupported
// (spec.md §4.1/§9).
func (img *Image) Rotate(deg int) (*Image, error) {
	deg = ((deg % 360) + 360) % 360
	switch deg {
	case 0:
		return img.Clone(), nil
	case 180:
		out := NewImage(img.width, img.height)
		for y := 0; y < img.height; y++ {
			srow, _ := img.Row(y)
			drow, _ := out.Row(img.height - 1 - y)
			for x := 0; x < img.width; x++ {
				copy(drow[(img.width-1-x)*4:(img.width-1-x)*4+4], srow[x*4:x*4+4])
			}
		}
		return out, nil
	case 90:
		out := NewImage(img.height, img.width)
		for y := 0; y < img.height; y++ {
			srow, _ := img.Row(y)
			for x := 0; x < img.width; x++ {
				dx := img.height - 1 - y
				dy := x
				drow, _ := out.Row(dy)
				copy(drow[dx*4:dx*4+4], srow[x*4:x*4+4])
			}
		}
		return out, nil
	case 270:
		out := NewImage(img.height, img.width)
		for y := 0; y < img.height; y++ {
			srow, _ := img.Row(y)
			for x := 0; x < img.width; x++ {
				dx := y
				dy := img.width - 1 - x
				drow, _ := out.Row(dy)
				copy(drow[dx*4:dx*4+4], srow[x*4:x*4+4])
			}
		}
		return out, nil
	default:
		return nil, &NotSupported{Op: "non-orthogonal rotation"}
	}
}

// ConvertTo32 is a no-op: Image is always stored as BGRA8, so depth
// promotion happens once, at decode time, in the codec collaborator.
// It exists to document that invariant and give callers a stable name to
// call after loading an image from an arbitrary source depth.
func (img *Image) ConvertTo32() {}

// insertRows returns a copy of img with n blank (transparent) rows
// inserted at row index at, shifting rows at..height-1 down by n. A no-op
// clone when n<=0.
func insertRows(img *Image, at, n int) *Image {
	if n <= 0 {
		return img.Clone()
	}
	at = clampInt(at, 0, img.Height())
	out := NewImage(img.Width(), img.Height()+n)
	copyRows(img, 0, out, 0, at)
	copyRows(img, at, out, at+n, img.Height()-at)
	return out
}

// deleteRows returns a copy of img with the n rows starting at row index
// at removed. A no-op clone when n<=0.
func deleteRows(img *Image, at, n int) *Image {
	if n <= 0 {
		return img.Clone()
	}
	at = clampInt(at, 0, img.Height())
	n = clampInt(n, 0, img.Height()-at)
	out := NewImage(img.Width(), img.Height()-n)
	copyRows(img, 0, out, 0, at)
	copyRows(img, at+n, out, at, img.Height()-at-n)
	return out
}

// insertCols returns a copy of img with n blank (transparent) columns
// inserted at column index at, shifting columns at..width-1 right by n.
// A no-op clone when n<=0.
func insertCols(img *Image, at, n int) *Image {
	if n <= 0 {
		return img.Clone()
	}
	at = clampInt(at, 0, img.Width())
	out := NewImage(img.Width()+n, img.Height())
	for y := 0; y < img.Height(); y++ {
		srow, _ := img.Row(y)
		drow, _ := out.Row(y)
		copy(drow[:at*4], srow[:at*4])
		copy(drow[(at+n)*4:], srow[at*4:])
	}
	return out
}

// deleteCols returns a copy of img with the n columns starting at column
// index at removed. A no-op clone when n<=0.
func deleteCols(img *Image, at, n int) *Image {
	if n <= 0 {
		return img.Clone()
	}
	at = clampInt(at, 0, img.Width())
	n = clampInt(n, 0, img.Width()-at)
	out := NewImage(img.Width()-n, img.Height())
	for y := 0; y < img.Height(); y++ {
		srow, _ := img.Row(y)
		drow, _ := out.Row(y)
		copy(drow[:at*4], srow[:at*4])
		copy(drow[at*4:], srow[(at+n)*4:])
	}
	return out
}

func clampInt(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
