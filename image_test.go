package winimerge

import "testing"

func TestImageRowAndAt(t *testing.T) {
	img := NewImage(3, 2)
	if err := img.Set(1, 1, RGBA(10, 20, 30, 40)); err != nil {
		t.Fatal(err)
	}
	row, err := img.Row(1)
	if err != nil {
		t.Fatal(err)
	}
	if len(row) != 3*4 {
		t.Fatalf("Row(1) len = %d, want %d", len(row), 3*4)
	}
	c, err := img.At(1, 1)
	if err != nil || c != RGBA(10, 20, 30, 40) {
		t.Fatalf("At(1,1) = %v, %v", c, err)
	}
	if _, err := img.At(3, 0); err == nil {
		t.Fatal("At(3,0) should be out of bounds")
	}
	if _, err := img.Row(2); err == nil {
		t.Fatal("Row(2) should be out of bounds")
	}
}

func TestImageRotate90180270(t *testing.T) {
	img := NewImage(2, 3) // w=2 h=3
	img.Set(0, 0, RGBA(1, 0, 0, 255))
	img.Set(1, 0, RGBA(2, 0, 0, 255))
	img.Set(0, 2, RGBA(3, 0, 0, 255))

	r90, err := img.Rotate(90)
	if err != nil {
		t.Fatal(err)
	}
	if r90.Width() != 3 || r90.Height() != 2 {
		t.Fatalf("Rotate(90) size = %dx%d, want 3x2", r90.Width(), r90.Height())
	}

	r180, err := img.Rotate(180)
	if err != nil {
		t.Fatal(err)
	}
	if r180.Width() != 2 || r180.Height() != 3 {
		t.Fatalf("Rotate(180) size = %dx%d, want 2x3", r180.Width(), r180.Height())
	}
	c, _ := r180.At(1, 2) // should be original (0,0)
	if c != RGBA(1, 0, 0, 255) {
		t.Errorf("Rotate(180) at (1,2) = %+v, want original (0,0)", c)
	}

	r270, err := img.Rotate(270)
	if err != nil {
		t.Fatal(err)
	}
	if r270.Width() != 3 || r270.Height() != 2 {
		t.Fatalf("Rotate(270) size = %dx%d, want 3x2", r270.Width(), r270.Height())
	}

	back, err := r90.Rotate(270)
	if err != nil {
		t.Fatal(err)
	}
	if !imagesEqual(back, img) {
		t.Errorf("Rotate(90) then Rotate(270) did not return to original")
	}
}

func TestImageRotateNonOrthogonalUnsupported(t *testing.T) {
	img := NewImage(2, 2)
	if _, err := img.Rotate(45); err == nil {
		t.Fatal("Rotate(45) should fail with NotSupported")
	} else if _, ok := err.(*NotSupported); !ok {
		t.Fatalf("Rotate(45) error = %T, want *NotSupported", err)
	}
}

func TestImageFlipHorizontalVertical(t *testing.T) {
	img := NewImage(3, 2)
	img.Set(0, 0, RGBA(1, 0, 0, 255))
	img.Set(2, 0, RGBA(2, 0, 0, 255))
	img.FlipHorizontal()
	c0, _ := img.At(0, 0)
	c2, _ := img.At(2, 0)
	if c0 != RGBA(2, 0, 0, 255) || c2 != RGBA(1, 0, 0, 255) {
		t.Fatalf("FlipHorizontal did not swap row ends: (0,0)=%+v (2,0)=%+v", c0, c2)
	}

	img2 := NewImage(2, 3)
	img2.Set(0, 0, RGBA(5, 0, 0, 255))
	img2.Set(0, 2, RGBA(6, 0, 0, 255))
	img2.FlipVertical()
	top, _ := img2.At(0, 0)
	bottom, _ := img2.At(0, 2)
	if top != RGBA(6, 0, 0, 255) || bottom != RGBA(5, 0, 0, 255) {
		t.Fatalf("FlipVertical did not swap rows: top=%+v bottom=%+v", top, bottom)
	}
}

func TestImageCopySubPasteSub(t *testing.T) {
	src := NewImage(4, 4)
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			src.Set(x, y, RGBA(uint8(x), uint8(y), 0, 255))
		}
	}
	patch := src.CopySub(1, 1, 2, 2)
	if patch.Width() != 2 || patch.Height() != 2 {
		t.Fatalf("CopySub size = %dx%d, want 2x2", patch.Width(), patch.Height())
	}
	c, _ := patch.At(0, 0)
	if c != RGBA(1, 1, 0, 255) {
		t.Fatalf("CopySub(0,0) = %+v, want (1,1,0,255)", c)
	}

	dst := NewImage(4, 4)
	dst.PasteSub(patch, 3, 3) // clipped: only (3,3) lands inside dst
	got, _ := dst.At(3, 3)
	if got != RGBA(1, 1, 0, 255) {
		t.Fatalf("PasteSub clipped corner = %+v, want (1,1,0,255)", got)
	}
}

func TestColorDistanceThresholdExactness(t *testing.T) {
	c1 := RGBA(0x80, 0x80, 0x80, 255)
	c2 := RGBA(0x81, 0x81, 0x81, 255)
	if !colorsEqual(c1, c2, 2.0) {
		t.Errorf("colorsEqual(threshold=2.0) = false, want true (actual distance = sqrt(3) ~= 1.73)")
	}
	if colorsEqual(c1, c2, 0) {
		t.Errorf("colorsEqual(threshold=0) = true, want false")
	}
	if colorsEqual(c1, c2, 1.0) {
		t.Errorf("colorsEqual(threshold=1.0) = true, want false (distance ~1.73 > 1.0)")
	}
}
