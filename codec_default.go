package winimerge

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"path/filepath"
	"strings"
)

// DefaultCodec is the built-in ImageCodec: it decodes/encodes PNG, JPEG,
// and GIF (including multi-frame GIF as a MultiPage) through the standard
// library's image codecs, converted to and from the BGRA8 PixelBuffer this
// package operates on. JPEG's EXIF orientation tag is read where present.
type DefaultCodec struct{}

// NewDefaultCodec returns the built-in codec.
func NewDefaultCodec() *DefaultCodec { return &DefaultCodec{} }

func (DefaultCodec) Decode(r io.Reader) (*Image, map[string]string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, nil, err
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, nil, err
	}
	return fromStdImage(img), exifMetadataFromJPEG(data), nil
}

func (DefaultCodec) Encode(w io.Writer, path string, img *Image) error {
	stdImg := toStdImage(img)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".png":
		return png.Encode(w, stdImg)
	case ".jpg", ".jpeg":
		return jpeg.Encode(w, stdImg, &jpeg.Options{Quality: 90})
	case ".gif":
		return gif.Encode(w, stdImg, nil)
	default:
		return &NotSupported{Op: fmt.Sprintf("encode to %s", ext)}
	}
}

// DecodeMultipage recognizes multi-frame GIF as a MultiPage; every other
// format decodes to a single page by the caller falling back to Decode.
func (DefaultCodec) DecodeMultipage(r io.Reader, path string) (*MultiPage, bool, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, false, err
	}
	if !isGIF(data) {
		return nil, false, nil
	}
	anim, err := gif.DecodeAll(bytes.NewReader(data))
	if err != nil {
		return nil, false, err
	}
	if len(anim.Image) <= 1 {
		return nil, false, nil
	}

	bounds := image.Rect(0, 0, anim.Config.Width, anim.Config.Height)
	canvas := image.NewNRGBA(bounds)
	pages := make([]*Image, len(anim.Image))
	metas := make([]map[string]string, len(anim.Image))
	for i, frame := range anim.Image {
		draw.Draw(canvas, frame.Bounds(), frame, frame.Bounds().Min, draw.Over)
		snapshot := image.NewNRGBA(bounds)
		draw.Draw(snapshot, bounds, canvas, bounds.Min, draw.Src)
		pages[i] = fromStdImage(snapshot)
		if i < len(anim.Disposal) && anim.Disposal[i] == gif.DisposalBackground {
			draw.Draw(canvas, frame.Bounds(), image.Transparent, image.Point{}, draw.Src)
		}
	}
	return &MultiPage{Pages: pages, Metadata: metas}, true, nil
}

func isGIF(data []byte) bool {
	return len(data) >= 6 && (string(data[0:6]) == "GIF87a" || string(data[0:6]) == "GIF89a")
}

// exifMetadataFromJPEG scans a JPEG's APP1 segments for an "Exif\x00\x00"
// payload and resolves its Orientation tag to the single metadata key the
// core consults, per spec.md §6.
func exifMetadataFromJPEG(data []byte) map[string]string {
	raw, ok := jpegEXIFPayload(data)
	if !ok {
		return nil
	}
	value, ok := readTIFFOrientation(raw)
	if !ok {
		return nil
	}
	s, ok := exifOrientationStrings[value]
	if !ok {
		return nil
	}
	return map[string]string{orientationMetadataKey: s}
}

// jpegEXIFPayload walks a JPEG's marker segments looking for an APP1
// segment beginning with the 6-byte "Exif\x00\x00" signature, returning the
// TIFF-structured bytes that follow it.
func jpegEXIFPayload(data []byte) ([]byte, bool) {
	if len(data) < 4 || data[0] != 0xFF || data[1] != 0xD8 {
		return nil, false
	}
	pos := 2
	for pos+4 <= len(data) {
		if data[pos] != 0xFF {
			break
		}
		marker := data[pos+1]
		if marker == 0xD8 || marker == 0xD9 {
			pos += 2
			continue
		}
		if marker == 0x01 || (marker >= 0xD0 && marker <= 0xD7) {
			pos += 2
			continue
		}
		if pos+4 > len(data) {
			break
		}
		segLen := int(data[pos+2])<<8 | int(data[pos+3])
		if segLen < 2 || pos+2+segLen > len(data) {
			break
		}
		payload := data[pos+4 : pos+2+segLen]
		if marker == 0xE1 && len(payload) >= 6 && string(payload[0:6]) == "Exif\x00\x00" {
			return payload[6:], true
		}
		if marker == 0xDA { // start of scan: no more markers worth scanning
			break
		}
		pos += 2 + segLen
	}
	return nil, false
}

// fromStdImage converts any standard-library image.Image into a BGRA8
// PixelBuffer.
func fromStdImage(src image.Image) *Image {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	out := NewImage(w, h)
	for y := 0; y < h; y++ {
		row, _ := out.Row(y)
		for x := 0; x < w; x++ {
			c := color.NRGBAModel.Convert(src.At(b.Min.X+x, b.Min.Y+y)).(color.NRGBA)
			i := x * 4
			row[i+0] = c.B
			row[i+1] = c.G
			row[i+2] = c.R
			row[i+3] = c.A
		}
	}
	return out
}

// toStdImage converts a BGRA8 PixelBuffer into a standard-library
// image.NRGBA, the common currency the stdlib encoders accept. The
// PixelBuffer already stores straight (non-premultiplied) alpha, so the
// byte reorder is the only conversion needed.
func toStdImage(img *Image) *image.NRGBA {
	w, h := img.Width(), img.Height()
	out := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		row, _ := img.Row(y)
		for x := 0; x < w; x++ {
			i := x * 4
			off := out.PixOffset(x, y)
			out.Pix[off+0] = row[i+2] // R
			out.Pix[off+1] = row[i+1] // G
			out.Pix[off+2] = row[i+0] // B
			out.Pix[off+3] = row[i+3] // A
		}
	}
	return out
}
