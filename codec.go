package winimerge

import "io"

// MultiPage is a decoded multi-page (e.g. animated or multi-frame) image
// source: one Image plus metadata per page.
type MultiPage struct {
	Pages    []*Image
	Metadata []map[string]string
}

// ImageCodec decodes and encodes raster images. It is an external
// collaborator (spec.md §1/§6): the core never implements file-format
// decoding itself, it only consumes one.
type ImageCodec interface {
	// Decode reads a single-page image from r, returning the decoded
	// image and a flat string-keyed metadata map. The core consults only
	// the "EXIF_MAIN/Orientation" key (see exif.go).
	Decode(r io.Reader) (*Image, map[string]string, error)
	// Encode writes img to w in the format implied by path's extension.
	Encode(w io.Writer, path string, img *Image) error
	// DecodeMultipage reads every page/frame of a multi-page source. It
	// returns ok=false (not an error) when path's format has no concept
	// of multiple pages.
	DecodeMultipage(r io.Reader, path string) (page *MultiPage, ok bool, err error)
}

// VectorRenderer rasterizes a page of a vector-image source (SVG, PDF,
// EMF, WMF) at a given zoom ratio. Per spec.md §9, the set of supported
// vector kinds is closed and dispatch is by a tagged kind rather than open
// dynamic registration; see vectorKindFromExt.
type VectorRenderer interface {
	Load(path string) error
	PageCount() int
	Render(page int, zoom float32) (*Image, error)
}

// vectorKind tags the closed set of vector formats this core knows how to
// ask a VectorRenderer about.
type vectorKind int

const (
	vectorKindNone vectorKind = iota
	vectorKindSVG
	vectorKindPDF
	vectorKindEMF
	vectorKindWMF
)

// vectorKindFromExt classifies a file extension (including the leading
// dot, e.g. ".svg") into a vectorKind, or vectorKindNone if path is a
// raster format the ImageCodec should handle instead.
func vectorKindFromExt(ext string) vectorKind {
	switch ext {
	case ".svg":
		return vectorKindSVG
	case ".pdf":
		return vectorKindPDF
	case ".emf":
		return vectorKindEMF
	case ".wmf":
		return vectorKindWMF
	default:
		return vectorKindNone
	}
}

// Clipboard exchanges a single Image with the host's system clipboard.
type Clipboard interface {
	Paste() (*Image, bool, error)
	Copy(img *Image) error
}
