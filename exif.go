package winimerge

import "encoding/binary"

// orientationMetadataKey is the only metadata key the core consults on a
// decoded image, per spec.md §6.
const orientationMetadataKey = "EXIF_MAIN/Orientation"

// exifOrientationStrings maps the numeric TIFF Orientation tag value (2-8;
// 1 is "normal", carries no transform and is never emitted as metadata)
// to the canonical Exif description string spec.md §6 names.
var exifOrientationStrings = map[int]string{
	2: "top, right side",
	3: "bottom, right side",
	4: "bottom, left side",
	5: "left side, top",
	6: "right side, top",
	7: "right side, bottom",
	8: "left side, bottom",
}

// orientationTransform maps one of the canonical Exif orientation strings
// to the (hflip, vflip, angle) transform the core must apply so the image
// displays upright, per spec.md §6's {no-op, hflip, rot180, vflip,
// rot90+vflip, rot270, rot270+vflip, rot90} table.
func orientationTransform(s string) (hflip, vflip bool, angle int, ok bool) {
	switch s {
	case "":
		return false, false, 0, true
	case "top, right side":
		return true, false, 0, true
	case "bottom, right side":
		return false, false, 180, true
	case "bottom, left side":
		return false, true, 0, true
	case "left side, top":
		return false, true, 90, true
	case "right side, top":
		return false, false, 270, true
	case "right side, bottom":
		return false, true, 270, true
	case "left side, bottom":
		return false, false, 90, true
	default:
		return false, false, 0, false
	}
}

// readTIFFOrientation parses the Orientation tag (0x0112) out of a raw
// TIFF-structured EXIF blob, such as the payload of a JPEG APP1 "Exif"
// segment. It implements only the minimal IFD0 walk needed for a single
// SHORT-typed tag; unknown or malformed input simply yields ok=false,
// never an error, since EXIF orientation is always an optional
// refinement.
func readTIFFOrientation(data []byte) (value int, ok bool) {
	if len(data) < 8 {
		return 0, false
	}
	var order binary.ByteOrder
	switch {
	case data[0] == 'I' && data[1] == 'I':
		order = binary.LittleEndian
	case data[0] == 'M' && data[1] == 'M':
		order = binary.BigEndian
	default:
		return 0, false
	}
	if order.Uint16(data[2:4]) != 42 {
		return 0, false
	}
	ifdOffset := order.Uint32(data[4:8])
	if int(ifdOffset)+2 > len(data) {
		return 0, false
	}
	entryCount := int(order.Uint16(data[ifdOffset : ifdOffset+2]))
	const entrySize = 12
	base := int(ifdOffset) + 2
	for i := 0; i < entryCount; i++ {
		off := base + i*entrySize
		if off+entrySize > len(data) {
			break
		}
		tag := order.Uint16(data[off : off+2])
		if tag != 0x0112 {
			continue
		}
		typ := order.Uint16(data[off+2 : off+4])
		if typ != 3 { // SHORT
			return 0, false
		}
		return int(order.Uint16(data[off+8 : off+10])), true
	}
	return 0, false
}

// exifOrientationFromMetadata resolves the canonical orientation string
// for a metadata map as produced by an ImageCodec's Decode, falling back
// to the empty (no-op) string when the key is absent.
func exifOrientationFromMetadata(metadata map[string]string) string {
	if metadata == nil {
		return ""
	}
	return metadata[orientationMetadataKey]
}
