package merge

import (
	"encoding/binary"
	"image"

	"github.com/disintegration/imaging"
)

const orientationTag = 0x0112

// extractOrientation returns the EXIF orientation encoded in a JPEG's APP1
// segment. Non-JPEG data, missing/malformed EXIF, and unrecognized tag
// values all resolve to OrientationNormal — orientation extraction never
// fails the merge, it only ever degrades to "no rotation".
func extractOrientation(data []byte) Orientation {
	if len(data) < 2 || data[0] != 0xFF || data[1] != 0xD8 {
		return OrientationNormal
	}
	if o, ok := parseJPEGExif(data); ok {
		return o
	}
	return OrientationNormal
}

func parseJPEGExif(data []byte) (Orientation, bool) {
	pos := 2 // skip SOI marker
	for pos+4 <= len(data) {
		if data[pos] != 0xFF {
			return 0, false
		}
		marker := data[pos+1]
		if marker == 0xFF {
			pos++
			continue
		}
		if marker == 0xD9 || marker == 0xDA { // EOI or SOS
			return 0, false
		}
		length := int(binary.BigEndian.Uint16(data[pos+2 : pos+4]))
		if marker == 0xE1 {
			segStart := pos + 4
			segEnd := pos + 2 + length
			if segEnd <= len(data) && segStart <= segEnd {
				if o, ok := parseEXIFSegment(data[segStart:segEnd]); ok {
					return o, true
				}
			}
		}
		pos += 2 + length
	}
	return 0, false
}

func parseEXIFSegment(segment []byte) (Orientation, bool) {
	if len(segment) < 14 || string(segment[0:6]) != "Exif\x00\x00" {
		return 0, false
	}
	tiff := segment[6:]
	littleEndian, ifdOffset, ok := parseTIFFHeader(tiff)
	if !ok {
		return 0, false
	}
	return parseIFDForOrientation(tiff, int(ifdOffset), littleEndian)
}

// parseTIFFHeader reads the byte-order marker and magic number, returning
// whether the data is little-endian and the offset of IFD0.
func parseTIFFHeader(data []byte) (littleEndian bool, ifdOffset uint32, ok bool) {
	if len(data) < 8 {
		return false, 0, false
	}
	switch string(data[0:2]) {
	case "II":
		littleEndian = true
	case "MM":
		littleEndian = false
	default:
		return false, 0, false
	}
	order := tiffByteOrder(littleEndian)
	if order.Uint16(data[2:4]) != 42 {
		return false, 0, false
	}
	return littleEndian, order.Uint32(data[4:8]), true
}

func parseIFDForOrientation(data []byte, ifdOffset int, littleEndian bool) (Orientation, bool) {
	if ifdOffset < 0 || ifdOffset+2 > len(data) {
		return 0, false
	}
	order := tiffByteOrder(littleEndian)
	entryCount := int(order.Uint16(data[ifdOffset : ifdOffset+2]))
	entriesStart := ifdOffset + 2

	for i := 0; i < entryCount; i++ {
		entryOffset := entriesStart + i*12
		if entryOffset+12 > len(data) {
			break
		}
		tag := order.Uint16(data[entryOffset : entryOffset+2])
		if tag == orientationTag {
			// SHORT values are stored inline at offset+8.
			value := order.Uint16(data[entryOffset+8 : entryOffset+10])
			return orientationFromValue(value), true
		}
	}
	return 0, false
}

func tiffByteOrder(littleEndian bool) binary.ByteOrder {
	if littleEndian {
		return binary.LittleEndian
	}
	return binary.BigEndian
}

// normalizeOrientation applies the canonical EXIF transform for o, rotating
// and/or flipping img so it displays upright.
func normalizeOrientation(img *image.NRGBA, o Orientation) *image.NRGBA {
	switch o {
	case OrientationFlipHorizontal:
		return imaging.FlipH(img)
	case OrientationRotate180:
		return imaging.Rotate180(img)
	case OrientationFlipVertical:
		return imaging.FlipV(img)
	case OrientationRotate90FlipH:
		// EXIF "Rotate 90 CW" is imaging.Rotate270: disintegration/imaging
		// rotates counter-clockwise, so a 90-degree-clockwise turn is
		// imaging's 270-degree-counter-clockwise turn.
		return imaging.FlipH(imaging.Rotate270(img))
	case OrientationRotate90:
		return imaging.Rotate270(img)
	case OrientationRotate270FlipH:
		return imaging.FlipH(imaging.Rotate90(img))
	case OrientationRotate270:
		// EXIF "Rotate 90 CCW" is imaging.Rotate90, by the same reasoning.
		return imaging.Rotate90(img)
	default:
		return img
	}
}
