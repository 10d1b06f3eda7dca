package merge

import (
	"bytes"
	"image"
	"image/png"
)

// encodePNG encodes img as PNG bytes. Grounded on the teacher's
// ui/images/scale.go EncodePNG, but uses the encoder's default compression
// instead of the teacher's png.NoCompression: the teacher favors fast
// round-trips for in-memory debugging frames, whereas this engine's PNG is
// the final output artifact handed back to the caller, so smaller output is
// the better default.
func encodePNG(img *image.NRGBA) ([]byte, error) {
	var buf bytes.Buffer
	enc := png.Encoder{CompressionLevel: png.DefaultCompression}
	if err := enc.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
