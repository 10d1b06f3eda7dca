package merge

import (
	"bytes"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/disintegration/imaging"
	"golang.org/x/image/webp"
)

func init() {
	// golang.org/x/image/webp only implements decoding; that's all the
	// engine needs since the sole output format is PNG.
	image.RegisterFormat("webp", "RIFF????WEBP", webp.Decode, webp.DecodeConfig)
}

// decodeImage auto-detects the format of data and returns a normalized
// straight-alpha RGBA grid. imaging.Clone converts whatever concrete image
// type the decoder produced (*image.YCbCr, *image.Paletted, ...) into
// *image.NRGBA, the representation every later stage assumes.
func decodeImage(data []byte) (*image.NRGBA, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	return imaging.Clone(img), nil
}
