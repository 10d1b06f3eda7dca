package merge

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"
)

func encodeTestPNG(t *testing.T, w, h int, c color.NRGBA) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("failed to build test fixture: %v", err)
	}
	return buf.Bytes()
}

func TestDecodeImagePNG(t *testing.T) {
	data := encodeTestPNG(t, 10, 8, color.NRGBA{R: 1, G: 2, B: 3, A: 255})
	img, err := decodeImage(data)
	if err != nil {
		t.Fatalf("decodeImage: %v", err)
	}
	b := img.Bounds()
	if b.Dx() != 10 || b.Dy() != 8 {
		t.Fatalf("decoded size = %dx%d, want 10x8", b.Dx(), b.Dy())
	}
}

func TestDecodeImageInvalidData(t *testing.T) {
	if _, err := decodeImage([]byte{0x00, 0x01, 0x02, 0x03}); err == nil {
		t.Fatal("expected decode error for garbage bytes")
	}
}
