package client

import (
	"bytes"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"

	"github.com/rotisserie/eris"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

// Photos narrower than this are upscaled before OCR so that table digits
// stay legible to Tesseract.
const minOCRWidth = 1600

// DecodeImage decodes PNG, JPEG, GIF or WebP bytes.
func DecodeImage(data []byte) (image.Image, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, eris.Wrap(err, "client: decode image")
	}
	return img, nil
}

// PrepareForOCR converts img to grayscale, upscaling narrow images, and
// returns it PNG encoded.
func PrepareForOCR(img image.Image) ([]byte, error) {
	b := img.Bounds()
	if b.Empty() {
		return nil, eris.New("client: empty image")
	}

	w, h := b.Dx(), b.Dy()
	if w < minOCRWidth {
		h = h * minOCRWidth / w
		w = minOCRWidth
	}
	dst := image.NewGray(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)

	var buf bytes.Buffer
	if err := png.Encode(&buf, dst); err != nil {
		return nil, eris.Wrap(err, "client: encode png")
	}
	return buf.Bytes(), nil
}
