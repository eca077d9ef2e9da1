package service

import (
	"image"
	"strings"

	"github.com/makiuchi-d/gozxing"
	"github.com/makiuchi-d/gozxing/qrcode"
	"github.com/rotisserie/eris"
)

// decodeCardQR reads the QR code printed on newer cards. The payload is a
// portal reference kept verbatim.
func decodeCardQR(img image.Image) (string, error) {
	bmp, err := gozxing.NewBinaryBitmapFromImage(img)
	if err != nil {
		return "", eris.Wrap(err, "qr: binary bitmap")
	}

	result, err := qrcode.NewQRCodeReader().Decode(bmp, map[gozxing.DecodeHintType]interface{}{
		gozxing.DecodeHintType_TRY_HARDER: true,
	})
	if err != nil {
		return "", eris.Wrap(err, "qr: decode")
	}
	return strings.TrimSpace(result.GetText()), nil
}
