package client

import (
	"context"
	"image"

	"github.com/otiai10/gosseract/v2"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

type TesseractClient struct {
	dataPath string
	language string
}

func NewTesseractClient(dataPath, language string) *TesseractClient {
	if language == "" {
		language = "eng"
	}
	return &TesseractClient{
		dataPath: dataPath,
		language: language,
	}
}

// Recognize runs OCR over img and returns the text with the mean word
// confidence on Tesseract's 0-100 scale. A cancelled context stops the call
// before the engine starts; a running recognition cannot be interrupted.
func (tc *TesseractClient) Recognize(ctx context.Context, img image.Image) (string, float64, error) {
	if err := ctx.Err(); err != nil {
		return "", 0, eris.Wrap(err, "tesseract: recognize")
	}

	data, err := PrepareForOCR(img)
	if err != nil {
		return "", 0, err
	}

	client := gosseract.NewClient()
	defer client.Close()

	if tc.dataPath != "" {
		client.SetTessdataPrefix(tc.dataPath)
	}
	if err := client.SetLanguage(tc.language); err != nil {
		return "", 0, eris.Wrap(err, "tesseract: set language")
	}
	if err := client.SetImageFromBytes(data); err != nil {
		return "", 0, eris.Wrap(err, "tesseract: set image")
	}

	text, err := client.Text()
	if err != nil {
		return "", 0, eris.Wrap(err, "tesseract: extract text")
	}

	// Confidence is informational; OCR text is still usable without it.
	boxes, err := client.GetBoundingBoxes(gosseract.RIL_WORD)
	if err != nil {
		zap.L().Debug("tesseract: bounding boxes unavailable", zap.Error(err))
		return text, 0, nil
	}
	return text, meanConfidence(boxes), nil
}

func meanConfidence(boxes []gosseract.BoundingBox) float64 {
	if len(boxes) == 0 {
		return 0
	}
	var total float64
	for _, box := range boxes {
		total += box.Confidence
	}
	return total / float64(len(boxes))
}
