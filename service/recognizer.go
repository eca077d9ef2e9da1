package service

import (
	"context"
	"image"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

// FallbackRecognizer tries OCR engines in order and keeps the first answer
// with at least minChars of text. When none qualifies the longest answer wins.
type FallbackRecognizer struct {
	engines  []TextRecognizer
	minChars int
}

func NewFallbackRecognizer(minChars int, engines ...TextRecognizer) *FallbackRecognizer {
	return &FallbackRecognizer{engines: engines, minChars: minChars}
}

func (f *FallbackRecognizer) Recognize(ctx context.Context, img image.Image) (string, float64, error) {
	var (
		bestText string
		bestConf float64
		lastErr  error
		answered bool
	)
	for i, engine := range f.engines {
		text, conf, err := engine.Recognize(ctx, img)
		if err != nil {
			zap.L().Warn("scan: OCR engine failed", zap.Int("engine", i), zap.Error(err))
			lastErr = err
			continue
		}
		answered = true
		trimmed := len(strings.TrimSpace(text))
		if trimmed >= f.minChars {
			return text, conf, nil
		}
		if trimmed > len(strings.TrimSpace(bestText)) {
			bestText, bestConf = text, conf
		}
	}
	if !answered && lastErr != nil {
		return "", 0, eris.Wrap(lastErr, "scan: all OCR engines failed")
	}
	return bestText, bestConf, nil
}
