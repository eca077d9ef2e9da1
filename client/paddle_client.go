package client

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"image"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

const paddleTimeout = 60 * time.Second

// PaddleClient calls a PaddleOCR hub serving the ocr_system model. It reads
// the Devanagari portions of bilingual cards better than Tesseract's eng model.
type PaddleClient struct {
	endpoint string
	http     *http.Client
}

// NewPaddleClient points at a PaddleOCR endpoint such as
// http://paddleocr:8866/predict/ocr_system.
func NewPaddleClient(endpoint string) *PaddleClient {
	return &PaddleClient{
		endpoint: endpoint,
		http:     &http.Client{Timeout: paddleTimeout},
	}
}

type paddleRequest struct {
	Images []string `json:"images"`
}

type paddleResponse struct {
	Results [][]struct {
		Text       string  `json:"text"`
		Confidence float64 `json:"confidence"`
	} `json:"results"`
}

// Recognize sends the preprocessed page and returns the recognised lines with
// their mean confidence scaled to 0-100.
func (p *PaddleClient) Recognize(ctx context.Context, img image.Image) (string, float64, error) {
	data, err := PrepareForOCR(img)
	if err != nil {
		return "", 0, err
	}

	payload, err := json.Marshal(paddleRequest{Images: []string{base64.StdEncoding.EncodeToString(data)}})
	if err != nil {
		return "", 0, eris.Wrap(err, "paddle: marshal request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", 0, eris.Wrap(err, "paddle: build request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.http.Do(req)
	if err != nil {
		return "", 0, eris.Wrap(err, "paddle: call API")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", 0, eris.New(fmt.Sprintf("paddle: API returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(body))))
	}

	var result paddleResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", 0, eris.Wrap(err, "paddle: decode response")
	}

	var (
		lines []string
		total float64
	)
	if len(result.Results) > 0 {
		for _, line := range result.Results[0] {
			if text := strings.TrimSpace(line.Text); text != "" {
				lines = append(lines, text)
				total += line.Confidence
			}
		}
	}
	if len(lines) == 0 {
		return "", 0, nil
	}

	zap.L().Debug("paddle: page recognised", zap.Int("lines", len(lines)))
	return strings.Join(lines, "\n"), total / float64(len(lines)) * 100, nil
}
