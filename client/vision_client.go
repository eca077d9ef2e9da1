package client

import (
	"context"
	"encoding/base64"
	"strings"

	sdk "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// ErrEmptyVisionReply is returned when the model answers without any text.
var ErrEmptyVisionReply = eris.New("vision: empty reply")

const cardPrompt = `You are reading an Indian Soil Health Card. Return only a JSON object, with no prose, in this shape:

{
  "farmerDetails": {"Farmer Name": "", "Father Name": "", "Sample Number": "", "Mobile Number": "", "Survey Number": ""},
  "location": {"Village": "", "Taluk/Tehsil": "", "District": "", "State": "", "Pincode": ""},
  "soilParameters": {
    "pH": {"value": "6.39", "unit": "", "rating": "Acidic"},
    "Electrical Conductivity (EC)": {"value": "", "unit": "dS/m", "rating": ""},
    "Organic Carbon (OC)": {"value": "", "unit": "%", "rating": ""},
    "Nitrogen (N)": {"value": "305.00", "unit": "kg/ha", "rating": "Medium"},
    "Phosphorus (P)": {"value": "", "unit": "kg/ha", "rating": ""},
    "Potassium (K)": {"value": "", "unit": "kg/ha", "rating": ""},
    "Sulphur (S)": {"value": "", "unit": "ppm", "rating": ""},
    "Zinc (Zn)": {"value": "", "unit": "ppm", "rating": ""},
    "Boron (B)": {"value": "", "unit": "ppm", "rating": ""},
    "Iron (Fe)": {"value": "", "unit": "ppm", "rating": ""},
    "Manganese (Mn)": {"value": "", "unit": "ppm", "rating": ""},
    "Copper (Cu)": {"value": "", "unit": "ppm", "rating": ""}
  },
  "recommendations": [],
  "summary": "",
  "confidence": "High"
}

Take each value from the Test Value column, never from the Normal Level column or the serial number.
Use null for anything you cannot read. Confidence is High, Medium or Low.`

// VisionClient reads card photos with an Anthropic vision model.
type VisionClient struct {
	client    sdk.Client
	model     string
	maxTokens int64
	limiter   *rate.Limiter
}

// NewVisionClient builds a client allowing requestsPerSecond calls; zero or
// less disables the limit.
func NewVisionClient(apiKey, model string, maxTokens int64, requestsPerSecond float64, opts ...option.RequestOption) *VisionClient {
	limit := rate.Inf
	if requestsPerSecond > 0 {
		limit = rate.Limit(requestsPerSecond)
	}
	return &VisionClient{
		client:    sdk.NewClient(append([]option.RequestOption{option.WithAPIKey(apiKey)}, opts...)...),
		model:     model,
		maxTokens: maxTokens,
		limiter:   rate.NewLimiter(limit, 1),
	}
}

// ReadCard sends the image to the model and returns its raw text reply.
func (v *VisionClient) ReadCard(ctx context.Context, image []byte, mediaType string) (string, error) {
	if err := v.limiter.Wait(ctx); err != nil {
		return "", eris.Wrap(err, "vision: rate limit")
	}

	msg, err := v.client.Messages.New(ctx, sdk.MessageNewParams{
		Model:     sdk.Model(v.model),
		MaxTokens: v.maxTokens,
		Messages: []sdk.MessageParam{
			sdk.NewUserMessage(
				sdk.NewImageBlockBase64(mediaType, base64.StdEncoding.EncodeToString(image)),
				sdk.NewTextBlock(cardPrompt),
			),
		},
	})
	if err != nil {
		return "", eris.Wrap(err, "vision: create message")
	}

	var sb strings.Builder
	for _, b := range msg.Content {
		if b.Type == "text" {
			sb.WriteString(b.Text)
		}
	}
	zap.L().Debug("vision: reply",
		zap.String("model", string(msg.Model)),
		zap.Int64("input_tokens", msg.Usage.InputTokens),
		zap.Int64("output_tokens", msg.Usage.OutputTokens),
	)

	reply := strings.TrimSpace(sb.String())
	if reply == "" {
		return "", ErrEmptyVisionReply
	}
	return reply, nil
}
