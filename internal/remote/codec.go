package remote

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"image"
	"strings"

	_ "image/jpeg"
	_ "image/png"

	"assetpipe/internal/pipeline"
)

// defaultQuality is the fixed quality hint sent with every request.
const defaultQuality = "standard"

// Bidirectional wire vocabulary for the enum fields. Adding a variant is a
// one-line edit per table; the codec itself stays free of branching.
var (
	modelWire = map[pipeline.Model]string{
		pipeline.ModelPrimary:            "dalle",
		pipeline.ModelSecondary:          "stable_diffusion",
		pipeline.ModelProceduralFallback: "procedural",
	}
	wireModel = map[string]pipeline.Model{
		"dalle":            pipeline.ModelPrimary,
		"stable_diffusion": pipeline.ModelSecondary,
		"procedural":       pipeline.ModelProceduralFallback,
	}

	styleWire = map[pipeline.Style]string{
		pipeline.StyleRealistic:  "realistic",
		pipeline.StyleCartoon:    "cartoon",
		pipeline.StylePixel:      "pixel",
		pipeline.StyleMinimalist: "minimalist",
	}
	wireStyle = map[string]pipeline.Style{
		"realistic":  pipeline.StyleRealistic,
		"cartoon":    pipeline.StyleCartoon,
		"pixel":      pipeline.StylePixel,
		"minimalist": pipeline.StyleMinimalist,
	}

	dimensionsWire = map[pipeline.Dimensions]string{
		pipeline.DimensionsSmall:  "256x256",
		pipeline.DimensionsMedium: "512x512",
		pipeline.DimensionsLarge:  "1024x1024",
	}
	wireDimensions = map[string]pipeline.Dimensions{
		"256x256":   pipeline.DimensionsSmall,
		"512x512":   pipeline.DimensionsMedium,
		"1024x1024": pipeline.DimensionsLarge,
	}
)

// ParseModel maps a wire string ("dalle", "stable_diffusion", "procedural")
// to its model variant.
func ParseModel(s string) (pipeline.Model, error) {
	if m, ok := wireModel[normalize(s)]; ok {
		return m, nil
	}
	return "", fmt.Errorf("remote: unknown model %q", s)
}

// ParseStyle maps a wire string to its style variant.
func ParseStyle(s string) (pipeline.Style, error) {
	if st, ok := wireStyle[normalize(s)]; ok {
		return st, nil
	}
	return "", fmt.Errorf("remote: unknown style %q", s)
}

// ParseDimensions maps a wire string ("256x256", "512x512", "1024x1024") to
// its dimensions variant.
func ParseDimensions(s string) (pipeline.Dimensions, error) {
	if d, ok := wireDimensions[normalize(s)]; ok {
		return d, nil
	}
	return 0, fmt.Errorf("remote: unknown dimensions %q", s)
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Codec translates between typed pipeline requests and the service's JSON
// wire format. It is stateless; both directions are pure transforms.
type Codec struct{}

// NewCodec returns the wire codec.
func NewCodec() Codec {
	return Codec{}
}

var _ pipeline.Codec = Codec{}

// Encode serializes req into the wire JSON body. The prompt passes through
// unmodified; the enum fields are mapped through the wire tables. A request
// whose prompt is empty or whose enums carry unknown values yields an
// *pipeline.EncodeError.
func (Codec) Encode(req pipeline.GenerationRequest) ([]byte, error) {
	if strings.TrimSpace(req.Prompt) == "" {
		return nil, &pipeline.EncodeError{Reason: "prompt is required"}
	}
	model, ok := modelWire[req.Model]
	if !ok {
		return nil, &pipeline.EncodeError{Reason: fmt.Sprintf("unknown model %q", req.Model)}
	}
	style, ok := styleWire[req.Style]
	if !ok {
		return nil, &pipeline.EncodeError{Reason: fmt.Sprintf("unknown style %q", req.Style)}
	}
	dims, ok := dimensionsWire[req.Dimensions]
	if !ok {
		return nil, &pipeline.EncodeError{Reason: fmt.Sprintf("unknown dimensions %d", req.Dimensions)}
	}

	body, err := json.Marshal(Request{
		Prompt:          req.Prompt,
		Style:           style,
		Dimensions:      dims,
		ModelPreference: model,
		Quality:         defaultQuality,
	})
	if err != nil {
		return nil, &pipeline.EncodeError{Reason: err.Error()}
	}
	return body, nil
}

// Decode parses a wire response body. A response the service marked as
// failed yields a *pipeline.ServiceError carrying the reported reason; a
// body or image payload that cannot be decoded yields a
// *pipeline.DecodeError. Only a success response with a decodable image
// produces an asset.
func (Codec) Decode(body []byte) (*pipeline.GeneratedAsset, error) {
	var resp Response
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, &pipeline.DecodeError{Reason: "malformed response body", Err: err}
	}
	if !resp.Success {
		msg := strings.TrimSpace(resp.Error)
		if msg == "" {
			msg = "generation failed with no reason given"
		}
		return nil, &pipeline.ServiceError{Message: msg}
	}

	payload, err := base64.StdEncoding.DecodeString(resp.ImageBase64)
	if err != nil {
		return nil, &pipeline.DecodeError{Reason: "image payload is not valid base64", Err: err}
	}
	if _, _, err := image.DecodeConfig(bytes.NewReader(payload)); err != nil {
		return nil, &pipeline.DecodeError{Reason: "image payload is not a decodable image", Err: err}
	}

	return &pipeline.GeneratedAsset{
		AssetID:               resp.AssetID,
		ModelUsed:             resp.ModelUsed,
		PromptUsed:            resp.PromptUsed,
		GenerationTimeSeconds: resp.GenerationTime,
		ImagePayload:          payload,
	}, nil
}
