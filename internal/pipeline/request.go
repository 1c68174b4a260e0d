package pipeline

// Model selects which remote generation model a request prefers. The service
// is free to apply a fallback; the asset it returns echoes the model it
// actually used.
type Model string

const (
	ModelPrimary            Model = "primary"
	ModelSecondary          Model = "secondary"
	ModelProceduralFallback Model = "procedural_fallback"
)

// Style selects the visual treatment applied to the generated asset.
type Style string

const (
	StyleRealistic  Style = "realistic"
	StyleCartoon    Style = "cartoon"
	StylePixel      Style = "pixel"
	StyleMinimalist Style = "minimalist"
)

// Dimensions is the square pixel size of the requested asset.
type Dimensions int

const (
	DimensionsSmall  Dimensions = 256
	DimensionsMedium Dimensions = 512
	DimensionsLarge  Dimensions = 1024
)

// GenerationRequest is one caller's ask. It is immutable after Submit; the
// optional hooks are invoked from the drain goroutine, at most one of the
// two, exactly once, after the request's round trip finishes.
type GenerationRequest struct {
	Prompt     string
	Model      Model
	Style      Style
	Dimensions Dimensions

	OnSuccess func(*GeneratedAsset)
	OnFailure func(error)
}

// GeneratedAsset is a successfully decoded generation result. The pipeline
// holds no reference to it after delivery.
type GeneratedAsset struct {
	AssetID               string
	ModelUsed             string
	PromptUsed            string
	GenerationTimeSeconds float64
	ImagePayload          []byte
}
