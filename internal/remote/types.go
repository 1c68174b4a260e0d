package remote

// Request is the wire-format body submitted to the generation service.
type Request struct {
	Prompt          string `json:"prompt"`
	Style           string `json:"style"`
	Dimensions      string `json:"dimensions"`
	ModelPreference string `json:"model_preference"`
	Quality         string `json:"quality"`
}

// Response is the wire-format body the generation service answers with.
// Error and ImageBase64 are null/absent depending on Success.
type Response struct {
	Success        bool    `json:"success"`
	AssetID        string  `json:"asset_id"`
	ModelUsed      string  `json:"model_used"`
	GenerationTime float64 `json:"generation_time"`
	PromptUsed     string  `json:"prompt_used"`
	Error          string  `json:"error,omitempty"`
	ImageBase64    string  `json:"image_base64,omitempty"`
}
