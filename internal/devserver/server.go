// Package devserver is a development stand-in for the remote asset
// generation service. It speaks the same wire schema as the real service
// but fulfils every request with the procedural renderer, so the client
// pipeline can be exercised end to end on a laptop or in CI.
package devserver

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"assetpipe/internal/infra"
	"assetpipe/internal/middleware"
	"assetpipe/internal/procedural"
	"assetpipe/internal/remote"
)

// Options configures the development server.
type Options struct {
	// APIKey, when set, requires submissions to carry the matching bearer
	// token. The health endpoint stays open either way.
	APIKey string
	// RateLimit caps requests per client per minute. Zero disables the
	// limiter.
	RateLimit int
	Logger    *infra.Logger
}

// Server handles the two endpoints of the generation wire contract.
type Server struct {
	apiKey string
	logger *infra.Logger
}

// NewRouter builds the chi router for the development server.
func NewRouter(opts Options) http.Handler {
	logger := opts.Logger
	if logger == nil {
		logger = infra.Discard()
	}
	s := &Server{apiKey: strings.TrimSpace(opts.APIKey), logger: logger}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(*logger))
	r.Use(chimiddleware.Recoverer)
	if opts.RateLimit > 0 {
		r.Use(middleware.RateLimit(opts.RateLimit, time.Minute))
	}

	r.Get("/health", s.health)
	r.Post("/generate-asset", s.generate)
	return r
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	s.json(w, http.StatusOK, map[string]string{"status": "ok"})
}

// generate renders a procedural asset for the submitted wire request and
// answers in the wire response schema. Requests the service cannot fulfil
// still answer 200 with success=false and a reason, mirroring how the real
// service reports generation failures; only malformed transport input
// (bad JSON, bad credentials) earns a non-2xx status.
func (s *Server) generate(w http.ResponseWriter, r *http.Request) {
	if !s.authorized(r) {
		s.json(w, http.StatusUnauthorized, map[string]string{"error": "invalid or missing api key"})
		return
	}

	var req remote.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.json(w, http.StatusBadRequest, map[string]string{"error": "malformed request body"})
		return
	}

	started := time.Now()
	if strings.TrimSpace(req.Prompt) == "" {
		s.failure(w, "prompt is required")
		return
	}
	dims, err := remote.ParseDimensions(req.Dimensions)
	if err != nil {
		s.failure(w, err.Error())
		return
	}
	style, err := remote.ParseStyle(req.Style)
	if err != nil {
		s.failure(w, err.Error())
		return
	}

	data, err := procedural.Render(req.Prompt, style, int(dims))
	if err != nil {
		s.failure(w, err.Error())
		return
	}

	assetID := uuid.NewString()
	s.logger.Debug().
		Str("asset_id", assetID).
		Str("requested_model", req.ModelPreference).
		Int("size", int(dims)).
		Msg("devserver: rendered procedural asset")

	s.json(w, http.StatusOK, remote.Response{
		Success:        true,
		AssetID:        assetID,
		ModelUsed:      "procedural",
		GenerationTime: time.Since(started).Seconds(),
		PromptUsed:     req.Prompt,
		ImageBase64:    base64.StdEncoding.EncodeToString(data),
	})
}

func (s *Server) authorized(r *http.Request) bool {
	if s.apiKey == "" {
		return true
	}
	return r.Header.Get("Authorization") == "Bearer "+s.apiKey
}

func (s *Server) failure(w http.ResponseWriter, msg string) {
	s.json(w, http.StatusOK, remote.Response{
		Success:   false,
		ModelUsed: "procedural",
		Error:     msg,
	})
}

func (s *Server) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
