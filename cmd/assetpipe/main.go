package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"assetpipe/internal/config"
	"assetpipe/internal/history"
	"assetpipe/internal/infra"
	"assetpipe/internal/pipeline"
	"assetpipe/internal/remote"
	"assetpipe/internal/storage"
)

// Prompts used when the command line supplies none.
var demoPrompts = []struct {
	prompt string
	style  pipeline.Style
}{
	{"fantasy sword with glowing blue runes, game weapon asset", pipeline.StyleRealistic},
	{"cute cartoon mushroom character, game sprite", pipeline.StyleCartoon},
	{"stone brick wall texture, seamless tileable", pipeline.StyleRealistic},
	{"pixel art treasure chest, 16-bit style", pipeline.StylePixel},
}

func main() {
	cfg := config.Load()
	logger := infra.NewLogger(cfg.Env)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fileStore, err := storage.NewFileStore(cfg.StoragePath)
	if err != nil {
		logger.Fatal().Err(err).Msg("assetpipe: failed to configure storage")
	}

	hist, err := history.Open(cfg.HistoryDBPath)
	if err != nil {
		logger.Fatal().Err(err).Msg("assetpipe: failed to open history db")
	}
	defer hist.Close()

	client := remote.NewClient(remote.Options{
		BaseURL:    cfg.ServiceBaseURL,
		APIKey:     cfg.ServiceAPIKey,
		HTTPClient: &http.Client{Timeout: cfg.HTTPTimeout},
		Logger:     &logger,
	})

	pipe, err := pipeline.New(pipeline.Options{
		Codec:     remote.NewCodec(),
		Transport: client,
		Throttle:  cfg.ThrottleDelay,
		Context:   ctx,
		Logger:    &logger,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("assetpipe: failed to configure pipeline")
	}

	if !pipe.HealthCheck(ctx) {
		logger.Warn().Str("base_url", cfg.ServiceBaseURL).Msg("assetpipe: generation service unreachable, requests may fail")
	}

	pipe.Bus().ProgressUpdated.Subscribe(func(fraction float64) {
		logger.Debug().Float64("fraction", fraction).Msg("assetpipe: progress")
	})
	pipe.Bus().GenerationFailed.Subscribe(func(reason string) {
		logger.Error().Str("reason", reason).Msg("assetpipe: generation failed")
	})

	requests := buildRequests(cfg, os.Args[1:])

	var wg sync.WaitGroup
	for i := range requests {
		req := requests[i]
		prompt := req.Prompt
		wg.Add(1)
		req.OnSuccess = func(asset *pipeline.GeneratedAsset) {
			defer wg.Done()
			persist(ctx, logger, fileStore, hist, prompt, asset)
		}
		req.OnFailure = func(err error) {
			defer wg.Done()
			logger.Error().Err(err).Str("prompt", prompt).Msg("assetpipe: request failed")
		}
		pipe.Submit(req)
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		logger.Warn().Msg("assetpipe: interrupted, abandoning pending requests")
	}

	entries, err := hist.Recent(context.Background(), len(requests))
	if err != nil {
		logger.Error().Err(err).Msg("assetpipe: failed to read history")
		return
	}
	for _, e := range entries {
		logger.Info().
			Str("asset_id", e.AssetID).
			Str("model", e.ModelUsed).
			Str("storage_key", e.StorageKey).
			Float64("seconds", e.GenerationSeconds).
			Msg("assetpipe: generated")
	}
}

func buildRequests(cfg config.Config, args []string) []pipeline.GenerationRequest {
	if len(args) > 0 {
		requests := make([]pipeline.GenerationRequest, 0, len(args))
		for _, prompt := range args {
			requests = append(requests, pipeline.GenerationRequest{
				Prompt:     prompt,
				Model:      cfg.DefaultModel,
				Style:      cfg.DefaultStyle,
				Dimensions: cfg.DefaultDimensions,
			})
		}
		return requests
	}

	requests := make([]pipeline.GenerationRequest, 0, len(demoPrompts))
	for i, demo := range demoPrompts {
		// Alternate models for variety, like the original demo run.
		model := pipeline.ModelPrimary
		if i%2 == 1 {
			model = pipeline.ModelSecondary
		}
		requests = append(requests, pipeline.GenerationRequest{
			Prompt:     demo.prompt,
			Model:      model,
			Style:      demo.style,
			Dimensions: cfg.DefaultDimensions,
		})
	}
	return requests
}

func persist(ctx context.Context, logger infra.Logger, store *storage.FileStore, hist *history.Store, prompt string, asset *pipeline.GeneratedAsset) {
	key := storage.KeyForAsset(asset.AssetID)
	savedKey, err := store.Write(ctx, key, asset.ImagePayload)
	if err != nil {
		logger.Error().Err(err).Str("asset_id", asset.AssetID).Msg("assetpipe: persist asset failed")
		savedKey = ""
	}

	if err := hist.Record(ctx, history.Entry{
		AssetID:           asset.AssetID,
		Prompt:            prompt,
		ModelUsed:         asset.ModelUsed,
		GenerationSeconds: asset.GenerationTimeSeconds,
		StorageKey:        savedKey,
		CreatedAt:         time.Now().UTC(),
	}); err != nil {
		logger.Error().Err(err).Str("asset_id", asset.AssetID).Msg("assetpipe: record history failed")
	}

	logger.Info().
		Str("asset_id", asset.AssetID).
		Str("model", asset.ModelUsed).
		Str("storage_key", savedKey).
		Msg("assetpipe: asset stored")
}
