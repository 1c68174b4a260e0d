// Package pipeline implements the request-queueing and delivery pipeline:
// an unbounded FIFO of generation requests drained by a single sequential
// worker that drives each request through the codec and transport and
// reports progress, results and failures to callers.
package pipeline

import (
	"context"
	"errors"
	"sync"
	"time"

	"assetpipe/internal/infra"
)

// Codec converts a typed request into the service's wire body and a wire
// response body back into a typed asset. Implementations must be pure
// transforms.
type Codec interface {
	Encode(req GenerationRequest) ([]byte, error)
	Decode(body []byte) (*GeneratedAsset, error)
}

// Transport performs one submission round trip per call. One call is one
// attempt: no retry, no deadline beyond whatever the implementation's HTTP
// client already enforces.
type Transport interface {
	Submit(ctx context.Context, body []byte) ([]byte, error)
	HealthCheck(ctx context.Context) bool
}

// Progress checkpoints emitted per request. The exact fractions were tuned
// for perceived responsiveness; nothing downstream may rely on the values
// beyond their ordering.
const (
	progressDequeued   = 0.1
	progressEncoded    = 0.3
	progressSubmitting = 0.5
	progressResponded  = 0.8
	progressDelivered  = 1.0
)

// DefaultThrottle is the default pause between consecutive dispatches,
// keeping the pipeline from hammering the remote service.
const DefaultThrottle = 500 * time.Millisecond

// Options configures a Pipeline. Codec and Transport are required.
type Options struct {
	Codec     Codec
	Transport Transport

	// Bus receives the pipeline's notifications. A fresh bus is created
	// when nil.
	Bus *Bus

	// Throttle is the fixed inter-request delay. Zero disables the
	// throttle, which is what tests want; real deployments should pass
	// DefaultThrottle or their own tuning.
	Throttle time.Duration

	// Context bounds all transport calls issued by the drain loop.
	// Defaults to context.Background.
	Context context.Context

	Logger *infra.Logger
}

// Pipeline is the sequential dispatcher. Submissions never block the
// caller; requests are processed strictly in submission order by at most
// one drain loop at a time.
type Pipeline struct {
	codec     Codec
	transport Transport
	bus       *Bus
	throttle  time.Duration
	ctx       context.Context
	logger    *infra.Logger

	queue requestQueue

	// mu guards draining. Enqueue and the idle-check-and-start in Submit
	// happen under one critical section so two loops can never start
	// concurrently.
	mu       sync.Mutex
	draining bool
}

// New validates opts and returns a ready pipeline.
func New(opts Options) (*Pipeline, error) {
	if opts.Codec == nil {
		return nil, errors.New("pipeline: codec is required")
	}
	if opts.Transport == nil {
		return nil, errors.New("pipeline: transport is required")
	}
	b := opts.Bus
	if b == nil {
		b = NewBus()
	}
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	logger := opts.Logger
	if logger == nil {
		logger = infra.Discard()
	}
	return &Pipeline{
		codec:     opts.Codec,
		transport: opts.Transport,
		bus:       b,
		throttle:  opts.Throttle,
		ctx:       ctx,
		logger:    logger,
	}, nil
}

// Bus returns the notification bus observers should subscribe to.
func (p *Pipeline) Bus() *Bus {
	return p.bus
}

// Submit appends req to the queue and starts a drain loop if none is
// active. It returns immediately; completion is reported through the
// request's hooks and the bus. Safe to call from any goroutine, including
// from within a completion hook.
func (p *Pipeline) Submit(req GenerationRequest) {
	p.mu.Lock()
	p.queue.enqueue(req)
	start := !p.draining
	if start {
		p.draining = true
	}
	pending := p.queue.len()
	p.mu.Unlock()

	p.logger.Debug().
		Int("pending", pending).
		Bool("drain_started", start).
		Msg("pipeline: request queued")

	if start {
		go p.drain()
	}
}

// Pending reports the number of queued requests at this instant.
func (p *Pipeline) Pending() int {
	return p.queue.len()
}

// Draining reports whether a drain loop is currently active.
func (p *Pipeline) Draining() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.draining
}

// HealthCheck probes the remote service once through the transport.
func (p *Pipeline) HealthCheck(ctx context.Context) bool {
	return p.transport.HealthCheck(ctx)
}

// drain processes queued requests one at a time until the queue is empty,
// then clears the draining flag and exits. The flag is cleared under the
// same lock Submit uses, so a request enqueued after the final emptiness
// check starts a fresh loop instead of being stranded.
func (p *Pipeline) drain() {
	for {
		p.mu.Lock()
		req, ok := p.queue.tryDequeue()
		if !ok {
			p.draining = false
			p.mu.Unlock()
			p.logger.Debug().Msg("pipeline: queue drained")
			return
		}
		p.mu.Unlock()

		p.process(req)

		if p.throttle > 0 {
			time.Sleep(p.throttle)
		}
	}
}

// process drives one request through encode, submit and decode, emitting
// progress at each stage boundary. Exactly one of the request's hooks fires
// before process returns.
func (p *Pipeline) process(req GenerationRequest) {
	p.progress(progressDequeued)

	body, err := p.codec.Encode(req)
	if err != nil {
		p.fail(req, err)
		return
	}
	p.progress(progressEncoded)

	p.progress(progressSubmitting)
	reply, err := p.transport.Submit(p.ctx, body)
	if err != nil {
		p.fail(req, err)
		return
	}
	p.progress(progressResponded)

	asset, err := p.codec.Decode(reply)
	if err != nil {
		p.fail(req, err)
		return
	}
	p.progress(progressDelivered)

	p.logger.Info().
		Str("asset_id", asset.AssetID).
		Str("model_used", asset.ModelUsed).
		Float64("generation_seconds", asset.GenerationTimeSeconds).
		Msg("pipeline: asset generated")

	if req.OnSuccess != nil {
		req.OnSuccess(asset)
	}
	p.bus.AssetGenerated.Publish(asset)
}

func (p *Pipeline) fail(req GenerationRequest, err error) {
	p.logger.Warn().
		Err(err).
		Int("prompt_len", len(req.Prompt)).
		Msg("pipeline: generation failed")

	if req.OnFailure != nil {
		req.OnFailure(err)
	}
	p.bus.GenerationFailed.Publish(err.Error())
}

func (p *Pipeline) progress(fraction float64) {
	p.bus.ProgressUpdated.Publish(fraction)
}
