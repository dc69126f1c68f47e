// Package simulator mimics the assistant backend round trip of the demo panel.
// Results come from a fixed table keyed by operation and are released after an
// artificial delay; no network call is ever made.
package simulator

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
)

// DefaultDelay is the simulated backend latency.
const DefaultDelay = 1000 * time.Millisecond

// Request is built fresh for every triggered operation.
type Request struct {
	SourceText string
	Operation  Operation
}

type Response struct {
	ResultText string
}

type Option func(*Simulator)

func WithDelay(delay time.Duration) Option {
	return func(simulator *Simulator) {
		if delay < 0 {
			delay = 0
		}
		simulator.delay = delay
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(simulator *Simulator) {
		if logger != nil {
			simulator.logger = logger
		}
	}
}

// Simulator holds the endpoint URL only to check that one was configured.
type Simulator struct {
	endpoint string
	delay    time.Duration
	logger   *zap.Logger
}

func New(endpoint string, options ...Option) *Simulator {
	simulator := &Simulator{
		endpoint: strings.TrimSpace(endpoint),
		delay:    DefaultDelay,
		logger:   zap.NewNop(),
	}
	for _, option := range options {
		option(simulator)
	}
	return simulator
}

func (simulator *Simulator) Delay() time.Duration { return simulator.delay }

func (simulator *Simulator) Configured() bool { return simulator.endpoint != "" }

// Start begins a call and returns without waiting for it. Without a configured
// endpoint the call is already resolved with MissingEndpointMessage.
func (simulator *Simulator) Start(ctx context.Context, request Request) (*Call, error) {
	if !request.Operation.Valid() {
		return nil, fmt.Errorf("%w: %s", ErrUnknownOperation, request.Operation)
	}

	call := newCall(request)
	if !simulator.Configured() {
		call.resolve(Response{ResultText: MissingEndpointMessage})
		simulator.logger.Debug("demo call short-circuited: endpoint not configured",
			zap.String("call_id", call.ID),
			zap.Stringer("operation", request.Operation))
		return call, nil
	}

	resultText, _ := CannedResponse(request.Operation)
	call.markPending()
	simulator.logger.Debug("demo call pending",
		zap.String("call_id", call.ID),
		zap.Stringer("operation", request.Operation),
		zap.Duration("delay", simulator.delay))
	go simulator.await(ctx, call, Response{ResultText: resultText})
	return call, nil
}

// Submit starts a call and waits for it to settle.
func (simulator *Simulator) Submit(ctx context.Context, request Request) (Response, error) {
	call, startErr := simulator.Start(ctx, request)
	if startErr != nil {
		return Response{}, startErr
	}
	return call.Wait()
}

func (simulator *Simulator) await(ctx context.Context, call *Call, response Response) {
	startedAt := time.Now()
	if ctx.Err() != nil {
		simulator.abandon(call, ctx.Err())
		return
	}

	timer := time.NewTimer(simulator.delay)
	defer timer.Stop()

	select {
	case <-timer.C:
		call.resolve(response)
		simulator.logger.Debug("demo call resolved",
			zap.String("call_id", call.ID),
			zap.Stringer("operation", call.Request.Operation),
			zap.Duration("elapsed", time.Since(startedAt)))
	case <-ctx.Done():
		simulator.abandon(call, ctx.Err())
	}
}

func (simulator *Simulator) abandon(call *Call, cause error) {
	call.abandon(cause)
	simulator.logger.Debug("demo call cancelled",
		zap.String("call_id", call.ID),
		zap.Stringer("operation", call.Request.Operation),
		zap.Error(cause))
}
