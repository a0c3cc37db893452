// Package backend implements the hosted-LLM collaborators the response
// composer defers to for generated prose. Each client is a typed HTTP
// wrapper with an OpenTelemetry span, a request-duration histogram, and
// token-usage counters per call.
package backend

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/1adityakadam/financial-calculators/internal/session"
)

// Generator produces prose from a system prompt plus conversation
// history. Implementations must respect ctx cancellation; callers bound
// the wait and degrade to a static apology on failure.
type Generator interface {
	Name() string
	Generate(ctx context.Context, systemPrompt string, history []session.Message) (string, error)
}

// Deps carries the shared plumbing injected into every client.
type Deps struct {
	HTTPClient *http.Client
	Tracer     trace.Tracer
	Meter      metric.Meter
	Logger     *slog.Logger
}

func (d *Deps) httpClient() *http.Client {
	if d.HTTPClient != nil {
		return d.HTTPClient
	}
	return &http.Client{Timeout: 60 * time.Second}
}

// startSpan opens a span when a tracer is configured; otherwise it
// returns the (noop) span already on the context so callers can defer
// End unconditionally.
func startSpan(ctx context.Context, d Deps, name string) (context.Context, trace.Span) {
	if d.Tracer != nil {
		return d.Tracer.Start(ctx, name)
	}
	return ctx, trace.SpanFromContext(ctx)
}

// recordDuration records the request latency histogram for one call.
func (d *Deps) recordDuration(ctx context.Context, start time.Time) {
	if d.Meter == nil {
		return
	}
	histogram, err := d.Meter.Float64Histogram(
		"http.client.request.duration",
		metric.WithDescription("HTTP request duration in milliseconds"),
	)
	if err == nil {
		histogram.Record(ctx, float64(time.Since(start).Milliseconds()))
	}
}

// recordUsage turns a usage map from an API response into counters.
func (d *Deps) recordUsage(ctx context.Context, usage map[string]interface{}) {
	if d.Meter == nil || usage == nil {
		return
	}
	for key, value := range usage {
		intVal, ok := value.(float64)
		if !ok {
			continue
		}
		counter, err := d.Meter.Int64Counter(
			fmt.Sprintf("llm.usage.%s", key),
			metric.WithDescription(fmt.Sprintf("LLM usage metric: %s", key)),
		)
		if err != nil {
			if d.Logger != nil {
				d.Logger.Warn("failed to create counter", "key", key, "error", err)
			}
			continue
		}
		counter.Add(ctx, int64(intVal))
	}
}
