// SPDX-License-Identifier: Apache-2.0

// Package analyzer orchestrates one `analyze` run: it invokes a registered
// example's Program, stamps a correlation id, records duration and outcome
// metrics, and classifies the residual policy the program produced.
package analyzer

import (
	"context"
	"time"

	"github.com/oklog/ulid/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/sunblaze-ucb/privguard/internal/policy"
	"github.com/sunblaze-ucb/privguard/internal/registry"
	"github.com/sunblaze-ucb/privguard/internal/surrogate"
)

var tracer = otel.Tracer("privguard/analyzer")

// Effect classifies a residual policy's discharge state.
type Effect string

const (
	EffectSat     Effect = "sat"
	EffectUnsat   Effect = "unsat"
	EffectPartial Effect = "partial"
)

// classify returns the Effect a residual Policy falls into.
func classify(p policy.Policy) Effect {
	switch {
	case p.IsSat():
		return EffectSat
	case p.IsUnsat():
		return EffectUnsat
	default:
		return EffectPartial
	}
}

// Result is one completed analyze run.
type Result struct {
	RunID          ulid.ULID
	ExampleID      int
	ExampleName    string
	ResidualPolicy policy.Policy
	Effect         Effect
	Duration       time.Duration
}

// Analyze runs entry's Program against a fresh surrogate.Libraries bundle,
// stamping a ULID run id on the span/log correlation the way the teacher
// stamps session/event ids, and records Prometheus metrics for the run.
func Analyze(ctx context.Context, entry registry.Entry) (Result, error) {
	runID := ulid.Make()

	ctx, span := tracer.Start(ctx, "analyzer.analyze",
		trace.WithAttributes(
			attribute.Int("example.id", entry.ID),
			attribute.String("example.name", entry.Name),
			attribute.String("run.id", runID.String()),
		),
	)
	defer span.End()

	start := time.Now()
	carrier, err := entry.Program(ctx, surrogate.New(), entry.DataFolder)
	duration := time.Since(start)

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return Result{}, err
	}

	residual := carrier.PolicyOf()
	effect := classify(residual)
	recordRunMetrics(duration.Seconds(), effect)
	span.SetAttributes(attribute.String("residual.effect", string(effect)))

	return Result{
		RunID:          runID,
		ExampleID:      entry.ID,
		ExampleName:    entry.Name,
		ResidualPolicy: residual,
		Effect:         effect,
		Duration:       duration,
	}, nil
}
