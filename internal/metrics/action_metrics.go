package metrics

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

var meter = otel.Meter("usdc-actions")

// Execution outcomes
const (
	OutcomeSuccess  = "success"
	OutcomeNotFound = "not_found"
	OutcomeInvalid  = "invalid"
	OutcomeFailed   = "failed"
)

// ActionMetrics provides metrics collection for the action lifecycle
type ActionMetrics struct {
	specsCreatedCounter metric.Int64Counter
	specsDeletedCounter metric.Int64Counter
	executionsCounter   metric.Int64Counter
	buildDurationHisto  metric.Float64Histogram
	wizardTurnsCounter  metric.Int64Counter
}

// NewActionMetrics creates a new action metrics collector
func NewActionMetrics() (*ActionMetrics, error) {
	specsCreatedCounter, err := meter.Int64Counter(
		"usdc_actions.specs.created",
		metric.WithDescription("Total number of action specs created"),
		metric.WithUnit("{spec}"),
	)
	if err != nil {
		return nil, err
	}

	specsDeletedCounter, err := meter.Int64Counter(
		"usdc_actions.specs.deleted",
		metric.WithDescription("Total number of action specs deleted"),
		metric.WithUnit("{spec}"),
	)
	if err != nil {
		return nil, err
	}

	executionsCounter, err := meter.Int64Counter(
		"usdc_actions.executions",
		metric.WithDescription("Transfer transaction requests by outcome"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return nil, err
	}

	buildDurationHisto, err := meter.Float64Histogram(
		"usdc_actions.transaction.build.duration",
		metric.WithDescription("Time spent building transfer transactions in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	wizardTurnsCounter, err := meter.Int64Counter(
		"usdc_actions.wizard.turns",
		metric.WithDescription("Wizard turns by the state they started in"),
		metric.WithUnit("{turn}"),
	)
	if err != nil {
		return nil, err
	}

	return &ActionMetrics{
		specsCreatedCounter: specsCreatedCounter,
		specsDeletedCounter: specsDeletedCounter,
		executionsCounter:   executionsCounter,
		buildDurationHisto:  buildDurationHisto,
		wizardTurnsCounter:  wizardTurnsCounter,
	}, nil
}

// RecordSpecCreated records a persisted spec
func (am *ActionMetrics) RecordSpecCreated(ctx context.Context, amounts int) {
	am.specsCreatedCounter.Add(ctx, 1,
		metric.WithAttributes(
			attribute.Int("spec.amounts", amounts),
		),
	)
}

// RecordSpecDeleted records a delete request
func (am *ActionMetrics) RecordSpecDeleted(ctx context.Context) {
	am.specsDeletedCounter.Add(ctx, 1)
}

// RecordExecution records one execution request and, for requests that
// reached the builder, how long the build took.
func (am *ActionMetrics) RecordExecution(ctx context.Context, outcome string, buildDuration time.Duration) {
	am.executionsCounter.Add(ctx, 1,
		metric.WithAttributes(
			attribute.String("outcome", outcome),
		),
	)
	if buildDuration > 0 {
		am.buildDurationHisto.Record(ctx, buildDuration.Seconds(),
			metric.WithAttributes(
				attribute.String("outcome", outcome),
			),
		)
	}
}

// RecordWizardTurn records a wizard turn
func (am *ActionMetrics) RecordWizardTurn(ctx context.Context, state, input string) {
	am.wizardTurnsCounter.Add(ctx, 1,
		metric.WithAttributes(
			attribute.String("wizard.state", state),
			attribute.String("wizard.input", input),
		),
	)
}
