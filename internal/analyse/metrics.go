// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package analyse

import (
	"context"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// Package-level tracer and meter for analyser operations, grounded on
// services/trace/cache/metrics.go's per-package tracer/meter convention.
var (
	tracer = otel.Tracer("parversion.analyse")
	meter  = otel.Meter("parversion.analyse")
)

var (
	nodesAnalyzedTotal   metric.Int64Counter
	nodesSkippedTotal    metric.Int64Counter
	llmFailuresTotal     metric.Int64Counter
	associationsTotal    metric.Int64Counter
	nodeAnalysisDuration metric.Float64Histogram

	metricsOnce sync.Once
	metricsErr  error
)

// initMetrics initializes the analyser's metrics. Safe to call multiple
// times; only the first call does any work.
func initMetrics() error {
	metricsOnce.Do(func() {
		var err error

		nodesAnalyzedTotal, err = meter.Int64Counter(
			"analyse_nodes_analyzed_total",
			metric.WithDescription("Total number of basis nodes that reached the classical/LLM analysis passes"),
		)
		if err != nil {
			metricsErr = err
			return
		}

		nodesSkippedTotal, err = meter.Int64Counter(
			"analyse_nodes_skipped_total",
			metric.WithDescription("Total number of basis nodes skipped because they were already annotated"),
		)
		if err != nil {
			metricsErr = err
			return
		}

		llmFailuresTotal, err = meter.Int64Counter(
			"analyse_llm_failures_total",
			metric.WithDescription("Total number of structure/data LLM calls that returned an error"),
		)
		if err != nil {
			metricsErr = err
			return
		}

		associationsTotal, err = meter.Int64Counter(
			"analyse_associations_total",
			metric.WithDescription("Total number of basis nodes that received an inferred associative grouping"),
		)
		if err != nil {
			metricsErr = err
			return
		}

		nodeAnalysisDuration, err = meter.Float64Histogram(
			"analyse_node_duration_seconds",
			metric.WithDescription("Duration of one basis node's analysis pass"),
			metric.WithUnit("s"),
		)
		if err != nil {
			metricsErr = err
			return
		}
	})
	return metricsErr
}

// recordNodeSkipped records that a node's analysis was skipped because it
// was already annotated.
func recordNodeSkipped(ctx context.Context) {
	if err := initMetrics(); err != nil {
		return
	}
	nodesSkippedTotal.Add(ctx, 1)
}

// recordNodeAnalyzed records that a node reached the classical/LLM
// analysis passes, along with how long that took.
func recordNodeAnalyzed(ctx context.Context, duration time.Duration) {
	if err := initMetrics(); err != nil {
		return
	}
	nodesAnalyzedTotal.Add(ctx, 1)
	nodeAnalysisDuration.Record(ctx, duration.Seconds())
}

// recordLLMFailure records a structure or data LLM call failure.
func recordLLMFailure(ctx context.Context, pass string) {
	if err := initMetrics(); err != nil {
		return
	}
	llmFailuresTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("pass", pass)))
}

// recordAssociationInferred records that a basis node received an inferred
// associative grouping.
func recordAssociationInferred(ctx context.Context) {
	if err := initMetrics(); err != nil {
		return
	}
	associationsTotal.Add(ctx, 1)
}

// startNodeSpan starts a span covering one basis node's analysis pass.
func startNodeSpan(ctx context.Context, operation string, node *BasisNode) (context.Context, trace.Span) {
	return tracer.Start(ctx, "Analyse."+operation,
		trace.WithAttributes(
			attribute.String("analyse.node_id", node.ID),
			attribute.String("analyse.node_hash", node.Hash),
		),
	)
}
