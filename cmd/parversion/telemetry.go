// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package main

import (
	"context"

	"go.opentelemetry.io/otel"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// setupTelemetry installs process-wide SDK-backed tracer and meter
// providers so internal/analyse's spans and counters (see
// internal/analyse/metrics.go) are actually recorded rather than handed to
// otel's no-op default. No exporter is attached here: the collector
// endpoint services/orchestrator/main.go points at (an OTLP/gRPC
// collector sidecar) is part of the appliance deployment this CLI does
// not assume, so the SDK accumulates spans/metrics in-process only,
// ready for a caller to attach a real exporter later.
//
// Grounded on services/orchestrator/main.go's TracerProvider setup,
// trimmed to the exporter-free subset buildable from this module's
// go.mod (no otlptracegrpc dependency).
func setupTelemetry() (shutdown func(context.Context) error) {
	tracerProvider := sdktrace.NewTracerProvider()
	meterProvider := sdkmetric.NewMeterProvider()

	otel.SetTracerProvider(tracerProvider)
	otel.SetMeterProvider(meterProvider)

	return func(ctx context.Context) error {
		if err := tracerProvider.Shutdown(ctx); err != nil {
			return err
		}
		return meterProvider.Shutdown(ctx)
	}
}
