// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package trace

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDisabledTracer(t *testing.T) {
	require := require.New(t)

	tracer, err := New(&Config{Enabled: false, AppName: "counter"})
	require.NoError(err)

	_, span := tracer.Start(context.Background(), "test")
	require.False(span.SpanContext().IsSampled())
	span.End()
	require.NoError(tracer.Close())
}

func TestEnabledTracer(t *testing.T) {
	require := require.New(t)

	tracer, err := New(&Config{
		Enabled:         true,
		TraceSampleRate: 1,
		AppName:         "counter",
		Agent:           "counter-simulator",
		Version:         "test",
		Endpoint:        "http://127.0.0.1:1/api/v2/spans",
	})
	require.NoError(err)

	_, span := tracer.Start(context.Background(), "test")
	require.True(span.SpanContext().IsSampled())
	span.End()

	// Export failures are reported to the otel error handler, not Close.
	_ = tracer.Close()
}
