package tracer

import (
	"context"
	"testing"

	"tv-keuzehulp-be/internal/config"

	"github.com/stretchr/testify/assert"
	"go.opentelemetry.io/otel/attribute"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"
)

func TestInitTracerDisabled(t *testing.T) {
	shutdown := InitTracer(config.OtelConfig{Enabled: false})
	assert.NoError(t, shutdown(context.Background()))
}

func TestSampler(t *testing.T) {
	tests := []struct {
		ratio float64
		want  string
	}{
		{0, "ParentBased{root:AlwaysOffSampler"},
		{-1, "ParentBased{root:AlwaysOffSampler"},
		{1, "ParentBased{root:AlwaysOnSampler"},
		{0.25, "ParentBased{root:TraceIDRatioBased{0.25}"},
	}

	for _, tt := range tests {
		assert.Contains(t, Sampler(tt.ratio).Description(), tt.want)
	}
}

func TestResourceCarriesEnvironment(t *testing.T) {
	res := newResource(config.OtelConfig{Environment: "staging"})

	v, ok := res.Set().Value(semconv.DeploymentEnvironmentKey)
	assert.True(t, ok)
	assert.Equal(t, attribute.StringValue("staging"), v)

	v, ok = res.Set().Value(semconv.ServiceNameKey)
	assert.True(t, ok)
	assert.Equal(t, serviceName, v.AsString())
}
