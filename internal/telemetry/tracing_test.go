package telemetry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInit_NoneIsNoop(t *testing.T) {
	shutdown, err := Init(context.Background(), Config{ServiceName: "expertqa", Exporter: ExporterNone})
	require.NoError(t, err)
	assert.NoError(t, shutdown(context.Background()))
}

func TestInit_UnknownExporter(t *testing.T) {
	_, err := Init(context.Background(), Config{ServiceName: "expertqa", Exporter: "zipkin"})
	assert.ErrorContains(t, err, "zipkin")
}

func TestInit_Stdout(t *testing.T) {
	shutdown, err := Init(context.Background(), Config{ServiceName: "expertqa", Environment: "test", Exporter: ExporterStdout})
	require.NoError(t, err)
	assert.NoError(t, shutdown(context.Background()))
}
