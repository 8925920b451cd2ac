package telemetry

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
)

func TestSetup_ExportsSpans(t *testing.T) {
	var buf bytes.Buffer
	shutdown, err := setup(true, &buf)
	require.NoError(t, err)

	_, span := otel.Tracer("hotelindigo.test").Start(context.Background(), "GET api/platos/")
	span.End()
	require.NoError(t, shutdown(context.Background()))

	assert.Contains(t, buf.String(), "GET api/platos/")
}

func TestSetup_Disabled(t *testing.T) {
	shutdown, err := Setup(false)
	require.NoError(t, err)
	assert.NoError(t, shutdown(context.Background()))
}
