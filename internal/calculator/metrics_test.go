package calculator

import (
	"context"
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"mathengine-api/internal/mathengine"
	"mathengine-api/internal/testutil"
)

// errorCount sums calculator.errors.total across all attribute sets.
func errorCount(t *testing.T, reader *sdkmetric.ManualReader) int64 {
	t.Helper()

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))

	var total int64
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name != "calculator.errors.total" {
				continue
			}
			sum, ok := m.Data.(metricdata.Sum[int64])
			require.True(t, ok, "unexpected data type %T", m.Data)
			for _, dp := range sum.DataPoints {
				total += dp.Value
			}
		}
	}
	return total
}

func TestRejectedExpressionIsCountedOnce(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	otel.SetMeterProvider(sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader)))
	require.NoError(t, InitMetrics())

	r := chi.NewRouter()
	RegisterRoutes(r, NewHandler(NewService(mathengine.New(mathengine.WithLocale("en")))))

	w := testutil.ExecuteRequest(testutil.NewJSONRequest(http.MethodPost, "/calculator/evaluate", `{"expression":"5/0"}`), r)
	testutil.CheckResponseCode(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, int64(1), errorCount(t, reader))

	w = testutil.ExecuteRequest(testutil.NewJSONRequest(http.MethodPost, "/calculator/evaluate", `{"expression":`), r)
	testutil.CheckResponseCode(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, int64(2), errorCount(t, reader))
}
