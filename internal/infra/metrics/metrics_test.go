package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Registered(t *testing.T) {
	ProductsIngested.WithLabelValues(IngestInserted)
	SalesTotal.WithLabelValues(SaleRecorded)
	BotUpdates.WithLabelValues("message")

	families, err := prometheus.DefaultGatherer.Gather()
	require.NoError(t, err)
	names := make(map[string]bool, len(families))
	for _, fam := range families {
		names[fam.GetName()] = true
	}

	for _, name := range []string{
		"shop_products_ingested_total",
		"shop_batch_line_errors_total",
		"shop_sales_total",
		"shop_bot_updates_total",
	} {
		assert.True(t, names[name], "expected metric %q to be registered", name)
	}
}

func TestSalesTotal_Increments(t *testing.T) {
	before := testutil.ToFloat64(SalesTotal.WithLabelValues(SaleCompensated))
	SalesTotal.WithLabelValues(SaleCompensated).Inc()
	assert.Equal(t, before+1, testutil.ToFloat64(SalesTotal.WithLabelValues(SaleCompensated)))
}
