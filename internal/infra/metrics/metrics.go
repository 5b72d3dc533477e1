package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Label values for SalesTotal.
const (
	SaleRecorded           = "recorded"
	SaleStockFailed        = "stock_failed"
	SaleCompensated        = "compensated"
	SaleCompensationFailed = "compensation_failed"
)

// Label values for ProductsIngested.
const (
	IngestInserted = "inserted"
	IngestMerged   = "merged"
	IngestFailed   = "failed"
)

var (
	// ProductsIngested counts batch items by outcome.
	ProductsIngested = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "shop_products_ingested_total",
			Help: "Batch items written to the catalog, by outcome",
		},
		[]string{"result"},
	)

	// BatchLineErrors counts lines rejected by the batch parser.
	BatchLineErrors = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "shop_batch_line_errors_total",
			Help: "Batch lines rejected during parsing",
		},
	)

	// SalesTotal counts sale attempts that reached the database, by outcome.
	SalesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "shop_sales_total",
			Help: "Sale attempts by outcome (recorded, stock_failed, compensated, compensation_failed)",
		},
		[]string{"result"},
	)

	// BotUpdates counts handled Telegram updates.
	BotUpdates = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "shop_bot_updates_total",
			Help: "Telegram updates handled, by kind",
		},
		[]string{"kind"},
	)
)
