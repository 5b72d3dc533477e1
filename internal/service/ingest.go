package service

import (
	"context"
	"io"

	"github.com/florzoye/shop/internal/domain/products"
	"github.com/florzoye/shop/internal/infra/metrics"
	"github.com/florzoye/shop/internal/ingest"
)

// IngestReport is the outcome of one batch.
type IngestReport struct {
	Items         int
	BrandFailures int
	Result        products.BatchResult
}

func (r IngestReport) Added() int { return r.Result.Succeeded }

func (s *Shop) BatchHelp() string { return s.parser.Help() }

// ParseBatch runs the configured parser over the admin's message.
func (s *Shop) ParseBatch(text string) ([]ingest.Item, []string) {
	items, errs := s.parser.Parse(text)
	metrics.BatchLineErrors.Add(float64(len(errs)))
	return items, errs
}

// ParseWorkbook parses an uploaded xlsx batch.
func (s *Shop) ParseWorkbook(r io.Reader) ([]ingest.Item, []string, error) {
	items, errs, err := s.parser.ParseWorkbook(r)
	if err != nil {
		return nil, nil, err
	}
	metrics.BatchLineErrors.Add(float64(len(errs)))
	return items, errs, nil
}

// Ingest resolves the brand of every item, then upserts the products.
// An item whose brand cannot be resolved is skipped.
func (s *Shop) Ingest(ctx context.Context, adminID int64, items []ingest.Item) IngestReport {
	rep := IngestReport{Items: len(items)}

	batch := make([]products.Product, 0, len(items))
	for _, it := range items {
		b, created, err := s.brands.AddOrGet(ctx, it.Brand, it.Category)
		if err != nil || b == nil {
			s.log.Error("resolve brand failed", "admin_id", adminID, "brand", it.Brand, "category", it.Category, "err", err)
			rep.BrandFailures++
			metrics.ProductsIngested.WithLabelValues(metrics.IngestFailed).Inc()
			continue
		}
		if !created {
			s.log.Debug("brand already exists", "brand_id", b.ID, "brand", b.Name)
		}
		batch = append(batch, products.Product{
			BrandID:   b.ID,
			Flavor:    it.Flavor,
			Quantity:  it.Quantity,
			Price:     it.Price,
			BrandName: b.Name,
			Category:  b.Category,
		})
	}

	if len(batch) == 0 {
		s.log.Warn("batch has nothing to add", "admin_id", adminID, "items", len(items))
		return rep
	}

	rep.Result = s.products.AddBatch(ctx, batch)
	metrics.ProductsIngested.WithLabelValues(metrics.IngestInserted).Add(float64(rep.Result.Inserted))
	metrics.ProductsIngested.WithLabelValues(metrics.IngestMerged).Add(float64(rep.Result.Merged))
	metrics.ProductsIngested.WithLabelValues(metrics.IngestFailed).Add(float64(rep.Result.Failed))

	s.log.Info("batch ingested",
		"admin_id", adminID,
		"items", rep.Items,
		"inserted", rep.Result.Inserted,
		"merged", rep.Result.Merged,
		"failed", rep.Result.Failed+rep.BrandFailures,
	)
	return rep
}
