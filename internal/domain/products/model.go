package products

import (
	"time"

	"github.com/florzoye/shop/internal/domain/catalog"
)

type Product struct {
	ID        int64
	BrandID   int64
	Flavor    string
	Quantity  int
	Price     float64
	CreatedAt time.Time

	// filled by reads joined with brands
	BrandName string
	Category  catalog.Category
}

func (p Product) InStock() bool { return p.Quantity > 0 }

// MergePolicy decides what happens to the stored price when a batch adds
// stock to an existing product.
type MergePolicy string

const (
	PriceOverwrite MergePolicy = "overwrite"
	PriceKeep      MergePolicy = "keep"
)

// MergeResult describes one upsert.
type MergeResult struct {
	ID       int64
	Quantity int
	Inserted bool
}

type ItemResult struct {
	Product Product
	Merged  bool
	Err     error
}

// BatchResult summarises AddBatch. Succeeded counts inserted and merged items.
type BatchResult struct {
	Succeeded int
	Inserted  int
	Merged    int
	Failed    int
	Items     []ItemResult
}
