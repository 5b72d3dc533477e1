package sales

import (
	"time"

	"github.com/florzoye/shop/internal/domain/catalog"
)

// Sale is one ledger row. Price is the total received for Quantity units.
type Sale struct {
	ID        int64
	ProductID int64
	AdminID   int64
	Quantity  int
	Price     float64
	SaleDate  time.Time

	// empty when the product or brand was deleted later
	Flavor        string
	BrandName     string
	Category      catalog.Category
	AdminUsername string
}

type Totals struct {
	Count    int
	Quantity int
	Revenue  float64
}

func Summarize(list []Sale) Totals {
	t := Totals{Count: len(list)}
	for _, s := range list {
		t.Quantity += s.Quantity
		t.Revenue += s.Price
	}
	return t
}
