package brands

import (
	"time"

	"github.com/florzoye/shop/internal/domain/catalog"
)

type Brand struct {
	ID        int64
	Name      string
	Category  catalog.Category
	CreatedAt time.Time
}
