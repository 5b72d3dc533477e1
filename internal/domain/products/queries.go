package products

var selectColumns = []string{
	"p.id", "p.brand_id", "p.flavor", "p.quantity", "p.price", "p.created_at",
	"b.name", "b.category",
}

const (
	queryUpsertOverwrite = `
		INSERT INTO products (brand_id, flavor, quantity, price)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (brand_id, flavor) DO UPDATE SET
			quantity = products.quantity + EXCLUDED.quantity,
			price    = EXCLUDED.price
		RETURNING id, quantity, (xmax = 0) AS inserted
	`

	queryUpsertKeepPrice = `
		INSERT INTO products (brand_id, flavor, quantity, price)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (brand_id, flavor) DO UPDATE SET
			quantity = products.quantity + EXCLUDED.quantity
		RETURNING id, quantity, (xmax = 0) AS inserted
	`

	queryGetByID = `
		SELECT p.id, p.brand_id, p.flavor, p.quantity, p.price, p.created_at,
		       b.name, b.category
		FROM products p
		JOIN brands b ON b.id = p.brand_id
		WHERE p.id = $1
	`

	queryUpdateQuantity = `UPDATE products SET quantity = $2 WHERE id = $1`

	queryDelete = `DELETE FROM products WHERE id = $1`
)
