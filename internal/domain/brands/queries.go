package brands

const columns = `id, name, category, created_at`

const (
	queryGetByNameCategory = `
		SELECT ` + columns + `
		FROM brands
		WHERE name = $1 AND category = $2
	`

	queryInsert = `
		INSERT INTO brands (name, category)
		VALUES ($1, $2)
		ON CONFLICT (name, category) DO NOTHING
		RETURNING ` + columns

	queryGetByID = `
		SELECT ` + columns + `
		FROM brands
		WHERE id = $1
	`

	queryListByCategory = `
		SELECT ` + columns + `
		FROM brands
		WHERE category = $1
		ORDER BY name
	`

	queryListAll = `
		SELECT ` + columns + `
		FROM brands
		ORDER BY category, name
	`
)
