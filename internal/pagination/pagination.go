package pagination

// DefaultPerPage is the catalog page size.
const DefaultPerPage = 10

// Params holds the requested page after clamping.
type Params struct {
	Page    int
	PerPage int
	Offset  int
}

// TotalPages is never less than one, so an empty list still renders as 1/1.
func TotalPages(total, perPage int) int {
	if perPage <= 0 {
		perPage = DefaultPerPage
	}
	pages := total / perPage
	if total%perPage > 0 {
		pages++
	}
	if pages < 1 {
		pages = 1
	}
	return pages
}

// Clamp moves page into [1, TotalPages] and computes the offset.
func Clamp(page, perPage, total int) Params {
	if perPage <= 0 {
		perPage = DefaultPerPage
	}
	pages := TotalPages(total, perPage)
	if page < 1 {
		page = 1
	}
	if page > pages {
		page = pages
	}
	return Params{Page: page, PerPage: perPage, Offset: (page - 1) * perPage}
}

// Result wraps one page of data.
type Result[T any] struct {
	Data       []T
	TotalCount int
	Page       int
	PerPage    int
	TotalPages int
	HasNext    bool
	HasPrev    bool
}

func NewResult[T any](data []T, totalCount int, params Params) Result[T] {
	totalPages := TotalPages(totalCount, params.PerPage)
	return Result[T]{
		Data:       data,
		TotalCount: totalCount,
		Page:       params.Page,
		PerPage:    params.PerPage,
		TotalPages: totalPages,
		HasNext:    params.Page < totalPages,
		HasPrev:    params.Page > 1,
	}
}
