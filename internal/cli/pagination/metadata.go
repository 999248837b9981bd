package pagination

// Meta describes the page returned in JSON output.
type Meta struct {
	CurrentPage int  `json:"current_page"`
	PageSize    int  `json:"page_size"`
	TotalPages  int  `json:"total_pages"`
	TotalItems  int  `json:"total_items"`
	HasPrevious bool `json:"has_previous"`
	HasNext     bool `json:"has_next"`
}

// NewMeta builds page metadata for a result set of total items.
func NewMeta(p Params, total int) Meta {
	pageSize := total
	currentPage := 1
	if p.Enabled() {
		pageSize = p.EffectivePageSize()
		currentPage = p.Page
	}
	totalPages := p.TotalPages(total)

	return Meta{
		CurrentPage: currentPage,
		PageSize:    pageSize,
		TotalPages:  totalPages,
		TotalItems:  total,
		HasPrevious: currentPage > 1,
		HasNext:     currentPage < totalPages,
	}
}
