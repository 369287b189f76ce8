package adapter

// SortOrder is the direction of a listing sort.
type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// Pagination defines 1-based pagination and sort options.
type Pagination struct {
	Page      int
	Limit     int
	SortBy    string // Column name, already validated by the use case
	SortOrder SortOrder
}

// Offset returns the number of rows to skip.
func (p Pagination) Offset() int {
	return (p.Page - 1) * p.Limit
}

// TotalPages returns the page count for total rows, never less than 1.
func (p Pagination) TotalPages(total int64) int {
	if p.Limit <= 0 {
		return 1
	}
	pages := int((total + int64(p.Limit) - 1) / int64(p.Limit))
	if pages == 0 {
		return 1
	}
	return pages
}
