package pagination

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

// Options carries the requested page and page size. Zero values mean
// "use the default"; Normalize clamps both into their valid ranges.
type Options struct {
	Page  int `form:"page" json:"page"`
	Limit int `form:"limit" json:"limit"`
}

// Meta describes the position of a page within the full result set.
type Meta struct {
	TotalItems  int  `json:"totalItems"`
	TotalPages  int  `json:"totalPages"`
	CurrentPage int  `json:"currentPage"`
	PageSize    int  `json:"pageSize"`
	HasNextPage bool `json:"hasNextPage"`
	HasPrevPage bool `json:"hasPrevPage"`
}

// Normalize returns a copy with page >= 1 and 1 <= limit <= MaxLimit,
// applying defaults for zero values.
func (o Options) Normalize() Options {
	if o.Page < 1 {
		o.Page = DefaultPage
	}
	if o.Limit < 1 {
		o.Limit = DefaultLimit
	}
	if o.Limit > MaxLimit {
		o.Limit = MaxLimit
	}
	return o
}

// Offset returns the number of rows preceding the requested page.
func (o Options) Offset() int {
	n := o.Normalize()
	return (n.Page - 1) * n.Limit
}

// Requested reports whether the caller asked for pagination at all.
func (o Options) Requested() bool {
	return o.Page > 0 || o.Limit > 0
}

// NewMeta computes page metadata for a total item count.
func NewMeta(totalItems int, o Options) Meta {
	n := o.Normalize()
	totalPages := (totalItems + n.Limit - 1) / n.Limit
	return Meta{
		TotalItems:  totalItems,
		TotalPages:  totalPages,
		CurrentPage: n.Page,
		PageSize:    n.Limit,
		HasNextPage: n.Page < totalPages,
		HasPrevPage: n.Page > 1,
	}
}
