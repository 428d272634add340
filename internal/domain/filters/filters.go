package filters

// Filters carries page-number pagination decoded from the query string.
type Filters struct {
	Page     int `schema:"page" validate:"omitempty,gt=0" errorMsg:"Page number must be greater than zero"`
	PageSize int `schema:"page_size" validate:"omitempty,gt=0,lte=100"`
}

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

func (f *Filters) Limit() int {
	if f.PageSize == 0 {
		return DefaultPageSize
	}
	return f.PageSize
}

func (f *Filters) Offset() int {
	page := f.Page
	if page == 0 {
		page = 1
	}
	return (page - 1) * f.Limit()
}

// TitleFilters are the combinable title list filters. Zero values impose
// no constraint.
type TitleFilters struct {
	Name     string `schema:"name"`
	Year     int32  `schema:"year"`
	Genre    string `schema:"genre"`    // substring match on genre slug
	Category string `schema:"category"` // substring match on category slug
	Filters
}

type Metadata struct {
	CurrentPage  int `json:"current_page,omitempty"`
	PageSize     int `json:"page_size,omitempty"`
	FirstPage    int `json:"first_page,omitempty"`
	LastPage     int `json:"last_page,omitempty"`
	TotalRecords int `json:"total_records"`
}

func (f *Filters) Metadata(totalRecords int) Metadata {
	if totalRecords == 0 {
		return Metadata{}
	}
	page := f.Page
	if page == 0 {
		page = 1
	}
	pageSize := f.Limit()
	return Metadata{
		CurrentPage:  page,
		PageSize:     pageSize,
		FirstPage:    1,
		LastPage:     (totalRecords + pageSize - 1) / pageSize,
		TotalRecords: totalRecords,
	}
}
