package query

// MaxPerPage is the safety cap on page size.
const MaxPerPage = 100

// MinPerPage is the floor applied to caller-supplied page sizes.
const MinPerPage = 10

// Page holds clamped pagination values for one result page.
type Page struct {
	Page    int  `json:"page"`
	PerPage int  `json:"per_page"`
	Total   int  `json:"total"`
	Pages   int  `json:"pages"`
	Offset  int  `json:"-"`
	HasPrev bool `json:"has_prev"`
	HasNext bool `json:"has_next"`
}

// Paginate clamps the requested page/perPage against total rows. maxPerPage
// ≤ 0 means MaxPerPage. Guarantees pages ≥ 1 and offset = (page-1)*perPage;
// an offset at or past total simply yields an empty page downstream.
func Paginate(page, perPage, total, maxPerPage int) Page {
	if maxPerPage <= 0 {
		maxPerPage = MaxPerPage
	}
	if perPage < MinPerPage {
		perPage = MinPerPage
	}
	if perPage > maxPerPage {
		perPage = maxPerPage
	}
	if page < 1 {
		page = 1
	}
	if total < 0 {
		total = 0
	}
	pages := 1
	if total > 0 {
		pages = (total + perPage - 1) / perPage
	}
	return Page{
		Page:    page,
		PerPage: perPage,
		Total:   total,
		Pages:   pages,
		Offset:  (page - 1) * perPage,
		HasPrev: page > 1,
		HasNext: page < pages,
	}
}
