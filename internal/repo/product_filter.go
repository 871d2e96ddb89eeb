package repo

// CategoryAll is the sentinel the UI sends when no category filter is applied.
const CategoryAll = "All"

const (
	DefaultPage     = 1
	DefaultPageSize = 10
)

// sortColumns whitelists the sortable fields and maps them to order-by
// expressions. Anything outside the whitelist falls back to id, so raw
// caller input is never interpolated into a query. Name sorts
// case-insensitively in both repository implementations.
var sortColumns = map[string]string{
	"id":         "id",
	"name":       "LOWER(name)",
	"category":   "category",
	"brand":      "brand",
	"stock":      "stock",
	"created_at": "created_at",
	"updated_at": "updated_at",
}

// ProductFilter carries the catalog query parameters: case-insensitive
// substring search on name, exact category match, whitelisted sort field,
// order and 1-based pagination.
type ProductFilter struct {
	Search   string
	Category string
	Sort     string
	Order    string
	Page     int
	PageSize int
}

// Normalize coerces the filter into its safe canonical form. Out-of-whitelist
// sort fields become "id", unknown orders become "asc", and non-positive
// page/pageSize are clamped to the defaults.
func (pf ProductFilter) Normalize() ProductFilter {
	if _, ok := sortColumns[pf.Sort]; !ok {
		pf.Sort = "id"
	}
	if pf.Order != "desc" {
		pf.Order = "asc"
	}
	if pf.Page < 1 {
		pf.Page = DefaultPage
	}
	if pf.PageSize < 1 {
		pf.PageSize = DefaultPageSize
	}
	if pf.Category == CategoryAll {
		pf.Category = ""
	}
	return pf
}

// SortColumn returns the whitelisted order-by expression for a normalized filter.
func (pf ProductFilter) SortColumn() string {
	if col, ok := sortColumns[pf.Sort]; ok {
		return col
	}
	return "id"
}

// Offset returns the row offset of the requested page for a normalized filter.
func (pf ProductFilter) Offset() int {
	return (pf.Page - 1) * pf.PageSize
}
