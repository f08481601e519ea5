package constants

// Размеры страниц фиксированы в месте вызова
const (
	CatalogPageSize      = 8
	OrderHistoryPageSize = 2
	ReviewsPageSize      = 5
	RelatedProductsLimit = 4
)
