package domain

// Image - медиа-файл, отданный платформой.
type Image struct {
	URL     string
	Width   int
	Height  int
	AltText string
}

// Product - карточка товара. Витрина никогда не меняет ее содержимое,
// только читает и передает дальше в представление.
type Product struct {
	ID             string
	Slug           string
	Name           string
	Description    string
	Price          float64
	Currency       string
	FormattedPrice string
	Ribbon         string
	InStock        bool
	MainImage      *Image
	CollectionIDs  []string
}

// Collection - категория каталога.
type Collection struct {
	ID          string
	Slug        string
	Name        string
	Description string
	Banner      *Image
}

// ProductFilter - ключи фильтрации для запроса списка товаров.
type ProductFilter struct {
	CollectionIDs []string
	Query         string
	Sort          string
}

// ProductList - сырой ответ платформы на запрос со смещением.
// TotalCount == nil, если платформа не сообщила общее количество.
type ProductList struct {
	Items      []Product
	TotalCount *int
}
