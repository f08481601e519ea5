package domain

import "time"

type LineItem struct {
	ProductID      string
	Name           string
	Quantity       int
	FormattedPrice string
	Image          *Image
}

// Order - заказ, созданный платформой после оформления.
type Order struct {
	ID             string
	Number         string
	Status         string
	FormattedTotal string
	CreatedAt      *time.Time
	LineItems      []LineItem
	BuyerEmail     string
}

// CreatedWithin сообщает, создан ли заказ строго позже, чем now-window.
// Заказ без даты создания считается старым.
func (o *Order) CreatedWithin(now time.Time, window time.Duration) bool {
	if o == nil || o.CreatedAt == nil {
		return false
	}
	return o.CreatedAt.After(now.Add(-window))
}
