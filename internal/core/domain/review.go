package domain

import "time"

type Review struct {
	ID         string
	ProductID  string
	ContactID  string
	AuthorName string
	Title      string
	Body       string
	Rating     int
	CreatedAt  time.Time
}

// ReviewFilter - фильтр запроса отзывов. ContactID может быть пустым.
type ReviewFilter struct {
	ProductID string
	ContactID string
}

type NewReview struct {
	ProductID string
	Title     string
	Body      string
	Rating    int
}
