package domain

// Member - залогиненный участник магазина.
type Member struct {
	ID         string
	ContactID  string
	LoginEmail string
	FirstName  string
	LastName   string
	Nickname   string
}

// MemberUpdate - изменяемые поля профиля.
type MemberUpdate struct {
	FirstName string
	LastName  string
}
