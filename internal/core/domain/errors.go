package domain

import "errors"

var (
	// ErrNotFound - обязательная сущность отсутствует или номер страницы вне диапазона.
	// На границе страницы превращается в стандартный ответ "не найдено".
	ErrNotFound = errors.New("resource not found")

	// ErrMutationPending - повторный вызов мутации, пока предыдущий еще выполняется.
	ErrMutationPending = errors.New("mutation is already pending")

	ErrUnauthenticated = errors.New("member is not logged in")
	ErrInvalidInput    = errors.New("invalid input")
)
