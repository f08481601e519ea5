package platform_client

import (
	"errors"
	"fmt"
	"net/http"
)

// APIError - ответ платформы с кодом не из 2xx (кроме 404).
type APIError struct {
	Operation  string
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("platform %s returned status %d: %s", e.Operation, e.StatusCode, e.Body)
}

// IsUnauthorized - платформа не признала токен участника.
func IsUnauthorized(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == http.StatusUnauthorized || apiErr.StatusCode == http.StatusForbidden
	}
	return false
}
