package usecase

import (
	"fmt"
	"strings"

	"github.com/beyondeth/shop/internal/core/domain"
	"golang.org/x/text/unicode/norm"
)

// NormalizeSlug приводит уже декодированный slug к NFC, чтобы "café"
// в разных нормальных формах Unicode давал один и тот же адрес.
func NormalizeSlug(raw string) (string, error) {
	slug := strings.TrimSpace(norm.NFC.String(raw))
	if slug == "" {
		return "", fmt.Errorf("empty slug: %w", domain.ErrNotFound)
	}
	return slug, nil
}
