package port

import (
	"context"

	"github.com/beyondeth/shop/internal/core/domain"
)

// NotifierPort доставляет браузеру отложенные события (обновление страницы, toast),
// которые нельзя вернуть в ответе на исходный запрос.
type NotifierPort interface {
	Send(ctx context.Context, sessionID string, event domain.ClientEvent)
}
