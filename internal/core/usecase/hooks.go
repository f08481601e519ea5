package usecase

import (
	"context"
	"time"

	"github.com/beyondeth/shop/internal/core/mutation"
	"github.com/beyondeth/shop/internal/core/port"
	"github.com/beyondeth/shop/internal/core/session"
)

// MutationDeps - общее окружение хуков мутаций.
type MutationDeps struct {
	Sessions  *session.Store
	Notifier  port.NotifierPort
	Observers []mutation.Observer
	Events    port.EventPublisherPort
	Now       func() time.Time
	// AfterFunc подменяется в тестах отложенного обновления.
	AfterFunc func(d time.Duration, f func()) mutation.Timer
}

func (d MutationDeps) now() time.Time {
	if d.Now != nil {
		return d.Now()
	}
	return time.Now()
}

// hookFor возвращает хук сессии, создавая его при первом обращении.
// Хук уничтожается при следующем рендере страницы этой сессии.
func hookFor[In, Out any](d MutationDeps, sessionID string, cfg mutation.Config, action func(ctx context.Context, in In) (Out, error)) *mutation.Hook[In, Out] {
	st := d.Sessions.Get(sessionID)
	return session.ComponentFor(st, cfg.Name, func() *mutation.Hook[In, Out] {
		cfg.SessionID = sessionID
		cfg.Notifier = d.Notifier
		cfg.Observers = d.Observers
		if d.Now != nil {
			cfg.Now = d.Now
		}
		if d.AfterFunc != nil {
			cfg.AfterFunc = d.AfterFunc
		}
		return mutation.New(cfg, action)
	})
}
