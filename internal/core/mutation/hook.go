// Package mutation - состояние одной удаленной записи (оформление заказа,
// изменение профиля, отзыв): idle -> pending -> succeeded | failed.
package mutation

import (
	"context"
	"sync"
	"time"

	"github.com/beyondeth/shop/internal/contextkeys"
	"github.com/beyondeth/shop/internal/core/domain"
	"github.com/beyondeth/shop/internal/core/port"
)

type State int

const (
	Idle State = iota
	Pending
	Succeeded
	Failed
)

func (s State) String() string {
	switch s {
	case Pending:
		return "pending"
	case Succeeded:
		return "succeeded"
	case Failed:
		return "failed"
	default:
		return "idle"
	}
}

// Observer получает итог каждой завершенной мутации (журнал, метрики).
type Observer interface {
	MutationSettled(ctx context.Context, record domain.MutationRecord)
}

// Config - поведение конкретного хука.
type Config struct {
	Name      string
	SessionID string

	// FailureMessage - статический текст destructive-уведомления.
	FailureMessage string
	SuccessMessage string

	// KeepPendingOnSuccess: после успеха pending не сбрасывается,
	// потому что дальше будет переход на другую страницу (checkout).
	KeepPendingOnSuccess bool

	// RefreshAfter > 0: после успеха через эту задержку отправляется
	// событие обновления страницы. До этого момента хук остается pending.
	RefreshAfter time.Duration

	Notifier  port.NotifierPort
	Observers []Observer

	// AfterFunc и Now подменяются в тестах.
	AfterFunc func(d time.Duration, f func()) Timer
	Now       func() time.Time
}

// Timer - то, что возвращает AfterFunc; нужен только для остановки.
type Timer interface {
	Stop() bool
}

// Outcome - результат одного вызова, который рендерит вызывающая сторона.
type Outcome[Out any] struct {
	Value        Out
	State        State
	Notification *domain.Notification
	RefreshAfter time.Duration
}

// Hook оборачивает один удаленный вызов записи.
type Hook[In, Out any] struct {
	cfg    Config
	action func(ctx context.Context, in In) (Out, error)

	mu           sync.Mutex
	state        State
	refreshTimer Timer
}

func New[In, Out any](cfg Config, action func(ctx context.Context, in In) (Out, error)) *Hook[In, Out] {
	if cfg.AfterFunc == nil {
		cfg.AfterFunc = func(d time.Duration, f func()) Timer { return time.AfterFunc(d, f) }
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &Hook[In, Out]{cfg: cfg, action: action}
}

func (h *Hook[In, Out]) State() State {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.state
}

func (h *Hook[In, Out]) Pending() bool {
	return h.State() == Pending
}

// Run выполняет мутацию. Повторный вызов, пока хук pending, отклоняется
// с domain.ErrMutationPending и до платформы не доходит.
func (h *Hook[In, Out]) Run(ctx context.Context, in In) (Outcome[Out], error) {
	h.mu.Lock()
	if h.state == Pending {
		h.mu.Unlock()
		return Outcome[Out]{State: Pending}, domain.ErrMutationPending
	}
	h.state = Pending
	h.mu.Unlock()

	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component": "mutation",
		"mutation":  h.cfg.Name,
	})

	startedAt := h.cfg.Now()
	value, err := h.action(ctx, in)
	h.settled(ctx, startedAt, err)

	if err != nil {
		h.mu.Lock()
		h.state = Failed
		h.mu.Unlock()

		logger.Error("Mutation failed", err, nil)
		return Outcome[Out]{
			State: Failed,
			Notification: &domain.Notification{
				Variant:     domain.NotificationDestructive,
				Description: h.cfg.FailureMessage,
			},
		}, err
	}

	outcome := Outcome[Out]{Value: value, State: Succeeded}
	if h.cfg.SuccessMessage != "" {
		outcome.Notification = &domain.Notification{
			Variant:     domain.NotificationDefault,
			Description: h.cfg.SuccessMessage,
		}
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	switch {
	case h.cfg.KeepPendingOnSuccess:
		// состояние намеренно остается Pending: компонент уничтожит навигация
		outcome.State = Pending
	case h.cfg.RefreshAfter > 0:
		outcome.State = Pending
		outcome.RefreshAfter = h.cfg.RefreshAfter
		h.scheduleRefreshLocked(context.WithoutCancel(ctx), logger)
	default:
		h.state = Succeeded
	}

	logger.Info("Mutation succeeded", port.Fields{"state": outcome.State.String()})
	return outcome, nil
}

func (h *Hook[In, Out]) scheduleRefreshLocked(ctx context.Context, logger port.LoggerPort) {
	h.refreshTimer = h.cfg.AfterFunc(h.cfg.RefreshAfter, func() {
		if h.cfg.Notifier != nil {
			h.cfg.Notifier.Send(ctx, h.cfg.SessionID, domain.ClientEvent{Type: domain.ClientEventRefresh})
		}
		logger.Debug("Refresh sent after successful mutation", nil)

		h.mu.Lock()
		h.state = Idle
		h.refreshTimer = nil
		h.mu.Unlock()
	})
}

func (h *Hook[In, Out]) settled(ctx context.Context, startedAt time.Time, err error) {
	record := domain.MutationRecord{
		Mutation:   h.cfg.Name,
		SessionID:  h.cfg.SessionID,
		Succeeded:  err == nil,
		StartedAt:  startedAt,
		DurationMs: h.cfg.Now().Sub(startedAt).Milliseconds(),
	}
	if err != nil {
		record.ErrorText = err.Error()
	}
	for _, o := range h.cfg.Observers {
		o.MutationSettled(ctx, record)
	}
}

// Reset - компонент, владеющий хуком, уничтожен (навигация).
// Отложенное обновление отменяется, состояние возвращается в Idle.
func (h *Hook[In, Out]) Reset() {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.refreshTimer != nil {
		h.refreshTimer.Stop()
		h.refreshTimer = nil
	}
	h.state = Idle
}
