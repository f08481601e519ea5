package notifier

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/beyondeth/shop/internal/contextkeys"
	"github.com/beyondeth/shop/internal/core/domain"
	"github.com/beyondeth/shop/internal/core/port"
)

// ClientChannel - канал одной открытой вкладки браузера
type ClientChannel chan []byte

type eventWithContext struct {
	ctx       context.Context
	sessionID string
	event     domain.ClientEvent
}

// SSENotifier - реализация NotifierPort поверх Server-Sent Events.
// Ключ - id браузерной сессии, одна сессия может держать несколько вкладок.
type SSENotifier struct {
	clients map[string][]ClientChannel
	mu      sync.RWMutex

	eventChan chan eventWithContext
	done      chan struct{}
	stopOnce  sync.Once

	logger port.LoggerPort
}

var _ port.NotifierPort = (*SSENotifier)(nil)

// NewSSENotifier создает нотификатор и запускает диспетчер
func NewSSENotifier(baseLogger port.LoggerPort) *SSENotifier {
	n := &SSENotifier{
		clients:   make(map[string][]ClientChannel),
		eventChan: make(chan eventWithContext, 100),
		done:      make(chan struct{}),
		logger:    baseLogger.WithFields(port.Fields{"component": "SSENotifier"}),
	}
	go n.dispatcher()
	return n
}

func (n *SSENotifier) dispatcher() {
	n.logger.Debug("Notifier dispatcher started.", nil)
	for {
		var pkg eventWithContext
		select {
		case <-n.done:
			n.logger.Debug("Notifier dispatcher stopped.", nil)
			return
		case pkg = <-n.eventChan:
		}

		eventLogger := contextkeys.LoggerFromContext(pkg.ctx).WithFields(port.Fields{
			"component":  "SSENotifier.dispatcher",
			"event_type": string(pkg.event.Type),
			"session_id": pkg.sessionID,
		})

		message, err := FormatEvent(pkg.event)
		if err != nil {
			eventLogger.Error("Failed to marshal event", err, nil)
			continue
		}

		n.mu.RLock()
		channels := n.clients[pkg.sessionID]
		if len(channels) == 0 {
			eventLogger.Debug("No active clients for session, event dropped.", nil)
		}
		for _, ch := range channels {
			select {
			case ch <- message:
			default:
				eventLogger.Warn("Client channel is full, skipping.", nil)
			}
		}
		n.mu.RUnlock()
	}
}

// FormatEvent собирает SSE-сообщение: "event: <type>\ndata: <json>\n\n".
func FormatEvent(event domain.ClientEvent) ([]byte, error) {
	data, err := json.Marshal(event)
	if err != nil {
		return nil, err
	}
	return []byte(fmt.Sprintf("event: %s\ndata: %s\n\n", event.Type, data)), nil
}

// Send кладет событие во внутреннюю очередь и не блокирует вызывающего.
func (n *SSENotifier) Send(ctx context.Context, sessionID string, event domain.ClientEvent) {
	select {
	case n.eventChan <- eventWithContext{ctx: ctx, sessionID: sessionID, event: event}:
	default:
		contextkeys.LoggerFromContext(ctx).Warn("Notifier queue is full, event dropped", port.Fields{
			"session_id": sessionID,
			"event_type": string(event.Type),
		})
	}
}

// AddClient регистрирует новое SSE-соединение сессии
func (n *SSENotifier) AddClient(sessionID string) ClientChannel {
	n.mu.Lock()
	defer n.mu.Unlock()

	ch := make(ClientChannel, 16)
	n.clients[sessionID] = append(n.clients[sessionID], ch)

	n.logger.Info("Client connected for session", port.Fields{
		"session_id":  sessionID,
		"connections": len(n.clients[sessionID]),
	})
	return ch
}

// RemoveClient удаляет канал при отключении клиента
func (n *SSENotifier) RemoveClient(sessionID string, ch ClientChannel) {
	n.mu.Lock()
	defer n.mu.Unlock()

	channels := n.clients[sessionID]
	kept := channels[:0]
	for _, c := range channels {
		if c != ch {
			kept = append(kept, c)
		}
	}

	if len(kept) == 0 {
		delete(n.clients, sessionID)
		n.logger.Debug("Last client disconnected for session.", port.Fields{"session_id": sessionID})
		return
	}
	n.clients[sessionID] = kept
}

func (n *SSENotifier) ClientCount(sessionID string) int {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return len(n.clients[sessionID])
}

// Stop останавливает диспетчер и закрывает открытые SSE-потоки.
func (n *SSENotifier) Stop() {
	n.stopOnce.Do(func() { close(n.done) })
}

// Done закрывается после Stop. Обработчики потоков выходят по нему, иначе
// http.Server.Shutdown ждет их до таймаута.
func (n *SSENotifier) Done() <-chan struct{} {
	return n.done
}
