package notifier

import (
	"context"
	"testing"
	"time"

	"github.com/beyondeth/shop/internal/contextkeys"
	"github.com/beyondeth/shop/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestNotifier(t *testing.T) *SSENotifier {
	t.Helper()
	n := NewSSENotifier(contextkeys.LoggerFromContext(context.Background()))
	t.Cleanup(n.Stop)
	return n
}

func receive(t *testing.T, ch ClientChannel) string {
	t.Helper()
	select {
	case msg := <-ch:
		return string(msg)
	case <-time.After(time.Second):
		t.Fatal("no event received")
		return ""
	}
}

func TestSSENotifier_DeliversToAllTabsOfSession(t *testing.T) {
	n := newTestNotifier(t)
	tab1 := n.AddClient("s1")
	tab2 := n.AddClient("s1")
	other := n.AddClient("s2")

	n.Send(context.Background(), "s1", domain.ClientEvent{Type: domain.ClientEventRefresh})

	want := "event: refresh\ndata: {\"type\":\"refresh\"}\n\n"
	assert.Equal(t, want, receive(t, tab1))
	assert.Equal(t, want, receive(t, tab2))

	select {
	case msg := <-other:
		t.Fatalf("unexpected event for other session: %s", msg)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestSSENotifier_RemoveClient(t *testing.T) {
	n := newTestNotifier(t)
	tab1 := n.AddClient("s1")
	tab2 := n.AddClient("s1")
	require.Equal(t, 2, n.ClientCount("s1"))

	n.RemoveClient("s1", tab1)
	assert.Equal(t, 1, n.ClientCount("s1"))

	n.Send(context.Background(), "s1", domain.ClientEvent{
		Type:         domain.ClientEventToast,
		Notification: &domain.Notification{Variant: domain.NotificationDefault, Description: "Profile updated"},
	})
	assert.Contains(t, receive(t, tab2), `"description":"Profile updated"`)

	n.RemoveClient("s1", tab2)
	assert.Zero(t, n.ClientCount("s1"))
}

func TestFormatEvent(t *testing.T) {
	msg, err := FormatEvent(domain.ClientEvent{
		Type:         domain.ClientEventToast,
		Notification: &domain.Notification{Variant: domain.NotificationDestructive, Description: "Failed"},
	})
	require.NoError(t, err)
	assert.Equal(t, "event: toast\ndata: {\"type\":\"toast\",\"notification\":{\"variant\":\"destructive\",\"description\":\"Failed\"}}\n\n", string(msg))
}

func TestSSENotifier_DoneAfterStop(t *testing.T) {
	n := NewSSENotifier(contextkeys.LoggerFromContext(context.Background()))

	select {
	case <-n.Done():
		t.Fatal("done closed before stop")
	default:
	}

	n.Stop()
	n.Stop()

	select {
	case <-n.Done():
	case <-time.After(time.Second):
		t.Fatal("done not closed after stop")
	}
}
