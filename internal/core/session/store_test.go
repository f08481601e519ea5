package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type fakeComponent struct {
	resets int
}

func (c *fakeComponent) Reset() { c.resets++ }

type fakeFeed struct{ id int }

func TestComponentFor_ReusesWithinSession(t *testing.T) {
	store := NewStore()
	st := store.Get("s1")

	built := 0
	build := func() *fakeComponent {
		built++
		return &fakeComponent{}
	}

	a := ComponentFor(st, "checkout", build)
	b := ComponentFor(store.Get("s1"), "checkout", build)
	assert.Same(t, a, b)
	assert.Equal(t, 1, built)

	c := ComponentFor(store.Get("s2"), "checkout", build)
	assert.NotSame(t, a, c)
}

func TestTeardown_ResetsComponentsAndFeeds(t *testing.T) {
	store := NewStore()
	st := store.Get("s1")

	comp := ComponentFor(st, "update_member", func() *fakeComponent { return &fakeComponent{} })
	feed := FeedFor(st, "orders", func() *fakeFeed { return &fakeFeed{id: 1} })

	store.Teardown("s1")
	assert.Equal(t, 1, comp.resets)

	fresh := ComponentFor(st, "update_member", func() *fakeComponent { return &fakeComponent{} })
	assert.NotSame(t, comp, fresh)

	newFeed := FeedFor(st, "orders", func() *fakeFeed { return &fakeFeed{id: 2} })
	assert.NotSame(t, feed, newFeed)
	assert.Equal(t, 2, newFeed.id)

	store.Teardown("unknown")
}

func TestSweep_RemovesIdleSessions(t *testing.T) {
	store := NewStore()
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }

	old := store.Get("old")
	comp := ComponentFor(old, "checkout", func() *fakeComponent { return &fakeComponent{} })

	now = now.Add(20 * time.Minute)
	store.Get("fresh")

	removed := store.Sweep(10 * time.Minute)
	assert.Equal(t, 1, removed)
	assert.Equal(t, 1, store.Len())
	assert.Equal(t, 1, comp.resets)
}
