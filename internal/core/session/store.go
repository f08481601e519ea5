// Package session хранит состояние одной браузерной сессии: хуки мутаций
// и накопленные курсорные ленты. Это серверный аналог дерева компонентов
// и клиентского кэша запросов.
package session

import (
	"sync"
	"time"
)

// Component - то, что уничтожается вместе со страницей (хук мутации).
type Component interface {
	Reset()
}

// State - состояние одной сессии.
type State struct {
	ID string

	mu         sync.Mutex
	components map[string]Component
	feeds      map[string]any
	lastSeen   time.Time
}

func newState(id string, now time.Time) *State {
	return &State{
		ID:         id,
		components: make(map[string]Component),
		feeds:      make(map[string]any),
		lastSeen:   now,
	}
}

// Store - все живые сессии процесса.
type Store struct {
	mu       sync.Mutex
	sessions map[string]*State
	now      func() time.Time
}

func NewStore() *Store {
	return &Store{
		sessions: make(map[string]*State),
		now:      time.Now,
	}
}

// Get возвращает (создавая при необходимости) состояние сессии и отмечает активность.
func (s *Store) Get(id string) *State {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	st, ok := s.sessions[id]
	if !ok {
		st = newState(id, now)
		s.sessions[id] = st
	}
	st.mu.Lock()
	st.lastSeen = now
	st.mu.Unlock()
	return st
}

// Teardown вызывается при рендере новой страницы сессии: прежнее дерево
// компонентов уничтожено, хуки сбрасываются, ленты начинаются заново.
func (s *Store) Teardown(id string) {
	s.mu.Lock()
	st, ok := s.sessions[id]
	s.mu.Unlock()
	if !ok {
		return
	}

	st.mu.Lock()
	components := st.components
	st.components = make(map[string]Component)
	st.feeds = make(map[string]any)
	st.mu.Unlock()

	for _, c := range components {
		c.Reset()
	}
}

// Sweep удаляет сессии, неактивные дольше ttl. Возвращает число удаленных.
func (s *Store) Sweep(ttl time.Duration) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := s.now().Add(-ttl)
	removed := 0
	for id, st := range s.sessions {
		st.mu.Lock()
		idle := st.lastSeen.Before(cutoff)
		components := st.components
		st.mu.Unlock()
		if !idle {
			continue
		}
		for _, c := range components {
			c.Reset()
		}
		delete(s.sessions, id)
		removed++
	}
	return removed
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// ComponentFor возвращает компонент сессии по имени, создавая его через build.
func ComponentFor[C Component](st *State, name string, build func() C) C {
	st.mu.Lock()
	defer st.mu.Unlock()

	if existing, ok := st.components[name].(C); ok {
		return existing
	}
	c := build()
	st.components[name] = c
	return c
}

// FeedFor возвращает именованную ленту сессии, создавая ее через build.
func FeedFor[F any](st *State, name string, build func() F) F {
	st.mu.Lock()
	defer st.mu.Unlock()

	if existing, ok := st.feeds[name].(F); ok {
		return existing
	}
	f := build()
	st.feeds[name] = f
	return f
}
