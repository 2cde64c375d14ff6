package settings

import (
	"sync"
)

// Listener is notified after the settings have been replaced
type Listener func(previous Settings, current Settings)

// Store holds the live settings. Readers always get a deep copy, writers
// validate outside of the lock and swap the result in a single assignment.
type Store struct {
	// serializes writers
	writeMu sync.Mutex

	mu        sync.RWMutex
	current   Settings
	listeners []Listener
}

func NewStore(initial Settings) *Store {
	return &Store{
		current: initial.Clone(),
	}
}

// Get returns a copy of the current settings
func (s *Store) Get() Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current.Clone()
}

// AddListener registers a listener that is called on every successful update
func (s *Store) AddListener(listener Listener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, listener)
}

// Apply validates the given document against the current settings and,
// if valid, replaces them. On error the current settings are left untouched.
func (s *Store) Apply(body []byte) (Settings, error) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	previous := s.Get()
	next, err := Apply(body, previous)
	if err != nil {
		return previous, err
	}

	s.swap(previous, next)
	return next.Clone(), nil
}

// Replace unconditionally replaces the current settings with a sanitized copy of next
func (s *Store) Replace(next Settings) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.swap(s.Get(), Sanitize(next))
}

func (s *Store) swap(previous Settings, next Settings) {
	s.mu.Lock()
	s.current = next.Clone()
	listeners := make([]Listener, len(s.listeners))
	copy(listeners, s.listeners)
	s.mu.Unlock()

	for _, listener := range listeners {
		listener(previous.Clone(), next.Clone())
	}
}
