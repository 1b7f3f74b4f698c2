// Package session keeps per-visitor working state (the itinerary being
// edited, search results, payment links) in memory, keyed by session ID.
package session

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

// HeaderName carries the session ID on requests and responses.
const HeaderName = "X-Session-ID"

// DefaultTTL is how long an idle session is kept.
const DefaultTTL = 12 * time.Hour

// Store maps session IDs to State. Every read extends the session's lifetime.
type Store struct {
	items *cache.Cache
	ttl   time.Duration
}

// NewStore creates a Store. A zero ttl means DefaultTTL.
func NewStore(ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Store{
		items: cache.New(ttl, ttl/4),
		ttl:   ttl,
	}
}

// Get returns the state for id, if the session is alive.
func (s *Store) Get(id string) (*State, bool) {
	v, ok := s.items.Get(id)
	if !ok {
		return nil, false
	}
	st := v.(*State)
	s.items.Set(id, st, s.ttl)
	return st, true
}

// Resolve returns the session for id, creating it when missing. IDs that are
// not UUIDs are replaced by a fresh one, so the returned ID may differ.
func (s *Store) Resolve(id string) (string, *State) {
	if _, err := uuid.Parse(id); err != nil {
		id = uuid.New().String()
	}
	if st, ok := s.Get(id); ok {
		return id, st
	}

	st := newState()
	if err := s.items.Add(id, st, s.ttl); err != nil {
		// Created concurrently by another request.
		if existing, ok := s.Get(id); ok {
			return id, existing
		}
		s.items.Set(id, st, s.ttl)
	}
	return id, st
}

// Len returns the number of live sessions.
func (s *Store) Len() int {
	return s.items.ItemCount()
}

type contextKey struct{}

type issuedKey struct{}

type entry struct {
	id    string
	state *State
}

// NewContext returns a context carrying the session.
func NewContext(ctx context.Context, id string, st *State) context.Context {
	return context.WithValue(ctx, contextKey{}, entry{id: id, state: st})
}

// FromContext returns the session carried by ctx.
func FromContext(ctx context.Context) (string, *State, bool) {
	e, ok := ctx.Value(contextKey{}).(entry)
	if !ok {
		return "", nil, false
	}
	return e.id, e.state, true
}

// MarkIssued records on ctx that the session was started by this request
// rather than presented by the caller.
func MarkIssued(ctx context.Context) context.Context {
	return context.WithValue(ctx, issuedKey{}, true)
}

// Issued reports whether the session in ctx was started by this request.
func Issued(ctx context.Context) bool {
	issued, _ := ctx.Value(issuedKey{}).(bool)
	return issued
}
