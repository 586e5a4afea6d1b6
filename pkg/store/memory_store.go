package store

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// MemoryStateStore is an in-process fallback used in tests and when
// Redis is not configured. State does not survive restarts and is not
// shared across instances.
type MemoryStateStore struct {
	cache *gocache.Cache
}

func NewMemoryStateStore() *MemoryStateStore {
	return &MemoryStateStore{
		cache: gocache.New(stateTTL, 10*time.Minute),
	}
}

func (s *MemoryStateStore) Get(ctx context.Context, conversationID string) (ConversationState, error) {
	if v, ok := s.cache.Get(stateKey(conversationID)); ok {
		if state, ok := v.(ConversationState); ok {
			return state, nil
		}
	}
	return ConversationState{}, nil
}

func (s *MemoryStateStore) Set(ctx context.Context, conversationID string, state ConversationState) error {
	state.UpdatedAt = time.Now()
	s.cache.Set(stateKey(conversationID), state, stateTTL)
	return nil
}

func (s *MemoryStateStore) Delete(ctx context.Context, conversationID string) error {
	s.cache.Delete(stateKey(conversationID))
	return nil
}
