package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// stateTTL keeps abandoned conversations from accumulating in Redis.
const stateTTL = 24 * time.Hour

// RedisStateStore keeps conversation state in Redis so any instance can
// pick up the next turn.
type RedisStateStore struct {
	client *redis.Client
}

func NewRedisStateStore(url string) (*RedisStateStore, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis url: %w", err)
	}
	return &RedisStateStore{client: redis.NewClient(opts)}, nil
}

func NewRedisStateStoreFromClient(client *redis.Client) *RedisStateStore {
	return &RedisStateStore{client: client}
}

func stateKey(conversationID string) string {
	return fmt.Sprintf("conv:%s:state", conversationID)
}

func (s *RedisStateStore) Get(ctx context.Context, conversationID string) (ConversationState, error) {
	raw, err := s.client.Get(ctx, stateKey(conversationID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return ConversationState{}, nil
		}
		return ConversationState{}, fmt.Errorf("failed to read conversation state: %w", err)
	}

	var state ConversationState
	if err := json.Unmarshal([]byte(raw), &state); err != nil {
		// Corrupt state is treated as missing rather than wedging the turn.
		return ConversationState{}, nil
	}
	return state, nil
}

func (s *RedisStateStore) Set(ctx context.Context, conversationID string, state ConversationState) error {
	state.UpdatedAt = time.Now()
	raw, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to marshal conversation state: %w", err)
	}
	if err := s.client.Set(ctx, stateKey(conversationID), raw, stateTTL).Err(); err != nil {
		return fmt.Errorf("failed to write conversation state: %w", err)
	}
	return nil
}

func (s *RedisStateStore) Delete(ctx context.Context, conversationID string) error {
	return s.client.Del(ctx, stateKey(conversationID)).Err()
}
