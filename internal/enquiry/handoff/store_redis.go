package handoff

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"intake/pkg/requestcontext"
)

// storageKey is the single fixed key the handoff record lives under.
const storageKey = "intake:enquiry:handoff"

// RedisStore persists the handoff record in Redis. A native key expiry backs
// up the SubmittedAt check, but Load still verifies the stamp so a record aged
// by clock skew or a manually written value is never served stale.
type RedisStore struct {
	client redis.Cmdable
	key    string
}

func NewRedisStore(client redis.Cmdable) *RedisStore {
	return &RedisStore{client: client, key: storageKey}
}

func (s *RedisStore) Save(ctx context.Context, record Record) error {
	if record.SubmittedAt.IsZero() {
		record.SubmittedAt = requestcontext.Now(ctx)
	}
	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("marshal handoff record: %w", err)
	}
	if err := s.client.Set(ctx, s.key, data, RecordTTL).Err(); err != nil {
		return fmt.Errorf("save handoff record: %w", err)
	}
	return nil
}

func (s *RedisStore) Load(ctx context.Context) (*Record, error) {
	data, err := s.client.Get(ctx, s.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load handoff record: %w", err)
	}

	var record Record
	if err := json.Unmarshal(data, &record); err != nil {
		// Corrupt data is treated as absent, never thrown to the caller.
		_ = s.client.Del(ctx, s.key).Err()
		return nil, nil
	}
	if record.Expired(requestcontext.Now(ctx)) {
		_ = s.client.Del(ctx, s.key).Err()
		return nil, nil
	}
	return &record, nil
}

func (s *RedisStore) Clear(ctx context.Context) error {
	if err := s.client.Del(ctx, s.key).Err(); err != nil {
		return fmt.Errorf("clear handoff record: %w", err)
	}
	return nil
}

func (s *RedisStore) Exists(ctx context.Context) (bool, error) {
	record, err := s.Load(ctx)
	if err != nil {
		return false, err
	}
	return record != nil, nil
}
