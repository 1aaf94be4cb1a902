package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"booking-system/internal/status"

	"github.com/redis/go-redis/v9"
)

// DraftStore keeps checkout drafts in Redis under a TTL. A buyer who
// walks away simply lets the key expire; nothing reaches the database
// until submission.
type DraftStore struct {
	Redis *redis.Client
	TTL   time.Duration
}

func NewDraftStore(redisClient *redis.Client, ttl time.Duration) *DraftStore {
	return &DraftStore{
		Redis: redisClient,
		TTL:   ttl,
	}
}

func draftKey(id string) string {
	return fmt.Sprintf("checkout:draft:%s", id)
}

func (s *DraftStore) Save(ctx context.Context, draft Draft) error {
	data, err := json.Marshal(draft)
	if err != nil {
		return fmt.Errorf("marshal draft: %w", err)
	}

	if err := s.Redis.Set(ctx, draftKey(draft.ID), data, s.TTL).Err(); err != nil {
		return fmt.Errorf("save draft: %w", err)
	}
	return nil
}

func (s *DraftStore) Get(ctx context.Context, id string) (Draft, error) {
	data, err := s.Redis.Get(ctx, draftKey(id)).Bytes()
	if err == redis.Nil {
		return Draft{}, status.ErrDraftNotFound
	}
	if err != nil {
		return Draft{}, fmt.Errorf("load draft: %w", err)
	}

	var draft Draft
	if err := json.Unmarshal(data, &draft); err != nil {
		return Draft{}, fmt.Errorf("decode draft: %w", err)
	}
	return draft, nil
}

func (s *DraftStore) Delete(ctx context.Context, id string) error {
	return s.Redis.Del(ctx, draftKey(id)).Err()
}
