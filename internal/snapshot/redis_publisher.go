package snapshot

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/rueidis"

	model "task-tracker.com/task-tracker/internal/models"
)

type RedisPublisher struct {
	client rueidis.Client
	key    string
}

func NewRedisPublisher(client rueidis.Client, key string) *RedisPublisher {
	return &RedisPublisher{
		client: client,
		key:    key,
	}
}

func (r *RedisPublisher) Publish(ctx context.Context, tree []model.TaskDetail) error {
	payload, err := json.Marshal(tree)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}

	cmd := r.client.B().Set().Key(r.key).Value(rueidis.BinaryString(payload)).Build()
	return r.client.Do(ctx, cmd).Error()
}

func (r *RedisPublisher) Fetch(ctx context.Context) ([]model.TaskDetail, error) {
	cmd := r.client.B().Get().Key(r.key).Build()
	payload, err := r.client.Do(ctx, cmd).AsBytes()
	if err != nil {
		if rueidis.IsRedisNil(err) {
			return nil, ErrNoSnapshot
		}
		return nil, err
	}

	var tree []model.TaskDetail
	if err := json.Unmarshal(payload, &tree); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	return tree, nil
}
