package ticketcache

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/redis/go-redis/v9"
)

// MemoryPersister keeps snapshots in process memory. Used in tests and when
// no Redis is configured.
type MemoryPersister struct {
	snapshot []Record
}

// NewMemoryPersister builds an empty in-memory persister.
func NewMemoryPersister() *MemoryPersister {
	return &MemoryPersister{}
}

func (p *MemoryPersister) Load(_ context.Context) ([]Record, error) {
	out := make([]Record, len(p.snapshot))
	copy(out, p.snapshot)
	return out, nil
}

func (p *MemoryPersister) Save(_ context.Context, records []Record) error {
	p.snapshot = make([]Record, len(records))
	copy(p.snapshot, records)
	return nil
}

// RedisPersister stores the snapshot as one JSON blob in Redis.
type RedisPersister struct {
	client *redis.Client
	key    string
}

// NewRedisPersister builds a persister over the given client and key.
func NewRedisPersister(client *redis.Client, key string) *RedisPersister {
	if key == "" {
		key = "helpdesk:ticketcache"
	}
	return &RedisPersister{client: client, key: key}
}

func (p *RedisPersister) Load(ctx context.Context) ([]Record, error) {
	raw, err := p.client.Get(ctx, p.key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}
	var records []Record
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, err
	}
	return records, nil
}

func (p *RedisPersister) Save(ctx context.Context, records []Record) error {
	raw, err := json.Marshal(records)
	if err != nil {
		return err
	}
	return p.client.Set(ctx, p.key, raw, 0).Err()
}
