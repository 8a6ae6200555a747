package ticketcache

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newRedisPersister(t *testing.T, key string) *RedisPersister {
	t.Helper()
	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewRedisPersister(client, key)
}

func TestRedisPersisterRoundTrip(t *testing.T) {
	ctx := context.Background()
	p := newRedisPersister(t, "test:ticketcache")

	s, err := NewStore(ctx, p)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	d := Detail{Summary: testSummary("HD-2024-0001"), Description: "persisted in redis"}
	s.ApplyDetail(d, s.Version())
	if err := s.Flush(ctx); err != nil {
		t.Fatalf("Flush: %v", err)
	}

	reloaded, err := NewStore(ctx, p)
	if err != nil {
		t.Fatalf("NewStore (reload): %v", err)
	}
	rec, ok := reloaded.Get("HD-2024-0001")
	if !ok {
		t.Fatal("record lost across redis round trip")
	}
	if !rec.HasFullDetail || rec.Description != "persisted in redis" {
		t.Errorf("reloaded record = %+v", rec)
	}
}

func TestRedisPersisterEmptyKeyLoadsNothing(t *testing.T) {
	p := newRedisPersister(t, "test:ticketcache")

	records, err := p.Load(context.Background())
	if err != nil {
		t.Fatalf("Load on a missing key: %v", err)
	}
	if len(records) != 0 {
		t.Errorf("records = %d, want 0", len(records))
	}
}

func TestRedisPersisterDefaultKey(t *testing.T) {
	p := newRedisPersister(t, "")
	if p.key != "helpdesk:ticketcache" {
		t.Errorf("key = %q", p.key)
	}
}
