// Package ticketcache maintains one local record per ticket number, merging
// partial list-fetch payloads and full detail payloads into a consistent view.
// Merging is explicit and field-by-field: a list refresh can never regress a
// record that already holds full detail, and a stale async result can never
// resurrect a ticket that was removed in the meantime.
package ticketcache

import (
	"context"
	"sort"
	"sync"
	"time"
)

// Persister stores cache snapshots somewhere durable. Implementations must
// tolerate an empty snapshot on first load.
type Persister interface {
	Load(ctx context.Context) ([]Record, error)
	Save(ctx context.Context, records []Record) error
}

// Store is the in-memory ticket cache. All mutations go through a single
// mutex; merge rules keep out-of-order applies from clobbering newer fields.
type Store struct {
	mu        sync.RWMutex
	records   map[string]Record
	version   uint64
	deleted   map[string]uint64
	persister Persister
}

// NewStore builds a store over the given persister and loads the existing
// snapshot. A nil persister yields a purely in-memory store.
func NewStore(ctx context.Context, persister Persister) (*Store, error) {
	s := &Store{
		records: make(map[string]Record),
		deleted: make(map[string]uint64),
	}
	if persister != nil {
		loaded, err := persister.Load(ctx)
		if err != nil {
			return nil, err
		}
		for _, rec := range loaded {
			s.records[rec.ID] = rec
		}
		s.persister = persister
	}
	return s, nil
}

// Version returns a monotonic counter bumped on every mutation. Capture it
// before starting an async fetch and pass it to ApplyDetail so a result that
// resolves after a local deletion is dropped.
func (s *Store) Version() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}

// Get returns the record for a ticket number.
func (s *Store) Get(id string) (Record, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.records[id]
	return rec, ok
}

// List returns all records ordered by update time, newest first.
func (s *Store) List() []Record {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Record, 0, len(s.records))
	for _, rec := range s.records {
		out = append(out, rec)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].UpdatedAt.Equal(out[j].UpdatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].UpdatedAt.After(out[j].UpdatedAt)
	})
	return out
}

// ApplySummary upserts a partial record from a list fetch. An unknown ticket
// becomes a partial record; a record that already holds full detail keeps its
// description and HasFullDetail flag while the list-level fields refresh.
func (s *Store) ApplySummary(sum Summary) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.version++

	existing, ok := s.records[sum.ID]
	if !ok {
		s.records[sum.ID] = recordFromSummary(sum)
		return
	}

	merged := recordFromSummary(sum)
	merged.Description = existing.Description
	merged.HasFullDetail = existing.HasFullDetail
	s.records[sum.ID] = merged
}

// ApplyDetail upserts the authoritative full view of a ticket and marks it
// complete. Idempotent. The apply is dropped when the ticket was removed
// locally after `since` (the store version captured before the fetch); a
// fetch started after the deletion carries the deletion's version or newer
// and goes through. It reports whether the record was written.
func (s *Store) ApplyDetail(d Detail, since uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if delVer, wasDeleted := s.deleted[d.ID]; wasDeleted && delVer > since {
		return false
	}
	s.version++

	rec := recordFromSummary(d.Summary)
	rec.Description = d.Description
	rec.HasFullDetail = true
	s.records[d.ID] = rec
	return true
}

// ApplyStatus records a server-acknowledged status change, touching only the
// status and update timestamp. Unknown tickets are left alone; a status ack
// is never grounds to invent a record.
func (s *Store) ApplyStatus(id, status string, updatedAt time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.records[id]
	if !ok {
		return false
	}
	s.version++
	rec.Status = status
	if !updatedAt.IsZero() {
		rec.UpdatedAt = updatedAt
	}
	s.records[id] = rec
	return true
}

// ReplaceAll swaps the full cache contents, e.g. after a fresh first-page
// load with pagination disabled. Pending deletion tombstones are cleared.
func (s *Store) ReplaceAll(records []Record) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.version++
	s.records = make(map[string]Record, len(records))
	for _, rec := range records {
		s.records[rec.ID] = rec
	}
	s.deleted = make(map[string]uint64)
}

// RemoveByID drops a record and tombstones the id so in-flight detail fetches
// for it resolve as no-ops.
func (s *Store) RemoveByID(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.records[id]; !ok {
		return false
	}
	s.version++
	delete(s.records, id)
	s.deleted[id] = s.version
	return true
}

// Flush writes the current snapshot through the persister.
func (s *Store) Flush(ctx context.Context) error {
	if s.persister == nil {
		return nil
	}
	return s.persister.Save(ctx, s.List())
}
