package ticketcache

import (
	"context"
	"testing"
	"time"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(context.Background(), nil)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	return s
}

func testSummary(id string) Summary {
	return Summary{
		ID:         id,
		Title:      "Printer jam on floor 3",
		Status:     "Aberto",
		Priority:   "Média",
		Category:   "Hardware",
		Requester:  "Ana Souza",
		Department: "TI",
		CreatedAt:  time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC),
		UpdatedAt:  time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC),
	}
}

func TestApplySummaryCreatesPartialRecord(t *testing.T) {
	s := newTestStore(t)
	s.ApplySummary(testSummary("HD-2024-0001"))

	rec, ok := s.Get("HD-2024-0001")
	if !ok {
		t.Fatal("record not found after ApplySummary")
	}
	if rec.HasFullDetail {
		t.Error("summary apply must not mark the record complete")
	}
	if rec.Description != "" {
		t.Errorf("summary apply set a description: %q", rec.Description)
	}
}

func TestApplyDetailMarksComplete(t *testing.T) {
	s := newTestStore(t)
	s.ApplySummary(testSummary("HD-2024-0001"))
	since := s.Version()

	d := Detail{Summary: testSummary("HD-2024-0001"), Description: "Tray 2 keeps jamming."}
	if !s.ApplyDetail(d, since) {
		t.Fatal("ApplyDetail dropped a live record")
	}

	rec, _ := s.Get("HD-2024-0001")
	if !rec.HasFullDetail {
		t.Error("detail apply must mark the record complete")
	}
	if rec.Description != "Tray 2 keeps jamming." {
		t.Errorf("description = %q", rec.Description)
	}
}

func TestApplyDetailIsIdempotent(t *testing.T) {
	s := newTestStore(t)
	d := Detail{Summary: testSummary("HD-2024-0001"), Description: "Tray 2 keeps jamming."}

	s.ApplyDetail(d, s.Version())
	first, _ := s.Get("HD-2024-0001")
	s.ApplyDetail(d, s.Version())
	second, _ := s.Get("HD-2024-0001")

	if first != second {
		t.Errorf("second apply changed the record:\n first=%+v\nsecond=%+v", first, second)
	}
}

func TestSummaryNeverRegressesDetail(t *testing.T) {
	s := newTestStore(t)
	d := Detail{Summary: testSummary("HD-2024-0001"), Description: "Tray 2 keeps jamming."}
	s.ApplyDetail(d, s.Version())

	refreshed := testSummary("HD-2024-0001")
	refreshed.Status = "Em Andamento"
	refreshed.UpdatedAt = refreshed.UpdatedAt.Add(time.Hour)
	s.ApplySummary(refreshed)

	rec, _ := s.Get("HD-2024-0001")
	if rec.Status != "Em Andamento" {
		t.Errorf("status not refreshed: %q", rec.Status)
	}
	if !rec.HasFullDetail {
		t.Error("summary refresh cleared HasFullDetail")
	}
	if rec.Description != "Tray 2 keeps jamming." {
		t.Errorf("summary refresh blanked the description: %q", rec.Description)
	}
}

func TestRemoveTombstonesStaleDetail(t *testing.T) {
	s := newTestStore(t)
	s.ApplySummary(testSummary("HD-2024-0001"))

	// Version captured before the fetch starts, deletion lands while the
	// fetch is in flight.
	since := s.Version()
	if !s.RemoveByID("HD-2024-0001") {
		t.Fatal("RemoveByID returned false for a known record")
	}

	d := Detail{Summary: testSummary("HD-2024-0001"), Description: "late arrival"}
	if s.ApplyDetail(d, since) {
		t.Fatal("stale detail resurrected a removed ticket")
	}
	if _, ok := s.Get("HD-2024-0001"); ok {
		t.Fatal("removed ticket is back in the cache")
	}
}

func TestDetailAfterRemovalWithFreshVersionApplies(t *testing.T) {
	s := newTestStore(t)
	s.ApplySummary(testSummary("HD-2024-0001"))
	s.RemoveByID("HD-2024-0001")

	// A fetch started after the deletion captures the deletion's version (or
	// newer) and may legitimately re-add the ticket.
	since := s.Version()
	d := Detail{Summary: testSummary("HD-2024-0001"), Description: "re-fetched"}
	if !s.ApplyDetail(d, since) {
		t.Fatal("fresh detail apply was dropped")
	}
	rec, ok := s.Get("HD-2024-0001")
	if !ok || !rec.HasFullDetail || rec.Description != "re-fetched" {
		t.Errorf("re-added record = %+v", rec)
	}
}

func TestApplyStatusTouchesOnlyKnownRecords(t *testing.T) {
	s := newTestStore(t)
	if s.ApplyStatus("HD-2024-9999", "Fechado", time.Now()) {
		t.Fatal("ApplyStatus created a record out of thin air")
	}

	s.ApplySummary(testSummary("HD-2024-0001"))
	later := time.Date(2024, 3, 2, 10, 0, 0, 0, time.UTC)
	if !s.ApplyStatus("HD-2024-0001", "Resolvido", later) {
		t.Fatal("ApplyStatus failed for a known record")
	}
	rec, _ := s.Get("HD-2024-0001")
	if rec.Status != "Resolvido" {
		t.Errorf("status = %q", rec.Status)
	}
	if !rec.UpdatedAt.Equal(later) {
		t.Errorf("updatedAt = %v, want %v", rec.UpdatedAt, later)
	}
}

func TestListOrdersByUpdateTimeNewestFirst(t *testing.T) {
	s := newTestStore(t)
	older := testSummary("HD-2024-0001")
	newer := testSummary("HD-2024-0002")
	newer.UpdatedAt = newer.UpdatedAt.Add(time.Hour)
	s.ApplySummary(older)
	s.ApplySummary(newer)

	got := s.List()
	if len(got) != 2 {
		t.Fatalf("len = %d", len(got))
	}
	if got[0].ID != "HD-2024-0002" || got[1].ID != "HD-2024-0001" {
		t.Errorf("order = [%s, %s]", got[0].ID, got[1].ID)
	}
}

func TestReplaceAllClearsTombstones(t *testing.T) {
	s := newTestStore(t)
	s.ApplySummary(testSummary("HD-2024-0001"))
	s.RemoveByID("HD-2024-0001")

	s.ReplaceAll([]Record{recordFromSummary(testSummary("HD-2024-0001"))})

	d := Detail{Summary: testSummary("HD-2024-0001"), Description: "after reset"}
	if !s.ApplyDetail(d, 0) {
		t.Fatal("tombstone survived ReplaceAll")
	}
}

func TestMemoryPersisterRoundTrip(t *testing.T) {
	ctx := context.Background()
	p := NewMemoryPersister()

	s, err := NewStore(ctx, p)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	d := Detail{Summary: testSummary("HD-2024-0001"), Description: "persisted"}
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
		t.Fatal("record lost across persister round trip")
	}
	if !rec.HasFullDetail || rec.Description != "persisted" {
		t.Errorf("reloaded record = %+v", rec)
	}
}
