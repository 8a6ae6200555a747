package client

import (
	"context"
	"errors"
	"time"

	"github.com/codigo-hd/helpdesk-service/internal/domain"
	"github.com/codigo-hd/helpdesk-service/internal/ticketcache"
	"github.com/codigo-hd/helpdesk-service/internal/vocab"
)

// Fetcher drives ticket reads and writes against the API and reconciles every
// response into the local cache. Responses are translated to the display
// vocabulary on the way in and back to canonical tokens on the way out.
type Fetcher struct {
	api   API
	cache *ticketcache.Store
}

// NewFetcher wires an API implementation to a cache.
func NewFetcher(api API, cache *ticketcache.Store) *Fetcher {
	return &Fetcher{api: api, cache: cache}
}

// RefreshList fetches one page of summaries and upserts each into the cache.
// Partial payloads never regress locally-known detail.
func (f *Fetcher) RefreshList(ctx context.Context, params ListParams) (*TicketPage, error) {
	page, err := f.api.ListTickets(ctx, params)
	if err != nil {
		return nil, err
	}
	for _, item := range page.Items {
		f.cache.ApplySummary(summaryToCache(item))
	}
	return page, nil
}

// Create submits a ticket and inserts the server-acknowledged record locally.
func (f *Fetcher) Create(ctx context.Context, input CreateTicketInput) (*ticketcache.Record, error) {
	detail, err := f.api.CreateTicket(ctx, input)
	if err != nil {
		return nil, err
	}
	since := f.cache.Version()
	f.cache.ApplyDetail(detailToCache(*detail), since)
	rec, _ := f.cache.Get(detail.Number)
	return &rec, nil
}

// GetByNumber resolves a ticket to its full detail, cache-first over a
// two-tier lookup:
//
//  1. the direct by-number route; a clean 404 is authoritative and ends the
//     lookup with ErrNotFound, no fallback;
//  2. on any other failure (e.g. an older server without the route), a
//     list-search for the exact number followed by the legacy numeric-id
//     detail route.
//
// Both tiers failing reports ErrNotFound without distinguishing transient
// failure from true absence; retry policy belongs to the caller. A local
// record that already holds full detail is returned without any network call.
func (f *Fetcher) GetByNumber(ctx context.Context, number string) (*ticketcache.Record, error) {
	if rec, ok := f.cache.Get(number); ok && rec.HasFullDetail {
		return &rec, nil
	}

	since := f.cache.Version()

	detail, err := f.api.GetTicketByNumber(ctx, number)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNotFound
		}
		detail, err = f.lookupFallback(ctx, number)
		if err != nil {
			return nil, ErrNotFound
		}
	}

	f.cache.ApplyDetail(detailToCache(*detail), since)
	rec, ok := f.cache.Get(detail.Number)
	if !ok {
		// Deleted locally while the fetch was in flight; the apply was a no-op.
		return nil, ErrNotFound
	}
	return &rec, nil
}

func (f *Fetcher) lookupFallback(ctx context.Context, number string) (*TicketDetail, error) {
	page, err := f.api.ListTickets(ctx, ListParams{Query: number, Page: 1, PageSize: 1})
	if err != nil {
		return nil, err
	}
	if len(page.Items) == 0 || page.Items[0].Number != number {
		return nil, ErrNotFound
	}
	return f.api.GetTicketByID(ctx, page.Items[0].ID)
}

// UpdateStatusByNumber resolves the numeric id through a list-search, pushes
// the status change, and touches the local record only after the server ack.
// newStatus is a display-vocabulary label.
func (f *Fetcher) UpdateStatusByNumber(ctx context.Context, number, newStatus string) error {
	page, err := f.api.ListTickets(ctx, ListParams{Query: number, Page: 1, PageSize: 1})
	if err != nil {
		return err
	}
	if len(page.Items) == 0 || page.Items[0].Number != number {
		return ErrNotFound
	}
	canonical := vocab.CanonicalStatus(newStatus)
	if err := f.api.UpdateTicketStatus(ctx, page.Items[0].ID, string(canonical)); err != nil {
		return err
	}
	f.cache.ApplyStatus(number, newStatus, time.Now().UTC())
	return nil
}

// Remove drops a ticket from the local cache only.
func (f *Fetcher) Remove(number string) bool {
	return f.cache.RemoveByID(number)
}

func summaryToCache(s TicketSummary) ticketcache.Summary {
	var deadline *time.Time
	if s.SLAHours != nil && *s.SLAHours > 0 {
		d := s.CreatedAt.Add(time.Duration(*s.SLAHours) * time.Hour)
		deadline = &d
	}
	return ticketcache.Summary{
		ID:          s.Number,
		Title:       s.Subject,
		Status:      vocab.DisplayStatus(domain.TicketStatus(s.Status)),
		Priority:    vocab.DisplayPriority(domain.TicketPriority(s.Priority)),
		Requester:   s.Customer,
		Department:  s.Department,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
		SLADeadline: deadline,
	}
}

func detailToCache(d TicketDetail) ticketcache.Detail {
	return ticketcache.Detail{
		Summary:     summaryToCache(d.TicketSummary),
		Description: d.Description,
	}
}
