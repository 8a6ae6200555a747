package ticketcache

import "time"

// Record is the local materialization of one ticket, keyed by its
// human-readable number. Status and Priority keep the canonical wire tokens
// as lenient strings: values outside the known sets are stored as-is so the
// cache never rejects a forward-incompatible server response.
type Record struct {
	ID            string     `json:"id"`
	Title         string     `json:"title"`
	Description   string     `json:"description"`
	Status        string     `json:"status"`
	Priority      string     `json:"priority"`
	Category      string     `json:"category"`
	Subcategory   string     `json:"subcategory,omitempty"`
	Requester     string     `json:"requester"`
	Department    string     `json:"department"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
	SLADeadline   *time.Time `json:"slaDeadline,omitempty"`
	HasFullDetail bool       `json:"hasFullDetail"`
}

// Summary is a partial view of a ticket as returned by a list fetch. It never
// carries a description.
type Summary struct {
	ID          string
	Title       string
	Status      string
	Priority    string
	Category    string
	Subcategory string
	Requester   string
	Department  string
	CreatedAt   time.Time
	UpdatedAt   time.Time
	SLADeadline *time.Time
}

// Detail is the full view of a ticket from a single-ticket fetch.
type Detail struct {
	Summary
	Description string
}

func recordFromSummary(s Summary) Record {
	return Record{
		ID:          s.ID,
		Title:       s.Title,
		Status:      s.Status,
		Priority:    s.Priority,
		Category:    s.Category,
		Subcategory: s.Subcategory,
		Requester:   s.Requester,
		Department:  s.Department,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
		SLADeadline: s.SLADeadline,
	}
}
