package domain

import "time"

// Department represents an organizational unit that owns tickets.
type Department struct {
	ID        int64
	Name      string
	IsActive  bool
	IsDeleted bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
