package domain

import "time"

// TicketMessage is one entry in a ticket's conversation thread.
type TicketMessage struct {
	ID          int64
	TicketID    int64
	AuthorID    int64
	Body        string
	IsInternal  bool
	Attachments []Attachment
	CreatedAt   time.Time
}
