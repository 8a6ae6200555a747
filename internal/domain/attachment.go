package domain

import "time"

// Attachment records file metadata linked to a ticket message. The bytes
// themselves live in external storage under StorageKey.
type Attachment struct {
	ID         int64
	MessageID  int64
	StorageKey string
	FileName   string
	MimeType   string
	SizeBytes  int64
	CreatedAt  time.Time
}
