package dto

import (
	"time"

	"github.com/codigo-hd/helpdesk-service/internal/domain"
)

// AddMessageRequest payload.
type AddMessageRequest struct {
	Body        string              `json:"body"`
	IsInternal  bool                `json:"isInternal,omitempty"`
	Attachments []AttachmentRequest `json:"attachments,omitempty"`
}

// AttachmentRequest references an already-uploaded file by its storage key.
type AttachmentRequest struct {
	StorageKey string `json:"storageKey"`
	FileName   string `json:"fileName"`
	MimeType   string `json:"mimeType"`
	SizeBytes  int64  `json:"sizeBytes"`
}

// MessageResponse is one conversation entry.
type MessageResponse struct {
	ID          int64                `json:"id"`
	TicketID    int64                `json:"ticketId"`
	AuthorID    int64                `json:"authorId"`
	Body        string               `json:"body"`
	IsInternal  bool                 `json:"isInternal"`
	Attachments []AttachmentResponse `json:"attachments"`
	CreatedAt   time.Time            `json:"createdAt"`
}

// AttachmentResponse is the wire representation of attachment metadata.
type AttachmentResponse struct {
	ID        int64  `json:"id"`
	FileName  string `json:"fileName"`
	MimeType  string `json:"mimeType"`
	SizeBytes int64  `json:"sizeBytes"`
}

// NewMessageResponse maps a message with its attachments.
func NewMessageResponse(msg *domain.TicketMessage) MessageResponse {
	attachments := make([]AttachmentResponse, 0, len(msg.Attachments))
	for _, att := range msg.Attachments {
		attachments = append(attachments, AttachmentResponse{
			ID:        att.ID,
			FileName:  att.FileName,
			MimeType:  att.MimeType,
			SizeBytes: att.SizeBytes,
		})
	}
	return MessageResponse{
		ID:          msg.ID,
		TicketID:    msg.TicketID,
		AuthorID:    msg.AuthorID,
		Body:        msg.Body,
		IsInternal:  msg.IsInternal,
		Attachments: attachments,
		CreatedAt:   msg.CreatedAt,
	}
}
