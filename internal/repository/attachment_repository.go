package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/codigo-hd/helpdesk-service/internal/domain"
)

// AttachmentRepository manages attachment metadata persistence.
type AttachmentRepository interface {
	Create(ctx context.Context, att *domain.Attachment) error
	ListByMessage(ctx context.Context, messageID int64) ([]domain.Attachment, error)
}

type attachmentRepository struct {
	pool *pgxpool.Pool
}

// NewAttachmentRepository builds the repository.
func NewAttachmentRepository(pool *pgxpool.Pool) AttachmentRepository {
	return &attachmentRepository{pool: pool}
}

func (r *attachmentRepository) Create(ctx context.Context, att *domain.Attachment) error {
	const query = `
        INSERT INTO attachments (message_id, storage_key, file_name, mime_type, size_bytes)
        VALUES ($1,$2,$3,$4,$5)
        RETURNING id, created_at`
	return r.pool.QueryRow(ctx, query,
		att.MessageID,
		att.StorageKey,
		att.FileName,
		att.MimeType,
		att.SizeBytes,
	).Scan(&att.ID, &att.CreatedAt)
}

func (r *attachmentRepository) ListByMessage(ctx context.Context, messageID int64) ([]domain.Attachment, error) {
	const query = `
        SELECT id, message_id, storage_key, file_name, mime_type, size_bytes, created_at
        FROM attachments WHERE message_id=$1 ORDER BY created_at`
	rows, err := r.pool.Query(ctx, query, messageID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Attachment
	for rows.Next() {
		var att domain.Attachment
		if err := rows.Scan(
			&att.ID,
			&att.MessageID,
			&att.StorageKey,
			&att.FileName,
			&att.MimeType,
			&att.SizeBytes,
			&att.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, att)
	}
	return result, rows.Err()
}
