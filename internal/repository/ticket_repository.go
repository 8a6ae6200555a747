package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/codigo-hd/helpdesk-service/internal/domain"
)

// TicketFilter captures list search parameters.
type TicketFilter struct {
	Query  string
	Limit  int
	Offset int
}

// TicketRow joins a ticket with the display fields list views need.
type TicketRow struct {
	Ticket         domain.Ticket
	DepartmentName string
	CustomerName   string
	AgentName      *string
	MessageCount   int
}

// TicketRepository encapsulates ticket persistence.
type TicketRepository interface {
	Create(ctx context.Context, ticket *domain.Ticket) error
	GetByID(ctx context.Context, id int64) (*TicketRow, error)
	GetByNumber(ctx context.Context, number string) (*TicketRow, error)
	List(ctx context.Context, filter TicketFilter) ([]TicketRow, int, error)
	UpdateStatus(ctx context.Context, id int64, status domain.TicketStatus) error
}

type ticketRepository struct {
	pool *pgxpool.Pool
}

// NewTicketRepository instantiates repository.
func NewTicketRepository(pool *pgxpool.Pool) TicketRepository {
	return &ticketRepository{pool: pool}
}

func (r *ticketRepository) Create(ctx context.Context, ticket *domain.Ticket) error {
	const query = `
        INSERT INTO tickets (number, customer_id, department_id, agent_id, subject, description,
            status, priority, category, subcategory, sla_deadline)
        VALUES ('HD-' || to_char(NOW(),'YYYY') || '-' || lpad(nextval('ticket_number_seq')::text, 4, '0'),
            $1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
        RETURNING id, number, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		ticket.CustomerID,
		ticket.DepartmentID,
		ticket.AgentID,
		ticket.Subject,
		ticket.Description,
		ticket.Status,
		ticket.Priority,
		ticket.Category,
		ticket.Subcategory,
		ticket.SLADeadline,
	).Scan(&ticket.ID, &ticket.Number, &ticket.CreatedAt, &ticket.UpdatedAt)
}

const ticketRowColumns = `
        t.id, t.number, t.customer_id, t.department_id, t.agent_id, t.subject, t.description,
        t.status, t.priority, t.category, t.subcategory, t.sla_deadline, t.created_at, t.updated_at,
        d.name,
        c.first_name || ' ' || c.last_name,
        CASE WHEN a.id IS NULL THEN NULL ELSE a.first_name || ' ' || a.last_name END,
        (SELECT COUNT(*) FROM ticket_messages m WHERE m.ticket_id = t.id)`

const ticketRowFrom = `
        FROM tickets t
        JOIN departments d ON d.id = t.department_id
        JOIN users c ON c.id = t.customer_id
        LEFT JOIN users a ON a.id = t.agent_id`

func (r *ticketRepository) GetByID(ctx context.Context, id int64) (*TicketRow, error) {
	query := `SELECT ` + ticketRowColumns + ticketRowFrom + ` WHERE t.id=$1`
	return r.fetchSingle(ctx, query, id)
}

func (r *ticketRepository) GetByNumber(ctx context.Context, number string) (*TicketRow, error) {
	query := `SELECT ` + ticketRowColumns + ticketRowFrom + ` WHERE t.number=$1`
	return r.fetchSingle(ctx, query, number)
}

func (r *ticketRepository) fetchSingle(ctx context.Context, query string, arg any) (*TicketRow, error) {
	row := r.pool.QueryRow(ctx, query, arg)
	ticket, err := scanTicketRow(row)
	if err != nil {
		return nil, err
	}
	return ticket, nil
}

func (r *ticketRepository) List(ctx context.Context, filter TicketFilter) ([]TicketRow, int, error) {
	clauses := []string{"1=1"}
	args := []any{}

	if term := strings.TrimSpace(filter.Query); term != "" {
		search := "%" + strings.ToLower(term) + "%"
		args = append(args, search)
		placeholder := fmt.Sprintf("$%d", len(args))
		clauses = append(clauses, fmt.Sprintf(
			"(LOWER(t.number) LIKE %s OR LOWER(t.subject) LIKE %s OR LOWER(c.first_name || ' ' || c.last_name) LIKE %s)",
			placeholder, placeholder, placeholder))
	}

	where := strings.Join(clauses, " AND ")

	var total int
	countQuery := `SELECT COUNT(*)` + ticketRowFrom + ` WHERE ` + where
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	query := fmt.Sprintf(`SELECT %s %s WHERE %s ORDER BY t.updated_at DESC LIMIT %d OFFSET %d`,
		ticketRowColumns, ticketRowFrom, where, limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var result []TicketRow
	for rows.Next() {
		ticket, err := scanTicketRow(rows)
		if err != nil {
			return nil, 0, err
		}
		result = append(result, *ticket)
	}
	return result, total, rows.Err()
}

func (r *ticketRepository) UpdateStatus(ctx context.Context, id int64, status domain.TicketStatus) error {
	const query = `UPDATE tickets SET status=$1, updated_at=NOW() WHERE id=$2`
	cmd, err := r.pool.Exec(ctx, query, status, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func scanTicketRow(row pgx.Row) (*TicketRow, error) {
	var tr TicketRow
	if err := row.Scan(
		&tr.Ticket.ID,
		&tr.Ticket.Number,
		&tr.Ticket.CustomerID,
		&tr.Ticket.DepartmentID,
		&tr.Ticket.AgentID,
		&tr.Ticket.Subject,
		&tr.Ticket.Description,
		&tr.Ticket.Status,
		&tr.Ticket.Priority,
		&tr.Ticket.Category,
		&tr.Ticket.Subcategory,
		&tr.Ticket.SLADeadline,
		&tr.Ticket.CreatedAt,
		&tr.Ticket.UpdatedAt,
		&tr.DepartmentName,
		&tr.CustomerName,
		&tr.AgentName,
		&tr.MessageCount,
	); err != nil {
		return nil, err
	}
	return &tr, nil
}
