package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prohmpiriya/courtside-tickets/internal/domain"
)

const ticketColumns = `id, user_id, game, section_type, section, quantity,
	base_price, service_fee, processing_fee, total_price,
	status, admin_notes, special_requests, version, created_at, last_updated`

// PostgresTicketRepository implements TicketRepository using PostgreSQL.
// Money columns are NUMERIC and scanned straight into decimal.Decimal.
type PostgresTicketRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresTicketRepository creates a new PostgresTicketRepository
func NewPostgresTicketRepository(pool *pgxpool.Pool) *PostgresTicketRepository {
	return &PostgresTicketRepository{pool: pool}
}

// Create creates a new ticket
func (r *PostgresTicketRepository) Create(ctx context.Context, t *domain.Ticket) error {
	query := `
		INSERT INTO tickets (` + ticketColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
	`
	_, err := r.pool.Exec(ctx, query,
		t.ID,
		t.UserID,
		t.Game,
		t.SectionType,
		t.Section,
		t.Quantity,
		t.BasePrice,
		t.ServiceFee,
		t.ProcessingFee,
		t.TotalPrice,
		t.Status,
		t.AdminNotes,
		t.SpecialRequests,
		t.Version,
		t.CreatedAt,
		t.LastUpdated,
	)
	return err
}

// GetByID retrieves a ticket by ID
func (r *PostgresTicketRepository) GetByID(ctx context.Context, id string) (*domain.Ticket, error) {
	query := `SELECT ` + ticketColumns + ` FROM tickets WHERE id = $1`
	t, err := scanTicket(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTicketNotFound
		}
		return nil, err
	}
	return t, nil
}

// Update writes every mutable column guarded by the version the caller read
func (r *PostgresTicketRepository) Update(ctx context.Context, t *domain.Ticket) error {
	query := `
		UPDATE tickets
		SET game = $3, section_type = $4, section = $5, quantity = $6,
		    base_price = $7, service_fee = $8, processing_fee = $9, total_price = $10,
		    status = $11, admin_notes = $12, special_requests = $13,
		    last_updated = $14, version = version + 1
		WHERE id = $1 AND version = $2
	`
	tag, err := r.pool.Exec(ctx, query,
		t.ID,
		t.Version,
		t.Game,
		t.SectionType,
		t.Section,
		t.Quantity,
		t.BasePrice,
		t.ServiceFee,
		t.ProcessingFee,
		t.TotalPrice,
		t.Status,
		t.AdminNotes,
		t.SpecialRequests,
		t.LastUpdated,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		var exists bool
		if err := r.pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM tickets WHERE id = $1)`, t.ID).Scan(&exists); err != nil {
			return err
		}
		if !exists {
			return domain.ErrTicketNotFound
		}
		return domain.ErrVersionConflict
	}
	t.Version++
	return nil
}

// Delete permanently deletes a ticket
func (r *PostgresTicketRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM tickets WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrTicketNotFound
	}
	return nil
}

// ListByUser lists the tickets of one user, newest first
func (r *PostgresTicketRepository) ListByUser(ctx context.Context, userID string) ([]*domain.Ticket, error) {
	return r.List(ctx, domain.TicketFilter{UserID: userID})
}

// List lists tickets matching filter, newest first
func (r *PostgresTicketRepository) List(ctx context.Context, filter domain.TicketFilter) ([]*domain.Ticket, error) {
	var conditions []string
	var args []interface{}
	argIndex := 1

	if filter.Status != "" {
		conditions = append(conditions, fmt.Sprintf("status = $%d", argIndex))
		args = append(args, filter.Status)
		argIndex++
	}
	if filter.SectionType != "" {
		conditions = append(conditions, fmt.Sprintf("section_type = $%d", argIndex))
		args = append(args, filter.SectionType)
		argIndex++
	}
	if filter.UserID != "" {
		conditions = append(conditions, fmt.Sprintf("user_id = $%d", argIndex))
		args = append(args, filter.UserID)
	}

	query := `SELECT ` + ticketColumns + ` FROM tickets`
	if len(conditions) > 0 {
		query += ` WHERE ` + strings.Join(conditions, " AND ")
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tickets := make([]*domain.Ticket, 0)
	for rows.Next() {
		t, err := scanTicket(rows)
		if err != nil {
			return nil, err
		}
		tickets = append(tickets, t)
	}
	return tickets, rows.Err()
}

func scanTicket(row pgx.Row) (*domain.Ticket, error) {
	t := &domain.Ticket{}
	err := row.Scan(
		&t.ID,
		&t.UserID,
		&t.Game,
		&t.SectionType,
		&t.Section,
		&t.Quantity,
		&t.BasePrice,
		&t.ServiceFee,
		&t.ProcessingFee,
		&t.TotalPrice,
		&t.Status,
		&t.AdminNotes,
		&t.SpecialRequests,
		&t.Version,
		&t.CreatedAt,
		&t.LastUpdated,
	)
	if err != nil {
		return nil, err
	}
	return t, nil
}
