package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/helpdeskops/perf-api/internal/models"
)

// TicketRepository reads incident rows from the legacy tincidents table,
// joined with technician and sub-category data. All queries are read-only
// projections; the API never mutates tickets.
type TicketRepository struct {
	db *sqlx.DB
}

// NewTicketRepository instantiates the repository.
func NewTicketRepository(db *sqlx.DB) *TicketRepository {
	return &TicketRepository{db: db}
}

const ticketProjection = `SELECT i.id,
        i.technician AS agent_id,
        u.firstname AS agent_firstname,
        u.lastname AS agent_lastname,
        sc.name AS sub_category,
        i.state,
        i.date_create,
        i.date_res
        FROM tincidents i
        LEFT JOIN tusers u ON u.id = i.technician
        LEFT JOIN tsubcat sc ON sc.id = i.category`

// ListCreatedInRange returns every ticket created inside [start, end],
// assigned or not.
func (r *TicketRepository) ListCreatedInRange(ctx context.Context, start, end time.Time) ([]models.TicketRecord, error) {
	query := ticketProjection + " WHERE i.date_create BETWEEN $1 AND $2 ORDER BY i.date_create"

	var tickets []models.TicketRecord
	if err := r.db.SelectContext(ctx, &tickets, query, start, end); err != nil {
		return nil, fmt.Errorf("query tickets created in range: %w", err)
	}
	return tickets, nil
}

// ListResolvedInRange returns tickets whose resolution landed inside
// [start, end] and whose state marks them resolved.
func (r *TicketRepository) ListResolvedInRange(ctx context.Context, start, end time.Time) ([]models.TicketRecord, error) {
	query := ticketProjection + " WHERE i.state IN ($1, $2) AND i.date_res BETWEEN $3 AND $4 ORDER BY i.date_res"

	var tickets []models.TicketRecord
	if err := r.db.SelectContext(ctx, &tickets, query,
		int(models.StatusResolved), int(models.StatusClosed), start, end); err != nil {
		return nil, fmt.Errorf("query tickets resolved in range: %w", err)
	}
	return tickets, nil
}
