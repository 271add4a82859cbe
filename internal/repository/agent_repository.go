package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/helpdeskops/perf-api/internal/models"
)

// AgentRepository reads technicians from the legacy tusers table.
type AgentRepository struct {
	db *sqlx.DB
}

// NewAgentRepository instantiates the repository.
func NewAgentRepository(db *sqlx.DB) *AgentRepository {
	return &AgentRepository{db: db}
}

const agentColumns = "id, firstname, lastname, role, function, phone, mail"

// List returns every agent ordered by last name.
func (r *AgentRepository) List(ctx context.Context) ([]models.Agent, error) {
	var agents []models.Agent
	query := fmt.Sprintf("SELECT %s FROM tusers ORDER BY lastname, firstname", agentColumns)
	if err := r.db.SelectContext(ctx, &agents, query); err != nil {
		return nil, fmt.Errorf("query agents: %w", err)
	}
	return agents, nil
}

// FindByID loads one agent. sql.ErrNoRows propagates to the caller.
func (r *AgentRepository) FindByID(ctx context.Context, id int64) (*models.Agent, error) {
	var agent models.Agent
	query := fmt.Sprintf("SELECT %s FROM tusers WHERE id = $1", agentColumns)
	if err := r.db.GetContext(ctx, &agent, query, id); err != nil {
		return nil, err
	}
	return &agent, nil
}

// SearchByName matches agents whose combined name contains term,
// case-insensitively.
func (r *AgentRepository) SearchByName(ctx context.Context, term string) ([]models.Agent, error) {
	var agents []models.Agent
	query := fmt.Sprintf(
		"SELECT %s FROM tusers WHERE LOWER(firstname || ' ' || lastname) LIKE '%%' || LOWER($1) || '%%' ORDER BY lastname, firstname",
		agentColumns,
	)
	if err := r.db.SelectContext(ctx, &agents, query, term); err != nil {
		return nil, fmt.Errorf("search agents: %w", err)
	}
	return agents, nil
}

// FindCredentials loads an agent together with the stored password hash.
func (r *AgentRepository) FindCredentials(ctx context.Context, id int64) (*models.AgentCredentials, error) {
	var creds models.AgentCredentials
	query := fmt.Sprintf("SELECT %s, password FROM tusers WHERE id = $1", agentColumns)
	if err := r.db.GetContext(ctx, &creds, query, id); err != nil {
		return nil, err
	}
	return &creds, nil
}

// TicketStats returns the all-time resolved/total tally per agent.
func (r *AgentRepository) TicketStats(ctx context.Context) ([]models.AgentTicketStats, error) {
	query := `SELECT u.id,
        u.firstname || ' ' || u.lastname AS name,
        u.function,
        COUNT(i.id) AS total,
        SUM(CASE WHEN i.state IN ($1, $2) THEN 1 ELSE 0 END) AS resolved
        FROM tusers u
        LEFT JOIN tincidents i ON i.technician = u.id
        GROUP BY u.id, u.firstname, u.lastname, u.function
        ORDER BY u.id`

	var stats []models.AgentTicketStats
	if err := r.db.SelectContext(ctx, &stats, query, int(models.StatusResolved), int(models.StatusClosed)); err != nil {
		return nil, fmt.Errorf("query agent ticket stats: %w", err)
	}
	return stats, nil
}
