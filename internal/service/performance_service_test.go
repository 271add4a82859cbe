package service

import (
	"context"
	"database/sql"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/helpdeskops/perf-api/internal/dto"
	"github.com/helpdeskops/perf-api/internal/models"
	"github.com/helpdeskops/perf-api/pkg/config"
	appErrors "github.com/helpdeskops/perf-api/pkg/errors"
)

type stubAgents struct {
	list  []models.Agent
	stats []models.AgentTicketStats
}

func (s stubAgents) TicketStats(ctx context.Context) ([]models.AgentTicketStats, error) {
	return s.stats, nil
}

func (s stubAgents) List(ctx context.Context) ([]models.Agent, error) {
	return s.list, nil
}

func (s stubAgents) FindByID(ctx context.Context, id int64) (*models.Agent, error) {
	for _, agent := range s.list {
		if agent.ID == id {
			a := agent
			return &a, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (s stubAgents) SearchByName(ctx context.Context, term string) ([]models.Agent, error) {
	var matched []models.Agent
	for _, agent := range s.list {
		if strings.Contains(strings.ToLower(agent.FullName()), strings.ToLower(term)) {
			matched = append(matched, agent)
		}
	}
	return matched, nil
}

type stubTickets struct {
	created  map[string][]models.TicketRecord
	resolved map[string][]models.TicketRecord
}

func monthKey(t time.Time) string { return t.Format("2006-01") }

func (s stubTickets) ListCreatedInRange(ctx context.Context, start, end time.Time) ([]models.TicketRecord, error) {
	return s.created[monthKey(start)], nil
}

func (s stubTickets) ListResolvedInRange(ctx context.Context, start, end time.Time) ([]models.TicketRecord, error) {
	return s.resolved[monthKey(start)], nil
}

type stubSubcats struct{}

func (stubSubcats) List(ctx context.Context) ([]models.SubCategory, error) {
	return []models.SubCategory{
		{ID: 1, Name: "Demande de RIB", Points: 10},
		{ID: 2, Name: "Configuration Réseau", Points: 20},
		{ID: 3, Name: "Réparation Matériel", Points: 30},
	}, nil
}

func perfTicket(id, agentID int64, name, sub string, status models.TicketStatus, created time.Time, resolved time.Time) models.TicketRecord {
	t := models.TicketRecord{
		ID:          id,
		Status:      status,
		CreatedAt:   created,
		SubCategory: sql.NullString{String: sub, Valid: sub != ""},
	}
	if agentID > 0 {
		parts := strings.SplitN(name, " ", 2)
		t.AgentID = sql.NullInt64{Int64: agentID, Valid: true}
		t.AgentFirstName = sql.NullString{String: parts[0], Valid: true}
		if len(parts) > 1 {
			t.AgentLastName = sql.NullString{String: parts[1], Valid: true}
		}
	}
	if !resolved.IsZero() {
		t.ResolvedAt = sql.NullTime{Time: resolved, Valid: true}
	}
	return t
}

func newPerformanceFixture(t *testing.T) *PerformanceService {
	t.Helper()

	march := func(day, hour int) time.Time {
		return time.Date(2024, time.March, day, hour, 0, 0, 0, time.UTC)
	}
	february := func(day, hour int) time.Time {
		return time.Date(2024, time.February, day, hour, 0, 0, 0, time.UTC)
	}

	tickets := stubTickets{
		created: map[string][]models.TicketRecord{
			"2024-03": {
				perfTicket(1, 1, "Alice Martin", "Demande de RIB", models.StatusResolved, march(4, 9), march(4, 10)),
				perfTicket(2, 1, "Alice Martin", "Configuration Réseau", models.StatusResolved, march(5, 9), march(5, 15)),
				perfTicket(3, 1, "Alice Martin", "Réparation Matériel", models.StatusOpen, march(6, 9), time.Time{}),
				perfTicket(4, 2, "Bruno Petit", "Demande de RIB", models.StatusResolved, march(28, 9), time.Date(2024, time.April, 2, 10, 0, 0, 0, time.UTC)),
				perfTicket(5, 0, "", "Demande de RIB", models.StatusUnassigned, march(7, 9), time.Time{}),
			},
		},
		resolved: map[string][]models.TicketRecord{
			"2024-03": {
				perfTicket(1, 1, "Alice Martin", "Demande de RIB", models.StatusResolved, march(4, 9), march(4, 10)),
				perfTicket(2, 1, "Alice Martin", "Réparation Matériel", models.StatusClosed, march(5, 9), march(5, 15)),
				perfTicket(6, 2, "Bruno Petit", "Configuration Réseau", models.StatusResolved, march(11, 9), march(11, 14)),
			},
			"2024-02": {
				perfTicket(7, 2, "Bruno Petit", "Demande de RIB", models.StatusResolved, february(6, 9), february(6, 11)),
				perfTicket(8, 3, "Chloé Durand", "Réparation Matériel", models.StatusResolved, february(8, 9), february(9, 11)),
			},
		},
	}

	svc := NewPerformanceService(PerformanceServiceParams{
		Agents: stubAgents{
			list: []models.Agent{
				{ID: 1, FirstName: "Alice", LastName: "Martin", Function: "Technicien"},
				{ID: 2, FirstName: "Bruno", LastName: "Petit", Function: "Technicien"},
				{ID: 3, FirstName: "Chloé", LastName: "Durand", Function: "Technicien"},
			},
			stats: []models.AgentTicketStats{
				{ID: 1, Name: "Alice Martin", Function: "Technicien", Total: 40, Resolved: 31},
				{ID: 2, Name: "Bruno Petit", Function: "Technicien", Total: 25, Resolved: 12},
			},
		},
		Tickets:       tickets,
		SubCategories: stubSubcats{},
		Policy:        PolicyFromConfig(config.PerformanceConfig{}),
	})
	svc.now = func() time.Time {
		return time.Date(2024, time.April, 15, 12, 0, 0, 0, time.UTC)
	}
	return svc
}

func TestPerformanceServiceScoresByAgent(t *testing.T) {
	svc := newPerformanceFixture(t)

	scores, err := svc.ScoresByAgent(context.Background(), dto.PeriodQuery{Mois: 3, Annee: 2024})
	require.NoError(t, err)
	require.Len(t, scores, 3)

	assert.Equal(t, dto.AgentScoreComparison{AgentID: 1, AgentName: "Alice Martin", MoisActuel: 40, MoisDernier: 0}, scores[0])
	assert.Equal(t, dto.AgentScoreComparison{AgentID: 2, AgentName: "Bruno Petit", MoisActuel: 20, MoisDernier: 10}, scores[1])
	assert.Equal(t, dto.AgentScoreComparison{AgentID: 3, AgentName: "Chloé Durand", MoisActuel: 0, MoisDernier: 30}, scores[2])
}

func TestPerformanceServiceDistributionByAgent(t *testing.T) {
	svc := newPerformanceFixture(t)

	shares, err := svc.DistributionByAgent(context.Background(), dto.PeriodQuery{Mois: 3, Annee: 2024})
	require.NoError(t, err)

	// agent 3 received nothing in March and the unassigned ticket is excluded
	require.Len(t, shares, 2)
	assert.Equal(t, dto.AgentShare{AgentID: 1, AgentName: "Alice Martin", Nombre: 3, Pourcentage: 75}, shares[0])
	assert.Equal(t, dto.AgentShare{AgentID: 2, AgentName: "Bruno Petit", Nombre: 1, Pourcentage: 25}, shares[1])
}

func TestPerformanceServiceMonthlySummary(t *testing.T) {
	svc := newPerformanceFixture(t)

	summary, err := svc.MonthlySummary(context.Background(), dto.PeriodQuery{Mois: 3, Annee: 2024})
	require.NoError(t, err)

	assert.Equal(t, 4, summary.TotalTicketsRepartis)
	// ticket 4 resolved in April falls out of the March window
	assert.Equal(t, 2, summary.TotalTicketsResolus)
	assert.Equal(t, 50.0, summary.TauxResolution)
	assert.Equal(t, dto.TierBreakdown{NbFacile: 1, NbMoyen: 1, NbDifficile: 0}, summary.Repartition)
}

func TestPerformanceServiceSearch(t *testing.T) {
	svc := newPerformanceFixture(t)
	ctx := context.Background()
	q := dto.PeriodQuery{Mois: 3, Annee: 2024}

	t.Run("by id", func(t *testing.T) {
		results, err := svc.Search(ctx, "1", q)
		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, int64(1), results[0].AgentID)
		assert.Equal(t, 3, results[0].AssignedCount)
		assert.Equal(t, 2, results[0].ResolvedCount)
	})

	t.Run("unknown id", func(t *testing.T) {
		_, err := svc.Search(ctx, "99", q)
		require.Error(t, err)
		assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
	})

	t.Run("by name", func(t *testing.T) {
		results, err := svc.Search(ctx, "petit", q)
		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, "Bruno Petit", results[0].AgentName)
	})

	t.Run("no match", func(t *testing.T) {
		_, err := svc.Search(ctx, "nobody", q)
		require.Error(t, err)
		assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
	})

	t.Run("blank term", func(t *testing.T) {
		_, err := svc.Search(ctx, "   ", q)
		require.Error(t, err)
		assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
	})
}

func TestPerformanceServiceAgentStats(t *testing.T) {
	svc := newPerformanceFixture(t)

	stats, err := svc.AgentStats(context.Background())
	require.NoError(t, err)
	require.Len(t, stats, 2)
	assert.Equal(t, dto.AgentStats{ID: 1, Nom: "Alice Martin", Poste: "Technicien", TicketsRealises: "31/40"}, stats[0])
	assert.Equal(t, dto.AgentStats{ID: 2, Nom: "Bruno Petit", Poste: "Technicien", TicketsRealises: "12/25"}, stats[1])
}

func TestPerformanceServiceExport(t *testing.T) {
	svc := newPerformanceFixture(t)
	ctx := context.Background()
	q := dto.PeriodQuery{Mois: 3, Annee: 2024}

	t.Run("csv", func(t *testing.T) {
		file, err := svc.Export(ctx, q, "csv")
		require.NoError(t, err)
		assert.Equal(t, "text/csv", file.ContentType)
		assert.Equal(t, "performance-2024-03.csv", file.Filename)
		assert.Contains(t, string(file.Bytes), "Agent")
		assert.Contains(t, string(file.Bytes), "Alice Martin")
	})

	t.Run("pdf", func(t *testing.T) {
		file, err := svc.Export(ctx, q, "pdf")
		require.NoError(t, err)
		assert.Equal(t, "application/pdf", file.ContentType)
		assert.Equal(t, "performance-2024-03.pdf", file.Filename)
		assert.NotEmpty(t, file.Bytes)
	})

	t.Run("unsupported format", func(t *testing.T) {
		_, err := svc.Export(ctx, q, "xlsx")
		require.Error(t, err)
		assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
	})
}
