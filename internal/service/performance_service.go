package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/helpdeskops/perf-api/internal/dto"
	"github.com/helpdeskops/perf-api/internal/models"
	appErrors "github.com/helpdeskops/perf-api/pkg/errors"
	"github.com/helpdeskops/perf-api/pkg/export"
	"github.com/helpdeskops/perf-api/pkg/workhours"
)

type agentDirectory interface {
	List(ctx context.Context) ([]models.Agent, error)
	FindByID(ctx context.Context, id int64) (*models.Agent, error)
	SearchByName(ctx context.Context, term string) ([]models.Agent, error)
	TicketStats(ctx context.Context) ([]models.AgentTicketStats, error)
}

type ticketStore interface {
	ListCreatedInRange(ctx context.Context, start, end time.Time) ([]models.TicketRecord, error)
	ListResolvedInRange(ctx context.Context, start, end time.Time) ([]models.TicketRecord, error)
}

type pointTableStore interface {
	List(ctx context.Context) ([]models.SubCategory, error)
}

// PerformanceService computes agent statistics for a reporting period.
// Every call recomputes from a full scan of the period's tickets; nothing
// is memoized across requests.
type PerformanceService struct {
	agents   agentDirectory
	tickets  ticketStore
	table    *pointTable
	metrics  *MetricsService
	logger   *zap.Logger
	policy   ScoringPolicy
	calendar *workhours.Calendar
	loc      *time.Location
	now      func() time.Time

	csv *export.CSVExporter
	pdf *export.PDFExporter
}

// PerformanceServiceParams groups constructor dependencies.
type PerformanceServiceParams struct {
	Agents        agentDirectory
	Tickets       ticketStore
	SubCategories pointTableStore
	Cache         *CacheService
	Metrics       *MetricsService
	Logger        *zap.Logger
	Policy        ScoringPolicy
	Location      *time.Location
}

// NewPerformanceService constructs the service with sane defaults.
func NewPerformanceService(params PerformanceServiceParams) *PerformanceService {
	logger := params.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	loc := params.Location
	if loc == nil {
		loc = time.UTC
	}
	return &PerformanceService{
		agents:   params.Agents,
		tickets:  params.Tickets,
		table:    newPointTable(params.SubCategories, params.Cache, params.Metrics, logger),
		metrics:  params.Metrics,
		logger:   logger,
		policy:   params.Policy,
		calendar: workhours.NewCalendar(loc),
		loc:      loc,
		now:      time.Now,
	}
}

// ScoresByAgent returns each agent's difficulty-weighted point score for the
// requested month next to the previous month's score. Points come from the
// sub-category table; only resolved tickets count.
func (s *PerformanceService) ScoresByAgent(ctx context.Context, q dto.PeriodQuery) ([]dto.AgentScoreComparison, error) {
	period := models.ResolvePeriod(q.Mois, q.Annee, s.now(), s.loc)
	previous := period.Previous(s.now(), s.loc)

	classifier, err := s.loadClassifier(ctx)
	if err != nil {
		return nil, err
	}

	current, err := s.pointSums(ctx, period, classifier)
	if err != nil {
		return nil, err
	}
	last, err := s.pointSums(ctx, previous, classifier)
	if err != nil {
		return nil, err
	}

	seen := make(map[int64]string, len(current.names)+len(last.names))
	for id, name := range current.names {
		seen[id] = name
	}
	for id, name := range last.names {
		if _, ok := seen[id]; !ok {
			seen[id] = name
		}
	}

	scores := make([]dto.AgentScoreComparison, 0, len(seen))
	for id, name := range seen {
		scores = append(scores, dto.AgentScoreComparison{
			AgentID:     id,
			AgentName:   name,
			MoisActuel:  current.points[id],
			MoisDernier: last.points[id],
		})
	}
	sort.Slice(scores, func(i, j int) bool {
		if scores[i].MoisActuel != scores[j].MoisActuel {
			return scores[i].MoisActuel > scores[j].MoisActuel
		}
		return scores[i].AgentID < scores[j].AgentID
	})
	return scores, nil
}

type agentPointSums struct {
	points map[int64]int
	names  map[int64]string
}

func (s *PerformanceService) pointSums(ctx context.Context, period models.Period, classifier *Classifier) (agentPointSums, error) {
	sums := agentPointSums{points: map[int64]int{}, names: map[int64]string{}}

	tickets, err := s.loadResolved(ctx, period)
	if err != nil {
		return sums, err
	}

	for _, ticket := range tickets {
		if !ticket.AgentID.Valid {
			continue
		}
		id := ticket.AgentID.Int64
		sums.points[id] += classifier.Points(ticket.SubCategory.String)
		if _, ok := sums.names[id]; !ok {
			sums.names[id] = ticket.AgentName()
		}
	}
	return sums, nil
}

// DistributionByAgent returns how the period's assigned tickets spread over
// agents, as absolute counts and percentages of the period total.
func (s *PerformanceService) DistributionByAgent(ctx context.Context, q dto.PeriodQuery) ([]dto.AgentShare, error) {
	period := models.ResolvePeriod(q.Mois, q.Annee, s.now(), s.loc)

	agents, err := s.agents.List(ctx)
	if err != nil {
		return nil, err
	}
	tickets, err := s.loadCreated(ctx, period)
	if err != nil {
		return nil, err
	}

	counts := make(map[int64]int)
	total := 0
	for _, ticket := range tickets {
		if !ticket.Assigned() {
			continue
		}
		counts[ticket.AgentID.Int64]++
		total++
	}

	shares := make([]dto.AgentShare, 0, len(counts))
	for _, agent := range agents {
		count, ok := counts[agent.ID]
		if !ok {
			continue
		}
		shares = append(shares, dto.AgentShare{
			AgentID:     agent.ID,
			AgentName:   agent.FullName(),
			Nombre:      count,
			Pourcentage: round2(float64(count) / float64(total) * 100),
		})
	}
	return shares, nil
}

// MonthlySummary aggregates the period's totals, resolution rate and the
// per-tier breakdown of resolved tickets.
func (s *PerformanceService) MonthlySummary(ctx context.Context, q dto.PeriodQuery) (*dto.MonthlySummary, error) {
	period := models.ResolvePeriod(q.Mois, q.Annee, s.now(), s.loc)

	classifier, err := s.loadClassifier(ctx)
	if err != nil {
		return nil, err
	}
	tickets, err := s.loadCreated(ctx, period)
	if err != nil {
		return nil, err
	}

	summary := &dto.MonthlySummary{}
	for _, ticket := range tickets {
		if !ticket.Assigned() {
			continue
		}
		summary.TotalTicketsRepartis++

		if !ticket.Status.Resolved() || !ticket.ResolvedAt.Valid || !period.Contains(ticket.ResolvedAt.Time) {
			continue
		}
		summary.TotalTicketsResolus++

		switch classifier.Tier(ticket.SubCategory.String) {
		case models.TierEasy:
			summary.Repartition.NbFacile++
		case models.TierMedium:
			summary.Repartition.NbMoyen++
		default:
			summary.Repartition.NbDifficile++
		}
	}

	if summary.TotalTicketsRepartis > 0 {
		summary.TauxResolution = round2(float64(summary.TotalTicketsResolus) / float64(summary.TotalTicketsRepartis) * 100)
	}
	return summary, nil
}

// Search finds agents by id or name substring and returns their full metric
// snapshots for the requested period. No match is a NotFound error.
func (s *PerformanceService) Search(ctx context.Context, term string, q dto.PeriodQuery) ([]dto.AgentMetrics, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "terme is required")
	}

	var (
		matched []models.Agent
		err     error
	)
	if id, convErr := strconv.ParseInt(term, 10, 64); convErr == nil {
		agent, findErr := s.agents.FindByID(ctx, id)
		if findErr != nil {
			if errors.Is(findErr, sql.ErrNoRows) {
				return nil, appErrors.Clone(appErrors.ErrNotFound, "agent not found")
			}
			return nil, findErr
		}
		matched = []models.Agent{*agent}
	} else {
		matched, err = s.agents.SearchByName(ctx, term)
		if err != nil {
			return nil, err
		}
		if len(matched) == 0 {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "agent not found")
		}
	}

	period := models.ResolvePeriod(q.Mois, q.Annee, s.now(), s.loc)
	classifier, err := s.loadClassifier(ctx)
	if err != nil {
		return nil, err
	}
	tickets, err := s.loadCreated(ctx, period)
	if err != nil {
		return nil, err
	}

	results := make([]dto.AgentMetrics, 0, len(matched))
	for _, agent := range matched {
		results = append(results, ComputeAgentMetrics(agent, tickets, period, classifier, s.calendar, s.policy))
	}
	return results, nil
}

// AgentStats returns the all-time resolved-over-assigned tally per agent.
func (s *PerformanceService) AgentStats(ctx context.Context) ([]dto.AgentStats, error) {
	start := time.Now()
	rows, err := s.agents.TicketStats(ctx)
	if err != nil {
		return nil, err
	}
	if s.metrics != nil {
		s.metrics.ObserveDBQuery("agent_ticket_stats", time.Since(start))
	}

	stats := make([]dto.AgentStats, 0, len(rows))
	for _, row := range rows {
		stats = append(stats, dto.AgentStats{
			ID:              row.ID,
			Nom:             row.Name,
			Poste:           row.Function,
			TicketsRealises: fmt.Sprintf("%d/%d", row.Resolved, row.Total),
		})
	}
	return stats, nil
}

// ExportFile is a rendered report ready to stream.
type ExportFile struct {
	Bytes       []byte
	ContentType string
	Filename    string
}

// Export renders the monthly performance report as CSV or PDF.
func (s *PerformanceService) Export(ctx context.Context, q dto.PeriodQuery, format string) (*ExportFile, error) {
	period := models.ResolvePeriod(q.Mois, q.Annee, s.now(), s.loc)

	agents, err := s.agents.List(ctx)
	if err != nil {
		return nil, err
	}
	classifier, err := s.loadClassifier(ctx)
	if err != nil {
		return nil, err
	}
	tickets, err := s.loadCreated(ctx, period)
	if err != nil {
		return nil, err
	}

	headers := []string{"Agent", "Poste", "Assignes", "Resolus", "Taux", "Taux rapide", "Score"}
	data := export.Dataset{Headers: headers}
	for _, agent := range agents {
		m := ComputeAgentMetrics(agent, tickets, period, classifier, s.calendar, s.policy)
		data.Rows = append(data.Rows, map[string]string{
			"Agent":       m.AgentName,
			"Poste":       m.Role,
			"Assignes":    strconv.Itoa(m.AssignedCount),
			"Resolus":     strconv.Itoa(m.ResolvedCount),
			"Taux":        fmt.Sprintf("%.2f", m.RealizationRate),
			"Taux rapide": fmt.Sprintf("%.2f", m.QuickResolutionRate),
			"Score":       strconv.Itoa(m.PerformanceScore),
		})
	}

	title := fmt.Sprintf("performance %04d-%02d", period.Year, int(period.Month))
	base := fmt.Sprintf("performance-%04d-%02d", period.Year, int(period.Month))

	switch strings.ToLower(format) {
	case "", "csv":
		if s.csv == nil {
			s.csv = export.NewCSVExporter()
		}
		payload, err := s.csv.Render(data)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "render csv report")
		}
		return &ExportFile{Bytes: payload, ContentType: "text/csv", Filename: base + ".csv"}, nil
	case "pdf":
		if s.pdf == nil {
			s.pdf = export.NewPDFExporter()
		}
		payload, err := s.pdf.Render(data, title)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "render pdf report")
		}
		return &ExportFile{Bytes: payload, ContentType: "application/pdf", Filename: base + ".pdf"}, nil
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, "format must be csv or pdf")
	}
}

func (s *PerformanceService) loadClassifier(ctx context.Context) (*Classifier, error) {
	return s.table.Classifier(ctx)
}

func (s *PerformanceService) loadCreated(ctx context.Context, period models.Period) ([]models.TicketRecord, error) {
	start := time.Now()
	tickets, err := s.tickets.ListCreatedInRange(ctx, period.Start, period.End)
	if err != nil {
		return nil, err
	}
	if s.metrics != nil {
		s.metrics.ObserveDBQuery("tickets_created_in_range", time.Since(start))
	}
	return tickets, nil
}

func (s *PerformanceService) loadResolved(ctx context.Context, period models.Period) ([]models.TicketRecord, error) {
	start := time.Now()
	tickets, err := s.tickets.ListResolvedInRange(ctx, period.Start, period.End)
	if err != nil {
		return nil, err
	}
	if s.metrics != nil {
		s.metrics.ObserveDBQuery("tickets_resolved_in_range", time.Since(start))
	}
	return tickets, nil
}

func round2(value float64) float64 {
	return math.Round(value*100) / 100
}
