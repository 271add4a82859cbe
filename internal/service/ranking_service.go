package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/helpdeskops/perf-api/internal/dto"
	"github.com/helpdeskops/perf-api/internal/models"
)

// rankingFloorYear bounds the backward search for a month with activity.
// The legacy data starts well after this, so the walk always terminates.
const rankingFloorYear = 2000

// RankingService elects the best agent per difficulty tier for a period.
// When a tier has no resolved ticket in the requested month, the service
// walks back month by month until it finds one, independently per tier.
type RankingService struct {
	tickets ticketStore
	table   *pointTable
	metrics *MetricsService
	logger  *zap.Logger
	policy  ScoringPolicy
	loc     *time.Location
	now     func() time.Time
}

// RankingServiceParams groups constructor dependencies.
type RankingServiceParams struct {
	Tickets       ticketStore
	SubCategories pointTableStore
	Cache         *CacheService
	Metrics       *MetricsService
	Logger        *zap.Logger
	Policy        ScoringPolicy
	Location      *time.Location
}

// NewRankingService constructs the service with sane defaults.
func NewRankingService(params RankingServiceParams) *RankingService {
	logger := params.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	loc := params.Location
	if loc == nil {
		loc = time.UTC
	}
	return &RankingService{
		tickets: params.Tickets,
		table:   newPointTable(params.SubCategories, params.Cache, params.Metrics, logger),
		metrics: params.Metrics,
		logger:  logger,
		policy:  params.Policy,
		loc:     loc,
		now:     time.Now,
	}
}

// candidate accumulates one agent's resolved tickets within one tier.
type candidate struct {
	id       int64
	nom      string
	prenom   string
	resolved int
	quick    int
}

func (c candidate) score(policy ScoringPolicy) float64 {
	quickRate := float64(c.quick) / float64(c.resolved)
	return round2(policy.Composite(1, quickRate, policy.VolumeScore(c.resolved)))
}

// tierBoard tallies candidates for one tier in first-appearance order, so a
// tie on score keeps the earliest leader.
type tierBoard struct {
	byAgent map[int64]*candidate
	order   []int64
}

func newTierBoard() *tierBoard {
	return &tierBoard{byAgent: make(map[int64]*candidate)}
}

func (b *tierBoard) add(ticket models.TicketRecord, quick bool) {
	id := ticket.AgentID.Int64
	c, ok := b.byAgent[id]
	if !ok {
		c = &candidate{
			id:     id,
			nom:    ticket.AgentLastName.String,
			prenom: ticket.AgentFirstName.String,
		}
		b.byAgent[id] = c
		b.order = append(b.order, id)
	}
	c.resolved++
	if quick {
		c.quick++
	}
}

func (b *tierBoard) best(policy ScoringPolicy) (dto.BestAgent, bool) {
	if len(b.order) == 0 {
		return noBestAgent(), false
	}
	var leader dto.BestAgent
	first := true
	for _, id := range b.order {
		c := b.byAgent[id]
		score := c.score(policy)
		if first || score > leader.Score {
			leader = dto.BestAgent{ID: c.id, Nom: c.nom, Prenom: c.prenom, Score: score}
			first = false
		}
	}
	return leader, true
}

func noBestAgent() dto.BestAgent {
	return dto.BestAgent{ID: -1, Score: -1}
}

// Ranking computes the per-tier and global leaders for the requested period.
func (s *RankingService) Ranking(ctx context.Context, q dto.PeriodQuery) (*dto.Ranking, error) {
	period := models.ResolvePeriod(q.Mois, q.Annee, s.now(), s.loc)

	classifier, err := s.table.Classifier(ctx)
	if err != nil {
		return nil, err
	}

	// Months are loaded at most once even when several tiers walk through
	// the same empty stretch.
	loaded := make(map[string][]models.TicketRecord)
	loadMonth := func(p models.Period) ([]models.TicketRecord, error) {
		key := p.Start.Format("2006-01")
		if tickets, ok := loaded[key]; ok {
			return tickets, nil
		}
		start := time.Now()
		tickets, err := s.tickets.ListResolvedInRange(ctx, p.Start, p.End)
		if err != nil {
			return nil, err
		}
		if s.metrics != nil {
			s.metrics.ObserveDBQuery("tickets_resolved_in_range", time.Since(start))
		}
		loaded[key] = tickets
		return tickets, nil
	}

	boardsFor := func(p models.Period) (map[models.Tier]*tierBoard, error) {
		tickets, err := loadMonth(p)
		if err != nil {
			return nil, err
		}
		boards := map[models.Tier]*tierBoard{
			models.TierEasy:   newTierBoard(),
			models.TierMedium: newTierBoard(),
			models.TierHard:   newTierBoard(),
		}
		for _, ticket := range tickets {
			if !ticket.AgentID.Valid || !ticket.ResolutionValid() {
				continue
			}
			quick := ticket.ResolvedAt.Time.Sub(ticket.CreatedAt) <= s.policy.RankingQuickThreshold
			boards[classifier.Tier(ticket.SubCategory.String)].add(ticket, quick)
		}
		return boards, nil
	}

	result := &dto.Ranking{
		Facile:    noBestAgent(),
		Moyen:     noBestAgent(),
		Difficile: noBestAgent(),
		Global:    noBestAgent(),
	}
	assign := func(tier models.Tier, best dto.BestAgent) {
		switch tier {
		case models.TierEasy:
			result.Facile = best
		case models.TierMedium:
			result.Moyen = best
		case models.TierHard:
			result.Difficile = best
		}
	}

	pending := map[models.Tier]bool{
		models.TierEasy:   true,
		models.TierMedium: true,
		models.TierHard:   true,
	}
	globalPending := true

	for p := period; p.Year >= rankingFloorYear; p = p.Previous(s.now(), s.loc) {
		if !globalPending && len(pending) == 0 {
			break
		}
		boards, err := boardsFor(p)
		if err != nil {
			return nil, err
		}
		for tier := range pending {
			if best, ok := boards[tier].best(s.policy); ok {
				assign(tier, best)
				delete(pending, tier)
			}
		}
		if globalPending {
			if best, ok := globalBest(boards, s.policy); ok {
				result.Global = best
				globalPending = false
			}
		}
	}
	return result, nil
}

// globalBest sums each agent's tier scores within one month and keeps the
// agent with the highest total, earliest appearance winning ties.
func globalBest(boards map[models.Tier]*tierBoard, policy ScoringPolicy) (dto.BestAgent, bool) {
	totals := make(map[int64]*dto.BestAgent)
	var order []int64
	for _, tier := range []models.Tier{models.TierEasy, models.TierMedium, models.TierHard} {
		board := boards[tier]
		for _, id := range board.order {
			c := board.byAgent[id]
			entry, ok := totals[id]
			if !ok {
				entry = &dto.BestAgent{ID: c.id, Nom: c.nom, Prenom: c.prenom}
				totals[id] = entry
				order = append(order, id)
			}
			entry.Score = round2(entry.Score + c.score(policy))
		}
	}
	if len(order) == 0 {
		return noBestAgent(), false
	}
	var leader dto.BestAgent
	first := true
	for _, id := range order {
		if first || totals[id].Score > leader.Score {
			leader = *totals[id]
			first = false
		}
	}
	return leader, true
}
