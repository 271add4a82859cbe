package service

import (
	"fmt"
	"math"
	"time"

	"github.com/helpdeskops/perf-api/internal/dto"
	"github.com/helpdeskops/perf-api/internal/models"
	"github.com/helpdeskops/perf-api/pkg/config"
	"github.com/helpdeskops/perf-api/pkg/workhours"
)

// ScoringPolicy is the named set of weights and thresholds behind every
// performance figure. The shipped preset weighs realization 50%, quick
// resolution 40% and volume 10%, with business-hour quick ceilings per tier.
// Several weight sets circulated historically; only the configured one runs.
type ScoringPolicy struct {
	RealizationWeight float64
	QuickWeight       float64
	VolumeWeight      float64
	VolumeNorm        int

	// Business-hour ceilings for a resolved ticket to count as quick.
	QuickHours map[models.Tier]float64

	// Wall-clock ceiling used by ranking tier scores.
	RankingQuickThreshold time.Duration
}

// PolicyFromConfig builds the active policy, applying the balanced preset
// for any unset value.
func PolicyFromConfig(cfg config.PerformanceConfig) ScoringPolicy {
	policy := ScoringPolicy{
		RealizationWeight:     cfg.RealizationWeight,
		QuickWeight:           cfg.QuickWeight,
		VolumeWeight:          cfg.VolumeWeight,
		VolumeNorm:            cfg.VolumeNorm,
		RankingQuickThreshold: cfg.RankingQuickThreshold,
		QuickHours: map[models.Tier]float64{
			models.TierEasy:   cfg.QuickEasyHours,
			models.TierMedium: cfg.QuickMediumHours,
			models.TierHard:   cfg.QuickHardHours,
		},
	}
	if policy.RealizationWeight <= 0 {
		policy.RealizationWeight = 0.5
	}
	if policy.QuickWeight <= 0 {
		policy.QuickWeight = 0.4
	}
	if policy.VolumeWeight <= 0 {
		policy.VolumeWeight = 0.1
	}
	if policy.VolumeNorm <= 0 {
		policy.VolumeNorm = 100
	}
	if policy.RankingQuickThreshold <= 0 {
		policy.RankingQuickThreshold = 24 * time.Hour
	}
	for tier, fallback := range map[models.Tier]float64{
		models.TierEasy:   6,
		models.TierMedium: 18,
		models.TierHard:   24,
	} {
		if policy.QuickHours[tier] <= 0 {
			policy.QuickHours[tier] = fallback
		}
	}
	return policy
}

// VolumeScore normalizes a resolved count into [0, 1].
func (p ScoringPolicy) VolumeScore(resolved int) float64 {
	return math.Min(float64(resolved)/float64(p.VolumeNorm), 1)
}

// Composite applies the weighted formula without rounding.
func (p ScoringPolicy) Composite(realization, quick, volume float64) float64 {
	return 5 * (p.RealizationWeight*realization + p.QuickWeight*quick + p.VolumeWeight*volume)
}

// Score produces the rounded 0-5 performance score.
func (p ScoringPolicy) Score(realization, quick float64, resolved int) int {
	score := int(math.Round(p.Composite(realization, quick, p.VolumeScore(resolved))))
	if score < 0 {
		return 0
	}
	if score > 5 {
		return 5
	}
	return score
}

// QuickResolved reports whether a resolved ticket met the business-hour
// ceiling of its tier. Tickets with inconsistent timestamps never qualify.
func (p ScoringPolicy) QuickResolved(ticket models.TicketRecord, tier models.Tier, cal *workhours.Calendar) bool {
	if !ticket.ResolutionValid() {
		return false
	}
	return cal.Elapsed(ticket.CreatedAt, ticket.ResolvedAt.Time) <= p.QuickHours[tier]
}

// ComputeAgentMetrics aggregates one agent's tickets over a period into the
// reporting snapshot. The ticket slice is the full set created inside the
// period; filtering per agent happens here, assignment excluded counts and
// quick classification follow the active policy.
func ComputeAgentMetrics(
	agent models.Agent,
	tickets []models.TicketRecord,
	period models.Period,
	classifier *Classifier,
	cal *workhours.Calendar,
	policy ScoringPolicy,
) dto.AgentMetrics {
	assigned := 0
	resolved := 0
	quick := 0

	for _, ticket := range tickets {
		if !ticket.AgentID.Valid || ticket.AgentID.Int64 != agent.ID {
			continue
		}
		if !ticket.Assigned() {
			continue
		}
		assigned++

		// Both creation and resolution must fall inside the window.
		if !ticket.Status.Resolved() || !ticket.ResolvedAt.Valid || !period.Contains(ticket.ResolvedAt.Time) {
			continue
		}
		resolved++

		tier := classifier.Tier(ticket.SubCategory.String)
		if policy.QuickResolved(ticket, tier, cal) {
			quick++
		}
	}

	realizationRate := 0.0
	if assigned > 0 {
		realizationRate = float64(resolved) / float64(assigned)
	}
	quickRate := 0.0
	if resolved > 0 {
		quickRate = float64(quick) / float64(resolved)
	}

	return dto.AgentMetrics{
		AgentID:              agent.ID,
		AgentName:            agent.FullName(),
		Role:                 agent.Function,
		AssignedCount:        assigned,
		ResolvedCount:        resolved,
		RealizationRate:      realizationRate,
		QuickResolutionRate:  quickRate,
		VolumeScore:          policy.VolumeScore(resolved),
		PerformanceScore:     policy.Score(realizationRate, quickRate, resolved),
		ResolvedOverAssigned: fmt.Sprintf("%d/%d", resolved, assigned),
	}
}
