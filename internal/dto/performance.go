package dto

// PeriodQuery carries the optional reporting month. Absent values default to
// the current month; out-of-range values are rejected before any computation.
type PeriodQuery struct {
	Mois  int `form:"mois" validate:"omitempty,min=1,max=12"`
	Annee int `form:"annee" validate:"omitempty,min=2000"`
}

// AgentScoreComparison is one row of GET /performance/scores-agents: the
// difficulty-weighted point score for the requested month next to the
// previous month's.
type AgentScoreComparison struct {
	AgentID     int64  `json:"agentId"`
	AgentName   string `json:"agentName"`
	MoisActuel  int    `json:"moisActuel"`
	MoisDernier int    `json:"moisDernier"`
}

// AgentShare is one row of GET /performance/tickets-repartis-par-agent.
type AgentShare struct {
	AgentID     int64   `json:"agentId"`
	AgentName   string  `json:"agentName"`
	Nombre      int     `json:"nombre"`
	Pourcentage float64 `json:"pourcentage"`
}

// TierBreakdown counts resolved tickets per difficulty tier.
type TierBreakdown struct {
	NbFacile    int `json:"NbFacile"`
	NbMoyen     int `json:"NbMoyen"`
	NbDifficile int `json:"NbDifficile"`
}

// MonthlySummary is the payload of GET /performance/tickets-realises-par-mois.
type MonthlySummary struct {
	TotalTicketsRepartis int           `json:"totalTicketsRepartis"`
	TotalTicketsResolus  int           `json:"totalTicketsResolus"`
	TauxResolution       float64       `json:"tauxResolution"`
	Repartition          TierBreakdown `json:"repartition"`
}

// BestAgent identifies the leading agent of a ranking tier. A missing tier
// is reported with the documented no-data sentinel (id -1, score -1), never
// as an error.
type BestAgent struct {
	ID     int64   `json:"id"`
	Nom    string  `json:"nom"`
	Prenom string  `json:"prenom"`
	Score  float64 `json:"score"`
}

// Ranking is the payload of GET /performance/classement.
type Ranking struct {
	Facile    BestAgent `json:"facile"`
	Moyen     BestAgent `json:"moyen"`
	Difficile BestAgent `json:"difficile"`
	Global    BestAgent `json:"global"`
}

// AgentMetrics is the full computed projection for one agent and one period.
type AgentMetrics struct {
	AgentID              int64   `json:"agentId"`
	AgentName            string  `json:"agentName"`
	Role                 string  `json:"role"`
	AssignedCount        int     `json:"assignedCount"`
	ResolvedCount        int     `json:"resolvedCount"`
	RealizationRate      float64 `json:"realizationRate"`
	QuickResolutionRate  float64 `json:"quickResolutionRate"`
	VolumeScore          float64 `json:"volumeScore"`
	PerformanceScore     int     `json:"performanceScore"`
	ResolvedOverAssigned string  `json:"nombre_de_tickets_realises"`
}

// AgentStats is one row of GET /agents/stats, the all-time tally.
type AgentStats struct {
	ID              int64  `json:"id"`
	Nom             string `json:"nom"`
	Poste           string `json:"poste"`
	TicketsRealises string `json:"nombre_de_tickets_realises"`
}
