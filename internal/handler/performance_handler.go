package handler

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/helpdeskops/perf-api/internal/dto"
	"github.com/helpdeskops/perf-api/internal/middleware"
	"github.com/helpdeskops/perf-api/internal/service"
	appErrors "github.com/helpdeskops/perf-api/pkg/errors"
	"github.com/helpdeskops/perf-api/pkg/response"
)

type performanceService interface {
	ScoresByAgent(ctx context.Context, q dto.PeriodQuery) ([]dto.AgentScoreComparison, error)
	DistributionByAgent(ctx context.Context, q dto.PeriodQuery) ([]dto.AgentShare, error)
	MonthlySummary(ctx context.Context, q dto.PeriodQuery) (*dto.MonthlySummary, error)
	Search(ctx context.Context, term string, q dto.PeriodQuery) ([]dto.AgentMetrics, error)
	Export(ctx context.Context, q dto.PeriodQuery, format string) (*service.ExportFile, error)
}

type rankingService interface {
	Ranking(ctx context.Context, q dto.PeriodQuery) (*dto.Ranking, error)
}

// PerformanceHandler wires the reporting services to HTTP endpoints.
type PerformanceHandler struct {
	service   performanceService
	ranking   rankingService
	validator *validator.Validate
}

// NewPerformanceHandler constructs the handler.
func NewPerformanceHandler(svc performanceService, ranking rankingService, validate *validator.Validate) *PerformanceHandler {
	if validate == nil {
		validate = validator.New()
	}
	return &PerformanceHandler{service: svc, ranking: ranking, validator: validate}
}

func (h *PerformanceHandler) bindPeriod(c *gin.Context) (dto.PeriodQuery, bool) {
	var q dto.PeriodQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "mois and annee must be numbers"))
		return q, false
	}
	if err := h.validator.Struct(q); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "mois must be 1-12 and annee 2000 or later"))
		return q, false
	}
	return q, true
}

func respondTimed(c *gin.Context, start time.Time, data interface{}) {
	meta := middleware.ExtractMeta(c)
	if meta == nil {
		meta = map[string]interface{}{}
	}
	meta["processing_time_ms"] = time.Since(start).Milliseconds()
	response.JSON(c, http.StatusOK, data, meta)
}

// ScoresAgents godoc
// @Summary Monthly point score per agent with previous month comparison
// @Tags Performance
// @Produce json
// @Param mois query int false "Month (1-12), defaults to current"
// @Param annee query int false "Year, defaults to current"
// @Success 200 {object} response.Envelope
// @Router /performance/scores-agents [get]
func (h *PerformanceHandler) ScoresAgents(c *gin.Context) {
	q, ok := h.bindPeriod(c)
	if !ok {
		return
	}
	start := time.Now()
	scores, err := h.service.ScoresByAgent(c.Request.Context(), q)
	if err != nil {
		response.Error(c, err)
		return
	}
	respondTimed(c, start, scores)
}

// Distribution godoc
// @Summary Share of the month's tickets assigned to each agent
// @Tags Performance
// @Produce json
// @Param mois query int false "Month (1-12), defaults to current"
// @Param annee query int false "Year, defaults to current"
// @Success 200 {object} response.Envelope
// @Router /performance/tickets-repartis-par-agent [get]
func (h *PerformanceHandler) Distribution(c *gin.Context) {
	q, ok := h.bindPeriod(c)
	if !ok {
		return
	}
	start := time.Now()
	shares, err := h.service.DistributionByAgent(c.Request.Context(), q)
	if err != nil {
		response.Error(c, err)
		return
	}
	respondTimed(c, start, shares)
}

// Monthly godoc
// @Summary Monthly totals, resolution rate and per-tier breakdown
// @Tags Performance
// @Produce json
// @Param mois query int false "Month (1-12), defaults to current"
// @Param annee query int false "Year, defaults to current"
// @Success 200 {object} response.Envelope
// @Router /performance/tickets-realises-par-mois [get]
func (h *PerformanceHandler) Monthly(c *gin.Context) {
	q, ok := h.bindPeriod(c)
	if !ok {
		return
	}
	start := time.Now()
	summary, err := h.service.MonthlySummary(c.Request.Context(), q)
	if err != nil {
		response.Error(c, err)
		return
	}
	respondTimed(c, start, summary)
}

// Classement godoc
// @Summary Best agent per difficulty tier plus the overall leader
// @Tags Performance
// @Produce json
// @Param mois query int false "Month (1-12), defaults to current"
// @Param annee query int false "Year, defaults to current"
// @Success 200 {object} response.Envelope
// @Router /performance/classement [get]
func (h *PerformanceHandler) Classement(c *gin.Context) {
	q, ok := h.bindPeriod(c)
	if !ok {
		return
	}
	start := time.Now()
	ranking, err := h.ranking.Ranking(c.Request.Context(), q)
	if err != nil {
		response.Error(c, err)
		return
	}
	respondTimed(c, start, ranking)
}

// Chercher godoc
// @Summary Search agents by id or name and return their metrics
// @Tags Performance
// @Produce json
// @Param terme query string true "Agent id or name fragment"
// @Param mois query int false "Month (1-12), defaults to current"
// @Param annee query int false "Year, defaults to current"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /performance/chercher [get]
func (h *PerformanceHandler) Chercher(c *gin.Context) {
	q, ok := h.bindPeriod(c)
	if !ok {
		return
	}
	term := strings.TrimSpace(c.Query("terme"))
	if term == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "terme is required"))
		return
	}
	start := time.Now()
	results, err := h.service.Search(c.Request.Context(), term, q)
	if err != nil {
		response.Error(c, err)
		return
	}
	respondTimed(c, start, results)
}

// Export godoc
// @Summary Download the monthly performance report
// @Tags Performance
// @Produce octet-stream
// @Param format query string false "csv (default) or pdf"
// @Param mois query int false "Month (1-12), defaults to current"
// @Param annee query int false "Year, defaults to current"
// @Success 200 {file} binary
// @Router /performance/export [get]
func (h *PerformanceHandler) Export(c *gin.Context) {
	q, ok := h.bindPeriod(c)
	if !ok {
		return
	}
	file, err := h.service.Export(c.Request.Context(), q, c.Query("format"))
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s\"", file.Filename))
	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, file.ContentType, file.Bytes)
}
