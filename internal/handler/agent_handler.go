package handler

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/helpdeskops/perf-api/internal/dto"
	"github.com/helpdeskops/perf-api/pkg/response"
)

type agentStatsService interface {
	AgentStats(ctx context.Context) ([]dto.AgentStats, error)
}

// AgentHandler exposes read-only agent statistics.
type AgentHandler struct {
	service agentStatsService
}

// NewAgentHandler constructs the handler.
func NewAgentHandler(svc agentStatsService) *AgentHandler {
	return &AgentHandler{service: svc}
}

// Stats godoc
// @Summary All-time resolved-over-assigned tally per agent
// @Tags Agents
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /agents/stats [get]
func (h *AgentHandler) Stats(c *gin.Context) {
	start := time.Now()
	stats, err := h.service.AgentStats(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	respondTimed(c, start, stats)
}
