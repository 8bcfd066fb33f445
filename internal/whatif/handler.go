package whatif

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"hirepulse-backend/internal/inference"
	"hirepulse-backend/internal/jobs"
	"hirepulse-backend/internal/profile"
	"hirepulse-backend/internal/shared/server/middleware"
	"hirepulse-backend/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the simulator.
type Handler struct {
	Sim *Simulator
}

// NewHandler constructs a Handler.
func NewHandler(sim *Simulator) *Handler {
	return &Handler{Sim: sim}
}

// RegisterRoutes attaches what-if routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/whatif/:jobId", h.simulate)
	rg.POST("/whatif/:jobId/scenarios", h.simulateMany)
	rg.POST("/whatif/:jobId/optimal", h.findOptimal)
	rg.GET("/whatif/:jobId/history", h.history)
}

func (h *Handler) simulate(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	jobID := c.Param("jobId")
	if jobID == "" {
		respond.Error(c, http.StatusBadRequest, "job id is required")
		return
	}
	var scenario Scenario
	if err := c.ShouldBindJSON(&scenario); err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid scenario payload")
		return
	}
	if scenario.Empty() {
		respond.Error(c, http.StatusBadRequest, "scenario has no operations")
		return
	}

	result, err := h.Sim.Simulate(c.Request.Context(), userID, jobID, scenario)
	if err != nil {
		respondSimulateError(c, err)
		return
	}
	respond.JSON(c, http.StatusOK, result)
}

type scenariosRequest struct {
	Scenarios []Scenario `json:"scenarios"`
}

func (h *Handler) simulateMany(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	jobID := c.Param("jobId")
	if jobID == "" {
		respond.Error(c, http.StatusBadRequest, "job id is required")
		return
	}

	var req scenariosRequest
	if err := c.ShouldBindJSON(&req); err != nil || len(req.Scenarios) == 0 {
		respond.Error(c, http.StatusBadRequest, "scenarios is required")
		return
	}

	results, err := h.Sim.SimulateMany(c.Request.Context(), userID, jobID, req.Scenarios)
	if err != nil {
		respondSimulateError(c, err)
		return
	}
	respond.JSON(c, http.StatusOK, gin.H{"results": results})
}

type optimalRequest struct {
	TargetProbability int `json:"targetProbability"`
	MaxSkills         int `json:"maxSkills"`
}

func (h *Handler) findOptimal(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	jobID := c.Param("jobId")
	if jobID == "" {
		respond.Error(c, http.StatusBadRequest, "job id is required")
		return
	}

	var req optimalRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.TargetProbability <= 0 {
		respond.Error(c, http.StatusBadRequest, "targetProbability is required")
		return
	}

	plan, err := h.Sim.FindOptimal(c.Request.Context(), userID, jobID, req.TargetProbability, req.MaxSkills)
	if err != nil {
		respondSimulateError(c, err)
		return
	}
	respond.JSON(c, http.StatusOK, plan)
}

func (h *Handler) history(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	jobID := c.Param("jobId")
	if jobID == "" {
		respond.Error(c, http.StatusBadRequest, "job id is required")
		return
	}

	limit := 20
	if v := c.Query("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			limit = parsed
		}
	}

	results, err := h.Sim.History(c.Request.Context(), userID, jobID, limit)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "failed to fetch simulation history")
		return
	}
	if results == nil {
		results = []Result{}
	}
	respond.JSON(c, http.StatusOK, gin.H{"results": results})
}

func respondSimulateError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrTooManyScenarios):
		respond.Error(c, http.StatusBadRequest, "at most 10 scenarios per request")
	case errors.Is(err, profile.ErrNotFound):
		respond.Error(c, http.StatusNotFound, "candidate profile not found")
	case errors.Is(err, jobs.ErrNotFound):
		respond.Error(c, http.StatusNotFound, "job posting not found")
	case errors.Is(err, inference.ErrUnavailable):
		respond.Error(c, http.StatusServiceUnavailable, "prediction model unavailable")
	default:
		respond.Error(c, http.StatusInternalServerError, "failed to run simulation")
	}
}
