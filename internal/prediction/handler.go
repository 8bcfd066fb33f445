package prediction

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

// Handler wires HTTP handlers to the prediction service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches prediction routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/predictions/batch", h.predictBatch)
	rg.POST("/predictions/:jobId", h.predict)
	rg.GET("/predictions/history", h.history)
	rg.GET("/predictions/latest/:jobId", h.latest)
	rg.GET("/predictions/analytics", h.analytics)
	rg.GET("/recommendations/:jobId", h.recommendations)
	rg.DELETE("/embeddings/jobs/:jobId", h.invalidateEmbedding)
}

func (h *Handler) predict(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	jobID := c.Param("jobId")
	if jobID == "" {
		respond.Error(c, http.StatusBadRequest, "job id is required")
		return
	}
	pred, err := h.Svc.Predict(c.Request.Context(), userID, jobID)
	if err != nil {
		respondPredictError(c, err)
		return
	}
	respond.JSON(c, http.StatusOK, pred)
}

type batchRequest struct {
	JobIDs []string `json:"jobIds"`
}

func (h *Handler) predictBatch(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	var req batchRequest
	if err := c.ShouldBindJSON(&req); err != nil || len(req.JobIDs) == 0 {
		respond.Error(c, http.StatusBadRequest, "jobIds is required")
		return
	}

	preds, err := h.Svc.PredictBatch(c.Request.Context(), userID, req.JobIDs)
	if err != nil {
		if errors.Is(err, ErrTooManyJobs) {
			respond.Error(c, http.StatusBadRequest, "at most 100 jobs per request")
			return
		}
		respondPredictError(c, err)
		return
	}
	respond.JSON(c, http.StatusOK, gin.H{"predictions": preds})
}

func (h *Handler) history(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	limit := 20
	if v := c.Query("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			limit = parsed
		}
	}

	preds, err := h.Svc.History(c.Request.Context(), userID, limit)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "failed to fetch prediction history")
		return
	}
	if preds == nil {
		preds = []ShortlistPrediction{}
	}
	respond.JSON(c, http.StatusOK, gin.H{"predictions": preds})
}

func (h *Handler) latest(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	jobID := c.Param("jobId")
	if jobID == "" {
		respond.Error(c, http.StatusBadRequest, "job id is required")
		return
	}

	pred, err := h.Svc.Latest(c.Request.Context(), userID, jobID)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "prediction not found")
		default:
			respond.Error(c, http.StatusInternalServerError, "failed to fetch prediction")
		}
		return
	}
	respond.JSON(c, http.StatusOK, pred)
}

func (h *Handler) analytics(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	stats, err := h.Svc.Stats(c.Request.Context(), userID)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "failed to fetch analytics")
		return
	}
	respond.JSON(c, http.StatusOK, stats)
}

func (h *Handler) recommendations(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	jobID := c.Param("jobId")
	if jobID == "" {
		respond.Error(c, http.StatusBadRequest, "job id is required")
		return
	}

	recs, err := h.Svc.Recommend(c.Request.Context(), userID, jobID)
	if err != nil {
		respondPredictError(c, err)
		return
	}
	respond.JSON(c, http.StatusOK, recs)
}

func (h *Handler) invalidateEmbedding(c *gin.Context) {
	jobID := c.Param("jobId")
	if jobID == "" {
		respond.Error(c, http.StatusBadRequest, "job id is required")
		return
	}
	h.Svc.InvalidateJobEmbedding(c.Request.Context(), jobID)
	respond.JSON(c, http.StatusOK, gin.H{"invalidated": jobID})
}

// respondPredictError maps pipeline failures onto HTTP statuses shared by
// every endpoint that runs a prediction.
func respondPredictError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, profile.ErrNotFound):
		respond.Error(c, http.StatusNotFound, "candidate profile not found")
	case errors.Is(err, jobs.ErrNotFound):
		respond.Error(c, http.StatusNotFound, "job posting not found")
	case errors.Is(err, inference.ErrUnavailable):
		respond.Error(c, http.StatusServiceUnavailable, "prediction model unavailable")
	default:
		respond.Error(c, http.StatusInternalServerError, "failed to compute prediction")
	}
}
