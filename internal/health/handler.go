package health

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"hirepulse-backend/internal/shared/server/respond"
	"hirepulse-backend/internal/shared/storage/redisdb"
)

// Handler reports service readiness: database, embedding store and the
// classifier mode in effect.
type Handler struct {
	DB        *sql.DB
	Redis     *redisdb.Client
	ModelMode string
}

// RegisterRoutes attaches the health route to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/health", h.health)
}

func (h *Handler) health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	dbStatus := "disabled"
	if h.DB != nil {
		dbStatus = "ok"
		if err := h.DB.PingContext(ctx); err != nil {
			dbStatus = "down"
		}
	}

	redisStatus := "disabled"
	if h.Redis != nil {
		redisStatus = "ok"
		if err := h.Redis.Ping(ctx); err != nil {
			redisStatus = "down"
		}
	}

	respond.JSON(c, http.StatusOK, gin.H{
		"ok":        dbStatus != "down" && redisStatus != "down",
		"database":  dbStatus,
		"redis":     redisStatus,
		"modelMode": h.ModelMode,
	})
}
