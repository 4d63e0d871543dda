package v1

import (
	"net/http"

	"resume-agent-backend/internal/delivery/http/response"
	"resume-agent-backend/internal/usecase"

	"github.com/gin-gonic/gin"
)

type HealthHandler struct {
	healthUC usecase.HealthUsecase
}

func NewHealthHandler(public *gin.RouterGroup, healthUC usecase.HealthUsecase) {
	handler := &HealthHandler{healthUC: healthUC}

	health := public.Group("/health")
	{
		health.GET("", handler.Check)
		health.GET("/live", handler.Live)
		health.GET("/ready", handler.Ready)
	}
}

// HealthCheck godoc
// @Summary      Health check
// @Tags         health
// @Produce      json
// @Success      200  {object}  response.Response
// @Router       /health [get]
func (h *HealthHandler) Check(c *gin.Context) {
	response.Success(c, http.StatusOK, "System operational", h.healthUC.Check(c.Request.Context()))
}

// Liveness godoc
// @Summary      Liveness probe
// @Tags         health
// @Produce      json
// @Success      200  {object}  response.Response
// @Router       /health/live [get]
func (h *HealthHandler) Live(c *gin.Context) {
	response.Success(c, http.StatusOK, "Alive", nil)
}

// Readiness godoc
// @Summary      Readiness probe
// @Description  Checks database and Redis connectivity. Redis failure degrades to a warning since the API can run without it.
// @Tags         health
// @Produce      json
// @Success      200  {object}  response.Response
// @Failure      503  {object}  response.Response
// @Router       /health/ready [get]
func (h *HealthHandler) Ready(c *gin.Context) {
	checks := gin.H{"database": "ok", "redis": "ok"}

	if err := h.healthUC.CheckDB(c.Request.Context()); err != nil {
		checks["database"] = "unavailable"
		response.Error(c, http.StatusServiceUnavailable, "Database unavailable", checks)
		return
	}

	if err := h.healthUC.CheckRedis(c.Request.Context()); err != nil {
		checks["redis"] = "degraded"
	}

	response.Success(c, http.StatusOK, "Ready", checks)
}
