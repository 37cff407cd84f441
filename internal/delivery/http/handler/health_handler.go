package handler

import (
	"net/http"

	"dawaksahl-api/internal/usecase"
	"dawaksahl-api/pkg/response"
)

type HealthHandler struct {
	healthUsecase usecase.HealthUsecase
}

func NewHealthHandler(healthUsecase usecase.HealthUsecase) *HealthHandler {
	return &HealthHandler{healthUsecase: healthUsecase}
}

// Check answers 503 only when the database is down; load balancers key off the status code
func (h *HealthHandler) Check(w http.ResponseWriter, r *http.Request) {
	health := h.healthUsecase.Check(r.Context())

	status := http.StatusOK
	if health.Status == usecase.HealthStatusUnhealthy {
		status = http.StatusServiceUnavailable
	}
	response.JSON(w, status, health)
}
