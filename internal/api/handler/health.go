package handler

import (
	"context"
	"net/http"
)

type HealthResponse struct {
	Status string `json:"status"`
}

// Health is a liveness probe. It answers while the process is up,
// regardless of downstream health.
func Health(w http.ResponseWriter, r *http.Request) {
	JSON(w, http.StatusOK, HealthResponse{
		Status: "ok",
	})
}

// Ready builds a readiness probe from a dependency check, typically a
// database ping.
func Ready(check func(ctx context.Context) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := check(r.Context()); err != nil {
			JSON(w, http.StatusServiceUnavailable, HealthResponse{
				Status: "unavailable",
			})
			return
		}
		JSON(w, http.StatusOK, HealthResponse{
			Status: "ok",
		})
	}
}
