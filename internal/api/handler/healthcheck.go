package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/insurance-calculator-api/internal/config"
)

// StatusChecker é implementado pelas conexões de persistência
type StatusChecker interface {
	Ping(ctx context.Context) error
}

func HealthcheckHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, err := w.Write([]byte(time.Now().String()))
		if err != nil {
			logrus.WithError(err).Warn("error responding to healthcheck")
		}
	})
}

type healthResponse struct {
	Status      string `json:"status"`
	Version     string `json:"version"`
	Environment string `json:"environment"`
	Repository  struct {
		Type   string `json:"type"`
		Status string `json:"status"`
	} `json:"repository"`
}

// HealthHandler reporta a saúde da aplicação incluindo a conectividade
// com o backend de persistência configurado
func HealthHandler(cfg *config.Config, store StatusChecker) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		response := healthResponse{
			Status:      "healthy",
			Version:     config.Version,
			Environment: cfg.App.Environment,
		}
		response.Repository.Type = cfg.Repository.Type
		response.Repository.Status = "up"

		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := store.Ping(ctx); err != nil {
			logrus.WithError(err).Warn("Backend de persistência indisponível no health check")

			response.Status = "degraded"
			response.Repository.Status = "down"

			w.WriteHeader(http.StatusServiceUnavailable)
		}

		if err := json.NewEncoder(w).Encode(response); err != nil {
			logrus.WithError(err).Warn("error responding to health check")
		}
	})
}
