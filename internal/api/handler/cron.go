package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/insurance-calculator-api/internal/domain"
	"github.com/vfg2006/insurance-calculator-api/internal/scheduler"
	"github.com/vfg2006/insurance-calculator-api/pkg/apiErrors"
)

// CronJobType define o tipo de cron job que pode ser executada manualmente
const (
	CronJobTypeRetentionPurge = "retention-purge"
)

// RunCronJob executa manualmente uma cron job específica
func RunCronJob(purgeService *scheduler.RetentionPurgeService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - RunCronJob")

		w.Header().Set("Content-Type", "application/json")

		cronType := httprouter.ParamsFromContext(r.Context()).ByName("type")
		if cronType == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Tipo de cron job não especificado", nil)
			return
		}

		switch cronType {
		case CronJobTypeRetentionPurge:
			if err := purgeService.PurgeExpired(r.Context()); err != nil {
				logrus.Error("Error running retention purge:", err)

				if errors.Is(err, domain.ErrRepository) {
					apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro de persistência durante a purga", nil)
				} else {
					apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao executar a purga de retenção", nil)
				}
				return
			}

		default:
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Tipo de cron job inválido. Valores aceitos: retention-purge", nil)
			return
		}

		response := map[string]any{
			"message": "Cron job executada com sucesso",
			"type":    cronType,
		}

		if err := json.NewEncoder(w).Encode(response); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao codificar resposta", nil)
		}
	})
}

// GetCronStatus retorna o status das cron jobs
func GetCronStatus(purgeService *scheduler.RetentionPurgeService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		status := map[string]any{
			CronJobTypeRetentionPurge: purgeService.GetStatus(),
		}

		if err := json.NewEncoder(w).Encode(status); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao codificar resposta", nil)
		}
	})
}
