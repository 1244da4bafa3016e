package handler

import (
	"net/http"

	"github.com/vfg2006/insurance-calculator-api/internal/api/handler/router"
	"github.com/vfg2006/insurance-calculator-api/internal/config"
	"github.com/vfg2006/insurance-calculator-api/internal/scheduler"
	"github.com/vfg2006/insurance-calculator-api/internal/usecases/calculating"
)

func Healthcheck(cfg *config.Config, store StatusChecker) []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(),
		},
		{
			Path:    "/health",
			Method:  http.MethodGet,
			Handler: HealthHandler(cfg, store),
		},
	}
}

func CronJobs(purgeService *scheduler.RetentionPurgeService) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/cron/:type/run",
			Method:  http.MethodPost,
			Handler: RunCronJob(purgeService),
		},
		{
			Path:    "/v1/cron/status",
			Method:  http.MethodGet,
			Handler: GetCronStatus(purgeService),
		},
	}
}

func Insurance(service calculating.CalculationService) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/insurance/calculate",
			Method:  http.MethodPost,
			Handler: CalculateInsurance(service),
		},
		{
			Path:    "/v1/insurance/calculations",
			Method:  http.MethodGet,
			Handler: ListCalculations(service),
		},
		{
			Path:    "/v1/insurance/calculations/:id",
			Method:  http.MethodGet,
			Handler: GetCalculation(service),
		},
		{
			Path:    "/v1/insurance/calculations/:id",
			Method:  http.MethodPatch,
			Handler: UpdateCalculation(service),
		},
		{
			Path:    "/v1/insurance/calculations/:id",
			Method:  http.MethodDelete,
			Handler: DeleteCalculation(service),
		},
	}
}
