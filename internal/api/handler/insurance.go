package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/julienschmidt/httprouter"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/insurance-calculator-api/internal/domain"
	"github.com/vfg2006/insurance-calculator-api/internal/usecases/calculating"
	"github.com/vfg2006/insurance-calculator-api/pkg/apiErrors"
)

func CalculateInsurance(service calculating.CalculationService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		var request domain.CalculateCalculationRequest
		if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Corpo da requisição inválido: "+err.Error(), nil)
			return
		}

		calculation, err := service.Calculate(r.Context(), &request)
		if err != nil {
			logrus.Error("Error calculating insurance:", err)
			writeCalculationError(w, err, "Erro ao calcular o seguro")
			return
		}

		w.WriteHeader(http.StatusCreated)

		if err := json.NewEncoder(w).Encode(domain.NewCalculationResponse(calculation)); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao codificar resposta", nil)
		}
	})
}

func GetCalculation(service calculating.CalculationService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		id := httprouter.ParamsFromContext(r.Context()).ByName("id")
		if id == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "ID do cálculo é obrigatório", nil)
			return
		}

		calculation, err := service.Get(r.Context(), id)
		if err != nil {
			logrus.Error("Error fetching calculation:", err)
			writeCalculationError(w, err, "Erro ao consultar o cálculo")
			return
		}

		if err := json.NewEncoder(w).Encode(domain.NewCalculationResponse(calculation)); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao codificar resposta", nil)
		}
	})
}

func ListCalculations(service calculating.CalculationService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		limit := parseQueryInt(r, "limit", calculating.DefaultListLimit)
		offset := parseQueryInt(r, "offset", 0)

		calculations, err := service.List(r.Context(), limit, offset)
		if err != nil {
			logrus.Error("Error listing calculations:", err)
			writeCalculationError(w, err, "Erro ao listar cálculos")
			return
		}

		responses := make([]*domain.CalculationResponse, 0, len(calculations))
		for _, calculation := range calculations {
			responses = append(responses, domain.NewCalculationResponse(calculation))
		}

		response := domain.ListCalculationsResponse{
			Calculations: responses,
			Count:        len(responses),
			Limit:        limit,
			Offset:       offset,
		}

		if err := json.NewEncoder(w).Encode(response); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao codificar resposta", nil)
		}
	})
}

func UpdateCalculation(service calculating.CalculationService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		id := httprouter.ParamsFromContext(r.Context()).ByName("id")
		if id == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "ID do cálculo é obrigatório", nil)
			return
		}

		var patch domain.PatchCalculationRequest
		if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Corpo da requisição inválido: "+err.Error(), nil)
			return
		}

		calculation, err := service.Update(r.Context(), id, &patch)
		if err != nil {
			logrus.Error("Error updating calculation:", err)
			writeCalculationError(w, err, "Erro ao atualizar o cálculo")
			return
		}

		if err := json.NewEncoder(w).Encode(domain.NewCalculationResponse(calculation)); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao codificar resposta", nil)
		}
	})
}

func DeleteCalculation(service calculating.CalculationService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := httprouter.ParamsFromContext(r.Context()).ByName("id")
		if id == "" {
			w.Header().Set("Content-Type", "application/json")
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "ID do cálculo é obrigatório", nil)
			return
		}

		if err := service.Delete(r.Context(), id); err != nil {
			logrus.Error("Error deleting calculation:", err)
			w.Header().Set("Content-Type", "application/json")
			writeCalculationError(w, err, "Erro ao excluir o cálculo")
			return
		}

		w.WriteHeader(http.StatusNoContent)
	})
}

// writeCalculationError traduz erros do caso de uso para a resposta
// padronizada da API
func writeCalculationError(w http.ResponseWriter, err error, fallbackMessage string) {
	// CalculationError carrega o código da API e detalhes do contexto
	var calcErr *calculating.CalculationError
	if errors.As(err, &calcErr) {
		var details any
		if calcErr.CalculationID != "" {
			details = map[string]any{"calculation_id": calcErr.CalculationID}
		}
		apiErrors.WriteError(w, calcErr.Code, calcErr.Error(), details)
		return
	}

	switch {
	case errors.Is(err, calculating.ErrCalculationIDRequired):
		apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "ID do cálculo é obrigatório", nil)

	case errors.Is(err, domain.ErrCalculationNotFound):
		apiErrors.WriteError(w, apiErrors.ErrCalculationNotFound, "Cálculo não encontrado", nil)

	case errors.Is(err, domain.ErrRepository):
		apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro de persistência", nil)

	default:
		apiErrors.WriteError(w, apiErrors.ErrInternalServer, fallbackMessage, nil)
	}
}

func parseQueryInt(r *http.Request, name string, fallback int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback
	}

	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}

	return value
}
