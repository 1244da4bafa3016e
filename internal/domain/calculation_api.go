package domain

import (
	"encoding/json"
	"time"
)

// AddressPayload é a forma de endereço aceita e devolvida pela API
type AddressPayload struct {
	Street       string  `json:"street"`
	Number       string  `json:"number"`
	Complement   *string `json:"complement,omitempty"`
	Neighborhood string  `json:"neighborhood"`
	City         string  `json:"city"`
	State        string  `json:"state"`
	Country      string  `json:"country,omitempty"`
	PostalCode   string  `json:"postal_code"`
}

// CalculateCalculationRequest é o corpo da criação de um cálculo
type CalculateCalculationRequest struct {
	Make                 string          `json:"make"`
	Model                string          `json:"model"`
	Year                 int             `json:"year"`
	Value                float64         `json:"value"`
	DeductiblePercentage float64         `json:"deductible_percentage"`
	BrokerFee            float64         `json:"broker_fee"`
	Currency             string          `json:"currency,omitempty"`
	RegistrationLocation *AddressPayload `json:"registration_location,omitempty"`
}

// PatchCalculationRequest é o corpo da atualização parcial. Campos nil
// estão ausentes do patch. RegistrationLocation usa json.RawMessage para
// distinguir ausente (nil), null explícito (remove o endereço) e um novo
// endereço.
type PatchCalculationRequest struct {
	Make                 *string         `json:"make,omitempty"`
	Model                *string         `json:"model,omitempty"`
	Year                 *int            `json:"year,omitempty"`
	Value                *float64        `json:"value,omitempty"`
	DeductiblePercentage *float64        `json:"deductible_percentage,omitempty"`
	BrokerFee            *float64        `json:"broker_fee,omitempty"`
	RegistrationLocation json.RawMessage `json:"registration_location,omitempty"`
}

// CalculationResponse é a representação de um cálculo devolvida pela API
type CalculationResponse struct {
	ID                   string          `json:"id"`
	Timestamp            time.Time       `json:"timestamp"`
	CarMake              string          `json:"car_make"`
	CarModel             string          `json:"car_model"`
	CarYear              int             `json:"car_year"`
	CarValue             float64         `json:"car_value"`
	AppliedRate          float64         `json:"applied_rate"`
	CalculatedPremium    float64         `json:"calculated_premium"`
	DeductibleValue      float64         `json:"deductible_value"`
	PolicyLimit          float64         `json:"policy_limit"`
	GISAdjustment        *float64        `json:"gis_adjustment,omitempty"`
	BrokerFee            float64         `json:"broker_fee"`
	Currency             string          `json:"currency"`
	RegistrationLocation *AddressPayload `json:"registration_location,omitempty"`
}

// ListCalculationsResponse é o envelope paginado da listagem de cálculos
type ListCalculationsResponse struct {
	Calculations []*CalculationResponse `json:"calculations"`
	Count        int                    `json:"count"`
	Limit        int                    `json:"limit"`
	Offset       int                    `json:"offset"`
}

// NewCalculationResponse converte o agregado para a forma de resposta da API
func NewCalculationResponse(calculation *Calculation) *CalculationResponse {
	response := &CalculationResponse{
		ID:                calculation.ID,
		Timestamp:         calculation.CreatedAt,
		CarMake:           calculation.CarInfo.Make,
		CarModel:          calculation.CarInfo.Model,
		CarYear:           calculation.CarInfo.Year,
		CarValue:          calculation.CarInfo.Value.InexactFloat64(),
		AppliedRate:       calculation.AppliedRate.Amount.InexactFloat64(),
		CalculatedPremium: calculation.CalculatedPremium.Amount.InexactFloat64(),
		DeductibleValue:   calculation.DeductibleValue.Amount.InexactFloat64(),
		PolicyLimit:       calculation.PolicyLimit.Amount.InexactFloat64(),
		BrokerFee:         calculation.BrokerFee.Amount.InexactFloat64(),
		Currency:          calculation.CalculatedPremium.Currency,
	}

	if calculation.GISAdjustment != nil {
		gis := calculation.GISAdjustment.InexactFloat64()
		response.GISAdjustment = &gis
	}

	if calculation.RegistrationLocation != nil {
		loc := calculation.RegistrationLocation
		response.RegistrationLocation = &AddressPayload{
			Street:       loc.Street,
			Number:       loc.Number,
			Complement:   loc.Complement,
			Neighborhood: loc.Neighborhood,
			City:         loc.City,
			State:        loc.State,
			Country:      loc.Country,
			PostalCode:   loc.PostalCode,
		}
	}

	return response
}
