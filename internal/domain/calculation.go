package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Calculation é o agregado persistido de um cálculo de seguro: entradas,
// resultados e timestamps de ciclo de vida. DeletedAt preenchido indica
// exclusão lógica; o registro deixa de ser visível nas leituras.
type Calculation struct {
	ID                   string           `json:"id"`
	CarInfo              CarInfo          `json:"car_info"`
	AppliedRate          Percentage       `json:"applied_rate"`
	CalculatedPremium    Money            `json:"calculated_premium"`
	DeductibleValue      Money            `json:"deductible_value"`
	PolicyLimit          Money            `json:"policy_limit"`
	BrokerFee            Money            `json:"broker_fee"`
	RegistrationLocation *Address         `json:"registration_location,omitempty"`
	GISAdjustment        *decimal.Decimal `json:"gis_adjustment,omitempty"`
	CreatedAt            time.Time        `json:"created_at"`
	UpdatedAt            time.Time        `json:"updated_at"`
	DeletedAt            *time.Time       `json:"deleted_at,omitempty"`
}

// Touch atualiza o timestamp de modificação. Deve ser chamado após qualquer
// alteração de campo feita pelo caso de uso de atualização.
func (c *Calculation) Touch() {
	c.UpdatedAt = time.Now().UTC()
}

// IsDeleted retorna verdadeiro se o cálculo foi excluído logicamente
func (c *Calculation) IsDeleted() bool {
	return c.DeletedAt != nil
}
