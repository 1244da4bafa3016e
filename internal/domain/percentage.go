package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Percentage representa uma fração no intervalo [0, 1]
type Percentage struct {
	Amount decimal.Decimal `json:"amount"`
}

// NewPercentage cria uma porcentagem validada
func NewPercentage(amount decimal.Decimal) (Percentage, error) {
	if amount.IsNegative() || amount.GreaterThan(decimal.NewFromInt(1)) {
		return Percentage{}, fmt.Errorf("%w: a porcentagem deve estar entre 0 e 1", ErrInvalidPercentage)
	}

	return Percentage{Amount: amount}, nil
}

// Equals compara duas porcentagens
func (p Percentage) Equals(other Percentage) bool {
	return p.Amount.Equal(other.Amount)
}

// LessThan retorna verdadeiro se p < other
func (p Percentage) LessThan(other Percentage) bool {
	return p.Amount.LessThan(other.Amount)
}

// GreaterThan retorna verdadeiro se p > other
func (p Percentage) GreaterThan(other Percentage) bool {
	return p.Amount.GreaterThan(other.Amount)
}

func (p Percentage) String() string {
	return fmt.Sprintf("%s%%", p.Amount.Mul(decimal.NewFromInt(100)).StringFixed(2))
}
