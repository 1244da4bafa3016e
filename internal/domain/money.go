package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// DefaultCurrency é a moeda padrão do sistema
const DefaultCurrency = "BRL"

// Money representa um valor monetário com sua moeda.
// Operações aritméticas só são permitidas entre valores da mesma moeda.
type Money struct {
	Amount   decimal.Decimal `json:"amount"`
	Currency string          `json:"currency"`
}

// NewMoney cria um valor monetário validado. Moeda vazia assume BRL.
func NewMoney(amount decimal.Decimal, currency string) (Money, error) {
	if amount.IsNegative() {
		return Money{}, fmt.Errorf("%w: valor monetário não pode ser negativo", ErrInvalidMoney)
	}

	if currency == "" {
		currency = DefaultCurrency
	}

	if len(currency) != 3 {
		return Money{}, fmt.Errorf("%w: moeda deve ter 3 caracteres", ErrInvalidMoney)
	}

	return Money{
		Amount:   amount,
		Currency: strings.ToUpper(currency),
	}, nil
}

// Add soma dois valores monetários da mesma moeda
func (m Money) Add(other Money) (Money, error) {
	if m.Currency != other.Currency {
		return Money{}, fmt.Errorf("%w: moedas diferentes não podem ser somadas (%s, %s)", ErrInvalidMoney, m.Currency, other.Currency)
	}

	return Money{Amount: m.Amount.Add(other.Amount), Currency: m.Currency}, nil
}

// Sub subtrai dois valores monetários da mesma moeda
func (m Money) Sub(other Money) (Money, error) {
	if m.Currency != other.Currency {
		return Money{}, fmt.Errorf("%w: moedas diferentes não podem ser subtraídas (%s, %s)", ErrInvalidMoney, m.Currency, other.Currency)
	}

	return Money{Amount: m.Amount.Sub(other.Amount), Currency: m.Currency}, nil
}

// Mul multiplica o valor monetário por um fator adimensional
func (m Money) Mul(factor decimal.Decimal) Money {
	return Money{Amount: m.Amount.Mul(factor), Currency: m.Currency}
}

// Div divide o valor monetário por um divisor adimensional
func (m Money) Div(divisor decimal.Decimal) (Money, error) {
	if divisor.IsZero() {
		return Money{}, fmt.Errorf("%w: divisão por zero não é permitida", ErrInvalidMoney)
	}

	return Money{Amount: m.Amount.Div(divisor), Currency: m.Currency}, nil
}

// Equals compara dois valores monetários (valor e moeda)
func (m Money) Equals(other Money) bool {
	return m.Currency == other.Currency && m.Amount.Equal(other.Amount)
}

func (m Money) String() string {
	return fmt.Sprintf("%s %s", m.Currency, m.Amount.StringFixed(2))
}
