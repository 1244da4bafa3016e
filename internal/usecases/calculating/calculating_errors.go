package calculating

import (
	"errors"
	"fmt"
)

// Erros específicos do contexto de cálculo de seguro
var (
	// Erros de validação
	ErrCalculationIDRequired = errors.New("calculation ID is required")
	ErrInvalidState          = errors.New("invalid registration state")
	ErrDeductibleOutOfRange  = errors.New("deductible percentage out of configured range")
	ErrBrokerFeeOutOfRange   = errors.New("broker fee out of configured range")

	// A atualização de campos que disparam recálculo exige a franquia no patch
	ErrDeductibleRequired = errors.New("deductible percentage is required when recalculation is triggered")
)

// CalculationError é um erro com contexto adicional para cálculos
type CalculationError struct {
	Err           error  // Erro base
	Code          string // Código de erro para API
	CalculationID string // ID do cálculo envolvido (quando aplicável)
	Details       string // Detalhes adicionais
}

// Error implementa a interface error
func (e *CalculationError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

// Unwrap retorna o erro subjacente
func (e *CalculationError) Unwrap() error {
	return e.Err
}

// NewCalculationError cria um novo CalculationError
func NewCalculationError(err error, code string, details string) *CalculationError {
	return &CalculationError{
		Err:     err,
		Code:    code,
		Details: details,
	}
}

// NewCalculationErrorWithID cria um novo CalculationError com ID do cálculo
func NewCalculationErrorWithID(err error, code string, calculationID string, details string) *CalculationError {
	return &CalculationError{
		Err:           err,
		Code:          code,
		CalculationID: calculationID,
		Details:       details,
	}
}
