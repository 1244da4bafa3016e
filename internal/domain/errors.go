package domain

import "errors"

// Erros do domínio de cálculo de seguro
var (
	// Erros de validação de entrada
	ErrInvalidCarInfo    = errors.New("invalid car info")
	ErrInvalidMoney      = errors.New("invalid monetary value")
	ErrInvalidPercentage = errors.New("invalid percentage")
	ErrInvalidAddress    = errors.New("invalid address")

	// Erros de busca
	ErrCalculationNotFound = errors.New("calculation not found")

	// Erros de infraestrutura
	ErrRepository = errors.New("repository operation error")

	// Erros inesperados durante o cálculo
	ErrCalculation = errors.New("insurance calculation error")
)
