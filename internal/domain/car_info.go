package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// MinCarYear é o piso absoluto para o ano de fabricação
const MinCarYear = 1900

// CarInfo representa os atributos físicos do veículo. Franquia, taxa de
// corretagem e local de registro são parâmetros das operações de cálculo,
// não do veículo.
type CarInfo struct {
	Make  string          `json:"make"`
	Model string          `json:"model"`
	Year  int             `json:"year"`
	Value decimal.Decimal `json:"value"`
}

// NewCarInfo cria as informações do veículo validadas
func NewCarInfo(make, model string, year int, value decimal.Decimal) (CarInfo, error) {
	if make == "" || model == "" {
		return CarInfo{}, fmt.Errorf("%w: marca e modelo são obrigatórios", ErrInvalidCarInfo)
	}

	if len(make) > 50 || len(model) > 50 {
		return CarInfo{}, fmt.Errorf("%w: marca e modelo devem ter no máximo 50 caracteres", ErrInvalidCarInfo)
	}

	currentYear := time.Now().Year()
	if year < MinCarYear || year > currentYear {
		return CarInfo{}, fmt.Errorf("%w: ano deve estar entre %d e %d", ErrInvalidCarInfo, MinCarYear, currentYear)
	}

	if !value.IsPositive() {
		return CarInfo{}, fmt.Errorf("%w: valor do carro deve ser maior que zero", ErrInvalidCarInfo)
	}

	return CarInfo{
		Make:  make,
		Model: model,
		Year:  year,
		Value: value,
	}, nil
}

func (c CarInfo) String() string {
	return fmt.Sprintf("%s %s %d", c.Make, c.Model, c.Year)
}
