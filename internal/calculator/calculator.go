package calculator

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/vfg2006/insurance-calculator-api/internal/config"
	"github.com/vfg2006/insurance-calculator-api/internal/domain"
)

// valueUnit é a unidade de valor do veículo usada no ajuste por valor:
// a cada 10.000 da moeda aplica-se ValueAdjustmentRate
var valueUnit = decimal.NewFromInt(10_000)

// Calculator implementa a fórmula de precificação do seguro. É puro e sem
// estado além da configuração; seguro para uso concorrente.
type Calculator struct {
	minCarYear          int
	maxCarValue         decimal.Decimal
	ageAdjustmentRate   decimal.Decimal
	valueAdjustmentRate decimal.Decimal
	coveragePercentage  decimal.Decimal
	gisRates            map[string]decimal.Decimal

	// relógio injetável para o ano corrente
	now func() time.Time
}

func New(cfg config.Insurance) *Calculator {
	gisRates := make(map[string]decimal.Decimal, len(cfg.GISAdjustmentRates))
	for uf, rate := range cfg.GISAdjustmentRates {
		gisRates[uf] = decimal.NewFromFloat(rate)
	}

	return &Calculator{
		minCarYear:          cfg.MinCarYear,
		maxCarValue:         decimal.NewFromFloat(cfg.MaxCarValue),
		ageAdjustmentRate:   decimal.NewFromFloat(cfg.AgeAdjustmentRate),
		valueAdjustmentRate: decimal.NewFromFloat(cfg.ValueAdjustmentRate),
		coveragePercentage:  decimal.NewFromFloat(cfg.CoveragePercentage),
		gisRates:            gisRates,
		now:                 time.Now,
	}
}

// WithClock troca o relógio do calculador. Usado em testes.
func (c *Calculator) WithClock(now func() time.Time) *Calculator {
	c.now = now
	return c
}

// CalculateRate calcula a taxa do seguro: ajuste por idade + ajuste por
// valor + ajuste GIS do local de registro (quando presente). A taxa tem
// piso em zero e não tem teto.
func (c *Calculator) CalculateRate(car domain.CarInfo, location *domain.Address) (domain.Percentage, error) {
	if car.Year < c.minCarYear {
		return domain.Percentage{}, fmt.Errorf("%w: ano do carro %d é menor que o mínimo permitido %d", domain.ErrInvalidCarInfo, car.Year, c.minCarYear)
	}

	if car.Value.GreaterThan(c.maxCarValue) {
		return domain.Percentage{}, fmt.Errorf("%w: valor do carro %s excede o máximo permitido %s", domain.ErrInvalidCarInfo, car.Value, c.maxCarValue)
	}

	yearsSinceProduction := c.now().Year() - car.Year
	if yearsSinceProduction < 0 {
		yearsSinceProduction = 0
	}

	ageAdjustment := decimal.NewFromInt(int64(yearsSinceProduction)).Mul(c.ageAdjustmentRate)

	// Valor expresso em unidades de 10.000, frações permitidas
	valueAdjustment := car.Value.Div(valueUnit).Mul(c.valueAdjustmentRate)

	rate := ageAdjustment.Add(valueAdjustment)

	if location != nil {
		rate = rate.Add(c.GISAdjustment(location))
	}

	if rate.IsNegative() {
		rate = decimal.Zero
	}

	// Sem teto: a taxa pode ultrapassar 1, portanto não passa pelo
	// construtor validado de Percentage
	return domain.Percentage{Amount: rate}, nil
}

// CalculatePremium calcula o prêmio: valor × taxa, menos o desconto da
// franquia, mais a taxa do corretor. A taxa do corretor é um acréscimo
// monetário fixo, não um percentual.
func (c *Calculator) CalculatePremium(
	carValue domain.Money,
	rate domain.Percentage,
	deductiblePercentage domain.Percentage,
	brokerFee domain.Money,
) (domain.Money, error) {
	basePremium := carValue.Mul(rate.Amount)
	deductibleDiscount := basePremium.Mul(deductiblePercentage.Amount)

	premium, err := basePremium.Sub(deductibleDiscount)
	if err != nil {
		return domain.Money{}, err
	}

	return premium.Add(brokerFee)
}

// CalculatePolicyLimit calcula o limite da apólice: cobertura sobre o valor
// do carro menos o valor da franquia
func (c *Calculator) CalculatePolicyLimit(carValue domain.Money, deductiblePercentage domain.Percentage) (domain.Money, error) {
	baseLimit := carValue.Mul(c.coveragePercentage)
	deductibleValue := baseLimit.Mul(deductiblePercentage.Amount)

	return baseLimit.Sub(deductibleValue)
}

// GISAdjustment retorna o ajuste de taxa configurado para a UF do local de
// registro. UF desconhecida resulta em ajuste zero, nunca em erro.
func (c *Calculator) GISAdjustment(location *domain.Address) decimal.Decimal {
	if location == nil {
		return decimal.Zero
	}

	if rate, ok := c.gisRates[location.State]; ok {
		return rate
	}

	return decimal.Zero
}
