package repository

import (
	"database/sql"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeScan simula o Scan de uma linha do JOIN cálculo + endereço,
// atribuindo os valores na mesma ordem de calculationColumns
func fakeScan(values []any) func(dest ...interface{}) error {
	return func(dest ...interface{}) error {
		for i, d := range dest {
			switch v := values[i].(type) {
			case string:
				*(d.(*string)) = v
			case int:
				*(d.(*int)) = v
			case decimal.Decimal:
				*(d.(*decimal.Decimal)) = v
			case decimal.NullDecimal:
				*(d.(*decimal.NullDecimal)) = v
			case time.Time:
				*(d.(*time.Time)) = v
			case sql.NullString:
				*(d.(*sql.NullString)) = v
			}
		}
		return nil
	}
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: true}
}

func TestDeserializeCalculation(t *testing.T) {
	createdAt := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	updatedAt := time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC)

	t.Run("Linha completa com endereço e ajuste GIS", func(t *testing.T) {
		values := []any{
			"calc-1", "Toyota", "Corolla", 2020, decimal.NewFromInt(100_000), "BRL",
			decimal.NewFromFloat(0.115), decimal.NewFromInt(10_850), decimal.NewFromInt(9_000),
			decimal.NewFromInt(90_000), decimal.NewFromInt(500),
			decimal.NullDecimal{Decimal: decimal.NewFromFloat(0.04), Valid: true},
			createdAt, updatedAt,
			nullString("Rua das Flores"), nullString("100"), nullString("Apto 42"),
			nullString("Centro"), nullString("São Paulo"), nullString("SP"),
			nullString("01001000"), nullString("Brasil"),
		}

		calculation, err := deserializeCalculation(fakeScan(values))

		require.NoError(t, err)
		assert.Equal(t, "calc-1", calculation.ID)
		assert.Equal(t, "Toyota", calculation.CarInfo.Make)
		assert.Equal(t, 2020, calculation.CarInfo.Year)
		assert.True(t, calculation.CarInfo.Value.Equal(decimal.NewFromInt(100_000)))
		assert.True(t, calculation.AppliedRate.Amount.Equal(decimal.NewFromFloat(0.115)))
		assert.True(t, calculation.CalculatedPremium.Amount.Equal(decimal.NewFromInt(10_850)))

		// A moeda da linha vale para todos os campos monetários
		assert.Equal(t, "BRL", calculation.CalculatedPremium.Currency)
		assert.Equal(t, "BRL", calculation.DeductibleValue.Currency)
		assert.Equal(t, "BRL", calculation.PolicyLimit.Currency)
		assert.Equal(t, "BRL", calculation.BrokerFee.Currency)

		require.NotNil(t, calculation.GISAdjustment)
		assert.True(t, calculation.GISAdjustment.Equal(decimal.NewFromFloat(0.04)))

		require.NotNil(t, calculation.RegistrationLocation)
		assert.Equal(t, "Rua das Flores", calculation.RegistrationLocation.Street)
		assert.Equal(t, "SP", calculation.RegistrationLocation.State)
		require.NotNil(t, calculation.RegistrationLocation.Complement)
		assert.Equal(t, "Apto 42", *calculation.RegistrationLocation.Complement)

		assert.True(t, calculation.CreatedAt.Equal(createdAt))
		assert.True(t, calculation.UpdatedAt.Equal(updatedAt))
	})

	t.Run("Linha sem endereço e sem ajuste GIS", func(t *testing.T) {
		values := []any{
			"calc-2", "Fiat", "Argo", 2023, decimal.NewFromInt(80_000), "BRL",
			decimal.NewFromFloat(0.05), decimal.NewFromInt(3_600), decimal.NewFromInt(7_200),
			decimal.NewFromInt(72_000), decimal.NewFromInt(0),
			decimal.NullDecimal{},
			createdAt, updatedAt,
			sql.NullString{}, sql.NullString{}, sql.NullString{},
			sql.NullString{}, sql.NullString{}, sql.NullString{},
			sql.NullString{}, sql.NullString{},
		}

		calculation, err := deserializeCalculation(fakeScan(values))

		require.NoError(t, err)
		assert.Nil(t, calculation.RegistrationLocation)
		assert.Nil(t, calculation.GISAdjustment)
	})

	t.Run("Endereço sem complemento", func(t *testing.T) {
		values := []any{
			"calc-3", "Honda", "Civic", 2021, decimal.NewFromInt(120_000), "BRL",
			decimal.NewFromFloat(0.08), decimal.NewFromInt(9_000), decimal.NewFromInt(10_800),
			decimal.NewFromInt(108_000), decimal.NewFromInt(300),
			decimal.NullDecimal{},
			createdAt, updatedAt,
			nullString("Av. Paulista"), nullString("1000"), sql.NullString{},
			nullString("Bela Vista"), nullString("São Paulo"), nullString("SP"),
			nullString("01310100"), nullString("Brasil"),
		}

		calculation, err := deserializeCalculation(fakeScan(values))

		require.NoError(t, err)
		require.NotNil(t, calculation.RegistrationLocation)
		assert.Nil(t, calculation.RegistrationLocation.Complement)
	})
}
