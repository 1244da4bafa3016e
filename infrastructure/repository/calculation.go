package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/vfg2006/insurance-calculator-api/infrastructure/database/postgres"
	"github.com/vfg2006/insurance-calculator-api/internal/domain"
)

const (
	calculationsTable = "insurance_calculations c"
	addressesTable    = "calculation_addresses"
)

// calculationColumns são as colunas lidas em todas as consultas (cálculo +
// endereço via LEFT JOIN)
const calculationColumns = `c.id, c.car_make, c.car_model, c.car_year, c.car_value, c.currency,
	c.applied_rate, c.calculated_premium, c.deductible_value, c.policy_limit, c.broker_fee,
	c.gis_adjustment, c.created_at, c.updated_at,
	ca.street, ca.number, ca.complement, ca.neighborhood, ca.city, ca.state, ca.postal_code, ca.country`

// CalculationRepository persiste cálculos de seguro. Find e FindAll só
// enxergam registros não excluídos logicamente; SoftDelete retorna
// verdadeiro apenas quando um registro visível foi marcado.
type CalculationRepository interface {
	Save(ctx context.Context, calculation *domain.Calculation) error
	Find(ctx context.Context, id string) (*domain.Calculation, error)
	FindAll(ctx context.Context, limit, offset int) ([]*domain.Calculation, error)
	SoftDelete(ctx context.Context, id string) (bool, error)
	PurgeDeleted(ctx context.Context, olderThan time.Time) (int64, error)
}

type calculationRepository struct {
	conn *postgres.Connection
}

func NewCalculationRepository(conn *postgres.Connection) CalculationRepository {
	return &calculationRepository{conn: conn}
}

// wrapRepoErr classifica uma falha de infraestrutura como erro transitório
// de repositório, preservando o detalhe original na mensagem
func wrapRepoErr(err error, msg string) error {
	return errors.Wrap(domain.ErrRepository, fmt.Sprintf("%s: %v", msg, err))
}

func (r *calculationRepository) Save(ctx context.Context, calculation *domain.Calculation) error {
	return r.conn.RunInTransaction(ctx, func(tx *sql.Tx) error {
		var gis decimal.NullDecimal
		if calculation.GISAdjustment != nil {
			gis = decimal.NullDecimal{Decimal: *calculation.GISAdjustment, Valid: true}
		}

		query := squirrel.StatementBuilder.
			Insert("insurance_calculations").
			Columns(
				"id", "car_make", "car_model", "car_year", "car_value", "currency",
				"applied_rate", "calculated_premium", "deductible_value", "policy_limit",
				"broker_fee", "gis_adjustment", "created_at", "updated_at", "deleted_at",
			).
			Values(
				calculation.ID,
				calculation.CarInfo.Make,
				calculation.CarInfo.Model,
				calculation.CarInfo.Year,
				calculation.CarInfo.Value,
				calculation.CalculatedPremium.Currency,
				calculation.AppliedRate.Amount,
				calculation.CalculatedPremium.Amount,
				calculation.DeductibleValue.Amount,
				calculation.PolicyLimit.Amount,
				calculation.BrokerFee.Amount,
				gis,
				calculation.CreatedAt,
				calculation.UpdatedAt,
				calculation.DeletedAt,
			).
			Suffix(`
				ON CONFLICT (id) DO UPDATE SET
					car_make = EXCLUDED.car_make,
					car_model = EXCLUDED.car_model,
					car_year = EXCLUDED.car_year,
					car_value = EXCLUDED.car_value,
					currency = EXCLUDED.currency,
					applied_rate = EXCLUDED.applied_rate,
					calculated_premium = EXCLUDED.calculated_premium,
					deductible_value = EXCLUDED.deductible_value,
					policy_limit = EXCLUDED.policy_limit,
					broker_fee = EXCLUDED.broker_fee,
					gis_adjustment = EXCLUDED.gis_adjustment,
					updated_at = EXCLUDED.updated_at,
					deleted_at = EXCLUDED.deleted_at
			`).
			PlaceholderFormat(squirrel.Dollar)

		sqlQuery, args, err := query.ToSql()
		if err != nil {
			return fmt.Errorf("failed to build query: %w", err)
		}

		if _, err := tx.ExecContext(ctx, sqlQuery, args...); err != nil {
			return wrapRepoErr(err, "falha ao salvar cálculo")
		}

		return r.saveAddress(ctx, tx, calculation)
	})
}

// saveAddress sincroniza o endereço 1:0..1 do cálculo: upsert quando
// presente, remoção quando o local de registro foi limpo
func (r *calculationRepository) saveAddress(ctx context.Context, tx *sql.Tx, calculation *domain.Calculation) error {
	if calculation.RegistrationLocation == nil {
		deleteSQL, deleteArgs, err := squirrel.
			Delete(addressesTable).
			Where(squirrel.Eq{"calculation_id": calculation.ID}).
			PlaceholderFormat(squirrel.Dollar).
			ToSql()
		if err != nil {
			return fmt.Errorf("failed to build query: %w", err)
		}

		if _, err := tx.ExecContext(ctx, deleteSQL, deleteArgs...); err != nil {
			return wrapRepoErr(err, "falha ao remover endereço do cálculo")
		}

		return nil
	}

	loc := calculation.RegistrationLocation

	query := squirrel.StatementBuilder.
		Insert(addressesTable).
		Columns("calculation_id", "street", "number", "complement", "neighborhood", "city", "state", "postal_code", "country").
		Values(calculation.ID, loc.Street, loc.Number, loc.Complement, loc.Neighborhood, loc.City, loc.State, loc.PostalCode, loc.Country).
		Suffix(`
			ON CONFLICT (calculation_id) DO UPDATE SET
				street = EXCLUDED.street,
				number = EXCLUDED.number,
				complement = EXCLUDED.complement,
				neighborhood = EXCLUDED.neighborhood,
				city = EXCLUDED.city,
				state = EXCLUDED.state,
				postal_code = EXCLUDED.postal_code,
				country = EXCLUDED.country
		`).
		PlaceholderFormat(squirrel.Dollar)

	sqlQuery, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}

	if _, err := tx.ExecContext(ctx, sqlQuery, args...); err != nil {
		return wrapRepoErr(err, "falha ao salvar endereço do cálculo")
	}

	return nil
}

func (r *calculationRepository) Find(ctx context.Context, id string) (*domain.Calculation, error) {
	query, args, err := squirrel.
		Select(calculationColumns).
		From(calculationsTable).
		LeftJoin("calculation_addresses ca ON ca.calculation_id = c.id").
		Where(squirrel.Eq{"c.id": id}).
		Where("c.deleted_at IS NULL").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	row := r.conn.QueryRowContext(ctx, query, args...)

	calculation, err := deserializeCalculation(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, wrapRepoErr(err, "falha ao consultar cálculo")
	}

	return calculation, nil
}

func (r *calculationRepository) FindAll(ctx context.Context, limit, offset int) ([]*domain.Calculation, error) {
	query, args, err := squirrel.
		Select(calculationColumns).
		From(calculationsTable).
		LeftJoin("calculation_addresses ca ON ca.calculation_id = c.id").
		Where("c.deleted_at IS NULL").
		OrderBy("c.created_at DESC").
		Limit(uint64(limit)).
		Offset(uint64(offset)).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		if err == sql.ErrNoRows {
			return []*domain.Calculation{}, nil
		}
		return nil, wrapRepoErr(err, "falha ao listar cálculos")
	}
	defer rows.Close()

	calculations := make([]*domain.Calculation, 0)

	for rows.Next() {
		calculation, err := deserializeCalculation(rows.Scan)
		if err != nil {
			return nil, wrapRepoErr(err, "falha ao deserializar cálculo")
		}

		calculations = append(calculations, calculation)
	}

	if err := rows.Err(); err != nil {
		return nil, wrapRepoErr(err, "falha ao iterar sobre os cálculos")
	}

	return calculations, nil
}

func (r *calculationRepository) SoftDelete(ctx context.Context, id string) (bool, error) {
	now := time.Now().UTC()

	query, args, err := squirrel.
		Update("insurance_calculations").
		Set("deleted_at", now).
		Set("updated_at", now).
		Where(squirrel.Eq{"id": id}).
		Where("deleted_at IS NULL").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to build query: %w", err)
	}

	result, err := r.conn.ExecContext(ctx, query, args...)
	if err != nil {
		return false, wrapRepoErr(err, "falha ao excluir cálculo")
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, wrapRepoErr(err, "falha ao verificar linhas afetadas")
	}

	return rowsAffected > 0, nil
}

// PurgeDeleted remove fisicamente cálculos excluídos logicamente antes do
// corte. Os endereços caem junto por ON DELETE CASCADE.
func (r *calculationRepository) PurgeDeleted(ctx context.Context, olderThan time.Time) (int64, error) {
	query, args, err := squirrel.
		Delete("insurance_calculations").
		Where("deleted_at IS NOT NULL").
		Where(squirrel.Lt{"deleted_at": olderThan}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build query: %w", err)
	}

	result, err := r.conn.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, wrapRepoErr(err, "falha ao expurgar cálculos excluídos")
	}

	purged, err := result.RowsAffected()
	if err != nil {
		return 0, wrapRepoErr(err, "falha ao verificar linhas afetadas")
	}

	return purged, nil
}

// deserializeCalculation reconstrói o agregado a partir de uma linha do
// JOIN cálculo + endereço
func deserializeCalculation(scan func(dest ...interface{}) error) (*domain.Calculation, error) {
	var (
		calculation domain.Calculation
		gis         decimal.NullDecimal

		street, number, complement, neighborhood sql.NullString
		city, state, postalCode, country         sql.NullString
	)

	if err := scan(
		&calculation.ID,
		&calculation.CarInfo.Make,
		&calculation.CarInfo.Model,
		&calculation.CarInfo.Year,
		&calculation.CarInfo.Value,
		&calculation.CalculatedPremium.Currency,
		&calculation.AppliedRate.Amount,
		&calculation.CalculatedPremium.Amount,
		&calculation.DeductibleValue.Amount,
		&calculation.PolicyLimit.Amount,
		&calculation.BrokerFee.Amount,
		&gis,
		&calculation.CreatedAt,
		&calculation.UpdatedAt,
		&street,
		&number,
		&complement,
		&neighborhood,
		&city,
		&state,
		&postalCode,
		&country,
	); err != nil {
		return nil, err
	}

	currency := calculation.CalculatedPremium.Currency
	calculation.DeductibleValue.Currency = currency
	calculation.PolicyLimit.Currency = currency
	calculation.BrokerFee.Currency = currency

	if gis.Valid {
		calculation.GISAdjustment = &gis.Decimal
	}

	if street.Valid {
		address := &domain.Address{
			Street:       street.String,
			Number:       number.String,
			Neighborhood: neighborhood.String,
			City:         city.String,
			State:        state.String,
			PostalCode:   postalCode.String,
			Country:      country.String,
		}
		if complement.Valid {
			address.Complement = &complement.String
		}
		calculation.RegistrationLocation = address
	}

	return &calculation, nil
}
