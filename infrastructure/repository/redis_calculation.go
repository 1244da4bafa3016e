package repository

import (
	"context"
	"sort"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/redis/go-redis/v9"
	"github.com/vfg2006/insurance-calculator-api/infrastructure/database/redisdb"
	"github.com/vfg2006/insurance-calculator-api/internal/config"
	"github.com/vfg2006/insurance-calculator-api/internal/domain"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const calculationKeyPrefix = "insurance:calculation:"

// redisCalculationRepository implementa CalculationRepository sobre blobs
// JSON no Redis, um por cálculo. Alternativa ao Postgres selecionada por
// REPOSITORY_TYPE.
type redisCalculationRepository struct {
	conn *redisdb.Connection
	ttl  time.Duration
}

func NewRedisCalculationRepository(conn *redisdb.Connection, cfg config.Redis) CalculationRepository {
	return &redisCalculationRepository{
		conn: conn,
		ttl:  cfg.TTL,
	}
}

func calculationKey(id string) string {
	return calculationKeyPrefix + id
}

func (r *redisCalculationRepository) Save(ctx context.Context, calculation *domain.Calculation) error {
	data, err := json.Marshal(calculation)
	if err != nil {
		return wrapRepoErr(err, "falha ao serializar cálculo")
	}

	if err := r.conn.Set(ctx, calculationKey(calculation.ID), data, r.ttl).Err(); err != nil {
		return wrapRepoErr(err, "falha ao salvar cálculo no Redis")
	}

	return nil
}

func (r *redisCalculationRepository) Find(ctx context.Context, id string) (*domain.Calculation, error) {
	data, err := r.conn.Get(ctx, calculationKey(id)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, wrapRepoErr(err, "falha ao consultar cálculo no Redis")
	}

	var calculation domain.Calculation
	if err := json.Unmarshal(data, &calculation); err != nil {
		return nil, wrapRepoErr(err, "falha ao deserializar cálculo")
	}

	// Excluídos logicamente são invisíveis, mesmo com a chave presente
	if calculation.IsDeleted() {
		return nil, nil
	}

	return &calculation, nil
}

func (r *redisCalculationRepository) FindAll(ctx context.Context, limit, offset int) ([]*domain.Calculation, error) {
	all, err := r.scanCalculations(ctx)
	if err != nil {
		return nil, err
	}

	visible := make([]*domain.Calculation, 0, len(all))
	for _, calculation := range all {
		if !calculation.IsDeleted() {
			visible = append(visible, calculation)
		}
	}

	// O Redis não tem ordenação própria: ordena em memória para manter o
	// contrato de mais recente primeiro
	sort.Slice(visible, func(i, j int) bool {
		return visible[i].CreatedAt.After(visible[j].CreatedAt)
	})

	if offset >= len(visible) {
		return []*domain.Calculation{}, nil
	}

	end := offset + limit
	if end > len(visible) {
		end = len(visible)
	}

	return visible[offset:end], nil
}

func (r *redisCalculationRepository) SoftDelete(ctx context.Context, id string) (bool, error) {
	data, err := r.conn.Get(ctx, calculationKey(id)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return false, nil
		}
		return false, wrapRepoErr(err, "falha ao consultar cálculo no Redis")
	}

	var calculation domain.Calculation
	if err := json.Unmarshal(data, &calculation); err != nil {
		return false, wrapRepoErr(err, "falha ao deserializar cálculo")
	}

	if calculation.IsDeleted() {
		return false, nil
	}

	now := time.Now().UTC()
	calculation.DeletedAt = &now
	calculation.UpdatedAt = now

	updated, err := json.Marshal(&calculation)
	if err != nil {
		return false, wrapRepoErr(err, "falha ao serializar cálculo")
	}

	if err := r.conn.Set(ctx, calculationKey(id), updated, r.ttl).Err(); err != nil {
		return false, wrapRepoErr(err, "falha ao marcar cálculo como excluído no Redis")
	}

	return true, nil
}

func (r *redisCalculationRepository) PurgeDeleted(ctx context.Context, olderThan time.Time) (int64, error) {
	all, err := r.scanCalculations(ctx)
	if err != nil {
		return 0, err
	}

	var purged int64
	for _, calculation := range all {
		if calculation.DeletedAt == nil || !calculation.DeletedAt.Before(olderThan) {
			continue
		}

		if err := r.conn.Del(ctx, calculationKey(calculation.ID)).Err(); err != nil {
			return purged, wrapRepoErr(err, "falha ao expurgar cálculo do Redis")
		}
		purged++
	}

	return purged, nil
}

func (r *redisCalculationRepository) scanCalculations(ctx context.Context) ([]*domain.Calculation, error) {
	calculations := make([]*domain.Calculation, 0)

	iter := r.conn.Scan(ctx, 0, calculationKeyPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		data, err := r.conn.Get(ctx, iter.Val()).Bytes()
		if err != nil {
			// Chave pode ter expirado entre o SCAN e o GET
			if err == redis.Nil {
				continue
			}
			return nil, wrapRepoErr(err, "falha ao consultar cálculo no Redis")
		}

		var calculation domain.Calculation
		if err := json.Unmarshal(data, &calculation); err != nil {
			return nil, wrapRepoErr(err, "falha ao deserializar cálculo")
		}

		calculations = append(calculations, &calculation)
	}

	if err := iter.Err(); err != nil {
		return nil, wrapRepoErr(err, "falha ao varrer cálculos no Redis")
	}

	return calculations, nil
}
