package calculating

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/insurance-calculator-api/infrastructure/repository"
	"github.com/vfg2006/insurance-calculator-api/internal/calculator"
	"github.com/vfg2006/insurance-calculator-api/internal/config"
	"github.com/vfg2006/insurance-calculator-api/internal/domain"
	"github.com/vfg2006/insurance-calculator-api/pkg/apiErrors"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Limites de paginação da listagem
const (
	DefaultListLimit = 10
	MaxListLimit     = 100
)

// CalculationService orquestra os casos de uso de cálculo de seguro:
// validação, precificação e persistência com retry em erros transitórios
type CalculationService interface {
	Calculate(ctx context.Context, request *domain.CalculateCalculationRequest) (*domain.Calculation, error)
	Get(ctx context.Context, id string) (*domain.Calculation, error)
	List(ctx context.Context, limit, offset int) ([]*domain.Calculation, error)
	Update(ctx context.Context, id string, patch *domain.PatchCalculationRequest) (*domain.Calculation, error)
	Delete(ctx context.Context, id string) error
}

type Service struct {
	repository repository.CalculationRepository
	calculator *calculator.Calculator
	retry      config.Retry

	minDeductible decimal.Decimal
	maxDeductible decimal.Decimal
	minBrokerFee  decimal.Decimal
	maxBrokerFee  decimal.Decimal
}

func NewService(
	calculationRepository repository.CalculationRepository,
	insuranceCalculator *calculator.Calculator,
	cfg *config.Config,
) CalculationService {
	return &Service{
		repository:    calculationRepository,
		calculator:    insuranceCalculator,
		retry:         cfg.Retry,
		minDeductible: decimal.NewFromFloat(cfg.Insurance.MinDeductiblePercentage),
		maxDeductible: decimal.NewFromFloat(cfg.Insurance.MaxDeductiblePercentage),
		minBrokerFee:  decimal.NewFromFloat(cfg.Insurance.MinBrokerFee),
		maxBrokerFee:  decimal.NewFromFloat(cfg.Insurance.MaxBrokerFee),
	}
}

// pricing agrupa os resultados financeiros de uma precificação
type pricing struct {
	rate            domain.Percentage
	premium         domain.Money
	policyLimit     domain.Money
	deductibleValue domain.Money
	gisAdjustment   *decimal.Decimal
}

func (s *Service) Calculate(ctx context.Context, request *domain.CalculateCalculationRequest) (*domain.Calculation, error) {
	location, err := s.buildLocation(request.RegistrationLocation)
	if err != nil {
		return nil, err
	}

	carInfo, err := domain.NewCarInfo(request.Make, request.Model, request.Year, decimal.NewFromFloat(request.Value))
	if err != nil {
		return nil, NewCalculationError(err, apiErrors.ErrInvalidCarInfo, err.Error())
	}

	deductible, err := s.validateDeductible(decimal.NewFromFloat(request.DeductiblePercentage))
	if err != nil {
		return nil, err
	}

	brokerFee, err := s.validateBrokerFee(decimal.NewFromFloat(request.BrokerFee), request.Currency)
	if err != nil {
		return nil, err
	}

	result, err := s.price(carInfo, location, deductible, brokerFee)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	calculation := &domain.Calculation{
		ID:                   uuid.NewString(),
		CarInfo:              carInfo,
		AppliedRate:          result.rate,
		CalculatedPremium:    result.premium,
		DeductibleValue:      result.deductibleValue,
		PolicyLimit:          result.policyLimit,
		BrokerFee:            brokerFee,
		RegistrationLocation: location,
		GISAdjustment:        result.gisAdjustment,
		CreatedAt:            now,
		UpdatedAt:            now,
	}

	if err := s.withRetry(ctx, "save", func() error {
		return s.repository.Save(ctx, calculation)
	}); err != nil {
		return nil, NewCalculationErrorWithID(err, apiErrors.ErrDatabaseOperation, calculation.ID, "Falha ao persistir o cálculo")
	}

	logrus.Infof("Cálculo %s persistido com sucesso", calculation.ID)

	return calculation, nil
}

func (s *Service) Get(ctx context.Context, id string) (*domain.Calculation, error) {
	if id == "" {
		return nil, ErrCalculationIDRequired
	}

	var calculation *domain.Calculation

	err := s.withRetry(ctx, "find", func() error {
		var findErr error
		calculation, findErr = s.repository.Find(ctx, id)
		return findErr
	})
	if err != nil {
		return nil, NewCalculationErrorWithID(err, apiErrors.ErrDatabaseOperation, id, "Falha ao consultar o cálculo")
	}

	if calculation == nil {
		return nil, NewCalculationErrorWithID(domain.ErrCalculationNotFound, apiErrors.ErrCalculationNotFound, id, "Cálculo não encontrado")
	}

	return calculation, nil
}

func (s *Service) List(ctx context.Context, limit, offset int) ([]*domain.Calculation, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	if limit > MaxListLimit {
		limit = MaxListLimit
	}
	if offset < 0 {
		offset = 0
	}

	var calculations []*domain.Calculation

	err := s.withRetry(ctx, "list", func() error {
		var listErr error
		calculations, listErr = s.repository.FindAll(ctx, limit, offset)
		return listErr
	})
	if err != nil {
		return nil, NewCalculationError(err, apiErrors.ErrDatabaseOperation, "Falha ao listar cálculos")
	}

	// Lista vazia é um resultado válido, não um erro
	if calculations == nil {
		calculations = []*domain.Calculation{}
	}

	return calculations, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if id == "" {
		return ErrCalculationIDRequired
	}

	var found bool

	err := s.withRetry(ctx, "soft-delete", func() error {
		var deleteErr error
		found, deleteErr = s.repository.SoftDelete(ctx, id)
		return deleteErr
	})
	if err != nil {
		return NewCalculationErrorWithID(err, apiErrors.ErrDatabaseOperation, id, "Falha ao excluir o cálculo")
	}

	if !found {
		return NewCalculationErrorWithID(domain.ErrCalculationNotFound, apiErrors.ErrCalculationNotFound, id, "Cálculo não encontrado ou já excluído")
	}

	logrus.Infof("Cálculo %s excluído logicamente", id)

	return nil
}

func (s *Service) Update(ctx context.Context, id string, patch *domain.PatchCalculationRequest) (*domain.Calculation, error) {
	if id == "" {
		return nil, ErrCalculationIDRequired
	}

	var existing *domain.Calculation

	err := s.withRetry(ctx, "find", func() error {
		var findErr error
		existing, findErr = s.repository.Find(ctx, id)
		return findErr
	})
	if err != nil {
		return nil, NewCalculationErrorWithID(err, apiErrors.ErrDatabaseOperation, id, "Falha ao consultar o cálculo")
	}

	if existing == nil {
		return nil, NewCalculationErrorWithID(domain.ErrCalculationNotFound, apiErrors.ErrCalculationNotFound, id, "Cálculo não encontrado")
	}

	needsRecalculation := false

	// Mescla o patch sobre uma cópia de trabalho do veículo
	carMake := existing.CarInfo.Make
	carModel := existing.CarInfo.Model
	carYear := existing.CarInfo.Year
	carValue := existing.CarInfo.Value

	if patch.Make != nil {
		carMake = *patch.Make
		needsRecalculation = true
	}
	if patch.Model != nil {
		carModel = *patch.Model
		needsRecalculation = true
	}
	if patch.Year != nil {
		carYear = *patch.Year
		needsRecalculation = true
	}
	if patch.Value != nil {
		carValue = decimal.NewFromFloat(*patch.Value)
		needsRecalculation = true
	}

	location := existing.RegistrationLocation
	if len(patch.RegistrationLocation) > 0 {
		needsRecalculation = true

		if string(patch.RegistrationLocation) == "null" {
			location = nil
		} else {
			var payload domain.AddressPayload
			if err := json.Unmarshal(patch.RegistrationLocation, &payload); err != nil {
				return nil, NewCalculationError(domain.ErrInvalidAddress, apiErrors.ErrInvalidFormat, "Endereço de registro inválido no patch")
			}

			location, err = s.buildLocation(&payload)
			if err != nil {
				return nil, err
			}
		}
	}

	carInfo, err := domain.NewCarInfo(carMake, carModel, carYear, carValue)
	if err != nil {
		return nil, NewCalculationError(err, apiErrors.ErrInvalidCarInfo, err.Error())
	}

	if needsRecalculation {
		// Recalcular sem a franquia explícita reaproveitaria silenciosamente
		// o valor antigo; o patch precisa declará-la
		if patch.DeductiblePercentage == nil {
			return nil, NewCalculationErrorWithID(ErrDeductibleRequired, apiErrors.ErrRecalculationRequired, id,
				"O campo deductible_percentage é obrigatório ao alterar campos que exigem recálculo")
		}

		deductible, err := s.validateDeductible(decimal.NewFromFloat(*patch.DeductiblePercentage))
		if err != nil {
			return nil, err
		}

		brokerFeeAmount := existing.BrokerFee.Amount
		if patch.BrokerFee != nil {
			brokerFeeAmount = decimal.NewFromFloat(*patch.BrokerFee)
		}

		brokerFee, err := s.validateBrokerFee(brokerFeeAmount, existing.BrokerFee.Currency)
		if err != nil {
			return nil, err
		}

		result, err := s.price(carInfo, location, deductible, brokerFee)
		if err != nil {
			return nil, err
		}

		existing.AppliedRate = result.rate
		existing.CalculatedPremium = result.premium
		existing.PolicyLimit = result.policyLimit
		existing.DeductibleValue = result.deductibleValue
		existing.GISAdjustment = result.gisAdjustment
		existing.BrokerFee = brokerFee
	} else if patch.BrokerFee != nil {
		// Só a taxa do corretor mudou: substitui o valor em vigor sem
		// tocar na taxa nem no prêmio já calculados
		brokerFee, err := s.validateBrokerFee(decimal.NewFromFloat(*patch.BrokerFee), existing.BrokerFee.Currency)
		if err != nil {
			return nil, err
		}

		existing.BrokerFee = brokerFee
	}

	existing.CarInfo = carInfo
	existing.RegistrationLocation = location
	existing.Touch()

	if err := s.withRetry(ctx, "save", func() error {
		return s.repository.Save(ctx, existing)
	}); err != nil {
		return nil, NewCalculationErrorWithID(err, apiErrors.ErrDatabaseOperation, id, "Falha ao persistir a atualização")
	}

	logrus.Infof("Cálculo %s atualizado com sucesso", id)

	return existing, nil
}

// price executa a precificação completa: taxa, prêmio, limite da apólice,
// valor da franquia e contribuição marginal do ajuste GIS
func (s *Service) price(
	carInfo domain.CarInfo,
	location *domain.Address,
	deductible domain.Percentage,
	brokerFee domain.Money,
) (*pricing, error) {
	rate, err := s.calculator.CalculateRate(carInfo, location)
	if err != nil {
		return nil, NewCalculationError(err, apiErrors.ErrInvalidCarInfo, err.Error())
	}

	carValue, err := domain.NewMoney(carInfo.Value, brokerFee.Currency)
	if err != nil {
		return nil, NewCalculationError(err, apiErrors.ErrInvalidRequest, err.Error())
	}

	premium, err := s.calculator.CalculatePremium(carValue, rate, deductible, brokerFee)
	if err != nil {
		return nil, NewCalculationError(err, apiErrors.ErrInvalidRequest, err.Error())
	}

	policyLimit, err := s.calculator.CalculatePolicyLimit(carValue, deductible)
	if err != nil {
		return nil, NewCalculationError(err, apiErrors.ErrInvalidRequest, err.Error())
	}

	deductibleValue := policyLimit.Mul(deductible.Amount)

	// A contribuição do local é reportada como a diferença entre a taxa com
	// e sem o endereço, apenas para transparência na resposta
	var gisAdjustment *decimal.Decimal
	if location != nil {
		rateWithout, err := s.calculator.CalculateRate(carInfo, nil)
		if err != nil {
			return nil, NewCalculationError(err, apiErrors.ErrInvalidCarInfo, err.Error())
		}

		delta := rate.Amount.Sub(rateWithout.Amount)
		gisAdjustment = &delta
	}

	return &pricing{
		rate:            rate,
		premium:         premium,
		policyLimit:     policyLimit,
		deductibleValue: deductibleValue,
		gisAdjustment:   gisAdjustment,
	}, nil
}

// buildLocation valida e constrói o endereço de registro do payload
func (s *Service) buildLocation(payload *domain.AddressPayload) (*domain.Address, error) {
	if payload == nil {
		return nil, nil
	}

	if !domain.IsValidUF(payload.State) {
		return nil, NewCalculationError(ErrInvalidState, apiErrors.ErrInvalidCarInfo,
			fmt.Sprintf("Estado de registro inválido: %s", payload.State))
	}

	location, err := domain.NewAddress(
		payload.Street,
		payload.Number,
		payload.Neighborhood,
		payload.City,
		payload.State,
		payload.PostalCode,
		payload.Country,
		payload.Complement,
	)
	if err != nil {
		return nil, NewCalculationError(err, apiErrors.ErrInvalidFormat, err.Error())
	}

	return location, nil
}

// validateDeductible aplica os limites de franquia da configuração
func (s *Service) validateDeductible(amount decimal.Decimal) (domain.Percentage, error) {
	deductible, err := domain.NewPercentage(amount)
	if err != nil {
		return domain.Percentage{}, NewCalculationError(err, apiErrors.ErrInvalidRequest, err.Error())
	}

	if amount.LessThan(s.minDeductible) || amount.GreaterThan(s.maxDeductible) {
		return domain.Percentage{}, NewCalculationError(ErrDeductibleOutOfRange, apiErrors.ErrInvalidRequest,
			fmt.Sprintf("Porcentagem da franquia deve estar entre %s e %s", s.minDeductible, s.maxDeductible))
	}

	return deductible, nil
}

// validateBrokerFee aplica os limites monetários da taxa do corretor.
// A taxa é sempre um valor monetário, nunca um percentual.
func (s *Service) validateBrokerFee(amount decimal.Decimal, currency string) (domain.Money, error) {
	brokerFee, err := domain.NewMoney(amount, currency)
	if err != nil {
		return domain.Money{}, NewCalculationError(err, apiErrors.ErrInvalidRequest, err.Error())
	}

	if amount.LessThan(s.minBrokerFee) || amount.GreaterThan(s.maxBrokerFee) {
		return domain.Money{}, NewCalculationError(ErrBrokerFeeOutOfRange, apiErrors.ErrInvalidRequest,
			fmt.Sprintf("Taxa do corretor deve estar entre %s e %s", s.minBrokerFee, s.maxBrokerFee))
	}

	return brokerFee, nil
}

// withRetry repete a operação de persistência um número fixo de vezes com
// intervalo fixo. Apenas erros transitórios de repositório são repetidos;
// erros de validação e não-encontrado propagam imediatamente.
func (s *Service) withRetry(ctx context.Context, operation string, fn func() error) error {
	maxAttempts := s.retry.MaxAttempts
	if maxAttempts < 1 {
		maxAttempts = 1
	}

	var err error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		err = fn()
		if err == nil {
			return nil
		}

		if !errors.Is(err, domain.ErrRepository) {
			return err
		}

		if attempt == maxAttempts {
			break
		}

		logrus.WithFields(logrus.Fields{
			"operation": operation,
			"attempt":   attempt,
			"error":     err.Error(),
		}).Warn("Erro transitório de repositório, tentando novamente")

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(s.retry.Delay):
		}
	}

	return err
}
