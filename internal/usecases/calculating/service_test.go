package calculating

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/insurance-calculator-api/infrastructure/repository/mocks"
	"github.com/vfg2006/insurance-calculator-api/internal/calculator"
	"github.com/vfg2006/insurance-calculator-api/internal/config"
	"github.com/vfg2006/insurance-calculator-api/internal/domain"
	"github.com/vfg2006/insurance-calculator-api/pkg/apiErrors"
	"go.uber.org/mock/gomock"
)

var testClock = func() time.Time {
	return time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
}

func testConfig() *config.Config {
	return &config.Config{
		Retry: config.Retry{
			MaxAttempts: 3,
			Delay:       time.Millisecond,
		},
		Insurance: config.Insurance{
			BaseRate:                0.05,
			MinCarYear:              1900,
			MaxCarValue:             1_000_000,
			MinDeductiblePercentage: 0.01,
			MaxDeductiblePercentage: 0.20,
			MinBrokerFee:            0,
			MaxBrokerFee:            10_000,
			AgeAdjustmentRate:       0.005,
			ValueAdjustmentRate:     0.005,
			CoveragePercentage:      1.0,
			GISAdjustmentRates:      map[string]float64{"SP": 0.04},
		},
	}
}

func newTestService(repo *mocks.MockCalculationRepository) CalculationService {
	cfg := testConfig()
	calc := calculator.New(cfg.Insurance).WithClock(testClock)
	return NewService(repo, calc, cfg)
}

func testLocationPayload() *domain.AddressPayload {
	return &domain.AddressPayload{
		Street:       "Rua das Flores",
		Number:       "100",
		Neighborhood: "Centro",
		City:         "São Paulo",
		State:        "SP",
		PostalCode:   "01001-000",
	}
}

func testCalculateRequest() *domain.CalculateCalculationRequest {
	return &domain.CalculateCalculationRequest{
		Make:                 "Toyota",
		Model:                "Corolla",
		Year:                 2020,
		Value:                100_000,
		DeductiblePercentage: 0.10,
		BrokerFee:            500,
		RegistrationLocation: testLocationPayload(),
	}
}

// existingCalculation espelha o resultado de testCalculateRequest persistido
func existingCalculation(t *testing.T) *domain.Calculation {
	t.Helper()

	carInfo, err := domain.NewCarInfo("Toyota", "Corolla", 2020, decimal.NewFromInt(100_000))
	require.NoError(t, err)

	location, err := domain.NewAddress("Rua das Flores", "100", "Centro", "São Paulo", "SP", "01001000", "", nil)
	require.NoError(t, err)

	gis := decimal.NewFromFloat(0.04)
	past := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	return &domain.Calculation{
		ID:                   "calc-1",
		CarInfo:              carInfo,
		AppliedRate:          domain.Percentage{Amount: decimal.NewFromFloat(0.115)},
		CalculatedPremium:    domain.Money{Amount: decimal.NewFromInt(10_850), Currency: "BRL"},
		DeductibleValue:      domain.Money{Amount: decimal.NewFromInt(9_000), Currency: "BRL"},
		PolicyLimit:          domain.Money{Amount: decimal.NewFromInt(90_000), Currency: "BRL"},
		BrokerFee:            domain.Money{Amount: decimal.NewFromInt(500), Currency: "BRL"},
		RegistrationLocation: location,
		GISAdjustment:        &gis,
		CreatedAt:            past,
		UpdatedAt:            past,
	}
}

func transientErr() error {
	return fmt.Errorf("%w: connection refused", domain.ErrRepository)
}

func TestService_Calculate(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockCalculationRepository(ctrl)
	service := newTestService(mockRepo)

	mockRepo.EXPECT().
		Save(gomock.Any(), gomock.Any()).
		Return(nil)

	calculation, err := service.Calculate(context.Background(), testCalculateRequest())

	require.NoError(t, err)
	assert.NotEmpty(t, calculation.ID)
	assert.Equal(t, calculation.CreatedAt, calculation.UpdatedAt)

	// Taxa: 5×0.005 + 10×0.005 + 0.04 (SP)
	assert.True(t, calculation.AppliedRate.Amount.Equal(decimal.NewFromFloat(0.115)),
		"taxa obtida %s", calculation.AppliedRate.Amount)

	// Prêmio: 11500 − 1150 + 500
	assert.True(t, calculation.CalculatedPremium.Amount.Equal(decimal.NewFromInt(10_850)),
		"prêmio obtido %s", calculation.CalculatedPremium.Amount)

	// Limite: 100000 − 10000; franquia: 10% do limite
	assert.True(t, calculation.PolicyLimit.Amount.Equal(decimal.NewFromInt(90_000)))
	assert.True(t, calculation.DeductibleValue.Amount.Equal(decimal.NewFromInt(9_000)))

	require.NotNil(t, calculation.GISAdjustment)
	assert.True(t, calculation.GISAdjustment.Equal(decimal.NewFromFloat(0.04)))

	require.NotNil(t, calculation.RegistrationLocation)
	assert.Equal(t, "SP", calculation.RegistrationLocation.State)
	assert.Equal(t, "01001000", calculation.RegistrationLocation.PostalCode)
}

func TestService_Calculate_WithoutLocation(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockCalculationRepository(ctrl)
	service := newTestService(mockRepo)

	mockRepo.EXPECT().
		Save(gomock.Any(), gomock.Any()).
		Return(nil)

	request := testCalculateRequest()
	request.RegistrationLocation = nil

	calculation, err := service.Calculate(context.Background(), request)

	require.NoError(t, err)
	assert.Nil(t, calculation.RegistrationLocation)
	assert.Nil(t, calculation.GISAdjustment, "sem local não há ajuste GIS reportado")
	assert.True(t, calculation.AppliedRate.Amount.Equal(decimal.NewFromFloat(0.075)))
}

func TestService_Calculate_RetriesTransientErrors(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockCalculationRepository(ctrl)
	service := newTestService(mockRepo)

	gomock.InOrder(
		mockRepo.EXPECT().Save(gomock.Any(), gomock.Any()).Return(transientErr()).Times(2),
		mockRepo.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil),
	)

	calculation, err := service.Calculate(context.Background(), testCalculateRequest())

	require.NoError(t, err)
	assert.NotEmpty(t, calculation.ID)
}

func TestService_Calculate_ExhaustsRetries(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockCalculationRepository(ctrl)
	service := newTestService(mockRepo)

	mockRepo.EXPECT().
		Save(gomock.Any(), gomock.Any()).
		Return(transientErr()).
		Times(3)

	_, err := service.Calculate(context.Background(), testCalculateRequest())

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrRepository)

	var calcErr *CalculationError
	require.ErrorAs(t, err, &calcErr)
	assert.Equal(t, apiErrors.ErrDatabaseOperation, calcErr.Code)
}

func TestService_Calculate_ValidationErrors(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	// Nenhuma expectativa: erros de validação não chegam ao repositório
	mockRepo := mocks.NewMockCalculationRepository(ctrl)
	service := newTestService(mockRepo)

	tests := []struct {
		name     string
		mutate   func(r *domain.CalculateCalculationRequest)
		expected error
	}{
		{
			name:     "Franquia acima do máximo configurado",
			mutate:   func(r *domain.CalculateCalculationRequest) { r.DeductiblePercentage = 0.5 },
			expected: ErrDeductibleOutOfRange,
		},
		{
			name:     "Franquia abaixo do mínimo configurado",
			mutate:   func(r *domain.CalculateCalculationRequest) { r.DeductiblePercentage = 0.005 },
			expected: ErrDeductibleOutOfRange,
		},
		{
			name:     "Taxa do corretor acima do máximo",
			mutate:   func(r *domain.CalculateCalculationRequest) { r.BrokerFee = 20_000 },
			expected: ErrBrokerFeeOutOfRange,
		},
		{
			name:     "UF inexistente no local de registro",
			mutate:   func(r *domain.CalculateCalculationRequest) { r.RegistrationLocation.State = "XX" },
			expected: ErrInvalidState,
		},
		{
			name:     "Marca vazia",
			mutate:   func(r *domain.CalculateCalculationRequest) { r.Make = "" },
			expected: domain.ErrInvalidCarInfo,
		},
		{
			name:     "Valor do carro acima do máximo da precificação",
			mutate:   func(r *domain.CalculateCalculationRequest) { r.Value = 1_000_001 },
			expected: domain.ErrInvalidCarInfo,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			request := testCalculateRequest()
			tt.mutate(request)

			_, err := service.Calculate(context.Background(), request)

			require.Error(t, err)
			assert.ErrorIs(t, err, tt.expected)
		})
	}
}

func TestService_Get(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockCalculationRepository(ctrl)
	service := newTestService(mockRepo)

	t.Run("Cálculo encontrado", func(t *testing.T) {
		existing := existingCalculation(t)

		mockRepo.EXPECT().
			Find(gomock.Any(), "calc-1").
			Return(existing, nil)

		calculation, err := service.Get(context.Background(), "calc-1")

		require.NoError(t, err)
		assert.Equal(t, existing, calculation)
	})

	t.Run("Cálculo inexistente ou excluído", func(t *testing.T) {
		mockRepo.EXPECT().
			Find(gomock.Any(), "missing").
			Return(nil, nil)

		_, err := service.Get(context.Background(), "missing")

		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrCalculationNotFound)

		var calcErr *CalculationError
		require.ErrorAs(t, err, &calcErr)
		assert.Equal(t, apiErrors.ErrCalculationNotFound, calcErr.Code)
	})

	t.Run("ID vazio", func(t *testing.T) {
		_, err := service.Get(context.Background(), "")
		assert.ErrorIs(t, err, ErrCalculationIDRequired)
	})
}

func TestService_List(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockCalculationRepository(ctrl)
	service := newTestService(mockRepo)

	t.Run("Limite zero assume o padrão", func(t *testing.T) {
		mockRepo.EXPECT().
			FindAll(gomock.Any(), DefaultListLimit, 0).
			Return(nil, nil)

		calculations, err := service.List(context.Background(), 0, 0)

		require.NoError(t, err)
		assert.NotNil(t, calculations, "lista vazia não é erro")
		assert.Empty(t, calculations)
	})

	t.Run("Limite acima do teto é rebaixado", func(t *testing.T) {
		mockRepo.EXPECT().
			FindAll(gomock.Any(), MaxListLimit, 0).
			Return([]*domain.Calculation{existingCalculation(t)}, nil)

		calculations, err := service.List(context.Background(), 500, 0)

		require.NoError(t, err)
		assert.Len(t, calculations, 1)
	})

	t.Run("Offset negativo é normalizado para zero", func(t *testing.T) {
		mockRepo.EXPECT().
			FindAll(gomock.Any(), 20, 0).
			Return(nil, nil)

		_, err := service.List(context.Background(), 20, -5)
		require.NoError(t, err)
	})

	t.Run("Erro transitório esgota as tentativas", func(t *testing.T) {
		mockRepo.EXPECT().
			FindAll(gomock.Any(), DefaultListLimit, 0).
			Return(nil, transientErr()).
			Times(3)

		_, err := service.List(context.Background(), 0, 0)

		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrRepository)
	})
}

func TestService_Update(t *testing.T) {
	t.Run("Campo de recálculo sem franquia no patch é rejeitado", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockRepo := mocks.NewMockCalculationRepository(ctrl)
		service := newTestService(mockRepo)

		mockRepo.EXPECT().
			Find(gomock.Any(), "calc-1").
			Return(existingCalculation(t), nil)

		newValue := 120_000.0
		patch := &domain.PatchCalculationRequest{Value: &newValue}

		_, err := service.Update(context.Background(), "calc-1", patch)

		require.Error(t, err)
		assert.ErrorIs(t, err, ErrDeductibleRequired)

		var calcErr *CalculationError
		require.ErrorAs(t, err, &calcErr)
		assert.Equal(t, apiErrors.ErrRecalculationRequired, calcErr.Code)
	})

	t.Run("Patch com campo de recálculo e franquia reprecifica", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockRepo := mocks.NewMockCalculationRepository(ctrl)
		service := newTestService(mockRepo)

		existing := existingCalculation(t)

		mockRepo.EXPECT().
			Find(gomock.Any(), "calc-1").
			Return(existing, nil)
		mockRepo.EXPECT().
			Save(gomock.Any(), gomock.Any()).
			Return(nil)

		newValue := 150_000.0
		deductible := 0.10
		patch := &domain.PatchCalculationRequest{
			Value:                &newValue,
			DeductiblePercentage: &deductible,
		}

		updated, err := service.Update(context.Background(), "calc-1", patch)

		require.NoError(t, err)
		assert.True(t, updated.CarInfo.Value.Equal(decimal.NewFromInt(150_000)))

		// Taxa: 5×0.005 + 15×0.005 + 0.04 = 0.14
		assert.True(t, updated.AppliedRate.Amount.Equal(decimal.NewFromFloat(0.14)),
			"taxa obtida %s", updated.AppliedRate.Amount)

		// Prêmio: 21000 − 2100 + 500; limite: 150000 − 15000
		assert.True(t, updated.CalculatedPremium.Amount.Equal(decimal.NewFromInt(19_400)),
			"prêmio obtido %s", updated.CalculatedPremium.Amount)
		assert.True(t, updated.PolicyLimit.Amount.Equal(decimal.NewFromInt(135_000)))
		assert.True(t, updated.DeductibleValue.Amount.Equal(decimal.NewFromInt(13_500)))

		assert.True(t, updated.UpdatedAt.After(updated.CreatedAt))
	})

	t.Run("Patch apenas da taxa do corretor não toca na taxa nem no prêmio", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockRepo := mocks.NewMockCalculationRepository(ctrl)
		service := newTestService(mockRepo)

		existing := existingCalculation(t)

		mockRepo.EXPECT().
			Find(gomock.Any(), "calc-1").
			Return(existing, nil)
		mockRepo.EXPECT().
			Save(gomock.Any(), gomock.Any()).
			Return(nil)

		newFee := 800.0
		patch := &domain.PatchCalculationRequest{BrokerFee: &newFee}

		updated, err := service.Update(context.Background(), "calc-1", patch)

		require.NoError(t, err)
		assert.True(t, updated.BrokerFee.Amount.Equal(decimal.NewFromInt(800)))

		// Sem recálculo: prêmio, taxa e limite preservados como estavam
		assert.True(t, updated.CalculatedPremium.Amount.Equal(decimal.NewFromInt(10_850)),
			"prêmio obtido %s", updated.CalculatedPremium.Amount)
		assert.True(t, updated.AppliedRate.Amount.Equal(decimal.NewFromFloat(0.115)))
		assert.True(t, updated.PolicyLimit.Amount.Equal(decimal.NewFromInt(90_000)))
		assert.True(t, updated.DeductibleValue.Amount.Equal(decimal.NewFromInt(9_000)))
		assert.True(t, updated.UpdatedAt.After(updated.CreatedAt))
	})

	t.Run("Patch com registration_location null remove o endereço", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockRepo := mocks.NewMockCalculationRepository(ctrl)
		service := newTestService(mockRepo)

		mockRepo.EXPECT().
			Find(gomock.Any(), "calc-1").
			Return(existingCalculation(t), nil)
		mockRepo.EXPECT().
			Save(gomock.Any(), gomock.Any()).
			Return(nil)

		deductible := 0.10
		patch := &domain.PatchCalculationRequest{
			DeductiblePercentage: &deductible,
			RegistrationLocation: []byte("null"),
		}

		updated, err := service.Update(context.Background(), "calc-1", patch)

		require.NoError(t, err)
		assert.Nil(t, updated.RegistrationLocation)
		assert.Nil(t, updated.GISAdjustment)

		// Sem o ajuste de SP a taxa volta para 0.075
		assert.True(t, updated.AppliedRate.Amount.Equal(decimal.NewFromFloat(0.075)),
			"taxa obtida %s", updated.AppliedRate.Amount)
	})

	t.Run("Cálculo inexistente", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockRepo := mocks.NewMockCalculationRepository(ctrl)
		service := newTestService(mockRepo)

		mockRepo.EXPECT().
			Find(gomock.Any(), "missing").
			Return(nil, nil)

		_, err := service.Update(context.Background(), "missing", &domain.PatchCalculationRequest{})

		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrCalculationNotFound)
	})
}

func TestService_Delete(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockCalculationRepository(ctrl)
	service := newTestService(mockRepo)

	t.Run("Exclusão lógica de cálculo visível", func(t *testing.T) {
		mockRepo.EXPECT().
			SoftDelete(gomock.Any(), "calc-1").
			Return(true, nil)

		err := service.Delete(context.Background(), "calc-1")
		assert.NoError(t, err)
	})

	t.Run("Cálculo inexistente ou já excluído", func(t *testing.T) {
		mockRepo.EXPECT().
			SoftDelete(gomock.Any(), "missing").
			Return(false, nil)

		err := service.Delete(context.Background(), "missing")

		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrCalculationNotFound)
	})

	t.Run("ID vazio", func(t *testing.T) {
		err := service.Delete(context.Background(), "")
		assert.ErrorIs(t, err, ErrCalculationIDRequired)
	})
}
