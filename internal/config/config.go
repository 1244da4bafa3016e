package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Version da API, exposta no endpoint de saúde
const Version = "1.0.0"

// Tipos de repositório suportados para persistência dos cálculos
const (
	RepositoryTypePostgres = "postgres"
	RepositoryTypeRedis    = "redis"
)

type Config struct {
	App            App            `mapstructure:",squash"`
	Server         Server         `mapstructure:",squash"`
	Database       Database       `mapstructure:",squash"`
	Redis          Redis          `mapstructure:",squash"`
	Repository     Repository     `mapstructure:",squash"`
	Retry          Retry          `mapstructure:",squash"`
	Insurance      Insurance      `mapstructure:",squash"`
	RetentionPurge RetentionPurge `mapstructure:",squash"`
}

type App struct {
	Environment string `mapstructure:"environment"`
	LogLevel    string `mapstructure:"log_level"`
}

type Server struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
}

type Database struct {
	DSN      string `mapstructure:"-"`
	Driver   string `mapstructure:"database_driver"`
	Password string `mapstructure:"database_password"`
	URL      string `mapstructure:"database_url"`
	User     string `mapstructure:"database_user"`
}

type Redis struct {
	Addr     string        `mapstructure:"redis_addr"`
	Password string        `mapstructure:"redis_password"`
	DB       int           `mapstructure:"redis_db"`
	TTL      time.Duration `mapstructure:"redis_ttl"`
}

// Repository seleciona o backend de persistência dos cálculos
type Repository struct {
	Type string `mapstructure:"repository_type"`
}

// Retry controla as novas tentativas das operações de persistência nos
// casos de uso. Apenas erros transitórios de repositório são repetidos.
type Retry struct {
	MaxAttempts int           `mapstructure:"retry_max_attempts"`
	Delay       time.Duration `mapstructure:"retry_delay"`
}

// Insurance é a superfície de ajuste numérico do motor de cálculo.
// GISAdjustmentRates mapeia UF para o ajuste aditivo de taxa e é carregado
// de INSURANCE_GIS_ADJUSTMENT_RATES como JSON (ex: {"SP": 0.04}).
type Insurance struct {
	BaseRate                float64            `mapstructure:"insurance_base_rate"`
	MinCarYear              int                `mapstructure:"insurance_min_car_year"`
	MaxCarValue             float64            `mapstructure:"insurance_max_car_value"`
	MinDeductiblePercentage float64            `mapstructure:"insurance_min_deductible_percentage"`
	MaxDeductiblePercentage float64            `mapstructure:"insurance_max_deductible_percentage"`
	MinBrokerFee            float64            `mapstructure:"insurance_min_broker_fee"`
	MaxBrokerFee            float64            `mapstructure:"insurance_max_broker_fee"`
	AgeAdjustmentRate       float64            `mapstructure:"insurance_age_adjustment_rate"`
	ValueAdjustmentRate     float64            `mapstructure:"insurance_value_adjustment_rate"`
	CoveragePercentage      float64            `mapstructure:"insurance_coverage_percentage"`
	GISAdjustmentRates      map[string]float64 `mapstructure:"-"`
}

// RetentionPurge controla a remoção física de cálculos excluídos
// logicamente há mais de MinAgeDays dias
type RetentionPurge struct {
	CronSchedule string `mapstructure:"retention_purge_cron"`
	MinAgeDays   int    `mapstructure:"retention_purge_min_age_days"`
	Enabled      bool   `mapstructure:"retention_purge_enabled"`
}

func SetDefaults() {
	viper.SetDefault("ENVIRONMENT", "development")
	viper.SetDefault("LOG_LEVEL", "debug")

	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)

	viper.SetDefault("DATABASE_DRIVER", "postgres")
	viper.SetDefault("DATABASE_URL", "localhost:5432/insurance")
	viper.SetDefault("DATABASE_USER", "postgres")
	viper.SetDefault("DATABASE_PASSWORD", "root")

	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("REDIS_TTL", "0s") // 0 = sem expiração

	viper.SetDefault("REPOSITORY_TYPE", RepositoryTypePostgres)

	viper.SetDefault("RETRY_MAX_ATTEMPTS", 3)
	viper.SetDefault("RETRY_DELAY", "1s")

	// Parâmetros do motor de cálculo
	viper.SetDefault("INSURANCE_BASE_RATE", 0.05)
	viper.SetDefault("INSURANCE_MIN_CAR_YEAR", 1900)
	viper.SetDefault("INSURANCE_MAX_CAR_VALUE", 1_000_000)
	viper.SetDefault("INSURANCE_MIN_DEDUCTIBLE_PERCENTAGE", 0.01)
	viper.SetDefault("INSURANCE_MAX_DEDUCTIBLE_PERCENTAGE", 0.20)
	viper.SetDefault("INSURANCE_MIN_BROKER_FEE", 0)
	viper.SetDefault("INSURANCE_MAX_BROKER_FEE", 10_000)
	viper.SetDefault("INSURANCE_AGE_ADJUSTMENT_RATE", 0.005)
	viper.SetDefault("INSURANCE_VALUE_ADJUSTMENT_RATE", 0.005)
	viper.SetDefault("INSURANCE_COVERAGE_PERCENTAGE", 1.0)
	viper.SetDefault("INSURANCE_GIS_ADJUSTMENT_RATES", "{}")

	viper.SetDefault("RETENTION_PURGE_CRON", "0 4 * * *") // Todos os dias às 4h da manhã
	viper.SetDefault("RETENTION_PURGE_MIN_AGE_DAYS", 30)
	viper.SetDefault("RETENTION_PURGE_ENABLED", false)
}

func NewConfig() (*Config, error) {
	// Primeiro carregar o arquivo .env usando godotenv
	loadEnvFile() // ONLY LOCAL

	config := &Config{}

	SetDefaults()

	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		logrus.Info("Usando variáveis carregadas pelo godotenv (viper não conseguiu ler .env):", err)
	}

	err := viper.Unmarshal(&config, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	if err != nil {
		return nil, err
	}

	// O mapa de ajuste GIS vem como JSON na variável de ambiente
	gisRates := make(map[string]float64)
	if raw := viper.GetString("INSURANCE_GIS_ADJUSTMENT_RATES"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &gisRates); err != nil {
			return nil, fmt.Errorf("INSURANCE_GIS_ADJUSTMENT_RATES inválido: %w", err)
		}
	}
	config.Insurance.GISAdjustmentRates = gisRates

	config.Database.DSN = fmt.Sprintf(
		"%s://%s:%s@%s",
		config.Database.Driver,
		config.Database.User,
		config.Database.Password,
		config.Database.URL,
	)

	return config, nil
}

// Função auxiliar para carregar o arquivo .env usando godotenv
func loadEnvFile() {
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("Não foi possível obter o diretório atual:", err)
		return
	}

	locations := []string{
		filepath.Join(cwd, ".env"),
		filepath.Join(filepath.Dir(cwd), ".env"),
		filepath.Join(cwd, "../.env"),
		filepath.Join(cwd, "../../.env"),
	}

	for _, location := range locations {
		if err := godotenv.Load(location); err == nil {
			logrus.Info("Arquivo .env carregado de:", location)
			return
		}
	}

	logrus.Info("Nenhum arquivo .env encontrado, usando variáveis de ambiente")
}
