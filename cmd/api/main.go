package main

import (
	"context"
	"os"
	"path"
	"runtime"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/insurance-calculator-api/infrastructure/database/postgres"
	"github.com/vfg2006/insurance-calculator-api/infrastructure/database/redisdb"
	"github.com/vfg2006/insurance-calculator-api/infrastructure/repository"
	"github.com/vfg2006/insurance-calculator-api/internal/api"
	"github.com/vfg2006/insurance-calculator-api/internal/api/handler"
	"github.com/vfg2006/insurance-calculator-api/internal/calculator"
	"github.com/vfg2006/insurance-calculator-api/internal/config"
	"github.com/vfg2006/insurance-calculator-api/internal/scheduler"
	"github.com/vfg2006/insurance-calculator-api/internal/usecases/calculating"
)

func main() {
	// Inicializa configuração de logs
	configureLogger()

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	// Define o nível de log com base na configuração
	logLevel, err := logrus.ParseLevel(cfg.App.LogLevel)
	if err != nil {
		logrus.Warnf("Nível de log inválido: %s, usando 'info'", cfg.App.LogLevel)
		logLevel = logrus.InfoLevel
	}
	logrus.SetLevel(logLevel)
	logrus.Infof("Nível de log configurado para: %s", logLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	calculationRepo, store, closeStore := buildRepository(ctx, cfg)
	defer closeStore()

	insuranceCalculator := calculator.New(cfg.Insurance)
	calculationService := calculating.NewService(calculationRepo, insuranceCalculator, cfg)

	retentionPurgeService := scheduler.NewRetentionPurgeService(calculationRepo, cfg)
	if err := retentionPurgeService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador de purga de retenção")
	} else {
		logrus.Info("Agendador de purga de retenção iniciado com sucesso")
	}

	server, err := api.New(cfg, calculationService, store, retentionPurgeService)
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}

// buildRepository seleciona o backend de persistência conforme a
// configuração (postgres por padrão, redis como alternativa)
func buildRepository(ctx context.Context, cfg *config.Config) (repository.CalculationRepository, handler.StatusChecker, func()) {
	switch cfg.Repository.Type {
	case config.RepositoryTypeRedis:
		conn := redisconn(ctx, cfg.Redis)
		return repository.NewRedisCalculationRepository(conn, cfg.Redis), conn, func() {
			if err := conn.Close(); err != nil {
				logrus.WithError(err).Warn("Erro ao fechar conexão com Redis")
			}
		}

	case config.RepositoryTypePostgres:
		fallthrough
	default:
		conn := pgconn(ctx, cfg.Database)
		return repository.NewCalculationRepository(conn), conn, func() {
			if err := conn.Close(); err != nil {
				logrus.WithError(err).Warn("Erro ao fechar conexão com PostgreSQL")
			}
		}
	}
}

// configureLogger configura o formato e comportamento dos logs
func configureLogger() {
	_, file, _, _ := runtime.Caller(0)
	dir := path.Dir(file)
	os.Chdir(dir)

	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})
}

// pgconn cria uma conexão com o banco de dados
func pgconn(ctx context.Context, dbConfig config.Database) *postgres.Connection {
	conn, err := postgres.NewConnection(ctx, dbConfig)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao conectar ao PostgreSQL")
	}

	logrus.Info("Conexão com PostgreSQL estabelecida com sucesso")
	return conn
}

// redisconn cria uma conexão com o Redis
func redisconn(ctx context.Context, redisConfig config.Redis) *redisdb.Connection {
	conn, err := redisdb.NewConnection(ctx, redisConfig)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao conectar ao Redis")
	}

	logrus.Info("Conexão com Redis estabelecida com sucesso")
	return conn
}
