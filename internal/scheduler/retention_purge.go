// Package scheduler contém os serviços de agendamento da aplicação
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/insurance-calculator-api/infrastructure/repository"
	"github.com/vfg2006/insurance-calculator-api/internal/config"
)

// RetentionPurgeService remove fisicamente os cálculos excluídos
// logicamente há mais tempo que o período de retenção configurado
type RetentionPurgeService struct {
	scheduler          *gocron.Scheduler
	repository         repository.CalculationRepository
	config             config.RetentionPurge
	purgeRunning       bool
	purgeMutex         sync.Mutex
	lastPurgeStartedAt time.Time
	lastPurgedCount    int64
}

func NewRetentionPurgeService(
	calculationRepository repository.CalculationRepository,
	cfg *config.Config,
) *RetentionPurgeService {
	scheduler := gocron.NewScheduler(time.UTC)

	logrus.WithFields(logrus.Fields{
		"cron_schedule": cfg.RetentionPurge.CronSchedule,
		"min_age_days":  cfg.RetentionPurge.MinAgeDays,
	}).Info("Configuração do agendador de purga de retenção carregada")

	return &RetentionPurgeService{
		scheduler:  scheduler,
		repository: calculationRepository,
		config:     cfg.RetentionPurge,
	}
}

func (s *RetentionPurgeService) Start(ctx context.Context) error {
	if !s.config.Enabled {
		logrus.Info("Cron de purga de retenção desabilitada por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando cron de purga de retenção")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		if err := s.PurgeExpired(ctx); err != nil {
			logrus.WithError(err).Error("Erro na purga de cálculos excluídos")
		}
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar purga de retenção: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("Parando cron de purga de retenção")
		s.scheduler.Stop()
	}()

	return nil
}

// PurgeExpired remove os cálculos cuja exclusão lógica já ultrapassou o
// período mínimo de retenção
func (s *RetentionPurgeService) PurgeExpired(ctx context.Context) error {
	s.purgeMutex.Lock()
	defer s.purgeMutex.Unlock()

	if s.purgeRunning {
		logrus.Warn("Purga de retenção já está em execução")
		return nil
	}

	s.purgeRunning = true
	s.lastPurgeStartedAt = time.Now().UTC()
	defer func() {
		s.purgeRunning = false
	}()

	cutoff := time.Now().UTC().AddDate(0, 0, -s.config.MinAgeDays)

	logrus.WithFields(logrus.Fields{
		"cutoff": cutoff.Format(time.RFC3339),
	}).Info("Iniciando purga de cálculos excluídos")

	purged, err := s.repository.PurgeDeleted(ctx, cutoff)
	if err != nil {
		return err
	}

	s.lastPurgedCount = purged

	logrus.WithFields(logrus.Fields{
		"purged": purged,
	}).Info("Purga de cálculos excluídos concluída")

	return nil
}

// GetStatus retorna o status atual do agendador
func (s *RetentionPurgeService) GetStatus() map[string]any {
	return map[string]any{
		"purge_enabled":         s.config.Enabled,
		"purge_cron":            s.config.CronSchedule,
		"min_age_days":          s.config.MinAgeDays,
		"last_purge_started_at": s.lastPurgeStartedAt,
		"last_purged_count":     s.lastPurgedCount,
	}
}
