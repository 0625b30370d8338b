// Package refresh - фоновий прогрів market overview кешу за розкладом
package refresh

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/GabrielaCA88/ibitracker/internal/cache"
	"github.com/GabrielaCA88/ibitracker/internal/lending"
	"github.com/GabrielaCA88/ibitracker/internal/logger"
)

const overviewTimeout = 60 * time.Second

// Scheduler періодично оновлює market overview у кеші, щоб API
// віддавав його без очікування провайдерів
type Scheduler struct {
	cron     *cron.Cron
	schedule string
	lending  *lending.Service
	cache    *cache.Cache
	log      *logger.Logger
}

// NewScheduler створює scheduler з cron виразом розкладу
func NewScheduler(schedule string, lendingService *lending.Service, c *cache.Cache, log *logger.Logger) *Scheduler {
	return &Scheduler{
		cron:     cron.New(),
		schedule: schedule,
		lending:  lendingService,
		cache:    c,
		log:      log,
	}
}

// Start реєструє розклад та запускає перший прогрів у фоні
func (s *Scheduler) Start() error {
	_, err := s.cron.AddFunc(s.schedule, s.RunNow)
	if err != nil {
		return err
	}

	s.cron.Start()
	go s.RunNow()

	s.log.Info("✅ Market overview scheduler started (%s)", s.schedule)
	return nil
}

// Stop зупиняє розклад
func (s *Scheduler) Stop() {
	s.cron.Stop()
	s.log.Info("Market overview scheduler stopped")
}

// RunNow виконує прогрів негайно
func (s *Scheduler) RunNow() {
	s.log.Info("Refreshing market overview...")

	ctx, cancel := context.WithTimeout(context.Background(), overviewTimeout)
	defer cancel()

	overview := s.lending.MarketOverview(ctx)
	s.cache.Set(cache.KeyMarketOverview, overview)

	s.log.Info("Market overview refreshed: %d protocols", len(overview))
}
