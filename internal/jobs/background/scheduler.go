package background

import (
	"context"
	"log"
	"time"

	"storefront/internal/jobs"

	"github.com/go-co-op/gocron/v2"
)

// Scheduler runs the recurring background jobs
type Scheduler struct {
	scheduler      gocron.Scheduler
	stockAlertSvc  *jobs.StockAlertService
	stockThreshold int
}

// NewScheduler creates the scheduler and registers its jobs
func NewScheduler(stockAlertSvc *jobs.StockAlertService, stockThreshold int) (*Scheduler, error) {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}

	s := &Scheduler{
		scheduler:      scheduler,
		stockAlertSvc:  stockAlertSvc,
		stockThreshold: stockThreshold,
	}

	// Low-stock check - every 15 minutes
	_, err = scheduler.NewJob(
		gocron.DurationJob(15*time.Minute),
		gocron.NewTask(s.runLowStockCheck, context.Background()),
		gocron.WithName("low-stock-check"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return nil, err
	}

	return s, nil
}

// Start starts the job scheduler
func (s *Scheduler) Start() {
	log.Printf("Starting background job scheduler")
	s.scheduler.Start()
}

// Stop stops the job scheduler
func (s *Scheduler) Stop() error {
	log.Printf("Stopping background job scheduler")
	return s.scheduler.Shutdown()
}

func (s *Scheduler) runLowStockCheck(ctx context.Context) {
	alerts, err := s.stockAlertSvc.CheckLowStock(ctx, s.stockThreshold)
	if err != nil {
		log.Printf("Low-stock check failed: %v", err)
		return
	}
	if len(alerts) > 0 {
		log.Printf("Low-stock check found %d products at or below threshold %d", len(alerts), s.stockThreshold)
	}
}
