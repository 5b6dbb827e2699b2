package background

import (
	"context"
	"log"
	"time"

	"staymart/internal/services"

	"github.com/go-co-op/gocron/v2"
)

// JobScheduler keeps the cached admin stats warm so dashboard reads rarely
// hit the stores.
type JobScheduler struct {
	scheduler gocron.Scheduler
	statsSvc  services.StatsService
}

func NewJobScheduler(statsSvc services.StatsService) (*JobScheduler, error) {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}

	js := &JobScheduler{scheduler: scheduler, statsSvc: statsSvc}

	_, err = scheduler.NewJob(
		gocron.DurationJob(5*time.Minute),
		gocron.NewTask(js.refreshStats),
		gocron.WithName("admin-stats-refresh"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return nil, err
	}
	return js, nil
}

func (js *JobScheduler) Start() {
	log.Println("Starting background job scheduler")
	js.scheduler.Start()
}

func (js *JobScheduler) Stop() error {
	log.Println("Stopping background job scheduler")
	return js.scheduler.Shutdown()
}

func (js *JobScheduler) refreshStats() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if _, err := js.statsSvc.Refresh(ctx); err != nil {
		log.Printf("Failed to refresh admin stats: %v", err)
	}
}
