package processor

import (
	"context"
	"log"

	"github.com/robfig/cron/v3"
)

type DatasetReloader interface {
	Reload(ctx context.Context) error
}

type RefreshScheduler struct {
	cron     *cron.Cron
	reloader DatasetReloader
}

func NewRefreshScheduler(reloader DatasetReloader) *RefreshScheduler {
	c := cron.New(cron.WithLogger(cron.VerbosePrintfLogger(log.Default())))

	return &RefreshScheduler{
		cron:     c,
		reloader: reloader,
	}
}

func (s *RefreshScheduler) Start(ctx context.Context, schedule string) error {
	log.Printf("Starting refresh scheduler with schedule: %s", schedule)

	_, err := s.cron.AddFunc(schedule, func() {
		log.Println("Cron job triggered: reloading dataset")

		if err := s.reloader.Reload(ctx); err != nil {
			log.Printf("ERROR: Failed to reload dataset: %v", err)
		} else {
			log.Println("Cron job completed: dataset reloaded successfully")
		}
	})

	if err != nil {
		return err
	}

	s.cron.Start()
	log.Println("Refresh scheduler started")

	log.Println("Performing initial dataset load...")
	if err := s.reloader.Reload(ctx); err != nil {
		log.Printf("WARNING: Failed initial dataset load: %v", err)
	} else {
		log.Println("Initial dataset load completed")
	}

	return nil
}

func (s *RefreshScheduler) Stop() {
	log.Println("Stopping refresh scheduler...")
	ctx := s.cron.Stop()
	<-ctx.Done()
	log.Println("Refresh scheduler stopped")
}

func (s *RefreshScheduler) GetEntries() []cron.Entry {
	return s.cron.Entries()
}
