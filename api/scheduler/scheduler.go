package scheduler

import (
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/rafaelcosta/card-bin-api/api"
	"github.com/rafaelcosta/card-bin-api/databases"
)

// Scheduler handles the periodic background jobs: refreshing the BIN
// dataset and pruning stale rate-limit counters
type Scheduler struct {
	cron    *cron.Cron
	CardDB  databases.CardBinDatabase
	Fetcher *databases.CardBinFetcher
	Limiter *api.RateLimiter
	Metrics *api.Metrics
}

// NewScheduler creates a new scheduler instance
func NewScheduler(
	cardDB databases.CardBinDatabase,
	fetcher *databases.CardBinFetcher,
	limiter *api.RateLimiter,
	metrics *api.Metrics,
) *Scheduler {
	return &Scheduler{
		cron:    cron.New(cron.WithLocation(time.UTC)),
		CardDB:  cardDB,
		Fetcher: fetcher,
		Limiter: limiter,
		Metrics: metrics,
	}
}

// Start begins the scheduler with all registered jobs
func (s *Scheduler) Start() {
	// Refresh the BIN dataset daily at 3 AM UTC
	_, err := s.cron.AddFunc("0 3 * * *", s.refreshDataset)
	if err != nil {
		zap.S().Errorw("failed to register dataset refresh job", "error", err)
	}

	// Drop rate counters for past days shortly after the UTC rollover
	_, err = s.cron.AddFunc("30 0 * * *", s.pruneCounters)
	if err != nil {
		zap.S().Errorw("failed to register counter pruning job", "error", err)
	}

	s.cron.Start()
	zap.S().Info("BIN dataset scheduler started")
}

// Stop gracefully stops the scheduler
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	zap.S().Info("BIN dataset scheduler stopped")
}

// refreshDataset refetches the remote CSV and swaps the in-memory table.
// A failed or empty fetch keeps the previous table in place.
func (s *Scheduler) refreshDataset() {
	ctx, cancel := api.WithFetchTimeout(nil)
	defer cancel()

	entries, err := s.Fetcher.FetchAll(ctx)
	if err != nil {
		zap.S().Errorw("failed to refresh bin dataset", "error", err)
		return
	}
	if len(entries) == 0 {
		zap.S().Warn("bin dataset refresh returned no rows, keeping previous table")
		return
	}

	s.CardDB.ReplaceAll(entries)
	s.Metrics.DatasetEntries.Set(float64(s.CardDB.Count()))
	zap.S().Infow("bin dataset refreshed", "entries", s.CardDB.Count())
}

// pruneCounters discards yesterday's (and older) rate-limit keys
func (s *Scheduler) pruneCounters() {
	removed := s.Limiter.PruneBefore(time.Now().UTC())
	zap.S().Infow("pruned stale rate counters", "removed", removed)
}
