// Package refresh reloads the article snapshot on a fixed cadence.
package refresh

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/mohammad-safakhou/technote/internal/article"
)

// DefaultInterval is the reload cadence when none is configured.
const DefaultInterval = 300 * time.Second

// Loader is the snapshot source; *store.Store satisfies it.
type Loader interface {
	Load(ctx context.Context) ([]article.Article, error)
}

// Refresher calls Loader.Load every Interval. Runs never overlap: a tick that
// arrives while a load is in flight is skipped.
type Refresher struct {
	loader   Loader
	interval time.Duration
	logger   *log.Logger

	mu      sync.Mutex
	cron    *cron.Cron
	cancel  context.CancelFunc
	lastRun time.Time
	lastErr error
}

// New returns a stopped refresher.
func New(loader Loader, interval time.Duration) *Refresher {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Refresher{
		loader:   loader,
		interval: interval,
		logger:   log.New(log.Writer(), "[REFRESH] ", log.LstdFlags),
	}
}

// Interval is the configured cadence.
func (r *Refresher) Interval() time.Duration { return r.interval }

// RefreshNow performs one load synchronously.
func (r *Refresher) RefreshNow(ctx context.Context) error {
	list, err := r.loader.Load(ctx)
	r.mu.Lock()
	r.lastRun = time.Now()
	r.lastErr = err
	r.mu.Unlock()
	if err != nil {
		return fmt.Errorf("refresh: %w", err)
	}
	r.logger.Printf("snapshot refreshed: %d articles", len(list))
	return nil
}

// LastRun reports when the last cycle finished and how it ended.
func (r *Refresher) LastRun() (time.Time, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.lastRun, r.lastErr
}

// Start schedules RefreshNow every interval. Cancelling ctx or calling Stop
// ends the schedule and aborts an in-flight load.
func (r *Refresher) Start(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.cron != nil {
		return errors.New("refresher already started")
	}
	runCtx, cancel := context.WithCancel(ctx)
	c := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.PrintfLogger(r.logger))))
	if _, err := c.AddFunc(fmt.Sprintf("@every %s", r.interval), func() {
		cycleCtx, done := context.WithTimeout(runCtx, r.interval)
		defer done()
		if err := r.RefreshNow(cycleCtx); err != nil {
			r.logger.Printf("%v", err)
		}
	}); err != nil {
		cancel()
		return fmt.Errorf("schedule refresh: %w", err)
	}
	c.Start()
	r.cron = c
	r.cancel = cancel
	go func() {
		<-runCtx.Done()
		r.Stop()
	}()
	r.logger.Printf("refreshing every %s", r.interval)
	return nil
}

// Stop ends the schedule and waits for a running cycle to return.
func (r *Refresher) Stop() {
	r.mu.Lock()
	c, cancel := r.cron, r.cancel
	r.cron, r.cancel = nil, nil
	r.mu.Unlock()
	if c == nil {
		return
	}
	cancel()
	<-c.Stop().Done()
}
