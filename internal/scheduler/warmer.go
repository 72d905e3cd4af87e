// Package scheduler keeps popular job searches in the cache.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"resume-coach/internal/usecase"

	"github.com/robfig/cron/v3"
)

const (
	DefaultSchedule = "@every 6h"

	warmWorkers  = 2
	warmInterval = 250 * time.Millisecond
)

type WarmQuery struct {
	Keywords string
	Location string
}

// ParseWarmQueries reads "keywords@location;keywords@location". The location
// part is optional. Blank entries are skipped.
func ParseWarmQueries(raw string) []WarmQuery {
	out := make([]WarmQuery, 0)
	for _, part := range strings.Split(raw, ";") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		kw, loc, _ := strings.Cut(part, "@")
		q := WarmQuery{Keywords: strings.TrimSpace(kw), Location: strings.TrimSpace(loc)}
		if q.Keywords == "" && q.Location == "" {
			continue
		}
		out = append(out, q)
	}
	return out
}

type Warmer struct {
	cron    *cron.Cron
	search  usecase.JobSearchUsecase
	queries []WarmQuery
	spec    string
	pool    pool
	logger  *log.Logger
	cancel  context.CancelFunc
	running sync.WaitGroup
}

var errServedFallback = errors.New("job API unavailable, fallback served")

func NewWarmer(search usecase.JobSearchUsecase, queries []WarmQuery, spec string, logger *log.Logger) *Warmer {
	if logger == nil {
		logger = log.Default()
	}
	if strings.TrimSpace(spec) == "" {
		spec = DefaultSchedule
	}
	return &Warmer{
		cron:    cron.New(cron.WithLogger(cron.PrintfLogger(logger))),
		search:  search,
		queries: queries,
		spec:    spec,
		pool:    newPool(warmWorkers, warmInterval),
		logger:  logger,
	}
}

// Start schedules the warm cycle and runs one immediately. Without queries
// it does nothing.
func (w *Warmer) Start(ctx context.Context) error {
	if len(w.queries) == 0 || w.search == nil {
		return nil
	}

	ctx, w.cancel = context.WithCancel(ctx)
	if _, err := w.cron.AddFunc(w.spec, func() { w.RunOnce(ctx) }); err != nil {
		w.cancel()
		return fmt.Errorf("cron.AddFunc %q: %w", w.spec, err)
	}

	w.cron.Start()
	w.logger.Printf("[Scheduler] Cache warmer started | spec=%s queries=%d", w.spec, len(w.queries))

	w.running.Add(1)
	go func() {
		defer w.running.Done()
		w.RunOnce(ctx)
	}()
	return nil
}

// Stop cancels any running cycle, the scheduled ones and the one started by
// Start, and waits for them to return.
func (w *Warmer) Stop() {
	if w.cancel == nil {
		return
	}
	w.cancel()
	<-w.cron.Stop().Done()
	w.running.Wait()
	w.logger.Printf("[Scheduler] Cache warmer stopped")
}

// RunOnce searches every configured query, page 1. Only live results count
// as warmed; a fallback page is never cached.
func (w *Warmer) RunOnce(ctx context.Context) {
	tasks := make([]task, 0, len(w.queries))
	for _, q := range w.queries {
		tasks = append(tasks, func(ctx context.Context) error {
			res, err := w.search.Search(ctx, usecase.JobSearchParams{Keywords: q.Keywords, Location: q.Location, Page: 1})
			if err == nil && res.Fallback {
				err = errServedFallback
			}
			if err != nil {
				w.logger.Printf("[Scheduler] Warm failed | keywords=%q location=%q err=%v", q.Keywords, q.Location, err)
			}
			return err
		})
	}

	warmed := w.pool.run(ctx, tasks)
	if ctx.Err() != nil {
		return
	}
	w.logger.Printf("[Scheduler] Warm cycle complete | warmed=%d/%d", warmed, len(w.queries))
}
