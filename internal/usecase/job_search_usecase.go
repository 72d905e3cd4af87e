package usecase

import (
	"context"
	"log"
	"strings"
	"time"

	"resume-coach/internal/domain/job"
	"resume-coach/internal/fallback"
	"resume-coach/internal/infrastructure/jobsearch"
	"resume-coach/internal/search"
)

const (
	defaultFallbackPageSize = 10
	searchLockTTL           = 30 * time.Second
	searchLockWait          = 300 * time.Millisecond
)

type JobSearchParams struct {
	Keywords string
	Location string
	Page     int
}

type JobSearchUsecase interface {
	Search(ctx context.Context, params JobSearchParams) (job.SearchResult, error)
}

type JobSearch struct {
	client   jobsearch.Client
	cache    SearchCache
	ttl      time.Duration
	pageSize int
	logger   *log.Logger
	now      func() time.Time
}

// NewJobSearchUsecase wires the job API client and cache. A nil client runs
// in offline mode and always serves the fallback list. ttl <= 0 uses the
// cache default.
func NewJobSearchUsecase(client jobsearch.Client, cache SearchCache, ttl time.Duration, pageSize int, logger *log.Logger) *JobSearch {
	if pageSize <= 0 {
		pageSize = defaultFallbackPageSize
	}
	return &JobSearch{client: client, cache: cache, ttl: ttl, pageSize: pageSize, logger: logger, now: time.Now}
}

func (u *JobSearch) Search(ctx context.Context, params JobSearchParams) (job.SearchResult, error) {
	params.Keywords = strings.TrimSpace(params.Keywords)
	params.Location = strings.TrimSpace(params.Location)
	if params.Keywords == "" && params.Location == "" {
		return job.SearchResult{}, ErrSearchCriteriaRequired
	}
	if params.Page == 0 {
		params.Page = 1
	}
	if params.Page < 0 {
		return job.SearchResult{}, ErrInvalidPage
	}

	if u.client == nil {
		return u.fallback(params), nil
	}

	cacheKey := JobsSearchCacheKey(params)
	lockKey := JobsSearchLockKey(cacheKey)

	if res, ok := u.cached(ctx, cacheKey); ok {
		return res, nil
	}

	lockAcquired := false
	if u.cache != nil {
		ok, err := u.cache.SetIfNotExists(ctx, lockKey, "1", searchLockTTL)
		switch {
		case err == nil && ok:
			lockAcquired = true
		case err == nil:
			// Another request is fetching the same page; give it a moment.
			jitter := time.Duration(time.Now().UnixNano()%201) * time.Millisecond
			select {
			case <-ctx.Done():
			case <-time.After(searchLockWait + jitter):
			}
			if res, ok := u.cached(ctx, cacheKey); ok {
				return res, nil
			}
			u.logf("[Jobs] Lock wait fallback: %s", lockKey)
		}
	}
	if lockAcquired {
		defer func() { _ = u.cache.Delete(context.WithoutCancel(ctx), lockKey) }()
	}

	res, err := u.client.Search(ctx, jobsearch.Query{
		Keywords: params.Keywords,
		Location: params.Location,
		Page:     params.Page,
	})
	if err != nil {
		u.logf("[Jobs] Search failed, serving fallback | keywords=%q location=%q err=%v", params.Keywords, params.Location, err)
		return u.fallback(params), nil
	}
	if res.Jobs == nil {
		res.Jobs = []job.Posting{}
	}
	res.Page = params.Page

	if u.cache != nil {
		if err := u.cache.SetJSON(ctx, cacheKey, res, u.ttl); err == nil {
			u.logf("[Jobs] Cache SET: %s", cacheKey)
		}
	}
	return res, nil
}

func (u *JobSearch) cached(ctx context.Context, key string) (job.SearchResult, bool) {
	if u.cache == nil {
		return job.SearchResult{}, false
	}
	var res job.SearchResult
	hit, err := u.cache.GetJSON(ctx, key, &res)
	if err != nil || !hit {
		u.logf("[Jobs] Cache MISS: %s", key)
		return job.SearchResult{}, false
	}
	u.logf("[Jobs] Cache HIT: %s", key)
	if res.Jobs == nil {
		res.Jobs = []job.Posting{}
	}
	return res, true
}

// fallback filters and ranks the static job list. A query that matches
// nothing first drops the location filter, then serves the whole list.
func (u *JobSearch) fallback(params JobSearchParams) job.SearchResult {
	now := u.now()
	all := fallback.Jobs(now)
	qctx := search.ProcessQuery(params.Keywords)

	matched := search.FilterRelevant(all, qctx.Variants, params.Location)
	if len(matched) == 0 && params.Location != "" {
		matched = search.FilterRelevant(all, qctx.Variants, "")
	}
	if len(matched) == 0 {
		if fb := search.FallbackFirstWord(qctx.Normalized); fb != "" && fb != qctx.Normalized {
			matched = search.FilterRelevant(all, search.ProcessQuery(fb).Variants, "")
		}
	}
	if len(matched) == 0 {
		matched = all
	}
	matched = search.RankJobs(matched, qctx.Variants, now)

	page := []job.Posting{}
	// Compare page counts before multiplying; a huge page would overflow the offset.
	if pages := (len(matched) + u.pageSize - 1) / u.pageSize; params.Page <= pages {
		start := (params.Page - 1) * u.pageSize
		end := min(start+u.pageSize, len(matched))
		page = make([]job.Posting, end-start)
		copy(page, matched[start:end])
	}

	return job.SearchResult{Jobs: page, Page: params.Page, Total: len(matched), Fallback: true}
}

func (u *JobSearch) logf(format string, args ...any) {
	if u.logger != nil {
		u.logger.Printf(format, args...)
	}
}

var _ JobSearchUsecase = (*JobSearch)(nil)
