package usecase

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"resume-coach/internal/domain/job"
	"resume-coach/internal/domain/resume"
	"resume-coach/internal/infrastructure/ai"
	"resume-coach/internal/infrastructure/events"
	"resume-coach/internal/infrastructure/jobsearch"
)

type fakeGenerator struct {
	out     string
	err     error
	prompts []ai.Prompt
}

func (f *fakeGenerator) Generate(_ context.Context, p ai.Prompt) (string, error) {
	f.prompts = append(f.prompts, p)
	return f.out, f.err
}

type fakeJobClient struct {
	res     job.SearchResult
	err     error
	queries []jobsearch.Query
}

func (f *fakeJobClient) Search(_ context.Context, q jobsearch.Query) (job.SearchResult, error) {
	f.queries = append(f.queries, q)
	return f.res, f.err
}

type memCache struct {
	mu   sync.Mutex
	data map[string][]byte
	sets int
}

func newMemCache() *memCache { return &memCache{data: map[string][]byte{}} }

func (c *memCache) GetJSON(_ context.Context, key string, out any) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	b, ok := c.data[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(b, out)
}

func (c *memCache) SetJSON(_ context.Context, key string, value any, _ time.Duration) error {
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = b
	c.sets++
	return nil
}

func (c *memCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.data, key)
	return nil
}

func (c *memCache) SetIfNotExists(_ context.Context, key string, value string, _ time.Duration) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.data[key]; ok {
		return false, nil
	}
	c.data[key] = []byte(value)
	return true, nil
}

type fakeStore struct {
	keys []string
	err  error
}

func (f *fakeStore) Put(_ context.Context, key, _ string, _ []byte) error {
	if f.err != nil {
		return f.err
	}
	f.keys = append(f.keys, key)
	return nil
}

type fakeAnalysisRepo struct {
	saved   []resume.Record
	list    []resume.Record
	saveErr error
	listErr error
}

func (f *fakeAnalysisRepo) Save(_ context.Context, rec resume.Record) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.saved = append(f.saved, rec)
	return nil
}

func (f *fakeAnalysisRepo) ListByUser(context.Context, string, int) ([]resume.Record, error) {
	return f.list, f.listErr
}

type fakePublisher struct {
	events []events.Event
	err    error
}

func (f *fakePublisher) Publish(_ context.Context, evt events.Event) error {
	f.events = append(f.events, evt)
	return f.err
}
