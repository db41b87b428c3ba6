package question

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// memStore is an in-memory Store with all-or-nothing appends.
type memStore struct {
	mu        sync.Mutex
	records   []Record
	nextID    int64
	appendErr error
	listCalls int
}

func newMemStore() *memStore {
	return &memStore{nextID: 1}
}

func (s *memStore) Append(_ context.Context, records []Record) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.appendErr != nil {
		return 0, s.appendErr
	}
	for _, rec := range records {
		rec.ID = s.nextID
		s.nextID++
		s.records = append(s.records, rec)
	}
	return len(records), nil
}

func (s *memStore) ListAll(_ context.Context) ([]Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listCalls++
	out := make([]Record, len(s.records))
	copy(out, s.records)
	return out, nil
}

func (s *memStore) ListForQuiz(ctx context.Context) ([]Item, error) {
	records, err := s.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return BuildQuiz(records), nil
}

func (s *memStore) Get(_ context.Context, id int64) (Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, rec := range s.records {
		if rec.ID == id {
			return rec, nil
		}
	}
	return Record{}, fmt.Errorf("question %d: %w", id, ErrNotFound)
}

func (s *memStore) Count(_ context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return int64(len(s.records)), nil
}

func (s *memStore) lists() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.listCalls
}

type memCache struct {
	mu       sync.Mutex
	version  int64
	payloads map[int64][]Item
	failGet  bool
	// failInvalidate makes Invalidate fail while Evict still works.
	failInvalidate bool
	evictions      int
}

func newMemCache() *memCache {
	return &memCache{payloads: map[int64][]Item{}}
}

func (c *memCache) Version(context.Context) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.version, nil
}

func (c *memCache) Get(_ context.Context, version int64) ([]Item, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.failGet {
		return nil, errors.New("cache unavailable")
	}
	return c.payloads[version], nil
}

func (c *memCache) Set(_ context.Context, version int64, items []Item) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.payloads[version] = items
	return nil
}

func (c *memCache) Invalidate(context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.failInvalidate {
		return errors.New("cache unavailable")
	}
	c.version++
	return nil
}

func (c *memCache) Evict(context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.evictions++
	delete(c.payloads, c.version)
	return nil
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []UpdateEvent
}

func (p *recordingPublisher) Publish(_ context.Context, evt UpdateEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, evt)
	return nil
}

type failingUploads struct{}

func (failingUploads) Save(string, []byte) (string, error) {
	return "", errors.New("disk full")
}
