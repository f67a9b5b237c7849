package auth

import (
	"LunchAPI/internal/logger"
	"context"
	"sync"
	"time"
)

const (
	// UsageBufferSize is the size of the usage buffer
	UsageBufferSize = 1000

	// UsageFlushInterval is how often buffered token uses are written
	UsageFlushInterval = 2 * time.Second
)

// UsageEntry is one authenticated request
type UsageEntry struct {
	TokenID   int64
	Timestamp time.Time
}

// UsageTracker records when tokens were last used with buffered writes
type UsageTracker struct {
	repo     *Repository
	buffer   chan UsageEntry
	stopCh   chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

// NewUsageTracker creates a new usage tracker
func NewUsageTracker(repo *Repository) *UsageTracker {
	return &UsageTracker{
		repo:   repo,
		buffer: make(chan UsageEntry, UsageBufferSize),
		stopCh: make(chan struct{}),
	}
}

// RecordRequest records a token use (non-blocking)
func (t *UsageTracker) RecordRequest(tokenID int64) {
	entry := UsageEntry{
		TokenID:   tokenID,
		Timestamp: time.Now(),
	}

	// Dropping an entry only delays last_used_at until the next request.
	select {
	case t.buffer <- entry:
	default:
		logger.Debug("usage buffer full, dropping entry", "tokenId", tokenID)
	}
}

// Start begins the background writer
func (t *UsageTracker) Start(ctx context.Context) {
	t.wg.Add(1)
	go func() {
		defer t.wg.Done()
		t.usageWriter(ctx)
	}()
}

// Stop flushes pending entries and waits for the writer to exit
func (t *UsageTracker) Stop() {
	t.stopOnce.Do(func() { close(t.stopCh) })
	t.wg.Wait()
}

func (t *UsageTracker) usageWriter(ctx context.Context) {
	ticker := time.NewTicker(UsageFlushInterval)
	defer ticker.Stop()

	batch := make(map[int64]time.Time)
	add := func(e UsageEntry) {
		if prev, ok := batch[e.TokenID]; !ok || e.Timestamp.After(prev) {
			batch[e.TokenID] = e.Timestamp
		}
	}

	for {
		select {
		case <-ctx.Done():
			t.drain(add)
			t.flush(batch)
			return
		case <-t.stopCh:
			t.drain(add)
			t.flush(batch)
			return
		case entry := <-t.buffer:
			add(entry)
			if len(batch) >= 100 {
				t.flush(batch)
				batch = make(map[int64]time.Time)
			}
		case <-ticker.C:
			if len(batch) > 0 {
				t.flush(batch)
				batch = make(map[int64]time.Time)
			}
		}
	}
}

func (t *UsageTracker) drain(add func(UsageEntry)) {
	for {
		select {
		case entry := <-t.buffer:
			add(entry)
		default:
			return
		}
	}
}

func (t *UsageTracker) flush(batch map[int64]time.Time) {
	if len(batch) == 0 {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := t.repo.TouchTokens(ctx, batch); err != nil {
		logger.Warn("failed to record token usage", "tokens", len(batch), "err", err)
	}
}
