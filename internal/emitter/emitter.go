package emitter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/alitto/pond/v2"
	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"

	"github.com/feral-file/ff-token-registry/internal/adapter"
	"github.com/feral-file/ff-token-registry/internal/domain"
	"github.com/feral-file/ff-token-registry/internal/logger"
	"github.com/feral-file/ff-token-registry/internal/messaging"
	"github.com/feral-file/ff-token-registry/internal/store"
	"github.com/feral-file/ff-token-registry/internal/store/schema"
)

// DEFAULT_CURSOR_NAME names the persisted cursor when Config.Name is empty
const DEFAULT_CURSOR_NAME = "actions"

// Config holds the configuration for the event emitter
type Config struct {
	// Name identifies the emitter cursor persisted in the store
	Name string
	// StartCursor is the last journal cursor already published; entries after it are emitted
	StartCursor int64
	// BatchSize is the number of journal entries read per cycle
	BatchSize int
	// WorkerPoolSize is the number of concurrent publishes
	WorkerPoolSize int
	// PollInterval is how long to wait when the journal has nothing new
	PollInterval time.Duration
	// MaxPublishElapsed bounds the retries of a single publish
	MaxPublishElapsed time.Duration
}

// Emitter defines the interface for the event emitter
type Emitter interface {
	// Run relays committed journal entries to the publisher until ctx is done
	Run(ctx context.Context) error
	// Cursor returns the last published journal cursor
	Cursor() int64
	// Close closes the emitter and cleans up resources
	Close()
}

// emitter relays the action journal to the message broker
type emitter struct {
	publisher messaging.Publisher
	store     store.Store
	config    Config
	clock     adapter.Clock
	cursor    atomic.Int64
}

// NewEmitter creates a new event emitter
func NewEmitter(
	pub messaging.Publisher,
	st store.Store,
	cfg Config,
	clock adapter.Clock,
) Emitter {
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 100
	}
	if cfg.WorkerPoolSize <= 0 {
		cfg.WorkerPoolSize = 4
	}
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = time.Second
	}
	if cfg.MaxPublishElapsed <= 0 {
		cfg.MaxPublishElapsed = time.Minute
	}
	if cfg.Name == "" {
		cfg.Name = DEFAULT_CURSOR_NAME
	}

	e := &emitter{
		publisher: pub,
		store:     st,
		config:    cfg,
		clock:     clock,
	}
	e.cursor.Store(cfg.StartCursor)
	return e
}

// Run relays committed journal entries to the publisher until ctx is done
func (e *emitter) Run(ctx context.Context) error {
	// Resume from the saved cursor when it is ahead of the configured one
	saved, err := e.store.GetEmitterCursor(ctx, e.config.Name)
	if err != nil {
		return fmt.Errorf("failed to get emitter cursor: %w", err)
	}
	if saved > e.cursor.Load() {
		e.cursor.Store(saved)
		logger.InfoCtx(ctx, "Resuming from saved cursor",
			zap.String("name", e.config.Name),
			zap.Int64("cursor", saved))
	}

	logger.InfoCtx(ctx, "Starting action emitter",
		zap.Int64("cursor", e.cursor.Load()),
		zap.Int("batch_size", e.config.BatchSize),
		zap.Int("worker_pool_size", e.config.WorkerPoolSize),
	)

	pool := pond.NewPool(
		e.config.WorkerPoolSize,
		pond.WithQueueSize(e.config.BatchSize),
		pond.WithContext(ctx),
	)
	defer pool.StopAndWait()

	for {
		published, err := e.emitBatch(ctx, pool)
		if err != nil {
			if errors.Is(err, context.Canceled) || ctx.Err() != nil {
				return ctx.Err()
			}
			logger.ErrorCtx(ctx, err, zap.Int64("cursor", e.cursor.Load()))
		}
		if published == e.config.BatchSize && err == nil {
			continue
		}

		select {
		case <-e.clock.After(e.config.PollInterval):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// emitBatch publishes the next batch of journal entries. The cursor only
// advances, and is saved, once the whole batch is published.
func (e *emitter) emitBatch(ctx context.Context, pool pond.Pool) (int, error) {
	entries, _, err := e.store.GetActionJournal(ctx, store.ActionQueryFilter{
		Since: e.cursor.Load(),
		Limit: e.config.BatchSize,
	})
	if err != nil {
		return 0, fmt.Errorf("failed to read action journal: %w", err)
	}
	if len(entries) == 0 {
		return 0, nil
	}

	group := pool.NewGroup()
	for i := range entries {
		event := ToEvent(&entries[i])
		group.SubmitErr(func() error {
			return e.publishWithRetry(ctx, event)
		})
	}
	if err := group.Wait(); err != nil {
		return 0, err
	}

	last := entries[len(entries)-1].Cursor
	e.cursor.Store(last)
	if err := e.store.SetEmitterCursor(ctx, e.config.Name, last); err != nil {
		// The batch is out; a restart before the next save republishes it
		logger.WarnCtx(ctx, "Failed to save emitter cursor",
			zap.Error(err),
			zap.Int64("cursor", last))
	}
	logger.DebugCtx(ctx, "Published journal batch",
		zap.Int("count", len(entries)),
		zap.Int64("cursor", last))

	return len(entries), nil
}

func (e *emitter) publishWithRetry(ctx context.Context, event *domain.ActionEvent) error {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 200 * time.Millisecond
	b.MaxInterval = 10 * time.Second
	b.MaxElapsedTime = e.config.MaxPublishElapsed

	operation := func() error {
		return e.publisher.PublishEvent(ctx, event)
	}

	notifyOnError := func(err error, next time.Duration) {
		logger.WarnCtx(ctx, "Publish failed, retrying",
			zap.Error(err),
			zap.String("event_id", event.EventID),
			zap.Duration("next_retry_in", next),
		)
	}

	if err := backoff.RetryNotify(operation, backoff.WithContext(b, ctx), notifyOnError); err != nil {
		return fmt.Errorf("failed to publish event %s: %w", event.EventID, err)
	}
	return nil
}

// Cursor returns the last published journal cursor
func (e *emitter) Cursor() int64 {
	return e.cursor.Load()
}

// Close closes the emitter and cleans up resources
func (e *emitter) Close() {
	e.publisher.Close()
}

// ToEvent converts a journal entry into the event published for it
func ToEvent(entry *schema.ActionJournal) *domain.ActionEvent {
	return &domain.ActionEvent{
		EventID:   entry.EventID,
		Cursor:    entry.Cursor,
		Contract:  domain.Name(entry.Contract),
		Action:    entry.Action,
		Actor:     domain.Name(entry.Actor),
		Data:      json.RawMessage(entry.Data),
		Digest:    entry.Digest,
		Timestamp: entry.CreatedAt,
	}
}
