package analytics

import (
	"context"
	"sync"
	"time"

	"github.com/nulzo/prompt-router/internal/store"
	"github.com/nulzo/prompt-router/internal/store/model"
	"go.uber.org/zap"
)

// Ingestor handles the asynchronous persistence of routing decisions.
type Ingestor interface {
	Log(log *model.RouteLog)
	// Start runs the worker. Cancelling ctx does not stop it; only Stop does, so
	// requests still draining during shutdown get their decisions persisted.
	Start(ctx context.Context)
	// Stop flushes whatever is buffered and waits for the worker to exit.
	// Logs arriving afterwards are dropped.
	Stop()
}

type Options struct {
	BufferSize    int
	BatchSize     int
	FlushInterval time.Duration
}

type ingestor struct {
	logger    *zap.Logger
	repo      store.Repository
	logChan   chan *model.RouteLog
	batchSize int
	flushTime time.Duration
	done      chan struct{}

	mu     sync.RWMutex
	closed bool
}

func NewIngestor(logger *zap.Logger, repo store.Repository, opts Options) Ingestor {
	if opts.BufferSize <= 0 {
		opts.BufferSize = 1000
	}
	if opts.BatchSize <= 0 {
		opts.BatchSize = 50
	}
	if opts.FlushInterval <= 0 {
		opts.FlushInterval = 5 * time.Second
	}
	return &ingestor{
		logger:    logger,
		repo:      repo,
		logChan:   make(chan *model.RouteLog, opts.BufferSize),
		batchSize: opts.BatchSize,
		flushTime: opts.FlushInterval,
		done:      make(chan struct{}),
	}
}

func (i *ingestor) Log(log *model.RouteLog) {
	i.mu.RLock()
	defer i.mu.RUnlock()

	if i.closed {
		i.logger.Warn("Route log ingestor stopped, dropping entry", zap.String("id", log.ID))
		return
	}

	select {
	case i.logChan <- log:
	default:
		i.logger.Warn("Route log buffer full, dropping entry", zap.String("id", log.ID))
	}
}

func (i *ingestor) Start(ctx context.Context) {
	go i.worker(ctx)
}

func (i *ingestor) Stop() {
	i.mu.Lock()
	if !i.closed {
		i.closed = true
		close(i.logChan)
	}
	i.mu.Unlock()

	<-i.done
}

func (i *ingestor) worker(ctx context.Context) {
	defer close(i.done)

	// writes outlive cancellation of ctx
	ctx = context.WithoutCancel(ctx)

	batch := make([]*model.RouteLog, 0, i.batchSize)
	ticker := time.NewTicker(i.flushTime)
	defer ticker.Stop()

	flush := func() {
		if len(batch) == 0 {
			return
		}

		failed := 0
		for _, log := range batch {
			if err := i.repo.RouteLogs().Log(ctx, log); err != nil {
				failed++
				i.logger.Error("Failed to persist route log",
					zap.String("id", log.ID),
					zap.String("request_id", log.RequestID),
					zap.Error(err),
				)
			}
		}
		if failed > 0 {
			i.logger.Warn("Route log batch partially persisted",
				zap.Int("failed", failed),
				zap.Int("count", len(batch)),
			)
		}
		batch = batch[:0]
	}

	for {
		select {
		case log, ok := <-i.logChan:
			if !ok {
				flush()
				return
			}
			batch = append(batch, log)
			if len(batch) >= i.batchSize {
				flush()
			}
		case <-ticker.C:
			flush()
		}
	}
}

// Discard drops every log. Used when analytics are disabled.
type Discard struct{}

func (Discard) Log(*model.RouteLog) {}

func (Discard) Start(context.Context) {}

func (Discard) Stop() {}
