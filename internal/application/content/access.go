package content

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"kingdomstudio/internal/metrics"
)

// DefaultTimeout bounds each remote call.
const DefaultTimeout = 10 * time.Second

// Access is the single gateway to the remote store. Reads are fail-soft:
// they log, count and substitute an empty or default value. Writes
// validate locally, then surface store rejections as *RemoteWriteError.
// Access holds no state between calls and is safe for concurrent use.
type Access struct {
	stores  Stores
	logger  *zap.Logger
	timeout time.Duration
	newID   func() string
	now     func() time.Time
}

// Option customises an Access.
type Option func(*Access)

// WithTimeout sets the per-call timeout.
func WithTimeout(d time.Duration) Option {
	return func(a *Access) {
		if d > 0 {
			a.timeout = d
		}
	}
}

// WithIDGenerator replaces uuid generation (tests).
func WithIDGenerator(fn func() string) Option {
	return func(a *Access) { a.newID = fn }
}

// WithClock replaces time.Now (tests).
func WithClock(fn func() time.Time) Option {
	return func(a *Access) { a.now = fn }
}

// NewAccess creates an Access over the given stores.
// PRE: every field of stores is non-nil
// POST: Returns a ready Access
func NewAccess(stores Stores, logger *zap.Logger, opts ...Option) *Access {
	a := &Access{
		stores:  stores,
		logger:  logger,
		timeout: DefaultTimeout,
		newID:   uuid.NewString,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

func (a *Access) bound(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, a.timeout)
}

// readFailed logs and counts a recovered read.
func (a *Access) readFailed(op, entity string, err error) {
	rerr := &RemoteReadError{Op: op, Entity: entity, Err: err}
	metrics.RemoteReadFailures.WithLabelValues(entity).Inc()
	a.logger.Warn("remote_read_failed",
		zap.String("entity", entity),
		zap.String("op", op),
		zap.String("code", storeCode(err)),
		zap.Error(rerr),
	)
}

// writeFailed logs a store rejection and returns it as a RemoteWriteError.
func (a *Access) writeFailed(op, entity string, err error) error {
	werr := &RemoteWriteError{Op: op, Entity: entity, Err: err}
	a.logger.Error("remote_write_failed",
		zap.String("entity", entity),
		zap.String("op", op),
		zap.String("code", storeCode(err)),
		zap.Error(werr),
	)
	return werr
}

// isStoredID reports whether id could name a stored row. Ids that are
// not UUIDs cannot exist, so updating or removing them is a successful
// no-op, the same as for a UUID that matches no row.
func isStoredID(id string) bool {
	return uuid.Validate(id) == nil
}
