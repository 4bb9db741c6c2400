package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/example/casino-admin/internal/logging"
	"github.com/example/casino-admin/internal/model"
	"github.com/example/casino-admin/internal/store"
)

var (
	// ErrNotFound is matched by every "<resource> not found" error.
	ErrNotFound = errors.New("not found")
	// ErrInvalidInput marks caller mistakes such as malformed filters.
	ErrInvalidInput = errors.New("invalid input")
)

type notFoundError struct {
	resource string
}

func (e notFoundError) Error() string {
	return e.resource + " not found"
}

func (e notFoundError) Is(target error) bool {
	return target == ErrNotFound
}

func notFound(resource string) error {
	return notFoundError{resource: resource}
}

func invalidf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}

// Actor is the administrator on whose behalf an operation runs.
type Actor struct {
	UserID    string
	Username  string
	Role      string
	IPAddress string
	UserAgent string
	RequestID string
}

// AdminUseCase implements the back-office reporting and record keeping.
// It only talks to the injected collections and cache.
type AdminUseCase struct {
	cols     *store.Collections
	cache    Cache
	cacheTTL time.Duration
	logger   *zap.Logger
	now      func() time.Time
}

// NewAdminUseCase constructs a new use case instance. A nil cache disables
// dashboard caching.
func NewAdminUseCase(cols *store.Collections, cache Cache, cacheTTL time.Duration, logger *zap.Logger) *AdminUseCase {
	if cache == nil {
		cache = NoopCache{}
	}
	return &AdminUseCase{
		cols:     cols,
		cache:    cache,
		cacheTTL: cacheTTL,
		logger:   logger.Named("admin_usecase"),
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Ping checks that the collection store is reachable.
func (uc *AdminUseCase) Ping(ctx context.Context) error {
	return uc.cols.Ping(ctx)
}

// recordAction appends to the audit trail. The write is best effort: a
// failure is logged and never reaches the caller.
func (uc *AdminUseCase) recordAction(ctx context.Context, actor Actor, action, resource, resourceID string, details map[string]any) {
	if details == nil {
		details = map[string]any{}
	}
	entry := &model.AuditLog{
		ID:            uuid.NewString(),
		Timestamp:     uc.now(),
		AdminUserID:   actor.UserID,
		AdminUsername: actor.Username,
		Action:        action,
		Resource:      resource,
		ResourceID:    resourceID,
		Details:       details,
		IPAddress:     actor.IPAddress,
		UserAgent:     actor.UserAgent,
	}
	if err := uc.cols.AuditLogs.Insert(ctx, entry); err != nil {
		wrapped := logging.NewOperationError("usecase.record_action", actor.RequestID, err)
		logging.WithOperation(uc.logger, "usecase.record_action", actor.RequestID).
			Warn("audit log write dropped",
				zap.String("action", action),
				zap.String("resource", resource),
				zap.Error(wrapped))
	}
}

func (uc *AdminUseCase) storeError(op string, actor Actor, err error) error {
	if errors.Is(err, store.ErrNotFound) {
		return err
	}
	wrapped := logging.NewOperationError(op, actor.RequestID, err)
	logging.WithOperation(uc.logger, op, actor.RequestID).Error("store operation failed", zap.Error(wrapped))
	return wrapped
}
