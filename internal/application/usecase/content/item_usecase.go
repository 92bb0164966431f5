package content

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/haintran/portfolio-api/internal/application/service"
	"github.com/haintran/portfolio-api/internal/domain/profile"
	"github.com/haintran/portfolio-api/pkg/apperror"
	"github.com/haintran/portfolio-api/pkg/logger"
)

// maxWriteAttempts bounds the optimistic-lock retry loop. Each attempt
// re-reads the aggregate, reapplies the mutation, and writes conditioned
// on the version it read.
const maxWriteAttempts = 3

// ItemUseCase runs nested-collection edits for one collection of the
// profile aggregate. The whole aggregate is read, mutated in memory, and
// written back; the version condition turns the lost-update race into a
// retryable conflict.
type ItemUseCase[T any] struct {
	col     profile.Collection[T]
	repo    profile.Repository
	events  service.AuditPublisher
	cache   service.ProfileCache
	cleanup func(ctx context.Context, item T)
	logger  logger.Logger
}

func NewItemUseCase[T any](
	col profile.Collection[T],
	repo profile.Repository,
	events service.AuditPublisher,
	cache service.ProfileCache,
	log logger.Logger,
) *ItemUseCase[T] {
	return &ItemUseCase[T]{
		col:    col,
		repo:   repo,
		events: events,
		cache:  cache,
		logger: log,
	}
}

// WithCleanup registers a best-effort hook invoked with the removed
// element after a successful Remove.
func (uc *ItemUseCase[T]) WithCleanup(fn func(ctx context.Context, item T)) *ItemUseCase[T] {
	uc.cleanup = fn
	return uc
}

func (uc *ItemUseCase[T]) List(ctx context.Context, ownerID uuid.UUID) ([]T, error) {
	p, err := uc.loadProfile(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	return uc.col.List(p), nil
}

func (uc *ItemUseCase[T]) Add(ctx context.Context, ownerID uuid.UUID, item T) (T, error) {
	return uc.mutate(ctx, ownerID, "added", func(p *profile.Profile) (T, error) {
		return uc.col.Add(p, item)
	})
}

func (uc *ItemUseCase[T]) Update(ctx context.Context, ownerID uuid.UUID, itemID uuid.UUID, item T) (T, error) {
	return uc.mutate(ctx, ownerID, "updated", func(p *profile.Profile) (T, error) {
		return uc.col.Update(p, itemID, item)
	})
}

func (uc *ItemUseCase[T]) Remove(ctx context.Context, ownerID uuid.UUID, itemID uuid.UUID) (T, error) {
	removed, err := uc.mutate(ctx, ownerID, "removed", func(p *profile.Profile) (T, error) {
		return uc.col.Remove(p, itemID)
	})
	if err != nil {
		return removed, err
	}
	if uc.cleanup != nil {
		uc.cleanup(ctx, removed)
	}
	return removed, nil
}

func (uc *ItemUseCase[T]) loadProfile(ctx context.Context, ownerID uuid.UUID) (*profile.Profile, error) {
	p, err := uc.repo.GetByOwnerID(ctx, ownerID)
	if err != nil {
		if errors.Is(err, profile.ErrProfileNotFound) {
			return nil, apperror.NewNotFound("profile", ownerID.String())
		}
		return nil, err
	}
	return p, nil
}

func (uc *ItemUseCase[T]) mutate(ctx context.Context, ownerID uuid.UUID, action string, apply func(p *profile.Profile) (T, error)) (T, error) {
	var zero T
	var lastErr error
	for attempt := 0; attempt < maxWriteAttempts; attempt++ {
		p, err := uc.loadProfile(ctx, ownerID)
		if err != nil {
			return zero, err
		}

		// Validation happens inside apply, before any write is attempted.
		item, err := apply(p)
		if err != nil {
			return zero, err
		}

		if err := uc.repo.Update(ctx, p); err != nil {
			if errors.Is(err, profile.ErrVersionConflict) {
				lastErr = err
				continue
			}
			return zero, err
		}

		uc.afterWrite(ctx, ownerID, action, uc.col.ID(item))
		return item, nil
	}
	return zero, apperror.NewAppError(apperror.ErrConflict,
		"Profile was modified concurrently", "retried "+uc.col.Name+" write, please try again", lastErr)
}

func (uc *ItemUseCase[T]) afterWrite(ctx context.Context, ownerID uuid.UUID, action string, itemID uuid.UUID) {
	if uc.cache != nil {
		uc.cache.InvalidatePublicProfile(ctx)
	}
	if uc.events == nil {
		return
	}
	event := service.AuditEvent{
		Type:     uc.col.Name + "." + action,
		OwnerID:  ownerID,
		Resource: uc.col.Name,
		ItemID:   itemID.String(),
		At:       time.Now().Unix(),
	}
	if err := uc.events.Publish(ctx, event); err != nil {
		uc.logger.Warn("failed to publish audit event", zap.String("type", event.Type), zap.Error(err))
	}
}
