package profile

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

type ProfileUseCase struct {
	profileRepo profile.Repository
	events      service.AuditPublisher
	cache       service.ProfileCache
	logger      logger.Logger
}

func NewProfileUseCase(repo profile.Repository, events service.AuditPublisher, cache service.ProfileCache, log logger.Logger) *ProfileUseCase {
	return &ProfileUseCase{
		profileRepo: repo,
		events:      events,
		cache:       cache,
		logger:      log,
	}
}

type GetProfileInput struct {
	OwnerID uuid.UUID
}

type GetProfileOutput struct {
	Profile *profile.Profile
}

func (uc *ProfileUseCase) ExecuteGetProfile(ctx context.Context, input GetProfileInput) (*GetProfileOutput, error) {
	p, err := uc.profileRepo.GetByOwnerID(ctx, input.OwnerID)
	if err != nil {
		if errors.Is(err, profile.ErrProfileNotFound) {
			return nil, apperror.NewNotFound("profile", input.OwnerID.String())
		}
		return nil, err
	}
	return &GetProfileOutput{Profile: p}, nil
}

type UpdateProfileInput struct {
	OwnerID uuid.UUID
	Fields  profile.UpdateFields
}

type UpdateProfileOutput struct {
	Profile *profile.Profile
}

// ExecuteUpdateProfile applies an allow-listed partial update. A payload
// touching only social links skips the required-field checks so links can
// be edited on an otherwise incomplete profile.
func (uc *ProfileUseCase) ExecuteUpdateProfile(ctx context.Context, input UpdateProfileInput) (*UpdateProfileOutput, error) {
	fields := input.Fields

	if fields.SocialLinks != nil {
		normalized := fields.SocialLinks.Normalized()
		fields.SocialLinks = &normalized
	}

	if !fields.SocialLinksOnly() {
		if err := fields.ValidateRequired(); err != nil {
			return nil, err
		}
	}

	p, err := uc.profileRepo.UpdateFields(ctx, input.OwnerID, fields)
	if err != nil {
		if errors.Is(err, profile.ErrProfileNotFound) {
			return nil, apperror.NewNotFound("profile", input.OwnerID.String())
		}
		return nil, err
	}

	if uc.cache != nil {
		uc.cache.InvalidatePublicProfile(ctx)
	}
	uc.publish(ctx, "profile.updated", input.OwnerID)
	return &UpdateProfileOutput{Profile: p}, nil
}

func (uc *ProfileUseCase) publish(ctx context.Context, eventType string, ownerID uuid.UUID) {
	if uc.events == nil {
		return
	}
	event := service.AuditEvent{Type: eventType, OwnerID: ownerID, At: time.Now().Unix()}
	if err := uc.events.Publish(ctx, event); err != nil {
		uc.logger.Warn("failed to publish audit event", zap.String("type", eventType), zap.Error(err))
	}
}
