package account

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/haintran/portfolio-api/internal/application/service"
	"github.com/haintran/portfolio-api/internal/domain/profile"
	"github.com/haintran/portfolio-api/internal/domain/user"
	"github.com/haintran/portfolio-api/pkg/apperror"
	"github.com/haintran/portfolio-api/pkg/auth"
	"github.com/haintran/portfolio-api/pkg/logger"
)

type AccountUseCase struct {
	userRepo    user.Repository
	profileRepo profile.Repository
	events      service.AuditPublisher
	cache       service.ProfileCache
	logger      logger.Logger
}

func NewAccountUseCase(
	userRepo user.Repository,
	profileRepo profile.Repository,
	events service.AuditPublisher,
	cache service.ProfileCache,
	log logger.Logger,
) *AccountUseCase {
	return &AccountUseCase{
		userRepo:    userRepo,
		profileRepo: profileRepo,
		events:      events,
		cache:       cache,
		logger:      log,
	}
}

type RegisterInput struct {
	Name     string
	Email    string
	Password string
	JobTitle string
}

type RegisterOutput struct {
	Profile *profile.Profile
}

// ExecuteRegister creates the authentication identity and its profile
// aggregate with an empty content set. A new account starts unapproved
// with a pending approval request.
func (uc *AccountUseCase) ExecuteRegister(ctx context.Context, input RegisterInput) (*RegisterOutput, error) {
	if input.JobTitle == "" {
		input.JobTitle = "Software Engineer"
	}

	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		return nil, apperror.NewInternal("failed to hash password", err)
	}

	now := time.Now().UTC()
	u := &user.User{
		ID:           uuid.New(),
		Email:        input.Email,
		PasswordHash: hash,
		CreatedAt:    now,
	}
	if err := uc.userRepo.Create(ctx, u); err != nil {
		if errors.Is(err, user.ErrEmailTaken) {
			return nil, apperror.NewConflict("account", "email", input.Email)
		}
		return nil, apperror.NewInternal("failed to create user", err)
	}

	p := &profile.Profile{
		OwnerID:         u.ID,
		Email:           input.Email,
		Name:            input.Name,
		JobTitle:        input.JobTitle,
		Role:            profile.RoleUser,
		IsApproved:      false,
		ApprovalRequest: true,
		Bio:             fmt.Sprintf("Hi, I'm %s, a %s", input.Name, input.JobTitle),
		AboutYourself:   "Tell us about yourself...",
		Background:      "Share your background...",
		Contact:         profile.Contact{Email: input.Email},
		Skills:          []profile.Skill{},
		Experience:      []profile.Experience{},
		Education:       []profile.Education{},
		Projects:        []profile.Project{},
		BlogPosts:       []profile.BlogPost{},
		Certifications:  []profile.Certification{},
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := uc.profileRepo.Create(ctx, p); err != nil {
		// Leave no credential behind a profile that failed to create.
		if delErr := uc.userRepo.Delete(ctx, u.ID); delErr != nil {
			uc.logger.Error("failed to roll back user after profile create failure", delErr,
				zap.String("user_id", u.ID.String()))
		}
		return nil, err
	}

	uc.publish(ctx, "profile.created", u.ID)
	return &RegisterOutput{Profile: p}, nil
}

type DeleteOutput struct {
	Profile *profile.Profile
}

// ExecuteDelete removes the profile aggregate and its credential. The
// returned snapshot is the state at deletion; nested collections go with
// the aggregate.
func (uc *AccountUseCase) ExecuteDelete(ctx context.Context, ownerID uuid.UUID) (*DeleteOutput, error) {
	p, err := uc.profileRepo.Delete(ctx, ownerID)
	if err != nil {
		if errors.Is(err, profile.ErrProfileNotFound) {
			return nil, apperror.NewNotFound("profile", ownerID.String())
		}
		return nil, err
	}

	if err := uc.userRepo.Delete(ctx, ownerID); err != nil && !errors.Is(err, user.ErrUserNotFound) {
		uc.logger.Error("failed to delete user for removed profile", err, zap.String("owner_id", ownerID.String()))
	}

	if uc.cache != nil {
		uc.cache.InvalidatePublicProfile(ctx)
	}
	uc.publish(ctx, "profile.deleted", ownerID)
	return &DeleteOutput{Profile: p}, nil
}

func (uc *AccountUseCase) publish(ctx context.Context, eventType string, ownerID uuid.UUID) {
	if uc.events == nil {
		return
	}
	event := service.AuditEvent{Type: eventType, OwnerID: ownerID, At: time.Now().Unix()}
	if err := uc.events.Publish(ctx, event); err != nil {
		uc.logger.Warn("failed to publish audit event", zap.String("type", eventType), zap.Error(err))
	}
}
