package auth

import (
	"context"
	"errors"

	"github.com/haintran/portfolio-api/internal/domain/user"
	"github.com/haintran/portfolio-api/pkg/apperror"
	"github.com/haintran/portfolio-api/pkg/auth"
	"github.com/haintran/portfolio-api/pkg/logger"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

var (
	ErrInvalidCredentials = errors.New("email or password is incorrect")
)

type LoginUseCase struct {
	userRepo   user.Repository
	sessionSvc *auth.SessionService
	logger     logger.Logger
}

func NewLoginUseCase(repo user.Repository, sessionSvc *auth.SessionService, log logger.Logger) *LoginUseCase {
	return &LoginUseCase{
		userRepo:   repo,
		sessionSvc: sessionSvc,
		logger:     log,
	}
}

type LoginInput struct {
	Email    string
	Password string
}

type LoginOutput struct {
	Credential string
}

var tracer = otel.Tracer("auth_usecase")

func (uc *LoginUseCase) Execute(ctx context.Context, input LoginInput) (*LoginOutput, error) {

	ctx, span := tracer.Start(ctx, "Execute")
	defer span.End()

	u, err := uc.userRepo.FindByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		span.RecordError(err)
		return nil, err
	}

	if !auth.CheckPasswordHash(input.Password, u.PasswordHash) {
		span.RecordError(ErrInvalidCredentials)
		return nil, ErrInvalidCredentials
	}

	credential, err := uc.sessionSvc.IssueCredential(u.ID)
	if err != nil {
		uc.logger.Error("Failed to issue session credential", err, zap.String("user_id", u.ID.String()))
		err = apperror.NewInternal("failed to issue session credential", err)
		span.RecordError(err)
		return nil, err
	}
	span.SetAttributes(attribute.String("user_id", u.ID.String()))
	return &LoginOutput{Credential: credential}, nil
}
