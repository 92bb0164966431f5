package profile

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/haintran/portfolio-api/internal/domain/profile"
	"github.com/haintran/portfolio-api/pkg/apperror"
	"github.com/haintran/portfolio-api/pkg/logger"
)

type fieldsRecordingRepo struct {
	p          *domain.Profile
	lastFields domain.UpdateFields
	calls      int
}

func (r *fieldsRecordingRepo) GetByOwnerID(_ context.Context, ownerID uuid.UUID) (*domain.Profile, error) {
	if r.p == nil || r.p.OwnerID != ownerID {
		return nil, domain.ErrProfileNotFound
	}
	return r.p, nil
}

func (r *fieldsRecordingRepo) GetByEmail(context.Context, string) (*domain.Profile, error) {
	return nil, domain.ErrProfileNotFound
}

func (r *fieldsRecordingRepo) GetFirstApproved(context.Context) (*domain.Profile, error) {
	return nil, domain.ErrProfileNotFound
}

func (r *fieldsRecordingRepo) Create(context.Context, *domain.Profile) error { return nil }
func (r *fieldsRecordingRepo) Update(context.Context, *domain.Profile) error { return nil }

func (r *fieldsRecordingRepo) UpdateFields(_ context.Context, ownerID uuid.UUID, fields domain.UpdateFields) (*domain.Profile, error) {
	r.calls++
	r.lastFields = fields
	if r.p == nil || r.p.OwnerID != ownerID {
		return nil, domain.ErrProfileNotFound
	}
	if fields.SocialLinks != nil {
		r.p.SocialLinks = *fields.SocialLinks
	}
	if fields.Name != nil {
		r.p.Name = *fields.Name
	}
	return r.p, nil
}

func (r *fieldsRecordingRepo) Delete(context.Context, uuid.UUID) (*domain.Profile, error) {
	return nil, domain.ErrProfileNotFound
}

func strPtr(s string) *string { return &s }

func TestUpdateProfileSocialLinksOnlySkipsRequiredFields(t *testing.T) {
	repo := &fieldsRecordingRepo{p: &domain.Profile{OwnerID: uuid.New()}}
	uc := NewProfileUseCase(repo, nil, nil, logger.NewNop())

	// No name, bio, or contact in the payload; a full-form update would be
	// rejected, the links-only shortcut is not.
	output, err := uc.ExecuteUpdateProfile(context.Background(), UpdateProfileInput{
		OwnerID: repo.p.OwnerID,
		Fields:  domain.UpdateFields{SocialLinks: &domain.SocialLinks{Github: "octocat"}},
	})
	require.NoError(t, err)

	assert.Equal(t, 1, repo.calls)
	assert.Equal(t, "https://github.com/octocat", output.Profile.SocialLinks.Github,
		"links are normalized before persisting")
}

func TestUpdateProfileFullFormRequiresFields(t *testing.T) {
	repo := &fieldsRecordingRepo{p: &domain.Profile{OwnerID: uuid.New()}}
	uc := NewProfileUseCase(repo, nil, nil, logger.NewNop())

	_, err := uc.ExecuteUpdateProfile(context.Background(), UpdateProfileInput{
		OwnerID: repo.p.OwnerID,
		Fields:  domain.UpdateFields{Name: strPtr("Hai")},
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperror.ErrInvalidInput))
	assert.Equal(t, 0, repo.calls, "validation failures must not reach storage")
}

func TestUpdateProfileValidFullForm(t *testing.T) {
	repo := &fieldsRecordingRepo{p: &domain.Profile{OwnerID: uuid.New()}}
	uc := NewProfileUseCase(repo, nil, nil, logger.NewNop())

	output, err := uc.ExecuteUpdateProfile(context.Background(), UpdateProfileInput{
		OwnerID: repo.p.OwnerID,
		Fields: domain.UpdateFields{
			Name:          strPtr("Hai Tran"),
			Role:          strPtr("admin"),
			Bio:           strPtr("bio"),
			AboutYourself: strPtr("about"),
			Background:    strPtr("bg"),
			Contact:       &domain.Contact{Email: "hai@example.com"},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "Hai Tran", output.Profile.Name)
}

func TestUpdateProfileUnknownOwner(t *testing.T) {
	repo := &fieldsRecordingRepo{}
	uc := NewProfileUseCase(repo, nil, nil, logger.NewNop())

	_, err := uc.ExecuteUpdateProfile(context.Background(), UpdateProfileInput{
		OwnerID: uuid.New(),
		Fields:  domain.UpdateFields{SocialLinks: &domain.SocialLinks{}},
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperror.ErrNotFound))
}
