package publicview

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/haintran/portfolio-api/internal/domain/profile"
	"github.com/haintran/portfolio-api/pkg/apperror"
	"github.com/haintran/portfolio-api/pkg/logger"
)

type stubProfileRepo struct {
	byEmail       map[string]*profile.Profile
	firstApproved *profile.Profile
	emailCalls    int
	approvedCalls int
}

func (r *stubProfileRepo) GetByOwnerID(context.Context, uuid.UUID) (*profile.Profile, error) {
	return nil, profile.ErrProfileNotFound
}

func (r *stubProfileRepo) GetByEmail(_ context.Context, email string) (*profile.Profile, error) {
	r.emailCalls++
	if p, ok := r.byEmail[email]; ok {
		return p, nil
	}
	return nil, profile.ErrProfileNotFound
}

func (r *stubProfileRepo) GetFirstApproved(context.Context) (*profile.Profile, error) {
	r.approvedCalls++
	if r.firstApproved == nil {
		return nil, profile.ErrProfileNotFound
	}
	return r.firstApproved, nil
}

func (r *stubProfileRepo) Create(context.Context, *profile.Profile) error { return nil }
func (r *stubProfileRepo) Update(context.Context, *profile.Profile) error { return nil }
func (r *stubProfileRepo) UpdateFields(context.Context, uuid.UUID, profile.UpdateFields) (*profile.Profile, error) {
	return nil, errors.New("not implemented")
}
func (r *stubProfileRepo) Delete(context.Context, uuid.UUID) (*profile.Profile, error) {
	return nil, profile.ErrProfileNotFound
}

type stubCache struct {
	payload []byte
	sets    int
}

func (c *stubCache) GetPublicProfile(context.Context) ([]byte, bool) {
	return c.payload, c.payload != nil
}

func (c *stubCache) SetPublicProfile(_ context.Context, payload []byte) {
	c.payload = payload
	c.sets++
}

func (c *stubCache) InvalidatePublicProfile(context.Context) { c.payload = nil }

func day(n int) time.Time {
	return time.Date(2025, 1, n, 0, 0, 0, 0, time.UTC)
}

func ownerProfile() *profile.Profile {
	return &profile.Profile{
		OwnerID:    uuid.New(),
		Email:      "owner@example.com",
		Name:       "Owner",
		IsApproved: true,
		BlogPosts: []profile.BlogPost{
			{ID: uuid.New(), Title: "Old", Slug: "old", Date: day(1), Published: true},
			{ID: uuid.New(), Title: "Draft", Slug: "draft", Date: day(2), Published: false},
			{ID: uuid.New(), Title: "New", Slug: "new", Date: day(3), Published: true},
		},
		Certifications: []profile.Certification{
			{ID: uuid.New(), Title: "First", Date: "2023-05-01"},
			{ID: uuid.New(), Title: "Second", Date: "2024-11-01"},
		},
	}
}

func TestGetPublicProfileByOwnerEmail(t *testing.T) {
	p := ownerProfile()
	repo := &stubProfileRepo{byEmail: map[string]*profile.Profile{p.Email: p}}
	cache := &stubCache{}
	uc := NewPublicUseCase(repo, cache, p.Email, logger.NewNop())

	got, err := uc.ExecuteGetPublicProfile(context.Background())
	require.NoError(t, err)

	assert.Equal(t, p.OwnerID, got.OwnerID)
	assert.Equal(t, 1, repo.emailCalls)
	assert.Equal(t, 0, repo.approvedCalls)
	assert.Equal(t, 1, cache.sets, "a miss populates the cache")
}

func TestGetPublicProfileFallsBackToFirstApproved(t *testing.T) {
	p := ownerProfile()
	repo := &stubProfileRepo{firstApproved: p}
	uc := NewPublicUseCase(repo, nil, "", logger.NewNop())

	got, err := uc.ExecuteGetPublicProfile(context.Background())
	require.NoError(t, err)

	assert.Equal(t, p.OwnerID, got.OwnerID)
	assert.Equal(t, 1, repo.approvedCalls)
}

func TestGetPublicProfileServedFromCache(t *testing.T) {
	p := ownerProfile()
	payload, err := json.Marshal(p)
	require.NoError(t, err)

	repo := &stubProfileRepo{}
	cache := &stubCache{payload: payload}
	uc := NewPublicUseCase(repo, cache, p.Email, logger.NewNop())

	got, err := uc.ExecuteGetPublicProfile(context.Background())
	require.NoError(t, err)

	assert.Equal(t, p.OwnerID, got.OwnerID)
	assert.Equal(t, 0, repo.emailCalls, "cache hit must not touch the store")
}

func TestGetPublicProfileNotFound(t *testing.T) {
	uc := NewPublicUseCase(&stubProfileRepo{}, nil, "nobody@example.com", logger.NewNop())

	_, err := uc.ExecuteGetPublicProfile(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperror.ErrNotFound))
}

func TestListPublishedPostsFiltersAndSorts(t *testing.T) {
	p := ownerProfile()
	repo := &stubProfileRepo{byEmail: map[string]*profile.Profile{p.Email: p}}
	uc := NewPublicUseCase(repo, nil, p.Email, logger.NewNop())

	posts, err := uc.ExecuteListPublishedPosts(context.Background())
	require.NoError(t, err)

	require.Len(t, posts, 2)
	assert.Equal(t, "new", posts[0].Slug)
	assert.Equal(t, "old", posts[1].Slug)
}

func TestGetPublishedPost(t *testing.T) {
	p := ownerProfile()
	repo := &stubProfileRepo{byEmail: map[string]*profile.Profile{p.Email: p}}
	uc := NewPublicUseCase(repo, nil, p.Email, logger.NewNop())

	post, err := uc.ExecuteGetPublishedPost(context.Background(), "old")
	require.NoError(t, err)
	assert.Equal(t, "Old", post.Title)

	// Drafts stay invisible even when addressed by slug.
	_, err = uc.ExecuteGetPublishedPost(context.Background(), "draft")
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperror.ErrNotFound))
}

func TestListCertificationsNewestFirst(t *testing.T) {
	p := ownerProfile()
	repo := &stubProfileRepo{byEmail: map[string]*profile.Profile{p.Email: p}}
	uc := NewPublicUseCase(repo, nil, p.Email, logger.NewNop())

	certs, err := uc.ExecuteListCertifications(context.Background())
	require.NoError(t, err)

	require.Len(t, certs, 2)
	assert.Equal(t, "Second", certs[0].Title)
	// The profile's own order is untouched.
	assert.Equal(t, "First", p.Certifications[0].Title)
}
