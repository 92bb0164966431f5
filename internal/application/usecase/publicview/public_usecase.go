package publicview

import (
	"context"
	"encoding/json"
	"errors"
	"sort"

	"github.com/haintran/portfolio-api/internal/application/service"
	"github.com/haintran/portfolio-api/internal/domain/profile"
	"github.com/haintran/portfolio-api/pkg/apperror"
	"github.com/haintran/portfolio-api/pkg/logger"
)

// PublicUseCase serves the public site: the site owner's profile and its
// published content, read through the cache.
type PublicUseCase struct {
	profileRepo profile.Repository
	cache       service.ProfileCache
	ownerEmail  string
	logger      logger.Logger
}

// NewPublicUseCase selects the public profile by the configured owner
// email. An empty email falls back to the first approved profile, the
// legacy single-tenant behavior.
func NewPublicUseCase(repo profile.Repository, cache service.ProfileCache, ownerEmail string, log logger.Logger) *PublicUseCase {
	return &PublicUseCase{
		profileRepo: repo,
		cache:       cache,
		ownerEmail:  ownerEmail,
		logger:      log,
	}
}

func (uc *PublicUseCase) ExecuteGetPublicProfile(ctx context.Context) (*profile.Profile, error) {
	if uc.cache != nil {
		if payload, ok := uc.cache.GetPublicProfile(ctx); ok {
			p := &profile.Profile{}
			if err := json.Unmarshal(payload, p); err == nil {
				return p, nil
			}
			uc.cache.InvalidatePublicProfile(ctx)
		}
	}

	var p *profile.Profile
	var err error
	if uc.ownerEmail != "" {
		p, err = uc.profileRepo.GetByEmail(ctx, uc.ownerEmail)
	} else {
		p, err = uc.profileRepo.GetFirstApproved(ctx)
	}
	if err != nil {
		if errors.Is(err, profile.ErrProfileNotFound) {
			return nil, apperror.NewNotFound("profile", "public")
		}
		return nil, err
	}

	if uc.cache != nil {
		if payload, err := json.Marshal(p); err == nil {
			uc.cache.SetPublicProfile(ctx, payload)
		}
	}
	return p, nil
}

// ExecuteListPublishedPosts returns published posts, newest first. The
// sort is stable so posts sharing a date keep insertion order.
func (uc *PublicUseCase) ExecuteListPublishedPosts(ctx context.Context) ([]profile.BlogPost, error) {
	p, err := uc.ExecuteGetPublicProfile(ctx)
	if err != nil {
		return nil, err
	}
	posts := make([]profile.BlogPost, 0, len(p.BlogPosts))
	for _, post := range p.BlogPosts {
		if post.Published {
			posts = append(posts, post)
		}
	}
	sort.SliceStable(posts, func(i, j int) bool { return posts[i].Date.After(posts[j].Date) })
	return posts, nil
}

func (uc *PublicUseCase) ExecuteGetPublishedPost(ctx context.Context, slug string) (*profile.BlogPost, error) {
	p, err := uc.ExecuteGetPublicProfile(ctx)
	if err != nil {
		return nil, err
	}
	for _, post := range p.BlogPosts {
		if post.Slug == slug && post.Published {
			return &post, nil
		}
	}
	return nil, apperror.NewNotFound("post", slug)
}

func (uc *PublicUseCase) ExecuteListProjects(ctx context.Context) ([]profile.Project, error) {
	p, err := uc.ExecuteGetPublicProfile(ctx)
	if err != nil {
		return nil, err
	}
	return p.Projects, nil
}

// ExecuteListCertifications returns certifications newest first. The date
// is a free-form string; ISO-style values order correctly and anything
// else falls back to lexicographic order.
func (uc *PublicUseCase) ExecuteListCertifications(ctx context.Context) ([]profile.Certification, error) {
	p, err := uc.ExecuteGetPublicProfile(ctx)
	if err != nil {
		return nil, err
	}
	certs := make([]profile.Certification, len(p.Certifications))
	copy(certs, p.Certifications)
	sort.SliceStable(certs, func(i, j int) bool { return certs[i].Date > certs[j].Date })
	return certs, nil
}
