package profile

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/haintran/portfolio-api/pkg/apperror"
)

type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// Profile is the aggregate owning all portfolio content for one owner.
// Nested collections are embedded; their elements have generated ids but
// no storage identity of their own.
type Profile struct {
	OwnerID         uuid.UUID       `json:"owner_id"`
	Email           string          `json:"email"`
	Name            string          `json:"name"`
	JobTitle        string          `json:"job_title"`
	Role            Role            `json:"role"`
	IsApproved      bool            `json:"is_approved"`
	ApprovalRequest bool            `json:"approval_request"`
	Image           string          `json:"image,omitempty"`
	Bio             string          `json:"bio"`
	AboutYourself   string          `json:"about_yourself"`
	Background      string          `json:"background"`
	Contact         Contact         `json:"contact"`
	SocialLinks     SocialLinks     `json:"social_links"`
	Skills          []Skill         `json:"skills"`
	Experience      []Experience    `json:"experience"`
	Education       []Education     `json:"education"`
	Projects        []Project       `json:"projects"`
	BlogPosts       []BlogPost      `json:"blog_posts"`
	Certifications  []Certification `json:"certifications"`
	Version         int64           `json:"version"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

type Contact struct {
	Email    string `json:"email"`
	Phone    string `json:"phone,omitempty"`
	Location string `json:"location,omitempty"`
}

// SocialLinks stores full URLs. Editing UIs may submit bare usernames;
// Normalized prefixes the canonical base idempotently.
type SocialLinks struct {
	Github   string `json:"github,omitempty"`
	Linkedin string `json:"linkedin,omitempty"`
	Facebook string `json:"facebook,omitempty"`
	Twitter  string `json:"twitter,omitempty"`
	Website  string `json:"website,omitempty"`
}

const (
	githubBaseURL   = "https://github.com/"
	linkedinBaseURL = "https://linkedin.com/in/"
	facebookBaseURL = "https://facebook.com/"
)

func (s SocialLinks) Normalized() SocialLinks {
	return SocialLinks{
		Github:   prefixSocialURL(githubBaseURL, s.Github),
		Linkedin: prefixSocialURL(linkedinBaseURL, s.Linkedin),
		Facebook: prefixSocialURL(facebookBaseURL, s.Facebook),
		Twitter:  strings.TrimSpace(s.Twitter),
		Website:  strings.TrimSpace(s.Website),
	}
}

// prefixSocialURL tolerates already-prefixed input, including values that
// were doubled by older clients, without stacking the base again.
func prefixSocialURL(base, value string) string {
	v := strings.TrimSpace(value)
	if v == "" {
		return ""
	}
	for strings.HasPrefix(v, base) {
		v = v[len(base):]
	}
	if strings.Contains(v, "://") {
		return v
	}
	return base + v
}

// UpdateFields is the allow-listed partial update for top-level profile
// fields. Unknown fields cannot reach storage; nil means "leave unchanged".
type UpdateFields struct {
	Name          *string
	JobTitle      *string
	Role          *string
	Bio           *string
	AboutYourself *string
	Background    *string
	Image         *string
	Contact       *Contact
	SocialLinks   *SocialLinks
}

// SocialLinksOnly reports whether the update touches nothing but social
// links. Such updates skip the required-field validation below.
func (u UpdateFields) SocialLinksOnly() bool {
	return u.SocialLinks != nil &&
		u.Name == nil && u.JobTitle == nil && u.Role == nil &&
		u.Bio == nil && u.AboutYourself == nil && u.Background == nil &&
		u.Image == nil && u.Contact == nil
}

// ValidateRequired enforces the full-form update contract: name, role, bio,
// aboutYourself, background, and contact.email must all be present and
// non-empty.
func (u UpdateFields) ValidateRequired() error {
	required := map[string]*string{
		"name":          u.Name,
		"role":          u.Role,
		"bio":           u.Bio,
		"aboutYourself": u.AboutYourself,
		"background":    u.Background,
	}
	for _, field := range []string{"name", "role", "bio", "aboutYourself", "background"} {
		v := required[field]
		if v == nil || strings.TrimSpace(*v) == "" {
			return apperror.NewInvalidInput(field+" is required", nil)
		}
	}
	if u.Role != nil {
		switch Role(*u.Role) {
		case RoleAdmin, RoleUser:
		default:
			return apperror.NewInvalidInput("role must be 'admin' or 'user'", nil)
		}
	}
	if u.Contact == nil || strings.TrimSpace(u.Contact.Email) == "" {
		return apperror.NewInvalidInput("contact email is required", nil)
	}
	return nil
}

var (
	ErrProfileNotFound = errors.New("profile not found")

	// ErrVersionConflict means another writer updated the profile between
	// our read and write. Callers re-read and retry.
	ErrVersionConflict = errors.New("profile version conflict")
)

type Repository interface {
	GetByOwnerID(ctx context.Context, ownerID uuid.UUID) (*Profile, error)
	GetByEmail(ctx context.Context, email string) (*Profile, error)
	GetFirstApproved(ctx context.Context) (*Profile, error)
	Create(ctx context.Context, p *Profile) error
	// Update writes the whole aggregate conditioned on the version read;
	// it returns ErrVersionConflict when the row moved underneath us.
	Update(ctx context.Context, p *Profile) error
	UpdateFields(ctx context.Context, ownerID uuid.UUID, fields UpdateFields) (*Profile, error)
	Delete(ctx context.Context, ownerID uuid.UUID) (*Profile, error)
}
