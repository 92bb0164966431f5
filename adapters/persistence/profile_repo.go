package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/haintran/portfolio-api/internal/domain/profile"
	"github.com/haintran/portfolio-api/pkg/apperror"
	"github.com/haintran/portfolio-api/pkg/logger"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

const profileColumns = `owner_id, email, name, job_title, role, is_approved, approval_request,
		image, bio, about_yourself, background, contact, social_links,
		skills, experience, education, projects, blog_posts, certifications,
		version, created_at, updated_at`

type postgresProfileRepo struct {
	db     *pgxpool.Pool
	logger logger.Logger
}

func NewPostgresProfileRepo(db *pgxpool.Pool, log logger.Logger) profile.Repository {
	return &postgresProfileRepo{db: db, logger: log}
}

// jsonDocs holds the marshaled embedded documents of one profile row, in
// column order.
type jsonDocs struct {
	contact, socialLinks, skills, experience, education, projects, blogPosts, certifications []byte
}

func marshalDocs(p *profile.Profile) (jsonDocs, error) {
	var d jsonDocs
	var err error
	marshal := func(dst *[]byte, v any, name string) {
		if err != nil {
			return
		}
		*dst, err = json.Marshal(v)
		if err != nil {
			err = fmt.Errorf("failed to marshal %s: %w", name, err)
		}
	}
	marshal(&d.contact, p.Contact, "contact")
	marshal(&d.socialLinks, p.SocialLinks, "social_links")
	marshal(&d.skills, emptyIfNil(p.Skills), "skills")
	marshal(&d.experience, emptyIfNil(p.Experience), "experience")
	marshal(&d.education, emptyIfNil(p.Education), "education")
	marshal(&d.projects, emptyIfNil(p.Projects), "projects")
	marshal(&d.blogPosts, emptyIfNil(p.BlogPosts), "blog_posts")
	marshal(&d.certifications, emptyIfNil(p.Certifications), "certifications")
	return d, err
}

func emptyIfNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}

func scanProfile(row pgx.Row) (*profile.Profile, error) {
	p := &profile.Profile{}
	var d jsonDocs

	err := row.Scan(
		&p.OwnerID, &p.Email, &p.Name, &p.JobTitle, &p.Role, &p.IsApproved, &p.ApprovalRequest,
		&p.Image, &p.Bio, &p.AboutYourself, &p.Background, &d.contact, &d.socialLinks,
		&d.skills, &d.experience, &d.education, &d.projects, &d.blogPosts, &d.certifications,
		&p.Version, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, profile.ErrProfileNotFound
		}
		return nil, fmt.Errorf("failed to scan profile row: %w", err)
	}

	unmarshalInto(d.contact, &p.Contact)
	unmarshalInto(d.socialLinks, &p.SocialLinks)
	unmarshalInto(d.skills, &p.Skills)
	unmarshalInto(d.experience, &p.Experience)
	unmarshalInto(d.education, &p.Education)
	unmarshalInto(d.projects, &p.Projects)
	unmarshalInto(d.blogPosts, &p.BlogPosts)
	unmarshalInto(d.certifications, &p.Certifications)

	if p.Skills == nil {
		p.Skills = []profile.Skill{}
	}
	if p.Experience == nil {
		p.Experience = []profile.Experience{}
	}
	if p.Education == nil {
		p.Education = []profile.Education{}
	}
	if p.Projects == nil {
		p.Projects = []profile.Project{}
	}
	if p.BlogPosts == nil {
		p.BlogPosts = []profile.BlogPost{}
	}
	if p.Certifications == nil {
		p.Certifications = []profile.Certification{}
	}
	return p, nil
}

func unmarshalInto(data []byte, v any) {
	if len(data) == 0 {
		return
	}
	_ = json.Unmarshal(data, v)
}

func (r *postgresProfileRepo) getWhere(ctx context.Context, cond string, args ...any) (*profile.Profile, error) {
	query := fmt.Sprintf(`SELECT %s FROM profiles WHERE %s`, profileColumns, cond)
	p, err := scanProfile(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, profile.ErrProfileNotFound) {
			return nil, err
		}
		return nil, storageErr(ctx, "failed to query profile", err)
	}
	return p, nil
}

func (r *postgresProfileRepo) GetByOwnerID(ctx context.Context, ownerID uuid.UUID) (*profile.Profile, error) {
	return r.getWhere(ctx, "owner_id = $1", ownerID)
}

func (r *postgresProfileRepo) GetByEmail(ctx context.Context, email string) (*profile.Profile, error) {
	return r.getWhere(ctx, "email = $1", email)
}

func (r *postgresProfileRepo) GetFirstApproved(ctx context.Context) (*profile.Profile, error) {
	query := fmt.Sprintf(`SELECT %s FROM profiles WHERE is_approved ORDER BY created_at LIMIT 1`, profileColumns)
	p, err := scanProfile(r.db.QueryRow(ctx, query))
	if err != nil {
		if errors.Is(err, profile.ErrProfileNotFound) {
			return nil, err
		}
		return nil, storageErr(ctx, "failed to query public profile", err)
	}
	return p, nil
}

func (r *postgresProfileRepo) Create(ctx context.Context, p *profile.Profile) error {
	d, err := marshalDocs(p)
	if err != nil {
		return apperror.NewInternal("failed to marshal profile", err)
	}

	query := fmt.Sprintf(`
		INSERT INTO profiles (%s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22)
	`, profileColumns)
	_, err = r.db.Exec(ctx, query,
		p.OwnerID, p.Email, p.Name, p.JobTitle, p.Role, p.IsApproved, p.ApprovalRequest,
		p.Image, p.Bio, p.AboutYourself, p.Background, d.contact, d.socialLinks,
		d.skills, d.experience, d.education, d.projects, d.blogPosts, d.certifications,
		p.Version, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperror.NewConflict("profile", "email or owner id", p.Email)
		}
		return storageErr(ctx, "failed to insert profile", err)
	}
	return nil
}

// Update writes the whole aggregate back, conditioned on the version the
// caller read. Zero rows affected means a concurrent writer won the race.
func (r *postgresProfileRepo) Update(ctx context.Context, p *profile.Profile) error {
	d, err := marshalDocs(p)
	if err != nil {
		return apperror.NewInternal("failed to marshal profile", err)
	}

	query := `
		UPDATE profiles SET
			email = $3, name = $4, job_title = $5, role = $6, is_approved = $7, approval_request = $8,
			image = $9, bio = $10, about_yourself = $11, background = $12, contact = $13, social_links = $14,
			skills = $15, experience = $16, education = $17, projects = $18, blog_posts = $19, certifications = $20,
			version = version + 1, updated_at = NOW()
		WHERE owner_id = $1 AND version = $2
	`
	tag, err := r.db.Exec(ctx, query,
		p.OwnerID, p.Version,
		p.Email, p.Name, p.JobTitle, p.Role, p.IsApproved, p.ApprovalRequest,
		p.Image, p.Bio, p.AboutYourself, p.Background, d.contact, d.socialLinks,
		d.skills, d.experience, d.education, d.projects, d.blogPosts, d.certifications,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperror.NewConflict("profile", "email", p.Email)
		}
		return storageErr(ctx, "failed to update profile", err)
	}
	if tag.RowsAffected() == 0 {
		return profile.ErrVersionConflict
	}
	p.Version++
	p.UpdatedAt = time.Now().UTC()
	return nil
}

// UpdateFields applies an allow-listed partial update. Only the non-nil
// fields reach the SET clause, so nothing outside the allow-list can be
// persisted.
func (r *postgresProfileRepo) UpdateFields(ctx context.Context, ownerID uuid.UUID, fields profile.UpdateFields) (*profile.Profile, error) {
	builder := psql.Update("profiles").
		Set("version", sq.Expr("version + 1")).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"owner_id": ownerID})

	if fields.Name != nil {
		builder = builder.Set("name", *fields.Name)
	}
	if fields.JobTitle != nil {
		builder = builder.Set("job_title", *fields.JobTitle)
	}
	if fields.Role != nil {
		builder = builder.Set("role", *fields.Role)
	}
	if fields.Bio != nil {
		builder = builder.Set("bio", *fields.Bio)
	}
	if fields.AboutYourself != nil {
		builder = builder.Set("about_yourself", *fields.AboutYourself)
	}
	if fields.Background != nil {
		builder = builder.Set("background", *fields.Background)
	}
	if fields.Image != nil {
		builder = builder.Set("image", *fields.Image)
	}
	if fields.Contact != nil {
		contactBytes, err := json.Marshal(fields.Contact)
		if err != nil {
			return nil, apperror.NewInternal("failed to marshal contact", err)
		}
		builder = builder.Set("contact", contactBytes)
	}
	if fields.SocialLinks != nil {
		linksBytes, err := json.Marshal(fields.SocialLinks)
		if err != nil {
			return nil, apperror.NewInternal("failed to marshal social_links", err)
		}
		builder = builder.Set("social_links", linksBytes)
	}

	query, args, err := builder.Suffix("RETURNING " + profileColumns).ToSql()
	if err != nil {
		return nil, apperror.NewInternal("failed to build update query", err)
	}

	p, err := scanProfile(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, profile.ErrProfileNotFound) {
			return nil, err
		}
		return nil, storageErr(ctx, "failed to update profile fields", err)
	}
	return p, nil
}

func (r *postgresProfileRepo) Delete(ctx context.Context, ownerID uuid.UUID) (*profile.Profile, error) {
	query := fmt.Sprintf(`DELETE FROM profiles WHERE owner_id = $1 RETURNING %s`, profileColumns)
	p, err := scanProfile(r.db.QueryRow(ctx, query, ownerID))
	if err != nil {
		if errors.Is(err, profile.ErrProfileNotFound) {
			return nil, err
		}
		return nil, storageErr(ctx, "failed to delete profile", err)
	}
	return p, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// storageErr maps cancellation and deadline failures to Unavailable so
// timeouts don't masquerade as internal bugs.
func storageErr(ctx context.Context, details string, err error) error {
	if ctx.Err() != nil || errors.Is(err, context.DeadlineExceeded) {
		return apperror.NewUnavailable(details, err)
	}
	return apperror.NewInternal(details, err)
}
