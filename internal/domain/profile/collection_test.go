package profile

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/haintran/portfolio-api/pkg/apperror"
)

func emptyProfile() *Profile {
	return &Profile{
		OwnerID:        uuid.New(),
		Skills:         []Skill{},
		Experience:     []Experience{},
		Education:      []Education{},
		Projects:       []Project{},
		BlogPosts:      []BlogPost{},
		Certifications: []Certification{},
	}
}

func assertAppErrorKind(t *testing.T, err error, kind error) {
	t.Helper()
	require.Error(t, err)
	var appErr *apperror.AppError
	require.True(t, errors.As(err, &appErr), "expected AppError, got %T", err)
	assert.True(t, errors.Is(appErr, kind), "expected kind %v, got %v", kind, appErr.BaseError)
}

func TestSkillCollectionAddAssignsID(t *testing.T) {
	p := emptyProfile()

	added, err := SkillCollection.Add(p, Skill{Name: " Go ", Category: " Backend ", Proficiency: 90})
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, added.ID)
	assert.Equal(t, "Go", added.Name)
	assert.Equal(t, "Backend", added.Category)
	require.Len(t, p.Skills, 1)
	assert.Equal(t, added, p.Skills[0])
}

func TestSkillCollectionRejectsInvalid(t *testing.T) {
	p := emptyProfile()

	_, err := SkillCollection.Add(p, Skill{Category: "Backend"})
	assertAppErrorKind(t, err, apperror.ErrInvalidInput)

	_, err = SkillCollection.Add(p, Skill{Name: "Go", Category: "Backend", Proficiency: 101})
	assertAppErrorKind(t, err, apperror.ErrInvalidInput)

	assert.Empty(t, p.Skills, "failed adds must not touch the collection")
}

func TestCollectionUpdatePreservesID(t *testing.T) {
	p := emptyProfile()
	added, err := SkillCollection.Add(p, Skill{Name: "Go", Category: "Backend", Proficiency: 80})
	require.NoError(t, err)

	patch := Skill{ID: uuid.New(), Name: "Golang", Category: "Backend", Proficiency: 95}
	updated, err := SkillCollection.Update(p, added.ID, patch)
	require.NoError(t, err)

	assert.Equal(t, added.ID, updated.ID, "update must keep the element id")
	assert.Equal(t, "Golang", p.Skills[0].Name)
}

func TestCollectionUnknownIDIsNotFound(t *testing.T) {
	p := emptyProfile()

	_, err := SkillCollection.Update(p, uuid.New(), Skill{Name: "Go", Category: "Backend"})
	assertAppErrorKind(t, err, apperror.ErrNotFound)

	_, err = SkillCollection.Remove(p, uuid.New())
	assertAppErrorKind(t, err, apperror.ErrNotFound)
}

func TestCollectionRemoveReturnsSnapshot(t *testing.T) {
	p := emptyProfile()
	added, err := CertificationCollection.Add(p, Certification{Title: "CKA", Issuer: "CNCF", Date: "2024-01-01", Image: "https://img"})
	require.NoError(t, err)

	removed, err := CertificationCollection.Remove(p, added.ID)
	require.NoError(t, err)

	assert.Equal(t, added, removed)
	assert.Empty(t, p.Certifications)
}

func TestExperienceCurrentClearsEndDate(t *testing.T) {
	p := emptyProfile()
	end := time.Now()

	added, err := ExperienceCollection.Add(p, Experience{
		Title:     "Engineer",
		Company:   "Acme",
		StartDate: time.Now().AddDate(-1, 0, 0),
		EndDate:   &end,
		Current:   true,
	})
	require.NoError(t, err)

	assert.Nil(t, added.EndDate)
}

func TestProjectCapEnforcedOnInsertOnly(t *testing.T) {
	p := emptyProfile()
	for i := 0; i < MaxProjects; i++ {
		_, err := ProjectCollection.Add(p, Project{Title: fmt.Sprintf("p%d", i), Description: "d"})
		require.NoError(t, err)
	}

	_, err := ProjectCollection.Add(p, Project{Title: "one too many", Description: "d"})
	assertAppErrorKind(t, err, apperror.ErrLimitExceeded)
	assert.Len(t, p.Projects, MaxProjects)

	// Replacing an element at the cap is fine.
	_, err = ProjectCollection.Update(p, p.Projects[0].ID, Project{Title: "renamed", Description: "d"})
	assert.NoError(t, err)
}

func TestBlogPostDefaults(t *testing.T) {
	p := emptyProfile()

	added, err := BlogPostCollection.Add(p, BlogPost{
		Title:     "Hello World!",
		Content:   "body",
		Excerpt:   "ex",
		Published: true,
	})
	require.NoError(t, err)

	assert.Equal(t, "hello-world", added.Slug)
	assert.False(t, added.Date.IsZero())
	assert.NotNil(t, added.Tags)
}

func TestBlogPostMissingFieldsListed(t *testing.T) {
	p := emptyProfile()

	_, err := BlogPostCollection.Add(p, BlogPost{Title: "only title"})
	require.Error(t, err)
	var appErr *apperror.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Contains(t, appErr.Details, "content")
	assert.Contains(t, appErr.Details, "excerpt")
}

func TestBlogPostSlugRejectsBadCharacters(t *testing.T) {
	p := emptyProfile()

	_, err := BlogPostCollection.Add(p, BlogPost{
		Title:   "t",
		Slug:    "Bad Slug!",
		Content: "c",
		Excerpt: "e",
	})
	assertAppErrorKind(t, err, apperror.ErrInvalidInput)
}

func TestBlogPostSlugUniqueAcrossSiblings(t *testing.T) {
	p := emptyProfile()
	first, err := BlogPostCollection.Add(p, BlogPost{Title: "My Post", Content: "c", Excerpt: "e"})
	require.NoError(t, err)

	_, err = BlogPostCollection.Add(p, BlogPost{Title: "My Post", Content: "c2", Excerpt: "e2"})
	assertAppErrorKind(t, err, apperror.ErrConflict)

	// Updating a post keeping its own slug is not a conflict with itself.
	_, err = BlogPostCollection.Update(p, first.ID, BlogPost{
		Title: "My Post", Slug: first.Slug, Content: "c3", Excerpt: "e3",
	})
	assert.NoError(t, err)
}

func TestCertificationLinkDefaultsToHash(t *testing.T) {
	p := emptyProfile()

	added, err := CertificationCollection.Add(p, Certification{Title: "CKA", Issuer: "CNCF", Date: "2024"})
	require.NoError(t, err)
	assert.Equal(t, "#", added.Link)

	_, err = CertificationCollection.Add(p, Certification{Title: "CKA", Issuer: "CNCF"})
	assertAppErrorKind(t, err, apperror.ErrInvalidInput)
}
