package profile

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	cases := []struct {
		title string
		want  string
	}{
		{"Hello World", "hello-world"},
		{"  Go, Gin & Postgres!  ", "go-gin-postgres"},
		{"Already-Slugged", "already-slugged"},
		{"---Weird___Input---", "weird-input"},
		{"2024 Year In Review", "2024-year-in-review"},
		{"!!!", ""},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Slugify(tc.title), "title: %q", tc.title)
	}
}

func TestSocialLinksNormalized(t *testing.T) {
	links := SocialLinks{
		Github:   "octocat",
		Linkedin: "https://linkedin.com/in/someone",
		Facebook: "https://facebook.com/https://facebook.com/doubled",
		Twitter:  "  https://x.com/me  ",
		Website:  "https://example.com",
	}

	got := links.Normalized()

	assert.Equal(t, "https://github.com/octocat", got.Github)
	assert.Equal(t, "https://linkedin.com/in/someone", got.Linkedin)
	// A base prefix stacked by an older client is stripped before re-prefixing.
	assert.Equal(t, "https://facebook.com/doubled", got.Facebook)
	assert.Equal(t, "https://x.com/me", got.Twitter)
	assert.Equal(t, "https://example.com", got.Website)
}

func TestSocialLinksNormalizedIsIdempotent(t *testing.T) {
	links := SocialLinks{
		Github:   "octocat",
		Linkedin: "in/someone",
		Facebook: "a.profile",
	}

	once := links.Normalized()
	twice := once.Normalized()

	assert.Equal(t, once, twice)
}

func TestSocialLinksNormalizedKeepsForeignURLs(t *testing.T) {
	links := SocialLinks{Github: "https://gitlab.com/octocat"}
	assert.Equal(t, "https://gitlab.com/octocat", links.Normalized().Github)
}

func TestSocialLinksNormalizedEmpty(t *testing.T) {
	assert.Equal(t, SocialLinks{}, SocialLinks{}.Normalized())
}

func strPtr(s string) *string { return &s }

func TestUpdateFieldsSocialLinksOnly(t *testing.T) {
	linksOnly := UpdateFields{SocialLinks: &SocialLinks{Github: "octocat"}}
	assert.True(t, linksOnly.SocialLinksOnly())

	withName := UpdateFields{
		SocialLinks: &SocialLinks{Github: "octocat"},
		Name:        strPtr("Hai"),
	}
	assert.False(t, withName.SocialLinksOnly())

	assert.False(t, UpdateFields{}.SocialLinksOnly())
}

func fullUpdateFields() UpdateFields {
	return UpdateFields{
		Name:          strPtr("Hai Tran"),
		Role:          strPtr("admin"),
		Bio:           strPtr("Hi there"),
		AboutYourself: strPtr("About me"),
		Background:    strPtr("Background"),
		Contact:       &Contact{Email: "hai@example.com"},
	}
}

func TestUpdateFieldsValidateRequired(t *testing.T) {
	assert.NoError(t, fullUpdateFields().ValidateRequired())

	missingName := fullUpdateFields()
	missingName.Name = nil
	assert.Error(t, missingName.ValidateRequired())

	blankBio := fullUpdateFields()
	blankBio.Bio = strPtr("   ")
	assert.Error(t, blankBio.ValidateRequired())

	badRole := fullUpdateFields()
	badRole.Role = strPtr("superadmin")
	assert.Error(t, badRole.ValidateRequired())

	noContactEmail := fullUpdateFields()
	noContactEmail.Contact = &Contact{Phone: "123"}
	assert.Error(t, noContactEmail.ValidateRequired())
}
