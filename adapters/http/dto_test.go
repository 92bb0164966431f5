package http

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/haintran/portfolio-api/internal/domain/profile"
)

func TestToProfileDTOIsPure(t *testing.T) {
	end := time.Date(2024, 6, 30, 15, 0, 0, 0, time.UTC)
	p := &profile.Profile{
		OwnerID: uuid.New(),
		Email:   "owner@example.com",
		Name:    "Owner",
		Role:    profile.RoleAdmin,
		Experience: []profile.Experience{
			{ID: uuid.New(), Title: "Engineer", Company: "Acme", StartDate: time.Date(2022, 1, 15, 9, 30, 0, 0, time.UTC), EndDate: &end},
		},
		CreatedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		UpdatedAt: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
	}
	before, err := json.Marshal(p)
	require.NoError(t, err)

	first := ToProfileDTO(p)
	second := ToProfileDTO(p)

	after, err := json.Marshal(p)
	require.NoError(t, err)
	assert.JSONEq(t, string(before), string(after), "mapping must not mutate the domain value")
	assert.Equal(t, first, second, "mapping is deterministic")
}

func TestToProfileDTOFormats(t *testing.T) {
	p := &profile.Profile{
		OwnerID:   uuid.New(),
		Role:      profile.RoleUser,
		CreatedAt: time.Date(2024, 3, 10, 8, 5, 0, 0, time.UTC),
	}

	dto := ToProfileDTO(p)

	assert.Equal(t, p.OwnerID.String(), dto.OwnerID)
	assert.Equal(t, "user", dto.Role)
	assert.Equal(t, "2024-03-10T08:05:00Z", dto.CreatedAt)
	// Empty collections serialize as [] rather than null.
	assert.NotNil(t, dto.Skills)
	assert.NotNil(t, dto.Projects)
}

func TestToExperienceDTODateOnly(t *testing.T) {
	end := time.Date(2024, 6, 30, 23, 59, 0, 0, time.UTC)
	e := profile.Experience{
		ID:        uuid.New(),
		Title:     "Engineer",
		Company:   "Acme",
		StartDate: time.Date(2022, 1, 15, 9, 30, 0, 0, time.UTC),
		EndDate:   &end,
	}

	dto := ToExperienceDTO(e)

	assert.Equal(t, "2022-01-15", dto.StartDate)
	assert.Equal(t, "2024-06-30", dto.EndDate)

	e.EndDate = nil
	assert.Empty(t, ToExperienceDTO(e).EndDate)
}

func TestToBlogPostDTONilTags(t *testing.T) {
	dto := ToBlogPostDTO(profile.BlogPost{ID: uuid.New(), Title: "t", Slug: "t"})
	assert.NotNil(t, dto.Tags)
	assert.Empty(t, dto.Tags)
}

func TestFlexTimeAcceptsBothLayouts(t *testing.T) {
	var ft flexTime
	require.NoError(t, json.Unmarshal([]byte(`"2024-05-01"`), &ft))
	assert.Equal(t, time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), ft.Time)

	require.NoError(t, json.Unmarshal([]byte(`"2024-05-01T10:30:00Z"`), &ft))
	assert.Equal(t, time.Date(2024, 5, 1, 10, 30, 0, 0, time.UTC), ft.Time)

	assert.Error(t, json.Unmarshal([]byte(`"05/01/2024"`), &ft))
}

func TestBlogPostRequestPublishedDefaultsTrue(t *testing.T) {
	var req BlogPostRequest
	require.NoError(t, json.Unmarshal([]byte(`{"title":"t","content":"c","excerpt":"e"}`), &req))
	assert.True(t, req.ToDomain().Published)

	require.NoError(t, json.Unmarshal([]byte(`{"title":"t","content":"c","excerpt":"e","published":false}`), &req))
	assert.False(t, req.ToDomain().Published)
}

func TestUpdateProfileRequestToUpdateFields(t *testing.T) {
	var req UpdateProfileRequest
	require.NoError(t, json.Unmarshal([]byte(`{"name":"Hai","social_links":{"github":"octocat"}}`), &req))

	fields := req.ToUpdateFields()

	require.NotNil(t, fields.Name)
	assert.Equal(t, "Hai", *fields.Name)
	require.NotNil(t, fields.SocialLinks)
	assert.Equal(t, "octocat", fields.SocialLinks.Github)
	assert.Nil(t, fields.Bio, "absent fields stay nil")
	assert.Nil(t, fields.Contact)
}
