package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/suite"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"

	"github.com/haintran/portfolio-api/internal/domain/profile"
	"github.com/haintran/portfolio-api/internal/domain/user"
	"github.com/haintran/portfolio-api/pkg/logger"
)

type ProfileRepoIntegrationTestSuite struct {
	suite.Suite
	dbPool      *pgxpool.Pool
	pgContainer *postgres.PostgresContainer
	profileRepo profile.Repository
	userRepo    user.Repository
}

func (s *ProfileRepoIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("test_db"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).WithStartupTimeout(1*time.Minute),
		),
	)
	if err != nil {
		s.T().Fatalf("Failed to start postgres container: %s", err)
	}
	s.pgContainer = pgContainer

	dsn, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		s.T().Fatalf("Failed to get connection string: %s", err)
	}

	m, err := migrate.New("file://../../migrations", dsn)
	if err != nil {
		s.T().Fatalf("Failed to create migrate instance: %s", err)
	}
	if err := m.Up(); err != nil {
		s.T().Fatalf("Failed to run migrations: %s", err)
	}

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		s.T().Fatalf("Failed to create pgxpool: %s", err)
	}
	s.dbPool = pool

	s.profileRepo = NewPostgresProfileRepo(pool, logger.NewNop())
	s.userRepo = NewPostgresUserRepo(pool)
}

func (s *ProfileRepoIntegrationTestSuite) TearDownSuite() {
	if s.dbPool != nil {
		s.dbPool.Close()
	}
	if s.pgContainer != nil {
		_ = s.pgContainer.Terminate(context.Background())
	}
}

func (s *ProfileRepoIntegrationTestSuite) seedProfile(email string) *profile.Profile {
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Microsecond)

	u := &user.User{ID: uuid.New(), Email: email, PasswordHash: "hash", CreatedAt: now}
	s.Require().NoError(s.userRepo.Create(ctx, u))

	p := &profile.Profile{
		OwnerID:         u.ID,
		Email:           email,
		Name:            "Owner",
		JobTitle:        "Software Engineer",
		Role:            profile.RoleAdmin,
		IsApproved:      true,
		ApprovalRequest: false,
		Bio:             "bio",
		AboutYourself:   "about",
		Background:      "bg",
		Contact:         profile.Contact{Email: email},
		Skills:          []profile.Skill{{ID: uuid.New(), Name: "Go", Category: "Backend", Proficiency: 90}},
		Experience:      []profile.Experience{},
		Education:       []profile.Education{},
		Projects:        []profile.Project{},
		BlogPosts: []profile.BlogPost{
			{ID: uuid.New(), Title: "Hello", Slug: "hello", Content: "c", Excerpt: "e", Date: now, Tags: []string{"go"}, Published: true},
		},
		Certifications: []profile.Certification{},
		Version:        1,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	s.Require().NoError(s.profileRepo.Create(ctx, p))
	return p
}

func (s *ProfileRepoIntegrationTestSuite) TestCreateAndGetRoundTrip() {
	ctx := context.Background()
	p := s.seedProfile("roundtrip@example.com")

	got, err := s.profileRepo.GetByOwnerID(ctx, p.OwnerID)
	s.Require().NoError(err)

	s.Equal(p.Email, got.Email)
	s.Equal(p.Skills, got.Skills)
	s.Equal(p.BlogPosts[0].Slug, got.BlogPosts[0].Slug)
	s.NotNil(got.Projects, "empty collections come back as empty slices")
	s.Equal(int64(1), got.Version)

	byEmail, err := s.profileRepo.GetByEmail(ctx, p.Email)
	s.Require().NoError(err)
	s.Equal(p.OwnerID, byEmail.OwnerID)
}

func (s *ProfileRepoIntegrationTestSuite) TestGetUnknownOwner() {
	_, err := s.profileRepo.GetByOwnerID(context.Background(), uuid.New())
	s.ErrorIs(err, profile.ErrProfileNotFound)
}

func (s *ProfileRepoIntegrationTestSuite) TestUpdateVersionCondition() {
	ctx := context.Background()
	p := s.seedProfile("versioned@example.com")

	first, err := s.profileRepo.GetByOwnerID(ctx, p.OwnerID)
	s.Require().NoError(err)
	second, err := s.profileRepo.GetByOwnerID(ctx, p.OwnerID)
	s.Require().NoError(err)

	first.Bio = "writer one"
	s.Require().NoError(s.profileRepo.Update(ctx, first))
	s.Equal(int64(2), first.Version)

	// The second reader holds a stale version; its write must lose.
	second.Bio = "writer two"
	err = s.profileRepo.Update(ctx, second)
	s.ErrorIs(err, profile.ErrVersionConflict)

	got, err := s.profileRepo.GetByOwnerID(ctx, p.OwnerID)
	s.Require().NoError(err)
	s.Equal("writer one", got.Bio)
}

func (s *ProfileRepoIntegrationTestSuite) TestUpdateFieldsPartial() {
	ctx := context.Background()
	p := s.seedProfile("partial@example.com")

	newBio := "updated bio"
	got, err := s.profileRepo.UpdateFields(ctx, p.OwnerID, profile.UpdateFields{Bio: &newBio})
	s.Require().NoError(err)

	s.Equal("updated bio", got.Bio)
	s.Equal("Owner", got.Name, "untouched fields survive")
	s.Equal(int64(2), got.Version)
}

func (s *ProfileRepoIntegrationTestSuite) TestDeleteReturnsSnapshot() {
	ctx := context.Background()
	p := s.seedProfile("deleted@example.com")

	snapshot, err := s.profileRepo.Delete(ctx, p.OwnerID)
	s.Require().NoError(err)
	s.Equal(p.Email, snapshot.Email)
	s.Len(snapshot.Skills, 1)

	_, err = s.profileRepo.GetByOwnerID(ctx, p.OwnerID)
	s.ErrorIs(err, profile.ErrProfileNotFound)
}

func (s *ProfileRepoIntegrationTestSuite) TestDuplicateEmailConflicts() {
	ctx := context.Background()
	p := s.seedProfile("dup@example.com")

	u := &user.User{ID: uuid.New(), Email: "dup2@example.com", PasswordHash: "hash", CreatedAt: time.Now().UTC()}
	s.Require().NoError(s.userRepo.Create(ctx, u))

	dup := *p
	dup.OwnerID = u.ID
	err := s.profileRepo.Create(ctx, &dup)
	s.Error(err)
}

func TestProfileRepoIntegrationTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(ProfileRepoIntegrationTestSuite))
}
