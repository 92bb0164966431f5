package main

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/haintran/portfolio-api/adapters/event"
	httpAdapter "github.com/haintran/portfolio-api/adapters/http"
	"github.com/haintran/portfolio-api/adapters/media_storage"
	"github.com/haintran/portfolio-api/adapters/persistence"
	"github.com/haintran/portfolio-api/internal/application/service"
	accountUC "github.com/haintran/portfolio-api/internal/application/usecase/account"
	authUC "github.com/haintran/portfolio-api/internal/application/usecase/auth"
	"github.com/haintran/portfolio-api/internal/application/usecase/content"
	profileUC "github.com/haintran/portfolio-api/internal/application/usecase/profile"
	"github.com/haintran/portfolio-api/internal/application/usecase/publicview"
	uploadUC "github.com/haintran/portfolio-api/internal/application/usecase/upload"
	"github.com/haintran/portfolio-api/internal/config"
	"github.com/haintran/portfolio-api/internal/domain/profile"
	"github.com/haintran/portfolio-api/pkg/auth"
	"github.com/haintran/portfolio-api/pkg/logger"
	"github.com/haintran/portfolio-api/pkg/tracing"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		panic("cannot load config: " + err.Error())
	}

	log := logger.NewZapLogger(cfg.App.Env)
	log.Info("Starting portfolio API server...", zap.String("env", cfg.App.Env))

	if cfg.Tracing.OTLPEndpoint != "" {
		tp, err := tracing.NewTracerProvider(cfg, log, "portfolio-api")
		if err != nil {
			log.Fatal("cannot initialize tracing", err)
		}
		defer tp.Shutdown(context.Background())
	}

	dbPool, err := persistence.NewPostgresPool(cfg, log)
	if err != nil {
		log.Fatal("cannot connect Postgres", err)
	}
	defer dbPool.Close()

	redisClient, err := persistence.NewRedisClient(cfg)
	if err != nil {
		log.Fatal("cannot connect Redis", err)
	}
	defer redisClient.Close()

	auditProducer, err := event.NewKafkaAuditProducer(cfg)
	if err != nil {
		log.Fatal("cannot init Kafka producer", err)
	}
	defer auditProducer.Close()

	// Repositories and services
	userRepo := persistence.NewPostgresUserRepo(dbPool)
	profileRepo := persistence.NewPostgresProfileRepo(dbPool, log)
	profileCache := persistence.NewRedisProfileCache(redisClient, log)

	sessionSvc := auth.NewSessionService(cfg.Auth.JWTSecret, cfg.Auth.SessionLifespan)
	uploader, err := media_storage.NewCloudinaryAdapter(cfg)
	if err != nil {
		log.Fatal("cannot initialize uploader", err)
	}

	// Use cases
	loginUseCase := authUC.NewLoginUseCase(userRepo, sessionSvc, log)
	accountUseCase := accountUC.NewAccountUseCase(userRepo, profileRepo, auditProducer, profileCache, log)
	profileUseCase := profileUC.NewProfileUseCase(profileRepo, auditProducer, profileCache, log)
	publicUseCase := publicview.NewPublicUseCase(profileRepo, profileCache, cfg.Site.OwnerEmail, log)
	rssUseCase := publicview.NewRSSUseCase(publicUseCase, cfg.Site.PublicBaseURL, log)
	uploadUseCase := uploadUC.NewUploadUseCase(uploader, log)

	skillUseCase := content.NewItemUseCase(profile.SkillCollection, profileRepo, auditProducer, profileCache, log)
	experienceUseCase := content.NewItemUseCase(profile.ExperienceCollection, profileRepo, auditProducer, profileCache, log)
	educationUseCase := content.NewItemUseCase(profile.EducationCollection, profileRepo, auditProducer, profileCache, log)
	projectUseCase := content.NewItemUseCase(profile.ProjectCollection, profileRepo, auditProducer, profileCache, log)
	postUseCase := content.NewItemUseCase(profile.BlogPostCollection, profileRepo, auditProducer, profileCache, log)
	certificationUseCase := content.NewItemUseCase(profile.CertificationCollection, profileRepo, auditProducer, profileCache, log).
		WithCleanup(certificationImageCleanup(uploader, log))

	// HTTP handlers
	secureCookies := cfg.App.Env == "production"
	authHandler := httpAdapter.NewAuthHandler(loginUseCase, accountUseCase, sessionSvc, secureCookies, log)
	profileHandler := httpAdapter.NewProfileHandler(profileUseCase, accountUseCase, log)
	publicHandler := httpAdapter.NewPublicHandler(publicUseCase, log)
	rssHandler := httpAdapter.NewRSSHandler(rssUseCase, log)
	uploadHandler := httpAdapter.NewUploadHandler(uploadUseCase, log)

	skillHandler := httpAdapter.NewSkillHandler(skillUseCase, log)
	experienceHandler := httpAdapter.NewExperienceHandler(experienceUseCase, log)
	educationHandler := httpAdapter.NewEducationHandler(educationUseCase, log)
	projectHandler := httpAdapter.NewProjectHandler(projectUseCase, log)
	postHandler := httpAdapter.NewBlogPostHandler(postUseCase, log)
	certificationHandler := httpAdapter.NewCertificationHandler(certificationUseCase, uploadUseCase, log)

	authMiddleware := httpAdapter.AuthMiddleware(sessionSvc)

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery(), httpAdapter.ErrorMiddleware(log))

	api := router.Group("/api")
	{
		api.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "UP"}) })

		// Public site
		api.GET("/profile", publicHandler.GetProfile)
		api.GET("/projects", publicHandler.ListProjects)
		api.GET("/posts", publicHandler.ListPosts)
		api.GET("/posts/:slug", publicHandler.GetPostBySlug)
		api.GET("/certifications", publicHandler.ListCertifications)
		api.GET("/rss", rssHandler.GenerateRSS)

		authGroup := api.Group("/auth")
		{
			authGroup.POST("/login", authHandler.Login)
			authGroup.POST("/logout", authHandler.Logout)
			authGroup.POST("/register", authHandler.Register)
		}

		// Dashboard
		admin := api.Group("/admin")
		admin.Use(authMiddleware)
		{
			admin.GET("/profile", profileHandler.GetProfile)
			admin.PUT("/profile", profileHandler.UpdateProfile)
			admin.DELETE("/profile", profileHandler.DeleteProfile)
			admin.PUT("/social", profileHandler.UpdateSocialLinks)
			admin.POST("/upload", uploadHandler.Upload)

			skillHandler.Register(admin, "/skills")
			experienceHandler.Register(admin, "/experience")
			educationHandler.Register(admin, "/education")
			projectHandler.Register(admin, "/projects")
			postHandler.Register(admin, "/posts")
			certificationHandler.Register(admin, "/certifications")
		}
	}

	log.Info("Server running", zap.String("port", cfg.App.Port))
	if err := router.Run(":" + cfg.App.Port); err != nil {
		log.Fatal("cannot run server", err)
	}
}

// certificationImageCleanup deletes the stored badge image after its
// certification is removed. Only URLs under our own upload folder are
// touched, and failures are logged rather than surfaced: the database
// delete already happened.
func certificationImageCleanup(uploader service.Uploader, log logger.Logger) func(ctx context.Context, cert profile.Certification) {
	return func(ctx context.Context, cert profile.Certification) {
		if cert.Image == "" || !uploader.OwnsURL(cert.Image) {
			return
		}
		publicID, ok := uploader.PublicIDFromURL(cert.Image)
		if !ok {
			return
		}
		if err := uploader.Delete(ctx, publicID); err != nil {
			log.Warn("failed to delete certification image", zap.String("public_id", publicID), zap.Error(err))
		}
	}
}
