package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/haintran/portfolio-api/internal/application/usecase/publicview"
	"github.com/haintran/portfolio-api/pkg/logger"
)

// PublicHandler serves the unauthenticated site surface. Everything here
// reads the owner's profile through the public use case and its cache.
type PublicHandler struct {
	publicUseCase *publicview.PublicUseCase
	logger        logger.Logger
}

func NewPublicHandler(uc *publicview.PublicUseCase, log logger.Logger) *PublicHandler {
	return &PublicHandler{
		publicUseCase: uc,
		logger:        log,
	}
}

func (h *PublicHandler) GetProfile(c *gin.Context) {
	p, err := h.publicUseCase.ExecuteGetPublicProfile(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": ToProfileDTO(p)})
}

func (h *PublicHandler) ListProjects(c *gin.Context) {
	projects, err := h.publicUseCase.ExecuteListProjects(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	dtos := make([]ProjectDTO, len(projects))
	for i, p := range projects {
		dtos[i] = ToProjectDTO(p)
	}
	c.JSON(http.StatusOK, gin.H{"projects": dtos})
}

func (h *PublicHandler) ListPosts(c *gin.Context) {
	posts, err := h.publicUseCase.ExecuteListPublishedPosts(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	dtos := make([]BlogPostDTO, len(posts))
	for i, p := range posts {
		dtos[i] = ToBlogPostDTO(p)
	}
	c.JSON(http.StatusOK, gin.H{"posts": dtos})
}

func (h *PublicHandler) GetPostBySlug(c *gin.Context) {
	post, err := h.publicUseCase.ExecuteGetPublishedPost(c.Request.Context(), c.Param("slug"))
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"post": ToBlogPostDTO(*post)})
}

func (h *PublicHandler) ListCertifications(c *gin.Context) {
	certs, err := h.publicUseCase.ExecuteListCertifications(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	dtos := make([]CertificationDTO, len(certs))
	for i, cert := range certs {
		dtos[i] = ToCertificationDTO(cert)
	}
	c.JSON(http.StatusOK, gin.H{"certifications": dtos})
}
