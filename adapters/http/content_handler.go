package http

import (
	"net/http"
	"sort"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/haintran/portfolio-api/internal/application/usecase/content"
	"github.com/haintran/portfolio-api/internal/domain/profile"
	"github.com/haintran/portfolio-api/pkg/apperror"
	"github.com/haintran/portfolio-api/pkg/logger"
)

// ItemHandler exposes one nested collection of the profile as a CRUD
// resource. Binding and serialization are injected per resource; routing
// and error handling are shared.
type ItemHandler[T any] struct {
	uc       *content.ItemUseCase[T]
	singular string
	plural   string
	toDTO    func(T) any
	bind     func(c *gin.Context) (T, error)
	// presort reorders the list response; nil keeps insertion order.
	presort func([]T)
	logger  logger.Logger
}

func (h *ItemHandler[T]) Register(rg *gin.RouterGroup, path string) {
	rg.GET(path, h.List)
	rg.POST(path, h.Create)
	rg.PUT(path+"/:id", h.Update)
	rg.DELETE(path+"/:id", h.Delete)
}

func (h *ItemHandler[T]) List(c *gin.Context) {
	ownerID, ok := GetOwnerIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("ownerID not found in context"))
		return
	}

	items, err := h.uc.List(c.Request.Context(), ownerID)
	if err != nil {
		c.Error(err)
		return
	}
	if h.presort != nil {
		h.presort(items)
	}

	c.JSON(http.StatusOK, gin.H{h.plural: h.toDTOs(items)})
}

func (h *ItemHandler[T]) Create(c *gin.Context) {
	ownerID, ok := GetOwnerIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("ownerID not found in context"))
		return
	}

	item, err := h.bind(c)
	if err != nil {
		c.Error(apperror.NewInvalidInput("invalid JSON body for "+h.singular, err))
		return
	}

	created, err := h.uc.Add(c.Request.Context(), ownerID, item)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{h.singular: h.toDTO(created)})
}

func (h *ItemHandler[T]) Update(c *gin.Context) {
	ownerID, ok := GetOwnerIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("ownerID not found in context"))
		return
	}
	itemID, err := parseItemID(c)
	if err != nil {
		c.Error(err)
		return
	}

	item, err := h.bind(c)
	if err != nil {
		c.Error(apperror.NewInvalidInput("invalid JSON body for "+h.singular, err))
		return
	}

	updated, err := h.uc.Update(c.Request.Context(), ownerID, itemID, item)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{h.singular: h.toDTO(updated)})
}

func (h *ItemHandler[T]) Delete(c *gin.Context) {
	ownerID, ok := GetOwnerIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("ownerID not found in context"))
		return
	}
	itemID, err := parseItemID(c)
	if err != nil {
		c.Error(err)
		return
	}

	removed, err := h.uc.Remove(c.Request.Context(), ownerID, itemID)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{h.singular: h.toDTO(removed)})
}

func (h *ItemHandler[T]) toDTOs(items []T) []any {
	out := make([]any, len(items))
	for i, item := range items {
		out[i] = h.toDTO(item)
	}
	return out
}

func parseItemID(c *gin.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, apperror.NewInvalidInput("invalid item id", err)
	}
	return id, nil
}

func bindJSON[R any, T any](toDomain func(R) T) func(c *gin.Context) (T, error) {
	return func(c *gin.Context) (T, error) {
		var zero T
		var req R
		if err := c.ShouldBindJSON(&req); err != nil {
			return zero, err
		}
		return toDomain(req), nil
	}
}

func NewSkillHandler(uc *content.ItemUseCase[profile.Skill], log logger.Logger) *ItemHandler[profile.Skill] {
	return &ItemHandler[profile.Skill]{
		uc:       uc,
		singular: "skill",
		plural:   "skills",
		toDTO:    func(s profile.Skill) any { return ToSkillDTO(s) },
		bind:     bindJSON(SkillRequest.ToDomain),
		logger:   log,
	}
}

func NewExperienceHandler(uc *content.ItemUseCase[profile.Experience], log logger.Logger) *ItemHandler[profile.Experience] {
	return &ItemHandler[profile.Experience]{
		uc:       uc,
		singular: "experience",
		plural:   "experiences",
		toDTO:    func(e profile.Experience) any { return ToExperienceDTO(e) },
		bind:     bindJSON(ExperienceRequest.ToDomain),
		logger:   log,
	}
}

func NewEducationHandler(uc *content.ItemUseCase[profile.Education], log logger.Logger) *ItemHandler[profile.Education] {
	return &ItemHandler[profile.Education]{
		uc:       uc,
		singular: "education",
		plural:   "education",
		toDTO:    func(e profile.Education) any { return ToEducationDTO(e) },
		bind:     bindJSON(EducationRequest.ToDomain),
		logger:   log,
	}
}

func NewProjectHandler(uc *content.ItemUseCase[profile.Project], log logger.Logger) *ItemHandler[profile.Project] {
	return &ItemHandler[profile.Project]{
		uc:       uc,
		singular: "project",
		plural:   "projects",
		toDTO:    func(p profile.Project) any { return ToProjectDTO(p) },
		bind:     bindJSON(ProjectRequest.ToDomain),
		logger:   log,
	}
}

func NewBlogPostHandler(uc *content.ItemUseCase[profile.BlogPost], log logger.Logger) *ItemHandler[profile.BlogPost] {
	return &ItemHandler[profile.BlogPost]{
		uc:       uc,
		singular: "post",
		plural:   "posts",
		toDTO:    func(b profile.BlogPost) any { return ToBlogPostDTO(b) },
		bind:     bindJSON(BlogPostRequest.ToDomain),
		// The dashboard lists posts newest first, drafts included.
		presort: func(posts []profile.BlogPost) {
			sort.SliceStable(posts, func(i, j int) bool { return posts[i].Date.After(posts[j].Date) })
		},
		logger: log,
	}
}
