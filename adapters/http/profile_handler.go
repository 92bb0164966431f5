package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	accountUC "github.com/haintran/portfolio-api/internal/application/usecase/account"
	profileUC "github.com/haintran/portfolio-api/internal/application/usecase/profile"
	"github.com/haintran/portfolio-api/internal/domain/profile"
	"github.com/haintran/portfolio-api/pkg/apperror"
	"github.com/haintran/portfolio-api/pkg/logger"
)

type ProfileHandler struct {
	profileUseCase *profileUC.ProfileUseCase
	accountUseCase *accountUC.AccountUseCase
	logger         logger.Logger
}

func NewProfileHandler(uc *profileUC.ProfileUseCase, accountUC *accountUC.AccountUseCase, log logger.Logger) *ProfileHandler {
	return &ProfileHandler{
		profileUseCase: uc,
		accountUseCase: accountUC,
		logger:         log,
	}
}

func (h *ProfileHandler) GetProfile(c *gin.Context) {
	ownerID, ok := GetOwnerIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("ownerID not found in context"))
		return
	}

	output, err := h.profileUseCase.ExecuteGetProfile(c.Request.Context(), profileUC.GetProfileInput{OwnerID: ownerID})
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": ToProfileDTO(output.Profile)})
}

func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	ownerID, ok := GetOwnerIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("ownerID not found in context"))
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("invalid JSON body for profile update", err))
		return
	}

	input := profileUC.UpdateProfileInput{
		OwnerID: ownerID,
		Fields:  req.ToUpdateFields(),
	}
	output, err := h.profileUseCase.ExecuteUpdateProfile(c.Request.Context(), input)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": ToProfileDTO(output.Profile)})
}

// UpdateSocialLinks is the social-links shortcut: a PUT of just the links.
// It rides the same allow-listed partial update, which skips required-field
// validation when only social links are present.
func (h *ProfileHandler) UpdateSocialLinks(c *gin.Context) {
	ownerID, ok := GetOwnerIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("ownerID not found in context"))
		return
	}

	var req SocialLinksDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("invalid JSON body for social links", err))
		return
	}

	links := profile.SocialLinks(req)
	input := profileUC.UpdateProfileInput{
		OwnerID: ownerID,
		Fields:  profile.UpdateFields{SocialLinks: &links},
	}
	output, err := h.profileUseCase.ExecuteUpdateProfile(c.Request.Context(), input)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"social_links": SocialLinksDTO(output.Profile.SocialLinks)})
}

func (h *ProfileHandler) DeleteProfile(c *gin.Context) {
	ownerID, ok := GetOwnerIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("ownerID not found in context"))
		return
	}

	output, err := h.accountUseCase.ExecuteDelete(c.Request.Context(), ownerID)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": ToProfileDTO(output.Profile)})
}
