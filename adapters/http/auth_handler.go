package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	accountUC "github.com/haintran/portfolio-api/internal/application/usecase/account"
	authUC "github.com/haintran/portfolio-api/internal/application/usecase/auth"
	"github.com/haintran/portfolio-api/pkg/apperror"
	pkgauth "github.com/haintran/portfolio-api/pkg/auth"
	"github.com/haintran/portfolio-api/pkg/logger"
)

type AuthHandler struct {
	loginUseCase   *authUC.LoginUseCase
	accountUseCase *accountUC.AccountUseCase
	sessionSvc     *pkgauth.SessionService
	secureCookies  bool
	logger         logger.Logger
}

func NewAuthHandler(
	loginUC *authUC.LoginUseCase,
	accountUC *accountUC.AccountUseCase,
	sessionSvc *pkgauth.SessionService,
	secureCookies bool,
	log logger.Logger,
) *AuthHandler {
	return &AuthHandler{
		loginUseCase:   loginUC,
		accountUseCase: accountUC,
		sessionSvc:     sessionSvc,
		secureCookies:  secureCookies,
		logger:         log,
	}
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login verifies credentials and sets the session cookie. Invalid email and
// invalid password are indistinguishable in the response.
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("email and password are required", err))
		return
	}

	output, err := h.loginUseCase.Execute(c.Request.Context(), authUC.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		if errors.Is(err, authUC.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Email or password is incorrect"})
			return
		}
		c.Error(err)
		return
	}

	maxAge := int(h.sessionSvc.Lifespan().Seconds())
	c.SetCookie(pkgauth.SessionCookieName, output.Credential, maxAge, "/", "", h.secureCookies, true)
	// The token is also returned in the body for non-browser clients using
	// the Bearer fallback.
	c.JSON(http.StatusOK, gin.H{"success": true, "token": output.Credential})
}

// Logout clears the cookie. The credential itself stays valid until it
// expires; the server keeps no session state to revoke.
func (h *AuthHandler) Logout(c *gin.Context) {
	c.SetCookie(pkgauth.SessionCookieName, "", -1, "/", "", h.secureCookies, true)
	c.JSON(http.StatusOK, gin.H{"success": true})
}

type registerRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	JobTitle string `json:"job_title"`
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("name, email, and a password of at least 8 characters are required", err))
		return
	}

	output, err := h.accountUseCase.ExecuteRegister(c.Request.Context(), accountUC.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		JobTitle: req.JobTitle,
	})
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"user": ToProfileDTO(output.Profile)})
}
