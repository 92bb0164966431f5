package http

import (
	"github.com/gin-gonic/gin"

	"github.com/haintran/portfolio-api/internal/application/usecase/publicview"
	"github.com/haintran/portfolio-api/pkg/logger"
)

type RSSHandler struct {
	rssUseCase *publicview.RSSUseCase
	logger     logger.Logger
}

func NewRSSHandler(uc *publicview.RSSUseCase, log logger.Logger) *RSSHandler {
	return &RSSHandler{
		rssUseCase: uc,
		logger:     log,
	}
}

func (h *RSSHandler) GenerateRSS(c *gin.Context) {
	feed, err := h.rssUseCase.Execute(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	c.Header("Content-Type", "application/xml; charset=utf-8")

	if err := feed.WriteRss(c.Writer); err != nil {
		h.logger.Error("Failed to write RSS feed to response", err)
	}
}
