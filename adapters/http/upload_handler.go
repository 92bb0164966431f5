package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/haintran/portfolio-api/internal/application/usecase/upload"
	"github.com/haintran/portfolio-api/pkg/apperror"
	"github.com/haintran/portfolio-api/pkg/logger"
)

type UploadHandler struct {
	uploadUseCase *upload.UploadUseCase
	logger        logger.Logger
}

func NewUploadHandler(uc *upload.UploadUseCase, log logger.Logger) *UploadHandler {
	return &UploadHandler{
		uploadUseCase: uc,
		logger:        log,
	}
}

// Upload accepts a single image under the "file" form field and returns
// the stored URL. The client attaches the URL to whatever it is editing.
func (h *UploadHandler) Upload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.Error(apperror.NewInvalidInput("a file is required under the \"file\" field", err))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.Error(apperror.NewInvalidInput("failed to read uploaded file", err))
		return
	}
	defer file.Close()

	output, err := h.uploadUseCase.Execute(c.Request.Context(), upload.UploadInput{
		File:        file,
		ContentType: fileHeader.Header.Get("Content-Type"),
	})
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": output.URL})
}
