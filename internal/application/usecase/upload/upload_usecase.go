package upload

import (
	"context"
	"fmt"
	"io"

	"github.com/google/uuid"

	"github.com/haintran/portfolio-api/internal/application/service"
	"github.com/haintran/portfolio-api/pkg/apperror"
	"github.com/haintran/portfolio-api/pkg/logger"
)

// allowedTypes is the MIME allow-list for image uploads.
var allowedTypes = map[string]string{
	"image/jpeg": "jpeg",
	"image/png":  "png",
	"image/webp": "webp",
	"image/gif":  "gif",
}

type UploadUseCase struct {
	uploader service.Uploader
	logger   logger.Logger
}

func NewUploadUseCase(uploader service.Uploader, log logger.Logger) *UploadUseCase {
	return &UploadUseCase{uploader: uploader, logger: log}
}

type UploadInput struct {
	File        io.Reader
	ContentType string
}

type UploadOutput struct {
	URL string
}

// Execute stores the image under a generated unique name and returns its
// public URL.
func (uc *UploadUseCase) Execute(ctx context.Context, input UploadInput) (*UploadOutput, error) {
	if _, ok := allowedTypes[input.ContentType]; !ok {
		return nil, apperror.NewInvalidInput(
			fmt.Sprintf("invalid file type %q: only JPEG, PNG, WebP, and GIF are allowed", input.ContentType), nil)
	}

	url, err := uc.uploader.Upload(ctx, input.File, service.UploadFolder, uuid.NewString())
	if err != nil {
		return nil, apperror.NewInternal("failed to store uploaded file", err)
	}
	return &UploadOutput{URL: url}, nil
}
