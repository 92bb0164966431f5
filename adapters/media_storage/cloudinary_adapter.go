package media_storage

import (
	"context"
	"fmt"
	"io"
	"path"
	"regexp"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"

	"github.com/haintran/portfolio-api/internal/application/service"
	"github.com/haintran/portfolio-api/internal/config"
)

type cloudinaryAdapter struct {
	cld       *cloudinary.Cloudinary
	cloudName string
}

func NewCloudinaryAdapter(cfg config.Config) (service.Uploader, error) {
	if cfg.Cloudinary.CloudName == "" {
		return nil, fmt.Errorf("cloudinary cloud_name has not config")
	}

	cld, err := cloudinary.NewFromParams(
		cfg.Cloudinary.CloudName,
		cfg.Cloudinary.ApiKey,
		cfg.Cloudinary.ApiSecret,
	)
	if err != nil {
		return nil, fmt.Errorf("cannot init cloudinary: %w", err)
	}

	return &cloudinaryAdapter{cld: cld, cloudName: cfg.Cloudinary.CloudName}, nil
}

func (a *cloudinaryAdapter) Upload(ctx context.Context, file io.Reader, folder string, publicID string) (string, error) {
	result, err := a.cld.Upload.Upload(ctx, file, uploader.UploadParams{
		PublicID: publicID,
		Folder:   folder,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload cloudinary: %w", err)
	}
	return result.SecureURL, nil
}

func (a *cloudinaryAdapter) Delete(ctx context.Context, publicID string) error {
	_, err := a.cld.Upload.Destroy(ctx, uploader.DestroyParams{
		PublicID: publicID,
	})
	if err != nil {
		return fmt.Errorf("failed to delete cloudinary: %w", err)
	}
	return nil
}

func (a *cloudinaryAdapter) OwnsURL(url string) bool {
	return strings.HasPrefix(url, "https://res.cloudinary.com/"+a.cloudName+"/") &&
		strings.Contains(url, "/"+service.UploadFolder+"/")
}

var versionSegment = regexp.MustCompile(`^v\d+/`)

// PublicIDFromURL recovers the public id from a delivery URL, e.g.
// .../image/upload/v12345/portfolio/uploads/abc.png -> portfolio/uploads/abc
func (a *cloudinaryAdapter) PublicIDFromURL(url string) (string, bool) {
	_, after, found := strings.Cut(url, "/upload/")
	if !found {
		return "", false
	}
	after = versionSegment.ReplaceAllString(after, "")
	if after == "" {
		return "", false
	}
	return strings.TrimSuffix(after, path.Ext(after)), true
}
