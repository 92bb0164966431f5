package service

import (
	"context"
	"io"
)

// UploadFolder is the storage folder owned by this application. Deletes
// are only attempted against URLs under it.
const UploadFolder = "portfolio/uploads"

// Uploader abstracts the external image storage collaborator.
type Uploader interface {
	Upload(ctx context.Context, file io.Reader, folder string, publicID string) (string, error)
	Delete(ctx context.Context, publicID string) error
	// OwnsURL reports whether the URL points at storage this uploader
	// manages, so deletes stay scoped to our own uploads.
	OwnsURL(url string) bool
	// PublicIDFromURL extracts the storage public id from a delivery URL.
	PublicIDFromURL(url string) (string, bool)
}
