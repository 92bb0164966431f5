package service

import "context"

// ProfileCache caches the serialized public profile. All methods degrade
// gracefully: a cache miss or cache error just falls back to the database.
type ProfileCache interface {
	GetPublicProfile(ctx context.Context) ([]byte, bool)
	SetPublicProfile(ctx context.Context, payload []byte)
	InvalidatePublicProfile(ctx context.Context)
}
