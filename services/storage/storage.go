// Package storage uploads user media to Cloudinary and builds delivery URLs.
package storage

import (
	"context"
	"crypto/sha1"
	"encoding/base64"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/google/uuid"
)

// StorageService defines the interface for media storage operations.
type StorageService interface {
	// Upload stores the file under the given folder and returns its public
	// id and delivery URL.
	Upload(ctx context.Context, file io.Reader, folder, filename string) (publicID string, url string, err error)
	// Delete removes an uploaded asset.
	Delete(ctx context.Context, publicID string) error
	// GetDownloadURL returns the plain delivery URL for an asset.
	GetDownloadURL(publicID string) string
	// GetSecureDownloadURL returns a signed, expiring delivery URL.
	GetSecureDownloadURL(publicID string, expires time.Duration) string
}

// CloudinaryStorageService implements StorageService using Cloudinary.
type CloudinaryStorageService struct {
	client    *cloudinary.Cloudinary
	cloudName string
	apiSecret string
}

// NewStorageService wraps an initialized Cloudinary client.
func NewStorageService(client *cloudinary.Cloudinary, cloudName, apiSecret string) *CloudinaryStorageService {
	return &CloudinaryStorageService{
		client:    client,
		cloudName: cloudName,
		apiSecret: apiSecret,
	}
}

// Upload stores the file and returns its public id and secure delivery URL.
// The public id embeds a random suffix so repeated filenames never collide.
func (s *CloudinaryStorageService) Upload(ctx context.Context, file io.Reader, folder, filename string) (string, string, error) {
	base := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	if base == "" || base == "." {
		base = "upload"
	}
	publicID := fmt.Sprintf("%s-%s", base, uuid.New().String()[:8])

	result, err := s.client.Upload.Upload(ctx, file, uploader.UploadParams{
		Folder:   folder,
		PublicID: publicID,
	})
	if err != nil {
		return "", "", fmt.Errorf("failed to upload %s: %w", filename, err)
	}
	return result.PublicID, result.SecureURL, nil
}

// Delete removes an uploaded asset.
func (s *CloudinaryStorageService) Delete(ctx context.Context, publicID string) error {
	result, err := s.client.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: publicID})
	if err != nil {
		return fmt.Errorf("failed to delete %s: %w", publicID, err)
	}
	if result.Result != "ok" && result.Result != "not found" {
		return fmt.Errorf("failed to delete %s: %s", publicID, result.Result)
	}
	return nil
}

// GetDownloadURL returns the plain delivery URL for an asset.
func (s *CloudinaryStorageService) GetDownloadURL(publicID string) string {
	return fmt.Sprintf("https://res.cloudinary.com/%s/image/upload/%s", s.cloudName, publicID)
}

// GetSecureDownloadURL returns a signed URL that stops working after the
// expiry. Used for verification documents, which must not be public.
func (s *CloudinaryStorageService) GetSecureDownloadURL(publicID string, expires time.Duration) string {
	expiresAt := time.Now().Add(expires).Unix()
	toSign := fmt.Sprintf("expires_at=%d&public_id=%s%s", expiresAt, publicID, s.apiSecret)
	digest := sha1.Sum([]byte(toSign))
	signature := base64.RawURLEncoding.EncodeToString(digest[:])

	return fmt.Sprintf("https://res.cloudinary.com/%s/image/authenticated/s--%s--/%s?expires_at=%d",
		s.cloudName, signature[:8], publicID, expiresAt)
}
