package storage

import (
	"context"
	"fmt"

	"quadras/config"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// StorageService stores arena and court photos on a media CDN and hands back
// servable URLs.
type StorageService interface {
	UploadImage(ctx context.Context, localFilePath, folder string) (url, publicID string, err error)
	DeleteImage(ctx context.Context, publicID string) error
}

// CloudinaryStorage implements StorageService on Cloudinary.
type CloudinaryStorage struct {
	cld *cloudinary.Cloudinary
}

// NewCloudinaryStorage initializes the client from the CLOUDINARY_URL
// credential string.
func NewCloudinaryStorage() (*CloudinaryStorage, error) {
	if config.AppConfig.CloudinaryURL == "" {
		return nil, fmt.Errorf("cloudinary credentials not configured")
	}
	cld, err := cloudinary.NewFromURL(config.AppConfig.CloudinaryURL)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize cloudinary: %w", err)
	}
	return &CloudinaryStorage{cld: cld}, nil
}

// UploadImage pushes a local file into the given folder and returns the
// delivery URL together with the public ID needed to delete it later.
func (s *CloudinaryStorage) UploadImage(ctx context.Context, localFilePath, folder string) (string, string, error) {
	result, err := s.cld.Upload.Upload(ctx, localFilePath, uploader.UploadParams{Folder: folder})
	if err != nil {
		return "", "", fmt.Errorf("failed to upload image: %w", err)
	}
	if result.PublicID == "" {
		return "", "", fmt.Errorf("upload returned no public ID")
	}
	return result.SecureURL, result.PublicID, nil
}

// DeleteImage removes an uploaded file by its public ID.
func (s *CloudinaryStorage) DeleteImage(ctx context.Context, publicID string) error {
	if _, err := s.cld.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: publicID}); err != nil {
		return fmt.Errorf("failed to delete image %s: %w", publicID, err)
	}
	return nil
}
