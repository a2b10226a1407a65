package storage

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"rentflow/models"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// StorageServiceImpl stores files in Cloudinary.
type StorageServiceImpl struct {
	cld *cloudinary.Cloudinary
}

// NewStorageService creates a Cloudinary storage service from a
// cloudinary://<key>:<secret>@<cloud> URL.
func NewStorageService(cloudinaryURL string) (*StorageServiceImpl, error) {
	cld, err := cloudinary.NewFromURL(cloudinaryURL)
	if err != nil {
		return nil, fmt.Errorf("storage: failed to initialize Cloudinary: %w", err)
	}
	return &StorageServiceImpl{cld: cld}, nil
}

// UploadFile uploads a file to Cloudinary into the specified folder.
func (s *StorageServiceImpl) UploadFile(ctx context.Context, r io.Reader, folder, filename string) (models.StoredFile, error) {
	return s.upload(ctx, r, uploader.UploadParams{
		Folder:   folder,
		PublicID: baseName(filename),
	})
}

// UploadPrivateFile uploads an authenticated asset; plain URLs to it do not resolve.
func (s *StorageServiceImpl) UploadPrivateFile(ctx context.Context, r io.Reader, folder, filename string) (models.StoredFile, error) {
	return s.upload(ctx, r, uploader.UploadParams{
		Folder:       folder,
		PublicID:     baseName(filename),
		Type:         api.Authenticated,
		ResourceType: "auto",
	})
}

func (s *StorageServiceImpl) upload(ctx context.Context, r io.Reader, params uploader.UploadParams) (models.StoredFile, error) {
	overwrite, unique := false, true
	params.Overwrite = &overwrite
	params.UniqueFilename = &unique

	result, err := s.cld.Upload.Upload(ctx, r, params)
	if err != nil {
		return models.StoredFile{}, fmt.Errorf("storage: failed to upload file: %w", err)
	}
	if result.Error.Message != "" {
		return models.StoredFile{}, fmt.Errorf("storage: upload rejected: %s", result.Error.Message)
	}
	if result.PublicID == "" {
		return models.StoredFile{}, fmt.Errorf("storage: no public ID returned")
	}
	return models.StoredFile{PublicID: result.PublicID, URL: result.SecureURL}, nil
}

// DeleteFile deletes a file from Cloudinary given its public ID.
func (s *StorageServiceImpl) DeleteFile(ctx context.Context, publicID string) error {
	if _, err := s.cld.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: publicID}); err != nil {
		return fmt.Errorf("storage: failed to delete file: %w", err)
	}
	return nil
}

// GetSecureDownloadURL builds a signed delivery URL for an authenticated asset.
func (s *StorageServiceImpl) GetSecureDownloadURL(ctx context.Context, publicID string) (string, error) {
	if publicID == "" {
		return "", fmt.Errorf("storage: empty public ID")
	}
	img, err := s.cld.Image(publicID)
	if err != nil {
		return "", fmt.Errorf("storage: failed to get asset: %w", err)
	}
	img.DeliveryType = api.Authenticated
	img.Config.URL.SignURL = true
	img.Config.URL.Secure = true

	url, err := img.String()
	if err != nil {
		return "", fmt.Errorf("storage: failed to sign URL: %w", err)
	}
	return url, nil
}

// baseName strips directories and the extension so Cloudinary derives a clean public ID.
func baseName(filename string) string {
	name := path.Base(strings.ReplaceAll(filename, "\\", "/"))
	if name == "." || name == "/" {
		return ""
	}
	return strings.TrimSuffix(name, path.Ext(name))
}
