package storage

import (
	"context"
	"io"

	"rentflow/models"
)

// Folders used for uploaded files.
const (
	FolderSlips      = "slips"
	FolderAgreements = "agreements"
)

// StorageService defines the interface for storage operations.
type StorageService interface {
	// UploadFile stores r under folder and returns its permanent identifier and public URL.
	UploadFile(ctx context.Context, r io.Reader, folder, filename string) (models.StoredFile, error)
	// UploadPrivateFile stores r as an authenticated asset reachable only through signed URLs.
	UploadPrivateFile(ctx context.Context, r io.Reader, folder, filename string) (models.StoredFile, error)
	DeleteFile(ctx context.Context, publicID string) error
	// GetSecureDownloadURL returns a signed URL for a private asset.
	GetSecureDownloadURL(ctx context.Context, publicID string) (string, error)
}
