package services

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"cloud.google.com/go/storage"

	"github.com/TharakaGamage830/OmniDash/pkg/config"

	"github.com/google/uuid"
)

var (
	storageClient *storage.Client
	bucketName    string
)

// InitStorage initializes the GCS client when a bucket is configured. Without
// one, uploads land in the local upload directory served under /uploads.
func InitStorage() error {
	bucketName = config.AppConfig.GCPBucketName
	if bucketName == "" {
		if err := os.MkdirAll(config.AppConfig.UploadDir, 0o755); err != nil {
			return fmt.Errorf("failed to create upload directory: %w", err)
		}
		return nil
	}

	ctx := context.Background()
	client, err := storage.NewClient(ctx)
	if err != nil {
		return fmt.Errorf("failed to create GCS client: %w", err)
	}

	storageClient = client
	return nil
}

// SaveImage stores an uploaded image and returns its public URL.
func SaveImage(fileBuffer []byte, fileName string) (string, error) {
	uniqueName := uuid.New().String() + "-" + filepath.Base(fileName)

	if storageClient == nil {
		return saveLocal(fileBuffer, uniqueName)
	}

	ctx := context.Background()
	obj := storageClient.Bucket(bucketName).Object(uniqueName)
	writer := obj.NewWriter(ctx)
	writer.ContentType = "image/jpeg"

	if _, err := writer.Write(fileBuffer); err != nil {
		writer.Close()
		return "", fmt.Errorf("GCS upload failed: %w", err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("GCS upload finalization failed: %w", err)
	}

	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", bucketName, uniqueName), nil
}

// saveLocal writes the file to the upload directory and returns its served URL.
func saveLocal(fileBuffer []byte, fileName string) (string, error) {
	path := filepath.Join(config.AppConfig.UploadDir, fileName)
	if err := os.WriteFile(path, fileBuffer, 0o644); err != nil {
		return "", fmt.Errorf("failed to write upload: %w", err)
	}
	return config.AppConfig.BaseURL + "/uploads/" + fileName, nil
}

// DeleteImage removes a stored image. Missing files are not an error.
func DeleteImage(imageURL string) error {
	if imageURL == "" {
		return nil
	}

	parts := strings.Split(imageURL, "/")
	fileName := parts[len(parts)-1]

	if storageClient == nil {
		os.Remove(filepath.Join(config.AppConfig.UploadDir, fileName))
		return nil
	}

	ctx := context.Background()
	if err := storageClient.Bucket(bucketName).Object(fileName).Delete(ctx); err != nil {
		return nil
	}
	return nil
}
