package utils

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"github.com/google/uuid"
	"google.golang.org/api/option"
)

// NewGCSClient opens a storage client using the configured service
// account file.
func NewGCSClient(ctx context.Context, credentialsPath string) (*storage.Client, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	return storage.NewClient(ctx, option.WithCredentialsFile(filepath.Join(wd, credentialsPath)))
}

// UploadAvatarToGCS stores a user avatar and returns its public URL.
func UploadAvatarToGCS(
	ctx context.Context,
	client *storage.Client,
	bucketName string,
	userID string,
	fileHeader *multipart.FileHeader,
) (string, error) {
	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))

	allowed := map[string]bool{
		".jpg":  true,
		".jpeg": true,
		".png":  true,
		".webp": true,
	}
	if !allowed[ext] {
		return "", fmt.Errorf("file type not allowed (allowed: jpg, jpeg, png, webp)")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return "", err
	}
	defer file.Close()

	objectName := fmt.Sprintf(
		"avatars/%s/%d-%s%s",
		userID,
		time.Now().UTC().Unix(),
		uuid.New().String(),
		ext,
	)

	writer := client.Bucket(bucketName).Object(objectName).NewWriter(ctx)
	if ct := fileHeader.Header.Get("Content-Type"); ct != "" {
		writer.ContentType = ct
	}
	writer.CacheControl = "no-cache"

	if _, err := io.Copy(writer, file); err != nil {
		_ = writer.Close()
		return "", err
	}
	if err := writer.Close(); err != nil {
		return "", err
	}

	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", bucketName, objectName), nil
}

// ObjectNameFromGCSPublicURL maps a stored public URL back to the object
// name so old avatars can be deleted on replacement.
func ObjectNameFromGCSPublicURL(bucket string, raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("invalid url: %w", err)
	}

	host := strings.ToLower(u.Host)
	path := strings.TrimPrefix(u.Path, "/")

	// style 1: storage.googleapis.com/<bucket>/<object>
	if host == "storage.googleapis.com" {
		prefix := bucket + "/"
		if !strings.HasPrefix(path, prefix) {
			return "", fmt.Errorf("url bucket mismatch")
		}
		return strings.TrimPrefix(path, prefix), nil
	}

	// style 2: <bucket>.storage.googleapis.com/<object>
	if host == strings.ToLower(bucket)+".storage.googleapis.com" {
		if path == "" {
			return "", fmt.Errorf("missing object path")
		}
		return path, nil
	}

	return "", fmt.Errorf("not a gcs public url")
}

func DeleteGCSObject(ctx context.Context, client *storage.Client, bucket string, objectName string) error {
	if objectName == "" {
		return nil
	}
	return client.Bucket(bucket).Object(objectName).Delete(ctx)
}
