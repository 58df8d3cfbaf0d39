package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"path"
	"strings"
	"time"

	gcs "cloud.google.com/go/storage"
)

var ErrUnsupportedImage = errors.New("invalid image type")

// Accepted upload content types and the extension stored for each.
var imageExtensions = map[string]string{
	"image/png":  "png",
	"image/jpeg": "jpeg",
	"image/jpg":  "jpg",
}

// MediaStore persists uploaded images and returns a public URL for them.
type MediaStore interface {
	UploadImage(ctx context.Context, filename, contentType string, r io.Reader) (string, error)
}

// ImageObjectKey builds "uploads/<name-with-dashes>-<unix millis>.<ext>" for an upload.
func ImageObjectKey(filename, contentType string, at time.Time) (string, error) {
	ext, ok := imageExtensions[strings.ToLower(contentType)]
	if !ok {
		return "", ErrUnsupportedImage
	}
	base := strings.TrimSuffix(path.Base(filename), path.Ext(filename))
	base = strings.Join(strings.Fields(base), "-")
	if base == "" || base == "." || base == "/" {
		base = "image"
	}
	return fmt.Sprintf("uploads/%s-%d.%s", base, at.UnixMilli(), ext), nil
}

// FirebaseMediaStore writes images into the Firebase Storage bucket.
type FirebaseMediaStore struct {
	bucket     *gcs.BucketHandle
	bucketName string
}

func NewFirebaseMediaStore(bucket *gcs.BucketHandle, bucketName string) *FirebaseMediaStore {
	return &FirebaseMediaStore{bucket: bucket, bucketName: bucketName}
}

func (s *FirebaseMediaStore) UploadImage(ctx context.Context, filename, contentType string, r io.Reader) (string, error) {
	key, err := ImageObjectKey(filename, contentType, time.Now())
	if err != nil {
		return "", err
	}

	w := s.bucket.Object(key).NewWriter(ctx)
	w.ContentType = contentType
	if _, err := io.Copy(w, r); err != nil {
		_ = w.Close()
		return "", fmt.Errorf("write object %s: %w", key, err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("close object %s: %w", key, err)
	}
	return s.publicURL(key), nil
}

func (s *FirebaseMediaStore) publicURL(key string) string {
	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", s.bucketName, (&url.URL{Path: key}).EscapedPath())
}
