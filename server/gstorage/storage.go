package gstorage

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"path"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"
)

var ErrObjectNotExist = storage.ErrObjectNotExist

const (
	uploadTimeout = 50 * time.Second

	// DEFAULT_SIGNED_URL_EXPIRY is how long a temporary-access URL
	// stays valid when the caller doesn't pick an expiry.
	DEFAULT_SIGNED_URL_EXPIRY = 3600 * time.Second
)

type GStorage struct {
	storageClient *storage.Client
	bucket        string
	customDomain  string
}

func NewGStorage(ctx context.Context, credentialsFilePath, bucket, customDomain string) (*GStorage, error) {
	var client *storage.Client
	var err error

	if credentialsFilePath != "" {
		client, err = storage.NewClient(ctx, option.WithCredentialsFile(credentialsFilePath))
	} else {
		client, err = storage.NewClient(ctx)
	}

	if err != nil {
		return nil, fmt.Errorf("NewGStorage: %v", err)
	}

	return &GStorage{storageClient: client, bucket: bucket, customDomain: customDomain}, nil
}

// Upload streams the contents of r into the bucket under key.
func (gs *GStorage) Upload(ctx context.Context, key, contentType string, r io.Reader) error {
	ctx, cancel := context.WithTimeout(ctx, uploadTimeout)
	defer cancel()

	wc := gs.storageClient.Bucket(gs.bucket).Object(key).NewWriter(ctx)
	wc.ContentType = contentType

	if _, err := io.Copy(wc, r); err != nil {
		return fmt.Errorf("io.Copy: %v", err)
	}
	if err := wc.Close(); err != nil {
		return fmt.Errorf("Writer.Close: %v", err)
	}

	return nil
}

// PublicURL returns the public retrieval URL for key, served through
// the bucket's custom domain.
func (gs *GStorage) PublicURL(key string) string {
	return fmt.Sprintf("https://%s/%s", gs.customDomain, key)
}

// SignedURL returns a time-boxed URL granting temporary access to a
// private object.
func (gs *GStorage) SignedURL(key string, expiresIn time.Duration) (string, error) {
	if expiresIn <= 0 {
		expiresIn = DEFAULT_SIGNED_URL_EXPIRY
	}

	signedURL, err := gs.storageClient.Bucket(gs.bucket).SignedURL(key, &storage.SignedURLOptions{
		Method:  "GET",
		Expires: time.Now().Add(expiresIn),
	})
	if err != nil {
		return "", fmt.Errorf("SignedURL: %v", err)
	}

	return signedURL, nil
}

// DeleteFile removes the object stored under key.
func (gs *GStorage) DeleteFile(ctx context.Context, key string) error {
	ctx, cancel := context.WithTimeout(ctx, uploadTimeout)
	defer cancel()

	err := gs.storageClient.Bucket(gs.bucket).Object(key).Delete(ctx)
	if err == storage.ErrObjectNotExist {
		return err
	}
	if err != nil {
		return fmt.Errorf("Object(%q).Delete: %v", key, err)
	}

	return nil
}

// ExtractKey pulls the storage key out of a public URL or plain path.
func ExtractKey(fileURL string) string {
	if strings.HasPrefix(fileURL, "http") {
		parsed, err := url.Parse(fileURL)
		if err != nil {
			return ""
		}
		return strings.TrimPrefix(parsed.Path, "/")
	}

	return path.Base(fileURL)
}
