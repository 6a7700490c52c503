// Package storage implements the media object store on Supabase Storage.
package storage

import (
	"bytes"
	"context"
	"fmt"

	storage_go "github.com/supabase-community/storage-go"

	"voicedeck/internal/domain"
)

// SupabaseStore uploads media objects to a Supabase Storage bucket and
// exposes their public URLs.
type SupabaseStore struct {
	client *storage_go.Client
	bucket string
}

// NewSupabaseStore creates a store for the given project URL, service key
// and bucket. An empty URL or key is allowed; calls then fail with an
// UnconfiguredError.
func NewSupabaseStore(projectURL, serviceKey, bucket string) *SupabaseStore {
	if projectURL == "" || serviceKey == "" {
		return &SupabaseStore{bucket: bucket}
	}

	client := storage_go.NewClient(projectURL+"/storage/v1", serviceKey, nil)
	return &SupabaseStore{
		client: client,
		bucket: bucket,
	}
}

// Put stores the object under key and returns its public URL.
func (s *SupabaseStore) Put(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	if s.client == nil {
		return "", &domain.UnconfiguredError{Message: "supabase storage is not configured"}
	}

	options := storage_go.FileOptions{ContentType: &contentType}
	if _, err := s.client.UploadFile(s.bucket, key, bytes.NewReader(data), options); err != nil {
		return "", &domain.UpstreamError{Message: fmt.Sprintf("storage upload failed: %v", err)}
	}

	return s.client.GetPublicUrl(s.bucket, key).SignedURL, nil
}

// Remove deletes the object under key. Missing objects are not an error.
func (s *SupabaseStore) Remove(ctx context.Context, key string) error {
	if s.client == nil {
		return &domain.UnconfiguredError{Message: "supabase storage is not configured"}
	}

	if _, err := s.client.RemoveFile(s.bucket, []string{key}); err != nil {
		return &domain.UpstreamError{Message: fmt.Sprintf("storage delete failed: %v", err)}
	}

	return nil
}
