package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

const (
	maxAvatarSize    = 5 * 1024 * 1024
	presignedURLTTL  = 15 * time.Minute
	avatarPathPrefix = "avatars"
)

var (
	ErrFileTooBig      = errors.New("file size exceeds 5MB limit")
	ErrInvalidFileType = errors.New("only JPEG and PNG images are allowed")
	ErrStorageDisabled = errors.New("object storage is not configured")

	allowedAvatarTypes = map[string]string{
		"image/jpeg": ".jpg",
		"image/png":  ".png",
	}
)

// StorageService stores user avatars in an S3-compatible bucket.
type StorageService interface {
	UploadAvatar(ctx context.Context, userID uint, file io.Reader, size int64, contentType string) (string, error)
	DeleteAvatar(ctx context.Context, objectKey string) error
	AvatarURL(ctx context.Context, objectKey string) (string, error)
}

type MinioStorage struct {
	client *minio.Client
	bucket string
}

func NewMinioStorage(endpoint, accessKey, secretKey, bucket string, useSSL bool) (*MinioStorage, error) {
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("create minio client: %w", err)
	}
	s := &MinioStorage{client: client, bucket: bucket}
	if err := s.ensureBucket(context.Background()); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *MinioStorage) ensureBucket(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("check bucket: %w", err)
	}
	if !exists {
		if err := s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{}); err != nil {
			return fmt.Errorf("create bucket: %w", err)
		}
	}
	return nil
}

func (s *MinioStorage) UploadAvatar(ctx context.Context, userID uint, file io.Reader, size int64, contentType string) (string, error) {
	if size > maxAvatarSize {
		return "", ErrFileTooBig
	}
	normalized := strings.ToLower(strings.TrimSpace(contentType))
	ext, ok := allowedAvatarTypes[normalized]
	if !ok {
		return "", ErrInvalidFileType
	}

	objectKey := fmt.Sprintf("%s/user-%d/%s%s", avatarPathPrefix, userID, uuid.NewString(), ext)
	_, err := s.client.PutObject(ctx, s.bucket, objectKey, file, size, minio.PutObjectOptions{
		ContentType: normalized,
	})
	if err != nil {
		return "", fmt.Errorf("upload avatar: %w", err)
	}
	return objectKey, nil
}

func (s *MinioStorage) DeleteAvatar(ctx context.Context, objectKey string) error {
	if strings.TrimSpace(objectKey) == "" {
		return nil
	}
	if err := s.client.RemoveObject(ctx, s.bucket, objectKey, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("delete avatar: %w", err)
	}
	return nil
}

func (s *MinioStorage) AvatarURL(ctx context.Context, objectKey string) (string, error) {
	if strings.TrimSpace(objectKey) == "" {
		return "", fmt.Errorf("presign avatar: empty object key")
	}
	presigned, err := s.client.PresignedGetObject(ctx, s.bucket, objectKey, presignedURLTTL, url.Values{})
	if err != nil {
		return "", fmt.Errorf("presign avatar: %w", err)
	}
	return presigned.String(), nil
}

// DisabledStorage stands in when no MINIO_ENDPOINT is configured.
type DisabledStorage struct{}

func NewDisabledStorage() *DisabledStorage { return &DisabledStorage{} }

func (DisabledStorage) UploadAvatar(context.Context, uint, io.Reader, int64, string) (string, error) {
	return "", ErrStorageDisabled
}

func (DisabledStorage) DeleteAvatar(context.Context, string) error { return ErrStorageDisabled }

func (DisabledStorage) AvatarURL(context.Context, string) (string, error) {
	return "", ErrStorageDisabled
}
