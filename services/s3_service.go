package services

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// MaxPhotoSizeBytes is the upload size cap (10 MB)
const MaxPhotoSizeBytes = 10 * 1024 * 1024

// MaxPhotosPerProfile caps the photos list on a profile
const MaxPhotosPerProfile = 9

// allowedPhotoTypes matches the formats phones actually produce, HEIC included
var allowedPhotoTypes = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
	"image/webp": true,
	"image/heic": true,
	"image/heif": true,
}

// ValidatePhotoUpload checks content type, size and the per-profile photo cap
func ValidatePhotoUpload(contentType string, sizeBytes int64, existingPhotos int) error {
	if !allowedPhotoTypes[strings.ToLower(contentType)] {
		return fmt.Errorf("unsupported photo type %q, allowed: JPG, PNG, WEBP, HEIC", contentType)
	}
	if sizeBytes > MaxPhotoSizeBytes {
		return fmt.Errorf("photo exceeds the %d MB limit", MaxPhotoSizeBytes/(1024*1024))
	}
	if existingPhotos >= MaxPhotosPerProfile {
		return fmt.Errorf("profile already has the maximum of %d photos", MaxPhotosPerProfile)
	}
	return nil
}

// S3Service wraps presigned URL generation and direct uploads for profile photos
type S3Service struct {
	Client *s3.Client
	Bucket string
}

// NewS3Service initializes the S3 client from the ambient AWS config
func NewS3Service() (*S3Service, error) {
	cfg, err := config.LoadDefaultConfig(context.TODO(), config.WithRegion(os.Getenv("AWS_REGION")))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}
	return &S3Service{
		Client: s3.NewFromConfig(cfg),
		Bucket: os.Getenv("S3_BUCKET_NAME"),
	}, nil
}

// GenerateUploadURL generates a presigned URL for uploading a photo
func (s *S3Service) GenerateUploadURL(userID, fileName, fileType string) (string, string, error) {
	key := "profile-photos/" + userID + "/" + time.Now().Format("20060102150405") + "-" + fileName
	params := &s3.PutObjectInput{
		Bucket:      aws.String(s.Bucket),
		Key:         aws.String(key),
		ContentType: aws.String(fileType),
	}
	presigner := s3.NewPresignClient(s.Client)
	presignedURL, err := presigner.PresignPutObject(context.TODO(), params, s3.WithPresignExpires(5*time.Minute))
	if err != nil {
		return "", "", err
	}
	return presignedURL.URL, key, nil
}

// GenerateReadURL generates a presigned URL for reading a stored photo
func (s *S3Service) GenerateReadURL(key string) (string, error) {
	params := &s3.GetObjectInput{
		Bucket: aws.String(s.Bucket),
		Key:    aws.String(key),
	}
	presigner := s3.NewPresignClient(s.Client)
	presignedURL, err := presigner.PresignGetObject(context.TODO(), params, s3.WithPresignExpires(5*time.Minute))
	if err != nil {
		return "", err
	}
	return presignedURL.URL, nil
}

// UploadObject writes bytes directly to the bucket, used for generated bot avatars
func (s *S3Service) UploadObject(ctx context.Context, key, contentType string, data []byte) (string, error) {
	_, err := s.Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.Bucket),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
		Body:        bytes.NewReader(data),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload object %s: %w", key, err)
	}
	return fmt.Sprintf("https://%s.s3.amazonaws.com/%s", s.Bucket, key), nil
}

// DeleteObject removes a stored photo
func (s *S3Service) DeleteObject(ctx context.Context, key string) error {
	_, err := s.Client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.Bucket),
		Key:    aws.String(key),
	})
	return err
}
