// internal/services/storage_service.go
package services

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/google/uuid"

	"github.com/purzasetu/sparehub-backend/internal/config"
)

// StorageService stores reference photos for requests, offers and part
// listings. Photos go to S3 when credentials are configured and to local
// disk in development.
type StorageService struct {
	s3Client *s3.S3
	cfg      *config.Config
}

type UploadResult struct {
	URL      string `json:"url"`
	Key      string `json:"key"`
	Size     int64  `json:"size"`
	MimeType string `json:"mime_type"`
}

var allowedPhotoExtensions = []string{".jpg", ".jpeg", ".png", ".webp"}

func NewStorageService(cfg *config.Config) (*StorageService, error) {
	if cfg.AWS.AccessKeyID == "" {
		// Local-disk storage for development
		return &StorageService{cfg: cfg}, nil
	}

	sess, err := session.NewSession(&aws.Config{
		Region: aws.String(cfg.AWS.Region),
		Credentials: credentials.NewStaticCredentials(
			cfg.AWS.AccessKeyID,
			cfg.AWS.SecretAccessKey,
			"",
		),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS session: %w", err)
	}

	return &StorageService{
		s3Client: s3.New(sess),
		cfg:      cfg,
	}, nil
}

func (s *StorageService) UploadPhoto(file multipart.File, header *multipart.FileHeader) (*UploadResult, error) {
	maxSize := int64(s.cfg.Upload.MaxSizeMB) * 1024 * 1024
	if header.Size > maxSize {
		return nil, &ValidationError{
			Message: fmt.Sprintf("file size exceeds the %dMB limit", s.cfg.Upload.MaxSizeMB),
		}
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	allowed := false
	for _, allowedExt := range allowedPhotoExtensions {
		if ext == allowedExt {
			allowed = true
			break
		}
	}
	if !allowed {
		return nil, &ValidationError{Message: fmt.Sprintf("file type %s is not allowed", ext)}
	}

	fileBytes, err := io.ReadAll(file)
	if err != nil {
		return nil, &StoreError{Op: "read upload", Err: err}
	}

	key := s.generateKey(ext)
	contentType := header.Header.Get("Content-Type")

	if s.s3Client != nil {
		return s.uploadToS3(fileBytes, key, contentType)
	}
	return s.uploadToLocal(fileBytes, key, contentType)
}

func (s *StorageService) uploadToS3(fileBytes []byte, key, contentType string) (*UploadResult, error) {
	_, err := s.s3Client.PutObject(&s3.PutObjectInput{
		Bucket:        aws.String(s.cfg.AWS.S3Bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(fileBytes),
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(int64(len(fileBytes))),
		ACL:           aws.String("public-read"),
	})
	if err != nil {
		return nil, &StoreError{Op: "upload to s3", Err: err}
	}

	url := fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.cfg.AWS.S3Bucket, s.cfg.AWS.Region, key)
	if s.cfg.AWS.CloudFrontURL != "" {
		url = fmt.Sprintf("%s/%s", strings.TrimSuffix(s.cfg.AWS.CloudFrontURL, "/"), key)
	}

	return &UploadResult{
		URL:      url,
		Key:      key,
		Size:     int64(len(fileBytes)),
		MimeType: contentType,
	}, nil
}

func (s *StorageService) uploadToLocal(fileBytes []byte, key, contentType string) (*UploadResult, error) {
	path := filepath.Join(s.cfg.Upload.LocalDir, key)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, &StoreError{Op: "create upload dir", Err: err}
	}
	if err := os.WriteFile(path, fileBytes, 0o644); err != nil {
		return nil, &StoreError{Op: "write upload", Err: err}
	}

	return &UploadResult{
		URL:      fmt.Sprintf("%s/%s", strings.TrimSuffix(s.cfg.Upload.PublicBaseURL, "/"), key),
		Key:      key,
		Size:     int64(len(fileBytes)),
		MimeType: contentType,
	}, nil
}

func (s *StorageService) generateKey(ext string) string {
	return fmt.Sprintf("photos/%s/%s%s", time.Now().Format("2006/01"), uuid.NewString(), ext)
}
