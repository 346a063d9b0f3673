// internal/services/storage_service.go
package services

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
	"github.com/google/uuid"

	"github.com/javajoker/catalog-manager/internal/config"
	"github.com/javajoker/catalog-manager/internal/utils"
)

// StorageService archives export documents, to S3 when credentials are
// configured and to the local export directory otherwise.
type StorageService struct {
	s3Client  s3iface.S3API
	bucket    string
	prefix    string
	exportDir string
	now       func() time.Time
}

type ExportResult struct {
	URL      string `json:"url"`
	Key      string `json:"key"`
	Size     int64  `json:"size"`
	Checksum string `json:"checksum"`
}

const presignTTL = 24 * time.Hour

func NewStorageService(cfg *config.Config) (*StorageService, error) {
	s := &StorageService{
		bucket:    cfg.AWS.S3Bucket,
		prefix:    cfg.AWS.ExportPrefix,
		exportDir: cfg.Store.ExportDir,
		now:       time.Now,
	}

	if cfg.AWS.AccessKeyID == "" {
		// Local export directory only
		return s, nil
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

	s.s3Client = s3.New(sess)
	return s, nil
}

// NewStorageServiceWithClient is used with a custom or fake S3 client.
func NewStorageServiceWithClient(client s3iface.S3API, bucket, prefix string) *StorageService {
	return &StorageService{
		s3Client: client,
		bucket:   bucket,
		prefix:   prefix,
		now:      time.Now,
	}
}

func (s *StorageService) UsesS3() bool {
	return s.s3Client != nil
}

func (s *StorageService) SaveExport(ctx context.Context, data []byte) (*ExportResult, error) {
	if s.s3Client != nil {
		return s.uploadToS3(ctx, data, s.generateFileName(s.prefix))
	}
	return s.writeToLocal(data, s.generateFileName(""))
}

func (s *StorageService) uploadToS3(ctx context.Context, data []byte, key string) (*ExportResult, error) {
	_, err := s.s3Client.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket:             aws.String(s.bucket),
		Key:                aws.String(key),
		Body:               bytes.NewReader(data),
		ContentType:        aws.String("application/json"),
		ContentLength:      aws.Int64(int64(len(data))),
		ContentDisposition: aws.String(fmt.Sprintf("attachment; filename=%q", ExportFileName)),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to upload to S3: %w", err)
	}

	req, _ := s.s3Client.GetObjectRequest(&s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	url, err := req.Presign(presignTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to generate presigned URL: %w", err)
	}

	return &ExportResult{
		URL:      url,
		Key:      key,
		Size:     int64(len(data)),
		Checksum: utils.HashBytes(data),
	}, nil
}

func (s *StorageService) writeToLocal(data []byte, filename string) (*ExportResult, error) {
	if err := os.MkdirAll(s.exportDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create export directory: %w", err)
	}

	path := filepath.Join(s.exportDir, filename)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return nil, fmt.Errorf("failed to write export: %w", err)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}

	return &ExportResult{
		URL:      "file://" + filepath.ToSlash(abs),
		Key:      filename,
		Size:     int64(len(data)),
		Checksum: utils.HashBytes(data),
	}, nil
}

func (s *StorageService) generateFileName(folder string) string {
	base := strings.TrimSuffix(ExportFileName, filepath.Ext(ExportFileName))
	timestamp := s.now().UTC().Format("20060102T150405Z")
	filename := fmt.Sprintf("%s_%s_%s%s", base, timestamp, uuid.NewString()[:8], filepath.Ext(ExportFileName))

	if folder != "" {
		return fmt.Sprintf("%s/%s", strings.Trim(folder, "/"), filename)
	}
	return filename
}
