package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log"
	"path"
	"strings"
	"unicode"

	"resume-coach/internal/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

var ErrDisabled = errors.New("object storage not configured")

// ObjectStore keeps raw uploaded files.
type ObjectStore interface {
	Put(ctx context.Context, key, contentType string, data []byte) error
}

type S3Store struct {
	client *s3.Client
	bucket string
	logger *log.Logger
}

// NewS3Store connects to an S3-compatible bucket. A custom endpoint (R2,
// MinIO) uses path-style addressing.
func NewS3Store(ctx context.Context, cfg config.StorageConfig, logger *log.Logger) (*S3Store, error) {
	if !cfg.Enabled() {
		return nil, ErrDisabled
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, "")),
		awsconfig.WithRegion(cfg.Region),
	)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	return &S3Store{client: client, bucket: cfg.Bucket, logger: logger}, nil
}

func (s *S3Store) Put(ctx context.Context, key, contentType string, data []byte) error {
	if s == nil || s.client == nil {
		return ErrDisabled
	}
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(int64(len(data))),
	})
	if err != nil {
		return fmt.Errorf("put object %s: %w", key, err)
	}
	if s.logger != nil {
		s.logger.Printf("[Storage] Stored object bucket=%s key=%s bytes=%d", s.bucket, key, len(data))
	}
	return nil
}

// ResumeKey builds the object key for an uploaded resume.
func ResumeKey(analysisID, fileName string) string {
	return path.Join("resumes", analysisID, SanitizeFileName(fileName))
}

// SanitizeFileName keeps letters, digits, '.', '-' and '_' of the base name.
func SanitizeFileName(name string) string {
	name = path.Base(strings.ReplaceAll(strings.TrimSpace(name), "\\", "/"))
	var b strings.Builder
	for _, r := range name {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r) || r == '.' || r == '-' || r == '_':
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteByte('_')
		}
	}
	out := strings.Trim(b.String(), ".")
	if out == "" {
		return "resume"
	}
	return out
}

var _ ObjectStore = (*S3Store)(nil)
