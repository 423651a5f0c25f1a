// Package objectstore stores shift exports in an S3-compatible bucket
// (AWS S3 or MinIO).
package objectstore

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/example/dispatchboard/internal/ports/secondary"
)

// Config holds construction parameters.
type Config struct {
	Bucket          string
	Prefix          string
	Region          string
	Endpoint        string // optional; custom endpoint such as MinIO
	UsePathStyle    bool
	AccessKeyID     string // optional; falls back to the default credentials chain
	SecretAccessKey string
	SessionToken    string
}

// ExportSink implements secondary.ExportSink with a single bucket.
type ExportSink struct {
	client *s3.Client
	bucket string
	prefix string
}

// NewExportSink creates a sink from cfg.
func NewExportSink(ctx context.Context, cfg Config) (*ExportSink, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("s3 bucket required")
	}
	region := cfg.Region
	if region == "" {
		region = "us-east-1"
	}

	loadOpts := []func(*config.LoadOptions) error{config.WithRegion(region)}
	if cfg.AccessKeyID != "" {
		loadOpts = append(loadOpts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, cfg.SessionToken),
		))
	}
	awsCfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = cfg.UsePathStyle
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
	})
	return &ExportSink{client: client, bucket: cfg.Bucket, prefix: strings.Trim(cfg.Prefix, "/")}, nil
}

// Key returns the object key used for a file name.
func (s *ExportSink) Key(name string) string {
	name = path.Base("/" + strings.TrimSpace(name))
	if s.prefix == "" {
		return name
	}
	return s.prefix + "/" + name
}

// Put uploads the file and returns its s3:// location.
func (s *ExportSink) Put(ctx context.Context, file *secondary.ExportFile) (string, error) {
	if strings.TrimSpace(file.Name) == "" {
		return "", fmt.Errorf("export file name is empty")
	}
	key := s.Key(file.Name)
	input := &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
		Body:   bytes.NewReader(file.Data),
	}
	if file.ContentType != "" {
		input.ContentType = aws.String(file.ContentType)
	}
	if _, err := s.client.PutObject(ctx, input); err != nil {
		return "", fmt.Errorf("failed to upload export %s: %w", key, err)
	}
	return fmt.Sprintf("s3://%s/%s", s.bucket, key), nil
}

var _ secondary.ExportSink = (*ExportSink)(nil)
