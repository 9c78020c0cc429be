package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// DownloadURLExpiry is how long pre-signed artifact URLs stay valid
const DownloadURLExpiry = 24 * time.Hour

// artifactContentTypes are the only types UploadFile accepts
var artifactContentTypes = map[string]bool{
	"image/png": true,
	"text/html": true,
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet": true,
}

// S3Service stores rendered simulation artifacts
type S3Service interface {
	UploadFile(ctx context.Context, key string, contentType string, data []byte) error
	GenerateDownloadURL(ctx context.Context, key string) (string, error)
	DownloadFile(ctx context.Context, key string) ([]byte, error)
	DeleteFile(ctx context.Context, key string) error
}

// S3Config holds configuration for S3 service
type S3Config struct {
	Bucket    string
	Endpoint  string
	Region    string
	AccessKey string
	SecretKey string
}

type artifactStore struct {
	client  *s3.Client
	presign *s3.PresignClient
	bucket  string
}

// NewS3Service connects to AWS S3, or to MinIO when an endpoint is set
func NewS3Service(cfg S3Config) (S3Service, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("S3_BUCKET is required")
	}

	client, err := newClient(context.Background(), cfg)
	if err != nil {
		return nil, err
	}

	return &artifactStore{
		client:  client,
		presign: s3.NewPresignClient(client),
		bucket:  cfg.Bucket,
	}, nil
}

func newClient(ctx context.Context, cfg S3Config) (*s3.Client, error) {
	region := cfg.Region
	if cfg.Endpoint != "" || region == "" {
		region = "us-east-1" // MinIO doesn't care about region
	}

	loadOpts := []func(*config.LoadOptions) error{config.WithRegion(region)}
	if cfg.AccessKey != "" && cfg.SecretKey != "" {
		loadOpts = append(loadOpts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}

	awsCfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	if cfg.Endpoint == "" {
		return s3.NewFromConfig(awsCfg), nil
	}

	endpoint := cfg.Endpoint
	if !strings.HasPrefix(endpoint, "http://") && !strings.HasPrefix(endpoint, "https://") {
		endpoint = "http://" + endpoint
	}
	return s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(endpoint)
		o.UsePathStyle = true
	}), nil
}

// UploadFile writes an artifact under key
func (s *artifactStore) UploadFile(ctx context.Context, key string, contentType string, data []byte) error {
	if err := ValidateContentType(contentType); err != nil {
		return err
	}

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(int64(len(data))),
	})
	if err != nil {
		return fmt.Errorf("failed to upload %s: %w", key, err)
	}
	return nil
}

// GenerateDownloadURL pre-signs a GET for key
func (s *artifactStore) GenerateDownloadURL(ctx context.Context, key string) (string, error) {
	request, err := s.presign.PresignGetObject(ctx, s.object(key), s3.WithPresignExpires(DownloadURLExpiry))
	if err != nil {
		return "", fmt.Errorf("failed to generate download URL for %s: %w", key, err)
	}
	return request.URL, nil
}

// DownloadFile reads an artifact back in full
func (s *artifactStore) DownloadFile(ctx context.Context, key string) ([]byte, error) {
	result, err := s.client.GetObject(ctx, s.object(key))
	if err != nil {
		return nil, fmt.Errorf("failed to download %s: %w", key, err)
	}
	defer result.Body.Close()

	data, err := io.ReadAll(result.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", key, err)
	}
	return data, nil
}

// DeleteFile removes an artifact
func (s *artifactStore) DeleteFile(ctx context.Context, key string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("failed to delete %s: %w", key, err)
	}
	return nil
}

func (s *artifactStore) object(key string) *s3.GetObjectInput {
	return &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}
}

// ValidateContentType rejects anything that is not a rendered artifact type
func ValidateContentType(contentType string) error {
	if artifactContentTypes[contentType] {
		return nil
	}

	supported := make([]string, 0, len(artifactContentTypes))
	for ct := range artifactContentTypes {
		supported = append(supported, ct)
	}
	sort.Strings(supported)
	return fmt.Errorf("invalid content type %q, supported: %s", contentType, strings.Join(supported, ", "))
}
