package storage

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/shenikar/traffic_advisory_system/internal/config"
)

// objectPutter - часть s3.Client, используемая хранилищем
type objectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3PhotoStorage хранит фотографии инцидентов в S3-совместимом бакете
type S3PhotoStorage struct {
	client    objectPutter
	bucket    string
	publicURL string
}

// NewS3PhotoStorage создает клиент S3; path-style нужен для MinIO и локальных эндпоинтов
func NewS3PhotoStorage(ctx context.Context, cfg *config.Config) (*S3PhotoStorage, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.S3Region),
	}
	if cfg.S3Endpoint != "" {
		opts = append(opts, awsconfig.WithBaseEndpoint(cfg.S3Endpoint))
	}
	if cfg.S3AccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.S3AccessKey, cfg.S3SecretKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = true
	})

	return &S3PhotoStorage{
		client:    client,
		bucket:    cfg.S3Bucket,
		publicURL: publicBaseURL(cfg),
	}, nil
}

func (s *S3PhotoStorage) Put(ctx context.Context, key, contentType string, body io.ReadSeeker) (string, error) {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload file to S3: %w", err)
	}
	return s.objectURL(key), nil
}

func (s *S3PhotoStorage) objectURL(key string) string {
	return fmt.Sprintf("%s/%s/%s", s.publicURL, s.bucket, (&url.URL{Path: key}).EscapedPath())
}

// publicBaseURL выбирает адрес, по которому клиенты будут открывать фотографии
func publicBaseURL(cfg *config.Config) string {
	switch {
	case cfg.S3PublicEndpoint != "":
		return strings.TrimSuffix(cfg.S3PublicEndpoint, "/")
	case cfg.S3Endpoint != "":
		return strings.TrimSuffix(cfg.S3Endpoint, "/")
	default:
		return fmt.Sprintf("https://s3.%s.amazonaws.com", cfg.S3Region)
	}
}
