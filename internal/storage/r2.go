package storage

import (
	"bytes"
	"context"
	"fmt"
	"mime"
	"path"
	"path/filepath"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// Uploader puts a single object into a bucket
type Uploader interface {
	Upload(ctx context.Context, key string, body []byte, contentType string) error
}

// R2Config holds the Cloudflare R2 connection settings
type R2Config struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
}

// R2Client uploads objects to a Cloudflare R2 bucket through its S3 API
type R2Client struct {
	client *s3.Client
	bucket string
}

func NewR2Client(ctx context.Context, cfg R2Config) (*R2Client, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion("auto"),
		awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load R2 config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(cfg.Endpoint)
		o.UsePathStyle = true
	})

	return &R2Client{client: client, bucket: cfg.Bucket}, nil
}

func (r *R2Client) Upload(ctx context.Context, key string, body []byte, contentType string) error {
	_, err := r.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(r.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return fmt.Errorf("failed to upload %s to bucket %s: %w", key, r.bucket, err)
	}
	return nil
}

// Publish uploads every file in s under prefix and returns the object keys
func Publish(ctx context.Context, s *Storage, up Uploader, prefix string) ([]string, error) {
	files, err := s.Files(ctx)
	if err != nil {
		return nil, err
	}

	keys := make([]string, 0, len(files))
	for _, name := range files {
		data, err := s.ReadFile(ctx, name)
		if err != nil {
			return keys, err
		}

		key := path.Join(prefix, name)
		if err := up.Upload(ctx, key, data, contentType(name)); err != nil {
			return keys, err
		}
		keys = append(keys, key)
	}
	return keys, nil
}

func contentType(name string) string {
	if ct := mime.TypeByExtension(filepath.Ext(name)); ct != "" {
		return ct
	}
	return "application/octet-stream"
}
