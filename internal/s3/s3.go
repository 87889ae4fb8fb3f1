// Package s3 publishes rendered extraction reports to an S3-compatible
// bucket (AWS S3 or MinIO).
package s3

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

type S3Config struct {
	EndpointURL string
	Region      string
	AccessKey   string
	SecretKey   string
	Bucket      string
}

type FileStore struct {
	Client   *s3.Client
	bucket   string
	region   string
	endpoint string
}

func NewFileStore(ctx context.Context, conf S3Config) (*FileStore, error) {

	if conf.Bucket == "" {
		return nil, fmt.Errorf("s3 bucket name is required")
	}

	creds := credentials.NewStaticCredentialsProvider(conf.AccessKey, conf.SecretKey, "")

	cfg, err := config.LoadDefaultConfig(ctx,
		config.WithRegion(conf.Region),
		config.WithCredentialsProvider(creds),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load s3 config: %w", err)
	}

	if conf.EndpointURL != "" {
		cfg.BaseEndpoint = aws.String(conf.EndpointURL)
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.UsePathStyle = true
	})

	return &FileStore{
		Client:   client,
		bucket:   conf.Bucket,
		region:   conf.Region,
		endpoint: strings.TrimSuffix(conf.EndpointURL, "/"),
	}, nil
}

func (fs *FileStore) Bucket() string {
	return fs.bucket
}

// Upload stores a report under key and returns where it can be fetched
// from. The object is served as an attachment named after the key's base.
func (fs *FileStore) Upload(ctx context.Context, file io.Reader, key, contentType string) (string, error) {

	_, err := fs.Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:             aws.String(fs.bucket),
		Key:                aws.String(key),
		Body:               file,
		ContentType:        aws.String(contentType),
		ContentDisposition: aws.String(fmt.Sprintf("attachment; filename=%q", path.Base(key))),
	})

	if err != nil {
		return "", fmt.Errorf("failed to upload export %s: %w", key, err)
	}

	return fs.location(key), nil
}

func (fs *FileStore) Download(ctx context.Context, key string) ([]byte, error) {

	result, err := fs.Client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(fs.bucket),
		Key:    aws.String(key),
	})

	if err != nil {
		return nil, fmt.Errorf("failed to download export %s: %w", key, err)
	}
	defer result.Body.Close()

	body, err := io.ReadAll(result.Body)

	if err != nil {
		return nil, fmt.Errorf("failed to read export body: %w", err)
	}

	return body, nil
}

func (fs *FileStore) location(key string) string {
	escaped := (&url.URL{Path: key}).EscapedPath()
	if fs.endpoint != "" {
		return fmt.Sprintf("%s/%s/%s", fs.endpoint, fs.bucket, escaped)
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", fs.bucket, fs.region, escaped)
}
