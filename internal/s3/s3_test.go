package s3_test

import (
	"context"
	"os"
	"strings"
	"testing"

	"jobspec-miner/internal/s3"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setUpS3(t *testing.T, bucket string) *s3.FileStore {
	t.Helper()

	endpoint := os.Getenv("MINIO_ENDPOINT")
	accessKey := os.Getenv("MINIO_ACCESS_KEY")
	secretKey := os.Getenv("MINIO_SECRET_KEY")

	if endpoint == "" || accessKey == "" || secretKey == "" {
		t.Skip("MinIO configuration not set (MINIO_ENDPOINT, MINIO_ACCESS_KEY, MINIO_SECRET_KEY), skipping integration test")
	}

	if bucket == "" {
		bucket = os.Getenv("MINIO_BUCKET")
	}
	if bucket == "" {
		bucket = "job-extractions"
	}

	s3Store, err := s3.NewFileStore(context.Background(), s3.S3Config{
		EndpointURL: endpoint,
		Region:      "us-east-1",
		AccessKey:   accessKey,
		SecretKey:   secretKey,
		Bucket:      bucket,
	})
	require.NoError(t, err)

	return s3Store
}

func TestNewFileStoreRequiresBucket(t *testing.T) {
	_, err := s3.NewFileStore(context.Background(), s3.S3Config{Region: "us-east-1"})
	assert.Error(t, err)
}

func TestUploadAndDownloadReport(t *testing.T) {
	s3Store := setUpS3(t, "")
	ctx := context.Background()

	testCases := []struct {
		name        string
		fileName    string
		content     string
		contentType string
	}{
		{
			name:        "text report",
			fileName:    "job_extraction_20250304_050607.txt",
			content:     strings.Repeat("=", 80) + "\nJOB INFORMATION EXTRACTION\n",
			contentType: "text/plain; charset=utf-8",
		},
		{
			name:        "json report",
			fileName:    "job_extraction_20250304_050607.json",
			content:     "{\n  \"skills\": []\n}",
			contentType: "application/json",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			key := uuid.NewString() + "/" + tc.fileName

			location, err := s3Store.Upload(ctx, strings.NewReader(tc.content), key, tc.contentType)
			require.NoError(t, err)
			assert.True(t, strings.HasSuffix(location, "/"+s3Store.Bucket()+"/"+key), location)

			body, err := s3Store.Download(ctx, key)
			require.NoError(t, err)
			assert.Equal(t, tc.content, string(body))
		})
	}
}

func TestUploadInvalidBucket(t *testing.T) {
	s3Store := setUpS3(t, "non-existent-bucket-"+uuid.NewString())

	_, err := s3Store.Upload(context.Background(), strings.NewReader("report"), "report.txt", "text/plain")
	assert.Error(t, err)
}
