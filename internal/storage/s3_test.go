package storage

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	miniocreds "github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tcminio "github.com/testcontainers/testcontainers-go/modules/minio"
)

func TestValidateContentType(t *testing.T) {
	tests := []struct {
		contentType string
		wantErr     bool
	}{
		{contentType: "image/png"},
		{contentType: "text/html"},
		{contentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"},
		{contentType: "application/pdf", wantErr: true},
		{contentType: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.contentType, func(t *testing.T) {
			err := ValidateContentType(tt.contentType)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestNewS3Service_RequiresBucket(t *testing.T) {
	_, err := NewS3Service(S3Config{})
	assert.Error(t, err)
}

// TestS3Service_Integration round-trips an object through a MinIO container
func TestS3Service_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	ctx := context.Background()

	container, err := tcminio.Run(ctx,
		"minio/minio:RELEASE.2024-10-29T16-01-48Z",
		tcminio.WithUsername("minioadmin"),
		tcminio.WithPassword("minioadmin"),
	)
	require.NoError(t, err)
	defer func() {
		require.NoError(t, container.Terminate(ctx))
	}()

	endpoint, err := container.ConnectionString(ctx)
	require.NoError(t, err)

	bucket := "coilsim-test-" + uuid.New().String()[:8]
	createBucket(t, ctx, endpoint, bucket)

	svc, err := NewS3Service(S3Config{
		Bucket:    bucket,
		Endpoint:  endpoint,
		AccessKey: "minioadmin",
		SecretKey: "minioadmin",
	})
	require.NoError(t, err)

	key := "simulations/test/figure.png"
	payload := []byte("\x89PNG\r\n\x1a\nnot really a png")

	require.NoError(t, svc.UploadFile(ctx, key, "image/png", payload))

	got, err := svc.DownloadFile(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, payload, got)

	url, err := svc.GenerateDownloadURL(ctx, key)
	require.NoError(t, err)
	assert.Contains(t, url, bucket)
	assert.Contains(t, url, "X-Amz-Expires=86400")

	require.NoError(t, svc.DeleteFile(ctx, key))
	_, err = svc.DownloadFile(ctx, key)
	assert.Error(t, err)

	assert.Error(t, svc.UploadFile(ctx, "bad", "application/pdf", payload))
}

func createBucket(t *testing.T, ctx context.Context, endpoint, bucket string) {
	t.Helper()

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  miniocreds.NewStaticV4("minioadmin", "minioadmin", ""),
		Secure: false,
	})
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	require.NoError(t, client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}))
}
