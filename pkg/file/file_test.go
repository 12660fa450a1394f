package file_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/listora/identity/pkg/file"
)

func TestIsImageMIMEType(t *testing.T) {
	t.Parallel()

	assert.True(t, file.IsImageMIMEType("image/png"))
	assert.True(t, file.IsImageMIMEType("image/jpeg; charset=binary"))
	assert.True(t, file.IsImageMIMEType(" IMAGE/WEBP "))
	assert.False(t, file.IsImageMIMEType("application/pdf"))
	assert.False(t, file.IsImageMIMEType("text/html"))
	assert.False(t, file.IsImageMIMEType(""))
}

func TestExtensionForMIME(t *testing.T) {
	t.Parallel()

	assert.Equal(t, ".jpg", file.ExtensionForMIME("image/jpeg"))
	assert.Equal(t, ".png", file.ExtensionForMIME("image/png"))
	assert.Equal(t, ".bin", file.ExtensionForMIME("application/octet-stream"))
}

func TestLocalStorage(t *testing.T) {
	t.Parallel()

	t.Run("writes blob and returns url", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		store, err := file.NewLocalStorage(dir, "http://localhost:8080/static/")
		require.NoError(t, err)

		url, err := store.Upload(context.Background(), "avatars/u1.png", "image/png", []byte{1, 2, 3})
		require.NoError(t, err)
		assert.Equal(t, "http://localhost:8080/static/avatars/u1.png", url)

		data, err := os.ReadFile(filepath.Join(dir, "avatars", "u1.png"))
		require.NoError(t, err)
		assert.Equal(t, []byte{1, 2, 3}, data)
	})

	t.Run("rejects empty blob", func(t *testing.T) {
		t.Parallel()

		store, err := file.NewLocalStorage(t.TempDir(), "http://x")
		require.NoError(t, err)

		_, err = store.Upload(context.Background(), "a.png", "image/png", nil)
		assert.ErrorIs(t, err, file.ErrEmptyBlob)
	})

	t.Run("rejects traversal keys", func(t *testing.T) {
		t.Parallel()

		store, err := file.NewLocalStorage(t.TempDir(), "http://x")
		require.NoError(t, err)

		_, err = store.Upload(context.Background(), "../../etc/passwd", "text/plain", []byte("x"))
		assert.ErrorIs(t, err, file.ErrUploadFailed)
	})

	t.Run("requires directory", func(t *testing.T) {
		t.Parallel()

		_, err := file.NewLocalStorage("", "http://x")
		assert.ErrorIs(t, err, file.ErrInvalidConfig)
	})
}

type fakeS3Client struct {
	lastInput *s3.PutObjectInput
	err       error
}

func (f *fakeS3Client) PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.lastInput = params
	if f.err != nil {
		return nil, f.err
	}
	return &s3.PutObjectOutput{}, nil
}

func TestS3Storage(t *testing.T) {
	t.Parallel()

	t.Run("uploads and builds public url", func(t *testing.T) {
		t.Parallel()

		client := &fakeS3Client{}
		store, err := file.NewS3Storage(context.Background(), file.S3Config{
			Bucket:  "media",
			Region:  "us-east-1",
			BaseURL: "https://cdn.example.com",
		}, file.WithS3Client(client))
		require.NoError(t, err)

		url, err := store.Upload(context.Background(), "/avatars/u1.png", "image/png", []byte{1})
		require.NoError(t, err)
		assert.Equal(t, "https://cdn.example.com/avatars/u1.png", url)
		require.NotNil(t, client.lastInput)
		assert.Equal(t, "media", *client.lastInput.Bucket)
		assert.Equal(t, "avatars/u1.png", *client.lastInput.Key)
		assert.Equal(t, "image/png", *client.lastInput.ContentType)
	})

	t.Run("defaults base url to bucket endpoint", func(t *testing.T) {
		t.Parallel()

		store, err := file.NewS3Storage(context.Background(), file.S3Config{
			Bucket: "media",
			Region: "eu-west-1",
		}, file.WithS3Client(&fakeS3Client{}))
		require.NoError(t, err)

		url, err := store.Upload(context.Background(), "a.png", "image/png", []byte{1})
		require.NoError(t, err)
		assert.Equal(t, "https://media.s3.eu-west-1.amazonaws.com/a.png", url)
	})

	t.Run("requires bucket", func(t *testing.T) {
		t.Parallel()

		_, err := file.NewS3Storage(context.Background(), file.S3Config{Region: "us-east-1"})
		assert.ErrorIs(t, err, file.ErrInvalidConfig)
	})
}
