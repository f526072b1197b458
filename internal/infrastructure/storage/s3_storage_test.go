package storage

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/mfgerp/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestNewS3DocumentArchive_Validation(t *testing.T) {
	t.Run("nil config returns error", func(t *testing.T) {
		_, err := NewS3DocumentArchive(nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "configuration is required")
	})

	t.Run("missing bucket returns error", func(t *testing.T) {
		_, err := NewS3DocumentArchive(&config.ArchiveConfig{AccessKey: "key", SecretKey: "secret"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "bucket is required")
	})

	t.Run("missing credentials return error", func(t *testing.T) {
		_, err := NewS3DocumentArchive(&config.ArchiveConfig{Bucket: "reports", AccessKey: "key"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "credentials are required")
	})

	t.Run("valid config applies default expiration", func(t *testing.T) {
		archive, err := NewS3DocumentArchive(&config.ArchiveConfig{
			Bucket:    "reports",
			AccessKey: "key",
			SecretKey: "secret",
			Endpoint:  "localhost:9000",
		}, WithLogger(zaptest.NewLogger(t)))
		require.NoError(t, err)
		assert.Equal(t, "reports", archive.Bucket())
		assert.Equal(t, 15*time.Minute, archive.presignExpiration)
	})
}

// fakeS3 records requests against a path-style bucket endpoint
type fakeS3 struct {
	mu            sync.Mutex
	bucketExists  bool
	objects       map[string][]byte
	contentTypes  map[string]string
	createdBucket bool
}

func newFakeS3(t *testing.T, bucketExists bool) (*fakeS3, *httptest.Server) {
	t.Helper()
	f := &fakeS3{
		bucketExists: bucketExists,
		objects:      map[string][]byte{},
		contentTypes: map[string]string{},
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()

		switch {
		case r.Method == http.MethodHead && r.URL.Path == "/reports":
			if !f.bucketExists {
				w.WriteHeader(http.StatusNotFound)
				return
			}
			w.WriteHeader(http.StatusOK)
		case r.Method == http.MethodPut && r.URL.Path == "/reports":
			f.bucketExists = true
			f.createdBucket = true
			w.WriteHeader(http.StatusOK)
		case r.Method == http.MethodPut:
			body, _ := io.ReadAll(r.Body)
			f.objects[r.URL.Path] = body
			f.contentTypes[r.URL.Path] = r.Header.Get("Content-Type")
			w.Header().Set("ETag", `"etag"`)
			w.WriteHeader(http.StatusOK)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	}))
	t.Cleanup(srv.Close)
	return f, srv
}

func newTestArchive(t *testing.T, endpoint string) *S3DocumentArchive {
	t.Helper()
	archive, err := NewS3DocumentArchive(&config.ArchiveConfig{
		Endpoint:     endpoint,
		Bucket:       "reports",
		AccessKey:    "minio",
		SecretKey:    "minio-secret",
		UsePathStyle: true,
	})
	require.NoError(t, err)
	return archive
}

func TestS3DocumentArchive_EnsureBucket(t *testing.T) {
	t.Run("creates missing bucket", func(t *testing.T) {
		fake, srv := newFakeS3(t, false)
		archive := newTestArchive(t, srv.URL)

		require.NoError(t, archive.EnsureBucket(context.Background()))
		assert.True(t, fake.createdBucket)
	})

	t.Run("leaves existing bucket alone", func(t *testing.T) {
		fake, srv := newFakeS3(t, true)
		archive := newTestArchive(t, srv.URL)

		require.NoError(t, archive.EnsureBucket(context.Background()))
		assert.False(t, fake.createdBucket)
	})
}

func TestS3DocumentArchive_Store(t *testing.T) {
	fake, srv := newFakeS3(t, true)
	archive := newTestArchive(t, srv.URL)
	data := []byte("%PDF-1.4 balance sheet")

	err := archive.Store(context.Background(), "balance-sheets/tenant/sheet.pdf", data, "application/pdf")
	require.NoError(t, err)

	fake.mu.Lock()
	defer fake.mu.Unlock()
	stored, ok := fake.objects["/reports/balance-sheets/tenant/sheet.pdf"]
	require.True(t, ok, "object should be uploaded under bucket/key")
	assert.Contains(t, string(stored), "%PDF-1.4 balance sheet")
	assert.Equal(t, "application/pdf", fake.contentTypes["/reports/balance-sheets/tenant/sheet.pdf"])
}

func TestS3DocumentArchive_StoreRequiresKey(t *testing.T) {
	archive := newTestArchive(t, "http://localhost:9000")

	err := archive.Store(context.Background(), "", []byte("x"), "application/pdf")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "key is required")
}

func TestS3DocumentArchive_DownloadURL(t *testing.T) {
	archive := newTestArchive(t, "http://localhost:9000")

	before := time.Now()
	link, expiresAt, err := archive.DownloadURL(context.Background(), "balance-sheets/tenant/sheet.pdf", 0)
	require.NoError(t, err)

	assert.Contains(t, link, "http://localhost:9000/reports/balance-sheets/tenant/sheet.pdf")
	assert.Contains(t, link, "X-Amz-Signature=")
	assert.Contains(t, link, "X-Amz-Expires=900")
	assert.WithinDuration(t, before.Add(15*time.Minute), expiresAt, 5*time.Second)

	_, _, err = archive.DownloadURL(context.Background(), "", time.Minute)
	assert.Error(t, err)
}
