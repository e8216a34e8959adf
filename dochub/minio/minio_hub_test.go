package minio

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/mochow/dochub"
	"github.com/hupe1980/mochow/model"
)

// TestIntegration_MinioHub requires a running MinIO instance.
// Skip if not available.
func TestIntegration_MinioHub(t *testing.T) {
	endpoint := "localhost:9000"
	accessKey := "minioadmin"
	secretKey := "minioadmin"
	bucket := "test-mochow"

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: false,
	})
	if err != nil {
		t.Skipf("MinIO client creation failed: %v", err)
	}

	ctx := context.Background()

	// Check if MinIO is reachable
	if _, err := client.ListBuckets(ctx); err != nil {
		t.Skipf("MinIO not available: %v", err)
	}

	exists, err := client.BucketExists(ctx, bucket)
	require.NoError(t, err)
	if !exists {
		require.NoError(t, client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}))
	}

	prefix := fmt.Sprintf("test-prefix-%d", time.Now().UnixNano())
	staging := t.TempDir()

	hub, err := NewHub(client, dochub.Env{
		URIPrefix: "minio://" + bucket + "/" + prefix,
		LocalDir:  staging,
	})
	require.NoError(t, err)

	src := filepath.Join(t.TempDir(), "notes.txt")
	require.NoError(t, os.WriteFile(src, []byte("minio notes"), 0o644))

	doc := model.NewDocument("notes.txt")
	doc.KBID = "kb1"
	doc.FilePath = src

	t.Run("Add and List", func(t *testing.T) {
		require.NoError(t, hub.Add(ctx, doc))
		assert.Equal(t, int64(11), doc.Size)

		docs, err := hub.List(ctx, "kb1")
		require.NoError(t, err)
		require.Len(t, docs, 1)
		assert.Equal(t, "notes.txt", docs[0].DocName)
	})

	t.Run("Load", func(t *testing.T) {
		loaded := &model.Document{KBID: "kb1", DocName: "notes.txt"}
		require.NoError(t, hub.Load(ctx, loaded))

		content, err := os.ReadFile(loaded.FilePath)
		require.NoError(t, err)
		assert.Equal(t, "minio notes", string(content))
	})

	t.Run("Remove", func(t *testing.T) {
		require.NoError(t, hub.Remove(ctx, doc))

		err := hub.Load(ctx, &model.Document{KBID: "kb1", DocName: "notes.txt"})
		assert.True(t, errors.Is(err, dochub.ErrNotFound))
	})
}

func TestNewHub_InvalidPrefix(t *testing.T) {
	for _, prefix := range []string{"", "s3://bucket/kb", "minio://"} {
		_, err := NewHub(nil, dochub.Env{URIPrefix: prefix})
		require.Error(t, err)
	}
}
