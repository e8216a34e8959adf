package s3

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/mochow/dochub"
	"github.com/hupe1980/mochow/model"
)

func TestIntegration_S3Hub(t *testing.T) {
	bucket := os.Getenv("S3_BUCKET")
	if bucket == "" {
		t.Skip("Skipping S3 integration test: S3_BUCKET not set")
	}

	ctx := context.Background()
	cfg, err := config.LoadDefaultConfig(ctx)
	require.NoError(t, err)

	client := s3.NewFromConfig(cfg)

	// Unique prefix per test run.
	prefix := fmt.Sprintf("test-mochow-%d", time.Now().UnixNano())
	staging := t.TempDir()

	hub, err := NewHub(client, dochub.Env{
		URIPrefix: "s3://" + bucket + "/" + prefix,
		LocalDir:  staging,
	})
	require.NoError(t, err)

	src := filepath.Join(t.TempDir(), "guide.md")
	require.NoError(t, os.WriteFile(src, []byte("# Guide\n\ncontent"), 0o644))

	doc := model.NewDocument("guide.md")
	doc.KBID = "kb1"
	doc.FilePath = src

	t.Run("Add and List", func(t *testing.T) {
		require.NoError(t, hub.Add(ctx, doc))
		assert.Equal(t, "s3://"+bucket+"/"+prefix+"/kb1/guide.md", doc.URI)
		assert.Equal(t, int64(16), doc.Size)

		docs, err := hub.List(ctx, "kb1")
		require.NoError(t, err)
		require.Len(t, docs, 1)
		assert.Equal(t, "guide.md", docs[0].DocName)
	})

	t.Run("Load", func(t *testing.T) {
		loaded := &model.Document{KBID: "kb1", DocName: "guide.md"}
		require.NoError(t, hub.Load(ctx, loaded))

		content, err := os.ReadFile(loaded.FilePath)
		require.NoError(t, err)
		assert.Equal(t, "# Guide\n\ncontent", string(content))
	})

	t.Run("Remove", func(t *testing.T) {
		require.NoError(t, hub.Remove(ctx, doc))

		err := hub.Load(ctx, &model.Document{KBID: "kb1", DocName: "guide.md"})
		assert.True(t, errors.Is(err, dochub.ErrNotFound))

		// Removing again is not an error.
		require.NoError(t, hub.Remove(ctx, doc))
	})
}

func TestNewHub_InvalidPrefix(t *testing.T) {
	for _, prefix := range []string{"", "local:///var/docs", "s3://"} {
		_, err := NewHub(nil, dochub.Env{URIPrefix: prefix})
		require.Error(t, err)
	}
}
