package minio

import (
	"context"
	"fmt"
	"path"
	"path/filepath"
	"strings"

	"github.com/minio/minio-go/v7"

	"github.com/hupe1980/mochow/dochub"
	"github.com/hupe1980/mochow/model"
)

// Hub implements dochub.Hub for MinIO and S3-compatible storage. The
// URI prefix must use the "minio" scheme, e.g. "minio://bucket/prefix".
type Hub struct {
	env    dochub.Env
	client *minio.Client
	bucket string
	prefix string
}

// NewHub creates a MinIO-backed hub.
func NewHub(client *minio.Client, env dochub.Env) (*Hub, error) {
	scheme, rest, ok := strings.Cut(env.URIPrefix, "://")
	if !ok || scheme != "minio" {
		return nil, fmt.Errorf("dochub: invalid minio uri prefix %q", env.URIPrefix)
	}
	bucket, prefix, _ := strings.Cut(rest, "/")
	if bucket == "" {
		return nil, fmt.Errorf("dochub: missing bucket in uri prefix %q", env.URIPrefix)
	}
	return &Hub{env: env, client: client, bucket: bucket, prefix: prefix}, nil
}

func (h *Hub) key(doc *model.Document) string {
	return path.Join(h.prefix, doc.KBID, doc.DocName)
}

// Add uploads the file at doc.FilePath.
func (h *Hub) Add(ctx context.Context, doc *model.Document) error {
	key := h.key(doc)
	info, err := h.client.FPutObject(ctx, h.bucket, key, doc.FilePath, minio.PutObjectOptions{})
	if err != nil {
		return err
	}
	doc.URI = "minio://" + h.bucket + "/" + key
	doc.Size = info.Size

	stat, err := h.client.StatObject(ctx, h.bucket, key, minio.StatObjectOptions{})
	if err != nil {
		return err
	}
	doc.CTime = stat.LastModified.Unix()
	return nil
}

// Remove deletes the stored document. A missing key is not an error.
func (h *Hub) Remove(ctx context.Context, doc *model.Document) error {
	err := h.client.RemoveObject(ctx, h.bucket, h.key(doc), minio.RemoveObjectOptions{})
	if err != nil {
		errResp := minio.ToErrorResponse(err)
		if errResp.Code == "NoSuchKey" || errResp.Code == "NotFound" {
			return nil
		}
		return err
	}
	return nil
}

// List returns the documents of one knowledge base.
func (h *Hub) List(ctx context.Context, kbID string) ([]*model.Document, error) {
	fullPrefix := path.Join(h.prefix, kbID) + "/"

	var docs []*model.Document
	for obj := range h.client.ListObjects(ctx, h.bucket, minio.ListObjectsOptions{
		Prefix:    fullPrefix,
		Recursive: true,
	}) {
		if obj.Err != nil {
			return nil, obj.Err
		}
		docs = append(docs, &model.Document{
			KBID:    kbID,
			DocName: path.Base(obj.Key),
			URI:     "minio://" + h.bucket + "/" + obj.Key,
			Size:    obj.Size,
			CTime:   obj.LastModified.Unix(),
		})
	}
	return docs, nil
}

// Load downloads the stored document into the local directory.
func (h *Hub) Load(ctx context.Context, doc *model.Document) error {
	dst := filepath.Join(h.env.LocalDir, doc.DocName)
	err := h.client.FGetObject(ctx, h.bucket, h.key(doc), dst, minio.GetObjectOptions{})
	if err != nil {
		errResp := minio.ToErrorResponse(err)
		if errResp.Code == "NoSuchKey" || errResp.Code == "NotFound" {
			return dochub.ErrNotFound
		}
		return err
	}
	doc.FilePath = dst
	return nil
}
