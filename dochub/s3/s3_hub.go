package s3

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/hupe1980/mochow/dochub"
	"github.com/hupe1980/mochow/model"
)

// Hub implements dochub.Hub for S3. The URI prefix must use the "s3"
// scheme, e.g. "s3://my-bucket/knowledge".
type Hub struct {
	env        dochub.Env
	client     *s3.Client
	uploader   *manager.Uploader
	downloader *manager.Downloader
	bucket     string
	prefix     string
}

// NewHub creates an S3-backed hub.
func NewHub(client *s3.Client, env dochub.Env) (*Hub, error) {
	scheme, rest, ok := splitURI(env.URIPrefix)
	if !ok || scheme != "s3" {
		return nil, fmt.Errorf("dochub: invalid s3 uri prefix %q", env.URIPrefix)
	}
	bucket, prefix, _ := strings.Cut(rest, "/")
	if bucket == "" {
		return nil, fmt.Errorf("dochub: missing bucket in uri prefix %q", env.URIPrefix)
	}
	return &Hub{
		env:        env,
		client:     client,
		uploader:   manager.NewUploader(client),
		downloader: manager.NewDownloader(client),
		bucket:     bucket,
		prefix:     prefix,
	}, nil
}

func (h *Hub) key(doc *model.Document) string {
	return path.Join(h.prefix, doc.KBID, doc.DocName)
}

// Add uploads the file at doc.FilePath.
func (h *Hub) Add(ctx context.Context, doc *model.Document) error {
	f, err := os.Open(doc.FilePath)
	if err != nil {
		return err
	}
	defer f.Close()

	key := h.key(doc)
	if _, err := h.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket: aws.String(h.bucket),
		Key:    aws.String(key),
		Body:   f,
	}); err != nil {
		return err
	}

	head, err := h.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(h.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return err
	}
	doc.URI = "s3://" + h.bucket + "/" + key
	doc.Size = aws.ToInt64(head.ContentLength)
	if head.LastModified != nil {
		doc.CTime = head.LastModified.Unix()
	}
	return nil
}

// Remove deletes the stored document. A missing key is not an error.
func (h *Hub) Remove(ctx context.Context, doc *model.Document) error {
	_, err := h.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(h.bucket),
		Key:    aws.String(h.key(doc)),
	})
	var nsk *types.NoSuchKey
	if errors.As(err, &nsk) {
		return nil
	}
	return err
}

// List returns the documents of one knowledge base.
func (h *Hub) List(ctx context.Context, kbID string) ([]*model.Document, error) {
	fullPrefix := path.Join(h.prefix, kbID) + "/"

	var docs []*model.Document
	paginator := s3.NewListObjectsV2Paginator(h.client, &s3.ListObjectsV2Input{
		Bucket: aws.String(h.bucket),
		Prefix: aws.String(fullPrefix),
	})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		for _, obj := range page.Contents {
			key := aws.ToString(obj.Key)
			doc := &model.Document{
				KBID:    kbID,
				DocName: path.Base(key),
				URI:     "s3://" + h.bucket + "/" + key,
				Size:    aws.ToInt64(obj.Size),
			}
			if obj.LastModified != nil {
				doc.CTime = obj.LastModified.Unix()
			}
			docs = append(docs, doc)
		}
	}
	return docs, nil
}

// Load downloads the stored document into the local directory.
func (h *Hub) Load(ctx context.Context, doc *model.Document) error {
	dst := filepath.Join(h.env.LocalDir, doc.DocName)
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}
	f, err := os.Create(dst)
	if err != nil {
		return err
	}

	_, err = h.downloader.Download(ctx, f, &s3.GetObjectInput{
		Bucket: aws.String(h.bucket),
		Key:    aws.String(h.key(doc)),
	})
	if err != nil {
		f.Close()
		var nsk *types.NoSuchKey
		if errors.As(err, &nsk) {
			return dochub.ErrNotFound
		}
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	doc.FilePath = dst
	return nil
}

func splitURI(uri string) (scheme, rest string, ok bool) {
	scheme, rest, ok = strings.Cut(uri, "://")
	if !ok || scheme == "" {
		return "", "", false
	}
	return scheme, rest, true
}
