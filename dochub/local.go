package dochub

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/hupe1980/mochow/model"
)

// LocalHub implements Hub on the local file system. The URI prefix must
// use the "local" scheme, e.g. "local:///var/docs".
type LocalHub struct {
	env  Env
	root string
}

// NewLocalHub creates a hub rooted at the directory of env.URIPrefix.
// The root is created when missing.
func NewLocalHub(env Env) (*LocalHub, error) {
	scheme, root, ok := splitURI(env.URIPrefix)
	if !ok || scheme != "local" {
		return nil, fmt.Errorf("dochub: invalid local uri prefix %q", env.URIPrefix)
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, err
	}
	return &LocalHub{env: env, root: root}, nil
}

func (h *LocalHub) path(doc *model.Document) string {
	return filepath.Join(h.root, doc.KBID, doc.DocName)
}

// Add copies the file at doc.FilePath into the hub.
func (h *LocalHub) Add(ctx context.Context, doc *model.Document) error {
	dst := h.path(doc)
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}
	size, err := copyFile(dst, doc.FilePath)
	if err != nil {
		return err
	}

	info, err := os.Stat(dst)
	if err != nil {
		return err
	}
	doc.URI = "local://" + filepath.ToSlash(dst)
	doc.Size = size
	doc.CTime = info.ModTime().Unix()
	return nil
}

// Remove deletes the stored document.
func (h *LocalHub) Remove(ctx context.Context, doc *model.Document) error {
	err := os.Remove(h.path(doc))
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

// List returns the documents of one knowledge base.
func (h *LocalHub) List(ctx context.Context, kbID string) ([]*model.Document, error) {
	dir := filepath.Join(h.root, kbID)
	entries, err := os.ReadDir(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	docs := make([]*model.Document, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			return nil, err
		}
		stored := filepath.Join(dir, entry.Name())
		docs = append(docs, &model.Document{
			KBID:    kbID,
			DocName: entry.Name(),
			URI:     "local://" + filepath.ToSlash(stored),
			Size:    info.Size(),
			CTime:   info.ModTime().Unix(),
		})
	}
	return docs, nil
}

// Load stages the stored document into the local directory.
func (h *LocalHub) Load(ctx context.Context, doc *model.Document) error {
	src := h.path(doc)
	if _, err := os.Stat(src); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return ErrNotFound
		}
		return err
	}

	if h.env.LocalDir == "" {
		// The stored copy already is a local file.
		doc.FilePath = src
		return nil
	}
	dst := filepath.Join(h.env.LocalDir, doc.DocName)
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}
	if _, err := copyFile(dst, src); err != nil {
		return err
	}
	doc.FilePath = dst
	return nil
}

func copyFile(dst, src string) (int64, error) {
	in, err := os.Open(src)
	if err != nil {
		return 0, err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return 0, err
	}
	n, err := io.Copy(out, in)
	if err != nil {
		out.Close()
		return 0, err
	}
	return n, out.Close()
}
