package dochub

import (
	"context"
	"os"
	"strings"

	"github.com/hupe1980/mochow/model"
)

// ErrNotFound is returned when a document does not exist in the hub.
//
// Implementations should return an error that satisfies
// `errors.Is(err, ErrNotFound)`. The default maps to `os.ErrNotExist`.
var ErrNotFound = os.ErrNotExist

// Env describes where a hub keeps its documents.
type Env struct {
	// URIPrefix is the storage root, e.g. "local:///var/docs" or
	// "s3://bucket/knowledge".
	URIPrefix string

	// LocalDir is the staging directory Load downloads into. Empty
	// means the working directory.
	LocalDir string
}

// Hub is an abstraction for storing and retrieving raw documents.
type Hub interface {
	// Add stores the file at doc.FilePath under the hub prefix and
	// fills in doc.URI, doc.Size and doc.CTime.
	Add(ctx context.Context, doc *model.Document) error

	// Remove deletes the stored document. Removing a document that is
	// already gone is not an error.
	Remove(ctx context.Context, doc *model.Document) error

	// List returns the documents of one knowledge base.
	List(ctx context.Context, kbID string) ([]*model.Document, error)

	// Load stages the stored document into the local directory and
	// sets doc.FilePath to the staged copy.
	Load(ctx context.Context, doc *model.Document) error
}

// splitURI splits "scheme://rest" into its parts.
func splitURI(uri string) (scheme, rest string, ok bool) {
	scheme, rest, ok = strings.Cut(uri, "://")
	if !ok || scheme == "" {
		return "", "", false
	}
	return scheme, rest, true
}
