package model

import (
	"time"

	"github.com/google/uuid"
)

// Document is the metadata record of one source document managed by a
// document hub and ingested through a pipeline.
type Document struct {
	DocID    string
	KBID     string
	DocName  string
	DocType  string // file extension: pdf, md, txt, ...
	Layout   DocumentLayout
	Lang     Lang
	FilePath string // local file path
	URI      string // hub location, e.g. "s3://bucket/key" or "local:///path"
	Size     int64
	CTime    int64 // unix seconds
}

// NewDocument creates a Document with a fresh DocID and the current time.
func NewDocument(docName string) *Document {
	return &Document{
		DocID:   uuid.NewString(),
		DocName: docName,
		Layout:  LayoutGeneral,
		Lang:    LangZH,
		CTime:   time.Now().Unix(),
	}
}

// ToRow converts the document into a table row. When mapping is non-nil,
// only the attributes it names are included, stored under the mapped column
// name; otherwise all set attributes are included under their own name.
func (d *Document) ToRow(mapping map[string]string) Row {
	return mapRow(map[string]any{
		"doc_id":    d.DocID,
		"kb_id":     d.KBID,
		"doc_name":  d.DocName,
		"doc_type":  d.DocType,
		"layout":    string(d.Layout),
		"lang":      string(d.Lang),
		"file_path": d.FilePath,
		"uri":       d.URI,
		"size":      d.Size,
		"ctime":     d.CTime,
	}, mapping)
}

// DocumentChunk is one piece of a processed document, optionally carrying
// its embedding vector.
type DocumentChunk struct {
	ChunkID        string
	KBID           string
	DocID          string
	DocName        string
	SequenceNumber int
	Content        string
	ContentLen     int
	Embedding      []float32
	CTime          int64
}

// NewDocumentChunk creates a chunk with a fresh ChunkID and the current time.
func NewDocumentChunk(kbID, docID, docName string) *DocumentChunk {
	return &DocumentChunk{
		ChunkID: uuid.NewString(),
		KBID:    kbID,
		DocID:   docID,
		DocName: docName,
		CTime:   time.Now().Unix(),
	}
}

// ToRow converts the chunk into a table row, with the same mapping
// semantics as Document.ToRow.
func (c *DocumentChunk) ToRow(mapping map[string]string) Row {
	fields := map[string]any{
		"chunk_id":        c.ChunkID,
		"kb_id":           c.KBID,
		"doc_id":          c.DocID,
		"doc_name":        c.DocName,
		"sequence_number": c.SequenceNumber,
		"content":         c.Content,
		"content_len":     c.ContentLen,
		"ctime":           c.CTime,
	}
	if c.Embedding != nil {
		fields["embedding"] = c.Embedding
	}
	return mapRow(fields, mapping)
}

func mapRow(fields map[string]any, mapping map[string]string) Row {
	row := Row{}
	for name, value := range fields {
		if isZeroValue(value) {
			continue
		}
		if mapping == nil {
			row[name] = value
			continue
		}
		if mapped, ok := mapping[name]; ok {
			row[mapped] = value
		}
	}
	return row
}

func isZeroValue(value any) bool {
	switch v := value.(type) {
	case string:
		return v == ""
	case int:
		return false
	case int64:
		return v == 0
	default:
		return value == nil
	}
}
