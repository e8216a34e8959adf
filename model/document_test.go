package model

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewDocument(t *testing.T) {
	doc := NewDocument("guide.txt")

	require.NotEmpty(t, doc.DocID)
	require.Equal(t, "guide.txt", doc.DocName)
	require.Equal(t, LayoutGeneral, doc.Layout)
	require.NotZero(t, doc.CTime)

	other := NewDocument("guide.txt")
	require.NotEqual(t, doc.DocID, other.DocID)
}

func TestDocumentChunk_ToRow(t *testing.T) {
	chunk := NewDocumentChunk("kb-1", "doc-1", "guide.txt")
	chunk.SequenceNumber = 3
	chunk.Content = "hello world"
	chunk.ContentLen = 11
	chunk.Embedding = []float32{0.1, 0.2}

	row := chunk.ToRow(nil)
	require.Equal(t, "kb-1", row["kb_id"])
	require.Equal(t, "doc-1", row["doc_id"])
	require.Equal(t, 3, row["sequence_number"])
	require.Equal(t, "hello world", row["content"])
	require.Equal(t, []float32{0.1, 0.2}, row["embedding"])
}

func TestDocumentChunk_ToRow_Mapping(t *testing.T) {
	chunk := NewDocumentChunk("kb-1", "doc-1", "guide.txt")
	chunk.Content = "hello"

	row := chunk.ToRow(map[string]string{
		"chunk_id": "id",
		"content":  "text",
	})
	require.Equal(t, chunk.ChunkID, row["id"])
	require.Equal(t, "hello", row["text"])
	require.NotContains(t, row, "kb_id")
	require.NotContains(t, row, "content")
}

func TestDocument_ToRow_SkipsZeroValues(t *testing.T) {
	doc := &Document{DocID: "doc-1", DocName: "guide.txt"}

	row := doc.ToRow(nil)
	require.Equal(t, "doc-1", row["doc_id"])
	require.NotContains(t, row, "uri")
	require.NotContains(t, row, "size")
}
