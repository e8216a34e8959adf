// Package processor turns raw documents into chunks for ingestion.
package processor

import (
	"context"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/hupe1980/mochow/model"
)

// DocProcessor splits one document into ordered chunks.
type DocProcessor interface {
	Process(ctx context.Context, doc *model.Document) ([]*model.DocumentChunk, error)
}

// Defaults of TextSplitter.
const (
	DefaultChunkSize    = 800
	DefaultChunkOverlap = 200
)

// TextSplitterOptions configures a TextSplitter.
type TextSplitterOptions struct {
	// ChunkSize is the maximum chunk length in runes.
	ChunkSize int
	// ChunkOverlap is the number of runes repeated between consecutive
	// chunks so context survives the cut.
	ChunkOverlap int
	// Separators are tried in order when looking for a cut point.
	Separators []string
}

// TextSplitter implements DocProcessor for plain text documents. Text
// is cut into overlapping chunks, preferring paragraph and sentence
// boundaries over hard cuts.
type TextSplitter struct {
	chunkSize    int
	chunkOverlap int
	separators   []string
}

// NewTextSplitter creates a splitter with the given options.
func NewTextSplitter(optFns ...func(*TextSplitterOptions)) *TextSplitter {
	opts := TextSplitterOptions{
		ChunkSize:    DefaultChunkSize,
		ChunkOverlap: DefaultChunkOverlap,
		Separators:   []string{"\n\n", "\n", ". ", " "},
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.ChunkSize <= 0 {
		opts.ChunkSize = DefaultChunkSize
	}
	if opts.ChunkOverlap < 0 || opts.ChunkOverlap >= opts.ChunkSize {
		opts.ChunkOverlap = DefaultChunkOverlap
	}
	return &TextSplitter{
		chunkSize:    opts.ChunkSize,
		chunkOverlap: opts.ChunkOverlap,
		separators:   opts.Separators,
	}
}

// Process reads the document file and returns its chunks in order.
func (s *TextSplitter) Process(ctx context.Context, doc *model.Document) ([]*model.DocumentChunk, error) {
	data, err := os.ReadFile(doc.FilePath)
	if err != nil {
		return nil, err
	}

	pieces := s.SplitText(string(data))
	chunks := make([]*model.DocumentChunk, 0, len(pieces))
	for i, piece := range pieces {
		chunk := model.NewDocumentChunk(doc.KBID, doc.DocID, doc.DocName)
		chunk.SequenceNumber = i
		chunk.Content = piece
		chunk.ContentLen = utf8.RuneCountInString(piece)
		chunks = append(chunks, chunk)
	}
	return chunks, nil
}

// SplitText cuts text into overlapping pieces of at most the configured
// chunk size.
func (s *TextSplitter) SplitText(text string) []string {
	var pieces []string
	runes := []rune(text)
	step := s.chunkSize - s.chunkOverlap

	for start := 0; start < len(runes); {
		end := start + s.chunkSize
		if end >= len(runes) {
			piece := strings.TrimSpace(string(runes[start:]))
			if piece != "" {
				pieces = append(pieces, piece)
			}
			break
		}

		end = s.cutPoint(runes, start, end)
		piece := strings.TrimSpace(string(runes[start:end]))
		if piece != "" {
			pieces = append(pieces, piece)
		}

		next := end - s.chunkOverlap
		if next <= start {
			next = start + step
		}
		start = next
	}
	return pieces
}

// cutPoint moves the cut backwards to the nearest separator, falling
// back to a hard cut when none is found in the second half of the window.
func (s *TextSplitter) cutPoint(runes []rune, start, end int) int {
	window := string(runes[start:end])
	half := (end - start) / 2
	for _, sep := range s.separators {
		idx := strings.LastIndex(window, sep)
		if idx < 0 {
			continue
		}
		cut := utf8.RuneCountInString(window[:idx]) + utf8.RuneCountInString(sep)
		if cut >= half {
			return start + cut
		}
	}
	return end
}
