package rag

import (
	"github.com/tmc/langchaingo/textsplitter"
)

// transcriptSeparators is the recursive fallback order: paragraph
// breaks, then line breaks, then sentence boundaries, then spaces, then
// individual characters.
var transcriptSeparators = []string{"\n\n", "\n", ". ", " ", ""}

// Splitter cuts a transcript into overlapping chunks using the coarsest
// separator that keeps each chunk under the configured size.
type Splitter struct {
	inner textsplitter.RecursiveCharacter
}

// NewSplitter creates a transcript splitter. Overlap is clamped to less
// than the chunk size; an overlap that large would keep chunk windows
// from ever advancing.
func NewSplitter(chunkSize, chunkOverlap int) *Splitter {
	if chunkOverlap >= chunkSize {
		chunkOverlap = chunkSize / 2
	}
	return &Splitter{
		inner: textsplitter.NewRecursiveCharacter(
			textsplitter.WithChunkSize(chunkSize),
			textsplitter.WithChunkOverlap(chunkOverlap),
			textsplitter.WithSeparators(transcriptSeparators),
		),
	}
}

// Split returns the chunk texts for a transcript. An empty transcript
// yields zero chunks.
func (s *Splitter) Split(text string) ([]string, error) {
	return s.inner.SplitText(text)
}
