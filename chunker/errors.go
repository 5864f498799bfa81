package chunker

import "errors"

var (
	ErrInvalidChunkSize = errors.New("chunker: invalid chunk size")
	ErrInvalidOverlap   = errors.New("chunker: invalid overlap")
	ErrInvalidThreshold = errors.New("chunker: invalid similarity threshold")
	ErrNilEmbedder      = errors.New("chunker: embedder is required")
	ErrEmbedding        = errors.New("chunker: embedding failed")
	ErrSegmentation     = errors.New("chunker: sentence segmentation failed")
)
