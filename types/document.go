package types

// DocumentServiceConfig contains configuration options for PDF processing
type DocumentServiceConfig struct {
	MaxChunkSize int // Maximum size for text chunks, in characters
	OverlapSize  int // Size of overlap between consecutive chunks
}

// RetrievedChunk is one retrieval hit: a chunk of the session's document
// paired with its similarity score against the query.
type RetrievedChunk struct {
	Content string  `json:"content"`
	Score   float32 `json:"score"`
}
