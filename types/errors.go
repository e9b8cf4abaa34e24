package types

import "errors"

// Error taxonomy for the ingestion and query pipeline. Services wrap these
// with %w so handlers can map them to HTTP statuses with errors.Is.
var (
	// ErrUnreadableDocument means the PDF is corrupted, encrypted, or has no
	// extractable text (typical for scanned/image-only documents).
	ErrUnreadableDocument = errors.New("unreadable document")

	// ErrEmptyDocument means the extracted text is empty after normalization.
	ErrEmptyDocument = errors.New("empty document")

	// ErrEmbeddingService means the remote embedding endpoint failed after
	// the bounded retry budget was exhausted.
	ErrEmbeddingService = errors.New("embedding service error")

	// ErrSynthesis means the chat-completion endpoint failed to produce an answer.
	ErrSynthesis = errors.New("answer synthesis error")

	// ErrSessionNotFound means the session id does not resolve to a live session.
	ErrSessionNotFound = errors.New("session not found")

	// ErrDuplicateSession means a caller-supplied session id is already in use.
	ErrDuplicateSession = errors.New("session already exists")

	// ErrInvalidInput means the request shape is malformed: unsupported file
	// type, unreachable URL, missing fields.
	ErrInvalidInput = errors.New("invalid input")
)
