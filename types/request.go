package types

// QueryRequest asks a question, optionally against an uploaded document.
// SessionID may be empty or stale; the query then runs in general mode.
type QueryRequest struct {
	Query     string `json:"query" binding:"required"`
	SessionID string `json:"session_id"`
}

// UploadURLRequest uploads a PDF by URL instead of multipart file.
type UploadURLRequest struct {
	URL       string `json:"url" binding:"required"`
	SessionID string `json:"session_id"`
}
