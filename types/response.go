package types

type DataResponse struct {
	Status  string      `json:"status"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

type UploadResponse struct {
	SessionID string `json:"session_id"`
	Filename  string `json:"filename"`
	Message   string `json:"message"`
}

type QueryResponse struct {
	Response  string `json:"response"`
	SessionID string `json:"session_id,omitempty"`
}

type SessionSummary struct {
	SessionID string `json:"session_id"`
	Filename  string `json:"filename"`
	Chunks    int    `json:"chunks"`
	CreatedAt int64  `json:"created_at"`
}

type SessionListResponse struct {
	ActiveSessions int              `json:"active_sessions"`
	Sessions       []SessionSummary `json:"sessions"`
}

type HealthResponse struct {
	Status           string   `json:"status"`
	APIKeyConfigured bool     `json:"api_key_configured"`
	ModulesLoaded    bool     `json:"modules_loaded"`
	Reasons          []string `json:"reasons,omitempty"`
}
