package api

// APIResponse represents a standard API response
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// RecordView is the JSON rendering of one parsed table record.
type RecordView struct {
	Type      uint8    `json:"type"`
	Handle    uint16   `json:"handle"`
	Length    uint8    `json:"length"`
	Size      int      `json:"size"`
	Formatted string   `json:"formatted"` // hex
	Strings   []string `json:"strings,omitempty"`
}

// TableStats summarizes the stored table.
type TableStats struct {
	Records int `json:"records"`
	Bytes   int `json:"bytes"`
}

// ServerConfig holds configuration for the API server
type ServerConfig struct {
	Port   int
	APIKey string // empty disables authentication
}
