package sessionreq

// StartSessionRequest represents the request to open an edit session
type StartSessionRequest struct {
	ImageURL string `json:"image_url" binding:"required,url"`
}

// SessionMessageRequest represents one edit instruction in a session
type SessionMessageRequest struct {
	Instruction string `json:"instruction" binding:"required,max=1000"`
}
