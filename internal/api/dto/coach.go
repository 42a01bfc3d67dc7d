package dto

// ChatRequest represents a message sent to the accountability coach
type ChatRequest struct {
	Message string `json:"message" binding:"required" validate:"not_empty"`
}

// ChatResponse represents the coach's reply
type ChatResponse struct {
	Reply string `json:"reply"`
}
