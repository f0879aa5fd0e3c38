package dto

// MessageResponse is the acknowledgement envelope
type MessageResponse struct {
	Msg string `json:"msg" example:"Course deleted successfully"`
}

// CreatedResponse acknowledges a creation with the new row's id
type CreatedResponse struct {
	Msg string `json:"msg" example:"Course created successfully"`
	ID  int64  `json:"id" example:"1"`
}
