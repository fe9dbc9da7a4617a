package dto

// APIResponse is the envelope every endpoint answers with.
type APIResponse struct {
	Success bool   `json:"success"`
	Data    any    `json:"data"`
	Message string `json:"message"`
}

// OK wraps a successful payload.
func OK(data any) APIResponse {
	return APIResponse{Success: true, Data: data, Message: "Success"}
}

// Fail wraps an error message.
func Fail(message string) APIResponse {
	return APIResponse{Success: false, Message: message}
}
