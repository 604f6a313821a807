package dto

// SuccessResponse is the minimal success envelope
type SuccessResponse struct {
	Success bool   `json:"success" example:"true"`
	Message string `json:"message,omitempty" example:"Profile updated"`
}

// NewSuccessResponse creates a success envelope with an optional message
func NewSuccessResponse(message string) SuccessResponse {
	return SuccessResponse{Success: true, Message: message}
}

// SoftFailure is returned with HTTP 200 when a failure must not reveal details
type SoftFailure struct {
	Success bool   `json:"success" example:"false"`
	Message string `json:"message" example:"Invalid username or password"`
}

// UploadedFile is a multipart file read fully into memory
type UploadedFile struct {
	Filename string
	Content  []byte
}

// Size returns the content length
func (f *UploadedFile) Size() int {
	if f == nil {
		return 0
	}
	return len(f.Content)
}
