package serverutils

type BaseResponse[T any] struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    T      `json:"data"`
}

func SuccessResponse[T any](message string, data T) BaseResponse[T] {
	return BaseResponse[T]{
		Success: true,
		Message: message,
		Data:    data,
	}
}

// ErrorResponse mirrors the error resource clients already understand.
type ErrorResponse struct {
	Type            string `json:"_type"`
	ErrorIdentifier string `json:"errorIdentifier"`
	Message         string `json:"message"`
	RedirectTo      string `json:"redirectTo,omitempty"`
}

func NewErrorResponse(identifier, message string) ErrorResponse {
	return ErrorResponse{
		Type:            "Error",
		ErrorIdentifier: identifier,
		Message:         message,
	}
}
