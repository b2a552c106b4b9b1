package response

// Response is the JSON envelope returned by every endpoint
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *ErrorData  `json:"error,omitempty"`
	Meta    *Meta       `json:"meta,omitempty"`
}

type ErrorData struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// Meta carries listing information
type Meta struct {
	Total int `json:"total"`
}

func Success(data interface{}) Response {
	return Response{
		Success: true,
		Data:    data,
	}
}

// List wraps a slice result together with its length
func List(data interface{}, total int) Response {
	return Response{
		Success: true,
		Data:    data,
		Meta:    &Meta{Total: total},
	}
}

func Error(code, message string) Response {
	return Response{
		Success: false,
		Error: &ErrorData{
			Code:    code,
			Message: message,
		},
	}
}

// ErrorWithDetails is Error with an extra details string
func ErrorWithDetails(code, message, details string) Response {
	r := Error(code, message)
	r.Error.Details = details
	return r
}

func InternalError(message string) Response {
	return Error("INTERNAL_ERROR", message)
}

func BadRequest(message string) Response {
	return Error("BAD_REQUEST", message)
}

func NotFound(message string) Response {
	return Error("NOT_FOUND", message)
}

func Unauthorized(message string) Response {
	return Error("UNAUTHORIZED", message)
}

func Forbidden(message string) Response {
	return Error("FORBIDDEN", message)
}

func Conflict(message string) Response {
	return Error("CONFLICT", message)
}
