package service

type ErrorCode string

const (
	ErrorCodeInvalidBody ErrorCode = "INVALID_BODY"
	ErrorCodeDuplicate   ErrorCode = "DUPLICATE"
	ErrorCodeNotFound    ErrorCode = "NOT_FOUND"
	ErrorCodeUnspecified ErrorCode = "UNSPECIFIED"
)

type Error struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Details []string  `json:"details,omitempty"`
}

func NewError(code ErrorCode, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
	}
}

func (e *Error) WithDetails(details ...string) *Error {
	e.Details = append(e.Details, details...)
	return e
}

func (e *Error) Error() string {
	return e.Message
}
