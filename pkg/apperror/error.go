package apperror

import (
	"net/http"
	"strconv"
)

type AppError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
	// Headers are copied onto the response by the error middleware.
	Headers map[string]string `json:"-"`
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func New(code int, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// WithRetryAfter sets the Retry-After header (seconds) on the response.
func (e *AppError) WithRetryAfter(seconds int) *AppError {
	if e.Headers == nil {
		e.Headers = make(map[string]string)
	}
	e.Headers["Retry-After"] = strconv.Itoa(seconds)
	return e
}

func BadRequest(message string) *AppError {
	return New(http.StatusBadRequest, message, nil)
}

func Forbidden(message string) *AppError {
	return New(http.StatusForbidden, message, nil)
}

func NotFound(message string) *AppError {
	return New(http.StatusNotFound, message, nil)
}

func MethodNotAllowed(message string) *AppError {
	return New(http.StatusMethodNotAllowed, message, nil)
}
