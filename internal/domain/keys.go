package domain

// Gin context keys set by middleware.
const (
	KeyRequestID = "RequestID"
	KeySessionID = "SessionID"
)
