package domain

// RequestMeta carries the caller details the usecases need for bot checks and audit logs.
type RequestMeta struct {
	RequestID string
	ClientIP  string
	UserAgent string
}
