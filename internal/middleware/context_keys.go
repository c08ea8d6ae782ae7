package middleware

// Keys under which request-scoped values are stored in the gin context.
const (
	// UserIDKey holds the authenticated user's ID, set by AuthMiddleware.
	UserIDKey = "userID"

	// RequestIDKey holds the per-request correlation ID.
	RequestIDKey = "requestID"
)

// loggerCtxKey is the context.Context key for the request-scoped logger.
type loggerCtxKey struct{}
