package utils

// ContextKey is the type used for request-scoped context values
type ContextKey string

const (
	RequestIDKey ContextKey = "request_id"
	UserAgentKey ContextKey = "user_agent"
	IPAddressKey ContextKey = "ip_address"
	EndpointKey  ContextKey = "endpoint"

	// CancelFuncKey keeps the timeout's cancel reachable for the request's lifetime
	CancelFuncKey ContextKey = "cancel_func"
)
