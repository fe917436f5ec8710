package types

const (
	ContextUserKey = "user"

	// Request id header, echoed back on every response.
	RequestIDHeader = "X-Request-ID"
)
