package response

// ErrorResponse is the body of every non-2xx reply.
type ErrorResponse struct {
	Error     string `json:"error"`
	RequestID string `json:"requestId,omitempty"`
}

type HealthResponse struct {
	Status       string   `json:"status"`
	RulesVersion string   `json:"rulesVersion,omitempty"`
	Providers    []string `json:"providers"`
}
