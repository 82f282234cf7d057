package http

// APIResponse represents standard API response.
type APIResponse struct {
	Status  int         `json:"status" example:"200"`
	Message string      `json:"message" example:"OK"`
	Data    interface{} `json:"data,omitempty"`
}

// ErrorBody is the flat error shape used by endpoints that answer {"error": "..."}.
type ErrorBody struct {
	Error string `json:"error" example:"name is required"`
}

// ValidationError represents validation error detail.
type ValidationError struct {
	Code    string                 `json:"code,omitempty" example:"ERR_REQUIRED"`
	Field   string                 `json:"field,omitempty" example:"name"`
	Message string                 `json:"message,omitempty" example:"name is required"`
	Params  map[string]interface{} `json:"params,omitempty"`
}

// ListDataResponse represents a list response with a continuation flag.
type ListDataResponse struct {
	Rows    interface{} `json:"rows"`
	Total   int         `json:"total"`
	HasMore bool        `json:"hasMore"`
}
