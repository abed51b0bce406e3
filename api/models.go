package api

// ActionResult is the envelope every JSON admin endpoint answers with.
type ActionResult struct {
	Success bool     `json:"success"`
	Message string   `json:"message,omitempty"`
	Errors  []string `json:"errors,omitempty"`
	Data    any      `json:"data,omitempty"`
}
