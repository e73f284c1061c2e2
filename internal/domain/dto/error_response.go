package dto

import "time"

// ErrorResponse is the standard JSON error envelope returned by every
// failing endpoint.
//
// ErrorDetails carries the underlying error text when one exists and is
// omitted from the JSON output otherwise.
type ErrorResponse struct {
	Message      string    `json:"message" example:"symbol is required"`
	ErrorDetails string    `json:"error,omitempty" example:"no data returned for symbol"`
	Timestamp    time.Time `json:"timestamp" example:"2023-10-27T14:05:00Z"`
}

// NewErrorResponse builds an ErrorResponse with the current timestamp.
// err may be nil when there is no underlying cause to expose.
func NewErrorResponse(message string, err error) ErrorResponse {
	resp := ErrorResponse{
		Message:   message,
		Timestamp: time.Now().UTC(),
	}
	if err != nil {
		resp.ErrorDetails = err.Error()
	}
	return resp
}

// Error implements the error interface so an ErrorResponse can travel
// through gin's error list.
func (e ErrorResponse) Error() string {
	if e.ErrorDetails != "" {
		return e.Message + ": " + e.ErrorDetails
	}
	return e.Message
}
