package dto

import "time"

// ErrorResponse is the JSON body returned for every failed request.
type ErrorResponse struct {
	Message      string    `json:"message" example:"upstream request failed"`
	ErrorDetails string    `json:"error,omitempty" example:"GET http://localhost/api/orders: upstream returned 401 Unauthorized"`
	Timestamp    time.Time `json:"timestamp"`
}

// Error implements the error interface.
func (e ErrorResponse) Error() string {
	if e.ErrorDetails == "" {
		return e.Message
	}
	return e.Message + ": " + e.ErrorDetails
}

// NewErrorResponse builds an ErrorResponse stamped with the current UTC time.
// err is optional.
func NewErrorResponse(message string, err error) ErrorResponse {
	resp := ErrorResponse{Message: message, Timestamp: time.Now().UTC()}
	if err != nil {
		resp.ErrorDetails = err.Error()
	}
	return resp
}
