package control

import (
	"errors"
	"fmt"
	"strings"
)

// APIError operation failure carrying the HTTP status it maps to
type APIError struct {
	// Code HTTP status code of the failure
	Code int
	// Reasons human readable failure messages
	Reasons []string
}

// Error implements error
func (e APIError) Error() string {
	return fmt.Sprintf("[%d] %s", e.Code, strings.Join(e.Reasons, "; "))
}

/*
NewAPIError define a new operation failure

	@param code int - HTTP status code of the failure
	@param reasons ...string - human readable failure messages
	@return the error
*/
func NewAPIError(code int, reasons ...string) APIError {
	return APIError{Code: code, Reasons: reasons}
}

/*
AsAPIError extract the API failure from an error chain

	@param err error - error returned by a manager call
	@return the API failure, and whether one was present
*/
func AsAPIError(err error) (APIError, bool) {
	var apiErr APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return APIError{}, false
}
