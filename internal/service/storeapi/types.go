package storeapi

import (
	"fmt"
)

// ErrorResponse is a non-2xx reply from the backend. The backend reports
// failures as {"error": "..."}.
type ErrorResponse struct {
	StatusCode int    `json:"-"`
	Message    string `json:"error"`
}

func (e *ErrorResponse) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("storefront api error: status %d", e.StatusCode)
	}
	return fmt.Sprintf("storefront api error: status %d: %s", e.StatusCode, e.Message)
}
