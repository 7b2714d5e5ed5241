package wiki

import (
	"errors"
	"fmt"
)

var (
	// ErrPageNotFound is returned when a requested page does not exist.
	ErrPageNotFound = errors.New("page not found")
	// ErrNoCredentials is returned by writes when no bot password is configured.
	ErrNoCredentials = errors.New("no wiki credentials configured")
)

// APIError is an error payload returned by the MediaWiki API.
type APIError struct {
	Code string `json:"code"`
	Info string `json:"info"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("wiki API error %s: %s", e.Code, e.Info)
}
