package errors

import (
	"fmt"
	"strings"
)

// UserError is a business error reported by Shopify (e.g. wrong credentials).
// Field mirrors the GraphQL userErrors field path.
type UserError struct {
	Field   []string `json:"field"`
	Message string   `json:"message"`
}

// ErrUpstreamUser is returned when Shopify reports user errors (e.g. bad credentials)
type ErrUpstreamUser struct {
	Errors []UserError
}

func (e *ErrUpstreamUser) Error() string {
	msgs := make([]string, len(e.Errors))
	for i, ue := range e.Errors {
		msgs[i] = ue.Message
	}
	return fmt.Sprintf("shopify user errors: %s", strings.Join(msgs, "; "))
}

// ErrUpstream is returned on Shopify transport failures: network errors,
// non-2xx responses or malformed response bodies. Status is the upstream
// HTTP status when one was received, 0 otherwise.
type ErrUpstream struct {
	Status  int
	Message string
}

func (e *ErrUpstream) Error() string {
	if e.Status > 0 {
		return fmt.Sprintf("shopify API error: status %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("shopify API error: %s", e.Message)
}
