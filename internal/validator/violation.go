package validator

import (
	"errors"
	"fmt"

	"github.com/Apurer/petstore-api-tests/internal/clients/http/petstore"
)

// Kinds of violation.
const (
	KindNoResponse = "no-response"
	KindStatus     = "status"
	KindJSON       = "json"
	KindValue      = "value"
	KindSchema     = "schema"
)

// Violation describes one failed check against a response.
type Violation struct {
	// Kind groups violations by the check that raised them.
	Kind string
	// Detail is the human-readable mismatch.
	Detail string
	// Status is the response status, zero when there was no response.
	Status int
	// Body is the raw response body.
	Body string

	hasResponse bool
}

// Error renders the detail followed by the raw body when a response exists.
func (v Violation) Error() string {
	if !v.hasResponse {
		return v.Detail
	}
	return fmt.Sprintf("%s. Body: %s", v.Detail, v.Body)
}

// WithDetail returns a copy with the given detail.
func (v Violation) WithDetail(format string, args ...any) Violation {
	v.Detail = fmt.Sprintf(format, args...)
	return v
}

// WithResponse returns a copy carrying the response status and body.
func (v Violation) WithResponse(resp *petstore.Response) Violation {
	if resp == nil {
		return v
	}
	v.Status = resp.StatusCode
	v.Body = resp.Text()
	v.hasResponse = true
	return v
}

// Violation templates.
var (
	ErrNoResponse = Violation{Kind: KindNoResponse, Detail: "no response"}
	ErrStatus     = Violation{Kind: KindStatus, Detail: "unexpected status"}
	ErrJSON       = Violation{Kind: KindJSON, Detail: "response body is not valid JSON"}
	ErrValue      = Violation{Kind: KindValue, Detail: "unexpected JSON value"}
	ErrSchema     = Violation{Kind: KindSchema, Detail: "response violates schema"}
)

// KindOf returns the violation kind behind err, or "" for other errors.
func KindOf(err error) string {
	var v Violation
	if errors.As(err, &v) {
		return v.Kind
	}
	return ""
}
