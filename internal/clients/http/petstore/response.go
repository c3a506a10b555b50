package petstore

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Response is a fully read HTTP response.
type Response struct {
	StatusCode int
	Status     string
	Header     http.Header
	Body       []byte

	Method  string
	URL     string
	Elapsed time.Duration
}

// Text returns the raw body.
func (r *Response) Text() string {
	if r == nil {
		return ""
	}
	return string(r.Body)
}

// JSON decodes the body into v.
func (r *Response) JSON(v any) error {
	if r == nil {
		return fmt.Errorf("nil response")
	}
	if err := json.Unmarshal(r.Body, v); err != nil {
		return fmt.Errorf("decode %s %s response: %w", r.Method, r.URL, err)
	}
	return nil
}

// Decoded parses the body into generic JSON values with numbers kept as
// json.Number.
func (r *Response) Decoded() (any, error) {
	if r == nil {
		return nil, fmt.Errorf("nil response")
	}
	dec := json.NewDecoder(bytes.NewReader(r.Body))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	if dec.More() {
		return nil, fmt.Errorf("unexpected data after top-level JSON value")
	}
	return v, nil
}

// Object parses the body as a top-level JSON object.
func (r *Response) Object() (map[string]any, error) {
	v, err := r.Decoded()
	if err != nil {
		return nil, err
	}
	obj, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("expected JSON object at top level, got %T", v)
	}
	return obj, nil
}
