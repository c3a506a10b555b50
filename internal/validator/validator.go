// Package validator holds the response assertions shared by the petstore
// tests. Every failure message carries the raw response body.
package validator

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"slices"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Apurer/petstore-api-tests/internal/clients/http/petstore"
	"github.com/Apurer/petstore-api-tests/internal/contract"
	"github.com/Apurer/petstore-api-tests/internal/platform/observability"
)

// TestingT is the subset of testing.TB the assertions need.
type TestingT interface {
	require.TestingT
	Helper()
}

// Validator fails tests on contract violations and logs the mismatch.
type Validator struct {
	logger *slog.Logger
}

// New returns a validator logging through logger; nil discards.
func New(logger *slog.Logger) *Validator {
	if logger == nil {
		logger = observability.DiscardLogger()
	}
	return &Validator{logger: logger}
}

// StatusCode fails unless the response status equals expected.
func (v *Validator) StatusCode(t TestingT, resp *petstore.Response, expected int) {
	t.Helper()
	v.check(t, CheckStatusCode(resp, expected))
}

// StatusCodeIn fails unless the response status is one of expected.
func (v *Validator) StatusCodeIn(t TestingT, resp *petstore.Response, expected ...int) {
	t.Helper()
	v.check(t, CheckStatusCodeIn(resp, expected...))
}

// JSONResponse fails unless the body parses as JSON.
func (v *Validator) JSONResponse(t TestingT, resp *petstore.Response) {
	t.Helper()
	v.check(t, CheckJSON(resp))
}

// JSONValue fails unless the body is a JSON object whose key equals expected.
func (v *Validator) JSONValue(t TestingT, resp *petstore.Response, key string, expected any) {
	t.Helper()
	v.check(t, CheckJSONValue(resp, key, expected))
}

// MatchesSchema fails unless the body satisfies the named OpenAPI schema.
func (v *Validator) MatchesSchema(t TestingT, resp *petstore.Response, schema string) {
	t.Helper()
	v.check(t, CheckSchema(resp, schema))
}

func (v *Validator) check(t TestingT, err error) {
	t.Helper()
	if err == nil {
		return
	}
	v.logger.Error(err.Error())
	require.Fail(t, err.Error())
}

// CheckStatusCode reports a mismatch between the actual and expected status.
func CheckStatusCode(resp *petstore.Response, expected int) error {
	if resp == nil {
		return ErrNoResponse.WithDetail("no response; expected status %d", expected)
	}
	if resp.StatusCode != expected {
		return ErrStatus.WithResponse(resp).WithDetail("unexpected status %d; expected %d", resp.StatusCode, expected)
	}
	return nil
}

// CheckStatusCodeIn reports a status outside the expected set.
func CheckStatusCodeIn(resp *petstore.Response, expected ...int) error {
	if resp == nil {
		return ErrNoResponse.WithDetail("no response; expected one of %v", expected)
	}
	if !slices.Contains(expected, resp.StatusCode) {
		return ErrStatus.WithResponse(resp).WithDetail("unexpected status %d; expected one of %v", resp.StatusCode, expected)
	}
	return nil
}

// CheckJSON reports a body that is not valid JSON.
func CheckJSON(resp *petstore.Response) error {
	if resp == nil {
		return ErrNoResponse.WithDetail("no response; expected a JSON body")
	}
	if _, err := resp.Decoded(); err != nil {
		return ErrJSON.WithResponse(resp).WithDetail("response body is not valid JSON: %v", err)
	}
	return nil
}

// CheckJSONValue reports a missing or different top-level value. Numbers are
// compared by value, so 42 matches int64(42).
func CheckJSONValue(resp *petstore.Response, key string, expected any) error {
	if err := CheckJSON(resp); err != nil {
		return err
	}
	obj, err := resp.Object()
	if err != nil {
		return ErrValue.WithResponse(resp).WithDetail("%v", err)
	}
	actual, ok := obj[key]
	if !ok {
		return ErrValue.WithResponse(resp).WithDetail("response JSON does not contain key %q", key)
	}
	want, err := normalize(expected)
	if err != nil {
		return fmt.Errorf("expected value for %q: %w", key, err)
	}
	if !assert.ObjectsAreEqual(want, actual) {
		return ErrValue.WithResponse(resp).WithDetail("expected %s == %#v, got %#v", key, expected, actual)
	}
	return nil
}

// CheckSchema reports a body that violates the named OpenAPI schema.
func CheckSchema(resp *petstore.Response, schema string) error {
	if resp == nil {
		return ErrNoResponse.WithDetail("no response; expected a %s body", schema)
	}
	if err := contract.Validate(schema, resp.Body); err != nil {
		return ErrSchema.WithResponse(resp).WithDetail("%v", err)
	}
	return nil
}

// normalize runs v through the same JSON decoding the response gets.
func normalize(v any) (any, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var out any
	if err := dec.Decode(&out); err != nil {
		return nil, err
	}
	return out, nil
}
