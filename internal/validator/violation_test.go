package validator

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Apurer/petstore-api-tests/internal/contract"
)

func TestViolationKinds(t *testing.T) {
	tests := []struct {
		name string
		err  error
		kind string
	}{
		{"nil response", CheckStatusCode(nil, http.StatusOK), KindNoResponse},
		{"status", CheckStatusCode(response(http.StatusNotFound, `{}`), http.StatusOK), KindStatus},
		{"status set", CheckStatusCodeIn(response(http.StatusTeapot, `{}`), http.StatusOK, http.StatusNotFound), KindStatus},
		{"invalid json", CheckJSON(response(http.StatusOK, `<html>`)), KindJSON},
		{"missing key", CheckJSONValue(response(http.StatusOK, `{"id":1}`), "name", "Rex"), KindValue},
		{"wrong value", CheckJSONValue(response(http.StatusOK, `{"id":1}`), "id", 2), KindValue},
		{"schema", CheckSchema(response(http.StatusOK, `{"id":1}`), contract.SchemaPet), KindSchema},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Error(t, tt.err)
			assert.Equal(t, tt.kind, KindOf(tt.err))
		})
	}
}

func TestViolationCarriesResponse(t *testing.T) {
	err := CheckStatusCode(response(http.StatusNotFound, `{"code":1}`), http.StatusOK)

	var v Violation
	require.True(t, errors.As(fmt.Errorf("read: %w", err), &v))
	assert.Equal(t, http.StatusNotFound, v.Status)
	assert.Equal(t, `{"code":1}`, v.Body)
	assert.Equal(t, `unexpected status 404; expected 200. Body: {"code":1}`, v.Error())
}

func TestViolationWithoutResponseOmitsBody(t *testing.T) {
	err := CheckJSON(nil)
	assert.Equal(t, "no response; expected a JSON body", err.Error())
	assert.Empty(t, KindOf(errors.New("plain")))
}

func TestViolationTemplatesAreCopied(t *testing.T) {
	_ = ErrStatus.WithDetail("changed %d", 1)
	assert.Equal(t, "unexpected status", ErrStatus.Detail)
}
