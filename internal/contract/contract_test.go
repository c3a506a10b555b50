package contract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocument_Loads(t *testing.T) {
	doc, err := Document()
	require.NoError(t, err)
	require.NotNil(t, doc.Paths.Find("/pet/{petId}"))
	assert.Contains(t, doc.Components.Schemas, SchemaPet)
}

func TestValidate_Pet(t *testing.T) {
	cases := []struct {
		name    string
		body    string
		wantErr bool
	}{
		{name: "full pet", body: `{"id":42,"category":{"id":1,"name":"dogs"},"name":"Rex","photoUrls":["http://x/y.png"],"tags":[{"id":1,"name":"a"}],"status":"available"}`},
		{name: "minimal pet", body: `{"name":"Rex","photoUrls":[]}`},
		{name: "string id", body: `{"id":"abc","name":"Rex","photoUrls":[]}`, wantErr: true},
		{name: "fractional id", body: `{"id":1.5,"name":"Rex","photoUrls":[]}`, wantErr: true},
		{name: "unknown status", body: `{"name":"Rex","photoUrls":[],"status":"adopted"}`, wantErr: true},
		{name: "photo not string", body: `{"name":"Rex","photoUrls":[1]}`, wantErr: true},
		{name: "missing name", body: `{"id":1,"photoUrls":[]}`, wantErr: true},
		{name: "not json", body: `<html>`, wantErr: true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := Validate(SchemaPet, []byte(tc.body))
			if tc.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestValidate_UnknownSchema(t *testing.T) {
	require.Error(t, Validate("Order", []byte(`{}`)))
}
