// Package contract validates petstore bodies against the embedded OpenAPI
// document.
package contract

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/getkin/kin-openapi/openapi3"
)

// Schema names available in the embedded document.
const (
	SchemaPet         = "Pet"
	SchemaAPIResponse = "ApiResponse"
)

//go:embed petstore.yaml
var petstoreSpec []byte

var (
	loadOnce sync.Once
	loaded   *openapi3.T
	loadErr  error
)

// Document returns the parsed and validated petstore document.
func Document() (*openapi3.T, error) {
	loadOnce.Do(func() {
		loader := openapi3.NewLoader()
		doc, err := loader.LoadFromData(petstoreSpec)
		if err != nil {
			loadErr = fmt.Errorf("load petstore openapi: %w", err)
			return
		}
		if err := doc.Validate(context.Background()); err != nil {
			loadErr = fmt.Errorf("validate petstore openapi: %w", err)
			return
		}
		loaded = doc
	})
	return loaded, loadErr
}

// Validate checks a JSON body against the named component schema.
func Validate(schema string, body []byte) error {
	doc, err := Document()
	if err != nil {
		return err
	}
	if doc.Components == nil {
		return fmt.Errorf("petstore openapi has no components")
	}
	ref, ok := doc.Components.Schemas[schema]
	if !ok || ref == nil || ref.Value == nil {
		return fmt.Errorf("unknown schema %q", schema)
	}
	var value any
	if err := json.Unmarshal(body, &value); err != nil {
		return fmt.Errorf("body is not valid JSON: %w", err)
	}
	if err := ref.Value.VisitJSON(value); err != nil {
		return fmt.Errorf("body does not match %s schema: %w", schema, err)
	}
	return nil
}
