package petstore

import (
	"context"
	"fmt"

	"github.com/oapi-codegen/runtime"
)

// PetPath builds /pet/{petId} with simple-style path encoding. id may be any
// scalar so negative cases can address non-numeric ids.
func PetPath(id any) (string, error) {
	param, err := runtime.StyleParamWithLocation("simple", false, "petId", runtime.ParamLocationPath, id)
	if err != nil {
		return "", fmt.Errorf("encode petId: %w", err)
	}
	return "/pet/" + param, nil
}

// CreatePet posts body to /pet.
func (c *Client) CreatePet(ctx context.Context, body any, opts ...RequestOption) (*Response, error) {
	return c.Post(ctx, "/pet", body, opts...)
}

// UpdatePet puts body to /pet.
func (c *Client) UpdatePet(ctx context.Context, body any, opts ...RequestOption) (*Response, error) {
	return c.Put(ctx, "/pet", body, opts...)
}

// GetPet fetches /pet/{id}.
func (c *Client) GetPet(ctx context.Context, id any, opts ...RequestOption) (*Response, error) {
	path, err := PetPath(id)
	if err != nil {
		return nil, err
	}
	return c.Get(ctx, path, opts...)
}

// DeletePet deletes /pet/{id}.
func (c *Client) DeletePet(ctx context.Context, id any, opts ...RequestOption) (*Response, error) {
	path, err := PetPath(id)
	if err != nil {
		return nil, err
	}
	return c.Delete(ctx, path, opts...)
}
