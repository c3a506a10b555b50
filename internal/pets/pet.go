// Package pets holds the pet payload exchanged with the petstore API.
package pets

import (
	"encoding/json"
	"fmt"
)

// Status represents the lifecycle state of a pet inside the store catalog.
type Status string

const (
	StatusAvailable Status = "available"
	StatusPending   Status = "pending"
	StatusSold      Status = "sold"
)

// Statuses lists every status the API accepts.
func Statuses() []Status {
	return []Status{StatusAvailable, StatusPending, StatusSold}
}

// Valid reports whether s is a known lifecycle value.
func (s Status) Valid() bool {
	switch s {
	case StatusAvailable, StatusPending, StatusSold:
		return true
	}
	return false
}

// Category groups pets in the catalog.
type Category struct {
	ID   int64  `json:"id"`
	Name string `json:"name,omitempty"`
}

// Tag is a lightweight marker attached to pets for filtering.
type Tag struct {
	ID   int64  `json:"id"`
	Name string `json:"name,omitempty"`
}

// Pet is the request and response body of the /pet endpoints.
type Pet struct {
	ID        int64     `json:"id"`
	Category  *Category `json:"category,omitempty"`
	Name      string    `json:"name,omitempty"`
	PhotoURLs []string  `json:"photoUrls"`
	Tags      []Tag     `json:"tags"`
	Status    Status    `json:"status,omitempty"`
}

// Payload is a loosely typed pet body, used when a test needs to drop a
// field or send a value of the wrong type.
type Payload map[string]any

// Payload returns the pet as a mutable map keyed by JSON field names.
func (p Pet) Payload() Payload {
	out := Payload{
		"id":        p.ID,
		"name":      p.Name,
		"photoUrls": append([]string{}, p.PhotoURLs...),
		"tags":      tagPayloads(p.Tags),
		"status":    string(p.Status),
	}
	if p.Category != nil {
		out["category"] = map[string]any{"id": p.Category.ID, "name": p.Category.Name}
	}
	return out
}

// Without returns a copy of the payload minus the given keys.
func (p Payload) Without(keys ...string) Payload {
	out := make(Payload, len(p))
	for k, v := range p {
		out[k] = v
	}
	for _, k := range keys {
		delete(out, k)
	}
	return out
}

// With returns a copy of the payload with key set to value.
func (p Payload) With(key string, value any) Payload {
	out := p.Without()
	out[key] = value
	return out
}

// Clone returns a deep copy so a test can mutate the pet without touching
// the fixture value.
func (p Pet) Clone() Pet {
	clone := p
	if p.Category != nil {
		category := *p.Category
		clone.Category = &category
	}
	clone.PhotoURLs = append([]string{}, p.PhotoURLs...)
	clone.Tags = append([]Tag{}, p.Tags...)
	return clone
}

// Decode parses a pet from a JSON body.
func Decode(body []byte) (Pet, error) {
	var p Pet
	if err := json.Unmarshal(body, &p); err != nil {
		return Pet{}, fmt.Errorf("decode pet: %w", err)
	}
	return p, nil
}

func tagPayloads(tags []Tag) []map[string]any {
	out := make([]map[string]any, 0, len(tags))
	for _, t := range tags {
		out = append(out, map[string]any{"id": t.ID, "name": t.Name})
	}
	return out
}
