// Package fixtures prepares the values petstore tests start from: random pet
// payloads and a client bound to the active target.
package fixtures

import (
	"fmt"

	"github.com/Pallinder/go-randomdata"

	"github.com/Apurer/petstore-api-tests/internal/pets"
)

// Ranges for generated ids, inclusive.
const (
	MinPetID = 1
	MaxPetID = 100
)

// PetOption overrides a generated field.
type PetOption func(*pets.Pet)

// WithID fixes the pet id.
func WithID(id int64) PetOption {
	return func(p *pets.Pet) { p.ID = id }
}

// WithName fixes the pet name.
func WithName(name string) PetOption {
	return func(p *pets.Pet) { p.Name = name }
}

// WithStatus fixes the pet status.
func WithStatus(status pets.Status) PetOption {
	return func(p *pets.Pet) { p.Status = status }
}

// WithPhotoURLs replaces the generated photo list.
func WithPhotoURLs(urls ...string) PetOption {
	return func(p *pets.Pet) { p.PhotoURLs = append([]string{}, urls...) }
}

// NewPet generates a random, well-formed pet payload.
func NewPet(opts ...PetOption) pets.Pet {
	pet := pets.Pet{
		ID: randomID(),
		Category: &pets.Category{
			ID:   randomID(),
			Name: randomdata.Noun(),
		},
		Name:      randomdata.FirstName(randomdata.RandomGender),
		PhotoURLs: []string{imageURL()},
		Tags: []pets.Tag{
			{ID: randomID(), Name: randomdata.Noun()},
		},
		Status: pets.Status(randomdata.StringSample(
			string(pets.StatusAvailable),
			string(pets.StatusPending),
			string(pets.StatusSold),
		)),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&pet)
		}
	}
	return pet
}

// UnknownPetID returns a 12-digit id no test ever creates.
func UnknownPetID() int64 {
	return int64(randomdata.Number(100_000_000_000, 1_000_000_000_000))
}

func randomID() int64 {
	return int64(randomdata.Number(MinPetID, MaxPetID+1))
}

func imageURL() string {
	return fmt.Sprintf("https://picsum.photos/%d/%d", randomdata.Number(100, 1001), randomdata.Number(100, 1001))
}
