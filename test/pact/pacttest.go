//go:build pact
// +build pact

package pacttest

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/Apurer/petstore-api-tests/internal/pets"
)

const (
	ProviderName = "petstore-api"
	ConsumerName = "petstore-api-tests"

	StatePetsBaseline = "pets baseline"
	StatePetExists    = "pet with id 101 exists"
	StatePetMissing   = "no pet with id 404"
)

const (
	ExistingPetID int64 = 101
	MissingPetID  int64 = 404
)

const (
	examplePhotoURL = "https://example.pact/pets/fluffy.png"
	examplePetName  = "Fluffy Pact Cat"
)

// PactDir returns the workspace-level directory for generated pact files.
func PactDir(t testing.TB) string {
	t.Helper()
	dir := filepath.Join(projectRoot(t), "pacts")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create pact dir: %v", err)
	}
	return dir
}

// PactFile returns the canonical pact file path for this consumer.
func PactFile(t testing.TB) string {
	t.Helper()
	return filepath.Join(PactDir(t), ConsumerName+"-"+ProviderName+".json")
}

// LogDir returns the log output directory for pact-go.
func LogDir(t testing.TB) string {
	t.Helper()
	dir := filepath.Join(projectRoot(t), "bin", "pact-logs")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create pact log dir: %v", err)
	}
	return dir
}

// ExamplePet provides stable test data for pact interactions.
func ExamplePet() pets.Pet {
	return pets.Pet{
		ID:        ExistingPetID,
		Name:      examplePetName,
		PhotoURLs: []string{examplePhotoURL},
		Status:    pets.StatusAvailable,
	}
}

// ExamplePetPayload is ExamplePet limited to the fields the interactions match.
func ExamplePetPayload() pets.Payload {
	return ExamplePet().Payload().Without("tags")
}

// projectRoot walks up from this file to the workspace root.
func projectRoot(t testing.TB) string {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("cannot determine caller for pact paths")
	}
	return filepath.Clean(filepath.Join(filepath.Dir(file), "..", ".."))
}
