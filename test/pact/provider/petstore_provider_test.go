//go:build pact
// +build pact

package provider_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/pact-foundation/pact-go/v2/models"
	pactprovider "github.com/pact-foundation/pact-go/v2/provider"
	"github.com/stretchr/testify/require"

	"github.com/Apurer/petstore-api-tests/internal/petstoretest"
	pacttest "github.com/Apurer/petstore-api-tests/test/pact"
)

// TestFakePetstoreHonoursPact keeps the in-process fake in step with the
// interactions the client relies on.
func TestFakePetstoreHonoursPact(t *testing.T) {
	fake := petstoretest.Start(t)
	pactFile := filepath.ToSlash(pacttest.PactFile(t))
	if _, err := os.Stat(pactFile); errors.Is(err, os.ErrNotExist) {
		t.Fatalf("pact file not found at %s - run the pact consumer tests first", pactFile)
	} else {
		require.NoError(t, err)
	}

	reset := func(setup bool, _ models.ProviderState) (models.ProviderStateResponse, error) {
		fake.Store().Reset()
		return nil, nil
	}
	stateHandlers := models.StateHandlers{
		pacttest.StatePetsBaseline: reset,
		pacttest.StatePetMissing:   reset,
		pacttest.StatePetExists: func(setup bool, _ models.ProviderState) (models.ProviderStateResponse, error) {
			fake.Store().Reset()
			if setup {
				fake.Store().Save(pacttest.ExamplePet())
			}
			return nil, nil
		},
	}

	verifier := pactprovider.NewVerifier()
	err := verifier.VerifyProvider(t, pactprovider.VerifyRequest{
		ProviderBaseURL: fake.URL(),
		Provider:        pacttest.ProviderName,
		PactFiles:       []string{pactFile},
		StateHandlers:   stateHandlers,
		BeforeEach: func() error {
			fake.Store().Reset()
			return nil
		},
	})
	require.NoError(t, err)
}
