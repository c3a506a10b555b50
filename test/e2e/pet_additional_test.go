package e2e_test

import (
	"context"
	"encoding/json"
	"math/rand/v2"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Apurer/petstore-api-tests/internal/contract"
	"github.com/Apurer/petstore-api-tests/internal/fixtures"
	"github.com/Apurer/petstore-api-tests/internal/petstoretest"
	"github.com/Apurer/petstore-api-tests/internal/pets"
)

func TestCreatePet_EachStatus(t *testing.T) {
	for _, status := range pets.Statuses() {
		t.Run(string(status), func(t *testing.T) {
			env := fixtures.NewEnv(t)
			pet := fixtures.NewPet(fixtures.WithStatus(status), fixtures.WithPhotoURLs("https://example.com/ok.png"))

			resp, err := env.Client.CreatePet(context.Background(), pet)
			require.NoError(t, err)
			t.Logf("API JSON response: %s", resp.Text())

			env.Validator.StatusCode(t, resp, http.StatusOK)
			env.Validator.JSONResponse(t, resp)
			env.Validator.JSONValue(t, resp, "id", pet.ID)
			env.Validator.JSONValue(t, resp, "status", string(status))
		})
	}
}

func TestGetPet_ContractTypes(t *testing.T) {
	// The fake hides the new pet from the first read, as the live API may.
	env := fixtures.NewEnv(t, fixtures.WithFakeOptions(petstoretest.WithReadLag(1)))
	ctx := context.Background()
	pet := pets.Pet{
		ID:        int64(1000 + rand.IntN(999000)),
		Category:  &pets.Category{ID: 42, Name: "dark"},
		Name:      "Troy",
		PhotoURLs: []string{"https://example.com/ok.png"},
		Tags:      []pets.Tag{{ID: 23, Name: "see"}},
		Status:    pets.StatusPending,
	}

	posted, err := env.Client.CreatePet(ctx, pet)
	require.NoError(t, err)
	env.Validator.StatusCode(t, posted, http.StatusOK)
	var created pets.Pet
	require.NoError(t, posted.JSON(&created))
	t.Logf("POST JSON: %s", posted.Text())

	var fetched map[string]any
	for attempt := 0; attempt < 3; attempt++ {
		resp, err := env.Client.GetPet(ctx, created.ID)
		require.NoError(t, err)
		if resp.StatusCode == http.StatusOK {
			env.Validator.MatchesSchema(t, resp, contract.SchemaPet)
			fetched, err = resp.Object()
			require.NoError(t, err)
			break
		}
		time.Sleep(2 * time.Second)
	}
	require.NotNil(t, fetched, "pet %d not found after retries", created.ID)
	t.Logf("GET JSON: %v", fetched)

	id, ok := fetched["id"].(json.Number)
	require.True(t, ok, "id is not a number: %T", fetched["id"])
	_, err = id.Int64()
	assert.NoError(t, err, "id is not an integer")
	assert.IsType(t, "", fetched["name"])
	urls, ok := fetched["photoUrls"].([]any)
	require.True(t, ok, "photoUrls is not a list: %T", fetched["photoUrls"])
	for _, u := range urls {
		assert.IsType(t, "", u)
	}
}

func TestUpdatePet_TwiceIsIdempotent(t *testing.T) {
	env := fixtures.NewEnv(t)
	ctx := context.Background()
	pet := fixtures.NewPet(fixtures.WithPhotoURLs("https://example.com/ok.png"))

	created, err := env.Client.CreatePet(ctx, pet)
	require.NoError(t, err)
	env.Validator.StatusCode(t, created, http.StatusOK)

	pet.Name = "SameName"
	pet.Status = pets.StatusAvailable
	first, err := env.Client.UpdatePet(ctx, pet)
	require.NoError(t, err)
	env.Validator.StatusCode(t, first, http.StatusOK)
	second, err := env.Client.UpdatePet(ctx, pet)
	require.NoError(t, err)
	env.Validator.StatusCode(t, second, http.StatusOK)
	t.Logf("PUT #1 JSON: %s", first.Text())
	t.Logf("PUT #2 JSON: %s", second.Text())

	env.Validator.JSONValue(t, second, "id", pet.ID)
	env.Validator.JSONValue(t, second, "name", "SameName")
	env.Validator.JSONValue(t, second, "status", "available")
}

func TestDeletePet_CreatedPet(t *testing.T) {
	env := fixtures.NewEnv(t)
	ctx := context.Background()
	pet := fixtures.NewPet(fixtures.WithPhotoURLs("https://en.wikipedia.org/wiki/File:Gera062005sed.jpg"))

	created, err := env.Client.CreatePet(ctx, pet)
	require.NoError(t, err)
	env.Validator.StatusCode(t, created, http.StatusOK)

	resp, err := env.Client.DeletePet(ctx, pet.ID)
	require.NoError(t, err)
	t.Logf("DELETE response: %d %s", resp.StatusCode, resp.Text())

	env.Validator.StatusCodeIn(t, resp, http.StatusOK, http.StatusNotFound)
}
