package fixtures

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Apurer/petstore-api-tests/internal/pets"
	"github.com/Apurer/petstore-api-tests/internal/petstoretest"
)

func TestNewPet_IsWellFormed(t *testing.T) {
	for i := 0; i < 50; i++ {
		pet := NewPet()
		assert.GreaterOrEqual(t, pet.ID, int64(MinPetID))
		assert.LessOrEqual(t, pet.ID, int64(MaxPetID))
		require.NotNil(t, pet.Category)
		assert.GreaterOrEqual(t, pet.Category.ID, int64(MinPetID))
		assert.LessOrEqual(t, pet.Category.ID, int64(MaxPetID))
		assert.NotEmpty(t, pet.Category.Name)
		assert.NotEmpty(t, pet.Name)
		require.Len(t, pet.PhotoURLs, 1)
		assert.Regexp(t, `^https://picsum\.photos/\d+/\d+$`, pet.PhotoURLs[0])
		require.Len(t, pet.Tags, 1)
		assert.NotEmpty(t, pet.Tags[0].Name)
		assert.True(t, pet.Status.Valid(), pet.Status)
	}
}

func TestNewPet_Options(t *testing.T) {
	pet := NewPet(WithID(42), WithName("Rex"), WithStatus(pets.StatusSold), WithPhotoURLs("http://x/y.png"))
	assert.Equal(t, int64(42), pet.ID)
	assert.Equal(t, "Rex", pet.Name)
	assert.Equal(t, pets.StatusSold, pet.Status)
	assert.Equal(t, []string{"http://x/y.png"}, pet.PhotoURLs)
}

func TestUnknownPetID_HasTwelveDigits(t *testing.T) {
	for i := 0; i < 20; i++ {
		id := UnknownPetID()
		assert.GreaterOrEqual(t, id, int64(100_000_000_000))
		assert.Less(t, id, int64(1_000_000_000_000))
	}
}

func TestNewEnv_UsesFakeByDefault(t *testing.T) {
	t.Setenv("PETSTORE_LIVE", "false")
	t.Setenv("LOG_DIR", t.TempDir())

	env := NewEnv(t)
	require.NotNil(t, env.Fake)
	assert.Equal(t, env.Fake.BaseURL(), env.Client.BaseURL())

	resp, err := env.Client.GetPet(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	require.Len(t, env.Fake.Requests(), 1)
	assert.Equal(t, env.Config.APIKey, env.Fake.Requests()[0].Header.Get("api_key"))
}

func TestTarget_PointsAtFakeUnderBasePath(t *testing.T) {
	t.Setenv("PETSTORE_LIVE", "false")
	t.Setenv("LOG_DIR", t.TempDir())

	target := Target(t)
	assert.True(t, strings.HasPrefix(target, "http://127.0.0.1:"), target)
	assert.True(t, strings.HasSuffix(target, petstoretest.BasePath), target)
}
