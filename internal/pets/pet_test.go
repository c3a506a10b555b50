package pets

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPayload_MatchesJSONShape(t *testing.T) {
	pet := Pet{
		ID:        42,
		Category:  &Category{ID: 1, Name: "dogs"},
		Name:      "Rex",
		PhotoURLs: []string{"http://x/y.png"},
		Tags:      []Tag{{ID: 23, Name: "see"}},
		Status:    StatusAvailable,
	}

	fromStruct, err := json.Marshal(pet)
	require.NoError(t, err)
	fromPayload, err := json.Marshal(pet.Payload())
	require.NoError(t, err)
	assert.JSONEq(t, string(fromStruct), string(fromPayload))
}

func TestPayload_WithoutAndWithDoNotMutate(t *testing.T) {
	base := Pet{ID: 7, Name: "Troy", PhotoURLs: []string{"u"}, Status: StatusPending}.Payload()

	noName := base.Without("name")
	badID := base.With("id", "abc")

	assert.NotContains(t, noName, "name")
	assert.Equal(t, "abc", badID["id"])
	assert.Equal(t, int64(7), base["id"])
	assert.Equal(t, "Troy", base["name"])
}

func TestClone_IsDeep(t *testing.T) {
	pet := Pet{Category: &Category{ID: 1}, PhotoURLs: []string{"a"}, Tags: []Tag{{ID: 1}}}
	clone := pet.Clone()
	clone.Category.ID = 2
	clone.PhotoURLs[0] = "b"
	clone.Tags[0].ID = 3

	assert.Equal(t, int64(1), pet.Category.ID)
	assert.Equal(t, "a", pet.PhotoURLs[0])
	assert.Equal(t, int64(1), pet.Tags[0].ID)
}

func TestStatusValid(t *testing.T) {
	for _, s := range Statuses() {
		assert.True(t, s.Valid(), s)
	}
	assert.False(t, Status("adopted").Valid())
	assert.False(t, Status("").Valid())
}

func TestDecode(t *testing.T) {
	pet, err := Decode([]byte(`{"id":42,"name":"Rex","photoUrls":["http://x/y.png"],"tags":[],"status":"available"}`))
	require.NoError(t, err)
	assert.Equal(t, int64(42), pet.ID)
	assert.Equal(t, StatusAvailable, pet.Status)

	_, err = Decode([]byte(`{"id":"abc"}`))
	require.Error(t, err)
}
