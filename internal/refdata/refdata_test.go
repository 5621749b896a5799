package refdata

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadCatalog(t *testing.T) {
	t.Parallel()
	genres, ratings, err := Load()
	require.NoError(t, err)

	require.Len(t, genres, 6)
	assert.Equal(t, uint(1), genres[0].ID)
	assert.Equal(t, "Comedy", genres[0].Name)
	assert.Equal(t, "Action", genres[5].Name)

	require.Len(t, ratings, 5)
	assert.Equal(t, "G", ratings[0].Name)
	assert.Equal(t, "NC-17", ratings[4].Name)

	// Ids are dense and ascending so they can serve as foreign keys directly.
	for i, g := range genres {
		assert.Equal(t, uint(i+1), g.ID)
	}
	for i, r := range ratings {
		assert.Equal(t, uint(i+1), r.ID)
	}
}
