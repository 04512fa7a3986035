package words

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Parallel()
	corpus, err := Load()
	require.NoError(t, err)

	assert.True(t, corpus.HasRegion("Argentina"))
	assert.True(t, corpus.HasRegion("Internacional"))
	assert.False(t, corpus.HasRegion("Atlantida"))

	byRegion := corpus.CategoriesByRegion()
	require.Contains(t, byRegion, "Argentina")
	assert.NotEmpty(t, byRegion["Argentina"])
}

func TestCategories_Sorted(t *testing.T) {
	t.Parallel()
	corpus := Corpus{
		"Region": {
			"Zeta":  {"z"},
			"Alfa":  {"a"},
			"Medio": {"m"},
		},
	}

	assert.Equal(t, []string{"Alfa", "Medio", "Zeta"}, corpus.Categories("Region"))
}

func TestPick_UnknownRegion(t *testing.T) {
	t.Parallel()
	corpus, err := Load()
	require.NoError(t, err)

	_, _, err = NewSelector(corpus).Pick("Atlantida", nil)
	assert.ErrorIs(t, err, ErrUnknownRegion)
}

func TestPick_RespectsBannedCategories(t *testing.T) {
	t.Parallel()
	corpus := Corpus{
		"Region": {
			"Permitida": {"palabra"},
			"Vetada":    {"otra"},
		},
	}
	selector := NewSelector(corpus)

	for i := 0; i < 100; i++ {
		category, word, err := selector.Pick("Region", []string{"Vetada"})
		require.NoError(t, err)
		assert.Equal(t, "Permitida", category)
		assert.Equal(t, "palabra", word)
	}
}

func TestPick_AllCategoriesBanned(t *testing.T) {
	t.Parallel()
	corpus := Corpus{
		"Region": {
			"Una":  {"a"},
			"Otra": {"b"},
		},
	}

	_, _, err := NewSelector(corpus).Pick("Region", []string{"Una", "Otra"})
	assert.ErrorIs(t, err, ErrNoCategories)
}

func TestPick_WordBelongsToCategory(t *testing.T) {
	t.Parallel()
	corpus, err := Load()
	require.NoError(t, err)
	selector := NewSelector(corpus)

	for i := 0; i < 50; i++ {
		category, word, err := selector.Pick("Internacional", nil)
		require.NoError(t, err)
		assert.Contains(t, corpus["Internacional"], category)
		assert.Contains(t, corpus["Internacional"][category], word)
	}
}

func TestPick_Deterministic(t *testing.T) {
	t.Parallel()
	corpus := Corpus{
		"Region": {
			"Alfa": {"a1", "a2"},
			"Beta": {"b1", "b2"},
		},
	}
	selector := NewSelector(corpus)
	selector.intn = func(n int) int { return n - 1 }

	category, word, err := selector.Pick("Region", nil)
	require.NoError(t, err)
	assert.Equal(t, "Beta", category, "categories are considered in sorted order")
	assert.Equal(t, "b2", word)
}
