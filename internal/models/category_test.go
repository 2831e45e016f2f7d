package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCategories(t *testing.T) {
	categories := DefaultCategories()
	require.Len(t, categories, 5)

	prefixes := map[string]string{}
	for _, c := range categories {
		prefixes[c.Name] = c.Prefix
	}
	assert.Equal(t, map[string]string{
		"Desayunos": "des",
		"Almuerzos": "alm",
		"Cenas":     "cen",
		"Postres":   "pos",
		"Bebidas":   "beb",
	}, prefixes)
}

func TestCategorySetLookups(t *testing.T) {
	set := NewCategorySet(DefaultCategories())

	desayunos, ok := set.ByName("Desayunos")
	require.True(t, ok)
	assert.Equal(t, 1, desayunos.ID)
	assert.Equal(t, "des", desayunos.Prefix)

	postres, ok := set.ByID(4)
	require.True(t, ok)
	assert.Equal(t, "Postres", postres.Name)

	_, ok = set.ByName("Meriendas")
	assert.False(t, ok)
	_, ok = set.ByID(99)
	assert.False(t, ok)
}

func TestValidDifficulty(t *testing.T) {
	for _, d := range Difficulties {
		assert.True(t, ValidDifficulty(d), d)
	}
	assert.False(t, ValidDifficulty("fácil"))
	assert.False(t, ValidDifficulty("Expert"))
	assert.False(t, ValidDifficulty(""))
}
