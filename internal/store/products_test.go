package store

import (
	"testing"

	"github.com/chitramadarakhandi/minimart/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchProductsMatchesNameAndCategory(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.CreateProduct(&models.Product{Name: "Blue Mug", Category: "kitchen", Price: 8.00}))
	require.NoError(t, s.CreateProduct(&models.Product{Name: "Desk Lamp", Category: "office", Price: 20.00}))

	byName, err := s.SearchProducts("mug", 12)
	require.NoError(t, err)
	require.Len(t, byName, 1)
	assert.Equal(t, "Blue Mug", byName[0].Name)

	byCategory, err := s.SearchProducts("office", 12)
	require.NoError(t, err)
	require.Len(t, byCategory, 1)
	assert.Equal(t, "Desk Lamp", byCategory[0].Name)

	recent, err := s.SearchProducts("", 12)
	require.NoError(t, err)
	assert.Len(t, recent, 2)

	none, err := s.SearchProducts("garden", 12)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestGetProductByIDMissingReturnsNil(t *testing.T) {
	s := newTestStore(t)

	p, err := s.GetProductByID(12345)
	require.NoError(t, err)
	assert.Nil(t, p)
}

func TestCreateUserDuplicateEmailFails(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.CreateUser("A", "dup@example.com", "hash", "customer"))

	err := s.CreateUser("B", "dup@example.com", "hash", "customer")
	assert.Error(t, err)
}
