package library

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Huzeyfe22/otomatik-quote/internal/core/apperror"
)

func TestStore_AddAttributeCategoryAppendsToOrder(t *testing.T) {
	s := NewStore()

	glazing, err := s.AddAttributeCategory("Glazing", AritySingle)
	require.NoError(t, err)
	color, err := s.AddAttributeCategory("Color", ArityMultiple)
	require.NoError(t, err)

	order := s.Settings().CategoryOrder
	assert.Equal(t, []string{
		SysProductTypes, SysProductSeries, SysUnits, glazing.ID, color.ID,
	}, order)
}

func TestStore_ReorderCategoriesPartialOrder(t *testing.T) {
	s := NewStore()
	glazing, err := s.AddAttributeCategory("Glazing", AritySingle)
	require.NoError(t, err)
	color, err := s.AddAttributeCategory("Color", ArityMultiple)
	require.NoError(t, err)

	// Unknown ids are dropped, known categories absent from the
	// request are appended rather than lost.
	got := s.ReorderCategories([]string{color.ID, "ghost", SysUnits})

	assert.Equal(t, []string{
		color.ID, SysUnits, SysProductTypes, SysProductSeries, glazing.ID,
	}, got)
	assert.Equal(t, got, s.Settings().CategoryOrder)
}

func TestStore_DeleteAttributeCategoryCleansOrder(t *testing.T) {
	s := NewStore()
	glazing, err := s.AddAttributeCategory("Glazing", AritySingle)
	require.NoError(t, err)
	color, err := s.AddAttributeCategory("Color", ArityMultiple)
	require.NoError(t, err)
	_, err = s.AddAttributeItem(color.ID, Entity{Name: "Black"})
	require.NoError(t, err)

	require.NoError(t, s.DeleteAttributeCategory(glazing.ID))

	assert.NotContains(t, s.Settings().CategoryOrder, glazing.ID)

	// The surviving category and its values are untouched.
	cats := s.AttributeCategories()
	require.Len(t, cats, 1)
	assert.Equal(t, color.ID, cats[0].ID)
	require.Len(t, cats[0].Items, 1)
	assert.Equal(t, "Black", cats[0].Items[0].Name)

	err = s.DeleteAttributeCategory(glazing.ID)
	require.Error(t, err)
	assert.True(t, apperror.IsNotFound(err))
}

func TestStore_DeleteSystemItemNoCascade(t *testing.T) {
	s := NewStore()
	casement, err := s.AddSystemItem(CollectionProductTypes, Entity{Name: "Casement Window"})
	require.NoError(t, err)
	_, err = s.AddSystemItem(CollectionProductSeries, Entity{Name: "Series 400"})
	require.NoError(t, err)

	before := s.Snapshot()
	require.NoError(t, s.DeleteSystemItem(CollectionProductTypes, casement.ID))

	// Only the named collection changes, nothing else in the state.
	after := s.Snapshot()
	assert.Empty(t, after.ProductTypes)
	assert.Equal(t, before.ProductSeries, after.ProductSeries)
	assert.Equal(t, before.AttributeCategories, after.AttributeCategories)
	assert.Equal(t, before.TermCategories, after.TermCategories)

	// The snapshot taken before the delete keeps the removed entity.
	require.Len(t, before.ProductTypes, 1)
	assert.Equal(t, "Casement Window", before.ProductTypes[0].Name)
}

func TestStore_UpdateCategoryLabel(t *testing.T) {
	s := NewStore()

	require.NoError(t, s.UpdateCategoryLabel(LabelKeyProductTypes, "Window Style"))
	assert.Equal(t, "Window Style", s.Settings().CategoryLabels[LabelKeyProductTypes])

	err := s.UpdateCategoryLabel("colors", "Colour")
	require.Error(t, err)
	assert.True(t, apperror.IsValidation(err))
}
