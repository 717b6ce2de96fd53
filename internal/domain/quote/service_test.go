package quote

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Huzeyfe22/otomatik-quote/internal/core/apperror"
	"github.com/Huzeyfe22/otomatik-quote/internal/domain/library"
)

func newTestStore(t *testing.T) *library.Store {
	t.Helper()
	st := library.NewStore()
	_, err := st.AddSystemItem(library.CollectionProductTypes, library.Entity{Name: "Casement Window"})
	require.NoError(t, err)
	_, err = st.AddSystemItem(library.CollectionProductSeries, library.Entity{Name: "Series 400"})
	require.NoError(t, err)
	_, err = st.AddSystemItem(library.CollectionUnits, library.Entity{Name: "Inches"})
	require.NoError(t, err)
	return st
}

func testItem(st *library.Store) Item {
	types, _ := st.SystemItems(library.CollectionProductTypes)
	series, _ := st.SystemItems(library.CollectionProductSeries)
	units, _ := st.SystemItems(library.CollectionUnits)
	return Item{
		ProductType:    types[0],
		ProductSeries:  series[0],
		Unit:           units[0],
		Width:          36,
		Height:         48,
		Quantity:       2,
		Price:          450,
		ShowDimensions: true,
	}
}

func TestService_CurrentInitializesWithSettingsTax(t *testing.T) {
	st := newTestStore(t)
	st.UpdateSettings(library.CompanySettings{TaxRate: 13})
	svc := NewService(st)

	q := svc.Current()
	require.NotNil(t, q)
	assert.NotEmpty(t, q.ID)
	assert.Equal(t, "New Quote", q.Name)
	assert.Equal(t, 13.0, q.TaxRate)
	assert.True(t, q.HasCoverPage)
	assert.Empty(t, q.Items)
}

func TestService_AddItemRecomputesTotal(t *testing.T) {
	st := newTestStore(t)
	svc := NewService(st)

	q, err := svc.AddItem(testItem(st))
	require.NoError(t, err)
	require.Len(t, q.Items, 1)
	assert.NotEmpty(t, q.Items[0].ID)
	assert.Equal(t, 450.0, q.TotalPrice)

	q, err = svc.AddItem(testItem(st))
	require.NoError(t, err)
	assert.Equal(t, 900.0, q.TotalPrice)
}

func TestService_AddItemValidates(t *testing.T) {
	st := newTestStore(t)
	svc := NewService(st)

	_, err := svc.AddItem(Item{})
	require.Error(t, err)
	assert.True(t, apperror.IsValidation(err))
}

func TestService_UpdateItemKeepsID(t *testing.T) {
	st := newTestStore(t)
	svc := NewService(st)

	q, err := svc.AddItem(testItem(st))
	require.NoError(t, err)
	itemID := q.Items[0].ID

	upd := testItem(st)
	upd.Price = 600
	q, err = svc.UpdateItem(itemID, upd)
	require.NoError(t, err)
	assert.Equal(t, itemID, q.Items[0].ID)
	assert.Equal(t, 600.0, q.TotalPrice)
}

func TestService_RemoveItem(t *testing.T) {
	st := newTestStore(t)
	svc := NewService(st)

	q, err := svc.AddItem(testItem(st))
	require.NoError(t, err)

	q, err = svc.RemoveItem(q.Items[0].ID)
	require.NoError(t, err)
	assert.Empty(t, q.Items)
	assert.Equal(t, 0.0, q.TotalPrice)

	_, err = svc.RemoveItem("missing")
	assert.True(t, apperror.IsNotFound(err))
}

func TestService_DuplicateItemGetsNewID(t *testing.T) {
	st := newTestStore(t)
	svc := NewService(st)

	q, err := svc.AddItem(testItem(st))
	require.NoError(t, err)

	q, err = svc.DuplicateItem(q.Items[0].ID)
	require.NoError(t, err)
	require.Len(t, q.Items, 2)
	assert.NotEqual(t, q.Items[0].ID, q.Items[1].ID)
	assert.Equal(t, q.Items[0].Price, q.Items[1].Price)
	assert.Equal(t, 900.0, q.TotalPrice)
}

func TestService_SaveLoadDelete(t *testing.T) {
	st := newTestStore(t)
	svc := NewService(st)

	_, err := svc.AddItem(testItem(st))
	require.NoError(t, err)
	saved, err := svc.Save()
	require.NoError(t, err)

	// Re-saving the same id replaces, never duplicates.
	_, err = svc.UpdateNotes("note", true)
	require.NoError(t, err)
	_, err = svc.Save()
	require.NoError(t, err)
	require.Len(t, svc.Saved(), 1)
	assert.Equal(t, "note", svc.Saved()[0].ExtraNotes)

	loaded, err := svc.Load(saved.ID)
	require.NoError(t, err)
	assert.Equal(t, saved.ID, loaded.ID)

	require.NoError(t, svc.DeleteSaved(saved.ID))
	assert.Empty(t, svc.Saved())

	// The current quote survives deletion of its origin.
	cur := svc.Current()
	assert.Equal(t, saved.ID, cur.ID)
}

func TestService_DuplicateSavedAppendsCopySuffix(t *testing.T) {
	st := newTestStore(t)
	svc := NewService(st)

	_, err := svc.AddItem(testItem(st))
	require.NoError(t, err)
	saved, err := svc.Save()
	require.NoError(t, err)

	dup, err := svc.Duplicate(saved.ID)
	require.NoError(t, err)
	assert.NotEqual(t, saved.ID, dup.ID)
	assert.Equal(t, saved.Name+" (Copy)", dup.Name)
	assert.Len(t, svc.Saved(), 2)
}

func TestService_NextNumberScansSavedQuotes(t *testing.T) {
	st := newTestStore(t)
	svc := NewService(st)
	now := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)

	q, err := svc.NextNumber(now)
	require.NoError(t, err)
	assert.Equal(t, "20260314/1", q.QuoteNumber)

	_, err = svc.Save()
	require.NoError(t, err)

	// A fresh quote the same day continues the sequence.
	_, err = svc.SetCurrent(&Quote{Name: "Second"})
	require.NoError(t, err)
	q, err = svc.NextNumber(now)
	require.NoError(t, err)
	assert.Equal(t, "20260314/2", q.QuoteNumber)
}

func TestService_UpdateMetaManualPricing(t *testing.T) {
	st := newTestStore(t)
	svc := NewService(st)

	manual := true
	sub := 500.0
	q, err := svc.UpdateMeta(MetaPatch{IsManualPricing: &manual, ManualSubtotal: &sub})
	require.NoError(t, err)
	assert.True(t, q.IsManualPricing)
	require.NotNil(t, q.ManualSubtotal)
	assert.Equal(t, 500.0, *q.ManualSubtotal)
}

func TestService_SetCurrentRecomputesTotal(t *testing.T) {
	st := newTestStore(t)
	svc := NewService(st)

	incoming := &Quote{
		Name:       "Imported",
		Items:      []Item{{Price: 100, Quantity: 1}, {Price: 250, Quantity: 1}},
		TotalPrice: 99999,
	}
	q, err := svc.SetCurrent(incoming)
	require.NoError(t, err)
	assert.Equal(t, 350.0, q.TotalPrice)
	assert.NotEmpty(t, q.ID)
}
