package snapshot

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Huzeyfe22/otomatik-quote/internal/domain/library"
	"github.com/Huzeyfe22/otomatik-quote/internal/domain/quote"
)

func TestStore_LoadMissingFileReturnsEmpty(t *testing.T) {
	st := NewStore(filepath.Join(t.TempDir(), "workspace.json"))
	ws, err := st.Load()
	require.NoError(t, err)
	assert.Empty(t, ws.SavedQuotes)
	assert.Nil(t, ws.CurrentQuote)
}

func TestStore_SaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "workspace.json")
	st := NewStore(path)

	lib := library.NewStore()
	ws := &Workspace{
		Library: lib.Snapshot(),
		CurrentQuote: &quote.Quote{
			ID:            "q1",
			Name:          "Lakeside",
			SelectedTerms: map[string][]library.Entity{},
		},
		SavedQuotes: []quote.Quote{{ID: "q2", Name: "Hillside"}},
	}
	require.NoError(t, st.Save(ws))

	got, err := st.Load()
	require.NoError(t, err)
	assert.Equal(t, "q1", got.CurrentQuote.ID)
	require.Len(t, got.SavedQuotes, 1)
	assert.Equal(t, "Hillside", got.SavedQuotes[0].Name)
	assert.NotEmpty(t, got.Library.TermCategories)
}

func TestStore_SaveLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	st := NewStore(filepath.Join(dir, "workspace.json"))
	require.NoError(t, st.Save(&Workspace{}))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "workspace.json", entries[0].Name())
}

func TestStore_LoadCorruptFileErrors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "workspace.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))
	_, err := NewStore(path).Load()
	assert.Error(t, err)
}

func TestArchive_RoundTrip(t *testing.T) {
	quotes := []quote.Quote{
		{ID: "q1", Name: "Lakeside", QuoteNumber: "20260314/1", TotalPrice: 900},
		{ID: "q2", Name: "Hillside", QuoteNumber: "20260314/2", TotalPrice: 1500},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteArchive(&buf, quotes))
	require.NotZero(t, buf.Len())

	got, err := ReadArchive(&buf)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "q1", got[0].ID)
	assert.Equal(t, 1500.0, got[1].TotalPrice)
}

func TestArchive_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteArchive(&buf, nil))
	got, err := ReadArchive(&buf)
	require.NoError(t, err)
	assert.Empty(t, got)
}
