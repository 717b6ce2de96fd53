package v1

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Huzeyfe22/otomatik-quote/internal/domain/auth"
	"github.com/Huzeyfe22/otomatik-quote/internal/domain/library"
	"github.com/Huzeyfe22/otomatik-quote/internal/domain/quote"
	"github.com/Huzeyfe22/otomatik-quote/internal/infrastructure/render"
	"github.com/Huzeyfe22/otomatik-quote/pkg/logger"
)

func newTestRouter(t *testing.T, passwordHash string) (http.Handler, *quote.Service) {
	t.Helper()
	log, err := logger.New(logger.Config{Level: "error", OutputPaths: []string{"stdout"}})
	require.NoError(t, err)

	store := library.NewStore()
	quotes := quote.NewService(store)
	router := NewRouter(RouterConfig{
		Logger:   log,
		Library:  store,
		Quotes:   quotes,
		Auth:     auth.NewService(auth.DefaultConfig("test-secret"), passwordHash),
		Renderer: render.NewPDF(),
		Version:  "test",
	})
	return router, quotes
}

func testItem(name string, price float64) quote.Item {
	return quote.Item{
		ProductType:   library.Entity{ID: "pt_1", Name: name},
		ProductSeries: library.Entity{ID: "ps_1", Name: "Series 100"},
		Quantity:      1,
		Price:         price,
	}
}

func doJSON(t *testing.T, h http.Handler, method, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestRouter_HealthLive(t *testing.T) {
	router, _ := newTestRouter(t, "")

	w := doJSON(t, router, http.MethodGet, "/health/live", nil, nil)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRouter_QuoteLifecycle(t *testing.T) {
	router, _ := newTestRouter(t, "")

	w := doJSON(t, router, http.MethodGet, "/api/v1/quote", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var current quote.Quote
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &current))
	assert.NotEmpty(t, current.ID)
	assert.Equal(t, "New Quote", current.Name)

	w = doJSON(t, router, http.MethodPost, "/api/v1/quote/items", testItem("Casement Window", 450), nil)
	require.Equal(t, http.StatusOK, w.Code)

	var updated quote.Quote
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
	require.Len(t, updated.Items, 1)
	assert.Equal(t, 450.0, updated.TotalPrice)

	w = doJSON(t, router, http.MethodPost, "/api/v1/quote/save", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, router, http.MethodGet, "/api/v1/quotes", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var saved []quote.Quote
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &saved))
	assert.Len(t, saved, 1)
}

func TestRouter_ItemValidationError(t *testing.T) {
	router, _ := newTestRouter(t, "")

	w := doJSON(t, router, http.MethodPost, "/api/v1/quote/items", quote.Item{Quantity: 1}, nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "VALIDATION_ERROR", body["code"])
}

func TestRouter_AuthGate(t *testing.T) {
	hash, err := auth.HashPassword("hunter2")
	require.NoError(t, err)
	router, _ := newTestRouter(t, hash)

	w := doJSON(t, router, http.MethodGet, "/api/v1/quote", nil, nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(t, router, http.MethodPost, "/api/v1/auth/login", map[string]string{"password": "hunter2"}, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var login struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &login))
	require.NotEmpty(t, login.Token)

	w = doJSON(t, router, http.MethodGet, "/api/v1/quote", nil, map[string]string{
		"Authorization": "Bearer " + login.Token,
	})
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRouter_QuotePDF(t *testing.T) {
	router, quotes := newTestRouter(t, "")

	_, err := quotes.AddItem(testItem("Casement Window", 500))
	require.NoError(t, err)

	w := doJSON(t, router, http.MethodGet, "/api/v1/documents/quote", nil, nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte("%PDF")))
}

func TestRouter_QuotePDFEmptyQuoteFails(t *testing.T) {
	router, _ := newTestRouter(t, "")

	w := doJSON(t, router, http.MethodGet, "/api/v1/documents/quote", nil, nil)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestRouter_WorkspaceArchiveRoundTrip(t *testing.T) {
	router, quotes := newTestRouter(t, "")

	_, err := quotes.AddItem(testItem("Fixed Window", 300))
	require.NoError(t, err)
	_, err = quotes.Save()
	require.NoError(t, err)

	w := doJSON(t, router, http.MethodGet, "/api/v1/workspace/archive", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "application/zstd", w.Header().Get("Content-Type"))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/workspace/archive", bytes.NewReader(w.Body.Bytes()))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var result map[string]int
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, 1, result["imported"])
}

func TestRouter_LibraryTemplates(t *testing.T) {
	router, _ := newTestRouter(t, "")

	w := doJSON(t, router, http.MethodGet, "/api/v1/library/templates", nil, nil)

	require.Equal(t, http.StatusOK, w.Code)

	var templates []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &templates))
	assert.Len(t, templates, 10)
}

func TestRouter_SystemCollectionUnknown(t *testing.T) {
	router, _ := newTestRouter(t, "")

	w := doJSON(t, router, http.MethodGet, "/api/v1/library/system/widgets", nil, nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRouter_TraceHeadersEcho(t *testing.T) {
	router, _ := newTestRouter(t, "")

	w := doJSON(t, router, http.MethodGet, "/api/v1/quote", nil, map[string]string{
		"X-Request-Id": "req-123",
	})

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "req-123", w.Header().Get("X-Request-Id"))
	assert.NotEmpty(t, w.Header().Get("X-Trace-Id"))
}

func TestRouter_ContractDataJSON(t *testing.T) {
	router, quotes := newTestRouter(t, "")

	_, err := quotes.AddItem(testItem("Casement Window", 900))
	require.NoError(t, err)

	w := doJSON(t, router, http.MethodGet, "/api/v1/documents/contract/data", nil, nil)

	require.Equal(t, http.StatusOK, w.Code)

	var data map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &data))
	assert.Contains(t, fmt.Sprint(data), "SUPPLY AGREEMENT")
}
