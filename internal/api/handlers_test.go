package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samshaps/meal-planner/internal/service"
)

func newTestRouter() http.Handler {
	return NewRouter(service.New(nil))
}

func postJSON(t *testing.T, handler http.Handler, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestHealthz(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	newTestRouter().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}

func TestBuildList(t *testing.T) {
	t.Parallel()

	rec := postJSON(t, newTestRouter(), "/grocery-list", map[string]any{
		"lines": []string{
			"2 cloves garlic, minced",
			"1 clove garlic, minced",
			"Salt and pepper to taste",
		},
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp buildListResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Items, 2)

	byName := make(map[string]listItemResponse)
	for _, it := range resp.Items {
		byName[it.Name] = it
	}

	garlic, ok := byName["Garlic"]
	require.True(t, ok)
	require.NotNil(t, garlic.Quantity)
	assert.Equal(t, 3.0, *garlic.Quantity)
	assert.Equal(t, "cloves", garlic.Unit)
	assert.Equal(t, "Produce", garlic.Section)
	assert.Len(t, garlic.Lines, 2)

	salt, ok := byName["Salt and black pepper"]
	require.True(t, ok)
	assert.Nil(t, salt.Quantity)
	assert.Equal(t, "Spices", salt.Section)
}

func TestBuildList_TextFormat(t *testing.T) {
	t.Parallel()

	rec := postJSON(t, newTestRouter(), "/grocery-list?format=text", map[string]any{
		"lines": []string{"2 cloves garlic", "1 tsp cumin"},
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/plain")

	body := rec.Body.String()
	assert.Contains(t, body, "Produce:")
	assert.Contains(t, body, "- 2 cloves Garlic")
	assert.Contains(t, body, "Spices:")
	assert.Contains(t, body, "- 1 tsp Cumin")
	assert.Less(t, strings.Index(body, "Produce:"), strings.Index(body, "Spices:"))
}

func TestBuildList_EmptyLines(t *testing.T) {
	t.Parallel()

	rec := postJSON(t, newTestRouter(), "/grocery-list", map[string]any{
		"lines": []string{},
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "no ingredient lines provided", resp["error"])
}

func TestBuildList_InvalidBody(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodPost, "/grocery-list", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()
	newTestRouter().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
