package server

import (
	"net/http"
	"testing"

	categorydomain "github.com/smallbiznis/backoffice/internal/category/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategoryInUseCannotBeDeleted(t *testing.T) {
	ts := newTestServer(t)
	categoryID := ts.createCategory(t, "Drinks")

	rec := ts.doAuth(t, http.MethodPost, "/api/product", productPayload(categoryID))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = ts.doAuth(t, http.MethodDelete, "/api/category/"+categoryID, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, "Failed to delete category", body["error"])
	assert.Equal(t, categorydomain.ErrInUse.Error(), body["details"])

	rec = ts.do(t, http.MethodGet, "/api/category/"+categoryID, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestCategoryCRUD(t *testing.T) {
	ts := newTestServer(t)
	categoryID := ts.createCategory(t, "Snacks")

	rec := ts.doAuth(t, http.MethodPut, "/api/category/"+categoryID, map[string]string{"nameEn": "Chips", "nameKh": "ឈីប"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "Chips", decode(t, rec)["data"].(map[string]any)["nameEn"])

	rec = ts.do(t, http.MethodGet, "/api/category", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, "Success", body["message"])
	assert.Len(t, body["data"], 1)

	rec = ts.doAuth(t, http.MethodPost, "/api/category", map[string]string{"nameEn": " "})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = ts.doAuth(t, http.MethodDelete, "/api/category/"+categoryID, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = ts.do(t, http.MethodGet, "/api/category/"+categoryID, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Category not found", decode(t, rec)["error"])
}
