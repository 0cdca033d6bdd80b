package server

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	productdomain "github.com/smallbiznis/backoffice/internal/product/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func productPayload(categoryID string) map[string]any {
	return map[string]any{
		"nameEn":     "Jasmine Rice",
		"nameKh":     "អង្ករម្លិះ",
		"categoryId": categoryID,
		"sku":        "RICE-5KG",
		"image":      "https://cdn.example.com/rice.png",
	}
}

func TestCreateProductRequiresSession(t *testing.T) {
	ts := newTestServer(t)
	categoryID := ts.createCategory(t, "Groceries")

	rec := ts.do(t, http.MethodPost, "/api/product", productPayload(categoryID))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Unauthorized", rec.Body.String())

	var count int64
	require.NoError(t, ts.db.Model(&productdomain.Product{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestCreateProductAssignsSequentialCodes(t *testing.T) {
	ts := newTestServer(t)
	categoryID := ts.createCategory(t, "Groceries")

	for i, want := range []string{"P0001", "P0002"} {
		rec := ts.doAuth(t, http.MethodPost, "/api/product", productPayload(categoryID))
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		body := decode(t, rec)
		assert.Equal(t, "Product created successfully", body["message"])
		data := body["data"].(map[string]any)
		assert.Equal(t, want, data["productCode"], "product %d", i)
		assert.Equal(t, "https://cdn.example.com/rice.png", data["imageUrl"])
		assert.NotEmpty(t, data["createdBy"])
	}
}

func TestCreateProductContinuesFromHighestCode(t *testing.T) {
	ts := newTestServer(t)
	categoryID := ts.createCategory(t, "Groceries")
	parsedCategory, err := snowflake.ParseString(categoryID)
	require.NoError(t, err)

	now := time.Now().UTC()
	require.NoError(t, ts.db.Create(&productdomain.Product{
		ID:          snowflake.ID(42),
		ProductCode: "P0042",
		NameEn:      "Imported",
		CategoryID:  parsedCategory,
		CreatedAt:   now,
		UpdatedAt:   now,
	}).Error)

	rec := ts.doAuth(t, http.MethodPost, "/api/product", productPayload(categoryID))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "P0043", decode(t, rec)["data"].(map[string]any)["productCode"])
}

func TestCreateProductValidation(t *testing.T) {
	ts := newTestServer(t)
	categoryID := ts.createCategory(t, "Groceries")

	payload := productPayload(categoryID)
	payload["nameEn"] = "  "
	rec := ts.doAuth(t, http.MethodPost, "/api/product", payload)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Failed to add product", body["error"])

	rec = ts.doAuth(t, http.MethodPost, "/api/product", productPayload("123456"))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, productdomain.ErrCategoryNotFound.Error(), decode(t, rec)["details"])
}

func TestGetProduct(t *testing.T) {
	ts := newTestServer(t)
	categoryID := ts.createCategory(t, "Groceries")

	rec := ts.doAuth(t, http.MethodPost, "/api/product", productPayload(categoryID))
	require.Equal(t, http.StatusOK, rec.Code)
	id := decode(t, rec)["data"].(map[string]any)["id"].(string)

	for _, path := range []string{"/api/product/" + id, "/api/product?id=" + id} {
		rec = ts.do(t, http.MethodGet, path, nil)
		require.Equal(t, http.StatusOK, rec.Code, path)
		body := decode(t, rec)
		assert.Equal(t, true, body["success"])
		assert.Equal(t, "Product found", body["message"])
		assert.Equal(t, id, body["product"].(map[string]any)["id"])
	}

	rec = ts.do(t, http.MethodGet, "/api/product/987654321", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, map[string]any{"success": false, "error": "Product not found"}, decode(t, rec))
}

func TestListProductsPagination(t *testing.T) {
	ts := newTestServer(t)
	categoryID := ts.createCategory(t, "Groceries")

	for i := 0; i < 5; i++ {
		rec := ts.doAuth(t, http.MethodPost, "/api/product", productPayload(categoryID))
		require.Equal(t, http.StatusOK, rec.Code)
	}

	seen := map[string]bool{}
	for page := 1; page <= 3; page++ {
		rec := ts.do(t, http.MethodGet, fmt.Sprintf("/api/product?pageSize=2&currentPage=%d", page), nil)
		require.Equal(t, http.StatusOK, rec.Code)
		body := decode(t, rec)
		assert.Equal(t, "Success", body["message"])

		records := body["data"].([]any)
		assert.LessOrEqual(t, len(records), 2)
		for _, r := range records {
			code := r.(map[string]any)["productCode"].(string)
			assert.False(t, seen[code], "duplicate %s", code)
			seen[code] = true
		}
	}
	assert.Len(t, seen, 5)

	rec := ts.do(t, http.MethodGet, "/api/product?pageSize=2&currentPage=9", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decode(t, rec)["data"])

	rec = ts.do(t, http.MethodGet, "/api/product?pageSize=4&currentPage=4611686018427387905", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decode(t, rec)["data"], "an unaddressable page must not wrap to the first one")

	rec = ts.do(t, http.MethodGet, "/api/product?pageSize=-3", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode(t, rec)["data"], 1)

	rec = ts.do(t, http.MethodGet, "/api/product", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	assert.Len(t, body["data"], 5)
	assert.Equal(t, float64(10), body["pagination"].(map[string]any)["pageSize"])
}

func TestUpdateAndDeleteProduct(t *testing.T) {
	ts := newTestServer(t)
	categoryID := ts.createCategory(t, "Groceries")

	rec := ts.doAuth(t, http.MethodPost, "/api/product", productPayload(categoryID))
	require.Equal(t, http.StatusOK, rec.Code)
	id := decode(t, rec)["data"].(map[string]any)["id"].(string)

	rec = ts.doAuth(t, http.MethodPut, "/api/product/"+id, map[string]any{
		"nameEn":     "Fragrant Rice",
		"nameKh":     "",
		"categoryId": categoryID,
		"sku":        "RICE-10KG",
		"imageUrl":   "",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	body := decode(t, rec)
	assert.Equal(t, "Product updated successfully!", body["message"])
	product := body["product"].(map[string]any)
	assert.Equal(t, "Fragrant Rice", product["nameEn"])
	assert.Equal(t, "RICE-10KG", product["sku"])
	assert.Equal(t, "P0001", product["productCode"])

	rec = ts.doAuth(t, http.MethodPut, "/api/product/55555", map[string]any{"nameEn": "Ghost", "categoryId": categoryID})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Failed to update product", decode(t, rec)["error"])

	rec = ts.doAuth(t, http.MethodDelete, "/api/product/"+id, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Product deleted successfully!", decode(t, rec)["message"])

	rec = ts.doAuth(t, http.MethodDelete, "/api/product/"+id, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body = decode(t, rec)
	assert.Equal(t, "Failed to delete product", body["error"])
	assert.Equal(t, productdomain.ErrNotFound.Error(), body["details"])
}
