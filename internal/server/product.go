package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	auditdomain "github.com/smallbiznis/backoffice/internal/audit/domain"
	"github.com/smallbiznis/backoffice/internal/authctx"
	productdomain "github.com/smallbiznis/backoffice/internal/product/domain"
)

// ListProducts also serves the legacy single lookup at /api/product?id=.
func (s *Server) ListProducts(c *gin.Context) {
	if id := strings.TrimSpace(c.Query("id")); id != "" {
		s.respondProduct(c, id)
		return
	}

	res, err := s.productSvc.List(c.Request.Context(), productdomain.ListRequest{
		Page:       s.pageFromQuery(c),
		CategoryID: c.Query("categoryId"),
		Query:      c.Query("q"),
	})
	if err != nil {
		status := http.StatusInternalServerError
		if isProductValidationError(err) {
			status = http.StatusBadRequest
		}
		respondError(c, status, gin.H{"message": "Something went wrong", "data": []any{}}, err)
		return
	}

	c.JSON(http.StatusOK, listPayload(res))
}

func (s *Server) CreateProduct(c *gin.Context) {
	if _, ok := authctx.ActorFromContext(c.Request.Context()); !ok {
		_ = c.Error(ErrUnauthorized)
		c.String(http.StatusUnauthorized, "Unauthorized")
		c.Abort()
		return
	}

	var req productdomain.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Failed to add product",
			"details": ErrInvalidRequest.Error(),
		}, ErrInvalidRequest)
		return
	}

	resp, err := s.productSvc.Create(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, productdomain.ErrUnauthenticated):
			_ = c.Error(err)
			c.String(http.StatusUnauthorized, "Unauthorized")
			c.Abort()
		case isProductValidationError(err):
			respondError(c, http.StatusBadRequest, gin.H{
				"success": false,
				"error":   "Failed to add product",
				"details": err.Error(),
			}, err)
		default:
			respondError(c, http.StatusInternalServerError, gin.H{
				"success": false,
				"error":   "Failed to add product",
			}, err)
		}
		return
	}

	s.recordAudit(c, "product.create", auditdomain.TargetProduct, resp.ID, map[string]any{
		"product_code": resp.ProductCode,
		"name_en":      resp.NameEn,
		"category_id":  resp.CategoryID,
	})

	c.JSON(http.StatusOK, gin.H{
		"message": "Product created successfully",
		"data":    resp,
	})
}

func (s *Server) GetProductByID(c *gin.Context) {
	s.respondProduct(c, c.Param("id"))
}

func (s *Server) respondProduct(c *gin.Context, id string) {
	resp, err := s.productSvc.Get(c.Request.Context(), strings.TrimSpace(id))
	if err != nil {
		status := http.StatusInternalServerError
		body := gin.H{"success": false, "error": "Failed to fetch product"}
		if errors.Is(err, productdomain.ErrNotFound) || errors.Is(err, productdomain.ErrInvalidID) {
			status = http.StatusNotFound
			body["error"] = "Product not found"
		}
		respondError(c, status, body, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Product found",
		"product": resp,
	})
}

func (s *Server) UpdateProduct(c *gin.Context) {
	var req productdomain.UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, gin.H{
			"error":   "Failed to update product",
			"details": ErrInvalidRequest.Error(),
		}, ErrInvalidRequest)
		return
	}
	req.ID = c.Param("id")

	resp, err := s.productSvc.Update(c.Request.Context(), req)
	if err != nil {
		respondError(c, http.StatusBadRequest, gin.H{
			"error":   "Failed to update product",
			"details": err.Error(),
		}, err)
		return
	}

	s.recordAudit(c, "product.update", auditdomain.TargetProduct, resp.ID, map[string]any{
		"product_code": resp.ProductCode,
		"name_en":      resp.NameEn,
		"category_id":  resp.CategoryID,
		"sku":          resp.SKU,
	})

	c.JSON(http.StatusOK, gin.H{
		"message": "Product updated successfully!",
		"product": resp,
	})
}

func (s *Server) DeleteProduct(c *gin.Context) {
	id := c.Param("id")
	if err := s.productSvc.Delete(c.Request.Context(), id); err != nil {
		respondError(c, http.StatusBadRequest, gin.H{
			"error":   "Failed to delete product",
			"details": err.Error(),
		}, err)
		return
	}

	s.recordAudit(c, "product.delete", auditdomain.TargetProduct, id, nil)

	c.JSON(http.StatusOK, gin.H{"message": "Product deleted successfully!"})
}

func isProductValidationError(err error) bool {
	switch {
	case errors.Is(err, productdomain.ErrInvalidID),
		errors.Is(err, productdomain.ErrInvalidName),
		errors.Is(err, productdomain.ErrInvalidCategory),
		errors.Is(err, productdomain.ErrCategoryNotFound):
		return true
	default:
		return false
	}
}
