package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	auditdomain "github.com/smallbiznis/backoffice/internal/audit/domain"
	categorydomain "github.com/smallbiznis/backoffice/internal/category/domain"
)

func (s *Server) ListCategories(c *gin.Context) {
	res, err := s.categorySvc.List(c.Request.Context(), categorydomain.ListRequest{
		Page:  s.pageFromQuery(c),
		Query: c.Query("q"),
	})
	if err != nil {
		respondError(c, http.StatusInternalServerError, gin.H{"message": "Something went wrong", "data": []any{}}, err)
		return
	}

	c.JSON(http.StatusOK, listPayload(res))
}

func (s *Server) CreateCategory(c *gin.Context) {
	var req categorydomain.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, gin.H{
			"error":   "Failed to create category",
			"details": ErrInvalidRequest.Error(),
		}, ErrInvalidRequest)
		return
	}

	resp, err := s.categorySvc.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, http.StatusBadRequest, gin.H{
			"error":   "Failed to create category",
			"details": err.Error(),
		}, err)
		return
	}

	s.recordAudit(c, "category.create", auditdomain.TargetCategory, resp.ID, map[string]any{"name_en": resp.NameEn})

	c.JSON(http.StatusOK, gin.H{
		"message": "Category created successfully",
		"data":    resp,
	})
}

func (s *Server) GetCategoryByID(c *gin.Context) {
	resp, err := s.categorySvc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, categorydomain.ErrNotFound) {
			respondError(c, http.StatusNotFound, gin.H{"error": "Category not found"}, err)
			return
		}
		respondError(c, http.StatusBadRequest, gin.H{
			"error":   "Failed to fetch category",
			"details": err.Error(),
		}, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Category found",
		"data":    resp,
	})
}

func (s *Server) UpdateCategory(c *gin.Context) {
	var req categorydomain.UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, gin.H{
			"error":   "Failed to update category",
			"details": ErrInvalidRequest.Error(),
		}, ErrInvalidRequest)
		return
	}
	req.ID = c.Param("id")

	resp, err := s.categorySvc.Update(c.Request.Context(), req)
	if err != nil {
		respondError(c, http.StatusBadRequest, gin.H{
			"error":   "Failed to update category",
			"details": err.Error(),
		}, err)
		return
	}

	s.recordAudit(c, "category.update", auditdomain.TargetCategory, resp.ID, map[string]any{"name_en": resp.NameEn})

	c.JSON(http.StatusOK, gin.H{
		"message": "Category updated successfully",
		"data":    resp,
	})
}

func (s *Server) DeleteCategory(c *gin.Context) {
	id := c.Param("id")
	if err := s.categorySvc.Delete(c.Request.Context(), id); err != nil {
		respondError(c, http.StatusBadRequest, gin.H{
			"error":   "Failed to delete category",
			"details": err.Error(),
		}, err)
		return
	}

	s.recordAudit(c, "category.delete", auditdomain.TargetCategory, id, nil)

	c.JSON(http.StatusOK, gin.H{"message": "Category deleted successfully"})
}

func isCategoryValidationError(err error) bool {
	switch {
	case errors.Is(err, categorydomain.ErrInvalidID),
		errors.Is(err, categorydomain.ErrInvalidName):
		return true
	default:
		return false
	}
}
