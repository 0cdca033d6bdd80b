package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	auditdomain "github.com/smallbiznis/backoffice/internal/audit/domain"
	promotiondomain "github.com/smallbiznis/backoffice/internal/promotion/domain"
)

func (s *Server) ListPromotions(c *gin.Context) {
	res, err := s.promotionSvc.List(c.Request.Context(), promotiondomain.ListRequest{
		Page:     s.pageFromQuery(c),
		Query:    c.Query("q"),
		ActiveOn: c.Query("activeOn"),
	})
	if err != nil {
		status := http.StatusInternalServerError
		message := "Something went wrong"
		if errors.Is(err, promotiondomain.ErrInvalidDate) {
			status, message = http.StatusBadRequest, "Invalid activeOn date"
		}
		respondError(c, status, gin.H{"message": message, "data": []any{}}, err)
		return
	}

	c.JSON(http.StatusOK, listPayload(res))
}

func (s *Server) CreatePromotion(c *gin.Context) {
	var in promotiondomain.Input
	if err := c.ShouldBindJSON(&in); err != nil {
		respondError(c, http.StatusBadRequest, gin.H{"message": "Invalid request body"}, ErrInvalidRequest)
		return
	}

	resp, err := s.promotionSvc.Create(c.Request.Context(), in)
	if err != nil {
		s.respondPromotionError(c, "Failed to create promotion", err)
		return
	}

	s.recordAudit(c, "promotion.create", auditdomain.TargetPromotion, resp.ID, promotionAuditMetadata(resp))

	c.JSON(http.StatusOK, gin.H{
		"message": "Promotion created successfully",
		"data":    resp,
	})
}

func (s *Server) GetPromotionByID(c *gin.Context) {
	resp, err := s.promotionSvc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.respondPromotionError(c, "Failed to fetch promotion", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Promotion found",
		"data":    resp,
	})
}

func (s *Server) UpdatePromotion(c *gin.Context) {
	var in promotiondomain.Input
	if err := c.ShouldBindJSON(&in); err != nil {
		respondError(c, http.StatusBadRequest, gin.H{"message": "Invalid request body"}, ErrInvalidRequest)
		return
	}

	resp, err := s.promotionSvc.Update(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		s.respondPromotionError(c, "Failed to update promotion", err)
		return
	}

	s.recordAudit(c, "promotion.update", auditdomain.TargetPromotion, resp.ID, promotionAuditMetadata(resp))

	c.JSON(http.StatusOK, gin.H{
		"message": "Promotion updated successfully",
		"data":    resp,
	})
}

func (s *Server) DeletePromotion(c *gin.Context) {
	id := c.Param("id")
	if err := s.promotionSvc.Delete(c.Request.Context(), id); err != nil {
		s.respondPromotionError(c, "Failed to delete promotion", err)
		return
	}

	s.recordAudit(c, "promotion.delete", auditdomain.TargetPromotion, id, nil)

	c.JSON(http.StatusOK, gin.H{"message": "Promotion deleted successfully"})
}

func (s *Server) respondPromotionError(c *gin.Context, message string, err error) {
	var verrs promotiondomain.ValidationErrors
	switch {
	case errors.As(err, &verrs):
		respondError(c, http.StatusBadRequest, gin.H{"message": "Validation failed", "errors": verrs}, err)
	case errors.Is(err, promotiondomain.ErrNotFound):
		respondError(c, http.StatusNotFound, gin.H{"message": "Promotion not found"}, err)
	case errors.Is(err, promotiondomain.ErrCodeExists):
		respondError(c, http.StatusConflict, gin.H{"message": "Promotion code already exists"}, err)
	case isPromotionValidationError(err):
		respondError(c, http.StatusBadRequest, gin.H{"message": message}, err)
	default:
		respondError(c, http.StatusInternalServerError, gin.H{"message": message}, err)
	}
}

func isPromotionValidationError(err error) bool {
	switch {
	case errors.Is(err, promotiondomain.ErrInvalidID),
		errors.Is(err, promotiondomain.ErrInvalidDate):
		return true
	default:
		return false
	}
}

func promotionAuditMetadata(resp *promotiondomain.Response) map[string]any {
	return map[string]any{
		"promotion_code":      resp.PromotionCode,
		"start_date":          resp.StartDate,
		"end_date":            resp.EndDate,
		"discount_percentage": resp.DiscountPercentage,
	}
}
