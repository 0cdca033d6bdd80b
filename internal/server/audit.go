package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	auditdomain "github.com/smallbiznis/backoffice/internal/audit/domain"
	"github.com/smallbiznis/backoffice/internal/audit/masking"
	"github.com/smallbiznis/backoffice/internal/authctx"
)

// recordAudit is best effort; a failed write is logged by the audit service
// and never fails the request.
func (s *Server) recordAudit(c *gin.Context, action, targetType, targetID string, metadata map[string]any) {
	if s.auditSvc == nil {
		return
	}
	_ = s.auditSvc.AuditLog(c.Request.Context(), action, targetType, &targetID, metadata)
}

func customerAuditMetadata(id, firstName, lastName, email, phone string) map[string]any {
	return masking.MaskFields(map[string]any{
		"customer_id": id,
		"first_name":  firstName,
		"last_name":   lastName,
		"email":       email,
		"phone":       phone,
	}, "email", "phone")
}

func (s *Server) ListAuditLogs(c *gin.Context) {
	if _, ok := authctx.ActorFromContext(c.Request.Context()); !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}
	if s.auditSvc == nil {
		AbortWithError(c, ErrServiceUnavailable)
		return
	}

	res, err := s.auditSvc.List(c.Request.Context(), auditdomain.ListAuditLogRequest{
		Page:       s.pageFromQuery(c),
		Action:     c.Query("action"),
		TargetType: c.Query("targetType"),
		TargetID:   c.Query("targetId"),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, listPayload(res))
}
