package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	auditdomain "github.com/smallbiznis/backoffice/internal/audit/domain"
	customerdomain "github.com/smallbiznis/backoffice/internal/customer/domain"
)

func (s *Server) ListCustomers(c *gin.Context) {
	res, err := s.customerSvc.List(c.Request.Context(), customerdomain.ListCustomerRequest{
		Page:  s.pageFromQuery(c),
		Name:  c.Query("name"),
		Email: c.Query("email"),
	})
	if err != nil {
		respondError(c, http.StatusBadRequest, gin.H{
			"error":   "Failed to fetch customers",
			"details": err.Error(),
		}, err)
		return
	}

	c.JSON(http.StatusOK, listPayload(res))
}

func (s *Server) CreateCustomer(c *gin.Context) {
	var req customerdomain.CreateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, gin.H{
			"error":   "Failed to create customer",
			"details": ErrInvalidRequest.Error(),
		}, ErrInvalidRequest)
		return
	}

	resp, err := s.customerSvc.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, http.StatusBadRequest, gin.H{
			"error":   "Failed to create customer",
			"details": err.Error(),
		}, err)
		return
	}

	s.recordAudit(c, "customer.create", auditdomain.TargetCustomer, resp.ID,
		customerAuditMetadata(resp.ID, resp.FirstName, resp.LastName, resp.Email, resp.Phone))

	c.JSON(http.StatusOK, gin.H{
		"message":  "Customer created successfully!",
		"customer": resp,
	})
}

func (s *Server) GetCustomerByID(c *gin.Context) {
	resp, err := s.customerSvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, customerdomain.ErrNotFound) {
			respondError(c, http.StatusNotFound, gin.H{"error": "Customer not found"}, err)
			return
		}
		respondError(c, http.StatusBadRequest, gin.H{
			"error":   "Failed to fetch customer",
			"details": err.Error(),
		}, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "Customer found",
		"customer": resp,
	})
}

func (s *Server) UpdateCustomer(c *gin.Context) {
	var req customerdomain.UpdateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, gin.H{
			"error":   "Failed to update customer",
			"details": ErrInvalidRequest.Error(),
		}, ErrInvalidRequest)
		return
	}
	req.ID = c.Param("id")

	resp, err := s.customerSvc.Update(c.Request.Context(), req)
	if err != nil {
		respondError(c, http.StatusBadRequest, gin.H{
			"error":   "Failed to update customer",
			"details": err.Error(),
		}, err)
		return
	}

	s.recordAudit(c, "customer.update", auditdomain.TargetCustomer, resp.ID,
		customerAuditMetadata(resp.ID, resp.FirstName, resp.LastName, resp.Email, resp.Phone))

	c.JSON(http.StatusOK, gin.H{
		"message":         "Customer updated successfully!",
		"updatedCustomer": resp,
	})
}

func (s *Server) DeleteCustomer(c *gin.Context) {
	id := c.Param("id")
	if err := s.customerSvc.Delete(c.Request.Context(), id); err != nil {
		respondError(c, http.StatusBadRequest, gin.H{
			"error":   "Failed to delete customer",
			"details": err.Error(),
		}, err)
		return
	}

	s.recordAudit(c, "customer.delete", auditdomain.TargetCustomer, id, nil)

	c.JSON(http.StatusOK, gin.H{"message": "Customer deleted successfully!"})
}

func isCustomerValidationError(err error) bool {
	switch {
	case errors.Is(err, customerdomain.ErrInvalidID),
		errors.Is(err, customerdomain.ErrInvalidEmail):
		return true
	default:
		return false
	}
}
