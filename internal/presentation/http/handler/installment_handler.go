package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sritek/scoops-fees/internal/application/service"
	"github.com/sritek/scoops-fees/internal/presentation/http/dto/request"
	"github.com/sritek/scoops-fees/internal/presentation/http/dto/response"
	"github.com/sritek/scoops-fees/internal/presentation/http/middleware"
)

// InstallmentHandler handles installment HTTP requests
type InstallmentHandler struct {
	installmentService *service.InstallmentService
}

// NewInstallmentHandler creates a new installment handler
func NewInstallmentHandler(installmentService *service.InstallmentService) *InstallmentHandler {
	return &InstallmentHandler{installmentService: installmentService}
}

// Generate handles generating the installment set for a fee structure from
// an EMI plan template
func (h *InstallmentHandler) Generate(c *gin.Context) {
	structureID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid fee structure ID")
		return
	}

	var req request.GenerateInstallmentsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	startDate, err := parseDate(req.StartDate)
	if err != nil {
		response.BadRequest(c, "Invalid start date, expected YYYY-MM-DD")
		return
	}

	installments, err := h.installmentService.Generate(c.Request.Context(), structureID, req.TemplateID, startDate)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Installments generated successfully", installments)
}

// Delete handles deleting a fee structure's installment set so it can be
// regenerated from a different template
func (h *InstallmentHandler) Delete(c *gin.Context) {
	structureID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid fee structure ID")
		return
	}

	if err := h.installmentService.DeleteForStructure(c.Request.Context(), structureID); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Installments deleted successfully", nil)
}

// ListForStructure handles listing a fee structure's installments with
// their derived statuses
func (h *InstallmentHandler) ListForStructure(c *gin.Context) {
	structureID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid fee structure ID")
		return
	}

	installments, err := h.installmentService.ListForStructure(c.Request.Context(), structureID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Installments retrieved successfully", installments)
}

// ListForStudent handles listing a student's installments for the current
// academic session
func (h *InstallmentHandler) ListForStudent(c *gin.Context) {
	studentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid student ID")
		return
	}

	sessionID := middleware.GetSessionID(c)

	installments, err := h.installmentService.ListForStudent(c.Request.Context(), studentID, sessionID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Installments retrieved successfully", installments)
}
