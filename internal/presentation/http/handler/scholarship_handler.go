package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sritek/scoops-fees/internal/application/service"
	"github.com/sritek/scoops-fees/internal/domain/enum"
	"github.com/sritek/scoops-fees/internal/domain/repository"
	"github.com/sritek/scoops-fees/internal/presentation/http/dto/request"
	"github.com/sritek/scoops-fees/internal/presentation/http/dto/response"
	"github.com/sritek/scoops-fees/internal/presentation/http/middleware"
	"github.com/sritek/scoops-fees/pkg/pagination"
)

// ScholarshipHandler handles scholarship HTTP requests
type ScholarshipHandler struct {
	scholarshipService *service.ScholarshipService
}

// NewScholarshipHandler creates a new scholarship handler
func NewScholarshipHandler(scholarshipService *service.ScholarshipService) *ScholarshipHandler {
	return &ScholarshipHandler{scholarshipService: scholarshipService}
}

// Create handles creating a scholarship definition
func (h *ScholarshipHandler) Create(c *gin.Context) {
	var req request.CreateScholarshipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	discountType, ok := enum.ParseDiscountType(req.DiscountType)
	if !ok {
		response.BadRequest(c, "Unknown discount type")
		return
	}

	scholarship, err := h.scholarshipService.Create(c.Request.Context(), &service.CreateScholarshipInput{
		Name:             req.Name,
		DiscountType:     discountType,
		DiscountValue:    decimal.NewFromFloat(req.DiscountValue),
		BasisComponentID: req.BasisComponentID,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Scholarship created successfully", scholarship)
}

// List handles listing scholarships
func (h *ScholarshipHandler) List(c *gin.Context) {
	var filter request.ScholarshipFilterRequest
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	params := &repository.ScholarshipFilterParams{
		Pagination: &pagination.PaginationParams{
			Page:    filter.Page,
			PerPage: filter.PerPage,
		},
		Search:          filter.Search,
		IncludeInactive: filter.IncludeInactive,
	}

	result, err := h.scholarshipService.List(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Scholarships retrieved successfully", result)
}

// Deactivate handles deactivating a scholarship. Structures already built
// with it keep their discount; it stops applying to future builds.
func (h *ScholarshipHandler) Deactivate(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid scholarship ID")
		return
	}

	if err := h.scholarshipService.Deactivate(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Scholarship deactivated successfully", nil)
}

// Assign handles assigning a scholarship to a student for the current
// academic session
func (h *ScholarshipHandler) Assign(c *gin.Context) {
	studentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid student ID")
		return
	}

	var req request.AssignScholarshipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	sessionID := middleware.GetSessionID(c)

	assignment, err := h.scholarshipService.Assign(c.Request.Context(), studentID, req.ScholarshipID, sessionID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Scholarship assigned successfully", assignment)
}

// Unassign handles removing a scholarship assignment
func (h *ScholarshipHandler) Unassign(c *gin.Context) {
	assignmentID, err := uuid.Parse(c.Param("assignment_id"))
	if err != nil {
		response.BadRequest(c, "Invalid assignment ID")
		return
	}

	if err := h.scholarshipService.Unassign(c.Request.Context(), assignmentID); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Scholarship unassigned successfully", nil)
}

// ListForStudent handles listing a student's scholarship assignments for
// the current academic session
func (h *ScholarshipHandler) ListForStudent(c *gin.Context) {
	studentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid student ID")
		return
	}

	sessionID := middleware.GetSessionID(c)

	assignments, err := h.scholarshipService.ListForStudent(c.Request.Context(), studentID, sessionID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Scholarship assignments retrieved successfully", assignments)
}
