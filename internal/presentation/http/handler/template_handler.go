package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sritek/scoops-fees/internal/application/service"
	"github.com/sritek/scoops-fees/internal/domain/entity"
	"github.com/sritek/scoops-fees/internal/domain/repository"
	"github.com/sritek/scoops-fees/internal/presentation/http/dto/request"
	"github.com/sritek/scoops-fees/internal/presentation/http/dto/response"
	"github.com/sritek/scoops-fees/pkg/pagination"
)

// TemplateHandler handles EMI plan template HTTP requests
type TemplateHandler struct {
	templateService *service.TemplateService
}

// NewTemplateHandler creates a new template handler
func NewTemplateHandler(templateService *service.TemplateService) *TemplateHandler {
	return &TemplateHandler{templateService: templateService}
}

// Create handles creating an EMI plan template
func (h *TemplateHandler) Create(c *gin.Context) {
	var req request.CreateTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	splitConfig := make(entity.SplitConfig, len(req.Splits))
	for i, s := range req.Splits {
		splitConfig[i] = entity.SplitEntry{
			Percent:          decimal.NewFromFloat(s.Percent),
			DueDaysFromStart: s.DueDaysFromStart,
		}
	}

	template, err := h.templateService.Create(c.Request.Context(), req.Name, splitConfig)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "EMI plan template created successfully", template)
}

// List handles listing EMI plan templates
func (h *TemplateHandler) List(c *gin.Context) {
	var filter request.TemplateFilterRequest
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	params := &repository.TemplateFilterParams{
		Pagination: &pagination.PaginationParams{
			Page:    filter.Page,
			PerPage: filter.PerPage,
		},
		Search:          filter.Search,
		IncludeInactive: filter.IncludeInactive,
	}

	result, err := h.templateService.List(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "EMI plan templates retrieved successfully", result)
}

// Get handles retrieving a single EMI plan template
func (h *TemplateHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid template ID")
		return
	}

	template, err := h.templateService.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "EMI plan template retrieved successfully", template)
}

// Deactivate handles deactivating an EMI plan template. Installment sets
// already generated from it are unaffected.
func (h *TemplateHandler) Deactivate(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid template ID")
		return
	}

	if err := h.templateService.Deactivate(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "EMI plan template deactivated successfully", nil)
}
