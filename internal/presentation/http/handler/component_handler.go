package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sritek/scoops-fees/internal/application/service"
	"github.com/sritek/scoops-fees/internal/domain/enum"
	"github.com/sritek/scoops-fees/internal/domain/repository"
	"github.com/sritek/scoops-fees/internal/presentation/http/dto/request"
	"github.com/sritek/scoops-fees/internal/presentation/http/dto/response"
	"github.com/sritek/scoops-fees/pkg/pagination"
)

// ComponentHandler handles fee component HTTP requests
type ComponentHandler struct {
	componentService *service.ComponentService
}

// NewComponentHandler creates a new component handler
func NewComponentHandler(componentService *service.ComponentService) *ComponentHandler {
	return &ComponentHandler{componentService: componentService}
}

// Create handles creating a fee component
func (h *ComponentHandler) Create(c *gin.Context) {
	var req request.CreateComponentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	componentType, ok := enum.ParseComponentType(req.Type)
	if !ok {
		response.BadRequest(c, "Unknown component type")
		return
	}

	component, err := h.componentService.Create(c.Request.Context(), req.Name, componentType)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Fee component created successfully", component)
}

// List handles listing fee components
func (h *ComponentHandler) List(c *gin.Context) {
	var filter request.ComponentFilterRequest
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	params := &repository.ComponentFilterParams{
		Pagination: &pagination.PaginationParams{
			Page:    filter.Page,
			PerPage: filter.PerPage,
		},
		Search:          filter.Search,
		IncludeInactive: filter.IncludeInactive,
	}

	result, err := h.componentService.List(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Fee components retrieved successfully", result)
}

// Get handles retrieving a single fee component
func (h *ComponentHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid component ID")
		return
	}

	component, err := h.componentService.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Fee component retrieved successfully", component)
}

// Deactivate handles deactivating a fee component. Existing fee structure
// snapshots are untouched; the component just stops being offered.
func (h *ComponentHandler) Deactivate(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid component ID")
		return
	}

	if err := h.componentService.Deactivate(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Fee component deactivated successfully", nil)
}
