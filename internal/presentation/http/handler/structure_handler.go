package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sritek/scoops-fees/internal/application/service"
	"github.com/sritek/scoops-fees/internal/presentation/http/dto/request"
	"github.com/sritek/scoops-fees/internal/presentation/http/dto/response"
	"github.com/sritek/scoops-fees/internal/presentation/http/middleware"
)

// StructureHandler handles fee structure HTTP requests
type StructureHandler struct {
	structureService *service.StructureService
}

// NewStructureHandler creates a new structure handler
func NewStructureHandler(structureService *service.StructureService) *StructureHandler {
	return &StructureHandler{structureService: structureService}
}

// Build handles building a fee structure for a single student
func (h *StructureHandler) Build(c *gin.Context) {
	var req request.BuildStructureRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	structure, err := h.structureService.Build(c.Request.Context(), &service.BuildInput{
		StudentID:         req.StudentID,
		BatchID:           req.BatchID,
		SessionID:         middleware.GetSessionID(c),
		Components:        componentInputs(req.Components),
		OverwriteExisting: req.OverwriteExisting,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Fee structure created successfully", structure)
}

// ApplyBatch handles applying the same component amounts to every listed
// student of a batch
func (h *StructureHandler) ApplyBatch(c *gin.Context) {
	var req request.ApplyBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	result, err := h.structureService.ApplyToBatch(c.Request.Context(), &service.ApplyToBatchInput{
		BatchID:           req.BatchID,
		SessionID:         middleware.GetSessionID(c),
		StudentIDs:        req.StudentIDs,
		Components:        componentInputs(req.Components),
		OverwriteExisting: req.OverwriteExisting,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Batch fee structures applied", result)
}

// Get handles retrieving a fee structure with its component snapshots and
// installments
func (h *StructureHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid fee structure ID")
		return
	}

	structure, err := h.structureService.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Fee structure retrieved successfully", structure)
}

func componentInputs(reqs []request.ComponentAmountRequest) []service.ComponentAmountInput {
	inputs := make([]service.ComponentAmountInput, len(reqs))
	for i, r := range reqs {
		inputs[i] = service.ComponentAmountInput{
			ComponentID: r.ComponentID,
			Amount:      r.Amount,
		}
	}
	return inputs
}
