package request

import "github.com/google/uuid"

// ComponentAmountRequest is one component line in a fee structure request
type ComponentAmountRequest struct {
	ComponentID uuid.UUID `json:"component_id" binding:"required"`
	Amount      float64   `json:"amount" binding:"required,gt=0"`
}

// BuildStructureRequest represents a fee structure build request for a
// single student
type BuildStructureRequest struct {
	StudentID         uuid.UUID                `json:"student_id" binding:"required"`
	BatchID           *uuid.UUID               `json:"batch_id"`
	Components        []ComponentAmountRequest `json:"components" binding:"required,min=1,dive"`
	OverwriteExisting bool                     `json:"overwrite_existing"`
}

// ApplyBatchRequest represents a bulk fee structure request: the same
// component amounts applied to every listed student of a batch
type ApplyBatchRequest struct {
	BatchID           uuid.UUID                `json:"batch_id" binding:"required"`
	StudentIDs        []uuid.UUID              `json:"student_ids" binding:"required,min=1"`
	Components        []ComponentAmountRequest `json:"components" binding:"required,min=1,dive"`
	OverwriteExisting bool                     `json:"overwrite_existing"`
}
