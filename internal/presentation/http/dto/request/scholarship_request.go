package request

import "github.com/google/uuid"

// CreateScholarshipRequest represents a scholarship creation request.
// DiscountValue is a percentage for the percentage type and a currency
// amount for the fixed_amount type; component_waiver ignores it.
type CreateScholarshipRequest struct {
	Name             string     `json:"name" binding:"required,min=2,max=255"`
	DiscountType     string     `json:"discount_type" binding:"required"`
	DiscountValue    float64    `json:"discount_value" binding:"min=0"`
	BasisComponentID *uuid.UUID `json:"basis_component_id"`
}

// AssignScholarshipRequest represents a scholarship assignment request
type AssignScholarshipRequest struct {
	ScholarshipID uuid.UUID `json:"scholarship_id" binding:"required"`
}

// ScholarshipFilterRequest represents scholarship filter parameters
type ScholarshipFilterRequest struct {
	Search          string `form:"search"`
	IncludeInactive bool   `form:"include_inactive"`
	Page            int    `form:"page"`
	PerPage         int    `form:"per_page"`
}
