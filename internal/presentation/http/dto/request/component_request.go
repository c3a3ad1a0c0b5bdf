package request

// CreateComponentRequest represents a fee component creation request
type CreateComponentRequest struct {
	Name string `json:"name" binding:"required,min=2,max=255"`
	Type string `json:"type" binding:"required"`
}

// ComponentFilterRequest represents component filter parameters
type ComponentFilterRequest struct {
	Search          string `form:"search"`
	IncludeInactive bool   `form:"include_inactive"`
	Page            int    `form:"page"`
	PerPage         int    `form:"per_page"`
}
