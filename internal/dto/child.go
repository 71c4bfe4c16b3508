package dto

// ── child module DTOs ──

// CreateChildRequest creates a client.
type CreateChildRequest struct {
	Name string `json:"name" binding:"required,min=1,max=200"`
	Code string `json:"code" binding:"required,min=1,max=100"`
}

// UpdateChildRequest partially updates a client.
type UpdateChildRequest struct {
	Name   *string `json:"name"   binding:"omitempty,min=1,max=200"`
	Code   *string `json:"code"   binding:"omitempty,min=1,max=100"`
	Active *bool   `json:"active"`
}

// ChildListRequest filters the client listing.
type ChildListRequest struct {
	ActiveOnly bool `form:"active_only"`
}

// ChildResponse is the client wire shape.
type ChildResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Code      string `json:"code"`
	Active    bool   `json:"active"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}
