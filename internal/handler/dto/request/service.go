package request

type CreateServiceRequest struct {
	Title           string `json:"title" binding:"required,max=200"`
	Description     string `json:"description" binding:"max=1000"`
	PriceCents      int64  `json:"price_cents" binding:"min=0"`
	DurationMinutes int    `json:"duration_minutes" binding:"required,min=1"`
	IsActive        *bool  `json:"is_active" binding:"omitempty"`
}

// Active defaults to true when the field is omitted.
func (r *CreateServiceRequest) Active() bool {
	if r.IsActive == nil {
		return true
	}
	return *r.IsActive
}

type UpdateServiceRequest struct {
	Title           *string `json:"title" binding:"omitempty,max=200"`
	Description     *string `json:"description" binding:"omitempty,max=1000"`
	PriceCents      *int64  `json:"price_cents" binding:"omitempty,min=0"`
	DurationMinutes *int    `json:"duration_minutes" binding:"omitempty,min=1"`
	IsActive        *bool   `json:"is_active" binding:"omitempty"`
}
