package response

import (
	"time"

	"bookit-api/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type UserResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func FromUserView(view *queries.AuthorizedUserView) *UserResponse {
	var resp UserResponse
	_ = copier.Copy(&resp, view)
	return &resp
}
