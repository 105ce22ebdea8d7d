package location

import "github.com/simp-lee/lostfound/internal/domain"

// CreateLocationRequest represents the input for creating a new location.
type CreateLocationRequest struct {
	Floor *int    `json:"floor"`
	Cube  *string `json:"cube" binding:"omitempty,max=150"`
}

// UpdateLocationRequest represents the input for updating an existing location.
type UpdateLocationRequest struct {
	Floor *int    `json:"floor"`
	Cube  *string `json:"cube" binding:"omitempty,max=150"`
}

func (r *CreateLocationRequest) toEntity() *domain.Location {
	return &domain.Location{
		Floor: r.Floor,
		Cube:  r.Cube,
	}
}

func (r *UpdateLocationRequest) toEntity(id int) *domain.Location {
	return &domain.Location{
		ID:    id,
		Floor: r.Floor,
		Cube:  r.Cube,
	}
}
