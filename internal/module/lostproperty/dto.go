package lostproperty

import (
	"time"

	"github.com/simp-lee/lostfound/internal/domain"
)

// CreateLostPropertyRequest represents the input for reporting a new lost property.
type CreateLostPropertyRequest struct {
	Name        string     `json:"name" binding:"required,max=150"`
	Description string     `json:"description" binding:"required,max=1000"`
	Status      string     `json:"status" binding:"required,oneof=Lost Found Return"`
	FoundTime   *time.Time `json:"foundTime"`
	EmployeeID  *string    `json:"employeeId" binding:"omitempty,uuid"`
	LocationID  *int       `json:"locationId" binding:"omitempty,min=1"`
}

// UpdateLostPropertyRequest represents the input for updating an existing lost property.
type UpdateLostPropertyRequest struct {
	Name        string     `json:"name" binding:"required,max=150"`
	Description string     `json:"description" binding:"required,max=1000"`
	Status      string     `json:"status" binding:"required,oneof=Lost Found Return"`
	FoundTime   *time.Time `json:"foundTime"`
	EmployeeID  *string    `json:"employeeId" binding:"omitempty,uuid"`
	LocationID  *int       `json:"locationId" binding:"omitempty,min=1"`
}

func (r *CreateLostPropertyRequest) toEntity() *domain.LostProperty {
	return &domain.LostProperty{
		Name:        r.Name,
		Description: r.Description,
		Status:      domain.PropertyStatus(r.Status),
		FoundTime:   r.FoundTime,
		EmployeeID:  r.EmployeeID,
		LocationID:  r.LocationID,
	}
}

func (r *UpdateLostPropertyRequest) toEntity(id int) *domain.LostProperty {
	return &domain.LostProperty{
		ID:          id,
		Name:        r.Name,
		Description: r.Description,
		Status:      domain.PropertyStatus(r.Status),
		FoundTime:   r.FoundTime,
		EmployeeID:  r.EmployeeID,
		LocationID:  r.LocationID,
	}
}
