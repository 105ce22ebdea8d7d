package employee

import (
	"time"

	"github.com/simp-lee/lostfound/internal/domain"
)

// CreateEmployeeRequest represents the input for creating a new employee.
type CreateEmployeeRequest struct {
	FirstName   string    `json:"firstName" binding:"required,max=50"`
	LastName    string    `json:"lastName" binding:"required,max=50"`
	Phone       string    `json:"phone" binding:"required,max=15"`
	Email       *string   `json:"email" binding:"omitempty,email,max=150"`
	DateOfBirth time.Time `json:"dateOfBirth" binding:"required"`
}

// UpdateEmployeeRequest represents the input for updating an existing employee.
type UpdateEmployeeRequest struct {
	FirstName   string    `json:"firstName" binding:"required,max=50"`
	LastName    string    `json:"lastName" binding:"required,max=50"`
	Phone       string    `json:"phone" binding:"required,max=15"`
	Email       *string   `json:"email" binding:"omitempty,email,max=150"`
	DateOfBirth time.Time `json:"dateOfBirth" binding:"required"`
}

func (r *CreateEmployeeRequest) toEntity() *domain.Employee {
	return &domain.Employee{
		FirstName:   r.FirstName,
		LastName:    r.LastName,
		Phone:       r.Phone,
		Email:       r.Email,
		DateOfBirth: r.DateOfBirth,
	}
}

func (r *UpdateEmployeeRequest) toEntity(id string) *domain.Employee {
	return &domain.Employee{
		ID:          id,
		FirstName:   r.FirstName,
		LastName:    r.LastName,
		Phone:       r.Phone,
		Email:       r.Email,
		DateOfBirth: r.DateOfBirth,
	}
}
