package domain

import (
	"context"
	"time"
)

// Employee represents a staff member that lost properties can be returned to.
// The primary key is a caller-assigned UUID string.
type Employee struct {
	ID string `gorm:"primaryKey;size:40" json:"id"`
	AuditEntity
	FirstName   string    `gorm:"size:50;not null" json:"firstName"`
	LastName    string    `gorm:"size:50;not null" json:"lastName"`
	Phone       string    `gorm:"size:15;not null" json:"phone"`
	Email       *string   `gorm:"size:150" json:"email"`
	DateOfBirth time.Time `json:"dateOfBirth"`

	// Back-reference only. Removal of an employee's properties is a service
	// policy, not a storage constraint.
	LostProperties []LostProperty `gorm:"foreignKey:EmployeeID" json:"lostProperties,omitempty"`
}

// GetID returns the primary key.
func (e *Employee) GetID() string { return e.ID }

// SetID assigns the primary key.
func (e *Employee) SetID(id string) { e.ID = id }

// EmployeeService defines the business logic interface for employees.
type EmployeeService interface {
	Add(ctx context.Context, employee *Employee) error
	GetByID(ctx context.Context, id string) (*Employee, error)
	GetPage(ctx context.Context, q Query, pageIndex, pageSize int) (*PaginatedResult[Employee], error)
	GetAll(ctx context.Context, q Query) (*PaginatedResult[Employee], error)
	Update(ctx context.Context, employee *Employee) error
	Delete(ctx context.Context, id string) error
	HardDelete(ctx context.Context, id string) error
}
