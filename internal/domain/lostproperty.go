package domain

import (
	"context"
	"time"
)

// PropertyStatus describes where a lost property is in its lifecycle.
type PropertyStatus string

const (
	StatusLost   PropertyStatus = "Lost"
	StatusFound  PropertyStatus = "Found"
	StatusReturn PropertyStatus = "Return"
)

// Valid reports whether s is one of the known statuses.
func (s PropertyStatus) Valid() bool {
	switch s {
	case StatusLost, StatusFound, StatusReturn:
		return true
	}
	return false
}

// LostProperty represents a reported item. The primary key is assigned
// sequentially by the repository (max existing id + 1). Employee and Location
// references are nullable and non-owning: the storage layer restricts
// deletion of referenced rows, and any cascade is decided by the services.
type LostProperty struct {
	ID int `gorm:"primaryKey;autoIncrement:false" json:"id"`
	AuditEntity
	Name        string         `gorm:"size:150;not null" json:"name"`
	Description string         `gorm:"size:1000;not null" json:"description"`
	Status      PropertyStatus `gorm:"size:10" json:"status"`
	FoundTime   *time.Time     `json:"foundTime"`
	EmployeeID  *string        `gorm:"size:40" json:"employeeId"`
	LocationID  *int           `json:"locationId"`

	Employee *Employee `gorm:"foreignKey:EmployeeID;constraint:OnDelete:RESTRICT" json:"employee,omitempty"`
	Location *Location `gorm:"foreignKey:LocationID;constraint:OnDelete:RESTRICT" json:"location,omitempty"`
}

// GetID returns the primary key.
func (p *LostProperty) GetID() int { return p.ID }

// SetID assigns the primary key.
func (p *LostProperty) SetID(id int) { p.ID = id }

// LostPropertyService defines the business logic interface for lost properties.
type LostPropertyService interface {
	Add(ctx context.Context, property *LostProperty) error
	GetByID(ctx context.Context, id int) (*LostProperty, error)
	GetPage(ctx context.Context, q Query, pageIndex, pageSize int) (*PaginatedResult[LostProperty], error)
	GetAll(ctx context.Context, q Query) (*PaginatedResult[LostProperty], error)
	Update(ctx context.Context, property *LostProperty) error
	Delete(ctx context.Context, id int) error
	HardDelete(ctx context.Context, id int) error
}
