package domain

import "context"

// Location represents a place where a lost property was found or stored.
// The primary key is assigned sequentially by the repository.
type Location struct {
	ID int `gorm:"primaryKey;autoIncrement:false" json:"id"`
	AuditEntity
	Floor *int    `json:"floor"`
	Cube  *string `gorm:"size:150" json:"cube"`
}

// GetID returns the primary key.
func (l *Location) GetID() int { return l.ID }

// SetID assigns the primary key.
func (l *Location) SetID(id int) { l.ID = id }

// LocationService defines the business logic interface for locations.
//
// HardDelete does not cascade to lost properties referencing the location;
// rows that still reference it keep their LocationID and fail the RESTRICT
// constraint at commit time.
type LocationService interface {
	Add(ctx context.Context, location *Location) error
	GetByID(ctx context.Context, id int) (*Location, error)
	GetPage(ctx context.Context, q Query, pageIndex, pageSize int) (*PaginatedResult[Location], error)
	GetAll(ctx context.Context, q Query) (*PaginatedResult[Location], error)
	Update(ctx context.Context, location *Location) error
	Delete(ctx context.Context, id int) error
	HardDelete(ctx context.Context, id int) error
}
