package location

import (
	"context"

	"gorm.io/gorm"

	"github.com/simp-lee/lostfound/internal/domain"
	"github.com/simp-lee/lostfound/internal/persistence"
)

// locationService implements domain.LocationService.
type locationService struct {
	db *gorm.DB
}

// NewLocationService creates a new LocationService over the given database.
func NewLocationService(db *gorm.DB) domain.LocationService {
	return &locationService{db: db}
}

func (s *locationService) unit() *persistence.UnitOfWork {
	return persistence.NewUnitOfWork(s.db)
}

// Add persists a new location. The sequential key is assigned by the repository.
func (s *locationService) Add(ctx context.Context, location *domain.Location) error {
	uow := s.unit()
	defer uow.Close()

	if err := uow.Locations().Insert(ctx, location); err != nil {
		return err
	}
	_, err := uow.Save(ctx)
	return err
}

// GetByID retrieves a location by ID, soft-deleted rows included.
// Absence is an empty result, not an error.
func (s *locationService) GetByID(ctx context.Context, id int) (*domain.Location, error) {
	uow := s.unit()
	defer uow.Close()

	return uow.Locations().GetByID(ctx, id)
}

// GetPage returns one page of locations matching q.
func (s *locationService) GetPage(ctx context.Context, q domain.Query, pageIndex, pageSize int) (*domain.PaginatedResult[domain.Location], error) {
	uow := s.unit()
	defer uow.Close()

	return uow.Locations().GetPage(ctx, q, pageIndex, pageSize)
}

// GetAll returns every location matching q.
func (s *locationService) GetAll(ctx context.Context, q domain.Query) (*domain.PaginatedResult[domain.Location], error) {
	uow := s.unit()
	defer uow.Close()

	return uow.Locations().GetAll(ctx, q)
}

// Update loads the existing location, applies the changed fields, and persists them.
func (s *locationService) Update(ctx context.Context, location *domain.Location) error {
	uow := s.unit()
	defer uow.Close()

	existing, err := uow.Locations().GetByID(ctx, location.ID)
	if err != nil {
		return err
	}
	if existing == nil {
		return domain.ErrNotFound
	}

	existing.Floor = location.Floor
	existing.Cube = location.Cube

	if err := uow.Locations().Update(ctx, existing); err != nil {
		return err
	}
	if _, err := uow.Save(ctx); err != nil {
		return err
	}

	*location = *existing
	return nil
}

// Delete soft-deletes a location.
func (s *locationService) Delete(ctx context.Context, id int) error {
	uow := s.unit()
	defer uow.Close()

	if err := uow.Locations().Delete(ctx, id, domain.DeleteSoft); err != nil {
		return err
	}
	_, err := uow.Save(ctx)
	return err
}

// HardDelete physically removes a location. It does not cascade: lost
// properties still referencing the location make the commit fail on the
// RESTRICT constraint.
func (s *locationService) HardDelete(ctx context.Context, id int) error {
	uow := s.unit()
	defer uow.Close()

	if err := uow.Locations().Delete(ctx, id, domain.DeleteHard); err != nil {
		return err
	}
	_, err := uow.Save(ctx)
	return err
}
