package lostproperty

import (
	"context"

	"gorm.io/gorm"

	"github.com/simp-lee/lostfound/internal/domain"
	"github.com/simp-lee/lostfound/internal/persistence"
)

// lostPropertyService implements domain.LostPropertyService. It owns the
// cross-entity integrity checks the storage layer cannot express: a property
// may only reference an employee or location that exists.
type lostPropertyService struct {
	db *gorm.DB
}

// NewLostPropertyService creates a new LostPropertyService over the given database.
func NewLostPropertyService(db *gorm.DB) domain.LostPropertyService {
	return &lostPropertyService{db: db}
}

func (s *lostPropertyService) unit() *persistence.UnitOfWork {
	return persistence.NewUnitOfWork(s.db)
}

// Add validates references and persists a new lost property. The sequential
// key is assigned by the repository. Nothing reaches storage when a
// reference check fails.
func (s *lostPropertyService) Add(ctx context.Context, property *domain.LostProperty) error {
	if !property.Status.Valid() {
		return domain.NewAppError(domain.CodeValidation, "invalid property status", nil)
	}

	uow := s.unit()
	defer uow.Close()

	if err := s.checkReferences(ctx, uow, property); err != nil {
		return err
	}

	if err := uow.LostProperties().Insert(ctx, property); err != nil {
		return err
	}
	_, err := uow.Save(ctx)
	return err
}

// GetByID retrieves a lost property by ID, soft-deleted rows included.
// Absence is an empty result, not an error.
func (s *lostPropertyService) GetByID(ctx context.Context, id int) (*domain.LostProperty, error) {
	uow := s.unit()
	defer uow.Close()

	return uow.LostProperties().GetByID(ctx, id)
}

// GetPage returns one page of lost properties matching q.
func (s *lostPropertyService) GetPage(ctx context.Context, q domain.Query, pageIndex, pageSize int) (*domain.PaginatedResult[domain.LostProperty], error) {
	uow := s.unit()
	defer uow.Close()

	return uow.LostProperties().GetPage(ctx, q, pageIndex, pageSize)
}

// GetAll returns every lost property matching q.
func (s *lostPropertyService) GetAll(ctx context.Context, q domain.Query) (*domain.PaginatedResult[domain.LostProperty], error) {
	uow := s.unit()
	defer uow.Close()

	return uow.LostProperties().GetAll(ctx, q)
}

// Update loads the existing property, re-validates references, applies the
// changed fields, and persists them.
func (s *lostPropertyService) Update(ctx context.Context, property *domain.LostProperty) error {
	if !property.Status.Valid() {
		return domain.NewAppError(domain.CodeValidation, "invalid property status", nil)
	}

	uow := s.unit()
	defer uow.Close()

	existing, err := uow.LostProperties().GetByID(ctx, property.ID)
	if err != nil {
		return err
	}
	if existing == nil {
		return domain.ErrNotFound
	}

	if err := s.checkReferences(ctx, uow, property); err != nil {
		return err
	}

	existing.Name = property.Name
	existing.Description = property.Description
	existing.Status = property.Status
	existing.FoundTime = property.FoundTime
	existing.EmployeeID = property.EmployeeID
	existing.LocationID = property.LocationID

	if err := uow.LostProperties().Update(ctx, existing); err != nil {
		return err
	}
	if _, err := uow.Save(ctx); err != nil {
		return err
	}

	*property = *existing
	return nil
}

// Delete soft-deletes a lost property.
func (s *lostPropertyService) Delete(ctx context.Context, id int) error {
	uow := s.unit()
	defer uow.Close()

	if err := uow.LostProperties().Delete(ctx, id, domain.DeleteSoft); err != nil {
		return err
	}
	_, err := uow.Save(ctx)
	return err
}

// HardDelete physically removes a lost property.
func (s *lostPropertyService) HardDelete(ctx context.Context, id int) error {
	uow := s.unit()
	defer uow.Close()

	if err := uow.LostProperties().Delete(ctx, id, domain.DeleteHard); err != nil {
		return err
	}
	_, err := uow.Save(ctx)
	return err
}

// checkReferences verifies that the employee and location the property points
// at exist. A dangling reference fails with MissingReference naming the
// offending side.
func (s *lostPropertyService) checkReferences(ctx context.Context, uow *persistence.UnitOfWork, property *domain.LostProperty) error {
	if property.EmployeeID != nil && *property.EmployeeID != "" {
		emp, err := uow.Employees().GetByID(ctx, *property.EmployeeID)
		if err != nil {
			return err
		}
		if emp == nil {
			return domain.NewMissingReference("employee", *property.EmployeeID)
		}
	}

	if property.LocationID != nil {
		loc, err := uow.Locations().GetByID(ctx, *property.LocationID)
		if err != nil {
			return err
		}
		if loc == nil {
			return domain.NewMissingReference("location", *property.LocationID)
		}
	}

	return nil
}
