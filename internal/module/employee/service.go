package employee

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/simp-lee/lostfound/internal/domain"
	"github.com/simp-lee/lostfound/internal/persistence"
)

// employeeService implements domain.EmployeeService. Every mutating call
// opens one unit of work, saves once, and closes it.
type employeeService struct {
	db *gorm.DB
}

// NewEmployeeService creates a new EmployeeService over the given database.
func NewEmployeeService(db *gorm.DB) domain.EmployeeService {
	return &employeeService{db: db}
}

func (s *employeeService) unit() *persistence.UnitOfWork {
	return persistence.NewUnitOfWork(s.db)
}

// Add validates and persists a new employee. The UUID key is assigned here
// when the caller did not provide one.
func (s *employeeService) Add(ctx context.Context, employee *domain.Employee) error {
	if err := validateDateOfBirth(employee.DateOfBirth); err != nil {
		return err
	}
	if employee.ID == "" {
		employee.ID = uuid.NewString()
	}

	uow := s.unit()
	defer uow.Close()

	if err := uow.Employees().Insert(ctx, employee); err != nil {
		return err
	}
	_, err := uow.Save(ctx)
	return err
}

// GetByID retrieves an employee by ID, soft-deleted rows included.
// Absence is an empty result, not an error.
func (s *employeeService) GetByID(ctx context.Context, id string) (*domain.Employee, error) {
	uow := s.unit()
	defer uow.Close()

	return uow.Employees().GetByID(ctx, id)
}

// GetPage returns one page of employees matching q.
func (s *employeeService) GetPage(ctx context.Context, q domain.Query, pageIndex, pageSize int) (*domain.PaginatedResult[domain.Employee], error) {
	uow := s.unit()
	defer uow.Close()

	return uow.Employees().GetPage(ctx, q, pageIndex, pageSize)
}

// GetAll returns every employee matching q.
func (s *employeeService) GetAll(ctx context.Context, q domain.Query) (*domain.PaginatedResult[domain.Employee], error) {
	uow := s.unit()
	defer uow.Close()

	return uow.Employees().GetAll(ctx, q)
}

// Update loads the existing employee, applies the changed fields, and
// persists them. The audit timestamps on the passed entity reflect the
// committed state on return.
func (s *employeeService) Update(ctx context.Context, employee *domain.Employee) error {
	if err := validateDateOfBirth(employee.DateOfBirth); err != nil {
		return err
	}

	uow := s.unit()
	defer uow.Close()

	existing, err := uow.Employees().GetByID(ctx, employee.ID)
	if err != nil {
		return err
	}
	if existing == nil {
		return domain.ErrNotFound
	}

	existing.FirstName = employee.FirstName
	existing.LastName = employee.LastName
	existing.Phone = employee.Phone
	existing.Email = employee.Email
	existing.DateOfBirth = employee.DateOfBirth

	if err := uow.Employees().Update(ctx, existing); err != nil {
		return err
	}
	if _, err := uow.Save(ctx); err != nil {
		return err
	}

	*employee = *existing
	return nil
}

// Delete soft-deletes an employee. Lost properties referencing the employee
// are left untouched; the cascade applies to hard deletion only.
func (s *employeeService) Delete(ctx context.Context, id string) error {
	uow := s.unit()
	defer uow.Close()

	if err := uow.Employees().Delete(ctx, id, domain.DeleteSoft); err != nil {
		return err
	}
	_, err := uow.Save(ctx)
	return err
}

// HardDelete physically removes an employee and every lost property
// referencing them, soft-deleted rows included, in one committed operation.
func (s *employeeService) HardDelete(ctx context.Context, id string) error {
	uow := s.unit()
	defer uow.Close()

	q := domain.Query{IncludeDeleted: true}.Where("employee_id", domain.OpEq, id)
	properties, err := uow.LostProperties().GetAll(ctx, q)
	if err != nil {
		return err
	}
	for i := range properties.Result {
		if err := uow.LostProperties().DeleteEntity(ctx, &properties.Result[i], domain.DeleteHard); err != nil {
			return err
		}
	}

	if err := uow.Employees().Delete(ctx, id, domain.DeleteHard); err != nil {
		return err
	}

	_, err = uow.Save(ctx)
	return err
}

// validateDateOfBirth checks the derived age constraint: the employee must be
// between 18 and 100 years old at validation time.
func validateDateOfBirth(dob time.Time) error {
	now := time.Now()
	if dob.Before(now.AddDate(-100, 0, 0)) {
		return domain.NewAppError(domain.CodeValidation, "date of birth must represent an age of at most 100 years", nil)
	}
	if !dob.Before(now.AddDate(-18, 0, 0)) {
		return domain.NewAppError(domain.CodeValidation, "date of birth must represent an age of at least 18 years", nil)
	}
	return nil
}
