package persistence

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/simp-lee/lostfound/internal/domain"
)

// ErrUnitOfWorkClosed is returned when a repository or Save is used after
// Close. A unit of work is single-use: one logical operation, one Save, one
// Close.
var ErrUnitOfWorkClosed = errors.New("unit of work is closed")

type changeOp int

const (
	opInsert changeOp = iota
	opUpdate
	opDelete
)

// change is one staged mutation awaiting Save.
type change struct {
	entity any
	op     changeOp
	mode   domain.DeleteMode
}

// Entity configs shared by every unit of work. The field lists are the
// filter/sort allowlists, relations the preloadable associations.
var (
	employeeConfig = EntityConfig{
		Fields:    []string{"id", "first_name", "last_name", "phone", "email", "date_of_birth", "creation_time", "last_modified_time"},
		Relations: []string{"LostProperties"},
	}
	lostPropertyConfig = EntityConfig{
		Fields:       []string{"id", "name", "description", "status", "found_time", "employee_id", "location_id", "creation_time", "last_modified_time"},
		Relations:    []string{"Employee", "Location"},
		SequentialID: true,
	}
	locationConfig = EntityConfig{
		Fields:       []string{"id", "floor", "cube", "creation_time", "last_modified_time"},
		SequentialID: true,
	}
)

// UnitOfWork bounds one set of staged changes to one logical service
// operation. Repositories are constructed at creation time and share the
// unit's change set; writes they stage become durable in a single
// transaction when Save is called.
//
// A unit of work is request-scoped: it must not be shared across goroutines
// or retained beyond the call that created it.
type UnitOfWork struct {
	db      *gorm.DB
	changes []change
	closed  bool

	employees      *Repository[domain.Employee, string]
	lostProperties *Repository[domain.LostProperty, int]
	locations      *Repository[domain.Location, int]
}

// NewUnitOfWork creates a unit of work over the given database handle.
func NewUnitOfWork(db *gorm.DB) *UnitOfWork {
	u := &UnitOfWork{db: db}
	u.employees = newRepository[domain.Employee, string](u, employeeConfig)
	u.lostProperties = newRepository[domain.LostProperty, int](u, lostPropertyConfig)
	u.locations = newRepository[domain.Location, int](u, locationConfig)
	return u
}

// Employees returns the employee repository bound to this unit of work.
func (u *UnitOfWork) Employees() *Repository[domain.Employee, string] { return u.employees }

// LostProperties returns the lost-property repository bound to this unit of work.
func (u *UnitOfWork) LostProperties() *Repository[domain.LostProperty, int] {
	return u.lostProperties
}

// Locations returns the location repository bound to this unit of work.
func (u *UnitOfWork) Locations() *Repository[domain.Location, int] { return u.locations }

// Pending reports the number of staged changes awaiting Save.
func (u *UnitOfWork) Pending() int { return len(u.changes) }

// IsStaged reports whether the given entity instance has a staged change.
func (u *UnitOfWork) IsStaged(entity any) bool {
	for _, ch := range u.changes {
		if ch.entity == entity {
			return true
		}
	}
	return false
}

func (u *UnitOfWork) stage(ch change) { u.changes = append(u.changes, ch) }

func (u *UnitOfWork) isClosed() bool { return u.closed }

// Save flushes every staged change to storage in one transaction and returns
// the total number of affected rows. This is the single point where audit and
// soft-delete policy is applied, regardless of which repository staged the
// change:
//
//   - added entities get CreationTime stamped (UTC), never LastModifiedTime;
//   - modified entities get LastModifiedTime stamped;
//   - soft removals are reclassified into updates setting is_deleted, the row
//     stays in storage;
//   - hard removals delete the row.
//
// Any failure rolls back the whole transaction; nothing is partially applied.
func (u *UnitOfWork) Save(ctx context.Context) (int64, error) {
	if u.closed {
		return 0, ErrUnitOfWorkClosed
	}

	now := time.Now().UTC()
	var affected int64

	err := u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, ch := range u.changes {
			aud, _ := ch.entity.(domain.Auditable)

			var res *gorm.DB
			switch ch.op {
			case opInsert:
				if aud != nil {
					aud.SetCreationTime(now)
				}
				res = tx.Omit(clause.Associations).Create(ch.entity)

			case opUpdate:
				if aud != nil {
					aud.SetLastModifiedTime(now)
				}
				// Full-record replace keyed on the primary key; matching no
				// row means the target does not exist. Select("*") keeps
				// gorm's Save from reclassifying the zero-row update as a
				// create.
				res = tx.Select("*").Omit(clause.Associations).Save(ch.entity)
				if res.Error == nil && res.RowsAffected == 0 {
					return domain.NewAppError(domain.CodeNotFound, "update target does not exist", nil)
				}

			case opDelete:
				if ch.mode == domain.DeleteSoft {
					if aud != nil {
						aud.MarkDeleted()
					}
					res = tx.Model(ch.entity).UpdateColumn("is_deleted", true)
				} else {
					res = tx.Delete(ch.entity)
				}
			}

			if res.Error != nil {
				return res.Error
			}
			affected += res.RowsAffected
		}
		return nil
	})
	if err != nil {
		return 0, mapStorageError(err)
	}

	u.changes = nil
	return affected, nil
}

// Close releases the unit of work. It must be called exactly once after Save,
// whether Save succeeded or failed; any changes still staged are discarded.
func (u *UnitOfWork) Close() {
	u.changes = nil
	u.closed = true
}

// mapStorageError converts storage errors to domain errors, passing through
// errors that already carry a domain code.
func mapStorageError(err error) error {
	if err == nil {
		return nil
	}
	var appErr *domain.AppError
	if errors.As(err, &appErr) {
		return err
	}
	return domain.NewAppError(domain.CodeInternal, "storage failure", err)
}
