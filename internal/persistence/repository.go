package persistence

import (
	"context"

	"github.com/simp-lee/lostfound/internal/domain"
)

// EntityConfig describes what the generic repository may expose for one
// entity type: the filterable/sortable column names, the preloadable
// association names, and how primary keys are assigned.
type EntityConfig struct {
	// Fields is the allowlist of column names accepted in query conditions
	// and ordering.
	Fields []string
	// Relations is the allowlist of association names accepted for
	// eager-loading.
	Relations []string
	// SequentialID assigns integer keys as max(existing ids)+1 at insert
	// time. String-keyed entities arrive with the key pre-assigned by the
	// caller.
	SequentialID bool
}

// Repository is a generic CRUD and query engine over one entity type.
// Reads go straight to the store; writes only stage changes on the owning
// unit of work and become durable at Save.
//
// A repository is bound to its unit of work and shares its lifetime; like the
// unit of work it must not be used from multiple goroutines.
type Repository[T any, K comparable] struct {
	uow *UnitOfWork
	cfg EntityConfig
}

func newRepository[T any, K comparable](uow *UnitOfWork, cfg EntityConfig) *Repository[T, K] {
	return &Repository[T, K]{uow: uow, cfg: cfg}
}

// GetByID retrieves an entity by its primary key. Absence is not an error:
// the result is (nil, nil). Soft-deleted rows are returned with the flag set.
func (r *Repository[T, K]) GetByID(ctx context.Context, id K) (*T, error) {
	var entity T
	res := r.uow.db.WithContext(ctx).Limit(1).Find(&entity, "id = ?", id)
	if res.Error != nil {
		return nil, mapStorageError(res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, nil
	}
	return &entity, nil
}

// GetPage returns one page of entities matching q. The pipeline is applied in
// order: soft-delete exclusion, conditions, eager-loading, ordering (caller's
// or ascending primary key), then offset/limit. The total count is evaluated
// independently against the filtered-but-unpaged set so page metadata stays
// consistent with the filter regardless of ordering.
func (r *Repository[T, K]) GetPage(ctx context.Context, q domain.Query, pageIndex, pageSize int) (*domain.PaginatedResult[T], error) {
	if pageIndex < 1 {
		pageIndex = 1
	}
	if pageSize < 1 {
		pageSize = defaultPageSize
	}

	base := r.uow.db.WithContext(ctx).Model(new(T)).
		Scopes(visibility(q), conditions(q, r.cfg.Fields))

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, mapStorageError(err)
	}

	var items []T
	if err := base.Scopes(
		eagerLoad(q, r.cfg.Relations),
		ordering(q, r.cfg.Fields),
		paginate(pageIndex, pageSize),
	).Find(&items).Error; err != nil {
		return nil, mapStorageError(err)
	}

	return domain.NewPaginatedResult(items, total, pageIndex, pageSize), nil
}

// GetAll returns every entity matching q as a single page (TotalPages = 1).
func (r *Repository[T, K]) GetAll(ctx context.Context, q domain.Query) (*domain.PaginatedResult[T], error) {
	var items []T
	err := r.uow.db.WithContext(ctx).Model(new(T)).
		Scopes(
			visibility(q),
			conditions(q, r.cfg.Fields),
			eagerLoad(q, r.cfg.Relations),
			ordering(q, r.cfg.Fields),
		).
		Find(&items).Error
	if err != nil {
		return nil, mapStorageError(err)
	}

	return domain.NewUnpagedResult(items), nil
}

// Insert stages an add. For sequentially-keyed entities the primary key is
// assigned here as max(existing ids)+1, soft-deleted rows included. Two
// concurrent inserts can compute the same next id; the behavior is kept for
// compatibility with the stored data (see DESIGN.md).
func (r *Repository[T, K]) Insert(ctx context.Context, entity *T) error {
	if r.uow.isClosed() {
		return ErrUnitOfWorkClosed
	}

	if r.cfg.SequentialID {
		keyed, ok := any(entity).(domain.Keyed[int])
		if !ok {
			return domain.NewAppError(domain.CodeInternal, "sequential id requires an integer-keyed entity", nil)
		}

		var next int64
		err := r.uow.db.WithContext(ctx).Model(new(T)).
			Select("COALESCE(MAX(id), 0) + 1").
			Scan(&next).Error
		if err != nil {
			return mapStorageError(err)
		}
		keyed.SetID(int(next))
	}

	r.uow.stage(change{entity: entity, op: opInsert})
	return nil
}

// Update stages a full-record replace. The entity must already exist; a
// replace that matches no row fails the whole Save with NotFound.
func (r *Repository[T, K]) Update(_ context.Context, entity *T) error {
	if r.uow.isClosed() {
		return ErrUnitOfWorkClosed
	}
	r.uow.stage(change{entity: entity, op: opUpdate})
	return nil
}

// Delete loads the entity by id and stages its removal in the given mode.
// It fails with NotFound when the id does not resolve to an existing row.
func (r *Repository[T, K]) Delete(ctx context.Context, id K, mode domain.DeleteMode) error {
	if r.uow.isClosed() {
		return ErrUnitOfWorkClosed
	}

	entity, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if entity == nil {
		return domain.ErrNotFound
	}

	r.uow.stage(change{entity: entity, op: opDelete, mode: mode})
	return nil
}

// DeleteEntity stages the removal of an already-loaded entity in the given
// mode, without a lookup.
func (r *Repository[T, K]) DeleteEntity(_ context.Context, entity *T, mode domain.DeleteMode) error {
	if r.uow.isClosed() {
		return ErrUnitOfWorkClosed
	}
	r.uow.stage(change{entity: entity, op: opDelete, mode: mode})
	return nil
}
