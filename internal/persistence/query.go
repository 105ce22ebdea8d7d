package persistence

import (
	"fmt"
	"regexp"
	"slices"

	"gorm.io/gorm"

	"github.com/simp-lee/lostfound/internal/domain"
)

const defaultPageSize = 10

// validFieldName matches only alphanumeric characters and underscores.
var validFieldName = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// visibility returns a GORM scope that excludes soft-deleted rows unless the
// query asks for them.
func visibility(q domain.Query) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if q.IncludeDeleted {
			return db
		}
		return db.Where("is_deleted = ?", false)
	}
}

// conditions returns a GORM scope that applies the query's WHERE conditions.
// Only column names present in the allowed list are applied; others are
// silently ignored. Names are validated against a strict pattern to prevent
// SQL injection.
func conditions(q domain.Query, allowed []string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		for _, cond := range q.Conditions {
			if !validFieldName.MatchString(cond.Field) {
				continue
			}
			if !slices.Contains(allowed, cond.Field) {
				continue
			}

			switch cond.Op {
			case domain.OpEq:
				db = db.Where(cond.Field+" = ?", cond.Value)
			case domain.OpNe:
				db = db.Where(cond.Field+" <> ?", cond.Value)
			case domain.OpGt:
				db = db.Where(cond.Field+" > ?", cond.Value)
			case domain.OpGte:
				db = db.Where(cond.Field+" >= ?", cond.Value)
			case domain.OpLt:
				db = db.Where(cond.Field+" < ?", cond.Value)
			case domain.OpLte:
				db = db.Where(cond.Field+" <= ?", cond.Value)
			case domain.OpLike:
				db = db.Where(cond.Field+" LIKE ?", "%"+fmt.Sprint(cond.Value)+"%")
			}
		}
		return db
	}
}

// ordering returns a GORM scope that applies the query's ORDER BY, falling
// back to a stable default of ascending primary key.
func ordering(q domain.Query, allowed []string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if q.Order == nil {
			return db.Order("id")
		}

		field := q.Order.Field
		if !validFieldName.MatchString(field) || !slices.Contains(allowed, field) {
			return db.Order("id")
		}

		if q.Order.Desc {
			return db.Order(field + " DESC")
		}
		return db.Order(field)
	}
}

// eagerLoad returns a GORM scope that preloads the query's related entities.
// Only association names present in the allowed list are loaded.
func eagerLoad(q domain.Query, relations []string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		for _, name := range q.Include {
			if slices.Contains(relations, name) {
				db = db.Preload(name)
			}
		}
		return db
	}
}

// paginate returns a GORM scope that applies LIMIT and OFFSET.
func paginate(pageIndex, pageSize int) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		offset := (pageIndex - 1) * pageSize
		return db.Offset(offset).Limit(pageSize)
	}
}
