package domain

import (
	"math"
	"time"
)

// AuditEntity is the common base struct embedded by all persisted models.
// Audit timestamps are maintained by the persistence layer at commit time
// rather than by GORM's automatic time tracking: CreationTime is set exactly
// once at the first successful insert, LastModifiedTime on every committed
// update and never on insert.
type AuditEntity struct {
	CreationTime     *time.Time `gorm:"column:creation_time" json:"creationTime"`
	LastModifiedTime *time.Time `gorm:"column:last_modified_time" json:"lastModifiedTime"`
	IsDeleted        bool       `gorm:"column:is_deleted;default:false;index" json:"isDeleted"`
}

// SetCreationTime records the insert timestamp.
func (e *AuditEntity) SetCreationTime(t time.Time) { e.CreationTime = &t }

// SetLastModifiedTime records the update timestamp.
func (e *AuditEntity) SetLastModifiedTime(t time.Time) { e.LastModifiedTime = &t }

// MarkDeleted flags the record as logically removed.
func (e *AuditEntity) MarkDeleted() { e.IsDeleted = true }

// Auditable is implemented by every entity embedding AuditEntity. The
// persistence layer uses it to stamp timestamps and apply soft-delete policy
// when staged changes are flushed.
type Auditable interface {
	SetCreationTime(t time.Time)
	SetLastModifiedTime(t time.Time)
	MarkDeleted()
}

// Keyed exposes an entity's primary key to the generic repository.
type Keyed[K comparable] interface {
	GetID() K
	SetID(id K)
}

// DeleteMode selects between logical and physical removal. It is an explicit
// parameter of delete operations rather than mutable entity state, so the
// outcome cannot depend on call ordering.
type DeleteMode int

const (
	// DeleteSoft keeps the row and sets IsDeleted at commit time.
	DeleteSoft DeleteMode = iota
	// DeleteHard physically removes the row.
	DeleteHard
)

// Op is a comparison operator in a query condition.
type Op string

const (
	OpEq   Op = "eq"
	OpNe   Op = "ne"
	OpGt   Op = "gt"
	OpGte  Op = "gte"
	OpLt   Op = "lt"
	OpLte  Op = "lte"
	OpLike Op = "like"
)

// Condition is a single field comparison. Conditions in a Query are combined
// with AND. Field names are validated against the entity's allowlist by the
// storage adapter.
type Condition struct {
	Field string
	Op    Op
	Value any
}

// Order is a field+direction pair used to sort query results before paging.
type Order struct {
	Field string
	Desc  bool
}

// Query is a typed query specification: the caller builds the filter,
// ordering, and eager-load list, and the repository interprets it against
// the backing store.
type Query struct {
	Conditions     []Condition
	Order          *Order
	Include        []string
	IncludeDeleted bool
}

// Where appends an AND condition and returns the query for chaining.
func (q Query) Where(field string, op Op, value any) Query {
	q.Conditions = append(q.Conditions, Condition{Field: field, Op: op, Value: value})
	return q
}

// OrderBy sets the ordering and returns the query for chaining.
func (q Query) OrderBy(field string, desc bool) Query {
	q.Order = &Order{Field: field, Desc: desc}
	return q
}

// PageRequest holds pagination, sorting, filtering, and eager-load parameters
// as parsed from the HTTP boundary.
type PageRequest struct {
	PageIndex      int
	PageSize       int
	Sort           string
	Filter         map[string]string
	Include        []string
	IncludeDeleted bool
}

// PaginatedResult describes one page of query results plus total-page
// metadata. The JSON field names are a wire contract and must not change.
type PaginatedResult[T any] struct {
	Result     []T `json:"result"`
	PageIndex  int `json:"pageIndex"`
	PageSize   int `json:"pageSize"`
	TotalPages int `json:"totalPages"`
}

// HasPreviousPage reports whether a previous page exists.
func (p *PaginatedResult[T]) HasPreviousPage() bool { return p.PageIndex > 1 }

// HasNextPage reports whether a further page exists.
func (p *PaginatedResult[T]) HasNextPage() bool { return p.PageIndex < p.TotalPages }

// NewPaginatedResult builds a page container. TotalPages is computed from the
// total filtered count before paging, never from the returned page's length.
func NewPaginatedResult[T any](items []T, total int64, pageIndex, pageSize int) *PaginatedResult[T] {
	totalPages := 0
	if pageSize > 0 {
		totalPages = int(math.Ceil(float64(total) / float64(pageSize)))
	}

	if items == nil {
		items = []T{}
	}

	return &PaginatedResult[T]{
		Result:     items,
		PageIndex:  pageIndex,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}
}

// NewUnpagedResult wraps a full result set as a single page.
func NewUnpagedResult[T any](items []T) *PaginatedResult[T] {
	if items == nil {
		items = []T{}
	}
	return &PaginatedResult[T]{
		Result:     items,
		PageIndex:  1,
		PageSize:   len(items),
		TotalPages: 1,
	}
}
