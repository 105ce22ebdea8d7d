package persistence

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"github.com/simp-lee/lostfound/internal/domain"
)

// setupTestDB creates an in-memory SQLite database with all entity tables
// and foreign keys enforced, as in production.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:?_pragma=foreign_keys(1)"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := db.AutoMigrate(&domain.Employee{}, &domain.Location{}, &domain.LostProperty{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func newEmployee(id, first string) *domain.Employee {
	return &domain.Employee{
		ID:          id,
		FirstName:   first,
		LastName:    "Tester",
		Phone:       "555-0100",
		DateOfBirth: time.Date(1990, 6, 15, 0, 0, 0, 0, time.UTC),
	}
}

func mustSave(t *testing.T, uow *UnitOfWork) int64 {
	t.Helper()
	n, err := uow.Save(context.Background())
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	return n
}

func TestInsertAndGetByID(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	uow := NewUnitOfWork(db)
	emp := newEmployee("E1", "Alice")
	if err := uow.Employees().Insert(ctx, emp); err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if n := mustSave(t, uow); n != 1 {
		t.Errorf("affected=%d; want 1", n)
	}
	uow.Close()

	uow = NewUnitOfWork(db)
	defer uow.Close()
	got, err := uow.Employees().GetByID(ctx, "E1")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got == nil {
		t.Fatal("expected employee, got nil")
	}
	if got.FirstName != "Alice" {
		t.Errorf("FirstName=%q; want Alice", got.FirstName)
	}
	if got.CreationTime == nil {
		t.Error("CreationTime should be set on insert")
	}
	if got.LastModifiedTime != nil {
		t.Errorf("LastModifiedTime=%v; want nil after insert", got.LastModifiedTime)
	}
}

func TestGetByID_Absent(t *testing.T) {
	db := setupTestDB(t)
	uow := NewUnitOfWork(db)
	defer uow.Close()

	got, err := uow.Employees().GetByID(context.Background(), "missing")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil for absent id, got %+v", got)
	}
}

func TestInsert_SequentialIDs(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	for want := 1; want <= 3; want++ {
		uow := NewUnitOfWork(db)
		loc := &domain.Location{}
		if err := uow.Locations().Insert(ctx, loc); err != nil {
			t.Fatalf("Insert: %v", err)
		}
		mustSave(t, uow)
		uow.Close()
		if loc.ID != want {
			t.Errorf("ID=%d; want %d", loc.ID, want)
		}
	}
}

func TestInsert_SequentialIDCountsSoftDeleted(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	uow := NewUnitOfWork(db)
	loc := &domain.Location{}
	if err := uow.Locations().Insert(ctx, loc); err != nil {
		t.Fatalf("Insert: %v", err)
	}
	mustSave(t, uow)
	uow.Close()

	uow = NewUnitOfWork(db)
	if err := uow.Locations().Delete(ctx, loc.ID, domain.DeleteSoft); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	mustSave(t, uow)
	uow.Close()

	// A soft-deleted row still occupies its id.
	uow = NewUnitOfWork(db)
	next := &domain.Location{}
	if err := uow.Locations().Insert(ctx, next); err != nil {
		t.Fatalf("Insert: %v", err)
	}
	mustSave(t, uow)
	uow.Close()
	if next.ID != 2 {
		t.Errorf("ID=%d; want 2", next.ID)
	}
}

func TestGetPage_Pagination(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	// Insert one row per unit of work so each staged insert sees the committed
	// max id and the sequential key path is exercised for real.
	for i := 1; i <= 25; i++ {
		u := NewUnitOfWork(db)
		p := &domain.LostProperty{
			Name:        fmt.Sprintf("Item%02d", i),
			Description: "test item",
			Status:      domain.StatusLost,
		}
		if err := u.LostProperties().Insert(ctx, p); err != nil {
			t.Fatalf("Insert %d: %v", i, err)
		}
		mustSave(t, u)
		u.Close()
	}

	uow := NewUnitOfWork(db)
	defer uow.Close()

	page, err := uow.LostProperties().GetPage(ctx, domain.Query{}, 2, 10)
	if err != nil {
		t.Fatalf("GetPage: %v", err)
	}
	if len(page.Result) != 10 {
		t.Errorf("page length=%d; want 10", len(page.Result))
	}
	if page.TotalPages != 3 {
		t.Errorf("TotalPages=%d; want 3", page.TotalPages)
	}
	if page.PageIndex != 2 || page.PageSize != 10 {
		t.Errorf("PageIndex=%d PageSize=%d; want 2, 10", page.PageIndex, page.PageSize)
	}
	// Default ordering is ascending primary key.
	if page.Result[0].Name != "Item11" {
		t.Errorf("first=%q; want Item11", page.Result[0].Name)
	}
	if page.Result[9].Name != "Item20" {
		t.Errorf("last=%q; want Item20", page.Result[9].Name)
	}

	// The last partial page still reports the same page metadata.
	page, err = uow.LostProperties().GetPage(ctx, domain.Query{}, 3, 10)
	if err != nil {
		t.Fatalf("GetPage: %v", err)
	}
	if len(page.Result) != 5 {
		t.Errorf("page length=%d; want 5", len(page.Result))
	}
	if page.TotalPages != 3 {
		t.Errorf("TotalPages=%d; want 3", page.TotalPages)
	}
}

func TestGetPage_FilterAffectsTotal(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	statuses := []domain.PropertyStatus{
		domain.StatusLost, domain.StatusLost, domain.StatusLost,
		domain.StatusFound, domain.StatusReturn,
	}
	for i, st := range statuses {
		u := NewUnitOfWork(db)
		p := &domain.LostProperty{Name: fmt.Sprintf("Item%d", i), Description: "x", Status: st}
		if err := u.LostProperties().Insert(ctx, p); err != nil {
			t.Fatalf("Insert: %v", err)
		}
		mustSave(t, u)
		u.Close()
	}

	uow := NewUnitOfWork(db)
	defer uow.Close()

	q := domain.Query{}.Where("status", domain.OpEq, "Lost")
	page, err := uow.LostProperties().GetPage(ctx, q, 1, 2)
	if err != nil {
		t.Fatalf("GetPage: %v", err)
	}
	if len(page.Result) != 2 {
		t.Errorf("page length=%d; want 2", len(page.Result))
	}
	// 3 matching rows at page size 2 means 2 pages, regardless of this page's length.
	if page.TotalPages != 2 {
		t.Errorf("TotalPages=%d; want 2", page.TotalPages)
	}
}

func TestGetPage_DisallowedFieldIgnored(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	u := NewUnitOfWork(db)
	if err := u.Employees().Insert(ctx, newEmployee("E1", "Alice")); err != nil {
		t.Fatalf("Insert: %v", err)
	}
	mustSave(t, u)
	u.Close()

	uow := NewUnitOfWork(db)
	defer uow.Close()

	// A condition on a column outside the allowlist must not restrict the
	// result, and must never reach SQL.
	q := domain.Query{}.Where("password; DROP TABLE employees", domain.OpEq, "x")
	page, err := uow.Employees().GetPage(ctx, q, 1, 10)
	if err != nil {
		t.Fatalf("GetPage: %v", err)
	}
	if len(page.Result) != 1 {
		t.Errorf("page length=%d; want 1", len(page.Result))
	}
}

func TestGetPage_LikeCondition(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	names := []string{"Umbrella", "Black Umbrella", "Wallet"}
	for i, n := range names {
		u := NewUnitOfWork(db)
		if err := u.Employees().Insert(ctx, newEmployee(fmt.Sprintf("E%d", i), n)); err != nil {
			t.Fatalf("Insert: %v", err)
		}
		mustSave(t, u)
		u.Close()
	}

	uow := NewUnitOfWork(db)
	defer uow.Close()

	q := domain.Query{}.Where("first_name", domain.OpLike, "Umbrella")
	page, err := uow.Employees().GetPage(ctx, q, 1, 10)
	if err != nil {
		t.Fatalf("GetPage: %v", err)
	}
	if len(page.Result) != 2 {
		t.Errorf("matches=%d; want 2", len(page.Result))
	}
}

func TestGetPage_Ordering(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	for i, n := range []string{"Charlie", "Alice", "Bob"} {
		u := NewUnitOfWork(db)
		if err := u.Employees().Insert(ctx, newEmployee(fmt.Sprintf("E%d", i), n)); err != nil {
			t.Fatalf("Insert: %v", err)
		}
		mustSave(t, u)
		u.Close()
	}

	uow := NewUnitOfWork(db)
	defer uow.Close()

	page, err := uow.Employees().GetPage(ctx, domain.Query{}.OrderBy("first_name", true), 1, 10)
	if err != nil {
		t.Fatalf("GetPage: %v", err)
	}
	if page.Result[0].FirstName != "Charlie" || page.Result[2].FirstName != "Alice" {
		t.Errorf("order=%q..%q; want Charlie..Alice", page.Result[0].FirstName, page.Result[2].FirstName)
	}

	// Ordering on a disallowed field falls back to primary key order.
	page, err = uow.Employees().GetPage(ctx, domain.Query{}.OrderBy("nope", true), 1, 10)
	if err != nil {
		t.Fatalf("GetPage: %v", err)
	}
	if page.Result[0].ID != "E0" {
		t.Errorf("first ID=%q; want E0", page.Result[0].ID)
	}
}

func TestSoftDelete_Visibility(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	u := NewUnitOfWork(db)
	if err := u.Employees().Insert(ctx, newEmployee("E1", "Alice")); err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if err := u.Employees().Insert(ctx, newEmployee("E2", "Bob")); err != nil {
		t.Fatalf("Insert: %v", err)
	}
	mustSave(t, u)
	u.Close()

	u = NewUnitOfWork(db)
	if err := u.Employees().Delete(ctx, "E1", domain.DeleteSoft); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	mustSave(t, u)
	u.Close()

	uow := NewUnitOfWork(db)
	defer uow.Close()

	// Default query excludes the soft-deleted row.
	page, err := uow.Employees().GetPage(ctx, domain.Query{}, 1, 10)
	if err != nil {
		t.Fatalf("GetPage: %v", err)
	}
	if len(page.Result) != 1 || page.Result[0].ID != "E2" {
		t.Errorf("visible=%+v; want only E2", page.Result)
	}

	// IncludeDeleted surfaces it again.
	page, err = uow.Employees().GetPage(ctx, domain.Query{IncludeDeleted: true}, 1, 10)
	if err != nil {
		t.Fatalf("GetPage: %v", err)
	}
	if len(page.Result) != 2 {
		t.Errorf("visible=%d; want 2 with IncludeDeleted", len(page.Result))
	}

	// GetByID bypasses the visibility filter and reports the flag.
	got, err := uow.Employees().GetByID(ctx, "E1")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got == nil || !got.IsDeleted {
		t.Errorf("got=%+v; want soft-deleted row with IsDeleted=true", got)
	}
}

func TestSoftDelete_DoesNotStampLastModified(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	u := NewUnitOfWork(db)
	if err := u.Employees().Insert(ctx, newEmployee("E1", "Alice")); err != nil {
		t.Fatalf("Insert: %v", err)
	}
	mustSave(t, u)
	u.Close()

	u = NewUnitOfWork(db)
	if err := u.Employees().Delete(ctx, "E1", domain.DeleteSoft); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	mustSave(t, u)
	u.Close()

	uow := NewUnitOfWork(db)
	defer uow.Close()
	got, err := uow.Employees().GetByID(ctx, "E1")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.LastModifiedTime != nil {
		t.Errorf("LastModifiedTime=%v; want nil after soft delete", got.LastModifiedTime)
	}
}

func TestHardDelete(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	u := NewUnitOfWork(db)
	if err := u.Employees().Insert(ctx, newEmployee("E1", "Alice")); err != nil {
		t.Fatalf("Insert: %v", err)
	}
	mustSave(t, u)
	u.Close()

	u = NewUnitOfWork(db)
	if err := u.Employees().Delete(ctx, "E1", domain.DeleteHard); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	mustSave(t, u)
	u.Close()

	uow := NewUnitOfWork(db)
	defer uow.Close()
	got, err := uow.Employees().GetByID(ctx, "E1")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got != nil {
		t.Errorf("got=%+v; want nil after hard delete", got)
	}
}

func TestDelete_NotFound(t *testing.T) {
	db := setupTestDB(t)
	uow := NewUnitOfWork(db)
	defer uow.Close()

	err := uow.Employees().Delete(context.Background(), "missing", domain.DeleteSoft)
	if !domain.IsNotFound(err) {
		t.Errorf("expected NotFound, got %v", err)
	}
	if uow.Pending() != 0 {
		t.Errorf("Pending=%d; want 0 after failed delete", uow.Pending())
	}
}

func TestUpdate_StampsLastModified(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	u := NewUnitOfWork(db)
	emp := newEmployee("E1", "Alice")
	if err := u.Employees().Insert(ctx, emp); err != nil {
		t.Fatalf("Insert: %v", err)
	}
	mustSave(t, u)
	u.Close()
	created := *emp.CreationTime

	u = NewUnitOfWork(db)
	emp.FirstName = "Alicia"
	if err := u.Employees().Update(ctx, emp); err != nil {
		t.Fatalf("Update: %v", err)
	}
	mustSave(t, u)
	u.Close()

	uow := NewUnitOfWork(db)
	defer uow.Close()
	got, err := uow.Employees().GetByID(ctx, "E1")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.FirstName != "Alicia" {
		t.Errorf("FirstName=%q; want Alicia", got.FirstName)
	}
	if got.LastModifiedTime == nil {
		t.Fatal("LastModifiedTime should be set after update")
	}
	if !got.CreationTime.Equal(created) {
		t.Errorf("CreationTime changed on update: %v -> %v", created, got.CreationTime)
	}
}

func TestSave_UpdateMissingRollsBack(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	uow := NewUnitOfWork(db)
	defer uow.Close()

	// One valid insert plus one update of a row that does not exist. The whole
	// save must fail and the insert must not land.
	if err := uow.Employees().Insert(ctx, newEmployee("E1", "Alice")); err != nil {
		t.Fatalf("Insert: %v", err)
	}
	ghost := newEmployee("ghost", "Nobody")
	if err := uow.Employees().Update(ctx, ghost); err != nil {
		t.Fatalf("Update: %v", err)
	}

	_, err := uow.Save(ctx)
	if !domain.IsNotFound(err) {
		t.Fatalf("expected NotFound from Save, got %v", err)
	}

	check := NewUnitOfWork(db)
	defer check.Close()
	got, err := check.Employees().GetByID(ctx, "E1")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got != nil {
		t.Errorf("insert leaked through a failed save: %+v", got)
	}
}

func TestSave_MultipleChangesOneTransaction(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	uow := NewUnitOfWork(db)
	emp := newEmployee("E1", "Alice")
	loc := &domain.Location{}
	if err := uow.Employees().Insert(ctx, emp); err != nil {
		t.Fatalf("Insert employee: %v", err)
	}
	if err := uow.Locations().Insert(ctx, loc); err != nil {
		t.Fatalf("Insert location: %v", err)
	}
	if uow.Pending() != 2 {
		t.Errorf("Pending=%d; want 2", uow.Pending())
	}
	if !uow.IsStaged(emp) || !uow.IsStaged(loc) {
		t.Error("both entities should be staged")
	}

	n := mustSave(t, uow)
	if n != 2 {
		t.Errorf("affected=%d; want 2", n)
	}
	if uow.Pending() != 0 {
		t.Errorf("Pending=%d; want 0 after save", uow.Pending())
	}
	uow.Close()
}

func TestSave_EmptyIsNoOp(t *testing.T) {
	db := setupTestDB(t)
	uow := NewUnitOfWork(db)
	defer uow.Close()

	n, err := uow.Save(context.Background())
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if n != 0 {
		t.Errorf("affected=%d; want 0", n)
	}
}

func TestClosedUnitOfWork(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	uow := NewUnitOfWork(db)
	uow.Close()

	if err := uow.Employees().Insert(ctx, newEmployee("E1", "Alice")); !errors.Is(err, ErrUnitOfWorkClosed) {
		t.Errorf("Insert after close: got %v; want ErrUnitOfWorkClosed", err)
	}
	if err := uow.Employees().Update(ctx, newEmployee("E1", "Alice")); !errors.Is(err, ErrUnitOfWorkClosed) {
		t.Errorf("Update after close: got %v; want ErrUnitOfWorkClosed", err)
	}
	if err := uow.Employees().Delete(ctx, "E1", domain.DeleteSoft); !errors.Is(err, ErrUnitOfWorkClosed) {
		t.Errorf("Delete after close: got %v; want ErrUnitOfWorkClosed", err)
	}
	if _, err := uow.Save(ctx); !errors.Is(err, ErrUnitOfWorkClosed) {
		t.Errorf("Save after close: got %v; want ErrUnitOfWorkClosed", err)
	}
}

func TestClose_DiscardsStagedChanges(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	uow := NewUnitOfWork(db)
	if err := uow.Employees().Insert(ctx, newEmployee("E1", "Alice")); err != nil {
		t.Fatalf("Insert: %v", err)
	}
	uow.Close()

	check := NewUnitOfWork(db)
	defer check.Close()
	got, err := check.Employees().GetByID(ctx, "E1")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got != nil {
		t.Errorf("discarded insert reached storage: %+v", got)
	}
}

func TestGetAll_EagerLoad(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	u := NewUnitOfWork(db)
	emp := newEmployee("11111111-1111-1111-1111-111111111111", "Alice")
	if err := u.Employees().Insert(ctx, emp); err != nil {
		t.Fatalf("Insert employee: %v", err)
	}
	mustSave(t, u)
	u.Close()

	u = NewUnitOfWork(db)
	p := &domain.LostProperty{
		Name:        "Umbrella",
		Description: "black",
		Status:      domain.StatusFound,
		EmployeeID:  &emp.ID,
	}
	if err := u.LostProperties().Insert(ctx, p); err != nil {
		t.Fatalf("Insert property: %v", err)
	}
	mustSave(t, u)
	u.Close()

	uow := NewUnitOfWork(db)
	defer uow.Close()

	all, err := uow.LostProperties().GetAll(ctx, domain.Query{Include: []string{"Employee"}})
	if err != nil {
		t.Fatalf("GetAll: %v", err)
	}
	if len(all.Result) != 1 {
		t.Fatalf("result length=%d; want 1", len(all.Result))
	}
	if all.Result[0].Employee == nil || all.Result[0].Employee.FirstName != "Alice" {
		t.Errorf("Employee=%+v; want preloaded Alice", all.Result[0].Employee)
	}
	if all.TotalPages != 1 {
		t.Errorf("TotalPages=%d; want 1", all.TotalPages)
	}

	// Unknown relation names are ignored rather than failing the query.
	all, err = uow.LostProperties().GetAll(ctx, domain.Query{Include: []string{"Nope"}})
	if err != nil {
		t.Fatalf("GetAll with unknown include: %v", err)
	}
	if len(all.Result) != 1 {
		t.Errorf("result length=%d; want 1", len(all.Result))
	}
}
