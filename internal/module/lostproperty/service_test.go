package lostproperty

import (
	"context"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"github.com/simp-lee/lostfound/internal/domain"
	"github.com/simp-lee/lostfound/internal/module/employee"
	"github.com/simp-lee/lostfound/internal/module/location"
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

func addEmployee(t *testing.T, db *gorm.DB) *domain.Employee {
	t.Helper()
	emp := &domain.Employee{
		FirstName:   "Alice",
		LastName:    "Smith",
		Phone:       "555-0100",
		DateOfBirth: time.Date(1990, 6, 15, 0, 0, 0, 0, time.UTC),
	}
	if err := employee.NewEmployeeService(db).Add(context.Background(), emp); err != nil {
		t.Fatalf("add employee: %v", err)
	}
	return emp
}

func addLocation(t *testing.T, db *gorm.DB) *domain.Location {
	t.Helper()
	floor := 3
	loc := &domain.Location{Floor: &floor}
	if err := location.NewLocationService(db).Add(context.Background(), loc); err != nil {
		t.Fatalf("add location: %v", err)
	}
	return loc
}

func validProperty() *domain.LostProperty {
	return &domain.LostProperty{
		Name:        "Umbrella",
		Description: "black, wooden handle",
		Status:      domain.StatusLost,
	}
}

func TestAdd_SequentialIDs(t *testing.T) {
	db := setupTestDB(t)
	svc := NewLostPropertyService(db)
	ctx := context.Background()

	for want := 1; want <= 3; want++ {
		p := validProperty()
		if err := svc.Add(ctx, p); err != nil {
			t.Fatalf("Add: %v", err)
		}
		if p.ID != want {
			t.Errorf("ID=%d; want %d", p.ID, want)
		}
	}
}

func TestAdd_InvalidStatus(t *testing.T) {
	db := setupTestDB(t)
	svc := NewLostPropertyService(db)

	p := validProperty()
	p.Status = "Misplaced"
	err := svc.Add(context.Background(), p)
	if !domain.IsValidation(err) {
		t.Errorf("expected validation error, got %v", err)
	}
}

func TestAdd_MissingEmployee(t *testing.T) {
	db := setupTestDB(t)
	svc := NewLostPropertyService(db)
	ctx := context.Background()

	ghost := "no-such-employee"
	p := validProperty()
	p.EmployeeID = &ghost

	err := svc.Add(ctx, p)
	if !domain.IsMissingReference(err) {
		t.Fatalf("expected MissingReference, got %v", err)
	}

	// Nothing may reach storage on a failed reference check.
	all, err := svc.GetAll(ctx, domain.Query{IncludeDeleted: true})
	if err != nil {
		t.Fatalf("GetAll: %v", err)
	}
	if len(all.Result) != 0 {
		t.Errorf("stored=%d; want 0 after failed add", len(all.Result))
	}
}

func TestAdd_MissingLocation(t *testing.T) {
	db := setupTestDB(t)
	svc := NewLostPropertyService(db)

	locID := 42
	p := validProperty()
	p.LocationID = &locID

	err := svc.Add(context.Background(), p)
	if !domain.IsMissingReference(err) {
		t.Errorf("expected MissingReference, got %v", err)
	}
}

func TestAdd_WithReferences(t *testing.T) {
	db := setupTestDB(t)
	svc := NewLostPropertyService(db)
	ctx := context.Background()

	emp := addEmployee(t, db)
	loc := addLocation(t, db)

	p := validProperty()
	p.EmployeeID = &emp.ID
	p.LocationID = &loc.ID
	if err := svc.Add(ctx, p); err != nil {
		t.Fatalf("Add: %v", err)
	}

	got, err := svc.GetByID(ctx, p.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.EmployeeID == nil || *got.EmployeeID != emp.ID {
		t.Errorf("EmployeeID=%v; want %s", got.EmployeeID, emp.ID)
	}
	if got.LocationID == nil || *got.LocationID != loc.ID {
		t.Errorf("LocationID=%v; want %d", got.LocationID, loc.ID)
	}
}

func TestUpdate_RevalidatesReferences(t *testing.T) {
	db := setupTestDB(t)
	svc := NewLostPropertyService(db)
	ctx := context.Background()

	p := validProperty()
	if err := svc.Add(ctx, p); err != nil {
		t.Fatalf("Add: %v", err)
	}

	ghost := "no-such-employee"
	p.EmployeeID = &ghost
	err := svc.Update(ctx, p)
	if !domain.IsMissingReference(err) {
		t.Fatalf("expected MissingReference, got %v", err)
	}

	// The stored row keeps its previous state.
	got, err := svc.GetByID(ctx, p.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.EmployeeID != nil {
		t.Errorf("EmployeeID=%v; want nil after rejected update", got.EmployeeID)
	}
}

func TestUpdate_StatusTransition(t *testing.T) {
	db := setupTestDB(t)
	svc := NewLostPropertyService(db)
	ctx := context.Background()

	p := validProperty()
	if err := svc.Add(ctx, p); err != nil {
		t.Fatalf("Add: %v", err)
	}

	found := time.Date(2026, 8, 20, 14, 0, 0, 0, time.UTC)
	p.Status = domain.StatusFound
	p.FoundTime = &found
	if err := svc.Update(ctx, p); err != nil {
		t.Fatalf("Update: %v", err)
	}

	got, err := svc.GetByID(ctx, p.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Status != domain.StatusFound {
		t.Errorf("Status=%q; want Found", got.Status)
	}
	if got.FoundTime == nil || !got.FoundTime.Equal(found) {
		t.Errorf("FoundTime=%v; want %v", got.FoundTime, found)
	}
	if got.LastModifiedTime == nil {
		t.Error("LastModifiedTime should be set after update")
	}
}

func TestUpdate_NotFound(t *testing.T) {
	db := setupTestDB(t)
	svc := NewLostPropertyService(db)

	p := validProperty()
	p.ID = 99
	if err := svc.Update(context.Background(), p); !domain.IsNotFound(err) {
		t.Errorf("expected NotFound, got %v", err)
	}
}

func TestDeleteAndHardDelete(t *testing.T) {
	db := setupTestDB(t)
	svc := NewLostPropertyService(db)
	ctx := context.Background()

	p := validProperty()
	if err := svc.Add(ctx, p); err != nil {
		t.Fatalf("Add: %v", err)
	}

	if err := svc.Delete(ctx, p.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	got, err := svc.GetByID(ctx, p.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got == nil || !got.IsDeleted {
		t.Errorf("got=%+v; want soft-deleted row", got)
	}

	// Soft-deleted rows can still be hard-deleted.
	if err := svc.HardDelete(ctx, p.ID); err != nil {
		t.Fatalf("HardDelete: %v", err)
	}
	got, err = svc.GetByID(ctx, p.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got != nil {
		t.Errorf("got=%+v; want nil after hard delete", got)
	}
}

// TestReportAndReturnFlow walks a property through its lifecycle: reported
// lost, found at a location, and returned to its owner.
func TestReportAndReturnFlow(t *testing.T) {
	db := setupTestDB(t)
	svc := NewLostPropertyService(db)
	ctx := context.Background()

	emp := addEmployee(t, db)
	loc := addLocation(t, db)

	p := validProperty()
	if err := svc.Add(ctx, p); err != nil {
		t.Fatalf("report: %v", err)
	}

	// Found.
	found := time.Now().UTC().Truncate(time.Second)
	p.Status = domain.StatusFound
	p.FoundTime = &found
	p.LocationID = &loc.ID
	if err := svc.Update(ctx, p); err != nil {
		t.Fatalf("mark found: %v", err)
	}

	// Returned.
	p.Status = domain.StatusReturn
	p.EmployeeID = &emp.ID
	if err := svc.Update(ctx, p); err != nil {
		t.Fatalf("mark returned: %v", err)
	}

	got, err := svc.GetPage(ctx, domain.Query{Include: []string{"Employee", "Location"}}, 1, 10)
	if err != nil {
		t.Fatalf("GetPage: %v", err)
	}
	if len(got.Result) != 1 {
		t.Fatalf("result=%d; want 1", len(got.Result))
	}
	final := got.Result[0]
	if final.Status != domain.StatusReturn {
		t.Errorf("Status=%q; want Return", final.Status)
	}
	if final.Employee == nil || final.Employee.ID != emp.ID {
		t.Errorf("Employee=%+v; want preloaded %s", final.Employee, emp.ID)
	}
	if final.Location == nil || final.Location.ID != loc.ID {
		t.Errorf("Location=%+v; want preloaded %d", final.Location, loc.ID)
	}
}
