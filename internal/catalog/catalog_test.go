package catalog

import (
	"path/filepath"
	"testing"

	"github.com/carbonx/carbonx-api/internal/types"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestService(t *testing.T) (*Service, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	if err := db.AutoMigrate(&types.Project{}, &types.MarketStat{}, &types.News{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	return NewService(db), db
}

func TestGetProjectMissingReturnsNil(t *testing.T) {
	svc, _ := newTestService(t)

	project, err := svc.GetProject("PRJ-MISSING")
	if err != nil {
		t.Fatalf("GetProject() error = %v", err)
	}
	if project != nil {
		t.Errorf("GetProject() = %+v, want nil", project)
	}
}

func TestCurrentPrice(t *testing.T) {
	svc, db := newTestService(t)

	if err := db.Create(&types.Project{ProjectID: "PRJ-A", Name: "Project A", PriceCurrent: 24.75}).Error; err != nil {
		t.Fatalf("failed to seed project: %v", err)
	}

	price, ok, err := svc.CurrentPrice("PRJ-A")
	if err != nil {
		t.Fatalf("CurrentPrice() error = %v", err)
	}
	if !ok {
		t.Fatal("CurrentPrice() ok = false, want true")
	}
	if price != 24.75 {
		t.Errorf("price = %v, want 24.75", price)
	}

	_, ok, err = svc.CurrentPrice("PRJ-MISSING")
	if err != nil {
		t.Fatalf("CurrentPrice() error = %v", err)
	}
	if ok {
		t.Error("CurrentPrice() ok = true for missing project, want false")
	}
}

func TestGetProjectsOrdered(t *testing.T) {
	svc, db := newTestService(t)

	seed := []types.Project{
		{ProjectID: "PRJ-A", Name: "Project A", PriceCurrent: 1},
		{ProjectID: "PRJ-B", Name: "Project B", PriceCurrent: 2},
	}
	if err := db.Create(&seed).Error; err != nil {
		t.Fatalf("failed to seed projects: %v", err)
	}

	projects, err := svc.GetProjects()
	if err != nil {
		t.Fatalf("GetProjects() error = %v", err)
	}
	if len(projects) != 2 {
		t.Fatalf("len(projects) = %d, want 2", len(projects))
	}
	if projects[0].ProjectID != "PRJ-A" || projects[1].ProjectID != "PRJ-B" {
		t.Errorf("unexpected order: %s, %s", projects[0].ProjectID, projects[1].ProjectID)
	}
}
