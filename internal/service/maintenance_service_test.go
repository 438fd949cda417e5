package service

import (
	"context"
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/Shreyansh-sys/NRC-lab-reservation-system/internal/models"
)

type fakeMaintenanceRepo struct {
	items []models.MaintenanceLog
}

func (f *fakeMaintenanceRepo) List(_ context.Context, equipmentID string, _, _ int) ([]models.MaintenanceLog, error) {
	var out []models.MaintenanceLog
	for _, m := range f.items {
		if equipmentID == "" || m.EquipmentID == equipmentID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *fakeMaintenanceRepo) Create(_ context.Context, m *models.MaintenanceLog) error {
	m.ID = "mnt-" + strconv.Itoa(len(f.items)+1)
	m.CreatedAt = time.Now()
	f.items = append(f.items, *m)
	return nil
}

func newMaintenanceService() (*MaintenanceService, *fakeMaintenanceRepo) {
	logs := &fakeMaintenanceRepo{}
	eq := &fakeEquipmentRepo{items: map[string]models.Equipment{"eq-1": microscope()}}
	return NewMaintenanceService(logs, eq), logs
}

func maintenanceLog() *models.MaintenanceLog {
	return &models.MaintenanceLog{
		EquipmentID: "eq-1",
		Type:        "calibration",
		StartDate:   ts(9),
		EndDate:     ts(11),
	}
}

func TestMaintenanceListScope(t *testing.T) {
	svc, logs := newMaintenanceService()
	ctx := context.Background()
	logs.items = append(logs.items, models.MaintenanceLog{ID: "mnt-1", EquipmentID: "eq-1", Type: "repair"})

	if _, err := svc.List(ctx, student("s1"), "", 50, 0); !errors.Is(err, ErrPermissionDenied) {
		t.Fatalf("student: got %v, want ErrPermissionDenied", err)
	}

	got, err := svc.List(ctx, labManager(), "", 50, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 {
		t.Fatalf("manager sees %d logs, want 1", len(got))
	}
}

func TestMaintenanceCreateRoleGate(t *testing.T) {
	svc, _ := newMaintenanceService()
	ctx := context.Background()

	if err := svc.Create(ctx, student("s1"), maintenanceLog()); !errors.Is(err, ErrPermissionDenied) {
		t.Fatalf("student: got %v, want ErrPermissionDenied", err)
	}

	m := maintenanceLog()
	if err := svc.Create(ctx, labManager(), m); err != nil {
		t.Fatal(err)
	}
	if m.PerformedBy != "manager" {
		t.Fatalf("performedBy = %q, want actor username default", m.PerformedBy)
	}
}

func TestMaintenanceCreateValidation(t *testing.T) {
	svc, _ := newMaintenanceService()
	ctx := context.Background()
	mgr := labManager()

	m := maintenanceLog()
	m.StartDate, m.EndDate = ts(11), ts(9)
	if err := svc.Create(ctx, mgr, m); !errors.Is(err, ErrInvalidWindow) {
		t.Fatalf("got %v, want ErrInvalidWindow", err)
	}

	m = maintenanceLog()
	m.EquipmentID = "eq-missing"
	if err := svc.Create(ctx, mgr, m); !errors.Is(err, ErrNotFound) {
		t.Fatalf("got %v, want ErrNotFound", err)
	}

	m = maintenanceLog()
	m.Type = "  "
	if err := svc.Create(ctx, mgr, m); err == nil {
		t.Fatal("expected validation error for empty type")
	}
}
