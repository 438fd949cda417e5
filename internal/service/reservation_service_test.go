package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/Shreyansh-sys/NRC-lab-reservation-system/internal/models"

	"github.com/rs/zerolog"
)

func newTestService(eq ...models.Equipment) (*ReservationService, *fakeReservationRepo, *fakeNotificationRepo) {
	resRepo := &fakeReservationRepo{}
	eqRepo := &fakeEquipmentRepo{items: map[string]models.Equipment{}}
	for _, e := range eq {
		eqRepo.items[e.ID] = e
	}
	ntfRepo := &fakeNotificationRepo{}
	svc := NewReservationService(resRepo, eqRepo, ntfRepo, NewAvailability(resRepo), zerolog.Nop())
	return svc, resRepo, ntfRepo
}

func microscope() models.Equipment {
	return models.Equipment{
		ID:                  "eq-1",
		Name:                "Confocal Microscope",
		Status:              models.EquipmentAvailable,
		MaxReservationHours: 24,
		Active:              true,
	}
}

func student(id string) *models.User {
	return &models.User{
		ID:                id,
		Username:          "student-" + id,
		Role:              models.RoleStudent,
		Approved:          true,
		Active:            true,
		TrainingCompleted: true,
	}
}

func labManager() *models.User {
	return &models.User{ID: "mgr-1", Username: "manager", Role: models.RoleLabManager, Approved: true, Active: true}
}

func req(start, end time.Time) CreateReservationRequest {
	return CreateReservationRequest{EquipmentID: "eq-1", StartTime: start, EndTime: end, Purpose: "cell imaging"}
}

func TestCreateOnFreeEquipment(t *testing.T) {
	svc, _, ntf := newTestService(microscope())

	res, err := svc.Create(context.Background(), student("s1"), req(ts(10), ts(12)))
	if err != nil {
		t.Fatal(err)
	}
	if res.Status != models.ReservationPending {
		t.Fatalf("status = %s, want pending", res.Status)
	}
	if res.UserID != "s1" {
		t.Fatalf("owner = %s, want s1", res.UserID)
	}
	if len(ntf.items) != 1 {
		t.Fatalf("expected a confirmation notification, got %d", len(ntf.items))
	}
}

func TestCreateConflictListsExisting(t *testing.T) {
	svc, _, _ := newTestService(microscope())
	ctx := context.Background()

	first, err := svc.Create(ctx, student("s1"), req(ts(10), ts(12)))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := svc.UpdateStatus(ctx, labManager(), first.ID, models.ReservationConfirmed); err != nil {
		t.Fatal(err)
	}

	_, err = svc.Create(ctx, student("s2"), req(ts(11), ts(13)))
	var conflict *ConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("got %v, want ConflictError", err)
	}
	if len(conflict.Conflicts) != 1 || conflict.Conflicts[0].ID != first.ID {
		t.Fatalf("conflict set = %v, want [%s]", conflict.Conflicts, first.ID)
	}
}

func TestCreateAtSharedBoundarySucceeds(t *testing.T) {
	svc, _, _ := newTestService(microscope())
	ctx := context.Background()

	if _, err := svc.Create(ctx, student("s1"), req(ts(10), ts(12))); err != nil {
		t.Fatal(err)
	}
	res, err := svc.Create(ctx, student("s2"), req(ts(12), ts(13)))
	if err != nil {
		t.Fatalf("back-to-back window should not conflict: %v", err)
	}
	if res.Status != models.ReservationPending {
		t.Fatalf("status = %s, want pending", res.Status)
	}
}

func TestCreateInvalidWindow(t *testing.T) {
	svc, _, _ := newTestService(microscope())

	for _, w := range [][2]time.Time{{ts(12), ts(10)}, {ts(10), ts(10)}} {
		_, err := svc.Create(context.Background(), student("s1"), req(w[0], w[1]))
		if !errors.Is(err, ErrInvalidWindow) {
			t.Fatalf("window %v–%v: got %v, want ErrInvalidWindow", w[0], w[1], err)
		}
	}
}

func TestCreateRejectsUnreservableEquipment(t *testing.T) {
	outOfService := microscope()
	outOfService.ID = "eq-oos"
	outOfService.Status = models.EquipmentOutOfService
	inactive := microscope()
	inactive.ID = "eq-off"
	inactive.Active = false

	svc, _, _ := newTestService(outOfService, inactive)
	ctx := context.Background()

	for _, id := range []string{"eq-oos", "eq-off"} {
		r := req(ts(10), ts(12))
		r.EquipmentID = id
		if _, err := svc.Create(ctx, student("s1"), r); !errors.Is(err, ErrEquipmentUnavailable) {
			t.Fatalf("%s: got %v, want ErrEquipmentUnavailable", id, err)
		}
	}

	r := req(ts(10), ts(12))
	r.EquipmentID = "eq-missing"
	if _, err := svc.Create(ctx, student("s1"), r); !errors.Is(err, ErrNotFound) {
		t.Fatalf("got %v, want ErrNotFound", err)
	}
}

func TestCreateTrainingRequired(t *testing.T) {
	eq := microscope()
	eq.RequiresTraining = true
	svc, _, _ := newTestService(eq)

	untrained := student("s1")
	untrained.TrainingCompleted = false

	_, err := svc.Create(context.Background(), untrained, req(ts(10), ts(12)))
	if !errors.Is(err, ErrTrainingRequired) {
		t.Fatalf("got %v, want ErrTrainingRequired", err)
	}

	// availability does not matter: same failure on a busy slot
	trained := student("s2")
	if _, err := svc.Create(context.Background(), trained, req(ts(10), ts(12))); err != nil {
		t.Fatal(err)
	}
	_, err = svc.Create(context.Background(), untrained, req(ts(11), ts(13)))
	if !errors.Is(err, ErrTrainingRequired) {
		t.Fatalf("got %v, want ErrTrainingRequired before conflict check", err)
	}
}

func TestCreateDurationExceeded(t *testing.T) {
	eq := microscope()
	eq.MaxReservationHours = 2
	svc, _, _ := newTestService(eq)

	_, err := svc.Create(context.Background(), student("s1"), req(ts(10), ts(13)))
	if !errors.Is(err, ErrDurationExceeded) {
		t.Fatalf("got %v, want ErrDurationExceeded", err)
	}

	// exactly at the limit is fine
	if _, err := svc.Create(context.Background(), student("s1"), req(ts(10), ts(12))); err != nil {
		t.Fatal(err)
	}
}

func TestUpdateStatusScope(t *testing.T) {
	svc, _, _ := newTestService(microscope())
	ctx := context.Background()

	res, err := svc.Create(ctx, student("s2"), req(ts(10), ts(12)))
	if err != nil {
		t.Fatal(err)
	}

	// another student cannot touch it
	_, err = svc.UpdateStatus(ctx, student("s1"), res.ID, models.ReservationCancelled)
	if !errors.Is(err, ErrPermissionDenied) {
		t.Fatalf("got %v, want ErrPermissionDenied", err)
	}

	// a lab manager can
	updated, err := svc.UpdateStatus(ctx, labManager(), res.ID, models.ReservationConfirmed)
	if err != nil {
		t.Fatal(err)
	}
	if updated.Status != models.ReservationConfirmed {
		t.Fatalf("status = %s, want confirmed", updated.Status)
	}

	// and so can the owner
	if _, err := svc.UpdateStatus(ctx, student("s2"), res.ID, models.ReservationCancelled); err != nil {
		t.Fatal(err)
	}
}

func TestUpdateStatusIllegalTransitions(t *testing.T) {
	svc, repo, _ := newTestService(microscope())
	ctx := context.Background()
	mgr := labManager()

	res, err := svc.Create(ctx, student("s1"), req(ts(10), ts(12)))
	if err != nil {
		t.Fatal(err)
	}

	// pending cannot jump straight to completed
	if _, err := svc.UpdateStatus(ctx, mgr, res.ID, models.ReservationCompleted); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("got %v, want ErrInvalidTransition", err)
	}

	// walk to completed, then verify the terminal state rejects everything
	for _, s := range []models.ReservationStatus{
		models.ReservationConfirmed, models.ReservationActive, models.ReservationCompleted,
	} {
		if _, err := svc.UpdateStatus(ctx, mgr, res.ID, s); err != nil {
			t.Fatalf("transition to %s: %v", s, err)
		}
	}
	_, err = svc.UpdateStatus(ctx, mgr, res.ID, models.ReservationActive)
	if !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("completed → active: got %v, want ErrInvalidTransition", err)
	}

	if got, _ := repo.Get(ctx, res.ID); got.Status != models.ReservationCompleted {
		t.Fatalf("terminal status mutated to %s", got.Status)
	}
}

func TestUpdateStatusStaleReadCannotOverwrite(t *testing.T) {
	svc, repo, _ := newTestService(microscope())
	ctx := context.Background()
	mgr := labManager()

	res, err := svc.Create(ctx, student("s1"), req(ts(10), ts(12)))
	if err != nil {
		t.Fatal(err)
	}
	for _, s := range []models.ReservationStatus{models.ReservationConfirmed, models.ReservationActive} {
		if _, err := svc.UpdateStatus(ctx, mgr, res.ID, s); err != nil {
			t.Fatalf("transition to %s: %v", s, err)
		}
	}

	// complete the reservation between the legality check's read and its
	// write, the way a competing request would
	repo.afterGet = func() {
		repo.afterGet = nil
		if _, err := repo.UpdateStatus(ctx, res.ID, models.ReservationActive, models.ReservationCompleted); err != nil {
			t.Fatal(err)
		}
	}

	_, err = svc.UpdateStatus(ctx, mgr, res.ID, models.ReservationCancelled)
	if !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("got %v, want ErrInvalidTransition", err)
	}
	got, _ := repo.Get(ctx, res.ID)
	if got.Status != models.ReservationCompleted {
		t.Fatalf("terminal status overwritten to %s", got.Status)
	}
}

func TestUpdateStatusCompetingTransitionsOneWins(t *testing.T) {
	svc, repo, _ := newTestService(microscope())
	ctx := context.Background()
	mgr := labManager()

	res, err := svc.Create(ctx, student("s1"), req(ts(10), ts(12)))
	if err != nil {
		t.Fatal(err)
	}
	for _, s := range []models.ReservationStatus{models.ReservationConfirmed, models.ReservationActive} {
		if _, err := svc.UpdateStatus(ctx, mgr, res.ID, s); err != nil {
			t.Fatalf("transition to %s: %v", s, err)
		}
	}

	targets := []models.ReservationStatus{models.ReservationCompleted, models.ReservationCancelled}
	errs := make([]error, len(targets))
	var wg sync.WaitGroup
	for i := range targets {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.UpdateStatus(ctx, mgr, res.ID, targets[i])
		}(i)
	}
	wg.Wait()

	var winner models.ReservationStatus
	wins := 0
	for i, err := range errs {
		switch {
		case err == nil:
			wins++
			winner = targets[i]
		case !errors.Is(err, ErrInvalidTransition):
			t.Fatalf("transition to %s: got %v, want ErrInvalidTransition", targets[i], err)
		}
	}
	if wins != 1 {
		t.Fatalf("%d transitions out of active succeeded, want exactly 1", wins)
	}

	got, _ := repo.Get(ctx, res.ID)
	if got.Status != winner {
		t.Fatalf("final status %s does not match the winning transition %s", got.Status, winner)
	}
	if !got.Status.Terminal() {
		t.Fatalf("final status %s is not terminal", got.Status)
	}
}

func TestAcceptedReservationsNeverOverlap(t *testing.T) {
	svc, repo, _ := newTestService(microscope())
	ctx := context.Background()

	windows := [][2]time.Time{
		{ts(10), ts(12)},
		{ts(11), ts(13)}, // conflicts with first
		{ts(12), ts(14)}, // boundary, fine
		{ts(9), ts(11)},  // conflicts with first
		{ts(8), ts(10)},  // boundary, fine
	}
	for _, w := range windows {
		_, _ = svc.Create(ctx, student("s1"), req(w[0], w[1]))
	}

	accepted, _ := repo.ListAll(ctx, 0, 0)
	if len(accepted) != 3 {
		t.Fatalf("accepted %d reservations, want 3", len(accepted))
	}
	for i := range accepted {
		for j := i + 1; j < len(accepted); j++ {
			a, b := accepted[i], accepted[j]
			if a.StartTime.Before(b.EndTime) && a.EndTime.After(b.StartTime) {
				t.Fatalf("accepted reservations %s and %s overlap", a.ID, b.ID)
			}
		}
	}
}

func TestListVisibleByRole(t *testing.T) {
	svc, _, _ := newTestService(microscope())
	ctx := context.Background()

	if _, err := svc.Create(ctx, student("s1"), req(ts(8), ts(9))); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Create(ctx, student("s2"), req(ts(9), ts(10))); err != nil {
		t.Fatal(err)
	}

	own, err := svc.ListVisible(ctx, student("s1"), 50, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(own) != 1 || own[0].UserID != "s1" {
		t.Fatalf("student sees %v, want only own", own)
	}

	all, err := svc.ListVisible(ctx, labManager(), 50, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 2 {
		t.Fatalf("manager sees %d, want 2", len(all))
	}
}

func TestGetScoped(t *testing.T) {
	svc, _, _ := newTestService(microscope())
	ctx := context.Background()

	res, err := svc.Create(ctx, student("s1"), req(ts(8), ts(9)))
	if err != nil {
		t.Fatal(err)
	}

	if _, err := svc.Get(ctx, student("s2"), res.ID); !errors.Is(err, ErrPermissionDenied) {
		t.Fatalf("got %v, want ErrPermissionDenied", err)
	}
	if _, err := svc.Get(ctx, student("s1"), res.ID); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Get(ctx, labManager(), res.ID); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Get(ctx, labManager(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("got %v, want ErrNotFound", err)
	}
}
