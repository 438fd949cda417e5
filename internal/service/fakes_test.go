package service

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/Shreyansh-sys/NRC-lab-reservation-system/internal/models"
	"github.com/Shreyansh-sys/NRC-lab-reservation-system/internal/repository"
)

// In-memory stand-ins for the postgres repos. The overlap predicate here
// mirrors the SQL so the domain logic is exercised against the same
// semantics.

type fakeReservationRepo struct {
	mu     sync.Mutex
	items  []models.Reservation
	nextID int

	// afterGet, when set, runs once Get has taken its snapshot, so a test
	// can slip a competing write between a read and the update it feeds
	afterGet func()
}

func (f *fakeReservationRepo) Get(_ context.Context, id string) (*models.Reservation, error) {
	f.mu.Lock()
	var found *models.Reservation
	for i := range f.items {
		if f.items[i].ID == id {
			r := f.items[i]
			found = &r
			break
		}
	}
	f.mu.Unlock()
	if f.afterGet != nil {
		f.afterGet()
	}
	return found, nil
}

func (f *fakeReservationRepo) overlapping(equipmentID string, start, end time.Time) []models.Reservation {
	var out []models.Reservation
	for _, r := range f.items {
		if r.EquipmentID == equipmentID && r.Status.BlocksAvailability() && r.Overlaps(start, end) {
			out = append(out, r)
		}
	}
	return out
}

func (f *fakeReservationRepo) FindOverlapping(_ context.Context, equipmentID string, start, end time.Time) ([]models.Reservation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.overlapping(equipmentID, start, end), nil
}

func (f *fakeReservationRepo) Reserve(_ context.Context, r *models.Reservation) ([]models.Reservation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if conflicts := f.overlapping(r.EquipmentID, r.StartTime, r.EndTime); len(conflicts) > 0 {
		return conflicts, nil
	}
	f.nextID++
	r.ID = "res-" + strconv.Itoa(f.nextID)
	now := time.Now()
	r.CreatedAt = now
	r.UpdatedAt = now
	f.items = append(f.items, *r)
	return nil, nil
}

func (f *fakeReservationRepo) ListAll(_ context.Context, _, _ int) ([]models.Reservation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]models.Reservation, len(f.items))
	copy(out, f.items)
	return out, nil
}

func (f *fakeReservationRepo) ListByUser(_ context.Context, userID string, _, _ int) ([]models.Reservation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Reservation
	for _, r := range f.items {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	return out, nil
}

// UpdateStatus mirrors the SQL compare-and-swap: no write unless the
// stored status still equals from.
func (f *fakeReservationRepo) UpdateStatus(_ context.Context, id string, from, to models.ReservationStatus) (*models.Reservation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.items {
		if f.items[i].ID == id && f.items[i].Status == from {
			f.items[i].Status = to
			f.items[i].UpdatedAt = time.Now()
			r := f.items[i]
			return &r, nil
		}
	}
	return nil, nil
}

func (f *fakeReservationRepo) CountByStatus(_ context.Context, statuses []models.ReservationStatus) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, r := range f.items {
		for _, s := range statuses {
			if r.Status == s {
				n++
			}
		}
	}
	return n, nil
}

func (f *fakeReservationRepo) CountStartingBetween(_ context.Context, from, to time.Time) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, r := range f.items {
		if r.Status.BlocksAvailability() && !r.StartTime.Before(from) && r.StartTime.Before(to) {
			n++
		}
	}
	return n, nil
}

type fakeEquipmentRepo struct {
	items map[string]models.Equipment
}

func (f *fakeEquipmentRepo) List(_ context.Context, _ repository.EquipmentFilter) ([]models.Equipment, int, error) {
	var out []models.Equipment
	for _, e := range f.items {
		out = append(out, e)
	}
	return out, len(out), nil
}

func (f *fakeEquipmentRepo) Get(_ context.Context, id string) (*models.Equipment, error) {
	if e, ok := f.items[id]; ok {
		return &e, nil
	}
	return nil, nil
}

type fakeNotificationRepo struct {
	items []models.Notification
}

func (f *fakeNotificationRepo) ListByUser(_ context.Context, userID string, unreadOnly bool, _, _ int) ([]models.Notification, error) {
	var out []models.Notification
	for _, n := range f.items {
		if n.UserID == userID && (!unreadOnly || !n.Read) {
			out = append(out, n)
		}
	}
	return out, nil
}

func (f *fakeNotificationRepo) Create(_ context.Context, n *models.Notification) error {
	n.ID = "ntf-" + strconv.Itoa(len(f.items)+1)
	n.CreatedAt = time.Now()
	f.items = append(f.items, *n)
	return nil
}

func (f *fakeNotificationRepo) MarkRead(_ context.Context, id, userID string) (*models.Notification, error) {
	for i := range f.items {
		if f.items[i].ID == id && f.items[i].UserID == userID {
			f.items[i].Read = true
			n := f.items[i]
			return &n, nil
		}
	}
	return nil, nil
}
