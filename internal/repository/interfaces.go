package repository

import (
	"context"
	"time"

	"github.com/Shreyansh-sys/NRC-lab-reservation-system/internal/models"
)

type UserRepository interface {
	Create(ctx context.Context, u *models.User, passwordHash string) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, string /*passwordHash*/, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	List(ctx context.Context, q string, role models.Role, approved, active *bool, limit, offset int) ([]models.User, int, error)
	SetApproved(ctx context.Context, id string, approved bool) (*models.User, error)
	SetActive(ctx context.Context, id string, active bool) (*models.User, error)
	UpdateRole(ctx context.Context, id string, role models.Role) (*models.User, error)
	SetTrainingCompleted(ctx context.Context, id string, done bool) (*models.User, error)
}

type CategoryRepository interface {
	List(ctx context.Context) ([]models.EquipmentCategory, error)
}

type EquipmentRepository interface {
	List(ctx context.Context, f EquipmentFilter) ([]models.Equipment, int, error)
	Get(ctx context.Context, id string) (*models.Equipment, error)
}

type ReservationRepository interface {
	Get(ctx context.Context, id string) (*models.Reservation, error)
	// FindOverlapping returns reservations on the equipment whose [start, end)
	// window overlaps the given one and whose status still blocks the slot.
	FindOverlapping(ctx context.Context, equipmentID string, start, end time.Time) ([]models.Reservation, error)
	// Reserve inserts the reservation atomically with a conflict re-check,
	// serializing writers per equipment. A non-empty conflict set means the
	// insert did not happen.
	Reserve(ctx context.Context, r *models.Reservation) (conflicts []models.Reservation, err error)
	ListAll(ctx context.Context, limit, offset int) ([]models.Reservation, error)
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]models.Reservation, error)
	// UpdateStatus moves the reservation from one status to another, but
	// only while the stored status still equals from. A nil result with a
	// nil error means no row matched: the id is unknown or a competing
	// writer changed the status first.
	UpdateStatus(ctx context.Context, id string, from, to models.ReservationStatus) (*models.Reservation, error)
	CountByStatus(ctx context.Context, statuses []models.ReservationStatus) (int, error)
	CountStartingBetween(ctx context.Context, from, to time.Time) (int, error)
}

type MaintenanceRepository interface {
	List(ctx context.Context, equipmentID string, limit, offset int) ([]models.MaintenanceLog, error)
	Create(ctx context.Context, m *models.MaintenanceLog) error
}

type NotificationRepository interface {
	ListByUser(ctx context.Context, userID string, unreadOnly bool, limit, offset int) ([]models.Notification, error)
	Create(ctx context.Context, n *models.Notification) error
	MarkRead(ctx context.Context, id, userID string) (*models.Notification, error)
}
