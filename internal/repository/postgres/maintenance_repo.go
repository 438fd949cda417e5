package postgres

import (
	"context"

	"github.com/Shreyansh-sys/NRC-lab-reservation-system/internal/models"
	"github.com/Shreyansh-sys/NRC-lab-reservation-system/internal/repository"

	"github.com/jackc/pgx/v5/pgxpool"
)

type MaintenanceRepo struct{ db *pgxpool.Pool }

func NewMaintenanceRepo(db *pgxpool.Pool) repository.MaintenanceRepository {
	return &MaintenanceRepo{db: db}
}

func (r *MaintenanceRepo) List(ctx context.Context, equipmentID string, limit, offset int) ([]models.MaintenanceLog, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	sql := `
		SELECT m.id, m.equipment_id, m.maintenance_type, m.description, m.performed_by,
			m.start_date, m.end_date, m.notes, m.created_at, COALESCE(e.name, '')
		FROM maintenance_logs m
		LEFT JOIN equipment e ON e.id = m.equipment_id
		WHERE ($1 = '' OR m.equipment_id::text = $1)
		ORDER BY m.start_date DESC
		LIMIT $2 OFFSET $3`
	rows, err := r.db.Query(ctx, sql, equipmentID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.MaintenanceLog
	for rows.Next() {
		var m models.MaintenanceLog
		if err := rows.Scan(&m.ID, &m.EquipmentID, &m.Type, &m.Description, &m.PerformedBy,
			&m.StartDate, &m.EndDate, &m.Notes, &m.CreatedAt, &m.EquipmentName); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (r *MaintenanceRepo) Create(ctx context.Context, m *models.MaintenanceLog) error {
	return r.db.QueryRow(ctx, `
		INSERT INTO maintenance_logs (equipment_id, maintenance_type, description, performed_by, start_date, end_date, notes)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
		RETURNING id, created_at
	`, m.EquipmentID, m.Type, m.Description, m.PerformedBy, m.StartDate, m.EndDate, m.Notes).
		Scan(&m.ID, &m.CreatedAt)
}
