package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/Shreyansh-sys/NRC-lab-reservation-system/internal/models"
	"github.com/Shreyansh-sys/NRC-lab-reservation-system/internal/repository"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type EquipmentRepo struct{ db *pgxpool.Pool }

func NewEquipmentRepo(db *pgxpool.Pool) repository.EquipmentRepository {
	return &EquipmentRepo{db: db}
}

const equipmentCols = `e.id, e.name, e.description, e.category_id, e.location, e.status,
	e.max_reservation_hours, e.requires_training, e.last_maintenance, e.next_maintenance,
	e.active, e.created_at, e.updated_at, COALESCE(c.name, '')`

func scanEquipment(row pgx.Row) (*models.Equipment, error) {
	var e models.Equipment
	err := row.Scan(&e.ID, &e.Name, &e.Description, &e.CategoryID, &e.Location, &e.Status,
		&e.MaxReservationHours, &e.RequiresTraining, &e.LastMaintenance, &e.NextMaintenance,
		&e.Active, &e.CreatedAt, &e.UpdatedAt, &e.CategoryName)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &e, nil
}

// List returns a page of equipment filtered per f plus the total count.
func (r *EquipmentRepo) List(ctx context.Context, f repository.EquipmentFilter) ([]models.Equipment, int, error) {
	if f.Limit <= 0 || f.Limit > 200 {
		f.Limit = 50
	}
	if f.Offset < 0 {
		f.Offset = 0
	}

	clauses := []string{"1=1"}
	args := []any{}

	if s := strings.TrimSpace(f.Q); s != "" {
		p := "%" + s + "%"
		args = append(args, p, p, p)
		clauses = append(clauses, "(e.name ILIKE $"+itoa(len(args)-2)+
			" OR e.description ILIKE $"+itoa(len(args)-1)+
			" OR e.location ILIKE $"+itoa(len(args))+")")
	}
	if f.CategoryID != "" {
		args = append(args, f.CategoryID)
		clauses = append(clauses, "e.category_id::text = $"+itoa(len(args)))
	}
	if f.Status != "" {
		args = append(args, f.Status)
		clauses = append(clauses, "e.status = $"+itoa(len(args)))
	}
	if l := strings.TrimSpace(f.Location); l != "" {
		args = append(args, l)
		clauses = append(clauses, "e.location = $"+itoa(len(args)))
	}
	if f.ActiveOnly {
		clauses = append(clauses, "e.active = TRUE")
	}
	whereSQL := "WHERE " + strings.Join(clauses, " AND ")

	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM equipment e `+whereSQL, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	sortCol := sanitizeSort(f.Sort, "name", "name", "created_at")
	sortOrd := sanitizeOrder(f.Order, "asc")

	args = append(args, f.Limit, f.Offset)
	sql := fmt.Sprintf(`
		SELECT %s
		FROM equipment e
		LEFT JOIN equipment_categories c ON c.id = e.category_id
		%s
		ORDER BY e.%s %s
		LIMIT $%d OFFSET $%d
	`, equipmentCols, whereSQL, sortCol, sortOrd, len(args)-1, len(args))

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []models.Equipment
	for rows.Next() {
		var e models.Equipment
		if err := rows.Scan(&e.ID, &e.Name, &e.Description, &e.CategoryID, &e.Location, &e.Status,
			&e.MaxReservationHours, &e.RequiresTraining, &e.LastMaintenance, &e.NextMaintenance,
			&e.Active, &e.CreatedAt, &e.UpdatedAt, &e.CategoryName); err != nil {
			return nil, 0, err
		}
		out = append(out, e)
	}
	return out, total, rows.Err()
}

func (r *EquipmentRepo) Get(ctx context.Context, id string) (*models.Equipment, error) {
	return scanEquipment(r.db.QueryRow(ctx, `
		SELECT `+equipmentCols+`
		FROM equipment e
		LEFT JOIN equipment_categories c ON c.id = e.category_id
		WHERE e.id::text = $1
	`, id))
}

type CategoryRepo struct{ db *pgxpool.Pool }

func NewCategoryRepo(db *pgxpool.Pool) repository.CategoryRepository {
	return &CategoryRepo{db: db}
}

func (r *CategoryRepo) List(ctx context.Context) ([]models.EquipmentCategory, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, name, description
		FROM equipment_categories
		ORDER BY name ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.EquipmentCategory
	for rows.Next() {
		var c models.EquipmentCategory
		if err := rows.Scan(&c.ID, &c.Name, &c.Description); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
