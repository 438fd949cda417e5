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

type UserRepo struct{ db *pgxpool.Pool }

func NewUserRepo(db *pgxpool.Pool) repository.UserRepository { return &UserRepo{db: db} }

const userCols = `id, username, email, role, institution_id, department, phone_number,
	approved, active, training_completed, created_at, updated_at`

func scanUser(row pgx.Row) (*models.User, error) {
	var u models.User
	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.Role, &u.InstitutionID, &u.Department,
		&u.PhoneNumber, &u.Approved, &u.Active, &u.TrainingCompleted, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

// Create stores a new account (bcrypt hash in password_h). New accounts
// start unapproved; an admin flips the flag later.
func (r *UserRepo) Create(ctx context.Context, u *models.User, passwordHash string) (*models.User, error) {
	return scanUser(r.db.QueryRow(ctx, `
		INSERT INTO users (username, email, role, institution_id, department, phone_number, password_h)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
		RETURNING `+userCols,
		u.Username, u.Email, u.Role, u.InstitutionID, u.Department, u.PhoneNumber, passwordHash))
}

func (r *UserRepo) GetByUsername(ctx context.Context, username string) (*models.User, string, error) {
	var u models.User
	var ph string
	err := r.db.QueryRow(ctx, `
		SELECT `+userCols+`, password_h
		FROM users WHERE username=$1`, username).
		Scan(&u.ID, &u.Username, &u.Email, &u.Role, &u.InstitutionID, &u.Department,
			&u.PhoneNumber, &u.Approved, &u.Active, &u.TrainingCompleted, &u.CreatedAt, &u.UpdatedAt, &ph)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, "", nil
		}
		return nil, "", err
	}
	return &u, ph, nil
}

func (r *UserRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	return scanUser(r.db.QueryRow(ctx, `SELECT `+userCols+` FROM users WHERE id::text=$1`, id))
}

// List returns a filtered, paginated list of users and total count.
// Filters: q (username or email, ILIKE), role (exact), approved/active (*bool).
func (r *UserRepo) List(ctx context.Context, q string, role models.Role, approved, active *bool, limit, offset int) ([]models.User, int, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	clauses := []string{"1=1"}
	args := []any{}

	if s := strings.TrimSpace(q); s != "" {
		p := "%" + s + "%"
		args = append(args, p, p)
		clauses = append(clauses, "(username ILIKE $"+itoa(len(args)-1)+" OR email ILIKE $"+itoa(len(args))+")")
	}
	if role != "" {
		args = append(args, role)
		clauses = append(clauses, "role = $"+itoa(len(args)))
	}
	if approved != nil {
		args = append(args, *approved)
		clauses = append(clauses, "approved = $"+itoa(len(args)))
	}
	if active != nil {
		args = append(args, *active)
		clauses = append(clauses, "active = $"+itoa(len(args)))
	}

	countSQL := `SELECT COUNT(*) FROM users WHERE ` + strings.Join(clauses, " AND ")
	var total int
	if err := r.db.QueryRow(ctx, countSQL, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	args = append(args, limit, offset)
	listSQL := fmt.Sprintf(`
		SELECT %s
		FROM users
		WHERE %s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d
	`, userCols, strings.Join(clauses, " AND "), len(args)-1, len(args))
	rows, err := r.db.Query(ctx, listSQL, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []models.User
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.Username, &u.Email, &u.Role, &u.InstitutionID, &u.Department,
			&u.PhoneNumber, &u.Approved, &u.Active, &u.TrainingCompleted, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, 0, err
		}
		out = append(out, u)
	}
	return out, total, rows.Err()
}

func (r *UserRepo) SetApproved(ctx context.Context, id string, approved bool) (*models.User, error) {
	return scanUser(r.db.QueryRow(ctx, `
		UPDATE users SET approved=$1, updated_at=now()
		WHERE id::text=$2
		RETURNING `+userCols, approved, id))
}

func (r *UserRepo) SetActive(ctx context.Context, id string, active bool) (*models.User, error) {
	return scanUser(r.db.QueryRow(ctx, `
		UPDATE users SET active=$1, updated_at=now()
		WHERE id::text=$2
		RETURNING `+userCols, active, id))
}

func (r *UserRepo) UpdateRole(ctx context.Context, id string, role models.Role) (*models.User, error) {
	return scanUser(r.db.QueryRow(ctx, `
		UPDATE users SET role=$1, updated_at=now()
		WHERE id::text=$2
		RETURNING `+userCols, role, id))
}

func (r *UserRepo) SetTrainingCompleted(ctx context.Context, id string, done bool) (*models.User, error) {
	return scanUser(r.db.QueryRow(ctx, `
		UPDATE users SET training_completed=$1, updated_at=now()
		WHERE id::text=$2
		RETURNING `+userCols, done, id))
}
