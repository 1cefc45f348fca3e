package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/parcel-service/internal/domain"
)

// StaffRepository handles persistence for staff accounts.
type StaffRepository interface {
	Create(ctx context.Context, staff *domain.Staff) error
	GetByPublicID(ctx context.Context, publicID string) (*domain.Staff, error)
	GetByName(ctx context.Context, name string) (*domain.Staff, error)
	List(ctx context.Context) ([]domain.Staff, error)
	Promote(ctx context.Context, publicID string) error
	Delete(ctx context.Context, publicID string) error
}

type staffRepository struct {
	pool *pgxpool.Pool
}

// NewStaffRepository instantiates the repository.
func NewStaffRepository(pool *pgxpool.Pool) StaffRepository {
	return &staffRepository{pool: pool}
}

const staffColumns = `id, public_id, name, password_hash, is_admin, created_at`

func (r *staffRepository) Create(ctx context.Context, staff *domain.Staff) error {
	const query = `
        INSERT INTO staff (public_id, name, password_hash, is_admin)
        VALUES ($1,$2,$3,$4)
        RETURNING id, created_at`

	return r.pool.QueryRow(ctx, query,
		staff.PublicID,
		staff.Name,
		staff.PasswordHash,
		staff.IsAdmin,
	).Scan(&staff.ID, &staff.CreatedAt)
}

func (r *staffRepository) GetByPublicID(ctx context.Context, publicID string) (*domain.Staff, error) {
	return r.getOne(ctx, `SELECT `+staffColumns+` FROM staff WHERE public_id=$1`, publicID)
}

func (r *staffRepository) GetByName(ctx context.Context, name string) (*domain.Staff, error) {
	return r.getOne(ctx, `SELECT `+staffColumns+` FROM staff WHERE name=$1`, name)
}

func (r *staffRepository) getOne(ctx context.Context, query string, arg string) (*domain.Staff, error) {
	staff, err := scanStaff(r.pool.QueryRow(ctx, query, arg))
	if err != nil {
		return nil, err
	}
	return staff, nil
}

func (r *staffRepository) List(ctx context.Context) ([]domain.Staff, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+staffColumns+` FROM staff ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Staff
	for rows.Next() {
		staff, err := scanStaff(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *staff)
	}
	return result, rows.Err()
}

// Promote only ever sets is_admin to true.
func (r *staffRepository) Promote(ctx context.Context, publicID string) error {
	cmd, err := r.pool.Exec(ctx, `UPDATE staff SET is_admin=TRUE WHERE public_id=$1`, publicID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *staffRepository) Delete(ctx context.Context, publicID string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM staff WHERE public_id=$1`, publicID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func scanStaff(row pgx.Row) (*domain.Staff, error) {
	var staff domain.Staff
	if err := row.Scan(
		&staff.ID,
		&staff.PublicID,
		&staff.Name,
		&staff.PasswordHash,
		&staff.IsAdmin,
		&staff.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &staff, nil
}
