package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/parcel-service/internal/domain"
)

// VendorRepository defines persistence access for vendors.
type VendorRepository interface {
	Create(ctx context.Context, vendor *domain.Vendor) error
	GetByPublicID(ctx context.Context, publicID string) (*domain.Vendor, error)
	GetByName(ctx context.Context, name string) (*domain.Vendor, error)
}

type vendorRepository struct {
	pool *pgxpool.Pool
}

// NewVendorRepository returns a Postgres-backed implementation.
func NewVendorRepository(pool *pgxpool.Pool) VendorRepository {
	return &vendorRepository{pool: pool}
}

func (r *vendorRepository) Create(ctx context.Context, vendor *domain.Vendor) error {
	const query = `
        INSERT INTO vendors (public_id, name, password_hash)
        VALUES ($1, $2, $3)
        RETURNING id, created_at`

	return r.pool.QueryRow(ctx, query,
		vendor.PublicID,
		vendor.Name,
		vendor.PasswordHash,
	).Scan(&vendor.ID, &vendor.CreatedAt)
}

func (r *vendorRepository) GetByPublicID(ctx context.Context, publicID string) (*domain.Vendor, error) {
	const query = `
        SELECT id, public_id, name, password_hash, created_at
        FROM vendors WHERE public_id=$1`

	return scanVendor(r.pool.QueryRow(ctx, query, publicID))
}

func (r *vendorRepository) GetByName(ctx context.Context, name string) (*domain.Vendor, error) {
	const query = `
        SELECT id, public_id, name, password_hash, created_at
        FROM vendors WHERE name=$1`

	return scanVendor(r.pool.QueryRow(ctx, query, name))
}

func scanVendor(row pgx.Row) (*domain.Vendor, error) {
	var vendor domain.Vendor
	if err := row.Scan(
		&vendor.ID,
		&vendor.PublicID,
		&vendor.Name,
		&vendor.PasswordHash,
		&vendor.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &vendor, nil
}
