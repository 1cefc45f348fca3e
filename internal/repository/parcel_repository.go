package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/parcel-service/internal/domain"
)

// ParcelRepository persists parcels. Reads and deletes are scoped to the owning vendor.
type ParcelRepository interface {
	Create(ctx context.Context, parcel *domain.Parcel) error
	GetByQRID(ctx context.Context, vendorPublicID, qrID string) (*domain.Parcel, error)
	ListByVendor(ctx context.Context, vendorPublicID string) ([]domain.Parcel, error)
	Delete(ctx context.Context, vendorPublicID, qrID string) error
}

type parcelRepository struct {
	pool *pgxpool.Pool
}

// NewParcelRepository builds a Postgres-backed parcel repository.
func NewParcelRepository(pool *pgxpool.Pool) ParcelRepository {
	return &parcelRepository{pool: pool}
}

const parcelColumns = `id, qr_id, name, volume, vendor_public_id, vendor_name, origin_description,
        is_intra_city, delivery_location, pickup_time, status, drop_time, current_location, created_at`

func (r *parcelRepository) Create(ctx context.Context, parcel *domain.Parcel) error {
	const query = `
        INSERT INTO parcels (qr_id, name, volume, vendor_public_id, vendor_name, origin_description,
            is_intra_city, delivery_location, pickup_time, status, drop_time, current_location)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
        RETURNING id, created_at`

	return r.pool.QueryRow(ctx, query,
		parcel.QRID,
		parcel.Name,
		parcel.Volume,
		parcel.VendorPublicID,
		parcel.VendorName,
		parcel.OriginDescription,
		parcel.IsIntraCity,
		parcel.DeliveryLocation,
		parcel.PickupTime,
		parcel.Status,
		parcel.DropTime,
		parcel.CurrentLocation,
	).Scan(&parcel.ID, &parcel.CreatedAt)
}

func (r *parcelRepository) GetByQRID(ctx context.Context, vendorPublicID, qrID string) (*domain.Parcel, error) {
	query := `SELECT ` + parcelColumns + ` FROM parcels WHERE vendor_public_id=$1 AND qr_id=$2`
	return scanParcel(r.pool.QueryRow(ctx, query, vendorPublicID, qrID))
}

func (r *parcelRepository) ListByVendor(ctx context.Context, vendorPublicID string) ([]domain.Parcel, error) {
	query := `SELECT ` + parcelColumns + ` FROM parcels WHERE vendor_public_id=$1 ORDER BY id`
	rows, err := r.pool.Query(ctx, query, vendorPublicID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Parcel
	for rows.Next() {
		parcel, err := scanParcel(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *parcel)
	}
	return result, rows.Err()
}

func (r *parcelRepository) Delete(ctx context.Context, vendorPublicID, qrID string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM parcels WHERE vendor_public_id=$1 AND qr_id=$2`, vendorPublicID, qrID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func scanParcel(row pgx.Row) (*domain.Parcel, error) {
	var parcel domain.Parcel
	if err := row.Scan(
		&parcel.ID,
		&parcel.QRID,
		&parcel.Name,
		&parcel.Volume,
		&parcel.VendorPublicID,
		&parcel.VendorName,
		&parcel.OriginDescription,
		&parcel.IsIntraCity,
		&parcel.DeliveryLocation,
		&parcel.PickupTime,
		&parcel.Status,
		&parcel.DropTime,
		&parcel.CurrentLocation,
		&parcel.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &parcel, nil
}
