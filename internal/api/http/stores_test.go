package http

import (
	"context"
	"errors"
	"sync"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/parcel-service/internal/domain"
)

type staffStore struct {
	mu   sync.Mutex
	rows map[string]domain.Staff
}

func (s *staffStore) Create(_ context.Context, staff *domain.Staff) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rows[staff.PublicID] = *staff
	return nil
}

func (s *staffStore) GetByPublicID(_ context.Context, publicID string) (*domain.Staff, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	staff, ok := s.rows[publicID]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &staff, nil
}

func (s *staffStore) GetByName(_ context.Context, name string) (*domain.Staff, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, staff := range s.rows {
		if staff.Name == name {
			found := staff
			return &found, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (s *staffStore) List(context.Context) ([]domain.Staff, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Staff, 0, len(s.rows))
	for _, staff := range s.rows {
		out = append(out, staff)
	}
	return out, nil
}

func (s *staffStore) Promote(_ context.Context, publicID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	staff, ok := s.rows[publicID]
	if !ok {
		return pgx.ErrNoRows
	}
	staff.IsAdmin = true
	s.rows[publicID] = staff
	return nil
}

func (s *staffStore) Delete(_ context.Context, publicID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.rows[publicID]; !ok {
		return pgx.ErrNoRows
	}
	delete(s.rows, publicID)
	return nil
}

type vendorStore struct {
	mu   sync.Mutex
	rows map[string]domain.Vendor
}

func (s *vendorStore) Create(_ context.Context, vendor *domain.Vendor) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rows[vendor.PublicID] = *vendor
	return nil
}

func (s *vendorStore) GetByPublicID(_ context.Context, publicID string) (*domain.Vendor, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	vendor, ok := s.rows[publicID]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &vendor, nil
}

func (s *vendorStore) GetByName(_ context.Context, name string) (*domain.Vendor, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, vendor := range s.rows {
		if vendor.Name == name {
			found := vendor
			return &found, nil
		}
	}
	return nil, pgx.ErrNoRows
}

type parcelStore struct {
	mu   sync.Mutex
	rows map[string]domain.Parcel
}

func (s *parcelStore) Create(_ context.Context, parcel *domain.Parcel) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rows[parcel.QRID] = *parcel
	return nil
}

func (s *parcelStore) GetByQRID(_ context.Context, vendorPublicID, qrID string) (*domain.Parcel, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	parcel, ok := s.rows[qrID]
	if !ok || parcel.VendorPublicID != vendorPublicID {
		return nil, pgx.ErrNoRows
	}
	return &parcel, nil
}

func (s *parcelStore) ListByVendor(_ context.Context, vendorPublicID string) ([]domain.Parcel, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.Parcel
	for _, parcel := range s.rows {
		if parcel.VendorPublicID == vendorPublicID {
			out = append(out, parcel)
		}
	}
	return out, nil
}

func (s *parcelStore) Delete(_ context.Context, vendorPublicID, qrID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	parcel, ok := s.rows[qrID]
	if !ok || parcel.VendorPublicID != vendorPublicID {
		return pgx.ErrNoRows
	}
	delete(s.rows, qrID)
	return nil
}

type switchableLocator struct {
	mu   sync.Mutex
	city string
	err  error
}

func (l *switchableLocator) City(context.Context, string) (string, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.city, l.err
}

func (l *switchableLocator) fail(err error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.err = err
}

type pinger struct{ err error }

func (p pinger) Ping(context.Context) error { return p.err }

var errUpstream = errors.New("ip-api unreachable")
