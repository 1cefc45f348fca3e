package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/spec-kit/parcel-service/internal/config"
	"github.com/spec-kit/parcel-service/internal/domain"
	"github.com/spec-kit/parcel-service/internal/events"
)

func testConfig() config.Config {
	return config.Config{
		Auth: config.AuthConfig{
			JWTSecret:            "service-test-secret",
			StaffTokenTTLMinutes: 30,
			VendorTokenTTLHours:  24,
			BcryptCost:           bcrypt.MinCost,
		},
		Label: config.LabelConfig{QRSize: 64, QRLevel: "L"},
	}
}

type memStaffRepo struct {
	mu     sync.Mutex
	nextID int64
	rows   map[string]domain.Staff
}

func newMemStaffRepo() *memStaffRepo {
	return &memStaffRepo{rows: map[string]domain.Staff{}}
}

func (r *memStaffRepo) Create(_ context.Context, staff *domain.Staff) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	staff.ID = r.nextID
	staff.CreatedAt = time.Now()
	r.rows[staff.PublicID] = *staff
	return nil
}

func (r *memStaffRepo) GetByPublicID(_ context.Context, publicID string) (*domain.Staff, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	staff, ok := r.rows[publicID]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &staff, nil
}

func (r *memStaffRepo) GetByName(_ context.Context, name string) (*domain.Staff, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, staff := range r.rows {
		if staff.Name == name {
			found := staff
			return &found, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *memStaffRepo) List(context.Context) ([]domain.Staff, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.Staff, 0, len(r.rows))
	for _, staff := range r.rows {
		out = append(out, staff)
	}
	return out, nil
}

func (r *memStaffRepo) Promote(_ context.Context, publicID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	staff, ok := r.rows[publicID]
	if !ok {
		return pgx.ErrNoRows
	}
	staff.IsAdmin = true
	r.rows[publicID] = staff
	return nil
}

func (r *memStaffRepo) Delete(_ context.Context, publicID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.rows[publicID]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.rows, publicID)
	return nil
}

type memVendorRepo struct {
	mu     sync.Mutex
	nextID int64
	rows   map[string]domain.Vendor
}

func newMemVendorRepo() *memVendorRepo {
	return &memVendorRepo{rows: map[string]domain.Vendor{}}
}

func (r *memVendorRepo) Create(_ context.Context, vendor *domain.Vendor) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	vendor.ID = r.nextID
	vendor.CreatedAt = time.Now()
	r.rows[vendor.PublicID] = *vendor
	return nil
}

func (r *memVendorRepo) GetByPublicID(_ context.Context, publicID string) (*domain.Vendor, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	vendor, ok := r.rows[publicID]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &vendor, nil
}

func (r *memVendorRepo) GetByName(_ context.Context, name string) (*domain.Vendor, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, vendor := range r.rows {
		if vendor.Name == name {
			found := vendor
			return &found, nil
		}
	}
	return nil, pgx.ErrNoRows
}

type memParcelRepo struct {
	mu     sync.Mutex
	nextID int64
	rows   map[string]domain.Parcel
}

func newMemParcelRepo() *memParcelRepo {
	return &memParcelRepo{rows: map[string]domain.Parcel{}}
}

func (r *memParcelRepo) Create(_ context.Context, parcel *domain.Parcel) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	parcel.ID = r.nextID
	parcel.CreatedAt = time.Now()
	r.rows[parcel.QRID] = *parcel
	return nil
}

func (r *memParcelRepo) GetByQRID(_ context.Context, vendorPublicID, qrID string) (*domain.Parcel, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	parcel, ok := r.rows[qrID]
	if !ok || parcel.VendorPublicID != vendorPublicID {
		return nil, pgx.ErrNoRows
	}
	return &parcel, nil
}

func (r *memParcelRepo) ListByVendor(_ context.Context, vendorPublicID string) ([]domain.Parcel, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Parcel
	for _, parcel := range r.rows {
		if parcel.VendorPublicID == vendorPublicID {
			out = append(out, parcel)
		}
	}
	return out, nil
}

func (r *memParcelRepo) Delete(_ context.Context, vendorPublicID, qrID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	parcel, ok := r.rows[qrID]
	if !ok || parcel.VendorPublicID != vendorPublicID {
		return pgx.ErrNoRows
	}
	delete(r.rows, qrID)
	return nil
}

type stubLocator struct {
	city  string
	err   error
	calls int
	ips   []string
}

func (l *stubLocator) City(_ context.Context, ip string) (string, error) {
	l.calls++
	l.ips = append(l.ips, ip)
	return l.city, l.err
}

var errGeoDown = errors.New("geolocation upstream unreachable")

type recordingDispatcher struct {
	mu     sync.Mutex
	events []events.Event
}

func (d *recordingDispatcher) Publish(_ context.Context, event events.Event) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.events = append(d.events, event)
	return nil
}

func (d *recordingDispatcher) Subscribe(events.EventType, events.EventHandler) {}

func (d *recordingDispatcher) types() []events.EventType {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]events.EventType, 0, len(d.events))
	for _, e := range d.events {
		out = append(out, e.Type)
	}
	return out
}
