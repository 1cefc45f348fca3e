// Package label renders printable QR labels for parcels.
package label

import (
	"encoding/json"
	"fmt"

	"github.com/skip2/go-qrcode"

	"github.com/spec-kit/parcel-service/internal/config"
	"github.com/spec-kit/parcel-service/internal/domain"
)

// Payload is the JSON encoded into a parcel label.
type Payload struct {
	QRID   string `json:"qr_id"`
	Vendor string `json:"vendor"`
}

// Renderer produces PNG QR codes.
type Renderer struct {
	size  int
	level qrcode.RecoveryLevel
}

// NewRenderer builds a renderer; unknown levels fall back to Medium.
func NewRenderer(cfg config.LabelConfig) *Renderer {
	var level qrcode.RecoveryLevel
	switch cfg.QRLevel {
	case "L":
		level = qrcode.Low
	case "Q":
		level = qrcode.High
	case "H":
		level = qrcode.Highest
	default:
		level = qrcode.Medium
	}
	size := cfg.QRSize
	if size <= 0 {
		size = 256
	}
	return &Renderer{size: size, level: level}
}

// PNG renders the label for parcel.
func (r *Renderer) PNG(parcel *domain.Parcel) ([]byte, error) {
	data, err := json.Marshal(Payload{QRID: parcel.QRID, Vendor: parcel.VendorName})
	if err != nil {
		return nil, fmt.Errorf("marshal label payload: %w", err)
	}

	code, err := qrcode.New(string(data), r.level)
	if err != nil {
		return nil, fmt.Errorf("create qr code: %w", err)
	}

	png, err := code.PNG(r.size)
	if err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return png, nil
}
