package label

import (
	"bytes"
	"image/png"
	"testing"

	"github.com/skip2/go-qrcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/parcel-service/internal/config"
	"github.com/spec-kit/parcel-service/internal/domain"
)

func TestRenderer_PNG(t *testing.T) {
	r := NewRenderer(config.LabelConfig{QRSize: 128, QRLevel: "H"})

	out, err := r.PNG(&domain.Parcel{QRID: "6f1c7c1e-2d1a-4b5a-9f4e-1f2a3b4c5d6e", VendorName: "acme"})
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, 128, img.Bounds().Dx())
}

func TestNewRenderer_Defaults(t *testing.T) {
	r := NewRenderer(config.LabelConfig{QRLevel: "?"})
	assert.Equal(t, 256, r.size)
	assert.Equal(t, qrcode.Medium, r.level)
}
