// Package geo resolves the city a request originates from.
package geo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/netip"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/parcel-service/internal/config"
)

// Locator looks up the city for a client IP.
type Locator interface {
	City(ctx context.Context, ip string) (string, error)
}

// ErrNoCity is returned when the upstream answers without a city.
var ErrNoCity = errors.New("geolocation returned no city")

// lookupResponse mirrors the ip-api.com JSON payload.
type lookupResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	City    string `json:"city"`
}

// HTTPLocator queries an ip-api compatible endpoint with a per-attempt timeout and bounded retries.
type HTTPLocator struct {
	baseURL    string
	timeout    time.Duration
	maxRetries uint64
	newBackOff func() backoff.BackOff
	logger     *zap.Logger
}

// NewHTTPLocator builds a locator from configuration.
func NewHTTPLocator(cfg config.GeoConfig, logger *zap.Logger) *HTTPLocator {
	retries := cfg.MaxRetries
	if retries < 0 {
		retries = 0
	}
	return &HTTPLocator{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		timeout:    cfg.Timeout(),
		maxRetries: uint64(retries),
		newBackOff: func() backoff.BackOff {
			b := backoff.NewExponentialBackOff()
			b.InitialInterval = 200 * time.Millisecond
			b.MaxElapsedTime = 0
			return b
		},
		logger: logger,
	}
}

// City resolves ip to a city name. Private and loopback addresses resolve the service's own location.
func (l *HTTPLocator) City(ctx context.Context, ip string) (string, error) {
	url := l.baseURL + "/" + publicIP(ip)

	var city string
	attempt := 0
	op := func() error {
		attempt++
		resolved, err := l.fetch(url)
		if err != nil {
			l.logger.Warn("geolocation attempt failed", zap.Int("attempt", attempt), zap.Error(err))
			return err
		}
		city = resolved
		return nil
	}

	policy := backoff.WithContext(backoff.WithMaxRetries(l.newBackOff(), l.maxRetries), ctx)
	if err := backoff.Retry(op, policy); err != nil {
		return "", err
	}
	return city, nil
}

func (l *HTTPLocator) fetch(url string) (string, error) {
	agent := fiber.Get(url).Timeout(l.timeout)
	if err := agent.Parse(); err != nil {
		return "", backoff.Permanent(fmt.Errorf("geolocation request: %w", err))
	}

	code, body, errs := agent.Bytes()
	if len(errs) > 0 {
		return "", fmt.Errorf("geolocation request: %w", errors.Join(errs...))
	}
	if code >= http.StatusInternalServerError || code == http.StatusTooManyRequests {
		return "", fmt.Errorf("geolocation upstream status %d", code)
	}
	if code != http.StatusOK {
		return "", backoff.Permanent(fmt.Errorf("geolocation upstream status %d", code))
	}

	var resp lookupResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", backoff.Permanent(fmt.Errorf("decode geolocation response: %w", err))
	}
	if resp.Status != "success" {
		return "", backoff.Permanent(fmt.Errorf("geolocation lookup failed: %s", resp.Message))
	}
	if strings.TrimSpace(resp.City) == "" {
		return "", backoff.Permanent(ErrNoCity)
	}
	return resp.City, nil
}

func publicIP(ip string) string {
	addr, err := netip.ParseAddr(ip)
	if err != nil || addr.IsLoopback() || addr.IsPrivate() || addr.IsUnspecified() || addr.IsLinkLocalUnicast() {
		return ""
	}
	return addr.String()
}
