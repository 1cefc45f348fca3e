package handlers

import (
	"encoding/base64"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/parcel-service/internal/service"
	apperrors "github.com/spec-kit/parcel-service/pkg/util/errorutil"
)

const loginChallenge = `Basic realm="Login Required!"`

// basicCredentials extracts name and password from an HTTP Basic Authorization header.
func basicCredentials(c *fiber.Ctx) (string, string, bool) {
	header := c.Get(fiber.HeaderAuthorization)
	scheme, encoded, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "basic") {
		return "", "", false
	}
	raw, err := base64.StdEncoding.DecodeString(strings.TrimSpace(encoded))
	if err != nil {
		return "", "", false
	}
	name, password, ok := strings.Cut(string(raw), ":")
	if !ok || name == "" || password == "" {
		return "", "", false
	}
	return name, password, true
}

// challenge marks a credential failure so clients prompt again. Other failures pass through unchanged.
func challenge(c *fiber.Ctx, err error) error {
	if apperrors.IsCode(err, apperrors.CodeUnauthorized) {
		c.Set(fiber.HeaderWWWAuthenticate, loginChallenge)
	}
	return err
}

func missingCredentials(c *fiber.Ctx) error {
	return challenge(c, service.ErrInvalidCredentials)
}
