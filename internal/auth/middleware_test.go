package auth

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/parcel-service/internal/domain"
	apperrors "github.com/spec-kit/parcel-service/pkg/util/errorutil"
)

type guardFixture struct {
	tokens  *TokenManager
	staff   map[string]*domain.Staff
	vendors map[string]*domain.Vendor
	app     *fiber.App
}

func newGuardFixture(t *testing.T) *guardFixture {
	t.Helper()
	fx := &guardFixture{
		tokens:  NewTokenManager("guard-secret", 30*time.Minute, 24*time.Hour),
		staff:   map[string]*domain.Staff{},
		vendors: map[string]*domain.Vendor{},
	}

	staffGuard := NewGuard[*domain.Staff](domain.PrincipalStaff, fx.tokens,
		ResolverFunc[*domain.Staff](func(_ context.Context, publicID string) (*domain.Staff, error) {
			if s, ok := fx.staff[publicID]; ok {
				return s, nil
			}
			return nil, pgx.ErrNoRows
		}), "")
	vendorGuard := NewGuard[*domain.Vendor](domain.PrincipalVendor, fx.tokens,
		ResolverFunc[*domain.Vendor](func(_ context.Context, publicID string) (*domain.Vendor, error) {
			if v, ok := fx.vendors[publicID]; ok {
				return v, nil
			}
			return nil, pgx.ErrNoRows
		}), "")

	fx.app = fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			de := apperrors.ToDomainError(err)
			return c.Status(de.HTTPStatus).JSON(fiber.Map{"code": de.Code})
		},
	})
	fx.app.Get("/staff", staffGuard.Handle, func(c *fiber.Ctx) error {
		s, _ := CurrentStaff(c)
		return c.SendString(s.Name)
	})
	fx.app.Get("/admin", staffGuard.Handle, staffGuard.Require(RequireAdmin), func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})
	fx.app.Get("/vendor", vendorGuard.Handle, func(c *fiber.Ctx) error {
		v, _ := CurrentVendor(c)
		return c.SendString(v.Name)
	})
	return fx
}

func (fx *guardFixture) do(t *testing.T, path, token string) (int, string) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set(DefaultTokenHeader, token)
	}
	resp, err := fx.app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusOK {
		return resp.StatusCode, ""
	}
	var body struct {
		Code string `json:"code"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return resp.StatusCode, body.Code
}

func TestGuard_MissingToken(t *testing.T) {
	fx := newGuardFixture(t)

	status, code := fx.do(t, "/staff", "")
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, apperrors.CodeTokenMissing, code)
}

func TestGuard_InvalidToken(t *testing.T) {
	fx := newGuardFixture(t)

	status, code := fx.do(t, "/staff", "garbage")
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, apperrors.CodeTokenInvalid, code)
}

func TestGuard_ResolvesLivePrincipal(t *testing.T) {
	fx := newGuardFixture(t)
	fx.staff["s-1"] = &domain.Staff{PublicID: "s-1", Name: "alice"}

	token, err := fx.tokens.Issue("s-1", domain.PrincipalStaff)
	require.NoError(t, err)

	status, _ := fx.do(t, "/staff", token.Value)
	assert.Equal(t, http.StatusOK, status)

	status, code := fx.do(t, "/admin", token.Value)
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, apperrors.CodeForbidden, code)

	fx.staff["s-1"].IsAdmin = true
	status, _ = fx.do(t, "/admin", token.Value)
	assert.Equal(t, http.StatusOK, status)
}

func TestGuard_DeletedPrincipalInvalidatesToken(t *testing.T) {
	fx := newGuardFixture(t)
	fx.staff["s-1"] = &domain.Staff{PublicID: "s-1", Name: "alice"}

	token, err := fx.tokens.Issue("s-1", domain.PrincipalStaff)
	require.NoError(t, err)

	delete(fx.staff, "s-1")
	status, code := fx.do(t, "/staff", token.Value)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, apperrors.CodeTokenInvalid, code)
}

func TestGuard_PoolsAreDisjoint(t *testing.T) {
	fx := newGuardFixture(t)
	fx.staff["shared"] = &domain.Staff{PublicID: "shared", Name: "alice", IsAdmin: true}
	fx.vendors["shared"] = &domain.Vendor{PublicID: "shared", Name: "acme"}

	vendorToken, err := fx.tokens.Issue("shared", domain.PrincipalVendor)
	require.NoError(t, err)
	staffToken, err := fx.tokens.Issue("shared", domain.PrincipalStaff)
	require.NoError(t, err)

	status, code := fx.do(t, "/staff", vendorToken.Value)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, apperrors.CodeTokenInvalid, code)

	status, code = fx.do(t, "/vendor", staffToken.Value)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, apperrors.CodeTokenInvalid, code)

	status, _ = fx.do(t, "/vendor", vendorToken.Value)
	assert.Equal(t, http.StatusOK, status)
}

func TestGuard_ResolverFailureIsInternal(t *testing.T) {
	tokens := NewTokenManager("secret", 0, 0)
	guard := NewGuard[*domain.Vendor](domain.PrincipalVendor, tokens,
		ResolverFunc[*domain.Vendor](func(context.Context, string) (*domain.Vendor, error) {
			return nil, errors.New("connection reset")
		}), "")

	token, err := tokens.Issue("v-1", domain.PrincipalVendor)
	require.NoError(t, err)

	_, err = guard.Authenticate(context.Background(), token.Value)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeInternal))
}
