package auth

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/parcel-service/internal/domain"
	apperrors "github.com/spec-kit/parcel-service/pkg/util/errorutil"
)

// DefaultTokenHeader carries the bearer token on protected routes.
const DefaultTokenHeader = "x-access-token"

// PrincipalResolver loads the live record behind a token's public id.
// Implementations return pgx.ErrNoRows when the record no longer exists.
type PrincipalResolver[P any] interface {
	ResolvePrincipal(ctx context.Context, publicID string) (P, error)
}

// ResolverFunc adapts a plain function to PrincipalResolver.
type ResolverFunc[P any] func(ctx context.Context, publicID string) (P, error)

func (f ResolverFunc[P]) ResolvePrincipal(ctx context.Context, publicID string) (P, error) {
	return f(ctx, publicID)
}

// Guard validates tokens for one principal pool and stores the resolved principal.
type Guard[P any] struct {
	kind     domain.PrincipalKind
	tokens   *TokenManager
	resolver PrincipalResolver[P]
	header   string
}

// NewGuard constructs middleware for principals of kind.
func NewGuard[P any](kind domain.PrincipalKind, tokens *TokenManager, resolver PrincipalResolver[P], header string) *Guard[P] {
	if header == "" {
		header = DefaultTokenHeader
	}
	return &Guard[P]{kind: kind, tokens: tokens, resolver: resolver, header: header}
}

// Authenticate resolves the principal behind the request token.
func (g *Guard[P]) Authenticate(ctx context.Context, token string) (P, error) {
	var zero P
	if token == "" {
		return zero, apperrors.NewTokenMissing()
	}

	claims, err := g.tokens.Verify(token, g.kind)
	if err != nil {
		return zero, apperrors.NewTokenInvalid()
	}

	principal, err := g.resolver.ResolvePrincipal(ctx, claims.PublicID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return zero, apperrors.NewTokenInvalid()
		}
		return zero, apperrors.MapError(err)
	}
	return principal, nil
}

// Handle enforces authentication for protected routes.
func (g *Guard[P]) Handle(c *fiber.Ctx) error {
	principal, err := g.Authenticate(c.UserContext(), c.Get(g.header))
	if err != nil {
		return err
	}
	c.Locals(localsKey(g.kind), principal)
	return c.Next()
}

// Require runs check against the resolved principal before continuing.
// It must be mounted after Handle.
func (g *Guard[P]) Require(check func(P) error) fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext[P](c, g.kind)
		if !ok {
			return apperrors.NewTokenMissing()
		}
		if err := check(principal); err != nil {
			return err
		}
		return c.Next()
	}
}

// PrincipalFromContext retrieves the principal stored by the guard for kind.
func PrincipalFromContext[P any](c *fiber.Ctx, kind domain.PrincipalKind) (P, bool) {
	principal, ok := c.Locals(localsKey(kind)).(P)
	return principal, ok
}

func localsKey(kind domain.PrincipalKind) string {
	return "auth_principal_" + string(kind)
}
