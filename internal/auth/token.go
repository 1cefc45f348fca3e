package auth

import (
	"errors"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	"github.com/spec-kit/parcel-service/internal/domain"
)

// TokenManager issues and validates signed, time-boxed bearer tokens.
// The secret is fixed at construction; there is no way to rotate it afterwards.
type TokenManager struct {
	secret []byte
	ttls   map[domain.PrincipalKind]time.Duration
	now    func() time.Time
}

// NewTokenManager builds a manager with a TTL per principal kind.
func NewTokenManager(secret string, staffTTL, vendorTTL time.Duration) *TokenManager {
	if staffTTL <= 0 {
		staffTTL = 30 * time.Minute
	}
	if vendorTTL <= 0 {
		vendorTTL = 24 * time.Hour
	}
	return &TokenManager{
		secret: []byte(secret),
		ttls: map[domain.PrincipalKind]time.Duration{
			domain.PrincipalStaff:  staffTTL,
			domain.PrincipalVendor: vendorTTL,
		},
		now: time.Now,
	}
}

// Claims describes the JWT payload. Permissions are never embedded.
type Claims struct {
	PublicID string `json:"public_id"`
	jwt.RegisteredClaims
}

// TTL returns the lifetime of tokens for kind.
func (tm *TokenManager) TTL(kind domain.PrincipalKind) time.Duration {
	return tm.ttls[kind]
}

// Issue signs a token binding publicID to the principal pool of kind.
func (tm *TokenManager) Issue(publicID string, kind domain.PrincipalKind) (domain.Token, error) {
	ttl, ok := tm.ttls[kind]
	if !ok {
		return domain.Token{}, errors.New("unknown principal kind")
	}
	now := tm.now()
	expiresAt := now.Add(ttl)
	claims := &Claims{
		PublicID: publicID,
		RegisteredClaims: jwt.RegisteredClaims{
			Audience:  jwt.ClaimStrings{string(kind)},
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(tm.secret)
	if err != nil {
		return domain.Token{}, err
	}
	return domain.Token{Value: signed, PublicID: publicID, Kind: kind, ExpiresAt: expiresAt}, nil
}

// Verify validates signature, expiry and audience, returning the embedded public id.
func (tm *TokenManager) Verify(tokenStr string, kind domain.PrincipalKind) (*Claims, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(tm.now),
		jwt.WithExpirationRequired(),
		jwt.WithAudience(string(kind)),
	)
	parsed, err := parser.ParseWithClaims(tokenStr, &Claims{}, func(*jwt.Token) (interface{}, error) {
		return tm.secret, nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid || claims.PublicID == "" {
		return nil, errors.New("invalid token claims")
	}
	return claims, nil
}
