// Package token issues and decodes the opaque credential carried by clients.
//
// Issuing signs with HS256. Decoding deliberately reads claims without
// re-verifying the signature: the identity provider verified it at issue time,
// and the session layer only needs the carried expiry and role for local
// decisions. A token that cannot be decoded is indistinguishable from a forged
// one and is treated as absent by callers.
package token

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"propertyhub/pkg/domain"
	dErrors "propertyhub/pkg/domain-errors"
)

// Sentinel errors callers branch on. Both resolve to "unauthenticated" in the
// session layer; the split exists for diagnostics only.
var (
	ErrMalformed = dErrors.New(dErrors.CodeUnauthorized, "token is malformed")
	ErrExpired   = dErrors.New(dErrors.CodeUnauthorized, "token has expired")
)

// Claims are the decoded contents of an access token.
type Claims struct {
	UserID    domain.UserID
	Role      domain.RoleID
	ExpiresAt time.Time
}

// Valid reports whether the claims are usable at the given instant.
// A token whose expiry is at or before now is expired.
func (c *Claims) Valid(now time.Time) bool {
	return c.ExpiresAt.After(now)
}

// accessClaims is the wire shape of the token payload.
type accessClaims struct {
	Role int `json:"role"`
	jwt.RegisteredClaims
}

// Codec issues and decodes access tokens.
type Codec struct {
	signingKey []byte
	issuer     string
	ttl        time.Duration
}

// NewCodec constructs a token codec.
func NewCodec(signingKey string, issuer string, ttl time.Duration) *Codec {
	return &Codec{
		signingKey: []byte(signingKey),
		issuer:     issuer,
		ttl:        ttl,
	}
}

// Issue signs a token carrying the subject, role, and expiry claims.
func (c *Codec) Issue(_ context.Context, userID domain.UserID, role domain.RoleID) (string, error) {
	if userID.IsNil() {
		return "", dErrors.New(dErrors.CodeInvalidInput, "user ID is required")
	}
	if !role.IsValid() {
		return "", dErrors.New(dErrors.CodeInvalidInput, "role is required")
	}

	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", dErrors.Wrap(err, dErrors.CodeInternal, "could not generate token ID")
	}
	now := time.Now()

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, accessClaims{
		Role: int(role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    c.issuer,
			ID:        hex.EncodeToString(b),
		},
	})

	signed, err := tok.SignedString(c.signingKey)
	if err != nil {
		return "", dErrors.Wrap(err, dErrors.CodeInternal, "could not sign token")
	}
	return signed, nil
}

// Decode extracts the claims from a token without enforcing expiry.
// Callers decide what an expired token means for them.
func (c *Codec) Decode(tokenString string) (*Claims, error) {
	parsed, _, err := jwt.NewParser().ParseUnverified(tokenString, &accessClaims{})
	if err != nil {
		return nil, ErrMalformed
	}
	raw, ok := parsed.Claims.(*accessClaims)
	if !ok || raw.ExpiresAt == nil {
		return nil, ErrMalformed
	}

	sub, err := strconv.ParseInt(raw.Subject, 10, 64)
	if err != nil || sub < 1 {
		return nil, ErrMalformed
	}
	role, err := domain.ParseRoleID(raw.Role)
	if err != nil {
		return nil, ErrMalformed
	}

	return &Claims{
		UserID:    domain.UserID(sub),
		Role:      role,
		ExpiresAt: raw.ExpiresAt.Time,
	}, nil
}

// DecodeValid decodes the claims and additionally enforces expiry.
func (c *Codec) DecodeValid(tokenString string, now time.Time) (*Claims, error) {
	claims, err := c.Decode(tokenString)
	if err != nil {
		return nil, err
	}
	if !claims.Valid(now) {
		return nil, ErrExpired
	}
	return claims, nil
}
