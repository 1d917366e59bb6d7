package token

import (
	"time"

	"propertyhub/internal/platform/middleware"
)

// MiddlewareAdapter exposes the codec through the middleware's TokenDecoder
// interface so the HTTP layer does not import this package's claim types.
type MiddlewareAdapter struct {
	codec *Codec
}

// NewMiddlewareAdapter wraps a codec for use by middleware.RequireAuth.
func NewMiddlewareAdapter(codec *Codec) *MiddlewareAdapter {
	return &MiddlewareAdapter{codec: codec}
}

// DecodeClaims implements middleware.TokenDecoder. Expired tokens are rejected
// here because the middleware gates live requests.
func (a *MiddlewareAdapter) DecodeClaims(tokenString string) (*middleware.TokenClaims, error) {
	claims, err := a.codec.DecodeValid(tokenString, time.Now())
	if err != nil {
		return nil, err
	}
	return &middleware.TokenClaims{
		UserID: claims.UserID,
		Role:   claims.Role,
	}, nil
}

var _ middleware.TokenDecoder = (*MiddlewareAdapter)(nil)
