// Package auth verifies the session token the admin UI keeps in a cookie.
package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/joseph-ayodele/catalog-cms/internal/common"
)

// Messages returned in 401 envelopes.
const (
	MsgNoToken      = "Unauthorized - No token provided"
	MsgInvalidToken = "Unauthorized - Invalid token"
	MsgExpiredToken = "Unauthorized - Token expired"
)

// Claims is the token payload issued by the login service.
type Claims struct {
	jwt.RegisteredClaims
	RoleID int `json:"roleId"`
}

// Verifier checks HS256 tokens signed with a shared secret.
type Verifier struct {
	secret []byte
	now    func() time.Time
}

func NewVerifier(secret string) *Verifier {
	return &Verifier{secret: []byte(secret), now: time.Now}
}

// WithClock returns a copy of v that validates expiry against now.
func (v *Verifier) WithClock(now func() time.Time) *Verifier {
	cp := *v
	cp.now = now
	return &cp
}

// Verify parses token and returns its claims. Every failure is an
// unauthorized error whose message is safe to show to the client.
func (v *Verifier) Verify(token string) (*Claims, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, common.UnauthorizedError(MsgNoToken)
	}

	var claims Claims
	_, err := jwt.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) {
		return v.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(v.now),
	)
	if err != nil {
		return nil, mapJWTError(err)
	}
	return &claims, nil
}

// mapJWTError translates jwt library errors to unauthorized errors.
func mapJWTError(err error) error {
	if errors.Is(err, jwt.ErrTokenExpired) {
		return common.NewAppError("UNAUTHORIZED", MsgExpiredToken, errors.Join(common.ErrUnauthorized, err))
	}
	return common.NewAppError("UNAUTHORIZED", MsgInvalidToken, errors.Join(common.ErrUnauthorized, err))
}

// Issue signs a token for subject. The admin UI gets its tokens from the
// login service; this is used by cmsctl and tests.
func Issue(secret, subject string, roleID int, ttl time.Duration, now time.Time) (string, error) {
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		RoleID: roleID,
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// WithClaims stores the verified user on ctx.
func WithClaims(ctx context.Context, c *Claims) context.Context {
	return common.WithUser(ctx, c.Subject, c.RoleID)
}
