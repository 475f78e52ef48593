package middleware

import (
	"crypto/sha256"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/hkdf"
)

const (
	sessionIssuer = "hotel-tablebooking"
	sessionInfo   = "tablebooking session signing key v1"
)

// SessionConfig configures the anonymous session cookie.  Sessions carry no
// identity; they give every browser a stable ID for logs and rate limits.
type SessionConfig struct {
	Secret     string
	CookieName string
	TTL        time.Duration
	Secure     bool // set the Secure attribute (HTTPS deployments)
}

// Session issues and verifies the session cookie.  The cookie holds an
// HS256 JWT whose jti is the session ID; the signing key is derived from
// Secret with HKDF-SHA256 so the raw secret never signs anything.  Missing,
// expired or tampered cookies are replaced by a fresh session.  The
// session ID is stored in the context under "session_id".
func Session(cfg SessionConfig) echo.MiddlewareFunc {
	key, err := deriveSessionKey(cfg.Secret)
	if err != nil {
		panic(err)
	}
	if cfg.CookieName == "" {
		cfg.CookieName = "tb_session"
	}
	if cfg.TTL <= 0 {
		cfg.TTL = 24 * time.Hour
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			now := time.Now().UTC()
			var claims *jwt.RegisteredClaims
			if ck, err := c.Cookie(cfg.CookieName); err == nil {
				claims, _ = parseSession(ck.Value, key)
			}
			// Reissue new sessions and those past half their lifetime.
			if claims == nil || claims.ExpiresAt == nil || claims.ExpiresAt.Sub(now) < cfg.TTL/2 {
				id := uuid.NewString()
				if claims != nil && claims.ID != "" {
					id = claims.ID
				}
				token, exp, err := signSession(id, key, now, cfg.TTL)
				if err != nil {
					return err
				}
				c.SetCookie(&http.Cookie{
					Name:     cfg.CookieName,
					Value:    token,
					Path:     "/",
					Expires:  exp,
					MaxAge:   int(cfg.TTL / time.Second),
					HttpOnly: true,
					Secure:   cfg.Secure,
					SameSite: http.SameSiteLaxMode,
				})
				claims = &jwt.RegisteredClaims{ID: id}
			}
			c.Set(sessionKey, claims.ID)
			return next(c)
		}
	}
}

func deriveSessionKey(secret string) ([]byte, error) {
	if secret == "" {
		return nil, errors.New("session secret is empty")
	}
	key := make([]byte, 32)
	if _, err := io.ReadFull(hkdf.New(sha256.New, []byte(secret), nil, []byte(sessionInfo)), key); err != nil {
		return nil, err
	}
	return key, nil
}

func signSession(id string, key []byte, now time.Time, ttl time.Duration) (string, time.Time, error) {
	exp := now.Add(ttl)
	claims := jwt.RegisteredClaims{
		ID:        id,
		Issuer:    sessionIssuer,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(exp),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(key)
	return signed, exp, err
}

func parseSession(raw string, key []byte) (*jwt.RegisteredClaims, error) {
	claims := &jwt.RegisteredClaims{}
	tok, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		return key, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(sessionIssuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !tok.Valid || claims.ID == "" {
		return nil, errors.New("invalid session")
	}
	return claims, nil
}
