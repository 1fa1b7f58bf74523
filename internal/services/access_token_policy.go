package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	AccessScopeAPI  = "api"
	AccessScopeFeed = "feed"

	accessTokenIssuer = "bloom"
	accessTokenOwner  = "owner"
)

var (
	ErrAccessTokenMissing = errors.New("missing access token")
	ErrAccessTokenInvalid = errors.New("invalid access token")
	ErrAccessTokenExpired = errors.New("expired access token")
	ErrAccessTokenScope   = errors.New("access token scope not allowed")
	ErrAccessScopeInvalid = errors.New("invalid access scope")
)

type AccessClaims struct {
	Scope string `json:"scope"`
	jwt.RegisteredClaims
}

func IsValidAccessScope(scope string) bool {
	return scope == AccessScopeAPI || scope == AccessScopeFeed
}

func BuildAccessToken(secretKey []byte, scope string, ttl time.Duration, now time.Time) (string, error) {
	if !IsValidAccessScope(scope) {
		return "", ErrAccessScopeInvalid
	}
	if ttl <= 0 {
		ttl = DefaultAccessTokenTTL(scope)
	}
	if now.IsZero() {
		now = time.Now()
	}

	claims := AccessClaims{
		Scope: scope,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    accessTokenIssuer,
			Subject:   accessTokenOwner,
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secretKey)
}

// ParseAccessToken verifies signature, expiry at now and that the scope is one of allowed.
func ParseAccessToken(secretKey []byte, rawToken string, now time.Time, allowed ...string) (*AccessClaims, error) {
	rawToken = strings.TrimSpace(rawToken)
	if rawToken == "" {
		return nil, ErrAccessTokenMissing
	}
	if now.IsZero() {
		now = time.Now()
	}

	claims := &AccessClaims{}
	token, err := jwt.ParseWithClaims(rawToken, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method")
		}
		return secretKey, nil
	}, jwt.WithTimeFunc(func() time.Time { return now }), jwt.WithIssuer(accessTokenIssuer))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrAccessTokenExpired
		}
		return nil, ErrAccessTokenInvalid
	}
	if !token.Valid {
		return nil, ErrAccessTokenInvalid
	}
	if claims.ExpiresAt == nil || !claims.ExpiresAt.Time.After(now) {
		return nil, ErrAccessTokenExpired
	}

	for _, scope := range allowed {
		if claims.Scope == scope {
			return claims, nil
		}
	}
	return nil, ErrAccessTokenScope
}

// DefaultAccessTokenTTL keeps API tokens short-lived; calendar subscriptions
// cannot refresh, so feed tokens last a year.
func DefaultAccessTokenTTL(scope string) time.Duration {
	if scope == AccessScopeFeed {
		return 365 * 24 * time.Hour
	}
	return 30 * 24 * time.Hour
}
