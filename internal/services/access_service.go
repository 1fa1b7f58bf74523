package services

import (
	"errors"
	"strings"
	"time"

	"github.com/terraincognita07/bloom/internal/security"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrAccessPassphraseInvalid = errors.New("invalid passphrase")
	ErrAccessNotConfigured     = errors.New("access not configured")
)

const generatedPassphraseAlphabet = "abcdefghjkmnpqrstuvwxyz23456789"

type AccessToken struct {
	Token     string    `json:"token"`
	Scope     string    `json:"scope"`
	ExpiresAt time.Time `json:"expires_at"`
}

// AccessService guards the single-owner instance with a bcrypt passphrase and
// HS256 tokens signed with secretKey.
type AccessService struct {
	secretKey      []byte
	passphraseHash []byte
}

func NewAccessService(secretKey []byte, passphraseHash []byte) (*AccessService, error) {
	if len(secretKey) == 0 || len(passphraseHash) == 0 {
		return nil, ErrAccessNotConfigured
	}
	if _, err := bcrypt.Cost(passphraseHash); err != nil {
		return nil, err
	}
	return &AccessService{secretKey: secretKey, passphraseHash: passphraseHash}, nil
}

func HashPassphrase(passphrase string) ([]byte, error) {
	return bcrypt.GenerateFromPassword([]byte(passphrase), bcrypt.DefaultCost)
}

// GeneratePassphrase returns a random passphrase for instances started without one.
func GeneratePassphrase() (string, error) {
	value, err := security.RandomString(20, generatedPassphraseAlphabet)
	if err != nil {
		return "", err
	}
	return value[:5] + "-" + value[5:10] + "-" + value[10:15] + "-" + value[15:], nil
}

func (service *AccessService) IssueToken(passphrase string, scope string, now time.Time) (AccessToken, error) {
	scope = strings.TrimSpace(scope)
	if scope == "" {
		scope = AccessScopeAPI
	}
	if !IsValidAccessScope(scope) {
		return AccessToken{}, ErrAccessScopeInvalid
	}
	if bcrypt.CompareHashAndPassword(service.passphraseHash, []byte(passphrase)) != nil {
		return AccessToken{}, ErrAccessPassphraseInvalid
	}

	ttl := DefaultAccessTokenTTL(scope)
	token, err := BuildAccessToken(service.secretKey, scope, ttl, now)
	if err != nil {
		return AccessToken{}, err
	}
	return AccessToken{Token: token, Scope: scope, ExpiresAt: now.Add(ttl).UTC().Truncate(time.Second)}, nil
}

func (service *AccessService) Authorize(rawToken string, now time.Time, allowed ...string) (*AccessClaims, error) {
	return ParseAccessToken(service.secretKey, rawToken, now, allowed...)
}
