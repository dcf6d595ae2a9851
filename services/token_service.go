package services

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/storefront-api/config"
	"github.com/storefront-api/dto"
)

const (
	minSecretKeyBytes = 32
	defaultTokenTTL   = 24 * time.Hour
)

// TokenService issues and resolves HS256 bearer tokens
type TokenService struct {
	key []byte
	ttl time.Duration
	now func() time.Time
}

// NewTokenService creates a token service signing with key
func NewTokenService(key []byte, ttl time.Duration) *TokenService {
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}
	return &TokenService{key: key, ttl: ttl, now: time.Now}
}

// NewTokenServiceFromConfig decodes the base64 secret from cfg. When it is
// missing or shorter than 32 bytes a random key is generated, so tokens
// issued by this process stop validating after a restart.
func NewTokenServiceFromConfig(cfg config.AuthConfig, log *slog.Logger) (*TokenService, error) {
	key, err := decodeSecretKey(cfg.SecretKey)
	if err != nil {
		log.Warn("SECRET_KEY unusable, generating ephemeral signing key; tokens will not survive a restart",
			slog.String("reason", err.Error()))
		key = make([]byte, minSecretKeyBytes)
		if _, err := rand.Read(key); err != nil {
			return nil, fmt.Errorf("failed to generate signing key: %w", err)
		}
	}
	return NewTokenService(key, cfg.TokenTTL), nil
}

func decodeSecretKey(secret string) ([]byte, error) {
	secret = strings.TrimSpace(secret)
	if secret == "" {
		return nil, errors.New("not set")
	}
	key, err := base64.StdEncoding.DecodeString(secret)
	if err != nil {
		return nil, fmt.Errorf("not valid base64: %w", err)
	}
	if len(key) < minSecretKeyBytes {
		return nil, fmt.Errorf("decodes to %d bytes, need at least %d", len(key), minSecretKeyBytes)
	}
	return key, nil
}

// Issue signs a token for subject and returns it with its expiry
func (s *TokenService) Issue(subject string) (string, time.Time, error) {
	now := s.now()
	expiresAt := now.Add(s.ttl)

	claims := dto.TokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.key)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

// Resolve validates a token and returns its subject. Every failure is
// reported as ErrUnauthenticated.
func (s *TokenService) Resolve(tokenString string) (string, error) {
	claims := &dto.TokenClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.key, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || !token.Valid {
		return "", fmt.Errorf("%w: invalid or expired token", ErrUnauthenticated)
	}
	if claims.Subject == "" {
		return "", fmt.Errorf("%w: token has no subject", ErrUnauthenticated)
	}
	return claims.Subject, nil
}
