package services

import (
	"encoding/base64"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/storefront-api/config"
	"github.com/storefront-api/dto"
)

var testKey = []byte("0123456789abcdef0123456789abcdef")

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestTokenRoundTrip(t *testing.T) {
	svc := NewTokenService(testKey, time.Hour)

	token, expiresAt, err := svc.Issue("42")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if time.Until(expiresAt) <= 0 || time.Until(expiresAt) > time.Hour {
		t.Fatalf("unexpected expiry %v", expiresAt)
	}

	subject, err := svc.Resolve(token)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if subject != "42" {
		t.Fatalf("subject = %q, want 42", subject)
	}
}

func TestTokenDefaultTTL(t *testing.T) {
	svc := NewTokenService(testKey, 0)
	_, expiresAt, err := svc.Issue("1")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if d := time.Until(expiresAt); d < 23*time.Hour || d > 24*time.Hour {
		t.Fatalf("default ttl gave expiry in %v", d)
	}
}

func TestTokenResolveRejects(t *testing.T) {
	svc := NewTokenService(testKey, time.Hour)

	expiredSvc := NewTokenService(testKey, time.Minute)
	expiredSvc.now = func() time.Time { return time.Now().Add(-time.Hour) }
	expired, _, err := expiredSvc.Issue("7")
	if err != nil {
		t.Fatalf("issue expired: %v", err)
	}

	otherKey, _, err := NewTokenService([]byte("ffffffffffffffffffffffffffffffff"), time.Hour).Issue("7")
	if err != nil {
		t.Fatalf("issue other key: %v", err)
	}

	first, _, _ := svc.Issue("7")
	second, _, _ := svc.Issue("8")
	a := strings.Split(first, ".")
	b := strings.Split(second, ".")
	tampered := a[0] + "." + b[1] + "." + a[2]

	now := time.Now()
	claims := dto.TokenClaims{RegisteredClaims: jwt.RegisteredClaims{
		Subject:   "7",
		ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
	}}
	hs512, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString(testKey)
	if err != nil {
		t.Fatalf("sign hs512: %v", err)
	}
	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("sign none: %v", err)
	}
	noExpiry, err := jwt.NewWithClaims(jwt.SigningMethodHS256, dto.TokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: "7"},
	}).SignedString(testKey)
	if err != nil {
		t.Fatalf("sign no expiry: %v", err)
	}
	noSubject, err := jwt.NewWithClaims(jwt.SigningMethodHS256, dto.TokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour))},
	}).SignedString(testKey)
	if err != nil {
		t.Fatalf("sign no subject: %v", err)
	}

	cases := map[string]string{
		"empty":      "",
		"malformed":  "not-a-token",
		"expired":    expired,
		"wrong key":  otherKey,
		"tampered":   tampered,
		"hs512":      hs512,
		"alg none":   none,
		"no expiry":  noExpiry,
		"no subject": noSubject,
	}
	for name, token := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := svc.Resolve(token)
			if !errors.Is(err, ErrUnauthenticated) {
				t.Fatalf("want ErrUnauthenticated, got %v", err)
			}
		})
	}
}

func TestTokenServiceFromConfig(t *testing.T) {
	secret := base64.StdEncoding.EncodeToString(testKey)

	a, err := NewTokenServiceFromConfig(config.AuthConfig{SecretKey: secret, TokenTTL: time.Hour}, discardLogger())
	if err != nil {
		t.Fatalf("from config: %v", err)
	}
	b, err := NewTokenServiceFromConfig(config.AuthConfig{SecretKey: secret, TokenTTL: time.Hour}, discardLogger())
	if err != nil {
		t.Fatalf("from config: %v", err)
	}
	token, _, err := a.Issue("3")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := b.Resolve(token); err != nil {
		t.Fatalf("shared key should validate across instances: %v", err)
	}

	// Short or missing secrets fall back to a per-instance random key.
	short := base64.StdEncoding.EncodeToString([]byte("too-short"))
	for _, s := range []string{"", short, "%%%not-base64"} {
		c, err := NewTokenServiceFromConfig(config.AuthConfig{SecretKey: s}, discardLogger())
		if err != nil {
			t.Fatalf("fallback key for %q: %v", s, err)
		}
		token, _, err := c.Issue("3")
		if err != nil {
			t.Fatalf("issue with fallback key: %v", err)
		}
		if _, err := c.Resolve(token); err != nil {
			t.Fatalf("fallback key should validate its own tokens: %v", err)
		}
		if _, err := a.Resolve(token); !errors.Is(err, ErrUnauthenticated) {
			t.Fatalf("fallback key token accepted by configured key")
		}
	}
}
