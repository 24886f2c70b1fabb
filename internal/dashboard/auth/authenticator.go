// Package auth decides who may use the dashboard endpoints.
package auth

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidCredentials is returned for any rejected token. It never carries
// the token itself.
var ErrInvalidCredentials = errors.New("invalid credentials")

// TokenTypeDashboard is the required "type" claim of operator JWTs.
const TokenTypeDashboard = "dashboard"

// Principal identifies an authenticated dashboard operator.
type Principal struct {
	Subject  string
	Provider string
}

// Authenticator validates a bearer credential.
type Authenticator interface {
	Name() string
	Authenticate(ctx context.Context, token string) (Principal, error)
}

// StaticTokenAuthenticator accepts exactly one shared secret.
type StaticTokenAuthenticator struct {
	secret []byte
}

// NewStaticTokenAuthenticator returns an authenticator for secret. An empty
// secret rejects every token.
func NewStaticTokenAuthenticator(secret string) *StaticTokenAuthenticator {
	return &StaticTokenAuthenticator{secret: []byte(secret)}
}

func (a *StaticTokenAuthenticator) Name() string { return "static" }

func (a *StaticTokenAuthenticator) Authenticate(_ context.Context, token string) (Principal, error) {
	if len(a.secret) == 0 || token == "" {
		return Principal{}, ErrInvalidCredentials
	}
	if subtle.ConstantTimeCompare([]byte(token), a.secret) != 1 {
		return Principal{}, ErrInvalidCredentials
	}
	return Principal{Subject: "owner", Provider: a.Name()}, nil
}

// JWTAuthenticator accepts HMAC-signed operator tokens.
type JWTAuthenticator struct {
	secret []byte
	now    func() time.Time
}

// NewJWTAuthenticator returns an authenticator verifying tokens signed with secret.
func NewJWTAuthenticator(secret string) *JWTAuthenticator {
	return &JWTAuthenticator{secret: []byte(secret), now: time.Now}
}

func (a *JWTAuthenticator) Name() string { return "jwt" }

func (a *JWTAuthenticator) Authenticate(_ context.Context, token string) (Principal, error) {
	if len(a.secret) == 0 || token == "" {
		return Principal{}, ErrInvalidCredentials
	}

	parsed, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return a.secret, nil
	}, jwt.WithTimeFunc(a.now), jwt.WithExpirationRequired())
	if err != nil || !parsed.Valid {
		return Principal{}, ErrInvalidCredentials
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return Principal{}, ErrInvalidCredentials
	}
	if tokenType, _ := claims["type"].(string); tokenType != TokenTypeDashboard {
		return Principal{}, ErrInvalidCredentials
	}
	subject, _ := claims["sub"].(string)
	if strings.TrimSpace(subject) == "" {
		return Principal{}, ErrInvalidCredentials
	}

	return Principal{Subject: subject, Provider: a.Name()}, nil
}

// SignDashboardToken mints an operator token accepted by JWTAuthenticator.
func SignDashboardToken(secret, subject string, ttl time.Duration, now time.Time) (string, error) {
	if secret == "" {
		return "", errors.New("jwt secret is empty")
	}
	if strings.TrimSpace(subject) == "" {
		return "", errors.New("subject is empty")
	}
	if ttl <= 0 {
		return "", fmt.Errorf("ttl must be positive, got %s", ttl)
	}

	claims := jwt.MapClaims{
		"sub":  subject,
		"type": TokenTypeDashboard,
		"iat":  now.Unix(),
		"exp":  now.Add(ttl).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

type chain []Authenticator

// AnyOf accepts a token if any provider accepts it, trying them in order.
func AnyOf(providers ...Authenticator) Authenticator {
	out := make(chain, 0, len(providers))
	for _, p := range providers {
		if p != nil {
			out = append(out, p)
		}
	}
	return out
}

func (c chain) Name() string {
	names := make([]string, len(c))
	for i, p := range c {
		names[i] = p.Name()
	}
	return strings.Join(names, "|")
}

func (c chain) Authenticate(ctx context.Context, token string) (Principal, error) {
	for _, p := range c {
		if principal, err := p.Authenticate(ctx, token); err == nil {
			return principal, nil
		}
	}
	return Principal{}, ErrInvalidCredentials
}
