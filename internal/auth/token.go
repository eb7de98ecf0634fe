// Package auth supplies bearer tokens for the regions API. Issuing and
// refreshing tokens happens elsewhere; this package only reads them.
package auth

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrNoToken = errors.New("no API token configured")

type TokenSource interface {
	Token() (string, error)
}

type StaticToken string

func (s StaticToken) Token() (string, error) {
	tok := strings.TrimSpace(string(s))
	if tok == "" {
		return "", ErrNoToken
	}
	return tok, nil
}

// FileToken re-reads the file on every call so an external login helper
// can rotate the token while the viewer runs.
type FileToken struct {
	Path string
}

func (f FileToken) Token() (string, error) {
	// #nosec G304 -- path is user configuration.
	data, err := os.ReadFile(f.Path)
	if err != nil {
		return "", fmt.Errorf("read token file: %w", err)
	}
	tok := strings.TrimSpace(string(data))
	if tok == "" {
		return "", ErrNoToken
	}
	return tok, nil
}

// FromConfig prefers the token file when both are set.
func FromConfig(token, tokenFile string) TokenSource {
	if strings.TrimSpace(tokenFile) != "" {
		return FileToken{Path: tokenFile}
	}
	return StaticToken(token)
}

// ExpiresAt reads the exp claim without verifying the signature. The
// server stays the authority; this only lets the client warn early.
func ExpiresAt(token string) (time.Time, bool) {
	claims := jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return time.Time{}, false
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, false
	}
	return claims.ExpiresAt.Time, true
}

// Expired reports false for opaque (non-JWT) tokens.
func Expired(token string, now time.Time) bool {
	exp, ok := ExpiresAt(token)
	if !ok {
		return false
	}
	return !now.Before(exp)
}
