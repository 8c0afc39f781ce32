// Copyright (c) 2025 Michael Chen.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidAdminKey = errors.New("invalid admin key")
	ErrInvalidSession  = errors.New("invalid session token")
)

// SessionTTL is how long a minted session token stays valid
const SessionTTL = 24 * time.Hour

// GenerateID creates a random hex ID of the specified byte length
func GenerateID(byteLen int) (string, error) {
	b := make([]byte, byteLen)
	_, err := rand.Read(b)
	if err != nil {
		return "", fmt.Errorf("failed to generate random ID: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// GenerateAdminKey creates an HMAC-based admin key for the service
// This is deterministic and verifiable
func GenerateAdminKey(salt string) string {
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte("powercast-admin"))
	sum := h.Sum(nil)
	// Use URL-safe base64 and trim padding for cleaner keys
	return strings.TrimRight(base64.URLEncoding.EncodeToString(sum), "=")
}

// ValidateAdminKey checks if the provided admin key is valid
func ValidateAdminKey(adminKey, salt string) error {
	expected := GenerateAdminKey(salt)
	if !hmac.Equal([]byte(adminKey), []byte(expected)) {
		return ErrInvalidAdminKey
	}
	return nil
}

// NewSessionToken mints a signed session token carrying the user's fid
func NewSessionToken(fid int64, secret string) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": strconv.FormatInt(fid, 10),
		"iat": now.Unix(),
		"exp": now.Add(SessionTTL).Unix(),
	})
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}
	return signed, nil
}

// ParseSessionToken validates a session token and returns the fid it carries
func ParseSessionToken(tokenString, secret string) (int64, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidSession
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return 0, ErrInvalidSession
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, ErrInvalidSession
	}

	sub, _ := claims["sub"].(string)
	fid, err := strconv.ParseInt(sub, 10, 64)
	if err != nil || fid <= 0 {
		return 0, ErrInvalidSession
	}

	return fid, nil
}

// SessionFID extracts and validates the fid from an Authorization header
// of the form "Bearer <token>"
func SessionFID(authHeader, secret string) (int64, error) {
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return 0, ErrInvalidSession
	}
	return ParseSessionToken(strings.TrimPrefix(authHeader, "Bearer "), secret)
}
