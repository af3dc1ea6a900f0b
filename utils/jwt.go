package utils

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const tokenIssuer = "TableOrder"

var ErrInvalidToken = errors.New("invalid or expired token")

type CustomClaims struct {
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// TokenManager issues and verifies admin session tokens.
type TokenManager struct {
	secret    []byte
	ttl       time.Duration
	blacklist *TokenBlacklist
	now       func() time.Time
}

func NewTokenManager(secret string, ttl time.Duration, blacklist *TokenBlacklist) *TokenManager {
	if blacklist == nil {
		blacklist = NewTokenBlacklist()
	}
	return &TokenManager{
		secret:    []byte(secret),
		ttl:       ttl,
		blacklist: blacklist,
		now:       time.Now,
	}
}

func (m *TokenManager) GenerateToken(username, role string) (string, time.Time, error) {
	now := m.now()
	expiresAt := now.Add(m.ttl)
	claims := &CustomClaims{
		Username: username,
		Role:     role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    tokenIssuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return signed, expiresAt, nil
}

// ParseToken verifies signature, expiry and the blacklist.
func (m *TokenManager) ParseToken(tokenString string) (*CustomClaims, error) {
	if m.blacklist.IsBlacklisted(tokenString) {
		return nil, ErrInvalidToken
	}

	token, err := jwt.ParseWithClaims(tokenString, &CustomClaims{}, func(token *jwt.Token) (interface{}, error) {
		return m.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(tokenIssuer),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*CustomClaims)
	if !ok {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// Revoke blacklists a token until its own expiry.
func (m *TokenManager) Revoke(tokenString string) error {
	claims, err := m.ParseToken(tokenString)
	if err != nil {
		return err
	}
	m.blacklist.Add(tokenString, claims.ExpiresAt.Time)
	return nil
}
