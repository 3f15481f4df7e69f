package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/google/uuid"
)

const (
	tokenTypeAccess  = "access"
	tokenTypeRefresh = "refresh"
)

var ErrInvalidToken = errors.New("invalid token")

// TokenIssuer signs and verifies HS256 access and refresh tokens. Both carry
// the user id in the user_id claim.
type TokenIssuer struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	now        func() time.Time
}

func NewTokenIssuer(secret string, accessTTL, refreshTTL time.Duration) *TokenIssuer {
	return &TokenIssuer{
		secret:     []byte(secret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		now:        time.Now,
	}
}

func (i *TokenIssuer) RefreshTTL() time.Duration { return i.refreshTTL }

func (i *TokenIssuer) IssueAccess(userID uint) (string, error) {
	now := i.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userID,
		"type":    tokenTypeAccess,
		"iat":     now.Unix(),
		"exp":     now.Add(i.accessTTL).Unix(),
	})
	return token.SignedString(i.secret)
}

// IssueRefresh returns a signed refresh token and its expiry. The jti claim
// keeps two tokens issued in the same second distinct.
func (i *TokenIssuer) IssueRefresh(userID uint) (string, time.Time, error) {
	now := i.now()
	expiresAt := now.Add(i.refreshTTL)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userID,
		"type":    tokenTypeRefresh,
		"jti":     uuid.NewString(),
		"iat":     now.Unix(),
		"exp":     expiresAt.Unix(),
	})
	signed, err := token.SignedString(i.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

func (i *TokenIssuer) ParseAccess(raw string) (uint, error) {
	return i.parse(raw, tokenTypeAccess)
}

func (i *TokenIssuer) ParseRefresh(raw string) (uint, error) {
	return i.parse(raw, tokenTypeRefresh)
}

func (i *TokenIssuer) parse(raw, wantType string) (uint, error) {
	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(raw, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return i.secret, nil
	})
	if err != nil || !parsed.Valid {
		return 0, ErrInvalidToken
	}
	if typ, _ := claims["type"].(string); typ != wantType {
		return 0, ErrInvalidToken
	}
	userID, ok := claims["user_id"].(float64)
	if !ok || userID <= 0 {
		return 0, ErrInvalidToken
	}
	return uint(userID), nil
}
