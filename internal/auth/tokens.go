// Package auth issues and verifies the JWT pairs used by the API and tracks
// revoked tokens in a blacklist.
package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/vinifranco48/arithimancia-api/internal/apperrors"
)

const (
	tokenIssuer   = "arithimancia-api"
	tokenAudience = "arithimancia-client"

	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

// Claims carry the player identity plus a type discriminator so a refresh
// token can never pass as an access token.
type Claims struct {
	PlayerID  int64  `json:"player_id"`
	Username  string `json:"username"`
	TokenType string `json:"token_type"`
	jwt.RegisteredClaims
}

// TokenPair is what login, register and refresh hand back to the client.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int    `json:"expires_in"` // access token lifetime in seconds
}

// Manager signs and verifies tokens with a single HMAC secret.
type Manager struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	now        func() time.Time
}

func NewManager(secret string, accessTTL, refreshTTL time.Duration) *Manager {
	return &Manager{
		secret:     []byte(secret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		now:        time.Now,
	}
}

// SetClock replaces the time source; tests pin it to check expiries.
func (m *Manager) SetClock(now func() time.Time) {
	m.now = now
}

// GeneratePair issues a fresh access and refresh token for the player.
func (m *Manager) GeneratePair(playerID int64, username string) (*TokenPair, error) {
	access, err := m.sign(playerID, username, TokenTypeAccess, m.accessTTL)
	if err != nil {
		return nil, err
	}
	refresh, err := m.sign(playerID, username, TokenTypeRefresh, m.refreshTTL)
	if err != nil {
		return nil, err
	}
	return &TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresIn:    int(m.accessTTL.Seconds()),
	}, nil
}

func (m *Manager) sign(playerID int64, username, tokenType string, ttl time.Duration) (string, error) {
	now := m.now()
	claims := Claims{
		PlayerID:  playerID,
		Username:  username,
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    tokenIssuer,
			Audience:  jwt.ClaimStrings{tokenAudience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Verify parses the token and checks signature, expiry, issuer, audience and
// type. The error is always an apperrors.Unauthorized so the HTTP layer maps
// it to 401.
func (m *Manager) Verify(tokenString, expectedType string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
			}
			return m.secret, nil
		},
		jwt.WithIssuer(tokenIssuer),
		jwt.WithAudience(tokenAudience),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil || !token.Valid {
		return nil, apperrors.Unauthorized("INVALID_TOKEN", "token is invalid or expired")
	}
	if claims.TokenType != expectedType {
		return nil, apperrors.Unauthorized("WRONG_TOKEN_TYPE", "wrong token type for this operation")
	}
	return claims, nil
}
