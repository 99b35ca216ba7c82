// Package services implements the application logic between the HTTP
// handlers and the storage and game layers.
package services

import (
	"context"
	"net/mail"
	"strings"
	"time"

	"github.com/vinifranco48/arithimancia-api/internal/apperrors"
	"github.com/vinifranco48/arithimancia-api/internal/auth"
	"github.com/vinifranco48/arithimancia-api/internal/logger"
	"github.com/vinifranco48/arithimancia-api/internal/models"
	"github.com/vinifranco48/arithimancia-api/internal/storage"
)

const (
	minUsernameLength = 3
	maxUsernameLength = 30
	minPasswordLength = 6
)

type AuthService struct {
	players   *storage.PlayerRepo
	tokens    *auth.Manager
	blacklist auth.Blacklist
	log       *logger.Log
}

func NewAuthService(players *storage.PlayerRepo, tokens *auth.Manager, blacklist auth.Blacklist) *AuthService {
	return &AuthService{
		players:   players,
		tokens:    tokens,
		blacklist: blacklist,
		log:       logger.New(),
	}
}

func validateRegistration(req *models.RegisterRequest) error {
	username := strings.TrimSpace(req.Username)
	if len(username) < minUsernameLength || len(username) > maxUsernameLength {
		return apperrors.Invalid("INVALID_USERNAME", "username must be between 3 and 30 characters")
	}
	if _, err := mail.ParseAddress(req.Email); err != nil {
		return apperrors.Invalid("INVALID_EMAIL", "email address is not valid")
	}
	if len(req.Password) < minPasswordLength {
		return apperrors.Invalid("INVALID_PASSWORD", "password must be at least 6 characters")
	}
	return nil
}

// Register creates the account and logs the player straight in.
func (s *AuthService) Register(ctx context.Context, req *models.RegisterRequest) (*models.Player, *auth.TokenPair, error) {
	if err := validateRegistration(req); err != nil {
		return nil, nil, err
	}

	username := strings.TrimSpace(req.Username)
	email := strings.ToLower(strings.TrimSpace(req.Email))

	if existing, err := s.players.ByUsername(ctx, username); err != nil {
		return nil, nil, err
	} else if existing != nil {
		return nil, nil, apperrors.Conflict("USERNAME_TAKEN", "username is already taken")
	}
	if existing, err := s.players.ByEmail(ctx, email); err != nil {
		return nil, nil, err
	} else if existing != nil {
		return nil, nil, apperrors.Conflict("EMAIL_TAKEN", "email is already registered")
	}

	player := &models.Player{Username: username, Email: email}
	if err := player.SetPassword(req.Password); err != nil {
		return nil, nil, err
	}

	id, err := s.players.Create(ctx, player)
	if err != nil {
		return nil, nil, err
	}

	created, err := s.players.ByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	pair, err := s.tokens.GeneratePair(created.ID, created.Username)
	if err != nil {
		return nil, nil, err
	}

	s.log.Info("player registered: " + created.Username)
	return created, pair, nil
}

// Login verifies the credentials and issues a token pair. Unknown usernames
// and wrong passwords get the same answer.
func (s *AuthService) Login(ctx context.Context, req *models.LoginRequest) (*models.Player, *auth.TokenPair, error) {
	player, err := s.players.ByUsername(ctx, strings.TrimSpace(req.Username))
	if err != nil {
		return nil, nil, err
	}
	if player == nil || !player.CheckPassword(req.Password) {
		return nil, nil, apperrors.Unauthorized("INVALID_CREDENTIALS", "invalid username or password")
	}

	if err := s.players.TouchLastLogin(ctx, player.ID); err != nil {
		s.log.WithError(err).Warn("failed to update last login")
	}

	pair, err := s.tokens.GeneratePair(player.ID, player.Username)
	if err != nil {
		return nil, nil, err
	}
	return player, pair, nil
}

// Refresh exchanges a valid refresh token for a new pair. The old refresh
// token is revoked so it can only be used once.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*auth.TokenPair, error) {
	claims, err := s.tokens.Verify(refreshToken, auth.TokenTypeRefresh)
	if err != nil {
		return nil, err
	}

	revoked, err := s.blacklist.IsRevoked(ctx, refreshToken)
	if err != nil {
		return nil, err
	}
	if revoked {
		return nil, apperrors.Unauthorized("TOKEN_REVOKED", "refresh token has been revoked")
	}

	player, err := s.players.ByID(ctx, claims.PlayerID)
	if err != nil {
		return nil, err
	}
	if player == nil {
		return nil, apperrors.Unauthorized("INVALID_TOKEN", "account no longer exists")
	}

	if err := s.blacklist.Revoke(ctx, refreshToken, time.Until(claims.ExpiresAt.Time)); err != nil {
		return nil, err
	}

	return s.tokens.GeneratePair(player.ID, player.Username)
}

// Logout revokes the presented tokens for the remainder of their lifetime.
func (s *AuthService) Logout(ctx context.Context, accessToken, refreshToken string) error {
	for _, token := range []string{accessToken, refreshToken} {
		if token == "" {
			continue
		}
		claims := &auth.Claims{}
		// Revoke whatever still parses; expired tokens need no tracking.
		if c, err := s.tokens.Verify(token, auth.TokenTypeAccess); err == nil {
			claims = c
		} else if c, err := s.tokens.Verify(token, auth.TokenTypeRefresh); err == nil {
			claims = c
		} else {
			continue
		}
		if err := s.blacklist.Revoke(ctx, token, time.Until(claims.ExpiresAt.Time)); err != nil {
			return err
		}
	}
	return nil
}

// Me returns the authenticated player's account.
func (s *AuthService) Me(ctx context.Context, playerID int64) (*models.Player, error) {
	player, err := s.players.ByID(ctx, playerID)
	if err != nil {
		return nil, err
	}
	if player == nil {
		return nil, apperrors.NotFound("PLAYER_NOT_FOUND", "player not found")
	}
	return player, nil
}
