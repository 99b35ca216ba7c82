package services

import (
	"context"
	"net/mail"
	"strings"

	"github.com/vinifranco48/arithimancia-api/internal/apperrors"
	"github.com/vinifranco48/arithimancia-api/internal/logger"
	"github.com/vinifranco48/arithimancia-api/internal/models"
	"github.com/vinifranco48/arithimancia-api/internal/storage"
)

// Profile is a player account with its characters attached.
type Profile struct {
	Player     *models.Player     `json:"player"`
	Characters []models.Character `json:"characters"`
}

type PlayerService struct {
	players    *storage.PlayerRepo
	characters *storage.CharacterRepo
	log        *logger.Log
}

func NewPlayerService(players *storage.PlayerRepo, characters *storage.CharacterRepo) *PlayerService {
	return &PlayerService{
		players:    players,
		characters: characters,
		log:        logger.New(),
	}
}

func (s *PlayerService) Profile(ctx context.Context, playerID int64) (*Profile, error) {
	player, err := s.players.ByID(ctx, playerID)
	if err != nil {
		return nil, err
	}
	if player == nil {
		return nil, apperrors.NotFound("PLAYER_NOT_FOUND", "player not found")
	}

	characters, err := s.characters.ByPlayer(ctx, playerID)
	if err != nil {
		return nil, err
	}
	return &Profile{Player: player, Characters: characters}, nil
}

// UpdateProfile changes username and/or email; both stay unique across
// players.
func (s *PlayerService) UpdateProfile(ctx context.Context, playerID int64, req *models.ProfileUpdateRequest) (*models.Player, error) {
	player, err := s.players.ByID(ctx, playerID)
	if err != nil {
		return nil, err
	}
	if player == nil {
		return nil, apperrors.NotFound("PLAYER_NOT_FOUND", "player not found")
	}

	var username, email *string

	if req.Username != nil {
		name := strings.TrimSpace(*req.Username)
		if len(name) < minUsernameLength || len(name) > maxUsernameLength {
			return nil, apperrors.Invalid("INVALID_USERNAME", "username must be between 3 and 30 characters")
		}
		if name != player.Username {
			existing, err := s.players.ByUsername(ctx, name)
			if err != nil {
				return nil, err
			}
			if existing != nil {
				return nil, apperrors.Conflict("USERNAME_TAKEN", "username is already taken")
			}
			username = &name
		}
	}

	if req.Email != nil {
		addr := strings.ToLower(strings.TrimSpace(*req.Email))
		if _, err := mail.ParseAddress(addr); err != nil {
			return nil, apperrors.Invalid("INVALID_EMAIL", "email address is not valid")
		}
		if addr != player.Email {
			existing, err := s.players.ByEmail(ctx, addr)
			if err != nil {
				return nil, err
			}
			if existing != nil {
				return nil, apperrors.Conflict("EMAIL_TAKEN", "email is already registered")
			}
			email = &addr
		}
	}

	if username == nil && email == nil {
		return player, nil
	}

	if err := s.players.Update(ctx, playerID, username, email, nil); err != nil {
		return nil, err
	}
	return s.players.ByID(ctx, playerID)
}

// ChangePassword requires the current password before accepting the new one.
func (s *PlayerService) ChangePassword(ctx context.Context, playerID int64, req *models.PasswordChangeRequest) error {
	player, err := s.players.ByID(ctx, playerID)
	if err != nil {
		return err
	}
	if player == nil {
		return apperrors.NotFound("PLAYER_NOT_FOUND", "player not found")
	}
	if !player.CheckPassword(req.CurrentPassword) {
		return apperrors.Unauthorized("INVALID_CREDENTIALS", "current password is incorrect")
	}
	if len(req.NewPassword) < minPasswordLength {
		return apperrors.Invalid("INVALID_PASSWORD", "password must be at least 6 characters")
	}

	if err := player.SetPassword(req.NewPassword); err != nil {
		return err
	}
	return s.players.Update(ctx, playerID, nil, nil, &player.Password)
}

// DeleteAccount removes the player; characters, encounters, quest progress
// and inventory cascade away with it.
func (s *PlayerService) DeleteAccount(ctx context.Context, playerID int64) error {
	player, err := s.players.ByID(ctx, playerID)
	if err != nil {
		return err
	}
	if player == nil {
		return apperrors.NotFound("PLAYER_NOT_FOUND", "player not found")
	}

	if err := s.players.Delete(ctx, playerID); err != nil {
		return err
	}
	s.log.Info("player account deleted: " + player.Username)
	return nil
}
