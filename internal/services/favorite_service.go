package services

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/calebmoss/gamedex/internal/models"
	appErrors "github.com/calebmoss/gamedex/pkg/errors"
)

// FavoriteService manages per-user favorite games. Every mutation also
// maintains the FavoriteGameIDs mirror on the owning User row so the two
// views never drift.
type FavoriteService struct {
	db *gorm.DB
}

// NewFavoriteService constructs a favorite service.
func NewFavoriteService(db *gorm.DB) (*FavoriteService, error) {
	if db == nil {
		return nil, errors.New("favorite service: db is required")
	}
	return &FavoriteService{db: db}, nil
}

// AddFavoriteInput captures the fields of a favorite to create.
type AddFavoriteInput struct {
	UserID    uint
	GameID    int64
	GameName  string
	GameImage *string
}

// Add appends a game to the user's favorites. The user must exist and the
// (user, game) pair must not already be present.
func (s *FavoriteService) Add(ctx context.Context, input AddFavoriteInput) (*models.Favorite, error) {
	if s == nil {
		return nil, errors.New("favorite service: service not initialised")
	}
	ctx = ensuredContext(ctx)

	var favorite *models.Favorite
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.Take(&user, "id = ?", input.UserID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUserNotFound
			}
			return fmt.Errorf("favorite service: load user: %w", err)
		}

		var count int64
		if err := tx.Model(&models.Favorite{}).
			Where("user_id = ? AND game_id = ?", input.UserID, input.GameID).
			Count(&count).Error; err != nil {
			return fmt.Errorf("favorite service: check existing: %w", err)
		}
		if count > 0 {
			return appErrors.ErrDuplicateFavorite
		}

		favorite = &models.Favorite{
			UserID:    input.UserID,
			GameID:    input.GameID,
			GameName:  input.GameName,
			GameImage: input.GameImage,
		}
		if err := tx.Create(favorite).Error; err != nil {
			return fmt.Errorf("favorite service: create favorite: %w", err)
		}

		user.FavoriteGameIDs = append(user.FavoriteGameIDs, input.GameID)
		if err := tx.Model(&models.User{}).Where("id = ?", user.ID).
			Update("favorite_game_ids", user.FavoriteGameIDs).Error; err != nil {
			return fmt.Errorf("favorite service: update mirror: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return favorite, nil
}

// Remove deletes the favorite matching (userID, gameID) and drops the game
// from the user's mirror list. ErrNotFound is returned when nothing matched.
func (s *FavoriteService) Remove(ctx context.Context, userID uint, gameID int64) error {
	if s == nil {
		return errors.New("favorite service: service not initialised")
	}
	ctx = ensuredContext(ctx)

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("user_id = ? AND game_id = ?", userID, gameID).
			Delete(&models.Favorite{})
		if result.Error != nil {
			return fmt.Errorf("favorite service: delete favorite: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return appErrors.ErrNotFound
		}

		var user models.User
		if err := tx.Take(&user, "id = ?", userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return fmt.Errorf("favorite service: load user: %w", err)
		}

		mirror := user.FavoriteGameIDs[:0]
		for _, id := range user.FavoriteGameIDs {
			if id != gameID {
				mirror = append(mirror, id)
			}
		}
		if err := tx.Model(&models.User{}).Where("id = ?", userID).
			Update("favorite_game_ids", mirror).Error; err != nil {
			return fmt.Errorf("favorite service: update mirror: %w", err)
		}

		return nil
	})
}

// List returns the user's favorites in insertion order. A user with no
// favorites yields an empty slice, indistinguishable from an unknown user.
func (s *FavoriteService) List(ctx context.Context, userID uint) ([]models.Favorite, error) {
	if s == nil {
		return nil, errors.New("favorite service: service not initialised")
	}
	ctx = ensuredContext(ctx)

	favorites := make([]models.Favorite, 0)
	if err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id").
		Find(&favorites).Error; err != nil {
		return nil, fmt.Errorf("favorite service: list favorites: %w", err)
	}
	return favorites, nil
}
