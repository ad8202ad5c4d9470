package repositories

import (
	"context"
	"errors"

	"github.com/anonto42/nano-midea/discovery/internal/models"
	"gorm.io/gorm"
)

// PostgresUserRepository implements UserReader for PostgreSQL
type PostgresUserRepository struct {
	db *gorm.DB
}

// NewPostgresUserRepository creates a new PostgresUserRepository
func NewPostgresUserRepository(db *gorm.DB) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

// GetUser retrieves a profile by ID
func (r *PostgresUserRepository) GetUser(ctx context.Context, id string) (*models.UserProfile, error) {
	var user models.UserProfile
	if err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// GetAllUsers retrieves every profile ordered by ID
func (r *PostgresUserRepository) GetAllUsers(ctx context.Context) ([]models.UserProfile, error) {
	var users []models.UserProfile
	if err := r.db.WithContext(ctx).Order("id").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// PutUser inserts or replaces a profile
func (r *PostgresUserRepository) PutUser(ctx context.Context, user *models.UserProfile) error {
	return r.db.WithContext(ctx).Save(user).Error
}

// AdjustPostsCount adds delta to the owner's posts count, never going below zero
func (r *PostgresUserRepository) AdjustPostsCount(ctx context.Context, userID string, delta int) error {
	return r.db.WithContext(ctx).Model(&models.UserProfile{}).
		Where("id = ?", userID).
		UpdateColumn("posts_count", gorm.Expr("GREATEST(posts_count + ?, 0)", delta)).Error
}
