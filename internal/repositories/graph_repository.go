package repositories

import (
	"context"

	"github.com/anonto42/nano-midea/discovery/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PostgresGraphRepository implements GraphReader over the follows, close_friends and blocks tables
type PostgresGraphRepository struct {
	db *gorm.DB
}

// NewPostgresGraphRepository creates a new PostgresGraphRepository
func NewPostgresGraphRepository(db *gorm.DB) *PostgresGraphRepository {
	return &PostgresGraphRepository{db: db}
}

func (r *PostgresGraphRepository) IsFollowing(ctx context.Context, followerID, followingID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Follow{}).
		Where("follower_id = ? AND following_id = ?", followerID, followingID).
		Count(&count).Error
	return count > 0, err
}

func (r *PostgresGraphRepository) GetFollowing(ctx context.Context, userID string) (IDSet, error) {
	var ids []string
	err := r.db.WithContext(ctx).Model(&models.Follow{}).Where("follower_id = ?", userID).Pluck("following_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return NewIDSet(ids...), nil
}

func (r *PostgresGraphRepository) GetFollowers(ctx context.Context, userID string) (IDSet, error) {
	var ids []string
	err := r.db.WithContext(ctx).Model(&models.Follow{}).Where("following_id = ?", userID).Pluck("follower_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return NewIDSet(ids...), nil
}

func (r *PostgresGraphRepository) IsCloseFriend(ctx context.Context, ownerID, viewerID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.CloseFriend{}).
		Where("owner_id = ? AND friend_id = ?", ownerID, viewerID).
		Count(&count).Error
	return count > 0, err
}

func (r *PostgresGraphRepository) IsBlocked(ctx context.Context, blockerID, blockedID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Block{}).
		Where("blocker_id = ? AND blocked_id = ?", blockerID, blockedID).
		Count(&count).Error
	return count > 0, err
}

func (r *PostgresGraphRepository) GetBlocked(ctx context.Context, blockerID string) (IDSet, error) {
	var ids []string
	err := r.db.WithContext(ctx).Model(&models.Block{}).Where("blocker_id = ?", blockerID).Pluck("blocked_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return NewIDSet(ids...), nil
}

// Follow creates the edge once and keeps both profiles' counters in step
func (r *PostgresGraphRepository) Follow(ctx context.Context, followerID, followingID string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Clauses(clause.OnConflict{DoNothing: true}).
			Create(&models.Follow{FollowerID: followerID, FollowingID: followingID})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil
		}
		if err := tx.Model(&models.UserProfile{}).Where("id = ?", followerID).
			UpdateColumn("following_count", gorm.Expr("following_count + 1")).Error; err != nil {
			return err
		}
		return tx.Model(&models.UserProfile{}).Where("id = ?", followingID).
			UpdateColumn("followers_count", gorm.Expr("followers_count + 1")).Error
	})
}

// Unfollow removes the edge and decrements both counters; ErrNotFound if absent
func (r *PostgresGraphRepository) Unfollow(ctx context.Context, followerID, followingID string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("follower_id = ? AND following_id = ?", followerID, followingID).
			Delete(&models.Follow{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		if err := tx.Model(&models.UserProfile{}).Where("id = ?", followerID).
			UpdateColumn("following_count", gorm.Expr("GREATEST(following_count - 1, 0)")).Error; err != nil {
			return err
		}
		return tx.Model(&models.UserProfile{}).Where("id = ?", followingID).
			UpdateColumn("followers_count", gorm.Expr("GREATEST(followers_count - 1, 0)")).Error
	})
}

func (r *PostgresGraphRepository) AddCloseFriend(ctx context.Context, ownerID, friendID string) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).
		Create(&models.CloseFriend{OwnerID: ownerID, FriendID: friendID}).Error
}

func (r *PostgresGraphRepository) Block(ctx context.Context, blockerID, blockedID string) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).
		Create(&models.Block{BlockerID: blockerID, BlockedID: blockedID}).Error
}
