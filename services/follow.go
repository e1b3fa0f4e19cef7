package services

import (
	"context"
	"fmt"

	"ainnect/db"
	"ainnect/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type FollowService struct{}

func NewFollowService() *FollowService {
	return &FollowService{}
}

// Follow создает ребро подписки follower -> followee.
// Идемпотентно: повторная подписка возвращает существующее ребро без ошибки
// и без повторного события. Заблокированную пару (в любую сторону) подписать нельзя.
func (fs *FollowService) Follow(ctx context.Context, followerID, followeeID int64) (*models.Follow, error) {
	if followerID == followeeID {
		return nil, fmt.Errorf("%w: cannot follow yourself", ErrInvalidOperation)
	}
	if err := ensureUsersExist(ctx, followerID, followeeID); err != nil {
		return nil, err
	}

	var follow models.Follow
	created := false
	err := db.GetWriteDB(ctx).Transaction(func(tx *gorm.DB) error {
		blocked, err := pairBlocked(tx, followerID, followeeID)
		if err != nil {
			return err
		}
		if blocked {
			return fmt.Errorf("%w: relationship is blocked", ErrForbidden)
		}

		follow = models.Follow{FollowerID: followerID, FolloweeID: followeeID}
		// Уникальный индекс пары делает вставку идемпотентной:
		// при конфликте RowsAffected == 0, перечитываем существующее ребро
		res := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&follow)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return tx.Where("follower_id = ? AND followee_id = ?", followerID, followeeID).
				First(&follow).Error
		}
		created = true
		return nil
	})
	if err != nil {
		return nil, err
	}

	if created {
		publishRelation(ctx, EventFollowed, followeeID, followerID)
	}
	return &follow, nil
}

// Unfollow удаляет ребро подписки, отсутствие ребра не считается ошибкой
func (fs *FollowService) Unfollow(ctx context.Context, followerID, followeeID int64) error {
	return db.GetWriteDB(ctx).
		Where("follower_id = ? AND followee_id = ?", followerID, followeeID).
		Delete(&models.Follow{}).Error
}

func (fs *FollowService) IsFollowing(ctx context.Context, followerID, followeeID int64) (bool, error) {
	var cnt int64
	err := db.GetReadOnlyDB(ctx).Model(&models.Follow{}).
		Where("follower_id = ? AND followee_id = ?", followerID, followeeID).
		Count(&cnt).Error
	if err != nil {
		return false, err
	}
	return cnt > 0, nil
}

// FollowersOf возвращает ребра, где пользователь - followee (его читатели)
func (fs *FollowService) FollowersOf(ctx context.Context, userID int64) ([]models.Follow, error) {
	var follows []models.Follow
	err := db.GetReadOnlyDB(ctx).
		Where("followee_id = ?", userID).
		Find(&follows).Error
	return follows, err
}

// FolloweesOf возвращает ребра, где пользователь - follower (кого он читает)
func (fs *FollowService) FolloweesOf(ctx context.Context, userID int64) ([]models.Follow, error) {
	var follows []models.Follow
	err := db.GetReadOnlyDB(ctx).
		Where("follower_id = ?", userID).
		Find(&follows).Error
	return follows, err
}
