package services

import (
	"context"
	"fmt"

	"ainnect/db"
	"ainnect/models"

	"gorm.io/gorm"
)

type BlockService struct{}

func NewBlockService() *BlockService {
	return &BlockService{}
}

// BlockUser создает направленную блокировку blocker -> blocked.
// В той же транзакции каскадно удаляются обе подписки пары и строка дружбы:
// частичный результат (блокировка есть, а старая дружба осталась) недопустим.
// Повторная блокировка возвращает ErrConflict, дубликат строки не создается.
func (bs *BlockService) BlockUser(ctx context.Context, blockerID, blockedID int64, reason string) (*models.UserBlock, error) {
	if blockerID == blockedID {
		return nil, fmt.Errorf("%w: cannot block yourself", ErrInvalidOperation)
	}
	if err := ensureUsersExist(ctx, blockerID, blockedID); err != nil {
		return nil, err
	}

	block := models.UserBlock{BlockerID: blockerID, BlockedID: blockedID, Reason: reason}
	err := db.GetWriteDB(ctx).Transaction(func(tx *gorm.DB) error {
		var cnt int64
		err := tx.Model(&models.UserBlock{}).
			Where("blocker_id = ? AND blocked_id = ?", blockerID, blockedID).
			Count(&cnt).Error
		if err != nil {
			return err
		}
		if cnt > 0 {
			return fmt.Errorf("%w: user already blocked", ErrConflict)
		}

		if err := tx.Create(&block).Error; err != nil {
			return err
		}
		return removePairRelations(tx, blockerID, blockedID)
	})
	if err != nil {
		return nil, err
	}

	publishRelation(ctx, EventBlocked, blockedID, blockerID)
	return &block, nil
}

// UnblockUser снимает блокировку. Отсутствие блокировки не ошибка.
// Удаленные каскадом подписки и дружба не восстанавливаются -
// пользователи заводят их заново сами.
func (bs *BlockService) UnblockUser(ctx context.Context, blockerID, blockedID int64) error {
	return db.GetWriteDB(ctx).
		Where("blocker_id = ? AND blocked_id = ?", blockerID, blockedID).
		Delete(&models.UserBlock{}).Error
}

// IsBlocked - заблокировал ли blocker пользователя blocked
func (bs *BlockService) IsBlocked(ctx context.Context, blockerID, blockedID int64) (bool, error) {
	var cnt int64
	err := db.GetReadOnlyDB(ctx).Model(&models.UserBlock{}).
		Where("blocker_id = ? AND blocked_id = ?", blockerID, blockedID).
		Count(&cnt).Error
	if err != nil {
		return false, err
	}
	return cnt > 0, nil
}

// IsBlockedBy - заблокирован ли userID пользователем otherUserID.
// Блокировка асимметрична, поэтому обратное направление проверяется отдельно.
func (bs *BlockService) IsBlockedBy(ctx context.Context, userID, otherUserID int64) (bool, error) {
	return bs.IsBlocked(ctx, otherUserID, userID)
}

// BlockedUsers возвращает блокировки, созданные пользователем, свежие первыми
func (bs *BlockService) BlockedUsers(ctx context.Context, blockerID int64) ([]models.UserBlock, error) {
	var blocks []models.UserBlock
	err := db.GetReadOnlyDB(ctx).
		Where("blocker_id = ?", blockerID).
		Order("created_at DESC").
		Find(&blocks).Error
	return blocks, err
}
