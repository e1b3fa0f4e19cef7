package services

import (
	"ainnect/models"

	"gorm.io/gorm"
)

// removePairRelations снимает все связи пары внутри транзакции вызывающего:
// обе подписки и каноническую строку дружбы независимо от ее статуса.
// Идемпотентно: отсутствие связей не ошибка. Вызывается из каскада блокировки,
// чтобы читатели никогда не видели блокировку рядом с живой дружбой/подпиской.
func removePairRelations(tx *gorm.DB, userA, userB int64) error {
	err := tx.Where(
		"(follower_id = ? AND followee_id = ?) OR (follower_id = ? AND followee_id = ?)",
		userA, userB, userB, userA,
	).Delete(&models.Follow{}).Error
	if err != nil {
		return err
	}

	low, high := models.CanonicalPair(userA, userB)
	return tx.Where("user_low_id = ? AND user_high_id = ?", low, high).
		Delete(&models.Friendship{}).Error
}

// pairBlocked проверяет блокировку в любом направлении внутри переданного подключения
func pairBlocked(tx *gorm.DB, userA, userB int64) (bool, error) {
	var cnt int64
	err := tx.Model(&models.UserBlock{}).
		Where(
			"(blocker_id = ? AND blocked_id = ?) OR (blocker_id = ? AND blocked_id = ?)",
			userA, userB, userB, userA,
		).Count(&cnt).Error
	if err != nil {
		return false, err
	}
	return cnt > 0, nil
}
