package services

import (
	"context"
	"sort"

	"ainnect/db"
	"ainnect/models"
)

// SocialStats - агрегаты профиля. Считаются каждый раз от ребер-первоисточников,
// без кэшируемых счетчиков: им нечему расходиться с данными.
type SocialStats struct {
	UserID         int64 `json:"user_id"`
	FollowersCount int64 `json:"followers_count"`
	FollowingCount int64 `json:"following_count"`
	FriendsCount   int64 `json:"friends_count"`
}

type SocialService struct{}

func NewSocialService() *SocialService {
	return &SocialService{}
}

func (ss *SocialService) GetSocialStats(ctx context.Context, userID int64) (*SocialStats, error) {
	stats := &SocialStats{UserID: userID}
	read := db.GetReadOnlyDB(ctx)

	err := read.Model(&models.Follow{}).
		Where("followee_id = ?", userID).
		Count(&stats.FollowersCount).Error
	if err != nil {
		return nil, err
	}
	err = read.Model(&models.Follow{}).
		Where("follower_id = ?", userID).
		Count(&stats.FollowingCount).Error
	if err != nil {
		return nil, err
	}
	err = read.Model(&models.Friendship{}).
		Where("(user_low_id = ? OR user_high_id = ?) AND status = ?",
			userID, userID, models.FriendshipAccepted).
		Count(&stats.FriendsCount).Error
	if err != nil {
		return nil, err
	}
	return stats, nil
}

// commonFriendIDs - пересечение множеств друзей двух пользователей,
// отсортированное по id. Сортировка фиксирует порядок, чтобы границы страниц
// не плыли между повторными вызовами на неизменных данных.
func commonFriendIDs(ctx context.Context, userID, otherUserID int64) ([]int64, error) {
	userFriends, err := friendIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	otherFriends, err := friendIDs(ctx, otherUserID)
	if err != nil {
		return nil, err
	}

	otherSet := make(map[int64]struct{}, len(otherFriends))
	for _, id := range otherFriends {
		otherSet[id] = struct{}{}
	}

	common := make([]int64, 0)
	seen := make(map[int64]struct{})
	for _, id := range userFriends {
		if _, ok := otherSet[id]; !ok {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		common = append(common, id)
	}
	sort.Slice(common, func(i, j int) bool { return common[i] < common[j] })
	return common, nil
}

// CountCommonFriends - размер пересечения без пагинации
func (ss *SocialService) CountCommonFriends(ctx context.Context, userID, otherUserID int64) (int64, error) {
	common, err := commonFriendIDs(ctx, userID, otherUserID)
	if err != nil {
		return 0, err
	}
	return int64(len(common)), nil
}

// GetCommonFriends возвращает страницу общих друзей (page с нуля)
// и общий размер пересечения
func (ss *SocialService) GetCommonFriends(ctx context.Context, userID, otherUserID int64, page, size int) ([]models.User, int64, error) {
	if page < 0 {
		page = 0
	}
	if size < 1 {
		size = 10
	}

	common, err := commonFriendIDs(ctx, userID, otherUserID)
	if err != nil {
		return nil, 0, err
	}
	total := int64(len(common))

	start := page * size
	if start > len(common) {
		start = len(common)
	}
	end := start + size
	if end > len(common) {
		end = len(common)
	}
	pageIDs := common[start:end]
	if len(pageIDs) == 0 {
		return []models.User{}, total, nil
	}

	var users []models.User
	err = db.GetReadOnlyDB(ctx).
		Where("id IN (?)", pageIDs).
		Order("id ASC").
		Find(&users).Error
	if err != nil {
		return nil, 0, err
	}
	return users, total, nil
}
