package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"ainnect/db"
	"ainnect/models"

	"gorm.io/gorm"
)

type FriendService struct{}

func NewFriendService() *FriendService {
	return &FriendService{}
}

// Request отправляет заявку в друзья. Канонический ключ пары считается здесь,
// на границе операции. Переходы:
//   - строки нет -> создаем pending с requested_by = requester;
//   - pending от другой стороны -> встречная заявка, сразу accepted
//     (и событие friend_accepted вместо повторного friend_requested);
//   - pending от той же стороны -> дубликат, ErrConflict;
//   - accepted -> уже друзья, ErrConflict.
//
// Чтение и запись строки идут в одной транзакции, чтобы две встречные заявки
// не породили две разные pending-строки.
func (fs *FriendService) Request(ctx context.Context, requesterID, otherUserID int64) (*models.Friendship, error) {
	if requesterID == otherUserID {
		return nil, fmt.Errorf("%w: cannot friend yourself", ErrInvalidOperation)
	}
	if err := ensureUsersExist(ctx, requesterID, otherUserID); err != nil {
		return nil, err
	}

	low, high := models.CanonicalPair(requesterID, otherUserID)
	var friendship models.Friendship
	event := ""
	err := db.GetWriteDB(ctx).Transaction(func(tx *gorm.DB) error {
		blocked, err := pairBlocked(tx, requesterID, otherUserID)
		if err != nil {
			return err
		}
		if blocked {
			return fmt.Errorf("%w: relationship is blocked", ErrForbidden)
		}

		err = tx.Where("user_low_id = ? AND user_high_id = ?", low, high).
			First(&friendship).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			friendship = models.Friendship{
				UserLowID:   low,
				UserHighID:  high,
				Status:      models.FriendshipPending,
				RequestedBy: requesterID,
			}
			event = EventFriendRequested
			return tx.Create(&friendship).Error
		}
		if err != nil {
			return err
		}

		switch {
		case friendship.Status == models.FriendshipPending && friendship.RequestedBy == otherUserID:
			// Встречная заявка: обе стороны хотят дружить, принимаем сразу
			now := time.Now()
			friendship.Status = models.FriendshipAccepted
			friendship.RespondedAt = &now
			event = EventFriendAccepted
			return tx.Save(&friendship).Error
		case friendship.Status == models.FriendshipPending:
			return fmt.Errorf("%w: friend request already pending", ErrConflict)
		default:
			return fmt.Errorf("%w: users are already friends", ErrConflict)
		}
	})
	if err != nil {
		return nil, err
	}

	publishRelation(ctx, event, otherUserID, requesterID)
	return &friendship, nil
}

// Accept принимает заявку для пары (userID, otherUserID)
func (fs *FriendService) Accept(ctx context.Context, userID, otherUserID int64) (*models.Friendship, error) {
	return fs.respondByPair(ctx, userID, otherUserID, true)
}

// Reject отклоняет заявку: строка удаляется, заявку можно отправить заново
func (fs *FriendService) Reject(ctx context.Context, userID, otherUserID int64) error {
	_, err := fs.respondByPair(ctx, userID, otherUserID, false)
	return err
}

func (fs *FriendService) respondByPair(ctx context.Context, userID, otherUserID int64, accept bool) (*models.Friendship, error) {
	if userID == otherUserID {
		return nil, fmt.Errorf("%w: invalid pair", ErrInvalidOperation)
	}
	low, high := models.CanonicalPair(userID, otherUserID)
	var friendship models.Friendship
	err := db.GetWriteDB(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Where("user_low_id = ? AND user_high_id = ?", low, high).
			First(&friendship).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: friend request", ErrNotFound)
		}
		if err != nil {
			return err
		}
		return fs.respond(tx, userID, &friendship, accept)
	})
	if err != nil {
		return nil, err
	}

	if accept {
		publishRelation(ctx, EventFriendAccepted, friendship.RequestedBy, userID)
	}
	return &friendship, nil
}

// RespondToRequest принимает/отклоняет заявку по id строки (для HTTP-слоя:
// список входящих заявок отдает id). Отвечать может только участник пары.
func (fs *FriendService) RespondToRequest(ctx context.Context, userID, friendshipID int64, accept bool) (*models.Friendship, error) {
	var friendship models.Friendship
	err := db.GetWriteDB(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Where("id = ?", friendshipID).First(&friendship).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: friend request", ErrNotFound)
		}
		if err != nil {
			return err
		}
		return fs.respond(tx, userID, &friendship, accept)
	})
	if err != nil {
		return nil, err
	}

	if accept {
		publishRelation(ctx, EventFriendAccepted, friendship.RequestedBy, userID)
	}
	return &friendship, nil
}

// respond - общая часть accept/reject над уже загруженной строкой
func (fs *FriendService) respond(tx *gorm.DB, userID int64, friendship *models.Friendship, accept bool) error {
	if !friendship.HasMember(userID) {
		return fmt.Errorf("%w: you are not a party to this friend request", ErrForbidden)
	}
	if friendship.Status != models.FriendshipPending {
		return fmt.Errorf("%w: friend request is no longer pending", ErrInvalidState)
	}

	if !accept {
		return tx.Delete(friendship).Error
	}

	now := time.Now()
	friendship.Status = models.FriendshipAccepted
	friendship.RespondedAt = &now
	return tx.Save(friendship).Error
}

// RemoveFriend удаляет подтвержденную дружбу
func (fs *FriendService) RemoveFriend(ctx context.Context, userID, otherUserID int64) error {
	low, high := models.CanonicalPair(userID, otherUserID)
	res := db.GetWriteDB(ctx).
		Where("user_low_id = ? AND user_high_id = ? AND status = ?", low, high, models.FriendshipAccepted).
		Delete(&models.Friendship{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: friendship", ErrNotFound)
	}
	return nil
}

func (fs *FriendService) IsFriend(ctx context.Context, userA, userB int64) (bool, error) {
	return fs.pairHasStatus(ctx, userA, userB, models.FriendshipAccepted)
}

// HasPendingFriendRequest - есть ли заявка между парой (в любом направлении:
// строка каноническая, поэтому проверка симметрична)
func (fs *FriendService) HasPendingFriendRequest(ctx context.Context, userA, userB int64) (bool, error) {
	return fs.pairHasStatus(ctx, userA, userB, models.FriendshipPending)
}

func (fs *FriendService) pairHasStatus(ctx context.Context, userA, userB int64, status models.FriendshipStatus) (bool, error) {
	low, high := models.CanonicalPair(userA, userB)
	var cnt int64
	err := db.GetReadOnlyDB(ctx).Model(&models.Friendship{}).
		Where("user_low_id = ? AND user_high_id = ? AND status = ?", low, high, status).
		Count(&cnt).Error
	if err != nil {
		return false, err
	}
	return cnt > 0, nil
}

// CanSendFriendRequest - составное правило: нельзя себе, уже друзьям,
// при висящей заявке в любую сторону и при блокировке в любую сторону
func (fs *FriendService) CanSendFriendRequest(ctx context.Context, userA, userB int64) (bool, error) {
	if userA == userB {
		return false, nil
	}
	isFriend, err := fs.IsFriend(ctx, userA, userB)
	if err != nil {
		return false, err
	}
	if isFriend {
		return false, nil
	}
	pending, err := fs.HasPendingFriendRequest(ctx, userA, userB)
	if err != nil {
		return false, err
	}
	if pending {
		return false, nil
	}
	blocked, err := pairBlocked(db.GetReadOnlyDB(ctx), userA, userB)
	if err != nil {
		return false, err
	}
	return !blocked, nil
}

// Friends возвращает подтвержденных друзей пользователя
func (fs *FriendService) Friends(ctx context.Context, userID int64) ([]models.User, error) {
	var friends []models.User
	err := db.GetReadOnlyDB(ctx).
		Table("users u").
		Joins("JOIN friendships f ON (f.user_low_id = u.id AND f.user_high_id = ?) OR (f.user_high_id = u.id AND f.user_low_id = ?)", userID, userID).
		Where("f.status = ? AND u.id != ?", models.FriendshipAccepted, userID).
		Select("u.id, u.nickname, u.first_name, u.last_name, u.city, u.created_at").
		Find(&friends).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get friends: %w", err)
	}
	return friends, nil
}

// IncomingRequests - входящие заявки (pending, отправленные не нами)
func (fs *FriendService) IncomingRequests(ctx context.Context, userID int64) ([]models.Friendship, error) {
	var requests []models.Friendship
	err := db.GetReadOnlyDB(ctx).
		Where("(user_low_id = ? OR user_high_id = ?) AND status = ? AND requested_by != ?",
			userID, userID, models.FriendshipPending, userID).
		Find(&requests).Error
	return requests, err
}

// SentRequests - исходящие заявки пользователя
func (fs *FriendService) SentRequests(ctx context.Context, userID int64) ([]models.Friendship, error) {
	var requests []models.Friendship
	err := db.GetReadOnlyDB(ctx).
		Where("requested_by = ? AND status = ?", userID, models.FriendshipPending).
		Find(&requests).Error
	return requests, err
}

// friendIDs возвращает id подтвержденных друзей (для пересечений и статистики)
func friendIDs(ctx context.Context, userID int64) ([]int64, error) {
	var friendships []models.Friendship
	err := db.GetReadOnlyDB(ctx).
		Where("(user_low_id = ? OR user_high_id = ?) AND status = ?",
			userID, userID, models.FriendshipAccepted).
		Find(&friendships).Error
	if err != nil {
		return nil, err
	}
	ids := make([]int64, 0, len(friendships))
	for i := range friendships {
		ids = append(ids, friendships[i].OtherUserID(userID))
	}
	return ids, nil
}
