package models

import (
	"time"
)

type FriendshipStatus string

const (
	FriendshipPending  FriendshipStatus = "pending"
	FriendshipAccepted FriendshipStatus = "accepted"
)

// Follow - подписка: follower видит контент followee
type Follow struct {
	ID         int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	FollowerID int64     `gorm:"not null;index:idx_follow_follower;index:idx_follow_pair,unique" json:"follower_id"`
	FolloweeID int64     `gorm:"not null;index:idx_follow_followee;index:idx_follow_pair,unique" json:"followee_id"`
	CreatedAt  time.Time `json:"created_at"`
}

func (Follow) TableName() string {
	return "follows"
}

// Friendship - дружба между парой пользователей.
// Хранится одной строкой под каноническим ключом:
// user_low_id = min(a, b), user_high_id = max(a, b),
// поэтому направление заявки не влияет на ключ.
// RequestedBy - кто отправил текущую заявку (для status = pending).
type Friendship struct {
	ID          int64            `gorm:"primaryKey;autoIncrement" json:"id"`
	UserLowID   int64            `gorm:"not null;index:idx_friendship_pair,unique;index:idx_friendship_low" json:"user_low_id"`
	UserHighID  int64            `gorm:"not null;index:idx_friendship_pair,unique;index:idx_friendship_high" json:"user_high_id"`
	Status      FriendshipStatus `gorm:"size:20;not null" json:"status"`
	RequestedBy int64            `gorm:"not null" json:"requested_by"`
	RespondedAt *time.Time       `json:"responded_at,omitempty"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
}

func (Friendship) TableName() string {
	return "friendships"
}

// OtherUserID возвращает id второго участника пары
func (f *Friendship) OtherUserID(userID int64) int64 {
	if f.UserLowID == userID {
		return f.UserHighID
	}
	return f.UserLowID
}

// HasMember проверяет, входит ли пользователь в пару
func (f *Friendship) HasMember(userID int64) bool {
	return f.UserLowID == userID || f.UserHighID == userID
}

// UserBlock - направленная блокировка (blocker заблокировал blocked).
// Блокировка не взаимна: A->B не означает B->A.
type UserBlock struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	BlockerID int64     `gorm:"not null;index:idx_block_blocker;index:idx_block_pair,unique" json:"blocker_id"`
	BlockedID int64     `gorm:"not null;index:idx_block_blocked;index:idx_block_pair,unique" json:"blocked_id"`
	Reason    string    `gorm:"size:255" json:"reason,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func (UserBlock) TableName() string {
	return "user_blocks"
}

// CanonicalPair нормализует пару id в канонический ключ дружбы.
// Считаем ключ один раз на границе операции, а не размазываем min/max по коду.
func CanonicalPair(a, b int64) (low, high int64) {
	if a < b {
		return a, b
	}
	return b, a
}
