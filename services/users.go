package services

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"

	"ainnect/db"
	"ainnect/models"

	"golang.org/x/crypto/argon2"
)

type UserService struct{}

func NewUserService() *UserService {
	return &UserService{}
}

// Register создает пользователя, пароль хэшируем argon2id с солью
func (us *UserService) Register(user *models.User) (int64, error) {
	if user.Nickname == "" || user.Password == "" {
		return 0, fmt.Errorf("%w: nickname and password are required", ErrInvalidOperation)
	}

	var alreadyExists int64
	err := db.ORM.Model(&models.User{}).Where("nickname = ?", user.Nickname).Count(&alreadyExists).Error
	if err != nil {
		return 0, err
	}
	if alreadyExists > 0 {
		return 0, fmt.Errorf("%w: nickname is taken", ErrConflict)
	}

	salt := make([]byte, 16)
	if _, err = rand.Read(salt); err != nil {
		return 0, err
	}
	hash := argon2.IDKey([]byte(user.Password), salt, 1, 64*1024, 4, 32)
	user.Password = hex.EncodeToString(salt) + "$" + hex.EncodeToString(hash)
	user.IsActive = true

	if err := db.ORM.Create(user).Error; err != nil {
		return 0, err
	}
	return user.ID, nil
}

// Login проверяет пароль и выдает новый токен, старые токены сбрасываются
func (us *UserService) Login(nickname, password string) (string, error) {
	var stored models.User
	err := db.ORM.Where("nickname = ?", nickname).First(&stored).Error
	if err != nil {
		return "", fmt.Errorf("%w: user", ErrNotFound)
	}

	parts := strings.Split(stored.Password, "$")
	if len(parts) != 2 {
		return "", fmt.Errorf("invalid password format")
	}
	storedSalt, err := hex.DecodeString(parts[0])
	if err != nil {
		return "", err
	}
	hash := argon2.IDKey([]byte(password), storedSalt, 1, 64*1024, 4, 32)
	if hex.EncodeToString(hash) != parts[1] {
		return "", fmt.Errorf("%w: invalid password", ErrForbidden)
	}

	_ = us.Logout(stored.ID)

	tokenBytes := make([]byte, 32)
	if _, err = rand.Read(tokenBytes); err != nil {
		return "", err
	}
	token := hex.EncodeToString(tokenBytes)
	err = db.ORM.Create(&models.UserTokens{UserID: stored.ID, Token: token}).Error
	if err != nil {
		return "", err
	}
	return token, nil
}

func (us *UserService) Logout(userID int64) error {
	return db.ORM.Where("user_id = ?", userID).Delete(&models.UserTokens{}).Error
}

// UserIDByToken ищет пользователя по токену, для auth middleware
func (us *UserService) UserIDByToken(token string) (int64, error) {
	var userToken models.UserTokens
	err := db.ORM.Where("token = ?", token).First(&userToken).Error
	if err != nil {
		return 0, fmt.Errorf("%w: token", ErrNotFound)
	}
	return userToken.UserID, nil
}

// UserByID возвращает активного пользователя справочника
func (us *UserService) UserByID(ctx context.Context, userID int64) (*models.User, error) {
	var user models.User
	err := db.GetReadOnlyDB(ctx).
		Where("id = ? AND is_active = ? AND deleted_at IS NULL", userID, true).
		First(&user).Error
	if err != nil {
		return nil, fmt.Errorf("%w: user", ErrNotFound)
	}
	return &user, nil
}

// ensureUsersExist проверяет, что все пользователи существуют и активны.
// Операции над ребрами графа не создаются для несуществующих id.
func ensureUsersExist(ctx context.Context, ids ...int64) error {
	unique := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		if id <= 0 {
			return fmt.Errorf("%w: invalid user id", ErrInvalidOperation)
		}
		unique[id] = struct{}{}
	}
	idList := make([]int64, 0, len(unique))
	for id := range unique {
		idList = append(idList, id)
	}

	var count int64
	err := db.GetReadOnlyDB(ctx).Model(&models.User{}).
		Where("id IN (?) AND is_active = ? AND deleted_at IS NULL", idList, true).
		Count(&count).Error
	if err != nil {
		return fmt.Errorf("error checking users: %w", err)
	}
	if count != int64(len(idList)) {
		return fmt.Errorf("%w: one or both users do not exist", ErrNotFound)
	}
	return nil
}
