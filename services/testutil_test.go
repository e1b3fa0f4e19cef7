package services

import (
	"context"
	"testing"

	"ainnect/db"
	"ainnect/models"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupTestDB поднимает SQLite в памяти и подменяет глобальный ORM
func setupTestDB(t *testing.T) {
	t.Helper()
	database, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(database))
	db.ORM = database
}

func createTestUser(t *testing.T) *models.User {
	t.Helper()
	user := models.User{
		Nickname:  gofakeit.Username() + gofakeit.DigitN(6),
		FirstName: gofakeit.FirstName(),
		LastName:  gofakeit.LastName(),
		Password:  "testpassword",
		City:      gofakeit.City(),
		IsActive:  true,
	}
	require.NoError(t, db.ORM.Create(&user).Error)
	return &user
}

// makeFriends доводит пару до accepted через обычный цикл заявки
func makeFriends(t *testing.T, ctx context.Context, fs *FriendService, a, b int64) {
	t.Helper()
	_, err := fs.Request(ctx, a, b)
	require.NoError(t, err)
	_, err = fs.Accept(ctx, b, a)
	require.NoError(t, err)
}
