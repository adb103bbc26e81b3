// Package testutil 提供測試共用的資料庫與測試資料建立工具。
package testutil

import (
	"fmt"
	"path/filepath"
	"testing"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"voting_web/internal/models"
	"voting_web/internal/repository"
	"voting_web/internal/storage"
)

// SetupTestDB 建立一個以暫存檔為底的 sqlite 測試資料庫並完成遷移
// 連接數限制為 1，讓並發測試的寫入在驅動層排隊而不是互相撞鎖
func SetupTestDB(t *testing.T) *storage.PostgresDB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "voting_test.db")
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("Failed to access underlying database: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	store := &storage.PostgresDB{DB: db}
	if err := store.AutoMigrate(&models.User{}, &models.Poll{}, &models.Option{}, &models.Vote{}); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	return store
}

// CreateTestUser 直接寫入一個用戶，密碼固定為 Password1
func CreateTestUser(t *testing.T, repos *repository.Repositories, name string, role models.UserRole) *models.User {
	t.Helper()

	hashed, err := bcrypt.GenerateFromPassword([]byte("Password1"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("Failed to hash password: %v", err)
	}

	user := &models.User{
		Name:     name,
		Email:    fmt.Sprintf("%s@example.com", name),
		Password: string(hashed),
		Role:     role,
	}
	if err := repos.User.Create(user); err != nil {
		t.Fatalf("Failed to create test user %s: %v", name, err)
	}
	return user
}
