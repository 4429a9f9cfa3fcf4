package mysql

import (
	"context"
	"errors"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	domain "belavista-backend/internal/domain/user"
	"belavista-backend/pkg/id"
)

type userSQLite struct {
	ID           uint64    `gorm:"primaryKey;column:id"`
	UserID       string    `gorm:"size:32;uniqueIndex;column:user_id"`
	Email        string    `gorm:"size:255;uniqueIndex;column:email"`
	PasswordHash string    `gorm:"size:72;column:password_hash"`
	Name         string    `gorm:"size:255;column:name"`
	CreatedAt    time.Time `gorm:"column:created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at"`
}

func (userSQLite) TableName() string { return "users" }

func openUserTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&userSQLite{}); err != nil {
		t.Fatalf("auto-migrate: %v", err)
	}
	return db
}

func TestUserCreateAndGet(t *testing.T) {
	db := openUserTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	userID := id.NewID32()
	u := &domain.User{
		UserID:       userID,
		Email:        "maria@example.com",
		PasswordHash: "$2a$10$abcdefghijklmnopqrstuv",
		Name:         "Maria",
	}
	if err := repo.Create(ctx, u); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if u.ID == 0 {
		t.Fatalf("Create did not set auto-increment ID")
	}

	byEmail, err := repo.GetByEmail(ctx, "maria@example.com")
	if err != nil {
		t.Fatalf("GetByEmail: %v", err)
	}
	if byEmail.UserID != userID || byEmail.Name != "Maria" {
		t.Errorf("unexpected user: %+v", byEmail)
	}

	byID, err := repo.GetByUserID(ctx, userID)
	if err != nil {
		t.Fatalf("GetByUserID: %v", err)
	}
	if byID.Email != "maria@example.com" {
		t.Errorf("unexpected user: %+v", byID)
	}
}

func TestUserSave_UpdatesPasswordHash(t *testing.T) {
	db := openUserTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	u := &domain.User{
		UserID:       id.NewID32(),
		Email:        "maria@example.com",
		PasswordHash: "$2a$10$oldoldoldoldoldoldoldo",
		Name:         "Maria",
	}
	if err := repo.Create(ctx, u); err != nil {
		t.Fatalf("Create: %v", err)
	}

	u.PasswordHash = "$2a$10$newnewnewnewnewnewnewn"
	if err := repo.Save(ctx, u); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := repo.GetByUserID(ctx, u.UserID)
	if err != nil {
		t.Fatalf("GetByUserID: %v", err)
	}
	if got.PasswordHash != "$2a$10$newnewnewnewnewnewnewn" {
		t.Errorf("hash not persisted: %q", got.PasswordHash)
	}
	if got.Email != "maria@example.com" {
		t.Errorf("other columns mutated: %+v", got)
	}
}

func TestUserGet_NotFound(t *testing.T) {
	db := openUserTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	if _, err := repo.GetByEmail(ctx, "nobody@example.com"); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected ErrRecordNotFound, got %v", err)
	}
	if _, err := repo.GetByUserID(ctx, "eeeeeeeeeeeeeeeeeeeeeeeeeeeeeeee"); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected ErrRecordNotFound, got %v", err)
	}
}

func TestUserCreate_DuplicateEmail(t *testing.T) {
	db := openUserTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	mk := func() *domain.User {
		return &domain.User{UserID: id.NewID32(), Email: "maria@example.com", Name: "Maria"}
	}
	if err := repo.Create(ctx, mk()); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := repo.Create(ctx, mk()); err == nil {
		t.Fatalf("expected unique constraint violation")
	}
}
