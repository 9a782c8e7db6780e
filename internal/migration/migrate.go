package migration

import (
	"os"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/vellum-cms/vellum-backend/internal/domain"
)

// Run executes AutoMigrate for all engine tables and seeds bootstrap
// data when the database is empty.
func Run(db *gorm.DB) error {
	// 1. AutoMigrate - 테이블 없으면 생성, 있으면 skip
	if err := db.AutoMigrate(
		&domain.User{},
		&domain.Space{},
		&domain.Environment{},
		&domain.SpaceMember{},
		&domain.ContentType{},
		&domain.Entry{},
		&domain.EntrySnapshot{},
		&domain.ScheduledAction{},
	); err != nil {
		return err
	}

	// 2. Seed - users 테이블이 비어있을 때만 초기 관리자와 데모 스페이스 생성
	var count int64
	db.Model(&domain.User{}).Count(&count)
	if count == 0 {
		return seedBootstrap(db)
	}

	return nil
}

// seedBootstrap creates the platform admin account and a demo space so a
// fresh install is immediately usable. The admin password comes from
// ADMIN_INITIAL_PASSWORD; a throwaway default is used when unset.
func seedBootstrap(db *gorm.DB) error {
	password := os.Getenv("ADMIN_INITIAL_PASSWORD")
	if password == "" {
		password = "changeme-now"
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	return db.Transaction(func(tx *gorm.DB) error {
		admin := domain.User{
			Username: "admin",
			Email:    "admin@localhost",
			Password: string(hashed),
			Name:     "Administrator",
			Role:     domain.PlatformRoleAdmin,
			Status:   "active",
		}
		if err := tx.Create(&admin).Error; err != nil {
			return err
		}

		space := domain.Space{
			ID:            uuid.NewString(),
			Name:          "Demo Space",
			Subdomain:     "demo",
			Plan:          domain.PlanFree,
			DefaultLocale: "en-US",
		}
		if err := tx.Create(&space).Error; err != nil {
			return err
		}

		env := domain.Environment{
			SpaceID: space.ID,
			Name:    domain.DefaultEnvironment,
		}
		if err := tx.Create(&env).Error; err != nil {
			return err
		}

		member := domain.SpaceMember{
			SpaceID: space.ID,
			UserID:  admin.ID,
			Role:    domain.RoleOwner,
		}
		return tx.Create(&member).Error
	})
}
