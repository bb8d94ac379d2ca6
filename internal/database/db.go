package database

import (
	"errors"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/hussein34535/waledapi/internal/models"
)

func Connect(dsn string) (*gorm.DB, error) {
	if dsn == "" {
		return nil, errors.New("empty DSN")
	}
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetMaxOpenConns(20)
	sqlDB.SetConnMaxLifetime(60 * time.Minute)

	return db, nil
}

func AutoMigrateAndSeed(db *gorm.DB, adminEmail, adminPassword string) error {
	if err := db.AutoMigrate(
		&models.Admin{},
		&models.VpsAccount{},
		&models.SNIRecord{},
	); err != nil {
		return err
	}
	return seedAdmin(db, adminEmail, adminPassword)
}

func seedAdmin(db *gorm.DB, email, password string) error {
	var count int64
	db.Model(&models.Admin{}).Count(&count)
	if count > 0 {
		return nil
	}
	admin := models.Admin{
		Email:    email,
		IsActive: true,
	}
	if err := admin.SetPassword(password); err != nil {
		return err
	}
	return db.Create(&admin).Error
}
