package models

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Admin is the dashboard operator account seeded at startup.
type Admin struct {
	ID        uint `gorm:"primaryKey"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Email        string `gorm:"uniqueIndex;size:120;not null"`
	PasswordHash string `gorm:"size:128;not null"`
	IsActive     bool   `gorm:"default:true"`
}

// WARNING: For demo simplicity we use SHA256 hash. In production use bcrypt/argon2.
func (a *Admin) SetPassword(plain string) error {
	h := sha256.Sum256([]byte(plain))
	a.PasswordHash = hex.EncodeToString(h[:])
	return nil
}

func (a *Admin) CheckPassword(plain string) bool {
	h := sha256.Sum256([]byte(plain))
	return a.PasswordHash == hex.EncodeToString(h[:])
}
