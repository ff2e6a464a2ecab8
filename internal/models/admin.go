package models

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

// Admin is an operator account. The password hash is write-only: it is set
// through SetPassword and verified through CheckPassword, never exposed.
type Admin struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Username     string    `gorm:"size:80;uniqueIndex;not null" json:"username"`
	Email        string    `gorm:"size:120;uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"size:128;not null" json:"-"`
	IsActive     bool      `gorm:"not null;default:true" json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// SetPassword hashes the plaintext password into the stored hash.
func (a *Admin) SetPassword(plain string) error {
	h, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	a.PasswordHash = string(h)
	return nil
}

// CheckPassword reports whether the candidate matches the stored hash.
func (a *Admin) CheckPassword(candidate string) bool {
	if candidate == "" || a.PasswordHash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte(candidate)) == nil
}
