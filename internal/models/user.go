package models

import (
	"time"

	"github.com/google/uuid"
)

// User is an account in the recipe community. Accounts are never hard-deleted;
// Active is flipped off instead, and every lookup filters on it.
type User struct {
	ID              uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Username        string    `gorm:"size:50;uniqueIndex;not null" json:"nombre_usuario"`
	Email           string    `gorm:"size:255;uniqueIndex;not null" json:"correo_electronico"`
	FullName        string    `gorm:"size:100;not null" json:"nombre_completo"`
	PasswordHash    string    `gorm:"not null" json:"-"`
	ProfileImageURL string    `gorm:"size:512" json:"imagen_perfil"`
	Active          bool      `gorm:"not null;default:true" json:"-"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}
