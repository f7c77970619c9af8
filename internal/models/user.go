package models

import "gorm.io/gorm"

type User struct {
	gorm.Model

	Email        string `gorm:"uniqueIndex;not null"`
	PasswordHash string `gorm:"not null"`

	// Relationships
	Profile Profile `gorm:"foreignKey:ID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
