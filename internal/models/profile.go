package models

import "time"

// Profile shares its primary key with the owning account: profiles.id is a
// foreign key to users.id, so there is at most one profile per identity and
// a profile can never move between identities.
type Profile struct {
	ID        uint      `gorm:"primaryKey"`
	Name      string    `gorm:"not null"`
	CreatedAt time.Time

	// Relationships
	Savings []Saving `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
