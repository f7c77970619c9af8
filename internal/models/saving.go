package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Saving is a single contribution to the shared ledger. Amount is stored as
// NUMERIC and kept strictly positive by a check constraint; CreatedAt is the
// default ordering key (newest first).
type Saving struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	UserID      uint            `gorm:"not null;index"`
	Amount      decimal.Decimal `gorm:"type:numeric(14,2);not null;check:amount > 0"`
	Description string          `gorm:"not null;default:''"`
	CreatedAt   time.Time       `gorm:"index:idx_savings_created_at,sort:desc"`

	// Relationships
	Profile Profile `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}

func (s *Saving) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
