package types

import (
	"time"

	"github.com/google/uuid"
)

type UserResponse struct {
	ID    uint   `json:"id"`
	Email string `json:"email"`
}

type ProfileResponse struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

type SavingResponse struct {
	ID          uuid.UUID `json:"id"`
	UserID      uint      `json:"user_id"`
	Amount      string    `json:"amount"` // fixed two decimal places
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

type LedgerResponse struct {
	Profiles []ProfileResponse `json:"profiles"`
	Profile  *ProfileResponse  `json:"profile"`
	Savings  []SavingResponse  `json:"savings"`
	Total    string            `json:"total"`
	Totals   map[string]string `json:"totals"` // per-user subtotal keyed by user id
}
