// Package store is the persistence layer of the shared ledger. Every
// operation takes the caller's identity explicitly and evaluates
// internal/policy before touching a row; mutations are issued as single
// ownership-guarded statements so the policy check and the write cannot be
// separated by a concurrent change. On Postgres the same rules are enforced
// a second time by row security (see db.InstallPolicies).
//
// Denied reads come back empty and denied deletes affect zero rows: a caller
// cannot tell a row that does not exist from a row it may not touch.
package store

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/duopot/duopot/internal/models"
	"github.com/duopot/duopot/internal/policy"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type LedgerStore struct {
	db *gorm.DB
}

func New(db *gorm.DB) *LedgerStore {
	return &LedgerStore{db: db}
}

// withIdentity runs fn in a transaction with the caller's identity bound to
// the connection for the duration, so the Postgres row-security policies see
// the same identity the in-process policy check used. Unauthenticated
// callers bind the empty string, which duopot_uid() reads as NULL.
func (s *LedgerStore) withIdentity(ctx context.Context, id policy.Identity, fn func(tx *gorm.DB) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if tx.Dialector.Name() == "postgres" {
			uid := ""
			if id.Authenticated() {
				uid = strconv.FormatUint(uint64(id.UserID), 10)
			}

			if err := tx.Exec("SELECT set_config('duopot.user_id', ?, true)", uid).Error; err != nil {
				return err
			}
		}

		return fn(tx)
	})
}

// ListProfiles returns every profile, oldest first. The profile set is
// shared between the ledger's parties; only unauthenticated callers see
// nothing.
func (s *LedgerStore) ListProfiles(ctx context.Context, id policy.Identity) ([]models.Profile, error) {
	if !id.Authenticated() {
		return nil, nil
	}

	var profiles []models.Profile

	err := s.withIdentity(ctx, id, func(tx *gorm.DB) error {
		return tx.Order("created_at ASC").Find(&profiles).Error
	})

	if err != nil {
		return nil, err
	}

	return profiles, nil
}

// GetProfile returns the caller's own profile, or nil if the caller has not
// created one yet (or is not authenticated).
func (s *LedgerStore) GetProfile(ctx context.Context, id policy.Identity) (*models.Profile, error) {
	if !id.Authenticated() {
		return nil, nil
	}

	var profile models.Profile

	err := s.withIdentity(ctx, id, func(tx *gorm.DB) error {
		return tx.Where("id = ?", id.UserID).First(&profile).Error
	})

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}

	return &profile, nil
}

// CreateProfile inserts the caller's profile. The row id is forced to the
// caller's own identity; there is no way to create a profile for someone
// else.
func (s *LedgerStore) CreateProfile(ctx context.Context, id policy.Identity, name string) (*models.Profile, error) {
	name = strings.TrimSpace(name)

	if name == "" {
		return nil, ErrConstraint
	}

	profile := models.Profile{ID: id.UserID, Name: name}

	if !policy.ChecksProfile(id, policy.OpInsert, profile) {
		return nil, ErrDenied
	}

	err := s.withIdentity(ctx, id, func(tx *gorm.DB) error {
		return tx.Create(&profile).Error
	})

	if err != nil {
		return nil, wrapWriteError(err)
	}

	return &profile, nil
}

// RenameProfile updates the display name on the caller's own profile. The
// update is a single statement guarded on the caller's id; it affects zero
// rows when no own profile exists.
func (s *LedgerStore) RenameProfile(ctx context.Context, id policy.Identity, name string) (*models.Profile, error) {
	name = strings.TrimSpace(name)

	if name == "" {
		return nil, ErrConstraint
	}

	updated := models.Profile{ID: id.UserID, Name: name}

	if !policy.AllowsProfile(id, policy.OpUpdate, updated) || !policy.ChecksProfile(id, policy.OpUpdate, updated) {
		return nil, ErrDenied
	}

	err := s.withIdentity(ctx, id, func(tx *gorm.DB) error {
		res := tx.Model(&models.Profile{}).Where("id = ?", id.UserID).Update("name", name)

		if res.Error != nil {
			return res.Error
		}

		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		return tx.Where("id = ?", id.UserID).First(&updated).Error
	})

	if err != nil {
		return nil, wrapWriteError(err)
	}

	return &updated, nil
}

// ListSavings returns the full shared contribution set, newest first.
func (s *LedgerStore) ListSavings(ctx context.Context, id policy.Identity) ([]models.Saving, error) {
	if !id.Authenticated() {
		return nil, nil
	}

	var savings []models.Saving

	err := s.withIdentity(ctx, id, func(tx *gorm.DB) error {
		return tx.Order("created_at DESC").Find(&savings).Error
	})

	if err != nil {
		return nil, err
	}

	return savings, nil
}

// CreateSaving records a contribution on the caller's side of the ledger.
// The contributor column is always the caller's own identity, never taken
// from input, and the amount must be strictly positive.
func (s *LedgerStore) CreateSaving(ctx context.Context, id policy.Identity, amount decimal.Decimal, description string) (*models.Saving, error) {
	if !amount.IsPositive() {
		return nil, ErrInvalidAmount
	}

	saving := models.Saving{
		UserID:      id.UserID,
		Amount:      amount,
		Description: description,
	}

	if !policy.ChecksSaving(id, policy.OpInsert, saving) {
		return nil, ErrDenied
	}

	err := s.withIdentity(ctx, id, func(tx *gorm.DB) error {
		return tx.Create(&saving).Error
	})

	if err != nil {
		return nil, wrapWriteError(err)
	}

	return &saving, nil
}

// DeleteSaving removes a contribution the caller owns. Ownership is part of
// the delete statement itself, so a foreign or absent id affects zero rows
// and returns no error. The affected row count is reported so callers can
// tell whether anything happened, without learning why nothing did.
func (s *LedgerStore) DeleteSaving(ctx context.Context, id policy.Identity, savingID uuid.UUID) (int64, error) {
	if !id.Authenticated() {
		return 0, nil
	}

	var affected int64

	err := s.withIdentity(ctx, id, func(tx *gorm.DB) error {
		res := tx.Where("id = ? AND user_id = ?", savingID, id.UserID).Delete(&models.Saving{})

		if res.Error != nil {
			return res.Error
		}

		affected = res.RowsAffected
		return nil
	})

	if err != nil {
		return 0, wrapWriteError(err)
	}

	return affected, nil
}
