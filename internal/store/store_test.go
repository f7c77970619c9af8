package store

import (
	"context"
	"testing"
	"time"

	"github.com/duopot/duopot/internal/models"
	"github.com/duopot/duopot/internal/policy"
	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, gdb.Exec("PRAGMA foreign_keys = ON").Error)
	require.NoError(t, gdb.AutoMigrate(&models.User{}, &models.Profile{}, &models.Saving{}))

	return gdb
}

func signUp(t *testing.T, gdb *gorm.DB, email string) policy.Identity {
	t.Helper()

	user := models.User{Email: email, PasswordHash: "irrelevant"}
	require.NoError(t, gdb.Create(&user).Error)

	return policy.Identity{UserID: user.ID}
}

func amount(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestProfileSelfInsertOnly(t *testing.T) {
	t.Parallel()

	gdb := newTestDB(t)
	s := New(gdb)
	ctx := context.Background()

	u1 := signUp(t, gdb, "alice@example.com")

	profile, err := s.CreateProfile(ctx, u1, "Alice")
	require.NoError(t, err)
	assert.Equal(t, u1.UserID, profile.ID)

	// A second profile for the same identity collides on the primary key.
	_, err = s.CreateProfile(ctx, u1, "Alice again")
	assert.Error(t, err)

	// Anonymous callers cannot create profiles at all.
	_, err = s.CreateProfile(ctx, policy.Anonymous, "Nobody")
	assert.ErrorIs(t, err, ErrDenied)
}

func TestProfilesAreSharedReads(t *testing.T) {
	t.Parallel()

	gdb := newTestDB(t)
	s := New(gdb)
	ctx := context.Background()

	u1 := signUp(t, gdb, "alice@example.com")
	u2 := signUp(t, gdb, "bob@example.com")

	_, err := s.CreateProfile(ctx, u1, "Alice")
	require.NoError(t, err)
	_, err = s.CreateProfile(ctx, u2, "Bob")
	require.NoError(t, err)

	// Both parties see the complete profile set, never an ownership-filtered
	// subset.
	for _, id := range []policy.Identity{u1, u2} {
		profiles, err := s.ListProfiles(ctx, id)
		require.NoError(t, err)
		assert.Len(t, profiles, 2)
	}

	own, err := s.GetProfile(ctx, u2)
	require.NoError(t, err)
	require.NotNil(t, own)
	assert.Equal(t, "Bob", own.Name)
}

func TestRenameProfile(t *testing.T) {
	t.Parallel()

	gdb := newTestDB(t)
	s := New(gdb)
	ctx := context.Background()

	u1 := signUp(t, gdb, "alice@example.com")

	// Renaming before the profile exists affects zero rows.
	_, err := s.RenameProfile(ctx, u1, "Alice")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	_, err = s.CreateProfile(ctx, u1, "Alice")
	require.NoError(t, err)

	renamed, err := s.RenameProfile(ctx, u1, "Alice B.")
	require.NoError(t, err)
	assert.Equal(t, "Alice B.", renamed.Name)

	_, err = s.RenameProfile(ctx, policy.Anonymous, "Nobody")
	assert.ErrorIs(t, err, ErrDenied)
}

// Scenario: one party contributes, both see it, subtotals attribute it.
func TestSingleContribution(t *testing.T) {
	t.Parallel()

	gdb := newTestDB(t)
	s := New(gdb)
	ctx := context.Background()

	u1 := signUp(t, gdb, "alice@example.com")
	u2 := signUp(t, gdb, "bob@example.com")

	_, err := s.CreateProfile(ctx, u1, "Alice")
	require.NoError(t, err)

	created, err := s.CreateSaving(ctx, u1, amount("100"), "gift")
	require.NoError(t, err)
	assert.Equal(t, u1.UserID, created.UserID)
	assert.NotEqual(t, uuid.Nil, created.ID)

	// The shared ledger is visible to the other party too.
	savings, err := s.ListSavings(ctx, u2)
	require.NoError(t, err)
	require.Len(t, savings, 1)
	assert.Equal(t, u1.UserID, savings[0].UserID)
	assert.True(t, savings[0].Amount.Equal(amount("100")))
}

func TestContributorIsNeverClientControlled(t *testing.T) {
	t.Parallel()

	gdb := newTestDB(t)
	s := New(gdb)
	ctx := context.Background()

	u1 := signUp(t, gdb, "alice@example.com")
	u2 := signUp(t, gdb, "bob@example.com")

	_, err := s.CreateProfile(ctx, u1, "Alice")
	require.NoError(t, err)
	_, err = s.CreateProfile(ctx, u2, "Bob")
	require.NoError(t, err)

	// The store stamps the caller's own id regardless of any input, so the
	// only way to probe the rule is through the policy itself.
	created, err := s.CreateSaving(ctx, u1, amount("50"), "")
	require.NoError(t, err)
	assert.Equal(t, u1.UserID, created.UserID)

	assert.False(t, policy.ChecksSaving(u1, policy.OpInsert, models.Saving{UserID: u2.UserID}))
}

func TestNonPositiveAmountsRejected(t *testing.T) {
	t.Parallel()

	gdb := newTestDB(t)
	s := New(gdb)
	ctx := context.Background()

	u1 := signUp(t, gdb, "alice@example.com")
	_, err := s.CreateProfile(ctx, u1, "Alice")
	require.NoError(t, err)

	for _, bad := range []string{"0", "-10"} {
		_, err := s.CreateSaving(ctx, u1, amount(bad), "")
		assert.ErrorIs(t, err, ErrInvalidAmount, "amount %s", bad)
	}

	savings, err := s.ListSavings(ctx, u1)
	require.NoError(t, err)
	assert.Empty(t, savings, "rejected inserts must leave no rows")
}

// Scenario: deleting another party's contribution completes with zero
// effect; the caller cannot tell a foreign row from a missing one.
func TestDeleteIsOwnerOnly(t *testing.T) {
	t.Parallel()

	gdb := newTestDB(t)
	s := New(gdb)
	ctx := context.Background()

	u1 := signUp(t, gdb, "alice@example.com")
	u2 := signUp(t, gdb, "bob@example.com")

	_, err := s.CreateProfile(ctx, u2, "Bob")
	require.NoError(t, err)

	bobs, err := s.CreateSaving(ctx, u2, amount("75"), "paycheck")
	require.NoError(t, err)

	affected, err := s.DeleteSaving(ctx, u1, bobs.ID)
	require.NoError(t, err)
	assert.Zero(t, affected)

	// The row is still there on the next read.
	savings, err := s.ListSavings(ctx, u1)
	require.NoError(t, err)
	assert.Len(t, savings, 1)

	// The owner can remove it, and a repeat delete is a harmless no-op.
	affected, err = s.DeleteSaving(ctx, u2, bobs.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, affected)

	affected, err = s.DeleteSaving(ctx, u2, bobs.ID)
	require.NoError(t, err)
	assert.Zero(t, affected)
}

func TestUnauthenticatedSeesAndDoesNothing(t *testing.T) {
	t.Parallel()

	gdb := newTestDB(t)
	s := New(gdb)
	ctx := context.Background()

	u1 := signUp(t, gdb, "alice@example.com")
	_, err := s.CreateProfile(ctx, u1, "Alice")
	require.NoError(t, err)
	existing, err := s.CreateSaving(ctx, u1, amount("10"), "")
	require.NoError(t, err)

	profiles, err := s.ListProfiles(ctx, policy.Anonymous)
	require.NoError(t, err)
	assert.Empty(t, profiles)

	savings, err := s.ListSavings(ctx, policy.Anonymous)
	require.NoError(t, err)
	assert.Empty(t, savings)

	profile, err := s.GetProfile(ctx, policy.Anonymous)
	require.NoError(t, err)
	assert.Nil(t, profile)

	_, err = s.CreateSaving(ctx, policy.Anonymous, amount("5"), "")
	assert.ErrorIs(t, err, ErrDenied)

	affected, err := s.DeleteSaving(ctx, policy.Anonymous, existing.ID)
	require.NoError(t, err)
	assert.Zero(t, affected)
}

func TestListSavingsNewestFirst(t *testing.T) {
	t.Parallel()

	gdb := newTestDB(t)
	s := New(gdb)
	ctx := context.Background()

	u1 := signUp(t, gdb, "alice@example.com")
	_, err := s.CreateProfile(ctx, u1, "Alice")
	require.NoError(t, err)

	first, err := s.CreateSaving(ctx, u1, amount("1"), "older")
	require.NoError(t, err)
	second, err := s.CreateSaving(ctx, u1, amount("2"), "newer")
	require.NoError(t, err)

	// Spread the timestamps so the ordering is unambiguous.
	require.NoError(t, gdb.Model(&models.Saving{}).Where("id = ?", first.ID).
		Update("created_at", second.CreatedAt.Add(-time.Second)).Error)

	savings, err := s.ListSavings(ctx, u1)
	require.NoError(t, err)
	require.Len(t, savings, 2)
	assert.Equal(t, "newer", savings[0].Description)
	assert.Equal(t, "older", savings[1].Description)
}

func TestCascadeDeleteWithProfile(t *testing.T) {
	t.Parallel()

	gdb := newTestDB(t)
	s := New(gdb)
	ctx := context.Background()

	u1 := signUp(t, gdb, "alice@example.com")
	u2 := signUp(t, gdb, "bob@example.com")

	_, err := s.CreateProfile(ctx, u1, "Alice")
	require.NoError(t, err)
	_, err = s.CreateProfile(ctx, u2, "Bob")
	require.NoError(t, err)

	_, err = s.CreateSaving(ctx, u1, amount("10"), "")
	require.NoError(t, err)
	_, err = s.CreateSaving(ctx, u2, amount("20"), "")
	require.NoError(t, err)

	// Removing the account removes the profile and its contributions; the
	// other party's side of the ledger survives.
	require.NoError(t, gdb.Unscoped().Delete(&models.User{}, u1.UserID).Error)

	savings, err := s.ListSavings(ctx, u2)
	require.NoError(t, err)
	require.Len(t, savings, 1)
	assert.Equal(t, u2.UserID, savings[0].UserID)

	profiles, err := s.ListProfiles(ctx, u2)
	require.NoError(t, err)
	require.Len(t, profiles, 1)
	assert.Equal(t, "Bob", profiles[0].Name)
}
