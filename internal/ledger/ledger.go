// Package ledger is the read/write client over the shared savings store. It
// is stateless per request: every call resolves against the identity it is
// handed, loads what the store lets that identity see, and derives totals
// from the returned rows without filtering them further.
package ledger

import (
	"context"
	"strings"

	"github.com/duopot/duopot/internal/models"
	"github.com/duopot/duopot/internal/policy"
	"github.com/duopot/duopot/internal/store"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Store is the slice of the persistence layer the client needs. It is
// satisfied by *store.LedgerStore.
type Store interface {
	ListProfiles(ctx context.Context, id policy.Identity) ([]models.Profile, error)
	GetProfile(ctx context.Context, id policy.Identity) (*models.Profile, error)
	ListSavings(ctx context.Context, id policy.Identity) ([]models.Saving, error)
	CreateSaving(ctx context.Context, id policy.Identity, amount decimal.Decimal, description string) (*models.Saving, error)
	DeleteSaving(ctx context.Context, id policy.Identity, savingID uuid.UUID) (int64, error)
}

// Snapshot is one consistent view of the ledger for a given identity:
// everyone's profile, the caller's own profile (nil until created), and the
// full shared contribution list, newest first.
type Snapshot struct {
	Profiles []models.Profile
	Profile  *models.Profile
	Savings  []models.Saving
}

type Client struct {
	store Store
}

func NewClient(s Store) *Client {
	return &Client{store: s}
}

// Load fetches the three result sets that make up the ledger view. An
// unauthenticated identity yields the empty snapshot and no error; a failed
// read returns the error and no snapshot, leaving whatever the caller
// already holds untouched.
func (c *Client) Load(ctx context.Context, id policy.Identity) (Snapshot, error) {
	if !id.Authenticated() {
		return Snapshot{}, nil
	}

	profiles, err := c.store.ListProfiles(ctx, id)
	if err != nil {
		return Snapshot{}, err
	}

	profile, err := c.store.GetProfile(ctx, id)
	if err != nil {
		return Snapshot{}, err
	}

	savings, err := c.store.ListSavings(ctx, id)
	if err != nil {
		return Snapshot{}, err
	}

	return Snapshot{Profiles: profiles, Profile: profile, Savings: savings}, nil
}

// AddSaving parses and records a contribution for the caller, then reloads
// the ledger so the returned snapshot reflects the new row. Without an
// authenticated identity the call is a no-op. The contributor is always the
// caller itself; the description loses surrounding whitespace.
func (c *Client) AddSaving(ctx context.Context, id policy.Identity, amount string, description string) (Snapshot, error) {
	if !id.Authenticated() {
		return Snapshot{}, nil
	}

	value, err := decimal.NewFromString(strings.TrimSpace(amount))
	if err != nil || !value.IsPositive() {
		return Snapshot{}, store.ErrInvalidAmount
	}

	if _, err := c.store.CreateSaving(ctx, id, value, strings.TrimSpace(description)); err != nil {
		return Snapshot{}, err
	}

	return c.Load(ctx, id)
}

// DeleteSaving removes one of the caller's own contributions and reloads.
// The store re-checks ownership; deleting a foreign or already-gone row
// succeeds with zero effect, so the reload simply shows the ledger as it
// stands.
func (c *Client) DeleteSaving(ctx context.Context, id policy.Identity, savingID uuid.UUID) (Snapshot, error) {
	if !id.Authenticated() {
		return Snapshot{}, nil
	}

	if _, err := c.store.DeleteSaving(ctx, id, savingID); err != nil {
		return Snapshot{}, err
	}

	return c.Load(ctx, id)
}
