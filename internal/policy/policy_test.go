package policy

import (
	"testing"

	"github.com/duopot/duopot/internal/models"
)

var (
	alice = Identity{UserID: 1}
	bob   = Identity{UserID: 2}
)

func TestProfileRules(t *testing.T) {
	t.Parallel()

	aliceProfile := models.Profile{ID: 1, Name: "Alice"}
	bobProfile := models.Profile{ID: 2, Name: "Bob"}

	tests := []struct {
		name string
		got  bool
		want bool
	}{
		{"any authenticated caller reads any profile", AllowsProfile(bob, OpSelect, aliceProfile), true},
		{"owner reads own profile", AllowsProfile(alice, OpSelect, aliceProfile), true},
		{"owner may update own profile", AllowsProfile(alice, OpUpdate, aliceProfile), true},
		{"non-owner may not update", AllowsProfile(bob, OpUpdate, aliceProfile), false},
		{"delete is never granted", AllowsProfile(alice, OpDelete, aliceProfile), false},
		{"insert only with own id", ChecksProfile(alice, OpInsert, aliceProfile), true},
		{"insert with foreign id rejected", ChecksProfile(alice, OpInsert, bobProfile), false},
		{"update may not reassign id", ChecksProfile(alice, OpUpdate, bobProfile), false},
	}

	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s: got %v, want %v", tt.name, tt.got, tt.want)
		}
	}
}

func TestSavingRules(t *testing.T) {
	t.Parallel()

	aliceSaving := models.Saving{UserID: 1}
	bobSaving := models.Saving{UserID: 2}

	tests := []struct {
		name string
		got  bool
		want bool
	}{
		{"ledger reads are shared", AllowsSaving(alice, OpSelect, bobSaving), true},
		{"owner may delete own row", AllowsSaving(alice, OpDelete, aliceSaving), true},
		{"non-owner may not delete", AllowsSaving(alice, OpDelete, bobSaving), false},
		{"owner may update own row", AllowsSaving(alice, OpUpdate, aliceSaving), true},
		{"non-owner may not update", AllowsSaving(bob, OpUpdate, aliceSaving), false},
		{"insert only as self", ChecksSaving(alice, OpInsert, aliceSaving), true},
		{"insert as someone else rejected", ChecksSaving(alice, OpInsert, bobSaving), false},
		{"update may not reassign owner", ChecksSaving(alice, OpUpdate, bobSaving), false},
	}

	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s: got %v, want %v", tt.name, tt.got, tt.want)
		}
	}
}

func TestAnonymousIsDeniedEverything(t *testing.T) {
	t.Parallel()

	profile := models.Profile{ID: 1}
	saving := models.Saving{UserID: 1}

	for _, op := range []Operation{OpSelect, OpInsert, OpUpdate, OpDelete} {
		if AllowsProfile(Anonymous, op, profile) {
			t.Errorf("anonymous allowed profile %s", op)
		}
		if ChecksProfile(Anonymous, op, profile) {
			t.Errorf("anonymous passed profile %s check", op)
		}
		if AllowsSaving(Anonymous, op, saving) {
			t.Errorf("anonymous allowed saving %s", op)
		}
		if ChecksSaving(Anonymous, op, saving) {
			t.Errorf("anonymous passed saving %s check", op)
		}
	}
}
