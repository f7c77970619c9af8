package handlers

import (
	"log"
	"net/http"
	"strconv"

	"github.com/duopot/duopot/db"
	"github.com/duopot/duopot/internal/ledger"
	"github.com/duopot/duopot/internal/store"
	"github.com/duopot/duopot/internal/types"
	"github.com/duopot/duopot/internal/utils"
	"github.com/gin-gonic/gin"
)

// ledgerClient builds a fresh client over the shared connection. The client
// is stateless, so one per request is the natural lifetime.
func ledgerClient() *ledger.Client {
	return ledger.NewClient(store.New(db.DB))
}

func ledgerResponse(snapshot ledger.Snapshot) types.LedgerResponse {
	response := types.LedgerResponse{
		Profiles: []types.ProfileResponse{},
		Savings:  []types.SavingResponse{},
		Totals:   map[string]string{},
	}

	for _, profile := range snapshot.Profiles {
		response.Profiles = append(response.Profiles, types.ProfileResponse{
			ID:        profile.ID,
			Name:      profile.Name,
			CreatedAt: profile.CreatedAt,
		})
	}

	if snapshot.Profile != nil {
		response.Profile = &types.ProfileResponse{
			ID:        snapshot.Profile.ID,
			Name:      snapshot.Profile.Name,
			CreatedAt: snapshot.Profile.CreatedAt,
		}
	}

	for _, saving := range snapshot.Savings {
		response.Savings = append(response.Savings, types.SavingResponse{
			ID:          saving.ID,
			UserID:      saving.UserID,
			Amount:      saving.Amount.StringFixed(2),
			Description: saving.Description,
			CreatedAt:   saving.CreatedAt,
		})
	}

	response.Total = ledger.Total(snapshot.Savings).StringFixed(2)

	for userID, subtotal := range ledger.TotalsByUser(snapshot.Savings) {
		response.Totals[strconv.FormatUint(uint64(userID), 10)] = subtotal.StringFixed(2)
	}

	return response
}

// GetLedger returns the full visible ledger view. It sits behind optional
// auth: an unauthenticated caller gets the empty view, not a 401.
func GetLedger(ctx *gin.Context) {
	identity := utils.CurrentIdentity(ctx)

	snapshot, err := ledgerClient().Load(ctx.Request.Context(), identity)

	if err != nil {
		log.Printf("Failed to load ledger: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load ledger"})
		return
	}

	ctx.JSON(http.StatusOK, ledgerResponse(snapshot))
}
