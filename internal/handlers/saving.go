package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/duopot/duopot/internal/store"
	"github.com/duopot/duopot/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CreateSavingRequest struct {
	Amount      string `json:"amount" binding:"required"`
	Description string `json:"description"`
}

// CreateSaving records a contribution for the caller and responds with the
// reloaded ledger, so the client's next view already includes the new row.
// The contributor is always the authenticated caller; no user id is accepted
// from the request.
func CreateSaving(ctx *gin.Context) {
	var body CreateSavingRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	identity := utils.CurrentIdentity(ctx)

	snapshot, err := ledgerClient().AddSaving(ctx.Request.Context(), identity, body.Amount, body.Description)

	if err != nil {
		if errors.Is(err, store.ErrInvalidAmount) {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Amount must be greater than zero"})
			return
		}
		if errors.Is(err, store.ErrDenied) || errors.Is(err, store.ErrConstraint) {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Operation rejected"})
			return
		}
		log.Printf("Failed to create saving: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create saving"})
		return
	}

	ctx.JSON(http.StatusCreated, ledgerResponse(snapshot))
}

// DeleteSaving removes one of the caller's own contributions. The store
// re-checks ownership inside the delete itself; a foreign or unknown id
// deletes nothing and still responds with the reloaded ledger.
func DeleteSaving(ctx *gin.Context) {
	savingID, err := uuid.Parse(ctx.Param("saving_id"))

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid saving id"})
		return
	}

	identity := utils.CurrentIdentity(ctx)

	snapshot, err := ledgerClient().DeleteSaving(ctx.Request.Context(), identity, savingID)

	if err != nil {
		log.Printf("Failed to delete saving: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete saving"})
		return
	}

	ctx.JSON(http.StatusOK, ledgerResponse(snapshot))
}
