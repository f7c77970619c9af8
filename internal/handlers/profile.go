package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/duopot/duopot/db"
	"github.com/duopot/duopot/internal/store"
	"github.com/duopot/duopot/internal/types"
	"github.com/duopot/duopot/internal/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type CreateProfileRequest struct {
	Name string `json:"name" binding:"required"`
}

type UpdateProfileRequest struct {
	Name string `json:"name" binding:"required"`
}

// CreateProfile sets up the caller's own profile. The row id is bound to the
// caller's identity by the store, so there is exactly one profile per
// account and it can never point at anyone else.
func CreateProfile(ctx *gin.Context) {
	var body CreateProfileRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	identity := utils.CurrentIdentity(ctx)

	profile, err := store.New(db.DB).CreateProfile(ctx.Request.Context(), identity, body.Name)

	if err != nil {
		if errors.Is(err, store.ErrConstraint) {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Profile already exists"})
			return
		}
		if errors.Is(err, store.ErrDenied) {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Operation rejected"})
			return
		}
		log.Printf("Failed to create profile: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create profile"})
		return
	}

	ctx.JSON(http.StatusCreated, types.ProfileResponse{
		ID:        profile.ID,
		Name:      profile.Name,
		CreatedAt: profile.CreatedAt,
	})
}

// UpdateProfile renames the caller's own profile; the name is the only
// mutable field.
func UpdateProfile(ctx *gin.Context) {
	var body UpdateProfileRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	identity := utils.CurrentIdentity(ctx)

	profile, err := store.New(db.DB).RenameProfile(ctx.Request.Context(), identity, body.Name)

	if err != nil {
		if errors.Is(err, store.ErrConstraint) || errors.Is(err, store.ErrDenied) {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Operation rejected"})
			return
		}
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Profile not found"})
			return
		}
		log.Printf("Failed to update profile: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update profile"})
		return
	}

	ctx.JSON(http.StatusOK, types.ProfileResponse{
		ID:        profile.ID,
		Name:      profile.Name,
		CreatedAt: profile.CreatedAt,
	})
}
