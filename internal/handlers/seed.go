package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apierrors "github.com/taskforce/taskforce-api/internal/errors"
	"github.com/taskforce/taskforce-api/internal/services"
)

// SeedHandler exposes the demo fixture loader.
type SeedHandler struct {
	seedService *services.SeedService
}

// NewSeedHandler creates a new SeedHandler.
func NewSeedHandler(seedService *services.SeedService) *SeedHandler {
	return &SeedHandler{seedService: seedService}
}

// Seed loads the demo fixture. Idempotent: a second call is a no-op.
func (h *SeedHandler) Seed(c *gin.Context) {
	seeded, creds, err := h.seedService.Seed()
	if err != nil {
		apierrors.InternalError(c, "Failed to seed data")
		return
	}

	if !seeded {
		c.JSON(http.StatusOK, gin.H{"message": "Data already seeded"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":     "Seed data created",
		"credentials": creds,
	})
}
