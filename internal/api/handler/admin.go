package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"reclaimr/backend/internal/models"
)

// AdminStats reports platform-wide counters.
func (h *Handler) AdminStats(c *gin.Context) {
	users, err := h.Storage.CountUsers()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count users"})
		return
	}
	items, err := h.Storage.CountItems()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count items"})
		return
	}
	chats, err := h.Storage.CountActiveSessions()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count sessions"})
		return
	}

	c.JSON(http.StatusOK, models.AdminStats{
		TotalUsers:  users,
		TotalItems:  items,
		ActiveChats: chats,
	})
}

// AdminReset clears every store table.
func (h *Handler) AdminReset(c *gin.Context) {
	if err := h.Storage.ResetAll(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reset data"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "All data has been reset"})
}
