package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// CreateChatSession opens a chat session between the current user and
// the owner of the given item.
func (h *Handler) CreateChatSession(c *gin.Context) {
	itemID := c.Query("item_id")
	if itemID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "item_id is required"})
		return
	}

	item, err := h.Storage.GetItemByID(itemID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to look up item"})
		return
	}
	if item == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Item not found"})
		return
	}

	user := currentUser(c)
	if item.UserID == user.ID {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot chat with yourself"})
		return
	}

	session, err := h.Manager.Sessions.CreateSession(item.ID, user.ID, item.UserID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create session"})
		return
	}
	c.JSON(http.StatusOK, session)
}
