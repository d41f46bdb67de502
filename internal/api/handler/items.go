package handler

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"reclaimr/backend/internal/models"
)

type reportRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description" binding:"required"`
	Type        string `json:"type" binding:"required,oneof=lost found"`
	Location    string `json:"location" binding:"required"`
	ImageURL    string `json:"image_url"`
	ContactInfo string `json:"contact_info" binding:"required"`
}

// ReportItem creates a lost-or-found report for the current user.
func (h *Handler) ReportItem(c *gin.Context) {
	var req reportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	item := &models.Item{
		ID:          uuid.New().String(),
		Title:       req.Title,
		Description: req.Description,
		Type:        models.ItemType(req.Type),
		Location:    req.Location,
		ImageURL:    req.ImageURL,
		ContactInfo: req.ContactInfo,
		UserID:      currentUser(c).ID,
		CreatedAt:   time.Now().UTC(),
	}
	if err := h.Storage.SaveItem(item); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save item"})
		return
	}

	c.JSON(http.StatusOK, item)
}

// ListItems returns all reports, optionally filtered by type and by a
// case-insensitive location substring.
func (h *Handler) ListItems(c *gin.Context) {
	items, err := h.Storage.GetAllItems()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list items"})
		return
	}

	itemType := c.Query("type")
	location := strings.ToLower(c.Query("location"))

	filtered := make([]*models.Item, 0, len(items))
	for _, item := range items {
		if itemType != "" && string(item.Type) != itemType {
			continue
		}
		if location != "" && !strings.Contains(strings.ToLower(item.Location), location) {
			continue
		}
		filtered = append(filtered, item)
	}

	c.JSON(http.StatusOK, filtered)
}

// GetItem returns one report by id.
func (h *Handler) GetItem(c *gin.Context) {
	item, err := h.Storage.GetItemByID(c.Param("item_id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to look up item"})
		return
	}
	if item == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Item not found"})
		return
	}
	c.JSON(http.StatusOK, item)
}

// UploadImage accepts a file and returns a mock storage URL. Real cloud
// upload is out of scope for the platform.
func (h *Handler) UploadImage(c *gin.Context) {
	if _, err := c.FormFile("file"); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing file"})
		return
	}

	mockURL := fmt.Sprintf("https://storage.reclaimr.com/images/%s.jpg", uuid.New().String())
	c.JSON(http.StatusOK, gin.H{"image_url": mockURL})
}
