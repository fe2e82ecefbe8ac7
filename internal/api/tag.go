package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/recipebook/backend/internal/service"
	"github.com/recipebook/backend/internal/types"
)

// TagHandler exposes the caller's tags
type TagHandler struct {
	tagService service.ITagService
}

func NewTagHandler(tagService service.ITagService) *TagHandler {
	return &TagHandler{tagService: tagService}
}

// RegisterRoutes registers tag routes on an authenticated group
func (h *TagHandler) RegisterRoutes(router *gin.RouterGroup) {
	tags := router.Group("/tags")
	{
		tags.GET("", h.ListTags)
		tags.POST("", h.CreateTag)
	}
}

// ListTags returns the caller's tags, name descending. assigned_only=1
// restricts the list to tags used by at least one recipe.
func (h *TagHandler) ListTags(c *gin.Context) {
	userID := c.MustGet("user_id").(uuid.UUID)

	tags, err := h.tagService.ListTags(c.Request.Context(), userID, truthyParam(c.Query("assigned_only")))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch tags"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"tags": tags})
}

// CreateTag creates a tag owned by the caller
func (h *TagHandler) CreateTag(c *gin.Context) {
	userID := c.MustGet("user_id").(uuid.UUID)

	var req types.CreateAttributeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	tag, err := h.tagService.CreateTag(c.Request.Context(), userID, req.Name)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create tag"})
		return
	}

	c.JSON(http.StatusCreated, tag)
}
