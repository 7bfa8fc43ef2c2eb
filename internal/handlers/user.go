package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type UserHandler struct {
	store UserStore
}

func NewUserHandler(store UserStore) *UserHandler {
	return &UserHandler{store: store}
}

func (h *UserHandler) GetMe(c *gin.Context) {
	userID := currentUserID(c)

	user, err := h.store.GetUser(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "user not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":           user.ID,
		"name":         user.Name,
		"email":        user.Email,
		"image":        user.Image,
		"role":         user.Role,
		"created_at":   user.CreatedAt,
		"last_seen_at": user.LastSeenAt,
	})
}

func (h *UserHandler) GetUser(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	user, err := h.store.GetUser(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "user not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":           user.ID,
		"name":         user.Name,
		"image":        user.Image,
		"role":         user.Role,
		"last_seen_at": user.LastSeenAt,
	})
}
