package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/team-maroon/recipify/internal/api/middleware"
	"github.com/team-maroon/recipify/pkg/response"
)

// ListNotifications returns the caller's notifications, newest first,
// optionally filtered by type.
// @Summary List notifications
// @Tags notifications
// @Param filter query string false "all|favourite|comment|follow|request" default(all)
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /api/v1/notifications [get]
func (h *Handler) ListNotifications(c *gin.Context) {
	userID := middleware.UserID(c)
	items, err := h.notifications.List(c.Request.Context(), userID, c.DefaultQuery("filter", "all"))
	if err != nil {
		h.fail(c, err)
		return
	}
	summary, err := h.inbox.Summary(c.Request.Context(), userID)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, gin.H{
		"notifications": items,
		"inbox":         summary,
	})
}

// DeleteNotification dismisses one of the caller's notifications. Deleting a
// notification that is gone or belongs to someone else succeeds silently.
// @Summary Delete notification
// @Tags notifications
// @Param id path string true "notification id"
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /api/v1/notifications/{id} [delete]
func (h *Handler) DeleteNotification(c *gin.Context) {
	if err := h.notifications.Delete(c.Request.Context(), c.Param("id"), middleware.UserID(c)); err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, nil)
}
