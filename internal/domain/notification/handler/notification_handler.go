package handler

import (
	"errors"
	"net/http"

	"skillshare/internal/domain/notification/service"
	"skillshare/internal/pkg/middleware"
	"skillshare/pkg/response"

	"github.com/gin-gonic/gin"
)

// NotificationHandler 通知处理器
type NotificationHandler struct {
	service service.NotificationService
}

// NewNotificationHandler 创建处理器
func NewNotificationHandler(service service.NotificationService) *NotificationHandler {
	return &NotificationHandler{service: service}
}

func mapError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNotificationNotFound):
		response.Error(c, http.StatusNotFound, response.ErrNotificationNotFound, err.Error())
	case errors.Is(err, service.ErrNotRecipient):
		response.Error(c, http.StatusForbidden, response.ErrNoPermission, err.Error())
	default:
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, err.Error())
	}
}

// List 获取当前用户通知，?unread=true 只看未读
func (h *NotificationHandler) List(c *gin.Context) {
	unreadOnly := c.Query("unread") == "true"
	list, err := h.service.GetForUser(middleware.CallerID(c), unreadOnly)
	if err != nil {
		mapError(c, err)
		return
	}
	response.Success(c, gin.H{
		"notifications": list,
		"count":         len(list),
	})
}

// MarkRead 标记单条已读
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	n, err := h.service.MarkRead(c.Param("id"), middleware.CallerID(c))
	if err != nil {
		mapError(c, err)
		return
	}
	response.Success(c, n)
}

// MarkAllRead 标记全部已读
func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	if err := h.service.MarkAllRead(middleware.CallerID(c)); err != nil {
		mapError(c, err)
		return
	}
	response.Success(c, gin.H{"message": "All notifications marked as read"})
}

// Delete 删除单条通知
func (h *NotificationHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Param("id"), middleware.CallerID(c)); err != nil {
		mapError(c, err)
		return
	}
	response.Success(c, gin.H{"message": "Notification deleted successfully"})
}
