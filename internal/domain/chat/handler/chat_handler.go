package handler

import (
	"errors"
	"net/http"

	"skillshare/internal/domain/chat/service"
	"skillshare/internal/pkg/middleware"
	"skillshare/pkg/response"

	"github.com/gin-gonic/gin"
)

// ChatHandler 私信处理器
type ChatHandler struct {
	service service.ChatService
}

// NewChatHandler 创建处理器
func NewChatHandler(service service.ChatService) *ChatHandler {
	return &ChatHandler{service: service}
}

// SendMessageRequest 发消息请求
type SendMessageRequest struct {
	RecipientID string `json:"recipientId" binding:"required"`
	Content     string `json:"content" binding:"required"`
}

// EditMessageRequest 编辑消息请求
type EditMessageRequest struct {
	Content string `json:"content" binding:"required"`
}

func mapError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrMessageNotFound):
		response.Error(c, http.StatusNotFound, response.ErrMessageNotFound, err.Error())
	case errors.Is(err, service.ErrUserNotFound):
		response.Error(c, http.StatusNotFound, response.ErrUserNotFound, err.Error())
	case errors.Is(err, service.ErrNotSender):
		response.Error(c, http.StatusForbidden, response.ErrNoPermission, err.Error())
	case errors.Is(err, service.ErrEmptyContent):
		response.Error(c, http.StatusBadRequest, response.ErrEmptyContent, err.Error())
	default:
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, err.Error())
	}
}

// Send 发送私信
func (h *ChatHandler) Send(c *gin.Context) {
	var req SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, err.Error())
		return
	}

	message, err := h.service.SendMessage(middleware.CallerID(c), req.RecipientID, req.Content)
	if err != nil {
		mapError(c, err)
		return
	}
	response.Created(c, message)
}

// Conversation 与某个用户的会话
func (h *ChatHandler) Conversation(c *gin.Context) {
	messages, err := h.service.GetConversation(middleware.CallerID(c), c.Param("userId"))
	if err != nil {
		mapError(c, err)
		return
	}
	response.Success(c, messages)
}

// UserMessages 某用户收发的全部消息
func (h *ChatHandler) UserMessages(c *gin.Context) {
	messages, err := h.service.GetUserMessages(c.Param("userId"))
	if err != nil {
		mapError(c, err)
		return
	}
	response.Success(c, messages)
}

// Recent 最近会话列表
func (h *ChatHandler) Recent(c *gin.Context) {
	chats, err := h.service.RecentChats(c.Param("userId"))
	if err != nil {
		mapError(c, err)
		return
	}
	response.Success(c, chats)
}

// Edit 编辑消息
func (h *ChatHandler) Edit(c *gin.Context) {
	var req EditMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, err.Error())
		return
	}

	message, err := h.service.EditMessage(c.Param("messageId"), middleware.CallerID(c), req.Content)
	if err != nil {
		mapError(c, err)
		return
	}
	response.Success(c, message)
}

// Delete 删除消息
func (h *ChatHandler) Delete(c *gin.Context) {
	if err := h.service.DeleteMessage(c.Param("messageId"), middleware.CallerID(c)); err != nil {
		mapError(c, err)
		return
	}
	response.Success(c, gin.H{"message": "Message deleted successfully"})
}
