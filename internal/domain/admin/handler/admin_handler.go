package handler

import (
	"errors"
	"net/http"

	"skillshare/internal/domain/admin/service"
	postService "skillshare/internal/domain/post/service"
	progressService "skillshare/internal/domain/progress/service"
	userService "skillshare/internal/domain/user/service"
	"skillshare/pkg/response"
	"skillshare/pkg/utils"

	"github.com/gin-gonic/gin"
)

// AdminHandler 管理端处理器
type AdminHandler struct {
	service service.AdminService
}

// NewAdminHandler 创建处理器
func NewAdminHandler(service service.AdminService) *AdminHandler {
	return &AdminHandler{service: service}
}

func mapError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, userService.ErrUserNotFound):
		response.Error(c, http.StatusNotFound, response.ErrUserNotFound, err.Error())
	case errors.Is(err, postService.ErrPostNotFound):
		response.Error(c, http.StatusNotFound, response.ErrPostNotFound, err.Error())
	case errors.Is(err, progressService.ErrProgressNotFound):
		response.Error(c, http.StatusNotFound, response.ErrProgressNotFound, err.Error())
	case errors.Is(err, postService.ErrCommentNotFound), errors.Is(err, progressService.ErrCommentNotFound):
		response.Error(c, http.StatusNotFound, response.ErrCommentNotFound, err.Error())
	case errors.Is(err, service.ErrLastAdmin), errors.Is(err, service.ErrNotAdmin):
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, err.Error())
	default:
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, err.Error())
	}
}

// ListUsers 用户列表
func (h *AdminHandler) ListUsers(c *gin.Context) {
	var p utils.Pagination
	if err := c.ShouldBindQuery(&p); err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, err.Error())
		return
	}

	users, total, err := h.service.ListUsers(p.Page, p.Limit)
	if err != nil {
		mapError(c, err)
		return
	}
	response.Success(c, utils.PageResult{List: users, Total: total, Page: p.Page, Limit: p.Limit})
}

// DeleteUser 删除用户
func (h *AdminHandler) DeleteUser(c *gin.Context) {
	if err := h.service.DeleteUser(c.Param("userId")); err != nil {
		mapError(c, err)
		return
	}
	response.Success(c, gin.H{"message": "User deleted successfully"})
}

// PromoteUser 授予管理员角色
func (h *AdminHandler) PromoteUser(c *gin.Context) {
	user, err := h.service.PromoteUser(c.Param("userId"))
	if err != nil {
		mapError(c, err)
		return
	}
	response.Success(c, user)
}

// DemoteUser 撤销管理员角色
func (h *AdminHandler) DemoteUser(c *gin.Context) {
	user, err := h.service.DemoteUser(c.Param("userId"))
	if err != nil {
		mapError(c, err)
		return
	}
	response.Success(c, user)
}

// DeletePost 删除任意帖子
func (h *AdminHandler) DeletePost(c *gin.Context) {
	if err := h.service.DeletePost(c.Param("postId")); err != nil {
		mapError(c, err)
		return
	}
	response.Success(c, gin.H{"message": "Post deleted successfully"})
}

// DeleteProgress 删除任意进度更新
func (h *AdminHandler) DeleteProgress(c *gin.Context) {
	if err := h.service.DeleteProgress(c.Param("progressId")); err != nil {
		mapError(c, err)
		return
	}
	response.Success(c, gin.H{"message": "Progress update deleted successfully"})
}

// DeletePostComment 删除任意帖子评论
func (h *AdminHandler) DeletePostComment(c *gin.Context) {
	if err := h.service.DeletePostComment(c.Param("commentId")); err != nil {
		mapError(c, err)
		return
	}
	response.Success(c, gin.H{"message": "Comment deleted successfully"})
}

// DeleteProgressComment 删除任意进度评论
func (h *AdminHandler) DeleteProgressComment(c *gin.Context) {
	if err := h.service.DeleteProgressComment(c.Param("commentId")); err != nil {
		mapError(c, err)
		return
	}
	response.Success(c, gin.H{"message": "Comment deleted successfully"})
}

// PurgeUserPosts 清空某用户的全部帖子
func (h *AdminHandler) PurgeUserPosts(c *gin.Context) {
	deleted, err := h.service.PurgeUserPosts(c.Param("userId"))
	if err != nil {
		mapError(c, err)
		return
	}
	response.Success(c, gin.H{"deleted": deleted})
}

// PurgeUserProgress 清空某用户的全部进度更新
func (h *AdminHandler) PurgeUserProgress(c *gin.Context) {
	deleted, err := h.service.PurgeUserProgress(c.Param("userId"))
	if err != nil {
		mapError(c, err)
		return
	}
	response.Success(c, gin.H{"deleted": deleted})
}
