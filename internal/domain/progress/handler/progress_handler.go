package handler

import (
	"errors"
	"net/http"

	"skillshare/internal/domain/progress/model"
	"skillshare/internal/domain/progress/service"
	"skillshare/internal/pkg/middleware"
	"skillshare/pkg/response"
	"skillshare/pkg/utils"

	"github.com/gin-gonic/gin"
)

// ProgressHandler 进度更新处理器
type ProgressHandler struct {
	service service.ProgressService
}

// NewProgressHandler 创建处理器
func NewProgressHandler(service service.ProgressService) *ProgressHandler {
	return &ProgressHandler{service: service}
}

// CreateProgressRequest 创建请求
type CreateProgressRequest struct {
	TemplateType string           `json:"templateType" binding:"required"`
	Content      model.ContentMap `json:"content"`
	MediaURL     string           `json:"mediaUrl"`
}

// UpdateProgressRequest 更新请求
type UpdateProgressRequest struct {
	TemplateType *string          `json:"templateType"`
	Content      model.ContentMap `json:"content"`
	MediaURL     *string          `json:"mediaUrl"`
}

// CommentRequest 评论/回复请求
type CommentRequest struct {
	Content string `json:"content" binding:"required"`
}

func mapError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrProgressNotFound):
		response.Error(c, http.StatusNotFound, response.ErrProgressNotFound, err.Error())
	case errors.Is(err, service.ErrCommentNotFound):
		response.Error(c, http.StatusNotFound, response.ErrCommentNotFound, err.Error())
	case errors.Is(err, service.ErrNotOwner):
		response.Error(c, http.StatusForbidden, response.ErrNoPermission, err.Error())
	case errors.Is(err, service.ErrEmptyContent):
		response.Error(c, http.StatusBadRequest, response.ErrEmptyContent, err.Error())
	case errors.Is(err, service.ErrBadTemplate), errors.Is(err, service.ErrReplyToReply):
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, err.Error())
	default:
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, err.Error())
	}
}

// Templates 模板目录
func (h *ProgressHandler) Templates(c *gin.Context) {
	response.Success(c, h.service.Templates())
}

// Create 创建进度更新
func (h *ProgressHandler) Create(c *gin.Context) {
	var req CreateProgressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, err.Error())
		return
	}

	progress, err := h.service.CreateProgress(middleware.CallerID(c), service.CreateProgressInput{
		TemplateType: req.TemplateType,
		Content:      req.Content,
		MediaURL:     req.MediaURL,
	})
	if err != nil {
		mapError(c, err)
		return
	}
	response.Created(c, progress)
}

// Get 获取单条进度更新
func (h *ProgressHandler) Get(c *gin.Context) {
	progress, err := h.service.GetProgress(c.Param("id"))
	if err != nil {
		mapError(c, err)
		return
	}
	response.Success(c, progress)
}

// List 进度更新列表；?userId= 过滤某个用户
func (h *ProgressHandler) List(c *gin.Context) {
	if userID := c.Query("userId"); userID != "" {
		list, err := h.service.GetByUser(userID)
		if err != nil {
			mapError(c, err)
			return
		}
		response.Success(c, list)
		return
	}

	var p utils.Pagination
	if err := c.ShouldBindQuery(&p); err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, err.Error())
		return
	}

	list, total, err := h.service.GetAll(p.Page, p.Limit)
	if err != nil {
		mapError(c, err)
		return
	}
	response.Success(c, utils.PageResult{List: list, Total: total, Page: p.Page, Limit: p.Limit})
}

// Update 更新进度
func (h *ProgressHandler) Update(c *gin.Context) {
	var req UpdateProgressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, err.Error())
		return
	}

	progress, err := h.service.UpdateProgress(c.Param("id"), middleware.CallerID(c), service.UpdateProgressInput{
		TemplateType: req.TemplateType,
		Content:      req.Content,
		MediaURL:     req.MediaURL,
	})
	if err != nil {
		mapError(c, err)
		return
	}
	response.Success(c, progress)
}

// Delete 删除进度
func (h *ProgressHandler) Delete(c *gin.Context) {
	if err := h.service.DeleteProgress(c.Param("id"), middleware.CallerID(c)); err != nil {
		mapError(c, err)
		return
	}
	response.Success(c, gin.H{"message": "Progress update deleted successfully"})
}

// AddLike 点赞
func (h *ProgressHandler) AddLike(c *gin.Context) {
	progress, err := h.service.AddLike(c.Param("id"), middleware.CallerID(c))
	if err != nil {
		mapError(c, err)
		return
	}
	response.Success(c, progress)
}

// RemoveLike 取消点赞
func (h *ProgressHandler) RemoveLike(c *gin.Context) {
	progress, err := h.service.RemoveLike(c.Param("id"), middleware.CallerID(c))
	if err != nil {
		mapError(c, err)
		return
	}
	response.Success(c, progress)
}

// AddComment 评论
func (h *ProgressHandler) AddComment(c *gin.Context) {
	var req CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, err.Error())
		return
	}

	comment, err := h.service.AddComment(c.Param("id"), middleware.CallerID(c), req.Content)
	if err != nil {
		mapError(c, err)
		return
	}
	response.Created(c, comment)
}

// GetComments 根评论列表
func (h *ProgressHandler) GetComments(c *gin.Context) {
	comments, err := h.service.GetComments(c.Param("id"))
	if err != nil {
		mapError(c, err)
		return
	}
	response.Success(c, comments)
}

// AddReply 回复评论
func (h *ProgressHandler) AddReply(c *gin.Context) {
	var req CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, err.Error())
		return
	}

	reply, err := h.service.AddReply(c.Param("commentId"), middleware.CallerID(c), req.Content)
	if err != nil {
		mapError(c, err)
		return
	}
	response.Created(c, reply)
}

// GetReplies 回复列表
func (h *ProgressHandler) GetReplies(c *gin.Context) {
	replies, err := h.service.GetReplies(c.Param("commentId"))
	if err != nil {
		mapError(c, err)
		return
	}
	response.Success(c, replies)
}

// UpdateComment 修改评论
func (h *ProgressHandler) UpdateComment(c *gin.Context) {
	var req CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, err.Error())
		return
	}

	comment, err := h.service.UpdateComment(c.Param("commentId"), middleware.CallerID(c), req.Content)
	if err != nil {
		mapError(c, err)
		return
	}
	response.Success(c, comment)
}

// DeleteComment 删除评论（作者或进度作者）
func (h *ProgressHandler) DeleteComment(c *gin.Context) {
	if err := h.service.DeleteComment(c.Param("commentId"), middleware.CallerID(c)); err != nil {
		mapError(c, err)
		return
	}
	response.Success(c, gin.H{"message": "Comment deleted successfully"})
}
