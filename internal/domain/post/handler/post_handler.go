package handler

import (
	"errors"
	"net/http"

	"skillshare/internal/domain/post/model"
	"skillshare/internal/domain/post/service"
	"skillshare/internal/pkg/middleware"
	"skillshare/pkg/response"
	"skillshare/pkg/utils"

	"github.com/gin-gonic/gin"
)

// PostHandler 帖子处理器
type PostHandler struct {
	service service.PostService
}

// NewPostHandler 创建处理器
func NewPostHandler(service service.PostService) *PostHandler {
	return &PostHandler{service: service}
}

// CreatePostRequest 发帖请求
type CreatePostRequest struct {
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Category    string            `json:"category"`
	Media       []model.MediaItem `json:"media"`
}

// UpdatePostRequest 帖子更新请求
type UpdatePostRequest struct {
	Title       *string           `json:"title"`
	Description *string           `json:"description"`
	Category    *string           `json:"category"`
	Media       []model.MediaItem `json:"media"`
}

// CommentRequest 评论请求
type CommentRequest struct {
	Content string `json:"content" binding:"required"`
}

func mapError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrPostNotFound):
		response.Error(c, http.StatusNotFound, response.ErrPostNotFound, err.Error())
	case errors.Is(err, service.ErrCommentNotFound):
		response.Error(c, http.StatusNotFound, response.ErrCommentNotFound, err.Error())
	case errors.Is(err, service.ErrNotOwner):
		response.Error(c, http.StatusForbidden, response.ErrNoPermission, err.Error())
	case errors.Is(err, service.ErrEmptyContent):
		response.Error(c, http.StatusBadRequest, response.ErrEmptyContent, err.Error())
	case errors.Is(err, service.ErrTooManyMedia), errors.Is(err, service.ErrBadMediaType):
		response.Error(c, http.StatusBadRequest, response.ErrMediaInvalid, err.Error())
	default:
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, err.Error())
	}
}

// Create 发帖
func (h *PostHandler) Create(c *gin.Context) {
	var req CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, err.Error())
		return
	}

	post, err := h.service.CreatePost(middleware.CallerID(c), service.CreatePostInput{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Media:       req.Media,
	})
	if err != nil {
		mapError(c, err)
		return
	}
	response.Created(c, post)
}

// Get 获取单个帖子
func (h *PostHandler) Get(c *gin.Context) {
	post, err := h.service.GetPost(c.Param("id"))
	if err != nil {
		mapError(c, err)
		return
	}
	response.Success(c, post)
}

// List 帖子列表；userId/category/query 参数切换查询方式
func (h *PostHandler) List(c *gin.Context) {
	var p utils.Pagination
	if err := c.ShouldBindQuery(&p); err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, err.Error())
		return
	}

	if userID := c.Query("userId"); userID != "" {
		posts, err := h.service.GetPostsByUser(userID)
		if err != nil {
			mapError(c, err)
			return
		}
		response.Success(c, posts)
		return
	}
	if category := c.Query("category"); category != "" {
		posts, err := h.service.GetPostsByCategory(category, p.Page, p.Limit)
		if err != nil {
			mapError(c, err)
			return
		}
		response.Success(c, posts)
		return
	}
	if query := c.Query("query"); query != "" {
		posts, err := h.service.SearchPosts(query, p.Page, p.Limit)
		if err != nil {
			mapError(c, err)
			return
		}
		response.Success(c, posts)
		return
	}

	posts, total, err := h.service.GetPosts(p.Page, p.Limit)
	if err != nil {
		mapError(c, err)
		return
	}
	response.Success(c, utils.PageResult{List: posts, Total: total, Page: p.Page, Limit: p.Limit})
}

// Update 更新帖子
func (h *PostHandler) Update(c *gin.Context) {
	var req UpdatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, err.Error())
		return
	}

	post, err := h.service.UpdatePost(c.Param("id"), middleware.CallerID(c), service.UpdatePostInput{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Media:       req.Media,
	})
	if err != nil {
		mapError(c, err)
		return
	}
	response.Success(c, post)
}

// Delete 删除帖子
func (h *PostHandler) Delete(c *gin.Context) {
	if err := h.service.DeletePost(c.Param("id"), middleware.CallerID(c)); err != nil {
		mapError(c, err)
		return
	}
	response.Success(c, gin.H{"message": "Post deleted successfully"})
}

// ToggleLike 点赞切换，返回最新计数和当前用户的点赞状态
func (h *PostHandler) ToggleLike(c *gin.Context) {
	result, err := h.service.ToggleLike(c.Param("id"), middleware.CallerID(c))
	if err != nil {
		mapError(c, err)
		return
	}
	response.Success(c, result)
}

// AddComment 添加评论
func (h *PostHandler) AddComment(c *gin.Context) {
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

// GetComments 帖子评论列表
func (h *PostHandler) GetComments(c *gin.Context) {
	comments, err := h.service.GetComments(c.Param("id"))
	if err != nil {
		mapError(c, err)
		return
	}
	response.Success(c, comments)
}

// GetComment 获取单条评论
func (h *PostHandler) GetComment(c *gin.Context) {
	comment, err := h.service.GetComment(c.Param("id"))
	if err != nil {
		mapError(c, err)
		return
	}
	response.Success(c, comment)
}

// UpdateComment 修改评论
func (h *PostHandler) UpdateComment(c *gin.Context) {
	var req CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, err.Error())
		return
	}

	comment, err := h.service.UpdateComment(c.Param("id"), middleware.CallerID(c), req.Content)
	if err != nil {
		mapError(c, err)
		return
	}
	response.Success(c, comment)
}

// DeleteComment 删除评论
func (h *PostHandler) DeleteComment(c *gin.Context) {
	if err := h.service.DeleteComment(c.Param("id"), middleware.CallerID(c)); err != nil {
		mapError(c, err)
		return
	}
	response.Success(c, gin.H{"message": "Comment deleted successfully"})
}
