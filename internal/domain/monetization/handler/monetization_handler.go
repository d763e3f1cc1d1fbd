package handler

import (
	"errors"
	"net/http"

	"skillshare/internal/domain/monetization/service"
	"skillshare/internal/pkg/middleware"
	"skillshare/pkg/response"

	"github.com/gin-gonic/gin"
)

// MonetizationHandler 变现申请处理器
type MonetizationHandler struct {
	service service.MonetizationService
}

// NewMonetizationHandler 创建处理器
func NewMonetizationHandler(service service.MonetizationService) *MonetizationHandler {
	return &MonetizationHandler{service: service}
}

// SubmitRequest 提交申请请求
type SubmitRequest struct {
	ContentType      string `json:"contentType" binding:"required"`
	Description      string `json:"description" binding:"required"`
	Platform         string `json:"platform"`
	ExpectedEarnings string `json:"expectedEarnings"`
}

func mapError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrRequestNotFound):
		response.Error(c, http.StatusNotFound, response.ErrRequestNotFound, err.Error())
	case errors.Is(err, service.ErrNotOwner):
		response.Error(c, http.StatusForbidden, response.ErrNoPermission, err.Error())
	case errors.Is(err, service.ErrMissingFields):
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, err.Error())
	default:
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, err.Error())
	}
}

// Submit 提交变现申请
func (h *MonetizationHandler) Submit(c *gin.Context) {
	var req SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, err.Error())
		return
	}

	request, err := h.service.Submit(middleware.CallerID(c), service.SubmitInput{
		ContentType:      req.ContentType,
		Description:      req.Description,
		Platform:         req.Platform,
		ExpectedEarnings: req.ExpectedEarnings,
	})
	if err != nil {
		mapError(c, err)
		return
	}
	response.Created(c, request)
}

// List 申请列表；?userId= 过滤某个用户
func (h *MonetizationHandler) List(c *gin.Context) {
	if userID := c.Query("userId"); userID != "" {
		requests, err := h.service.GetByUser(userID)
		if err != nil {
			mapError(c, err)
			return
		}
		response.Success(c, requests)
		return
	}

	requests, err := h.service.GetAll()
	if err != nil {
		mapError(c, err)
		return
	}
	response.Success(c, requests)
}

// Delete 删除申请
func (h *MonetizationHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Param("id"), middleware.CallerID(c)); err != nil {
		mapError(c, err)
		return
	}
	response.Success(c, gin.H{"message": "Monetization request deleted successfully"})
}
