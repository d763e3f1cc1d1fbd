package handler

import (
	"errors"
	"net/http"

	"skillshare/internal/domain/plan/model"
	"skillshare/internal/domain/plan/service"
	"skillshare/internal/pkg/middleware"
	"skillshare/pkg/response"
	"skillshare/pkg/utils"

	"github.com/gin-gonic/gin"
)

// PlanHandler 学习计划处理器
type PlanHandler struct {
	service service.PlanService
}

// NewPlanHandler 创建处理器
func NewPlanHandler(service service.PlanService) *PlanHandler {
	return &PlanHandler{service: service}
}

// CreatePlanRequest 创建请求
type CreatePlanRequest struct {
	Title       string        `json:"title" binding:"required"`
	Description string        `json:"description"`
	Topics      []model.Topic `json:"topics"`
}

// UpdatePlanRequest 更新请求
type UpdatePlanRequest struct {
	Title       *string       `json:"title"`
	Description *string       `json:"description"`
	Topics      []model.Topic `json:"topics"`
}

func mapError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrPlanNotFound):
		response.Error(c, http.StatusNotFound, response.ErrPlanNotFound, err.Error())
	case errors.Is(err, service.ErrNotOwner):
		response.Error(c, http.StatusForbidden, response.ErrNoPermission, err.Error())
	case errors.Is(err, service.ErrEmptyTitle):
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, err.Error())
	default:
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, err.Error())
	}
}

// Create 创建学习计划
func (h *PlanHandler) Create(c *gin.Context) {
	var req CreatePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, err.Error())
		return
	}

	plan, err := h.service.CreatePlan(middleware.CallerID(c), service.CreatePlanInput{
		Title:       req.Title,
		Description: req.Description,
		Topics:      req.Topics,
	})
	if err != nil {
		mapError(c, err)
		return
	}
	response.Created(c, plan)
}

// Get 获取单个计划
func (h *PlanHandler) Get(c *gin.Context) {
	plan, err := h.service.GetPlan(c.Param("id"))
	if err != nil {
		mapError(c, err)
		return
	}
	response.Success(c, plan)
}

// List 计划列表；?userId= 过滤某个用户
func (h *PlanHandler) List(c *gin.Context) {
	if userID := c.Query("userId"); userID != "" {
		plans, err := h.service.GetPlansByUser(userID)
		if err != nil {
			mapError(c, err)
			return
		}
		response.Success(c, plans)
		return
	}

	var p utils.Pagination
	if err := c.ShouldBindQuery(&p); err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, err.Error())
		return
	}

	plans, total, err := h.service.GetAll(p.Page, p.Limit)
	if err != nil {
		mapError(c, err)
		return
	}
	response.Success(c, utils.PageResult{List: plans, Total: total, Page: p.Page, Limit: p.Limit})
}

// Update 更新计划
func (h *PlanHandler) Update(c *gin.Context) {
	var req UpdatePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, err.Error())
		return
	}

	plan, err := h.service.UpdatePlan(c.Param("id"), middleware.CallerID(c), service.UpdatePlanInput{
		Title:       req.Title,
		Description: req.Description,
		Topics:      req.Topics,
	})
	if err != nil {
		mapError(c, err)
		return
	}
	response.Success(c, plan)
}

// Delete 删除计划
func (h *PlanHandler) Delete(c *gin.Context) {
	if err := h.service.DeletePlan(c.Param("id"), middleware.CallerID(c)); err != nil {
		mapError(c, err)
		return
	}
	response.Success(c, gin.H{"message": "Learning plan deleted successfully"})
}
