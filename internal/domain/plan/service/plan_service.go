package service

import (
	"errors"
	"strings"

	"skillshare/internal/domain/plan/model"
	"skillshare/internal/domain/plan/repository"

	"gorm.io/gorm"
)

// 服务层错误
var (
	ErrPlanNotFound = errors.New("learning plan not found")
	ErrNotOwner     = errors.New("only the owner can modify this plan")
	ErrEmptyTitle   = errors.New("plan title cannot be empty")
)

// CreatePlanInput 创建输入
type CreatePlanInput struct {
	Title       string
	Description string
	Topics      []model.Topic
}

// UpdatePlanInput 更新输入；Topics 非 nil 时整体替换
type UpdatePlanInput struct {
	Title       *string
	Description *string
	Topics      []model.Topic
}

// PlanService 学习计划服务接口
type PlanService interface {
	CreatePlan(userID string, input CreatePlanInput) (*model.LearningPlan, error)
	GetPlan(id string) (*model.LearningPlan, error)
	GetPlansByUser(userID string) ([]model.LearningPlan, error)
	GetAll(page, limit int) ([]model.LearningPlan, int64, error)
	UpdatePlan(id, callerID string, input UpdatePlanInput) (*model.LearningPlan, error)
	DeletePlan(id, callerID string) error
}

type planService struct {
	repo repository.PlanRepository
}

// NewPlanService 创建学习计划服务
func NewPlanService(repo repository.PlanRepository) PlanService {
	return &planService{repo: repo}
}

// CreatePlan 创建学习计划
func (s *planService) CreatePlan(userID string, input CreatePlanInput) (*model.LearningPlan, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, ErrEmptyTitle
	}

	topics := input.Topics
	if topics == nil {
		topics = []model.Topic{}
	}

	plan := &model.LearningPlan{
		UserID:      userID,
		Title:       input.Title,
		Description: input.Description,
		Topics:      topics,
	}
	if err := s.repo.Create(plan); err != nil {
		return nil, err
	}
	return plan, nil
}

// GetPlan 获取单个计划
func (s *planService) GetPlan(id string) (*model.LearningPlan, error) {
	plan, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPlanNotFound
		}
		return nil, err
	}
	return plan, nil
}

func (s *planService) GetPlansByUser(userID string) ([]model.LearningPlan, error) {
	return s.repo.GetByUserID(userID)
}

func (s *planService) GetAll(page, limit int) ([]model.LearningPlan, int64, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 10
	}
	return s.repo.GetAll((page-1)*limit, limit)
}

// UpdatePlan 更新计划，只有作者可以改；主题列表整体替换
func (s *planService) UpdatePlan(id, callerID string, input UpdatePlanInput) (*model.LearningPlan, error) {
	plan, err := s.GetPlan(id)
	if err != nil {
		return nil, err
	}
	if plan.UserID != callerID {
		return nil, ErrNotOwner
	}

	if input.Title != nil {
		if strings.TrimSpace(*input.Title) == "" {
			return nil, ErrEmptyTitle
		}
		plan.Title = *input.Title
	}
	if input.Description != nil {
		plan.Description = *input.Description
	}
	if input.Topics != nil {
		plan.Topics = input.Topics
	}

	if err := s.repo.Update(plan); err != nil {
		return nil, err
	}
	return plan, nil
}

// DeletePlan 删除计划，只有作者可以删
func (s *planService) DeletePlan(id, callerID string) error {
	plan, err := s.GetPlan(id)
	if err != nil {
		return err
	}
	if plan.UserID != callerID {
		return ErrNotOwner
	}
	return s.repo.Delete(id)
}
