package repository

import (
	"skillshare/internal/domain/plan/model"

	"gorm.io/gorm"
)

// PlanRepository 接口定义
type PlanRepository interface {
	Create(plan *model.LearningPlan) error
	GetByID(id string) (*model.LearningPlan, error)
	GetByUserID(userID string) ([]model.LearningPlan, error)
	GetAll(offset, limit int) ([]model.LearningPlan, int64, error)
	Update(plan *model.LearningPlan) error
	Delete(id string) error
}

type planRepository struct {
	db *gorm.DB
}

// NewPlanRepository 创建新的仓库实例
func NewPlanRepository(db *gorm.DB) PlanRepository {
	return &planRepository{db: db}
}

func (r *planRepository) Create(plan *model.LearningPlan) error {
	return r.db.Create(plan).Error
}

func (r *planRepository) GetByID(id string) (*model.LearningPlan, error) {
	var plan model.LearningPlan
	if err := r.db.Where("id = ?", id).First(&plan).Error; err != nil {
		return nil, err
	}
	return &plan, nil
}

func (r *planRepository) GetByUserID(userID string) ([]model.LearningPlan, error) {
	var plans []model.LearningPlan
	if err := r.db.Where("user_id = ?", userID).Order("created_at desc").Find(&plans).Error; err != nil {
		return nil, err
	}
	return plans, nil
}

func (r *planRepository) GetAll(offset, limit int) ([]model.LearningPlan, int64, error) {
	var plans []model.LearningPlan
	var total int64

	if err := r.db.Model(&model.LearningPlan{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := r.db.Order("created_at desc").Offset(offset).Limit(limit).Find(&plans).Error; err != nil {
		return nil, 0, err
	}
	return plans, total, nil
}

func (r *planRepository) Update(plan *model.LearningPlan) error {
	return r.db.Save(plan).Error
}

func (r *planRepository) Delete(id string) error {
	return r.db.Where("id = ?", id).Delete(&model.LearningPlan{}).Error
}
